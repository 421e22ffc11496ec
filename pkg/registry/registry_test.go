package registry_test

import (
	"testing"

	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requiredDefs() []domain.CommandDefinition {
	defs := make([]domain.CommandDefinition, 0, len(registry.Required))
	for _, name := range registry.Required {
		defs = append(defs, domain.CommandDefinition{
			Name:        name,
			Description: "Show " + name,
			Output:      domain.Lines(name + " output"),
		})
	}
	return defs
}

func TestRegistry_Lookup(t *testing.T) {
	reg, err := registry.New(requiredDefs()...)
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		found bool
	}{
		{"exact", "skills", true},
		{"upper", "SKILLS", true},
		{"mixed with spaces", "  SkIlLs \t", true},
		{"unknown", "foo", false},
		{"empty", "", false},
		{"prefix only", "ski", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, ok := reg.Lookup(tt.input)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, "skills", def.Name)
				assert.Equal(t, "skills output", def.Output[0].String())
			}
		})
	}
}

func TestRegistry_Validation(t *testing.T) {
	t.Run("missing required", func(t *testing.T) {
		defs := requiredDefs()[1:]
		_, err := registry.New(defs...)
		assert.ErrorIs(t, err, domain.ErrMissingCommand)
	})

	t.Run("duplicate after normalisation", func(t *testing.T) {
		defs := append(requiredDefs(), domain.CommandDefinition{Name: " HELP ", Description: "again"})
		_, err := registry.New(defs...)
		assert.ErrorIs(t, err, domain.ErrDuplicateCommand)
	})

	t.Run("empty description", func(t *testing.T) {
		defs := requiredDefs()
		defs[2].Description = "  "
		_, err := registry.New(defs...)
		assert.ErrorIs(t, err, domain.ErrEmptyDescription)
	})

	t.Run("name with whitespace", func(t *testing.T) {
		defs := append(requiredDefs(), domain.CommandDefinition{Name: "two words", Description: "x"})
		_, err := registry.New(defs...)
		assert.ErrorIs(t, err, domain.ErrInvalidCommandName)
	})
}

func TestRegistry_Listing(t *testing.T) {
	defs := append(requiredDefs(), domain.CommandDefinition{Name: "Blog", Description: "Posts"})
	reg, err := registry.New(defs...)
	require.NoError(t, err)

	assert.Equal(t, len(defs), reg.Len())
	assert.True(t, reg.Has("blog"))
	assert.Equal(t, "help", reg.Definitions()[0].Name)
	assert.Equal(t, "blog", reg.Definitions()[len(defs)-1].Name)

	names := reg.Names()
	assert.IsIncreasing(t, names)
}
