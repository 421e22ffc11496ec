package content_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/cvterm/pkg/content"
	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_BuildsCompleteRegistry(t *testing.T) {
	reg, err := content.BuildRegistry(content.Default())
	require.NoError(t, err)

	for _, name := range registry.Required {
		def, ok := reg.Lookup(name)
		require.True(t, ok, "missing %s", name)
		assert.NotEmpty(t, def.Description)
	}

	help, _ := reg.Lookup("help")
	assert.Equal(t, "Available commands:", help.Output[0].String())
	assert.Equal(t, "  whoami          - Display summary", help.Output[1].String())
	assert.Contains(t, help.Output[1].Commands(), "whoami")

	whoami, _ := reg.Lookup("whoami")
	assert.Equal(t, "Alex Rivera", whoami.Output[0].String())
}

func TestLoadFromReader_RejectsUnknownFields(t *testing.T) {
	_, err := content.LoadFromReader(strings.NewReader("name: A\nnmae: typo\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nmae")
}

func TestLoadFromReader_Validation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"missing name", "title: Engineer\n"},
		{"level out of range", "name: A\nskills:\n  - title: X\n    items:\n      - {name: Go, level: 140}\n"},
		{"unnamed extra", "name: A\nextra:\n  - description: x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := content.LoadFromReader(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, content.ErrInvalidDocument)
		})
	}
}

func TestLoad_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Sam Example
extra:
  - name: Blog
    description: Read my posts
    output:
      - Latest posts at https://example.com/blog.
`), 0o644))

	doc, err := content.Load(path)
	require.NoError(t, err)

	reg, err := content.BuildRegistry(doc)
	require.NoError(t, err)

	blog, ok := reg.Lookup("BLOG")
	require.True(t, ok)
	assert.Equal(t, "Read my posts", blog.Description)

	line := blog.Output[0]
	require.Len(t, line, 3)
	assert.Equal(t, domain.SpanLink, line[1].Kind)
	assert.Equal(t, "https://example.com/blog", line[1].URL)
	assert.Equal(t, ".", line[2].Text)

	help, _ := reg.Lookup("help")
	assert.Contains(t, domain.LinesText(help.Output), "blog            - Read my posts")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := content.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuildRegistry_ExtraCannotShadowBuiltin(t *testing.T) {
	doc := &content.Document{
		Name:  "A",
		Extra: []content.ExtraCommand{{Name: "Skills", Description: "dup"}},
	}
	_, err := content.BuildRegistry(doc)
	assert.ErrorIs(t, err, domain.ErrDuplicateCommand)
}

func TestLinkifier(t *testing.T) {
	lk := content.NewLinkifier([]string{"help", "skills", "projects"})

	tests := []struct {
		name  string
		input string
		kinds []domain.SpanKind
	}{
		{"plain", "nothing here", []domain.SpanKind{domain.SpanText}},
		{"whole word", "Type help now", []domain.SpanKind{domain.SpanText, domain.SpanCommand, domain.SpanText}},
		{"no partial word", "helpful skillset", []domain.SpanKind{domain.SpanText}},
		{"list", "skills, projects", []domain.SpanKind{domain.SpanCommand, domain.SpanText, domain.SpanCommand}},
		{"url swallows names", "https://example.com/projects", []domain.SpanKind{domain.SpanLink}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := lk.Line(tt.input)
			var kinds []domain.SpanKind
			for _, s := range line {
				kinds = append(kinds, s.Kind)
			}
			assert.Equal(t, tt.kinds, kinds)
			assert.Equal(t, tt.input, line.String())
		})
	}
}

func TestSkillBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("█", 20), content.SkillBar(100))
	assert.Equal(t, strings.Repeat(" ", 20), content.SkillBar(-5))
	assert.Equal(t, strings.Repeat("█", 12)+strings.Repeat(" ", 8), content.SkillBar(60))
}
