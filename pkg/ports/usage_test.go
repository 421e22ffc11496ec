package ports_test

import (
	"testing"

	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestUsageKey(t *testing.T) {
	tests := []struct {
		command string
		outcome domain.Outcome
		want    string
	}{
		{"skills", domain.OutcomeFound, "skills"},
		{"whatever", domain.OutcomeNotFound, ports.NotFoundKey},
		{"", domain.OutcomeNoop, ""},
		{"exit", domain.OutcomeExit, "exit"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ports.UsageKey(tt.command, tt.outcome), "%s/%s", tt.command, tt.outcome)
	}
}
