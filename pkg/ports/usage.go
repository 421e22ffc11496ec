package ports

import (
	"context"

	"github.com/aretw0/cvterm/pkg/domain"
)

// NotFoundKey is the bucket counting unknown commands. The unknown text
// itself is never stored.
const NotFoundKey = "_not_found"

// UsageRecorder aggregates command usage. It holds no per-session state.
type UsageRecorder interface {
	// Record counts one dispatch of command with the given outcome.
	// Noop outcomes are ignored.
	Record(ctx context.Context, command string, outcome domain.Outcome) error

	// Counts returns the totals keyed by command name (and NotFoundKey).
	Counts(ctx context.Context) (map[string]int64, error)
}

// UsageKey returns the bucket a dispatch is counted under, or "" when it
// should not be counted.
func UsageKey(command string, outcome domain.Outcome) string {
	switch outcome {
	case domain.OutcomeNoop, "":
		return ""
	case domain.OutcomeNotFound:
		return NotFoundKey
	}
	return command
}
