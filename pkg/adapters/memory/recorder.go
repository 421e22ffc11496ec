package memory

import (
	"context"
	"sync"

	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/ports"
)

// Recorder implements ports.UsageRecorder in memory.
// Safe for concurrent use.
type Recorder struct {
	counts map[string]int64
	mu     sync.RWMutex
}

// NewRecorder creates a new in-memory usage recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		counts: make(map[string]int64),
	}
}

// Record counts one dispatch.
func (r *Recorder) Record(ctx context.Context, command string, outcome domain.Outcome) error {
	key := ports.UsageKey(command, outcome)
	if key == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[key]++
	return nil
}

// Counts returns a copy of the totals.
func (r *Recorder) Counts(ctx context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ret := make(map[string]int64, len(r.counts))
	for k, v := range r.counts {
		ret[k] = v
	}
	return ret, nil
}
