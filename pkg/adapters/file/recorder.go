package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/ports"
)

// DefaultPath is used when NewRecorder gets an empty path.
var DefaultPath = filepath.Join(".cvterm", "usage.json")

// Recorder implements ports.UsageRecorder on the local filesystem.
// Counters live in a single JSON object; every Record is a
// read-modify-write guarded by a mutex, so one process per file.
type Recorder struct {
	Path string
	mu   sync.Mutex
}

// NewRecorder creates a file recorder at path.
func NewRecorder(path string) *Recorder {
	if path == "" {
		path = DefaultPath
	}
	return &Recorder{Path: path}
}

// Record counts one dispatch and persists the totals.
func (r *Recorder) Record(ctx context.Context, command string, outcome domain.Outcome) error {
	key := ports.UsageKey(command, outcome)
	if key == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	counts, err := r.read()
	if err != nil {
		return err
	}
	counts[key]++
	return r.write(counts)
}

// Counts returns the persisted totals.
func (r *Recorder) Counts(ctx context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

func (r *Recorder) read() (map[string]int64, error) {
	counts := make(map[string]int64)
	data, err := os.ReadFile(r.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return counts, nil
		}
		return nil, fmt.Errorf("failed to read usage file: %w", err)
	}
	if len(data) == 0 {
		return counts, nil
	}
	if err := json.Unmarshal(data, &counts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal usage file: %w", err)
	}
	return counts, nil
}

// write replaces the file through a temp file and rename.
func (r *Recorder) write(counts map[string]int64) error {
	dir := filepath.Dir(r.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to ensure usage directory: %w", err)
	}

	data, err := json.MarshalIndent(counts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal usage: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".usage-*.json")
	if err != nil {
		return fmt.Errorf("failed to write usage file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write usage file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write usage file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.Path); err != nil {
		return fmt.Errorf("failed to replace usage file: %w", err)
	}
	return nil
}
