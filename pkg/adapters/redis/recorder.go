package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Recorder implements ports.UsageRecorder using a Redis hash, so several
// replicas share the same totals.
type Recorder struct {
	client *backend.Client
	prefix string
}

// Option configures the Recorder.
type Option func(*Recorder)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(r *Recorder) {
		r.prefix = prefix
	}
}

// New creates a new Redis recorder with its own client.
func New(address, password string, db int, opts ...Option) *Recorder {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis recorder from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Recorder {
	r := &Recorder{
		client: client,
		prefix: "cvterm:",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Recorder) key() string {
	return r.prefix + "usage"
}

// Ping checks connectivity.
func (r *Recorder) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (r *Recorder) Close() error {
	return r.client.Close()
}

// Record increments the command's counter with HINCRBY.
func (r *Recorder) Record(ctx context.Context, command string, outcome domain.Outcome) error {
	field := ports.UsageKey(command, outcome)
	if field == "" {
		return nil
	}
	if err := r.client.HIncrBy(ctx, r.key(), field, 1).Err(); err != nil {
		return fmt.Errorf("redis error recording usage: %w", err)
	}
	return nil
}

// Counts reads the whole usage hash.
func (r *Recorder) Counts(ctx context.Context) (map[string]int64, error) {
	raw, err := r.client.HGetAll(ctx, r.key()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error reading usage: %w", err)
	}

	counts := make(map[string]int64, len(raw))
	for field, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt usage counter %s=%q: %w", field, value, err)
		}
		counts[field] = n
	}
	return counts, nil
}
