package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/cvterm/internal/logging"
	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/google/uuid"
)

// ErrEmptyTranscript is returned by UpdateLast when there is no entry to update.
var ErrEmptyTranscript = errors.New("transcript is empty")

// ChangeKind identifies the mutation that produced a Change.
type ChangeKind string

const (
	ChangeAppend  ChangeKind = "append"
	ChangeUpdate  ChangeKind = "update"
	ChangeReset   ChangeKind = "reset"
	ChangePending ChangeKind = "pending"
	ChangePhase   ChangeKind = "phase"
)

// Change describes a single mutation.
// Index and Entry are set for append and update changes.
type Change struct {
	Kind  ChangeKind
	Index int
	Entry domain.Entry
	Len   int
}

// Listener receives changes synchronously, in mutation order.
// Listeners may read the session but must not mutate it.
type Listener func(Change)

// Session is the state of one visitor. Safe for concurrent use.
type Session struct {
	id string

	// notifyMu keeps notifications in mutation order.
	notifyMu sync.Mutex
	mu       sync.Mutex

	entries   []domain.Entry
	pending   string
	phase     domain.Phase
	listeners map[int]Listener
	nextID    int

	timers      map[*time.Timer]struct{}
	terminating bool
	onTerminate func()

	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithTerminate sets the host action run when the session asks to terminate.
// Without it termination is a no-op.
func WithTerminate(fn func()) Option {
	return func(s *Session) {
		s.onTerminate = fn
	}
}

// WithClock sets the clock used to timestamp entries.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithLogger configures a logger for the Session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithPhase sets the initial phase (default booting).
func WithPhase(p domain.Phase) Option {
	return func(s *Session) {
		s.phase = p
	}
}

// New creates a session bound to parent. Cancelling parent has the same
// effect on timers and animations as calling Close.
func New(parent context.Context, opts ...Option) *Session {
	s := &Session{
		id:        uuid.NewString(),
		phase:     domain.PhaseBooting,
		listeners: make(map[int]Listener),
		timers:    make(map[*time.Timer]struct{}),
		now:       time.Now,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(parent)
	s.logger = s.logger.With("session_id", s.id)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Context is cancelled when the session closes.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Session) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Append adds an entry at the end of the transcript.
func (s *Session) Append(e domain.Entry) error {
	return s.mutate(func() (Change, bool) {
		if e.Timestamp.IsZero() {
			e.Timestamp = s.now()
		}
		e = e.Clone()
		s.entries = append(s.entries, e)
		return Change{Kind: ChangeAppend, Index: len(s.entries) - 1, Entry: e.Clone()}, true
	})
}

// ReplaceAll swaps the whole transcript. A nil or empty slice clears it.
func (s *Session) ReplaceAll(entries []domain.Entry) error {
	return s.mutate(func() (Change, bool) {
		next := make([]domain.Entry, len(entries))
		for i, e := range entries {
			if e.Timestamp.IsZero() {
				e.Timestamp = s.now()
			}
			next[i] = e.Clone()
		}
		s.entries = next
		return Change{Kind: ChangeReset}, true
	})
}

// UpdateLast applies patch to the most recent entry.
func (s *Session) UpdateLast(patch func(*domain.Entry)) error {
	var err error
	mErr := s.mutate(func() (Change, bool) {
		if len(s.entries) == 0 {
			err = ErrEmptyTranscript
			return Change{}, false
		}
		idx := len(s.entries) - 1
		e := s.entries[idx].Clone()
		patch(&e)
		s.entries[idx] = e
		return Change{Kind: ChangeUpdate, Index: idx, Entry: e.Clone()}, true
	})
	if mErr != nil {
		return mErr
	}
	return err
}

// Entries returns a copy of the transcript.
func (s *Session) Entries() []domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	return out
}

// Len returns the number of transcript entries.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Pending returns the input line not yet submitted.
func (s *Session) Pending() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// SetPending replaces the pending input.
func (s *Session) SetPending(v string) error {
	return s.mutate(func() (Change, bool) {
		if s.pending == v {
			return Change{}, false
		}
		s.pending = v
		return Change{Kind: ChangePending}, true
	})
}

// ClearPending empties the pending input.
func (s *Session) ClearPending() error {
	return s.SetPending("")
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() domain.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// SetPhase moves the session to phase p.
func (s *Session) SetPhase(p domain.Phase) error {
	return s.mutate(func() (Change, bool) {
		if s.phase == p {
			return Change{}, false
		}
		s.phase = p
		return Change{Kind: ChangePhase}, true
	})
}

// mutate runs fn under the lock and publishes its change.
func (s *Session) mutate(fn func() (Change, bool)) error {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrSessionClosed
	}
	change, changed := fn()
	change.Len = len(s.entries)
	listeners := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if l, ok := s.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}
	s.mu.Unlock()

	if !changed {
		return nil
	}
	for _, l := range listeners {
		l(change)
	}
	return nil
}

// Closed reports whether Close has been called or the parent context ended.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed || s.ctx.Err() != nil
}

// Close cancels the session context, stops pending timers and rejects
// further mutations. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for t := range s.timers {
		t.Stop()
	}
	s.timers = nil
	s.listeners = map[int]Listener{}
	s.mu.Unlock()

	s.cancel()
	s.logger.Debug("Session closed")
}
