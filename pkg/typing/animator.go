package typing

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/cvterm/internal/logging"
	"github.com/aretw0/cvterm/pkg/domain"
)

// Default timings.
const (
	DefaultMinDelay = 80 * time.Millisecond
	DefaultMaxDelay = 120 * time.Millisecond
	DefaultSettle   = 200 * time.Millisecond
)

// CursorGlyph is drawn after a command that is still being typed.
const CursorGlyph = "█"

// Resolver supplies the output of a typed command.
type Resolver interface {
	Resolve(raw string) (domain.Outcome, []domain.Line)
}

// Emitter is optionally implemented by a Resolver to publish events for
// typed commands.
type Emitter interface {
	Emit(ctx context.Context, sessionID, raw string, outcome domain.Outcome)
}

// Session is the part of a session the animator mutates.
type Session interface {
	ID() string
	Context() context.Context
	Append(domain.Entry) error
	UpdateLast(func(*domain.Entry)) error
	ReplaceAll([]domain.Entry) error
	SetPhase(domain.Phase) error
}

// Animator types commands into a session.
type Animator struct {
	resolver Resolver
	sleeper  Sleeper
	jitter   Jitter
	minDelay time.Duration
	maxDelay time.Duration
	settle   time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// AnimatorOption configures an Animator.
type AnimatorOption func(*Animator)

// WithSleeper replaces the real timer sleeper (useful in tests).
func WithSleeper(s Sleeper) AnimatorOption {
	return func(a *Animator) {
		a.sleeper = s
	}
}

// WithJitter replaces the random delay source.
func WithJitter(j Jitter) AnimatorOption {
	return func(a *Animator) {
		a.jitter = j
	}
}

// WithKeystrokeDelay sets the per-character delay range [lo, hi).
func WithKeystrokeDelay(lo, hi time.Duration) AnimatorOption {
	return func(a *Animator) {
		a.minDelay = lo
		a.maxDelay = hi
	}
}

// WithSettle sets the pause between the last keystroke and the output.
func WithSettle(d time.Duration) AnimatorOption {
	return func(a *Animator) {
		a.settle = d
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) AnimatorOption {
	return func(a *Animator) {
		a.logger = logger
	}
}

// NewAnimator creates an animator resolving output through r.
func NewAnimator(r Resolver, opts ...AnimatorOption) *Animator {
	a := &Animator{
		resolver: r,
		sleeper:  TimerSleeper,
		jitter:   UniformJitter,
		minDelay: DefaultMinDelay,
		maxDelay: DefaultMaxDelay,
		settle:   DefaultSettle,
		now:      time.Now,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Animate types text into a new placeholder entry and returns once the
// entry holds the final command and its output. It stops without further
// mutation as soon as ctx or the session context is done.
func (a *Animator) Animate(ctx context.Context, s Session, text string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.Context(), cancel)
	defer stop()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.Append(domain.Entry{Typing: true, Placeholder: true, Timestamp: a.now()}); err != nil {
		return err
	}

	runes := []rune(text)
	for i := 1; i <= len(runes); i++ {
		if err := a.sleeper.Sleep(ctx, a.jitter(a.minDelay, a.maxDelay)); err != nil {
			return err
		}
		prefix := string(runes[:i])
		typing := i < len(runes)
		if err := a.update(ctx, s, func(e *domain.Entry) {
			e.Command = prefix
			e.Typing = typing
		}); err != nil {
			return err
		}
	}

	if err := a.sleeper.Sleep(ctx, a.settle); err != nil {
		return err
	}

	outcome, output := a.resolver.Resolve(text)
	if err := a.update(ctx, s, func(e *domain.Entry) {
		e.Command = text
		e.Output = output
		e.Typing = false
		e.Placeholder = false
	}); err != nil {
		return err
	}

	a.logger.Debug("Command typed", "session_id", s.ID(), "command", text, "outcome", outcome)
	if em, ok := a.resolver.(Emitter); ok {
		em.Emit(ctx, s.ID(), text, outcome)
	}
	return nil
}

// update re-checks cancellation right before mutating.
func (a *Animator) update(ctx context.Context, s Session, patch func(*domain.Entry)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.UpdateLast(patch)
}

// DisplayCommand returns the command as it should be drawn, with the
// cursor glyph while the entry is still being typed.
func DisplayCommand(e domain.Entry) string {
	if e.Typing {
		return e.Command + CursorGlyph
	}
	return e.Command
}
