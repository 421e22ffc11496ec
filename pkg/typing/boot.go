package typing

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/cvterm/internal/logging"
	"github.com/aretw0/cvterm/pkg/domain"
)

// Script describes the start-up sequence.
type Script struct {
	// IntroDelay passes before the banner appears.
	IntroDelay time.Duration
	// Banner is the output of the system entry that replaces the transcript.
	Banner []string
	// BannerDelay passes between the banner and the first typed command.
	BannerDelay time.Duration
	// Commands are typed in order.
	Commands []string
	// Pause separates consecutive typed commands.
	Pause time.Duration
}

// DefaultScript types whoami then help.
func DefaultScript(banner ...string) Script {
	return Script{
		IntroDelay:  500 * time.Millisecond,
		Banner:      banner,
		BannerDelay: 500 * time.Millisecond,
		Commands:    []string{"whoami", "help"},
		Pause:       time.Second,
	}
}

// Boot runs a Script against a session.
type Boot struct {
	animator *Animator
	script   Script
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// BootOption configures a Boot.
type BootOption func(*Boot)

// WithBootHooks registers observability hooks for boot steps.
func WithBootHooks(hooks domain.LifecycleHooks) BootOption {
	return func(b *Boot) {
		b.hooks = hooks
	}
}

// WithBootLogger sets a custom structured logger.
func WithBootLogger(logger *slog.Logger) BootOption {
	return func(b *Boot) {
		b.logger = logger
	}
}

// NewBoot creates a boot sequence.
func NewBoot(a *Animator, script Script, opts ...BootOption) *Boot {
	b := &Boot{
		animator: a,
		script:   script,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run plays the script and marks the session ready. Commands are animated
// strictly one after another. On cancellation it returns the context error
// and leaves the session in the booting phase.
func (b *Boot) Run(ctx context.Context, s Session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.Context(), cancel)
	defer stop()

	sleep := b.animator.sleeper.Sleep

	if err := sleep(ctx, b.script.IntroDelay); err != nil {
		return err
	}
	if len(b.script.Banner) > 0 {
		if err := s.ReplaceAll([]domain.Entry{{Output: domain.Lines(b.script.Banner...), Timestamp: b.animator.now()}}); err != nil {
			return err
		}
		b.step(ctx, s, "banner")
		if err := sleep(ctx, b.script.BannerDelay); err != nil {
			return err
		}
	}

	for i, cmd := range b.script.Commands {
		if i > 0 {
			if err := sleep(ctx, b.script.Pause); err != nil {
				return err
			}
		}
		if err := b.animator.Animate(ctx, s, cmd); err != nil {
			return err
		}
		b.step(ctx, s, "typed:"+cmd)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.SetPhase(domain.PhaseReady); err != nil {
		return err
	}
	b.step(ctx, s, "ready")
	b.logger.Debug("Boot complete", "session_id", s.ID())
	return nil
}

func (b *Boot) step(ctx context.Context, s Session, name string) {
	if b.hooks.OnBootStep == nil {
		return
	}
	b.hooks.OnBootStep(ctx, &domain.BootEvent{
		EventBase: domain.EventBase{
			Timestamp: b.animator.now(),
			Type:      domain.EventBootStep,
			SessionID: s.ID(),
		},
		Step: name,
	})
}
