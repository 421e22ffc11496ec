package cvterm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/cvterm/internal/logging"
	"github.com/aretw0/cvterm/pkg/config"
	"github.com/aretw0/cvterm/pkg/content"
	"github.com/aretw0/cvterm/pkg/dispatcher"
	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/registry"
	"github.com/aretw0/cvterm/pkg/render"
	"github.com/aretw0/cvterm/pkg/session"
	"github.com/aretw0/cvterm/pkg/typing"
)

// Engine is the high-level entry point of the CV terminal.
// It is safe for concurrent use by many sessions.
type Engine struct {
	doc        *content.Document
	registry   *registry.Registry
	dispatcher *dispatcher.Dispatcher
	animator   *typing.Animator
	settings   config.Settings
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	sleeper    typing.Sleeper
	jitter     typing.Jitter
	now        func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithDocument uses doc instead of the embedded résumé.
func WithDocument(doc *content.Document) Option {
	return func(e *Engine) {
		e.doc = doc
	}
}

// WithSettings replaces the default settings.
func WithSettings(s config.Settings) Option {
	return func(e *Engine) {
		e.settings = s
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSleeper replaces the timer used by animations (useful in tests).
func WithSleeper(s typing.Sleeper) Option {
	return func(e *Engine) {
		e.sleeper = s
	}
}

// WithJitter replaces the keystroke delay source.
func WithJitter(j typing.Jitter) Option {
	return func(e *Engine) {
		e.jitter = j
	}
}

// WithClock sets the clock used for timestamps and the banner year.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New initializes a new Engine.
// Without WithDocument the résumé named by the settings' Content path is
// loaded, falling back to the embedded default.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		settings: config.Defaults(),
		sleeper:  typing.TimerSleeper,
		jitter:   typing.UniformJitter,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if err := eng.settings.Validate(); err != nil {
		return nil, err
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	if eng.doc == nil {
		if eng.settings.Content != "" {
			doc, err := content.Load(eng.settings.Content)
			if err != nil {
				return nil, fmt.Errorf("failed to load resume: %w", err)
			}
			eng.doc = doc
		} else {
			eng.doc = content.Default()
		}
	}

	reg, err := content.BuildRegistry(eng.doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build command registry: %w", err)
	}
	eng.registry = reg

	for _, cmd := range eng.settings.BootScript {
		if dispatcher.IsControl(cmd) {
			return nil, fmt.Errorf("%w: boot_script must not contain %q", config.ErrInvalidSettings, cmd)
		}
		if !reg.Has(cmd) {
			eng.logger.Warn("Boot command is not in the resume", "command", cmd)
		}
	}

	eng.dispatcher = dispatcher.New(reg,
		dispatcher.WithExitDelay(eng.settings.ExitDelay),
		dispatcher.WithLifecycleHooks(eng.hooks),
		dispatcher.WithLogger(eng.logger),
		dispatcher.WithClock(eng.now),
	)
	eng.animator = typing.NewAnimator(eng.dispatcher,
		typing.WithSleeper(eng.sleeper),
		typing.WithJitter(eng.jitter),
		typing.WithKeystrokeDelay(eng.settings.TypingMin, eng.settings.TypingMax),
		typing.WithSettle(eng.settings.Settle),
		typing.WithLogger(eng.logger),
	)

	eng.logger.Debug("Engine ready", "resume", eng.doc.Name, "commands", reg.Len())
	return eng, nil
}

// NewSession creates a session bound to ctx. The caller owns it and must Close it.
func (e *Engine) NewSession(ctx context.Context, opts ...session.Option) *session.Session {
	opts = append([]session.Option{
		session.WithLogger(e.logger),
		session.WithClock(e.now),
	}, opts...)
	return session.New(ctx, opts...)
}

// Execute dispatches typed input against s.
func (e *Engine) Execute(ctx context.Context, s *session.Session, input string) (dispatcher.Result, error) {
	return e.dispatcher.Execute(ctx, s, input)
}

// Run executes input against a throw-away session that is ready and has no
// terminate hook. It is meant for stateless surfaces (HTTP, MCP, one-shot CLI).
func (e *Engine) Run(ctx context.Context, input string) (dispatcher.Result, error) {
	s := e.NewSession(ctx, session.WithPhase(domain.PhaseReady))
	defer s.Close()
	return e.dispatcher.Execute(ctx, s, input)
}

// Boot plays the start-up script on s. When boot is disabled in the
// settings it only shows the banner and marks the session ready.
func (e *Engine) Boot(ctx context.Context, s *session.Session) error {
	if e.settings.SkipBoot {
		if err := s.ReplaceAll([]domain.Entry{{Output: domain.Lines(e.Banner()...)}}); err != nil {
			return err
		}
		return s.SetPhase(domain.PhaseReady)
	}

	script := typing.Script{
		IntroDelay:  e.settings.IntroDelay,
		Banner:      e.Banner(),
		BannerDelay: e.settings.BannerDelay,
		Commands:    e.settings.BootScript,
		Pause:       e.settings.BootPause,
	}
	boot := typing.NewBoot(e.animator, script,
		typing.WithBootHooks(e.hooks),
		typing.WithBootLogger(e.logger),
	)
	return boot.Run(ctx, s)
}

// Banner is the system entry shown before the scripted commands.
func (e *Engine) Banner() []string {
	return []string{
		"CV Terminal v" + strings.TrimSpace(Version),
		fmt.Sprintf("%d %s", e.now().Year(), e.doc.Name),
	}
}

// Status is the decorative prompt line configured in the settings.
func (e *Engine) Status() render.Status {
	return render.Status{
		Path:    e.settings.PromptPath,
		Branch:  e.settings.PromptBranch,
		Version: e.settings.PromptVersion,
		Region:  e.settings.PromptRegion,
	}
}

// Registry returns the command registry.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Document returns the résumé the registry was built from.
func (e *Engine) Document() *content.Document {
	return e.doc
}

// Settings returns the effective settings.
func (e *Engine) Settings() config.Settings {
	return e.settings
}

// Markdown exports the résumé as a Markdown document.
func (e *Engine) Markdown() string {
	return render.Markdown(e.doc.Name, e.registry.Definitions())
}

// RenderTranscript returns the plain-text transcript of s.
func (e *Engine) RenderTranscript(s *session.Session) string {
	return render.Styler{}.Transcript(s.Entries(), "  ")
}
