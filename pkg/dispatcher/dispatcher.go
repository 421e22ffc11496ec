package dispatcher

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/cvterm/internal/logging"
	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/registry"
)

// DefaultExitDelay is how long exit waits before asking the host to terminate.
const DefaultExitDelay = 2 * time.Second

// Farewell is the output of the exit command.
var Farewell = []string{
	"Goodbye! Thanks for visiting my CV.",
	"Connection closed.",
}

// Registry is the read side of the command registry.
type Registry interface {
	Lookup(name string) (domain.CommandDefinition, bool)
}

// Session is the part of a session the dispatcher mutates.
type Session interface {
	ID() string
	Append(domain.Entry) error
	ReplaceAll([]domain.Entry) error
	ClearPending() error
	ScheduleTermination(time.Duration) bool
}

// Result reports what Execute did.
type Result struct {
	Outcome domain.Outcome
	// Command is the normalised input.
	Command string
	// Entry is the appended entry, nil for noop and clear.
	Entry *domain.Entry
	// TerminateAfter is the exit delay, zero unless Outcome is exit.
	TerminateAfter time.Duration
}

// Dispatcher executes commands. It holds no per-session state.
type Dispatcher struct {
	registry  Registry
	exitDelay time.Duration
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures the Dispatcher.
type Option func(*Dispatcher)

// WithExitDelay sets the delay between exit and the termination action.
func WithExitDelay(delay time.Duration) Option {
	return func(d *Dispatcher) {
		d.exitDelay = delay
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Dispatcher) {
		d.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithClock sets the clock used for entry timestamps and events.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// New creates a Dispatcher over reg.
func New(reg Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry:  reg,
		exitDelay: DefaultExitDelay,
		logger:    logging.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Execute dispatches raw input against s.
// The only error it returns comes from the session (e.g. domain.ErrSessionClosed).
func (d *Dispatcher) Execute(ctx context.Context, s Session, raw string) (Result, error) {
	name := registry.Normalize(raw)
	if name == "" {
		return Result{Outcome: domain.OutcomeNoop}, nil
	}

	res := Result{Command: name}
	var err error

	switch name {
	case domain.CommandClear:
		res.Outcome = domain.OutcomeClear
		err = s.ReplaceAll(nil)

	case domain.CommandExit:
		res.Outcome = domain.OutcomeExit
		res.TerminateAfter = d.exitDelay
		entry := domain.Entry{Command: raw, Output: domain.Lines(Farewell...), Timestamp: d.now()}
		if err = s.Append(entry); err == nil {
			res.Entry = &entry
			s.ScheduleTermination(d.exitDelay)
		}

	default:
		var output []domain.Line
		res.Outcome, output = d.Resolve(raw)
		entry := domain.Entry{Command: raw, Output: output, Timestamp: d.now()}
		if err = s.Append(entry); err == nil {
			res.Entry = &entry
		}
	}

	if err != nil {
		d.logger.Debug("Dispatch rejected by session", "session_id", s.ID(), "err", err)
		return res, err
	}

	if cerr := s.ClearPending(); cerr != nil {
		d.logger.Debug("Failed to clear pending input", "session_id", s.ID(), "err", cerr)
	}

	d.emit(ctx, s.ID(), raw, res, false)
	return res, nil
}

// Resolve looks up a command without touching any session. Unknown names
// resolve to the not-found message. Control commands are not special-cased.
func (d *Dispatcher) Resolve(raw string) (domain.Outcome, []domain.Line) {
	if def, ok := d.registry.Lookup(raw); ok {
		return domain.OutcomeFound, def.Output
	}
	return domain.OutcomeNotFound, NotFound(raw)
}

// Emit publishes a command event for work done outside Execute, such as
// a command typed by the boot animation.
func (d *Dispatcher) Emit(ctx context.Context, sessionID, raw string, outcome domain.Outcome) {
	d.emit(ctx, sessionID, raw, Result{Outcome: outcome, Command: registry.Normalize(raw)}, true)
}

func (d *Dispatcher) emit(ctx context.Context, sessionID, raw string, res Result, typed bool) {
	d.logger.Debug("Command dispatched",
		"session_id", sessionID,
		"command", res.Command,
		"outcome", res.Outcome,
		"typed", typed,
	)

	event := &domain.CommandEvent{
		EventBase: domain.EventBase{
			Timestamp: d.now(),
			Type:      domain.EventCommand,
			SessionID: sessionID,
		},
		Input:   raw,
		Command: res.Command,
		Outcome: res.Outcome,
		Typed:   typed,
	}
	if d.hooks.OnCommand != nil {
		d.hooks.OnCommand(ctx, event)
	}
	if res.Outcome == domain.OutcomeExit && d.hooks.OnExit != nil {
		exitEvent := *event
		exitEvent.Type = domain.EventExit
		d.hooks.OnExit(ctx, &exitEvent)
	}
}

// NotFound builds the two-line message for unknown input.
// The input is echoed verbatim as a text span.
func NotFound(raw string) []domain.Line {
	return []domain.Line{
		domain.NewLine(domain.Text("Command '"), domain.Text(raw), domain.Text("' not found.")),
		domain.NewLine(domain.Text("Type "), domain.Command(domain.CommandHelp), domain.Text(" to see available commands.")),
	}
}

// IsControl reports whether raw names a command handled by the dispatcher
// itself. Control commands are never typed by the boot animation.
func IsControl(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case domain.CommandClear, domain.CommandExit:
		return true
	}
	return false
}
