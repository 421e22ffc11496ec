package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/cvterm/internal/logging"
	"github.com/aretw0/cvterm/pkg/dispatcher"
	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/render"
	"github.com/aretw0/cvterm/pkg/session"
	"github.com/muesli/termenv"
)

// Engine is the part of the terminal the runner drives.
type Engine interface {
	NewSession(ctx context.Context, opts ...session.Option) *session.Session
	Boot(ctx context.Context, s *session.Session) error
	Execute(ctx context.Context, s *session.Session, input string) (dispatcher.Result, error)
	Status() render.Status
}

// Runner is the line-mode terminal loop.
type Runner struct {
	engine   Engine
	input    io.Reader
	output   io.Writer
	profile  *termenv.Profile
	logger   *slog.Logger
	boot     bool
	maxInput int
}

// New creates a Runner reading stdin and writing stdout.
func New(engine Engine, opts ...Option) *Runner {
	r := &Runner{
		engine:   engine,
		input:    os.Stdin,
		output:   os.Stdout,
		boot:     true,
		maxInput: DefaultMaxInputSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	return r
}

// Run plays the boot script and then dispatches one command per input line
// until the input ends, exit terminates the session or ctx is cancelled.
// It returns ctx's error only when the caller cancelled it.
func (r *Runner) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := r.engine.NewSession(runCtx, session.WithTerminate(cancel))
	defer s.Close()

	p := newPrinter(r.output, r.profile, r.engine.Status())
	unsubscribe := s.Subscribe(func(c session.Change) {
		p.handle(s, c)
	})
	defer unsubscribe()

	if r.boot {
		if err := r.engine.Boot(runCtx, s); err != nil {
			if runCtx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("boot failed: %w", err)
		}
	} else if err := s.SetPhase(domain.PhaseReady); err != nil {
		return err
	}

	lines := r.pump(runCtx)
	for {
		select {
		case <-runCtx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				r.logger.Debug("Input closed")
				return nil
			}
			if err := r.dispatch(runCtx, s, p, line); err != nil {
				if errors.Is(err, domain.ErrSessionClosed) {
					return ctx.Err()
				}
				return err
			}
		}
	}
}

func (r *Runner) dispatch(ctx context.Context, s *session.Session, p *printer, line string) error {
	line = strings.TrimRight(line, "\r\n")
	clean, err := SanitizeInput(line, r.maxInput)
	if err != nil {
		r.logger.Warn("Input rejected", "err", err, "size", len(line))
		p.warn(err.Error())
		clean = RejectedEcho(line)
	}
	if _, err := r.engine.Execute(ctx, s, clean); err != nil {
		return fmt.Errorf("execute failed: %w", err)
	}
	return nil
}

// pump reads lines in the background so a blocked read never holds up
// termination. The channel is closed at end of input.
func (r *Runner) pump(ctx context.Context) <-chan string {
	lines := make(chan string)
	reader := bufio.NewReader(r.input)
	go func() {
		defer close(lines)
		for {
			text, err := reader.ReadString('\n')
			if text != "" {
				select {
				case lines <- text:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if err != io.EOF {
					r.logger.Warn("Input read failed", "err", err)
				}
				return
			}
		}
	}()
	return lines
}
