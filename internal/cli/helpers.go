package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/cvterm/internal/logging"
	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/ports"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// Unlike signal.NotifyContext it remembers which signal fired.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger.
// Console output goes to stderr so stdout stays clean for the transcript,
// JSON-RPC or exported Markdown. The full-screen UI passes console=false
// and relies on the log file alone.
func createLogger(opts Options, levelName string, console bool) (*slog.Logger, io.Closer, error) {
	if levelName == "" {
		levelName = "info"
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, nil, err
	}
	if opts.Debug {
		level = slog.LevelDebug
	}

	var handlers []slog.Handler
	if console {
		handlers = append(handlers, logging.NewTextHandler(os.Stderr, level))
	}

	var closer io.Closer = nopCloser{}
	if opts.LogFile != "" {
		f, err := logging.OpenFile(opts.LogFile)
		if err != nil {
			return nil, nil, err
		}
		handlers = append(handlers, logging.NewJSONHandler(f, level))
		closer = f
	}

	return logging.Fanout(handlers...), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// printSystemMessage prints a standardized system message to w.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommand: func(ctx context.Context, e *domain.CommandEvent) {
			logger.Debug("Dispatch", "session_id", e.SessionID, "command", ports.UsageKey(e.Command, e.Outcome), "at", e.Timestamp)
		},
		OnBootStep: func(ctx context.Context, e *domain.BootEvent) {
			logger.Debug("Boot Step", "session_id", e.SessionID, "step", e.Step)
		},
		OnExit: func(ctx context.Context, e *domain.CommandEvent) {
			logger.Debug("Exit Scheduled", "session_id", e.SessionID)
		},
	}
}

func isInterrupted(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, tea.ErrInterrupted) ||
		errors.Is(err, tea.ErrProgramKilled) ||
		errors.Is(err, io.EOF)
}

func handleExecutionError(err error) error {
	if err == nil {
		return nil
	}
	if isInterrupted(err) {
		return nil // Exit 0 for interruptions
	}
	return err
}

func logCompletion(w io.Writer, err error, sig os.Signal) {
	if err == nil || !isInterrupted(err) {
		return
	}
	switch sig {
	case os.Interrupt:
		fmt.Fprintf(w, "[CTRL+C]\n")
		printSystemMessage(w, "Session interrupted.")
	case nil:
		printSystemMessage(w, "Session closed.")
	default:
		fmt.Fprintf(w, "\n")
		printSystemMessage(w, "Session terminated (%s).", sig)
	}
}
