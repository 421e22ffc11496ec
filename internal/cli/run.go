package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/cvterm/internal/presentation/tui"
	"github.com/aretw0/cvterm/pkg/runner"
)

// RunOptions configures an interactive session.
type RunOptions struct {
	Options
	// Plain forces the line-mode runner even on a terminal.
	Plain bool
	// Quiet skips the boot sequence in line mode, which suits piped input.
	Quiet bool
}

// Run starts an interactive résumé session. On a terminal it opens the
// full-screen view; otherwise (or with Plain) it reads one command per line.
func Run(opts RunOptions) error {
	fullScreen := !opts.Plain && isTerminal(os.Stdin) && isTerminal(os.Stdout)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	svc, err := createServices(sigCtx, opts.Options, factoryConfig{console: !fullScreen})
	if err != nil {
		return err
	}
	defer svc.Close()

	if fullScreen {
		err = runFullScreen(sigCtx, svc)
	} else {
		err = runPlain(sigCtx, svc, os.Stdin, os.Stdout, opts.Quiet)
	}

	logCompletion(os.Stderr, err, sigCtx.Signal())
	return handleExecutionError(err)
}

func runFullScreen(ctx context.Context, svc *services) error {
	model := tui.NewModel(ctx, svc.engine,
		tui.WithMaxInputSize(svc.settings.MaxInputSize),
		tui.WithLogger(svc.logger),
	)
	defer model.Close()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	svc.logger.Debug("Starting terminal view", "session_id", model.Session().ID())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal view: %w", err)
	}
	return nil
}

func runPlain(ctx context.Context, svc *services, in io.Reader, out io.Writer, quiet bool) error {
	opts := []runner.Option{
		runner.WithInput(in),
		runner.WithOutput(out),
		runner.WithLogger(svc.logger),
		runner.WithBoot(!quiet),
		runner.WithMaxInputSize(svc.settings.MaxInputSize),
	}
	if f, ok := out.(*os.File); !ok || !isTerminal(f) {
		opts = append(opts, runner.WithProfile(termenv.Ascii))
	}
	return runner.New(svc.engine, opts...).Run(ctx)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
