package runner

import (
	"io"
	"log/slog"

	"github.com/muesli/termenv"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithInput sets the command source. Defaults to stdin.
func WithInput(r io.Reader) Option {
	return func(rn *Runner) {
		rn.input = r
	}
}

// WithOutput sets where entries are printed. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(rn *Runner) {
		rn.output = w
	}
}

// WithProfile forces a colour profile instead of detecting one from the output.
func WithProfile(p termenv.Profile) Option {
	return func(rn *Runner) {
		rn.profile = &p
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(rn *Runner) {
		rn.logger = logger
	}
}

// WithBoot toggles the start-up script. Enabled by default.
func WithBoot(enabled bool) Option {
	return func(rn *Runner) {
		rn.boot = enabled
	}
}

// WithMaxInputSize bounds a single command line.
func WithMaxInputSize(n int) Option {
	return func(rn *Runner) {
		rn.maxInput = n
	}
}
