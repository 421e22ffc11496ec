package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/ports"
)

// NewHooks builds lifecycle hooks feeding metrics, a usage recorder and a
// logger. Any of the three may be nil.
func NewHooks(metrics *Metrics, recorder ports.UsageRecorder, logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommand: func(ctx context.Context, e *domain.CommandEvent) {
			if logger != nil {
				logger.Info("command",
					"session_id", e.SessionID,
					"command", ports.UsageKey(e.Command, e.Outcome),
					"outcome", e.Outcome,
					"typed", e.Typed,
				)
			}
			if metrics != nil {
				metrics.ObserveCommand(e.Command, e.Outcome)
			}
			if recorder != nil {
				if err := recorder.Record(ctx, e.Command, e.Outcome); err != nil && logger != nil {
					logger.Warn("Failed to record usage", "command", e.Command, "err", err)
				}
			}
		},
		OnBootStep: func(ctx context.Context, e *domain.BootEvent) {
			if logger != nil {
				logger.Debug("boot_step", "session_id", e.SessionID, "step", e.Step)
			}
			if metrics != nil {
				metrics.ObserveBootStep(e.Step)
			}
		},
		OnExit: func(ctx context.Context, e *domain.CommandEvent) {
			if logger != nil {
				logger.Info("exit", "session_id", e.SessionID)
			}
			if metrics != nil {
				metrics.ObserveExit()
			}
		},
	}
}
