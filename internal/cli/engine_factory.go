package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/cvterm"
	"github.com/aretw0/cvterm/pkg/adapters/file"
	"github.com/aretw0/cvterm/pkg/adapters/memory"
	"github.com/aretw0/cvterm/pkg/adapters/redis"
	"github.com/aretw0/cvterm/pkg/config"
	"github.com/aretw0/cvterm/pkg/observability"
	"github.com/aretw0/cvterm/pkg/ports"
)

const redisPingTimeout = 3 * time.Second

// services bundles an engine with the infrastructure wired around it.
type services struct {
	settings config.Settings
	logger   *slog.Logger
	engine   *cvterm.Engine
	metrics  *observability.Metrics
	recorder ports.UsageRecorder
	closers  []io.Closer
}

// Close releases the recorder connection and the log file.
func (s *services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// factoryConfig selects the optional parts of createServices.
type factoryConfig struct {
	// console keeps logging on stderr. The full-screen UI turns it off.
	console bool
	// metrics enables the Prometheus collectors.
	metrics bool
}

// createServices initializes an engine with standard CLI conventions:
// settings from file/env/flags, a logger, usage counters (Redis when an
// address is configured, then a local file, in-memory otherwise) and
// lifecycle hooks.
func createServices(ctx context.Context, opts Options, fc factoryConfig) (*services, error) {
	settings, err := loadSettings(opts)
	if err != nil {
		return nil, err
	}

	logger, logCloser, err := createLogger(opts, settings.LogLevel, fc.console)
	if err != nil {
		return nil, err
	}
	svc := &services{
		settings: settings,
		logger:   logger,
		closers:  []io.Closer{logCloser},
	}

	if settings.RedisAddr != "" {
		rec := redis.New(settings.RedisAddr, "", 0)
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		err := rec.Ping(pingCtx)
		cancel()
		if err != nil {
			_ = rec.Close()
			_ = svc.Close()
			return nil, fmt.Errorf("usage recorder unavailable at %s: %w", settings.RedisAddr, err)
		}
		svc.recorder = rec
		svc.closers = append(svc.closers, rec)
		logger.Info("Usage counters in Redis", "addr", settings.RedisAddr)
	} else if opts.UsageFile != "" {
		svc.recorder = file.NewRecorder(opts.UsageFile)
		logger.Debug("Usage counters in file", "path", opts.UsageFile)
	} else {
		svc.recorder = memory.NewRecorder()
	}

	if fc.metrics {
		svc.metrics = observability.NewMetrics()
	}

	hooks := observability.NewHooks(svc.metrics, svc.recorder, logger)
	if opts.Debug {
		hooks = hooks.Merge(createDebugHooks(logger))
	}

	engine, err := cvterm.New(
		cvterm.WithSettings(settings),
		cvterm.WithLogger(logger),
		cvterm.WithLifecycleHooks(hooks),
	)
	if err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	svc.engine = engine
	return svc, nil
}
