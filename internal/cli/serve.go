package cli

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/cvterm"
	httpadapter "github.com/aretw0/cvterm/pkg/adapters/http"
	mcpadapter "github.com/aretw0/cvterm/pkg/adapters/mcp"
	"github.com/aretw0/cvterm/internal/presentation/tui"
)

// ServeOptions configures the HTTP API.
type ServeOptions struct {
	Options
	Addr string
	CORS bool
	// SSEAddr additionally exposes the MCP server over SSE when set.
	SSEAddr string
	// SSEBaseURL is the public URL advertised to SSE clients.
	SSEBaseURL string
}

// Serve runs the JSON API (with /metrics) until interrupted, optionally
// alongside the MCP SSE transport.
func Serve(opts ServeOptions) error {
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	svc, err := createServices(sigCtx, opts.Options, factoryConfig{console: true, metrics: true})
	if err != nil {
		return err
	}
	defer svc.Close()

	handler, err := httpadapter.NewHandler(svc.engine,
		httpadapter.WithLogger(svc.logger),
		httpadapter.WithMetrics(svc.metrics),
		httpadapter.WithMaxInputSize(svc.settings.MaxInputSize),
		httpadapter.WithCORS(opts.CORS),
	)
	if err != nil {
		return fmt.Errorf("failed to build HTTP handler: %w", err)
	}

	tui.PrintBanner(os.Stderr, cvterm.Version)
	printSystemMessage(os.Stderr, "Serving %s on %s", svc.engine.Document().Name, opts.Addr)

	g, ctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		return httpadapter.Serve(ctx, opts.Addr, handler, svc.logger)
	})
	if opts.SSEAddr != "" {
		srv := mcpadapter.NewServer(svc.engine,
			mcpadapter.WithLogger(svc.logger),
			mcpadapter.WithMaxInputSize(svc.settings.MaxInputSize),
		)
		g.Go(func() error {
			return srv.ServeSSE(ctx, opts.SSEAddr, sseBaseURL(opts.SSEAddr, opts.SSEBaseURL))
		})
	}

	err = g.Wait()
	logCompletion(os.Stderr, err, sigCtx.Signal())
	return handleExecutionError(err)
}

func sseBaseURL(addr, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
