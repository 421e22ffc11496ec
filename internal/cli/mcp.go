package cli

import (
	"context"
	"fmt"
	"os"

	mcpadapter "github.com/aretw0/cvterm/pkg/adapters/mcp"
)

// MCPOptions configures the Model Context Protocol server.
type MCPOptions struct {
	Options
	// Transport is "stdio" or "sse".
	Transport string
	Addr      string
	BaseURL   string
}

// ServeMCP exposes the résumé to MCP clients.
// With stdio the process talks JSON-RPC on stdout, so logs stay on stderr.
func ServeMCP(opts MCPOptions) error {
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	svc, err := createServices(sigCtx, opts.Options, factoryConfig{console: true})
	if err != nil {
		return err
	}
	defer svc.Close()

	srv := mcpadapter.NewServer(svc.engine,
		mcpadapter.WithLogger(svc.logger),
		mcpadapter.WithMaxInputSize(svc.settings.MaxInputSize),
	)

	switch opts.Transport {
	case "", "stdio":
		svc.logger.Info("Starting MCP Server (Stdio)")
		err = srv.ServeStdio()
	case "sse":
		printSystemMessage(os.Stderr, "MCP Server (SSE) on %s", opts.Addr)
		err = srv.ServeSSE(sigCtx, opts.Addr, sseBaseURL(opts.Addr, opts.BaseURL))
	default:
		return fmt.Errorf("unknown transport %q (want stdio or sse)", opts.Transport)
	}
	return handleExecutionError(err)
}
