package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/cvterm"
	"github.com/aretw0/cvterm/internal/logging"
	"github.com/aretw0/cvterm/pkg/dispatcher"
	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/registry"
	"github.com/aretw0/cvterm/pkg/render"
	"github.com/aretw0/cvterm/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	CommandsURI = "cv://commands"
	ResumeURI   = "cv://resume.md"
)

// RunArgs are the arguments of the run_command tool.
type RunArgs struct {
	Input string `json:"input"`
}

// RunResult mirrors the HTTP execute response.
type RunResult struct {
	Outcome          string `json:"outcome" jsonschema_description:"noop, found, not_found, clear or exit"`
	Command          string `json:"command,omitempty" jsonschema_description:"The normalised command name"`
	Text             string `json:"text" jsonschema_description:"The command output as plain text"`
	TerminateAfterMs int64  `json:"terminate_after_ms" jsonschema_description:"Delay before an interactive session would close, set only for exit"`
}

// Engine defines what the MCP server needs from the terminal core.
type Engine interface {
	Run(ctx context.Context, input string) (dispatcher.Result, error)
	Registry() *registry.Registry
	Markdown() string
}

// Server exposes the résumé commands as MCP tools and resources.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
	maxInput  int
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMaxInputSize bounds the run_command input.
func WithMaxInputSize(n int) Option {
	return func(s *Server) {
		s.maxInput = n
	}
}

// WithLogger sets the logger. MCP over stdio owns stdout, so it should write elsewhere.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine:   engine,
		maxInput: runner.DefaultMaxInputSize,
		mcpServer: server.NewMCPServer("cvterm-mcp", strings.TrimSpace(cvterm.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	r := chi.NewRouter()
	r.Handle("/sse", sseServer.SSEHandler())
	r.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	runTool := mcp.NewTool("run_command",
		mcp.WithDescription("Run a command in the CV terminal and return its output. Start with 'help'."),
		mcp.WithString("input", mcp.Required(), mcp.Description("The command line, e.g. whoami or skills")),
		mcp.WithOutputSchema[RunResult](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRun))

	s.mcpServer.AddTool(mcp.NewTool("list_commands",
		mcp.WithDescription("List every command with its description."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var b strings.Builder
		for _, def := range s.engine.Registry().Definitions() {
			fmt.Fprintf(&b, "%s - %s\n", def.Name, def.Description)
		}
		return mcp.NewToolResultText(b.String()), nil
	})
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest, args RunArgs) (RunResult, error) {
	clean, err := runner.SanitizeInput(args.Input, s.maxInput)
	if err != nil {
		s.logger.Warn("MCP run_command: Input rejected", "err", err, "size", len(args.Input))
		return RunResult{}, fmt.Errorf("input rejected: %w", err)
	}

	res, err := s.engine.Run(ctx, clean)
	if err != nil {
		return RunResult{}, fmt.Errorf("run failed: %w", err)
	}

	out := RunResult{
		Outcome:          string(res.Outcome),
		Command:          res.Command,
		TerminateAfterMs: res.TerminateAfter.Milliseconds(),
	}
	if res.Entry != nil {
		out.Text = plainText(res.Entry.Output)
	}
	return out, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(CommandsURI, "CV commands",
		mcp.WithResourceDescription("Every command with its description and output"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Registry().Definitions())
		if err != nil {
			return nil, fmt.Errorf("failed to encode commands: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      CommandsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	s.mcpServer.AddResource(mcp.NewResource(ResumeURI, "Résumé",
		mcp.WithResourceDescription("The whole résumé as Markdown"),
		mcp.WithMIMEType("text/markdown"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ResumeURI,
				MIMEType: "text/markdown",
				Text:     s.engine.Markdown(),
			},
		}, nil
	})
}

func plainText(lines []domain.Line) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = render.PlainLine(l)
	}
	return strings.Join(out, "\n")
}
