package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/cvterm/internal/logging"
	"github.com/aretw0/cvterm/pkg/dispatcher"
	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/observability"
	"github.com/aretw0/cvterm/pkg/registry"
	"github.com/aretw0/cvterm/pkg/render"
	"github.com/aretw0/cvterm/pkg/runner"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var rawSpec []byte

// Engine defines what the API needs from the terminal core.
type Engine interface {
	Run(ctx context.Context, input string) (dispatcher.Result, error)
	Registry() *registry.Registry
}

// Server serves the résumé commands over JSON.
type Server struct {
	Engine   Engine
	logger   *slog.Logger
	metrics  *observability.Metrics
	maxInput int
	cors     bool
	spec     []byte
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics instruments every request and mounts /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithMaxInputSize bounds the execute input. It is enforced by the request
// validator through the OpenAPI maxLength of input.
func WithMaxInputSize(n int) Option {
	return func(s *Server) {
		s.maxInput = n
	}
}

// WithCORS allows any origin to call the API.
func WithCORS(enabled bool) Option {
	return func(s *Server) {
		s.cors = enabled
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) (http.Handler, error) {
	server := &Server{
		Engine:   engine,
		maxInput: runner.DefaultMaxInputSize,
	}
	for _, opt := range opts {
		opt(server)
	}
	if server.logger == nil {
		server.logger = logging.NewNop()
	}

	doc, err := loadSpec(server.maxInput)
	if err != nil {
		return nil, err
	}
	server.spec, err = yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode OpenAPI document: %w", err)
	}
	validate, err := newValidator(doc, server.logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if server.metrics != nil {
		r.Use(instrument(server.metrics))
	}
	if server.cors {
		r.Use(enableCORS)
	}

	r.Get("/openapi.yaml", server.GetSpec)
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(validate)
		r.Get("/healthz", server.GetHealth)
		r.Get("/api/commands", server.ListCommands)
		r.Get("/api/commands/{name}", server.GetCommand)
		r.Post("/api/execute", server.Execute)
	})

	return r, nil
}

// loadSpec parses the embedded document and applies the input limit.
// The limit is in bytes; maxLength only bounds characters, so the handler
// enforces the byte count.
func loadSpec(maxInput int) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}
	input, err := executeInputSchema(doc)
	if err != nil {
		return nil, err
	}
	limit := uint64(maxInput)
	input.MaxLength = &limit
	input.Description = fmt.Sprintf("At most %d bytes of UTF-8. maxLength counts characters, so multi-byte input can pass it and still be rejected.", maxInput)
	return doc, nil
}

func executeInputSchema(doc *openapi3.T) (*openapi3.Schema, error) {
	path := doc.Paths.Value("/api/execute")
	if path == nil || path.Post == nil || path.Post.RequestBody == nil || path.Post.RequestBody.Value == nil {
		return nil, errors.New("OpenAPI document has no execute request body")
	}
	media := path.Post.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, errors.New("OpenAPI document has no execute JSON schema")
	}
	input, ok := media.Schema.Value.Properties["input"]
	if !ok || input.Value == nil {
		return nil, errors.New("OpenAPI document has no execute input property")
	}
	return input.Value, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func instrument(m *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.ObserveHTTP(route, r.Method, strconv.Itoa(status), time.Since(start).Seconds())
		})
	}
}

// GetSpec serves the OpenAPI document with the effective limits.
func (s *Server) GetSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(s.spec)
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// ListCommands handles GET /api/commands.
func (s *Server) ListCommands(w http.ResponseWriter, r *http.Request) {
	defs := s.Engine.Registry().Definitions()
	resp := make([]CommandSummary, len(defs))
	for i, def := range defs {
		resp[i] = CommandSummary{Name: def.Name, Description: def.Description}
	}
	writeJSON(w, s.logger, http.StatusOK, resp)
}

// GetCommand handles GET /api/commands/{name}.
func (s *Server) GetCommand(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	def, ok := s.Engine.Registry().Lookup(name)
	if !ok {
		writeError(w, s.logger, http.StatusNotFound, "command not found")
		return
	}
	writeJSON(w, s.logger, http.StatusOK, Command{
		CommandSummary: CommandSummary{Name: def.Name, Description: def.Description},
		Output:         def.Output,
		Text:           plainText(def.Output),
	})
}

// Execute handles POST /api/execute.
// The request runs against a throw-away session, so exit only reports the
// delay after which an interactive host would terminate.
func (s *Server) Execute(w http.ResponseWriter, r *http.Request) {
	var body ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, s.logger, http.StatusBadRequest, "invalid request body")
		s.logger.Warn("Execute: Invalid request body", "err", err)
		return
	}

	input, err := runner.SanitizeInput(body.Input, s.maxInput)
	if err != nil {
		writeError(w, s.logger, http.StatusBadRequest, err.Error())
		s.logger.Warn("Execute: Input rejected", "err", err, "size", len(body.Input))
		return
	}

	res, err := s.Engine.Run(r.Context(), input)
	if err != nil {
		writeError(w, s.logger, http.StatusInternalServerError, "execute failed")
		s.logger.Error("Execute failed", "err", err)
		return
	}

	resp := ExecuteResponse{
		Outcome:          res.Outcome,
		Command:          res.Command,
		Entry:            res.Entry,
		TerminateAfterMs: res.TerminateAfter.Milliseconds(),
	}
	if res.Entry != nil {
		resp.Text = plainText(res.Entry.Output)
	}
	writeJSON(w, s.logger, http.StatusOK, resp)
}

// Serve runs h on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("HTTP server shutting down", "addr", addr)
		return srv.Shutdown(shutdownCtx)
	}
}

// -- Helpers --

func plainText(lines []domain.Line) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = render.PlainLine(l)
	}
	return strings.Join(out, "\n")
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	writeJSON(w, logger, status, ErrorResponse{Error: msg})
}
