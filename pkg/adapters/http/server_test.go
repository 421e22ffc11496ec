package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/cvterm"
	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	eng, err := cvterm.New()
	require.NoError(t, err)
	h, err := NewHandler(eng, opts...)
	require.NoError(t, err)
	return h
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	w := do(newTestHandler(t), "GET", "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListCommands(t *testing.T) {
	w := do(newTestHandler(t), "GET", "/api/commands", "")
	require.Equal(t, http.StatusOK, w.Code)

	cmds := decode[[]CommandSummary](t, w)
	require.NotEmpty(t, cmds)
	assert.Equal(t, "help", cmds[0].Name)
	assert.Equal(t, "exit", cmds[len(cmds)-1].Name)
	for _, c := range cmds {
		assert.NotEmpty(t, c.Description, c.Name)
	}
}

func TestGetCommand(t *testing.T) {
	h := newTestHandler(t)

	w := do(h, "GET", "/api/commands/SKILLS", "")
	require.Equal(t, http.StatusOK, w.Code)
	cmd := decode[Command](t, w)
	assert.Equal(t, "skills", cmd.Name)
	assert.NotEmpty(t, cmd.Output)
	assert.NotEmpty(t, cmd.Text)

	w = do(h, "GET", "/api/commands/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "command not found", decode[ErrorResponse](t, w).Error)
}

func TestExecute(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name      string
		input     string
		outcome   domain.Outcome
		hasEntry  bool
		text      string
		terminate int64
	}{
		{"found", "  Skills ", domain.OutcomeFound, true, "", 0},
		{"not found", "sudo", domain.OutcomeNotFound, true, "Command 'sudo' not found.\nType help to see available commands.", 0},
		{"blank", "   ", domain.OutcomeNoop, false, "", 0},
		{"clear", "CLEAR", domain.OutcomeClear, false, "", 0},
		{"exit", "exit", domain.OutcomeExit, true, "Goodbye! Thanks for visiting my CV.\nConnection closed.", 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(ExecuteRequest{Input: tt.input})
			w := do(h, "POST", "/api/execute", string(body))
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			resp := decode[ExecuteResponse](t, w)
			assert.Equal(t, tt.outcome, resp.Outcome)
			assert.Equal(t, tt.hasEntry, resp.Entry != nil)
			assert.Equal(t, tt.terminate, resp.TerminateAfterMs)
			if tt.text != "" {
				assert.Equal(t, tt.text, resp.Text)
			}
		})
	}
}

func TestExecute_FoundKeepsTypedCase(t *testing.T) {
	w := do(newTestHandler(t), "POST", "/api/execute", `{"input":"WhoAmI"}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[ExecuteResponse](t, w)
	require.NotNil(t, resp.Entry)
	assert.Equal(t, "WhoAmI", resp.Entry.Command)
}

func TestExecute_Validation(t *testing.T) {
	h := newTestHandler(t, WithMaxInputSize(8))

	tests := []struct {
		name string
		body string
	}{
		{"too long", `{"input":"abcdefghijk"}`},
		{"missing input", `{}`},
		{"unknown field", `{"input":"help","shell":"bash"}`},
		{"wrong type", `{"input":42}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, "POST", "/api/execute", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, decode[ErrorResponse](t, w).Error, "invalid request")
		})
	}
}

func TestSpec_ReflectsLimit(t *testing.T) {
	w := do(newTestHandler(t, WithMaxInputSize(8)), "GET", "/openapi.yaml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "maxLength: 8")
	assert.Contains(t, w.Body.String(), "At most 8 bytes")
}

func TestExecute_LimitCountsBytes(t *testing.T) {
	h := newTestHandler(t, WithMaxInputSize(8))

	// Six characters pass maxLength but take twelve bytes.
	w := do(h, "POST", "/api/execute", `{"input":"éééééé"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, decode[ErrorResponse](t, w).Error, "exceeds maximum allowed size")

	w = do(h, "POST", "/api/execute", `{"input":"éééé"}`)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestMetrics(t *testing.T) {
	h := newTestHandler(t, WithMetrics(observability.NewMetrics()))

	require.Equal(t, http.StatusOK, do(h, "POST", "/api/execute", `{"input":"help"}`).Code)

	w := do(h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `route="/api/execute"`)
}

func TestCORS(t *testing.T) {
	h := newTestHandler(t, WithCORS(true))
	w := do(h, "OPTIONS", "/api/execute", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
