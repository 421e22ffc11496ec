package http

import "github.com/aretw0/cvterm/pkg/domain"

// CommandSummary is one row of the command listing.
type CommandSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Command is a command with its rendered output.
type Command struct {
	CommandSummary
	Output []domain.Line `json:"output"`
	Text   string        `json:"text"`
}

// ExecuteRequest is the body of POST /api/execute.
type ExecuteRequest struct {
	Input string `json:"input"`
}

// ExecuteResponse reports what a command did.
type ExecuteResponse struct {
	Outcome          domain.Outcome `json:"outcome"`
	Command          string         `json:"command,omitempty"`
	Entry            *domain.Entry  `json:"entry,omitempty"`
	Text             string         `json:"text,omitempty"`
	TerminateAfterMs int64          `json:"terminate_after_ms"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
