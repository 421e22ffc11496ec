package domain

// CommandDefinition is a registered command and its pre-authored output.
type CommandDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Output      []Line `json:"output"`
}

// Outcome describes what a dispatch did to the session.
type Outcome string

const (
	OutcomeNoop     Outcome = "noop"
	OutcomeFound    Outcome = "found"
	OutcomeNotFound Outcome = "not_found"
	OutcomeClear    Outcome = "clear"
	OutcomeExit     Outcome = "exit"
)

// Control command names handled by the dispatcher itself.
const (
	CommandHelp  = "help"
	CommandClear = "clear"
	CommandExit  = "exit"
)
