package domain

import "time"

// Entry is one record of the session transcript.
// An empty Command marks a system entry (e.g. the boot banner) that is
// rendered without a prompt line.
type Entry struct {
	Command   string    `json:"command"`
	Output    []Line    `json:"output"`
	Timestamp time.Time `json:"timestamp"`
	// Typing is set while the animator is still revealing Command.
	Typing bool `json:"typing,omitempty"`
	// Placeholder is set until the animator commits the final output.
	// It outlives Typing during the settle delay.
	Placeholder bool `json:"placeholder,omitempty"`
}

// Clone returns a copy whose output slice can be mutated independently.
func (e Entry) Clone() Entry {
	if e.Output != nil {
		out := make([]Line, len(e.Output))
		copy(out, e.Output)
		e.Output = out
	}
	return e
}

// Phase is the lifecycle stage of a session.
type Phase string

const (
	PhaseBooting Phase = "booting"
	PhaseReady   Phase = "ready"
)
