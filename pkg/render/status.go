package render

import "fmt"

// Status is the decorative shell prompt drawn above every command, in the
// style of a Starship prompt. None of its fields reflect real state.
type Status struct {
	Path    string
	Branch  string
	Version string
	Region  string
}

// String renders the status line as plain text.
func (s Status) String() string {
	return fmt.Sprintf("%s on ⎇ %s with ⚛ %s via ☁️ (%s)", s.Path, s.Branch, s.Version, s.Region)
}
