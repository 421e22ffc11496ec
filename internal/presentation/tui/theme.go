package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour palette of the terminal view.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color
	ErrorText  lipgloss.Color

	Prompt  lipgloss.Color
	Command lipgloss.Color // Clickable command names.
	Link    lipgloss.Color
	Cursor  lipgloss.Color

	// Status line segments.
	StatusPath    lipgloss.Color
	StatusBranch  lipgloss.Color
	StatusVersion lipgloss.Color
	StatusRegion  lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal colour scheme.
var DefaultTheme = Theme{
	NormalText:    lipgloss.Color("252"),
	FaintText:     lipgloss.Color("243"),
	ErrorText:     lipgloss.Color("203"),
	Prompt:        lipgloss.Color("78"),
	Command:       lipgloss.Color("81"),
	Link:          lipgloss.Color("111"),
	Cursor:        lipgloss.Color("252"),
	StatusPath:    lipgloss.Color("39"),
	StatusBranch:  lipgloss.Color("141"),
	StatusVersion: lipgloss.Color("117"),
	StatusRegion:  lipgloss.Color("214"),
}

type styles struct {
	text, faint, err      lipgloss.Style
	prompt, command, link lipgloss.Style
	path, branch, version lipgloss.Style
	region                lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		text:    lipgloss.NewStyle().Foreground(t.NormalText),
		faint:   lipgloss.NewStyle().Foreground(t.FaintText),
		err:     lipgloss.NewStyle().Foreground(t.ErrorText),
		prompt:  lipgloss.NewStyle().Foreground(t.Prompt).Bold(true),
		command: lipgloss.NewStyle().Foreground(t.Command).Underline(true),
		link:    lipgloss.NewStyle().Foreground(t.Link).Underline(true),
		path:    lipgloss.NewStyle().Foreground(t.StatusPath).Bold(true),
		branch:  lipgloss.NewStyle().Foreground(t.StatusBranch).Bold(true),
		version: lipgloss.NewStyle().Foreground(t.StatusVersion).Bold(true),
		region:  lipgloss.NewStyle().Foreground(t.StatusRegion).Bold(true),
	}
}
