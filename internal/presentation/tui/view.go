package tui

import (
	"strings"

	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/render"
	"github.com/aretw0/cvterm/pkg/typing"
	"github.com/charmbracelet/x/ansi"
)

const outputIndent = "  "

// clickTarget maps a region of the transcript to a command name.
type clickTarget struct {
	Line    int // 0-based line in the viewport content.
	StartX  int // Inclusive start column.
	EndX    int // Exclusive end column.
	Command string
}

// targetAt returns the command under a viewport-relative position.
func (m Model) targetAt(x, y int) string {
	line := m.viewport.YOffset + y
	for _, t := range m.targets {
		if t.Line == line && x >= t.StartX && x < t.EndX {
			return t.Command
		}
	}
	return ""
}

// renderTranscript draws every entry and, once ready, the status line of
// the live prompt. It returns the content with its click targets.
func (m Model) renderTranscript() (string, []clickTarget) {
	var (
		lines   []string
		targets []clickTarget
	)
	for i, e := range m.entries {
		if i > 0 {
			lines = append(lines, "")
		}
		if e.Command != "" || e.Typing {
			lines = append(lines, m.statusLine(), m.promptLine(e))
		}
		for _, l := range e.Output {
			rendered, lineTargets := m.renderLine(l, len(lines))
			lines = append(lines, rendered)
			targets = append(targets, lineTargets...)
		}
	}
	if m.notice != "" {
		lines = append(lines, "", m.styles.err.Render(render.Sanitize(m.notice)))
	}
	if m.phase == domain.PhaseReady {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, m.statusLine())
	}
	return strings.Join(lines, "\n"), targets
}

func (m Model) statusLine() string {
	st := m.styles
	return st.path.Render(m.status.Path) +
		st.faint.Render(" on ") + st.branch.Render("⎇ "+m.status.Branch) +
		st.faint.Render(" with ") + st.version.Render("⚛ "+m.status.Version) +
		st.faint.Render(" via ") + st.region.Render("☁️ ("+m.status.Region+")")
}

func (m Model) promptLine(e domain.Entry) string {
	return m.styles.prompt.Render(render.Prompt) + " " + m.styles.text.Render(render.Sanitize(typing.DisplayCommand(e)))
}

// renderLine styles one output line and records where its command spans land.
func (m Model) renderLine(l domain.Line, index int) (string, []clickTarget) {
	var (
		b       strings.Builder
		targets []clickTarget
	)
	b.WriteString(outputIndent)
	x := ansi.StringWidth(outputIndent)

	for _, span := range l {
		text := render.Sanitize(span.Text)
		width := ansi.StringWidth(text)
		switch span.Kind {
		case domain.SpanCommand:
			targets = append(targets, clickTarget{Line: index, StartX: x, EndX: x + width, Command: span.Command})
			b.WriteString(m.styles.command.Render(text))
		case domain.SpanLink:
			b.WriteString(ansi.SetHyperlink(render.Sanitize(span.URL)) + m.styles.link.Render(text) + ansi.ResetHyperlink())
		default:
			b.WriteString(m.styles.text.Render(text))
		}
		x += width
	}
	return b.String(), targets
}
