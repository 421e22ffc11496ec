package render

import (
	"strings"

	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/typing"
)

// Prompt is the glyph drawn before a command.
const Prompt = "❯"

// Styler decorates spans. The zero value renders plain text.
type Styler struct {
	Prompt  func(string) string
	Command func(string) string
	Link    func(url, label string) string
}

// Line renders one output line.
func (st Styler) Line(l domain.Line) string {
	var b strings.Builder
	for _, span := range l {
		text := Sanitize(span.Text)
		switch span.Kind {
		case domain.SpanCommand:
			if st.Command != nil {
				text = st.Command(text)
			}
		case domain.SpanLink:
			if st.Link != nil {
				text = st.Link(span.URL, span.Text)
			}
		}
		b.WriteString(text)
	}
	return b.String()
}

// Entry renders an entry: its prompt line when the command is non-empty,
// then each output line indented by indent.
func (st Styler) Entry(e domain.Entry, indent string) string {
	var b strings.Builder
	if e.Command != "" || e.Typing {
		prompt := Prompt
		if st.Prompt != nil {
			prompt = st.Prompt(prompt)
		}
		b.WriteString(prompt + " " + Sanitize(typing.DisplayCommand(e)) + "\n")
	}
	for _, l := range e.Output {
		b.WriteString(indent + st.Line(l) + "\n")
	}
	return b.String()
}

// Transcript renders every entry separated by a blank line.
func (st Styler) Transcript(entries []domain.Entry, indent string) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = st.Entry(e, indent)
	}
	return strings.Join(parts, "\n")
}

// PlainLine is the visible, sanitised text of a line.
func PlainLine(l domain.Line) string {
	return Styler{}.Line(l)
}
