package domain

import "strings"

// SpanKind identifies how a span should be presented.
type SpanKind string

const (
	SpanText    SpanKind = "text"
	SpanCommand SpanKind = "command"
	SpanLink    SpanKind = "link"
)

// Span is the smallest unit of command output.
// Text is always the visible label. Command is set for SpanCommand and
// URL for SpanLink.
type Span struct {
	Kind    SpanKind `json:"kind" yaml:"kind"`
	Text    string   `json:"text" yaml:"text"`
	Command string   `json:"command,omitempty" yaml:"command,omitempty"`
	URL     string   `json:"url,omitempty" yaml:"url,omitempty"`
}

// Text returns a plain text span. Its content is never interpreted.
func Text(s string) Span {
	return Span{Kind: SpanText, Text: s}
}

// Command returns a span that, when activated, runs the named command.
func Command(name string) Span {
	return Span{Kind: SpanCommand, Text: name, Command: name}
}

// Link returns a span pointing at an external resource.
// An empty label falls back to the URL itself.
func Link(url, label string) Span {
	if label == "" {
		label = url
	}
	return Span{Kind: SpanLink, Text: label, URL: url}
}

// Line is one row of output.
type Line []Span

// NewLine builds a line from spans.
func NewLine(spans ...Span) Line {
	return Line(spans)
}

// PlainLine is a shortcut for a line holding a single text span.
func PlainLine(s string) Line {
	return Line{Text(s)}
}

// String returns the visible text of the line.
func (l Line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Commands returns the command names referenced by the line, in order.
func (l Line) Commands() []string {
	var out []string
	for _, s := range l {
		if s.Kind == SpanCommand {
			out = append(out, s.Command)
		}
	}
	return out
}

// Lines converts plain strings into single-span lines.
func Lines(texts ...string) []Line {
	out := make([]Line, len(texts))
	for i, t := range texts {
		out[i] = PlainLine(t)
	}
	return out
}

// LinesText joins the visible text of each line with newlines.
func LinesText(lines []Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.String()
	}
	return strings.Join(parts, "\n")
}
