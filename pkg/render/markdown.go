package render

import (
	"fmt"
	"strings"

	"github.com/aretw0/cvterm/pkg/domain"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`,
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`, "#", `\#`, "|", `\|`,
)

// MarkdownLine renders a line as Markdown. Text is escaped, command
// references become inline code and links become Markdown links.
func MarkdownLine(l domain.Line) string {
	var b strings.Builder
	for _, span := range l {
		switch span.Kind {
		case domain.SpanCommand:
			b.WriteString("`" + Sanitize(span.Command) + "`")
		case domain.SpanLink:
			fmt.Fprintf(&b, "[%s](%s)", markdownEscaper.Replace(Sanitize(span.Text)), Sanitize(span.URL))
		default:
			b.WriteString(markdownEscaper.Replace(Sanitize(span.Text)))
		}
	}
	return b.String()
}

// Markdown renders the given command definitions as a single document.
// Commands without output (clear, exit) are skipped.
func Markdown(title string, defs []domain.CommandDefinition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", markdownEscaper.Replace(title))
	for _, def := range defs {
		if len(def.Output) == 0 || def.Name == domain.CommandHelp {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", markdownEscaper.Replace(def.Description))
		for _, l := range def.Output {
			text := strings.TrimRight(MarkdownLine(l), " ")
			if strings.TrimSpace(text) == "" {
				b.WriteString("\n")
				continue
			}
			// Two trailing spaces keep the original line breaks.
			b.WriteString(text + "  \n")
		}
	}
	return b.String()
}
