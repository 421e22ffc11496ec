package content

import (
	"regexp"
	"sort"
	"strings"

	"github.com/aretw0/cvterm/pkg/domain"
)

const urlPattern = `https?://[^\s]+`

// Linkifier turns free text into spans: whole-word command names become
// command references and http(s) URLs become links.
type Linkifier struct {
	re *regexp.Regexp
}

// NewLinkifier builds a linkifier for the given command names.
func NewLinkifier(names []string) *Linkifier {
	sorted := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			sorted = append(sorted, regexp.QuoteMeta(n))
		}
	}
	// Longest first so "projects" wins over a hypothetical "project".
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	pattern := urlPattern
	if len(sorted) > 0 {
		pattern += `|\b(?:` + strings.Join(sorted, "|") + `)\b`
	}
	return &Linkifier{re: regexp.MustCompile(pattern)}
}

// Line converts text into a line of spans.
func (l *Linkifier) Line(text string) domain.Line {
	matches := l.re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return domain.PlainLine(text)
	}

	var line domain.Line
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > last {
			line = append(line, domain.Text(text[last:start]))
		}
		match := text[start:end]
		if strings.HasPrefix(match, "http://") || strings.HasPrefix(match, "https://") {
			url := strings.TrimRight(match, ".,;:!?)")
			line = append(line, domain.Link(url, url))
			end = start + len(url)
		} else {
			line = append(line, domain.Command(match))
		}
		last = end
	}
	if last < len(text) {
		line = append(line, domain.Text(text[last:]))
	}
	return line
}

// Lines converts each text into a line.
func (l *Linkifier) Lines(texts ...string) []domain.Line {
	out := make([]domain.Line, len(texts))
	for i, t := range texts {
		out[i] = l.Line(t)
	}
	return out
}
