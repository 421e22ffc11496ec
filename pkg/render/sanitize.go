package render

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Sanitize makes s safe to draw on a single terminal row. Escape sequences
// are removed, tabs become spaces and every other control character is
// dropped, so user-influenced text can never move the cursor, recolour
// the screen or inject hyperlinks.
func Sanitize(s string) string {
	s = ansi.Strip(s)

	clean := true
	for _, r := range s {
		if unicode.IsControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(' ')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Hyperlink wraps label in an OSC 8 hyperlink to url.
func Hyperlink(url, label string) string {
	return ansi.SetHyperlink(Sanitize(url)) + Sanitize(label) + ansi.ResetHyperlink()
}
