package render_test

import (
	"strings"
	"testing"

	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/render"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"unicode", "héllo 日本語 🚀", "héllo 日本語 🚀"},
		{"sgr", "\x1b[31mred\x1b[0m", "red"},
		{"osc hyperlink", "\x1b]8;;https://evil\x07click\x1b]8;;\x07", "click"},
		{"bell and null", "a\x07b\x00c", "abc"},
		{"tabs and newlines", "a\tb\nc", "a b c"},
		{"markup is untouched", "<b>bold</b>", "<b>bold</b>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render.Sanitize(tt.input))
		})
	}
}

func TestStyler_Entry(t *testing.T) {
	entry := domain.Entry{
		Command: "nope\x1b[2J",
		Output: []domain.Line{
			domain.NewLine(domain.Text("Type "), domain.Command("help"), domain.Text(".")),
			domain.NewLine(domain.Link("https://example.com", "site")),
		},
	}

	plain := render.Styler{}.Entry(entry, "  ")
	assert.Equal(t, "❯ nope\n  Type help.\n  site\n", plain)

	styled := render.Styler{
		Command: func(s string) string { return "[" + s + "]" },
		Link:    func(url, label string) string { return label + " <" + url + ">" },
	}.Entry(entry, "")
	assert.Contains(t, styled, "Type [help].")
	assert.Contains(t, styled, "site <https://example.com>")
}

func TestStyler_SystemEntryHasNoPrompt(t *testing.T) {
	out := render.Styler{}.Entry(domain.Entry{Output: domain.Lines("CV Terminal v0.1.0")}, "")
	assert.Equal(t, "CV Terminal v0.1.0\n", out)
}

func TestStyler_TypingEntryShowsCursor(t *testing.T) {
	out := render.Styler{}.Entry(domain.Entry{Command: "who", Typing: true}, "")
	assert.Equal(t, "❯ who█\n", out)
}

func TestMarkdown(t *testing.T) {
	defs := []domain.CommandDefinition{
		{Name: "help", Description: "Show available commands", Output: domain.Lines("Available commands:")},
		{Name: "whoami", Description: "Display summary", Output: []domain.Line{
			domain.PlainLine("Alex *Rivera*"),
			domain.PlainLine(""),
			domain.NewLine(domain.Text("GitHub: "), domain.Link("https://github.com/example", "")),
			domain.NewLine(domain.Text("See "), domain.Command("skills")),
		}},
		{Name: "clear", Description: "Clear screen"},
	}

	md := render.Markdown("Alex Rivera", defs)
	assert.True(t, strings.HasPrefix(md, "# Alex Rivera\n"))
	assert.Contains(t, md, "## Display summary")
	assert.Contains(t, md, `Alex \*Rivera\*`)
	assert.Contains(t, md, "[https://github.com/example](https://github.com/example)")
	assert.Contains(t, md, "See `skills`")
	assert.NotContains(t, md, "Available commands")
	assert.NotContains(t, md, "Clear screen")
}

func TestHyperlink(t *testing.T) {
	link := render.Hyperlink("https://example.com", "site")
	assert.Contains(t, link, "https://example.com")
	assert.Equal(t, "site", render.Sanitize(link))
}

func TestStatus(t *testing.T) {
	st := render.Status{Path: "~/cv", Branch: "main", Version: "v19.1.0", Region: "eu-west-2"}
	assert.Equal(t, "~/cv on ⎇ main with ⚛ v19.1.0 via ☁️ (eu-west-2)", st.String())
}
