package content

import (
	"fmt"
	"strings"

	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/registry"
)

const (
	skillBarWidth = 20
	helpNameWidth = 15
)

// Descriptions of the built-in commands, as listed by help.
var builtinDescriptions = map[string]string{
	"help":       "Show available commands",
	"whoami":     "Display summary",
	"experience": "List current and past job roles",
	"skills":     "Display technical skills",
	"education":  "Show educational background",
	"contact":    "Display contact information",
	"projects":   "List personal projects",
	"clear":      "Clear screen",
	"exit":       "Close CV Terminal",
}

var builtinOrder = []string{"help", "whoami", "experience", "skills", "education", "contact", "projects"}

// BuildRegistry renders the document into a validated command registry.
func BuildRegistry(doc *Document) (*registry.Registry, error) {
	defs, err := Definitions(doc)
	if err != nil {
		return nil, err
	}
	return registry.New(defs...)
}

// Definitions renders every command of the document in declaration order:
// built-ins, then extra commands, then clear and exit.
func Definitions(doc *Document) ([]domain.CommandDefinition, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	names := append([]string{}, builtinOrder...)
	for _, extra := range doc.Extra {
		names = append(names, registry.Normalize(extra.Name))
	}
	names = append(names, domain.CommandClear, domain.CommandExit)

	descriptions := make(map[string]string, len(names))
	for k, v := range builtinDescriptions {
		descriptions[k] = v
	}
	for _, extra := range doc.Extra {
		descriptions[registry.Normalize(extra.Name)] = extra.Description
	}

	lk := NewLinkifier(names)
	outputs := map[string][]domain.Line{
		"help":       lk.Lines(helpText(names, descriptions)...),
		"whoami":     whoami(doc, lk),
		"experience": lk.Lines(experienceText(doc)...),
		"skills":     lk.Lines(skillsText(doc)...),
		"education":  lk.Lines(educationText(doc)...),
		"contact":    contact(doc, lk),
		"projects":   lk.Lines(projectsText(doc)...),
	}
	for _, extra := range doc.Extra {
		outputs[registry.Normalize(extra.Name)] = lk.Lines(extra.Output...)
	}

	defs := make([]domain.CommandDefinition, 0, len(names))
	for _, name := range names {
		defs = append(defs, domain.CommandDefinition{
			Name:        name,
			Description: descriptions[name],
			Output:      outputs[name],
		})
	}
	return defs, nil
}

func helpText(names []string, descriptions map[string]string) []string {
	out := []string{"Available commands:"}
	for _, name := range names {
		if name == "help" {
			continue
		}
		out = append(out, fmt.Sprintf("  %-*s - %s", helpNameWidth, name, descriptions[name]))
	}
	return out
}

func whoami(doc *Document, lk *Linkifier) []domain.Line {
	var lines []domain.Line
	for _, s := range []string{doc.Name, doc.Title, doc.Location} {
		if s != "" {
			lines = append(lines, domain.PlainLine(s))
		}
	}
	if len(doc.About) > 0 {
		lines = append(lines, domain.PlainLine(""))
		lines = append(lines, lk.Lines(doc.About...)...)
	}

	var links []domain.Line
	if doc.Contact.GitHub != "" {
		links = append(links, labelledLink("🐙 GitHub:     ", doc.Contact.GitHub))
	}
	if doc.Contact.LinkedIn != "" {
		links = append(links, labelledLink("💼 LinkedIn:   ", doc.Contact.LinkedIn))
	}
	if len(links) > 0 {
		lines = append(lines, domain.PlainLine(""))
		lines = append(lines, links...)
	}
	return lines
}

func experienceText(doc *Document) []string {
	var out []string
	for _, role := range doc.Experience {
		icon := role.Icon
		if icon == "" {
			icon = "💼"
		}
		header := fmt.Sprintf("%s %s", icon, role.Organisation)
		if role.Period != "" {
			header += fmt.Sprintf(" (%s)", role.Period)
		}
		out = append(out, header)
		if role.Position != "" {
			out = append(out, "   "+role.Position)
		}
		for _, h := range role.Highlights {
			out = append(out, "   • "+h)
		}
		out = append(out, "")
	}
	return append(out, "🎓 See also: education, skills, projects")
}

func skillsText(doc *Document) []string {
	var out []string
	for _, group := range doc.Skills {
		width := 10
		for _, s := range group.Items {
			if n := len([]rune(s.Name)); n > width {
				width = n
			}
		}
		out = append(out, strings.TrimSpace(group.Icon+" "+group.Title)+":")
		for _, s := range group.Items {
			out = append(out, fmt.Sprintf("   %-*s %s %d%%", width, s.Name, SkillBar(s.Level), s.Level))
		}
		out = append(out, "")
	}
	return append(out, "🚀 See my work: projects, experience")
}

// SkillBar draws a fixed-width bar for a 0-100 level.
func SkillBar(level int) string {
	level = max(0, min(100, level))
	filled := (level*skillBarWidth + 50) / 100
	return strings.Repeat("█", filled) + strings.Repeat(" ", skillBarWidth-filled)
}

func educationText(doc *Document) []string {
	var out []string
	for _, s := range doc.Education {
		header := "🎓 " + s.Institution
		if s.Year != "" {
			header += ", graduated " + s.Year
		}
		out = append(out, header)
		if s.Award != "" {
			out = append(out, "    "+s.Award)
		}
		out = append(out, "")
	}
	if len(doc.Certifications) > 0 {
		out = append(out, "📜 Certifications:")
		for _, c := range doc.Certifications {
			line := "    " + c.Name
			if c.Year != "" {
				line += fmt.Sprintf(" (%s)", c.Year)
			}
			out = append(out, line)
		}
		out = append(out, "")
	}
	return append(out, "💼 See related: skills, experience")
}

func contact(doc *Document, lk *Linkifier) []domain.Line {
	c := doc.Contact
	var lines []domain.Line
	if c.Email != "" {
		lines = append(lines, domain.NewLine(domain.Text("📧 Email:    "), domain.Link("mailto:"+c.Email, c.Email)))
	}
	if doc.Location != "" {
		lines = append(lines, domain.PlainLine("📍 Location: "+doc.Location))
	}
	lines = append(lines, domain.PlainLine(""))
	if c.GitHub != "" {
		lines = append(lines, labelledLink("🐙 GitHub:   ", c.GitHub))
	}
	if c.LinkedIn != "" {
		lines = append(lines, labelledLink("💼 LinkedIn: ", c.LinkedIn))
	}
	if c.Website != "" {
		lines = append(lines, labelledLink("🌐 Website:  ", c.Website))
	}
	lines = append(lines, domain.PlainLine(""))
	return append(lines, lk.Lines(
		"Feel free to reach out! I'm always open to interesting",
		"opportunities and conversations about technology.",
	)...)
}

func projectsText(doc *Document) []string {
	var out []string
	for i, p := range doc.Projects {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, "🔧 "+p.Name)
		if p.Summary != "" {
			out = append(out, "   "+p.Summary)
		}
		if len(p.Tech) > 0 {
			out = append(out, "   Tech: "+strings.Join(p.Tech, ", "))
		}
		if p.URL != "" {
			out = append(out, "   "+p.URL)
		}
	}
	return out
}

func labelledLink(label, url string) domain.Line {
	return domain.NewLine(domain.Text(label), domain.Link(url, url))
}
