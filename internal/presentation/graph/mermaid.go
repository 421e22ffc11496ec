package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/cvterm/pkg/domain"
)

// Overlay marks commands on the graph, e.g. from usage counters.
type Overlay struct {
	Visited []string
	Current string
}

// GenerateMermaid produces a Mermaid flowchart of the commands and the
// command references inside their output (help listings, "see also" hints).
// Shapes:
// - help: ((Circle))
// - clear/exit: [[Subroutine]]
// - commands with no output: [/Parallelogram/]
// - default: [Rectangle]
// Edges to names missing from defs are drawn dotted.
func GenerateMermaid(defs []domain.CommandDefinition, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	known := make(map[string]bool, len(defs))
	for _, def := range defs {
		known[def.Name] = true
	}

	for _, def := range defs {
		safeID := sanitizeMermaidID(def.Name)

		opener, closer := "[", "]"
		switch {
		case def.Name == "help":
			opener, closer = "((", "))"
		case def.Name == "clear" || def.Name == "exit":
			opener, closer = "[[", "]]"
		case len(def.Output) == 0:
			opener, closer = "[/", "/]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(def.Name), closer)

		seen := map[string]bool{def.Name: true}
		for _, target := range references(def) {
			if seen[target] {
				continue
			}
			seen[target] = true
			arrow := "-->"
			if !known[target] {
				arrow = "-.->"
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", safeID, arrow, sanitizeMermaidID(target))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) so labels stay readable on light and dark themes
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visited := make(map[string]bool)
		for _, name := range overlay.Visited {
			if !known[name] {
				continue
			}
			safeID := sanitizeMermaidID(name)
			if !visited[safeID] {
				visited[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if known[overlay.Current] {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.Current))
		}
	}

	return sb.String()
}

// references lists the command spans in def's output, in order.
func references(def domain.CommandDefinition) []string {
	var names []string
	for _, line := range def.Output {
		for _, span := range line {
			if span.Kind == domain.SpanCommand {
				names = append(names, strings.ToLower(strings.TrimSpace(span.Command)))
			}
		}
	}
	return names
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	if s == "end" {
		// reserved word in Mermaid flowcharts
		return "end_"
	}
	return s
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
