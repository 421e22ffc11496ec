package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/cvterm/internal/presentation/graph"
	"github.com/aretw0/cvterm/internal/presentation/tui"
	"github.com/aretw0/cvterm/pkg/content"
)

const exportWidth = 80

var (
	nameStyle = lipgloss.NewStyle().Bold(true).Width(14)
	descStyle = lipgloss.NewStyle().Faint(true)
)

// ListCommands prints every command with its description, in declaration order.
func ListCommands(w io.Writer, opts Options) error {
	svc, err := createServices(context.Background(), opts, factoryConfig{console: true})
	if err != nil {
		return err
	}
	defer svc.Close()

	for _, def := range svc.engine.Registry().Definitions() {
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, nameStyle.Render(def.Name), descStyle.Render(def.Description)))
	}
	return nil
}

// Exec dispatches a single command and prints the resulting transcript.
func Exec(w io.Writer, opts Options, input string) error {
	ctx := context.Background()
	svc, err := createServices(ctx, opts, factoryConfig{console: true})
	if err != nil {
		return err
	}
	defer svc.Close()

	s := svc.engine.NewSession(ctx)
	defer s.Close()

	if _, err := svc.engine.Execute(ctx, s, input); err != nil {
		return err
	}
	fmt.Fprint(w, svc.engine.RenderTranscript(s))
	return nil
}

// Export writes the résumé as Markdown, rendered for the terminal unless raw.
func Export(w io.Writer, opts Options, raw bool) error {
	svc, err := createServices(context.Background(), opts, factoryConfig{console: true})
	if err != nil {
		return err
	}
	defer svc.Close()

	md := svc.engine.Markdown()
	if raw {
		_, err := io.WriteString(w, md)
		return err
	}

	render, err := tui.NewRenderer(exportWidth)
	if err != nil {
		return err
	}
	out, err := render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// Validate checks that a résumé file loads and yields a complete registry.
func Validate(w io.Writer, path string) error {
	doc, err := content.Load(path)
	if err != nil {
		return err
	}
	reg, err := content.BuildRegistry(doc)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Résumé of %s is valid! ✅ (%d commands)\n", doc.Name, reg.Len())
	return nil
}

// Graph prints a Mermaid flowchart of how commands reference each other.
// With usage the counters highlight visited commands and the most used one.
func Graph(w io.Writer, opts Options, usage bool) error {
	ctx := context.Background()
	svc, err := createServices(ctx, opts, factoryConfig{console: true})
	if err != nil {
		return err
	}
	defer svc.Close()

	var overlay *graph.Overlay
	if usage {
		counts, err := svc.recorder.Counts(ctx)
		if err != nil {
			return fmt.Errorf("failed to read usage: %w", err)
		}
		names := byUsage(counts)
		overlay = &graph.Overlay{Visited: names}
		if len(names) > 0 {
			overlay.Current = names[0]
		}
	}

	_, err = io.WriteString(w, graph.GenerateMermaid(svc.engine.Registry().Definitions(), overlay))
	return err
}

// Stats prints the usage counters, most used first.
// Counters outlive the process only with a Redis address or a usage file.
func Stats(w io.Writer, opts Options) error {
	ctx := context.Background()
	svc, err := createServices(ctx, opts, factoryConfig{console: true})
	if err != nil {
		return err
	}
	defer svc.Close()

	counts, err := svc.recorder.Counts(ctx)
	if err != nil {
		return fmt.Errorf("failed to read usage: %w", err)
	}
	if len(counts) == 0 {
		printSystemMessage(w, "No usage recorded yet.")
		return nil
	}

	for _, name := range byUsage(counts) {
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, nameStyle.Render(name), fmt.Sprint(counts[name])))
	}
	return nil
}

// byUsage sorts names by count, highest first, then alphabetically.
func byUsage(counts map[string]int64) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
