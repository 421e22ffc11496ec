package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the cvterm logo and version to w, coloured when w
// supports it.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	rows := []struct {
		text  string
		color string
	}{
		{`                _                       `, "#34d399"},
		{`   _____   __  | |_  ___  _ __  _ __ ___  `, "#2dd4bf"},
		{`  / __\ \ / /  | __|/ _ \| '__|| '_ ' _ \ `, "#22d3ee"},
		{` | (__ \ V /   | |_|  __/| |   | | | | | |`, "#38bdf8"},
		{`  \___| \_/     \__|\___||_|   |_| |_| |_|`, "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, row := range rows {
		fmt.Fprintln(w, out.String(row.text).Foreground(out.Color(row.color)))
	}
	fmt.Fprintln(w, out.String("  CV Terminal v"+version).Faint())
	fmt.Fprintln(w)
}
