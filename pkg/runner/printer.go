package runner

import (
	"fmt"
	"io"

	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/render"
	"github.com/aretw0/cvterm/pkg/session"
	"github.com/muesli/termenv"
)

// printer writes finalised entries as they reach the transcript.
// Placeholders are skipped until the animator commits their output.
type printer struct {
	out    *termenv.Output
	styler render.Styler
	status string
}

func newPrinter(w io.Writer, profile *termenv.Profile, status render.Status) *printer {
	var opts []termenv.OutputOption
	if profile != nil {
		opts = append(opts, termenv.WithProfile(*profile))
	}
	out := termenv.NewOutput(w, opts...)

	p := &printer{out: out}
	p.status = out.String(status.String()).Faint().String()
	p.styler = render.Styler{
		Prompt: func(s string) string {
			return out.String(s).Foreground(out.Color("#22c55e")).Bold().String()
		},
		Command: func(s string) string {
			return out.String(s).Foreground(out.Color("#38bdf8")).Underline().String()
		},
		Link: func(url, label string) string {
			if out.Profile == termenv.Ascii {
				if label == "" || label == url {
					return render.Sanitize(url)
				}
				return render.Sanitize(label) + " <" + render.Sanitize(url) + ">"
			}
			return render.Hyperlink(url, label)
		},
	}
	return p
}

func (p *printer) handle(s *session.Session, c session.Change) {
	switch c.Kind {
	case session.ChangeAppend, session.ChangeUpdate:
		if !c.Entry.Placeholder {
			p.entry(c.Entry)
		}
	case session.ChangeReset:
		entries := s.Entries()
		if len(entries) == 0 && p.out.Profile != termenv.Ascii {
			p.out.ClearScreen()
		}
		for _, e := range entries {
			if e.Placeholder {
				continue
			}
			p.entry(e)
		}
	}
}

func (p *printer) entry(e domain.Entry) {
	if e.Command != "" {
		fmt.Fprintln(p.out, p.status)
	}
	fmt.Fprintln(p.out, p.styler.Entry(e, "  "))
}

func (p *printer) warn(msg string) {
	fmt.Fprintln(p.out, p.out.String(msg).Foreground(p.out.Color("#f87171")).String())
}
