package reachability

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/xonecas/reach/internal/highlight"
)

// RenderOptions controls Report.Render.
type RenderOptions struct {
	Color bool
	Theme string // Chroma theme for slice text when Color is set
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	metaStyle   = lipgloss.NewStyle().Faint(true)
	qStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#e5c07b"))
)

// Render writes the report as text, one slice entry per line:
//
//	path:line (direction, strategy, depth N)
//	How is `x` modified?
//	   6  Currently unrecognized structure: x := 0  [main#run]
func (r *Report) Render(w io.Writer, opts RenderOptions) error {
	style := func(s lipgloss.Style, text string) string {
		if !opts.Color {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n",
		style(headerStyle, fmt.Sprintf("%s:%d", r.Path, r.Line)),
		style(metaStyle, fmt.Sprintf("(%s, %s, depth %d)", r.Direction, r.Strategy, r.MaxDepth)))
	if q := r.Question.Text(); q != "" {
		b.WriteString(style(qStyle, q))
		b.WriteByte('\n')
	}
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "%s  %s", style(metaStyle, fmt.Sprintf("%4d", e.Line)), r.label(e, opts))
		if e.Owner != "" {
			fmt.Fprintf(&b, "  %s", style(metaStyle, "["+e.Owner+"]"))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// label highlights the slice text when the label ends with it, which is
// how the pattern strategy phrases its descriptions.
func (r *Report) label(e Entry, opts RenderOptions) string {
	if !opts.Color || e.Text == "" || !strings.HasSuffix(e.Label, e.Text) {
		return e.Label
	}
	lang := highlight.DetectLanguage(r.Path)
	if lang == "" {
		lang = r.Language
	}
	prefix := strings.TrimSuffix(e.Label, e.Text)
	return prefix + highlight.Highlight(e.Text, lang, opts.Theme)
}
