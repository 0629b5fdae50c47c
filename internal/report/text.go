package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/phobologic/namecheck/internal/model"
	"github.com/phobologic/namecheck/internal/ranking"
	"github.com/phobologic/namecheck/internal/relevance"
)

const title = "===== NAME RELEVANCE ANALYSIS ====="

// TextOptions controls console rendering.
type TextOptions struct {
	// Detailed prints the suggestion under each entity that has one.
	Detailed bool
	// Color enables lipgloss styling.
	Color bool
	// Worst, when non-empty, is listed in a trailing "needs attention" section.
	Worst []ranking.Entry
}

type styles struct {
	enabled bool
	header  lipgloss.Style
	good    lipgloss.Style
	fair    lipgloss.Style
	poor    lipgloss.Style
	hint    lipgloss.Style
}

func newStyles(w io.Writer, enabled bool) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		enabled: enabled,
		header:  r.NewStyle().Bold(true),
		good:    r.NewStyle().Foreground(lipgloss.Color("2")),
		fair:    r.NewStyle().Foreground(lipgloss.Color("3")),
		poor:    r.NewStyle().Foreground(lipgloss.Color("1")),
		hint:    r.NewStyle().Faint(true),
	}
}

func (s styles) render(st lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return st.Render(text)
}

func (s styles) score(score float64) string {
	text := fmt.Sprintf("%.2f/1.00", score)
	switch {
	case score >= relevance.SuggestionThreshold:
		return s.render(s.good, text)
	case score >= 0.5:
		return s.render(s.fair, text)
	default:
		return s.render(s.poor, text)
	}
}

func renderText(w io.Writer, r *model.Report, opts TextOptions) string {
	s := newStyles(w, opts.Color)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.render(s.header, title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Overall Score: %s\n\n", s.score(r.OverallScore))

	b.WriteString(s.render(s.header, "CLASSES:"))
	b.WriteString("\n")
	writeResults(&b, s, r.Classes, opts.Detailed)

	b.WriteString("\n")
	b.WriteString(s.render(s.header, "FUNCTIONS:"))
	b.WriteString("\n")
	writeResults(&b, s, r.Functions, opts.Detailed)

	if len(opts.Worst) > 0 {
		b.WriteString("\n")
		b.WriteString(s.render(s.header, "NEEDS ATTENTION:"))
		b.WriteString("\n")
		for _, e := range opts.Worst {
			fmt.Fprintf(&b, "  - [%s] %s: %s - %s\n", e.Kind, e.Result.Name, s.score(e.Result.Score), firstReason(e.Result))
			if e.Result.Suggestion != nil {
				fmt.Fprintf(&b, "    %s\n", s.render(s.hint, "Suggestion: "+*e.Result.Suggestion))
			}
		}
	}

	return b.String()
}

// WriteText renders the console report to w. Styling, when enabled, follows
// the color capabilities lipgloss detects for w.
func WriteText(w io.Writer, r *model.Report, opts TextOptions) error {
	_, err := io.WriteString(w, renderText(w, r, opts))
	return err
}

func writeResults(b *strings.Builder, s styles, results []model.Result, detailed bool) {
	for i := range results {
		res := &results[i]
		fmt.Fprintf(b, "  - %s: %s - %s\n", res.Name, s.score(res.Score), firstReason(*res))
		if detailed && res.Suggestion != nil {
			fmt.Fprintf(b, "    %s\n", s.render(s.hint, "Suggestion: "+*res.Suggestion))
		}
	}
}

func firstReason(res model.Result) string {
	if len(res.Reasons) == 0 {
		return ""
	}
	return res.Reasons[0]
}
