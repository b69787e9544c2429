package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"netlint/internal/analysis"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24"))

	cleanStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	locStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B"))
)

// Summary renders a run's diagnostics for the terminal, grouped the way the
// engine sorted them: by rule, then position.
func Summary(units int, diags []analysis.Diagnostic) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("netlint: %d units analyzed", units)))
	b.WriteString("\n")

	if len(diags) == 0 {
		b.WriteString(cleanStyle.Render("no findings"))
		b.WriteString("\n")
		return b.String()
	}

	for _, d := range diags {
		style := infoStyle
		if d.Severity >= analysis.SeverityWarning {
			style = warnStyle
		}
		loc := fmt.Sprintf("%s:%d:%d", d.Location.File, d.Location.Line, d.Location.Column)
		b.WriteString(fmt.Sprintf("%s %s %s %s\n",
			style.Render(d.Severity.String()),
			d.RuleID,
			locStyle.Render(loc),
			d.Message,
		))
	}

	counts := make(map[analysis.Severity]int)
	for _, d := range diags {
		counts[d.Severity]++
	}
	b.WriteString(fmt.Sprintf("\n%d findings (%d warnings, %d info)\n",
		len(diags), counts[analysis.SeverityWarning]+counts[analysis.SeverityError], counts[analysis.SeverityInfo]))

	return b.String()
}
