package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/distmap/internal/usecase"
)

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Warn     lipgloss.Style
	Card     lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Label:    lipgloss.NewStyle().Faint(true).Width(12),
		Warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
	}
}

func printSummary(w io.Writer, th Theme, res usecase.GenerateMapResult) {
	var b strings.Builder

	b.WriteString(th.Title.Render(res.OrganismName))
	b.WriteString("\n")
	b.WriteString(th.Subtitle.Render(res.OutPath))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(th.Label.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("locations", fmt.Sprintf("%d", res.Locations))
	row("countries", fmt.Sprintf("%d %s", len(res.Countries), strings.Join(res.Countries, " ")))
	row("painted", fmt.Sprintf("%d", len(res.Painted)))

	if len(res.Unresolved) > 0 {
		row("unresolved", fmt.Sprintf("%d", len(res.Unresolved)))
		for _, u := range res.Unresolved {
			line := "  " + u.Location
			if u.Suggestion != "" {
				line += fmt.Sprintf(" (did you mean %q?)", u.Suggestion)
			}
			b.WriteString(th.Warn.Render(line))
			b.WriteString("\n")
		}
	}

	fmt.Fprintln(w, th.Card.Render(strings.TrimRight(b.String(), "\n")))
}
