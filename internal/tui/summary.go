package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var panel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("238")).
	Padding(0, 1)

// Field is one labelled line of a summary panel.
type Field struct {
	Label string
	Value string
}

func F(label string, format string, args ...any) Field {
	return Field{Label: label, Value: fmt.Sprintf(format, args...)}
}

// Summary renders a titled key/value panel.
func Summary(title string, fields ...Field) string {
	width := 0
	for _, f := range fields {
		width = max(width, len(f.Label))
	}

	var b strings.Builder
	b.WriteString(cyan.Render(title))
	for _, f := range fields {
		b.WriteString("\n")
		b.WriteString(dim.Render(fmt.Sprintf("%-*s", width, f.Label)))
		b.WriteString("  ")
		b.WriteString(white.Render(f.Value))
	}
	return panel.Render(b.String())
}
