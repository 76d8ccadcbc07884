package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline squeezes data into at most width bars. Non-finite values are
// drawn as blanks.
func Sparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	minVal, maxVal := 0.0, 0.0
	seen := false
	for _, v := range data {
		if !finite(v) {
			continue
		}
		if !seen || v < minVal {
			minVal = v
		}
		if !seen || v > maxVal {
			maxVal = v
		}
		seen = true
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}

	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		v := data[i*step]
		if !finite(v) {
			sb.WriteRune(' ')
			continue
		}
		idx := int((v - minVal) / rang * 7)
		idx = max(0, min(idx, 7))
		sb.WriteRune(sparkChars[idx])
	}
	return sb.String()
}

// ProgressBar renders frac of width cells.
func ProgressBar(frac float64, width int) string {
	frac = max(0, min(frac, 1))
	filled := int(frac * float64(width))
	return cyan.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", width-filled))
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
