// Package export renders recorded series as standalone SVG charts.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

var palette = []string{"#00ffcc", "#ffcc00", "#ff66cc", "#66aaff", "#88ff44", "#ff7744"}

// Line is one series drawn against a shared x axis.
type Line struct {
	Name   string
	Values []float64
}

// WriteSVG draws every line over xs on one chart. Non-finite samples break
// the path instead of distorting the scale.
func WriteSVG(w io.Writer, xs []float64, lines []Line, width, height int) error {
	if len(lines) == 0 {
		return errors.New("export: nothing to draw")
	}
	for _, l := range lines {
		if len(l.Values) != len(xs) {
			return fmt.Errorf("export: series %q has %d samples for %d x values", l.Name, len(l.Values), len(xs))
		}
	}
	if len(xs) < 2 {
		return errors.New("export: need at least two samples")
	}

	minX, maxX := bounds(xs)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, l := range lines {
		lo, hi := bounds(l.Values)
		minY, maxY = math.Min(minY, lo), math.Max(maxY, hi)
	}
	if math.IsInf(minX, 1) || math.IsInf(minY, 1) {
		return errors.New("export: no finite samples")
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for i, l := range lines {
		color := palette[i%len(palette)]
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, color)
		pen := false
		for j, v := range l.Values {
			if !finite(v) || !finite(xs[j]) {
				pen = false
				continue
			}
			x := (xs[j] - minX) / rangeX * float64(width)
			y := float64(height) - (v-minY)/rangeY*float64(height)
			if pen {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " M%.1f,%.1f", x, y)
				pen = true
			}
		}
		sb.WriteString("\"/>\n")
		fmt.Fprintf(&sb, "<text x=\"8\" y=\"%d\" fill=\"%s\" font-family=\"monospace\" font-size=\"12\">%s</text>\n",
			16*(i+1), color, escape(l.Name))
	}
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func bounds(data []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range data {
		if finite(v) {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	return lo, hi
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
