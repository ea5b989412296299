package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Bars renders a single-series vertical bar chart.
func Bars(width, height int, points []Point, opts BarOpts) (template.HTML, error) {
	f, err := newFrame(width, height, opts.Padding, points)
	if err != nil {
		return "", err
	}
	color := fallback(opts.Color, "#0ea5e9")
	axisColor := fallback(opts.AxisColor, "#475569")
	gridColor := fallback(opts.GridColor, "#cbd5e1")

	slot := f.plotW / float64(len(points))
	barWidth := slot * 0.6

	var b strings.Builder
	f.open(&b, opts.Title, opts.Description, "bar", "Bar chart", "Category comparison")
	f.grid(&b, opts.TickCount, gridColor, axisColor)

	zero := f.y(0)
	for i, p := range points {
		x := f.padding + float64(i)*slot + (slot-barWidth)/2
		top := math.Min(f.y(p.Value), zero)
		h := math.Abs(f.y(p.Value) - zero)
		fmt.Fprintf(&b, "<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" rx=\"2\" aria-label=\"%s %s\"></rect>",
			x, top, barWidth, h, color, template.HTMLEscapeString(p.Label), template.HTMLEscapeString(formatTick(p.Value)))
		if opts.ShowValues {
			fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>",
				x+barWidth/2, top-4, axisColor, template.HTMLEscapeString(formatTick(p.Value)))
		}
		f.label(&b, x+barWidth/2, p.Label, axisColor)
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
