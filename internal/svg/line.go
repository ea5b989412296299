package svg

import (
	"fmt"
	"html/template"
	"strings"
)

// Line renders a responsive SVG line chart of points.
func Line(width, height int, points []Point, opts LineOpts) (template.HTML, error) {
	f, err := newFrame(width, height, opts.Padding, points)
	if err != nil {
		return "", err
	}
	strokeColor := fallback(opts.StrokeColor, "#2563eb")
	fillColor := fallback(opts.FillColor, "rgba(37,99,235,0.12)")
	axisColor := fallback(opts.AxisColor, "#475569")
	gridColor := fallback(opts.GridColor, "#cbd5e1")

	xs := make([]float64, len(points))
	for i := range points {
		if len(points) == 1 {
			xs[i] = f.padding + f.plotW/2
			continue
		}
		xs[i] = f.padding + float64(i)*f.plotW/float64(len(points)-1)
	}

	var path strings.Builder
	for i, p := range points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		} else {
			path.WriteByte(' ')
		}
		fmt.Fprintf(&path, "%s%.2f %.2f", cmd, xs[i], f.y(p.Value))
	}

	var b strings.Builder
	f.open(&b, opts.Title, opts.Description, "line", "Line chart", "Trend data")
	f.grid(&b, opts.TickCount, gridColor, axisColor)

	area := fmt.Sprintf("%s L%.2f %.2f L%.2f %.2f Z", path.String(), xs[len(xs)-1], f.bottom(), xs[0], f.bottom())
	fmt.Fprintf(&b, "<path d=\"%s\" fill=\"%s\" stroke=\"none\" aria-hidden=\"true\"></path>", area, fillColor)
	fmt.Fprintf(&b, "<path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"2\" stroke-linejoin=\"round\" stroke-linecap=\"round\"></path>", path.String(), strokeColor)

	for i, p := range points {
		if opts.ShowDots {
			fmt.Fprintf(&b, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"3\" fill=\"%s\"></circle>", xs[i], f.y(p.Value), strokeColor)
		}
		f.label(&b, xs[i], p.Label, axisColor)
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
