package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// frame is the plotting area shared by the cartesian charts.
type frame struct {
	width, height int
	padding       float64
	plotW, plotH  float64
	minVal        float64
	maxVal        float64
	scale         float64
}

func newFrame(width, height int, padding float64, points []Point) (frame, error) {
	if len(points) == 0 {
		return frame{}, ErrEmptySeries
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if padding <= 0 {
		padding = DefaultPadding
	}
	f := frame{
		width:   width,
		height:  height,
		padding: padding,
		plotW:   float64(width) - 2*padding,
		plotH:   float64(height) - 2*padding,
	}
	if f.plotW <= 0 || f.plotH <= 0 {
		return frame{}, ErrViewport
	}
	f.minVal, f.maxVal = bounds(points)
	f.minVal = math.Min(f.minVal, 0)
	f.maxVal = math.Max(f.maxVal, 0)
	if almostEqual(f.maxVal, f.minVal) {
		f.maxVal = f.minVal + 1
	}
	f.scale = f.plotH / (f.maxVal - f.minVal)
	return f, nil
}

func (f frame) bottom() float64 {
	return f.padding + f.plotH
}

// y maps a value to its vertical pixel position.
func (f frame) y(value float64) float64 {
	return f.bottom() - (value-f.minVal)*f.scale
}

func (f frame) open(b *strings.Builder, title, desc, kind, defaultTitle, defaultDesc string) {
	titleID := makeID(title, kind+"-title")
	descID := makeID(title, kind+"-desc")
	fmt.Fprintf(b, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", f.width, f.height, titleID, descID)
	fmt.Fprintf(b, "<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(title, defaultTitle)))
	fmt.Fprintf(b, "<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(desc, defaultDesc)))
}

func (f frame) grid(b *strings.Builder, ticks int, gridColor, axisColor string) {
	if ticks <= 0 {
		ticks = DefaultTicks
	}
	for i := 0; i <= ticks; i++ {
		ratio := float64(i) / float64(ticks)
		y := f.bottom() - ratio*f.plotH
		value := f.minVal + (f.maxVal-f.minVal)*ratio
		fmt.Fprintf(b, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"2,4\" aria-hidden=\"true\"></line>", f.padding, y, f.padding+f.plotW, y, gridColor)
		fmt.Fprintf(b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"end\">%s</text>", f.padding-6, y+4, axisColor, template.HTMLEscapeString(formatTick(value)))
	}
	fmt.Fprintf(b, "<g stroke=\"%s\" aria-label=\"Axes\">", axisColor)
	fmt.Fprintf(b, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", f.padding, f.padding, f.padding, f.bottom())
	fmt.Fprintf(b, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", f.padding, f.y(0), f.padding+f.plotW, f.y(0))
	b.WriteString("</g>")
}

func (f frame) label(b *strings.Builder, x float64, text, color string) {
	fmt.Fprintf(b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", x, f.bottom()+14, color, template.HTMLEscapeString(text))
}

func fallback(value, defaultValue string) string {
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return value
}

func bounds(points []Point) (float64, float64) {
	minVal := points[0].Value
	maxVal := points[0].Value
	for _, p := range points[1:] {
		minVal = math.Min(minVal, p.Value)
		maxVal = math.Max(maxVal, p.Value)
	}
	return minVal, maxVal
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func makeID(base, suffix string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, strings.ToLower(strings.TrimSpace(base)))
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		cleaned = "chart"
	}
	return cleaned + "-" + suffix
}

func formatTick(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fk", v/1_000)
	case almostEqual(v, math.Round(v)):
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}
