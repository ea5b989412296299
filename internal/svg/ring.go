package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Ring renders a circular progress indicator for percent in [0,100].
func Ring(size int, percent float64, opts RingOpts) (template.HTML, error) {
	if percent < 0 || percent > 100 || math.IsNaN(percent) {
		return "", ErrPercentBounds
	}
	if size <= 0 {
		size = DefaultRing
	}
	thickness := opts.Thickness
	if thickness <= 0 {
		thickness = float64(size) / 10
	}
	radius := (float64(size) - thickness) / 2
	if radius <= 0 {
		return "", ErrViewport
	}
	color := fallback(opts.Color, "#16a34a")
	track := fallback(opts.TrackColor, "#e2e8f0")
	center := float64(size) / 2
	circumference := 2 * math.Pi * radius
	filled := circumference * percent / 100

	titleID := makeID(opts.Title, "ring-title")
	descID := makeID(opts.Title, "ring-desc")

	var b strings.Builder
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", size, size, titleID, descID)
	fmt.Fprintf(&b, "<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Progress")))
	fmt.Fprintf(&b, "<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, formatTick(percent)+"% complete")))
	fmt.Fprintf(&b, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"none\" stroke=\"%s\" stroke-width=\"%.2f\"></circle>", center, center, radius, track, thickness)
	fmt.Fprintf(&b, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"none\" stroke=\"%s\" stroke-width=\"%.2f\" stroke-linecap=\"round\" stroke-dasharray=\"%.2f %.2f\" transform=\"rotate(-90 %.2f %.2f)\"></circle>",
		center, center, radius, color, thickness, filled, circumference-filled, center, center)
	fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" font-size=\"%.0f\" font-weight=\"600\" text-anchor=\"middle\" dominant-baseline=\"middle\">%s%%</text>", center, center, float64(size)/6, formatTick(percent))
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
