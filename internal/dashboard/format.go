package dashboard

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money renders d as US dollars with thousands separators, e.g. "$45,231"
// or "$12,450.50".
func Money(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	if d.Equal(d.Truncate(0)) {
		return sign + printer.Sprintf("$%d", d.IntPart())
	}
	f, _ := d.Round(2).Float64()
	return sign + printer.Sprintf("$%.2f", f)
}

// Count renders n with thousands separators.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Percent renders part/total as a whole percentage. A zero total yields "0%".
func Percent(part, total int) string {
	if total <= 0 {
		return "0%"
	}
	return printer.Sprintf("%d%%", part*100/total)
}

// Humanize turns status slugs such as "in-progress" into "in progress".
func Humanize(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}

// Ago renders the distance between t and now in coarse units.
func Ago(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return printer.Sprintf("%d min ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return printer.Sprintf("%d h ago", int(d.Hours()))
	default:
		return printer.Sprintf("%d d ago", int(d.Hours()/24))
	}
}
