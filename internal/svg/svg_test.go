package svg

import (
	"errors"
	"strings"
	"testing"
)

var monthly = []Point{{"Jan", 400}, {"Feb", 300}, {"Mar", 600}, {"Apr", 800}, {"May", 700}}

func TestLineProducesSVG(t *testing.T) {
	html, err := Line(400, 200, monthly, LineOpts{
		Title:       "Performance Trends",
		Description: "Monthly performance",
		ShowDots:    true,
	})
	if err != nil {
		t.Fatalf("line renderer error: %v", err)
	}
	output := string(html)
	if !strings.HasPrefix(output, "<svg") {
		t.Fatalf("expected svg output, got %s", output)
	}
	if !strings.Contains(output, "<path") {
		t.Fatalf("expected path element in svg")
	}
	if got := strings.Count(output, "<circle"); got != len(monthly) {
		t.Fatalf("expected %d dots, got %d", len(monthly), got)
	}
	if !strings.Contains(output, `aria-labelledby="performance-trends-line-title performance-trends-line-desc"`) {
		t.Fatalf("expected accessibility attributes, got %s", output)
	}
	if !strings.Contains(output, ">May</text>") {
		t.Fatalf("expected x-axis labels")
	}
}

func TestLineSinglePointIsCentred(t *testing.T) {
	html, err := Line(200, 100, []Point{{"Only", 5}}, LineOpts{})
	if err != nil {
		t.Fatalf("line renderer error: %v", err)
	}
	if !strings.Contains(string(html), "M100.00") {
		t.Fatalf("expected single point centred, got %s", html)
	}
}

func TestBarsProducesSVG(t *testing.T) {
	html, err := Bars(420, 220, []Point{{"Performance", 85}, {"Efficiency", 92}}, BarOpts{
		Title:      "Performance Chart",
		ShowValues: true,
	})
	if err != nil {
		t.Fatalf("bars renderer error: %v", err)
	}
	output := string(html)
	if got := strings.Count(output, "<rect"); got != 2 {
		t.Fatalf("expected 2 bars, got %d", got)
	}
	if !strings.Contains(output, `aria-label="Efficiency 92"`) {
		t.Fatalf("expected bar label, got %s", output)
	}
}

func TestRingProducesSVG(t *testing.T) {
	html, err := Ring(120, 78, RingOpts{Title: "Goal Progress"})
	if err != nil {
		t.Fatalf("ring renderer error: %v", err)
	}
	if !strings.Contains(string(html), ">78%</text>") {
		t.Fatalf("expected percent label, got %s", html)
	}
}

func TestRenderersRejectInvalidInput(t *testing.T) {
	if _, err := Line(400, 200, nil, LineOpts{}); !errors.Is(err, ErrEmptySeries) {
		t.Fatalf("expected ErrEmptySeries, got %v", err)
	}
	if _, err := Bars(10, 10, monthly, BarOpts{Padding: 24}); !errors.Is(err, ErrViewport) {
		t.Fatalf("expected ErrViewport, got %v", err)
	}
	if _, err := Ring(120, 120, RingOpts{}); !errors.Is(err, ErrPercentBounds) {
		t.Fatalf("expected ErrPercentBounds, got %v", err)
	}
}

func TestFormatTick(t *testing.T) {
	cases := map[float64]string{0: "0", 8.7: "8.7", 1234: "1.2k", 2_500_000: "2.5M"}
	for in, want := range cases {
		if got := formatTick(in); got != want {
			t.Fatalf("formatTick(%v) = %q, want %q", in, got, want)
		}
	}
}
