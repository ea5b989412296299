// Package svg renders small dependency-free SVG charts for server-side pages.
package svg

import "errors"

// Point is one labelled value of a chart series.
type Point struct {
	Label string
	Value float64
}

// LineOpts customises the line chart renderer.
type LineOpts struct {
	Title       string
	Description string
	StrokeColor string
	FillColor   string
	AxisColor   string
	GridColor   string
	Padding     float64
	ShowDots    bool
	TickCount   int
}

// BarOpts customises the bar chart renderer.
type BarOpts struct {
	Title       string
	Description string
	Color       string
	AxisColor   string
	GridColor   string
	Padding     float64
	TickCount   int
	ShowValues  bool
}

// RingOpts customises the progress ring renderer.
type RingOpts struct {
	Title       string
	Description string
	Color       string
	TrackColor  string
	Thickness   float64
}

// Defaults for the dashboard charts.
const (
	DefaultWidth   = 720
	DefaultHeight  = 240
	DefaultPadding = 24.0
	DefaultTicks   = 5
	DefaultRing    = 120
)

// Renderer errors.
var (
	ErrEmptySeries   = errors.New("svg: series required")
	ErrViewport      = errors.New("svg: viewport too small")
	ErrPercentBounds = errors.New("svg: percent must be within [0,100]")
)
