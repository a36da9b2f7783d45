package tickface

import "image/color"

// DrawZone is the rectangle a widget renders into, in surface
// coordinates.
type DrawZone struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Center returns the midpoint of the zone.
func (z DrawZone) Center() (x, y float64) {
	return z.Left + z.Width/2, z.Top + z.Height/2
}

// MinDim returns the smaller of the zone's width and height.
func (z DrawZone) MinDim() float64 {
	if z.Width < z.Height {
		return z.Width
	}
	return z.Height
}

// Canvas is the drawing surface boundary.
//
// The clock consumes a Canvas plus a [DrawZone] from an external
// collaborator; it never manages surface sizing itself. The ebitencanvas
// package provides an Ebitengine-backed implementation, and tests use a
// recording implementation.
type Canvas interface {
	// Line strokes a line segment of the given width.
	Line(x1, y1, x2, y2, width float64, c color.Color)

	// FillCircle fills a circle centred at (x, y).
	FillCircle(x, y, r float64, c color.Color)

	// StrokeCircle strokes a circle outline of the given width.
	StrokeCircle(x, y, r, width float64, c color.Color)

	// Text draws s with its anchor at (x, y). Implementations decide
	// font and size; the clock only positions small labels.
	Text(s string, x, y float64, c color.Color)
}
