// Package ebitencanvas implements the tickface drawing boundary on top of
// Ebitengine.
//
// Wrap the frame's target image once per draw call:
//
//	func (g *game) Draw(screen *ebiten.Image) {
//	    g.clock.Draw(ebitencanvas.New(screen), g.zone)
//	}
package ebitencanvas

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Canvas draws onto an *ebiten.Image using the vector package for shapes
// and the debug font for text. It implements tickface.Canvas.
//
// A Canvas is a thin stateless wrapper; creating one per frame is cheap.
type Canvas struct {
	dst *ebiten.Image
}

// New wraps dst in a [Canvas].
func New(dst *ebiten.Image) *Canvas {
	return &Canvas{dst: dst}
}

// Line strokes an anti-aliased line segment.
func (c *Canvas) Line(x1, y1, x2, y2, width float64, clr color.Color) {
	vector.StrokeLine(c.dst, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), clr, true)
}

// FillCircle fills an anti-aliased circle.
func (c *Canvas) FillCircle(x, y, r float64, clr color.Color) {
	vector.DrawFilledCircle(c.dst, float32(x), float32(y), float32(r), clr, true)
}

// StrokeCircle strokes an anti-aliased circle outline.
func (c *Canvas) StrokeCircle(x, y, r, width float64, clr color.Color) {
	vector.StrokeCircle(c.dst, float32(x), float32(y), float32(r), float32(width), clr, true)
}

// Text draws s in the debug font. The font has a fixed face and ignores
// clr; Ebitengine's debug printer predates styled text.
func (c *Canvas) Text(s string, x, y float64, _ color.Color) {
	ebitenutil.DebugPrintAt(c.dst, s, int(x), int(y))
}
