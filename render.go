package tickface

import (
	"image/color"
	"math"
	"strconv"
	"time"
)

// Face palette. Dark background with a light face reads well on both
// windowed and embedded surfaces.
var (
	faceColor   = color.RGBA{R: 24, G: 28, B: 38, A: 255}
	rimColor    = color.RGBA{R: 150, G: 170, B: 200, A: 255}
	tickColor   = color.RGBA{R: 100, G: 110, B: 130, A: 255}
	majorColor  = color.RGBA{R: 180, G: 190, B: 210, A: 255}
	handColor   = color.RGBA{R: 220, G: 225, B: 235, A: 255}
	secondColor = color.RGBA{R: 235, G: 90, B: 90, A: 255}
	labelColor  = color.RGBA{R: 150, G: 160, B: 180, A: 255}
)

// Approximate glyph cell of the debug font used by surface
// implementations; only needed to centre short labels.
const (
	glyphWidth  = 6.0
	glyphHeight = 16.0
)

// faceState is the snapshot of everything one frame needs.
type faceState struct {
	label      string
	secondHand bool
	minuteRing bool
	hourRing   bool

	// hand positions in fractional units: hours [0,12), minutes and
	// seconds [0,60)
	hours   float64
	minutes float64
	seconds float64
}

// Draw renders the clock's current state into zone.
//
// Draw is safe to call from any goroutine and at any time, including
// after disposal; it reads a snapshot of the configuration and touches no
// timers. The host owns canvas sizing; the face scales to the zone's
// smaller dimension.
func (c *Clock) Draw(canvas Canvas, zone DrawZone) {
	c.mu.Lock()
	st := faceState{
		label:      c.label,
		secondHand: c.secondHand,
		minuteRing: c.minuteRing,
		hourRing:   c.hourRing,
	}
	timerMode := c.timerMode
	displayed := c.timeLocked()
	c.mu.Unlock()

	if timerMode {
		st.hours, st.minutes, st.seconds = timerHands(c.TimerElapsed())
	} else {
		st.hours, st.minutes, st.seconds = clockHands(displayed)
	}

	drawFace(canvas, zone, st)
}

// clockHands converts a wall-clock instant into fractional hand units.
func clockHands(t time.Time) (hours, minutes, seconds float64) {
	seconds = float64(t.Second()) + float64(t.Nanosecond())/float64(time.Second)
	minutes = float64(t.Minute()) + seconds/60
	hours = float64(t.Hour()%12) + minutes/60
	return hours, minutes, seconds
}

// timerHands converts an elapsed duration into fractional hand units.
func timerHands(d time.Duration) (hours, minutes, seconds float64) {
	if d < 0 {
		d = 0
	}
	seconds = math.Mod(d.Seconds(), 60)
	minutes = math.Mod(d.Minutes(), 60)
	hours = math.Mod(d.Hours(), 12)
	return hours, minutes, seconds
}

// handAngle maps a fractional position within a dial of the given count
// to radians, with zero at twelve o'clock.
func handAngle(value, count float64) float64 {
	return value/count*2*math.Pi - math.Pi/2
}

func drawFace(canvas Canvas, zone DrawZone, st faceState) {
	cx, cy := zone.Center()
	radius := zone.MinDim() / 2 * 0.92
	if radius <= 0 {
		return
	}

	canvas.FillCircle(cx, cy, radius, faceColor)
	canvas.StrokeCircle(cx, cy, radius, 2, rimColor)

	if st.minuteRing {
		drawTickRing(canvas, cx, cy, radius)
	}
	if st.hourRing {
		drawNumeralRing(canvas, cx, cy, radius)
	}

	drawHand(canvas, cx, cy, handAngle(st.hours, 12), radius*0.50, 4, handColor)
	drawHand(canvas, cx, cy, handAngle(st.minutes, 60), radius*0.74, 3, handColor)
	if st.secondHand {
		drawHand(canvas, cx, cy, handAngle(st.seconds, 60), radius*0.86, 1.5, secondColor)
	}
	canvas.FillCircle(cx, cy, radius*0.03, rimColor)

	if st.label != "" {
		x := cx - float64(len(st.label))*glyphWidth/2
		y := cy + radius*0.40 - glyphHeight/2
		canvas.Text(st.label, x, y, labelColor)
	}
}

// drawTickRing draws the 60-count ring, with heavier marks at the five
// minute positions.
func drawTickRing(canvas Canvas, cx, cy, radius float64) {
	for i := 0; i < 60; i++ {
		angle := handAngle(float64(i), 60)
		outer := radius * 0.96
		inner := radius * 0.91
		width := 1.0
		clr := color.Color(tickColor)
		if i%5 == 0 {
			inner = radius * 0.86
			width = 2.0
			clr = majorColor
		}
		canvas.Line(
			cx+math.Cos(angle)*inner, cy+math.Sin(angle)*inner,
			cx+math.Cos(angle)*outer, cy+math.Sin(angle)*outer,
			width, clr,
		)
	}
}

// drawNumeralRing draws the 12-count numeral ring.
func drawNumeralRing(canvas Canvas, cx, cy, radius float64) {
	for i := 1; i <= 12; i++ {
		angle := handAngle(float64(i), 12)
		s := strconv.Itoa(i)
		x := cx + math.Cos(angle)*radius*0.74 - float64(len(s))*glyphWidth/2
		y := cy + math.Sin(angle)*radius*0.74 - glyphHeight/2
		canvas.Text(s, x, y, majorColor)
	}
}

// drawHand draws one hand from the centre outwards, with a short tail on
// the opposite side.
func drawHand(canvas Canvas, cx, cy, angle, length, width float64, clr color.Color) {
	tail := length * 0.12
	canvas.Line(
		cx-math.Cos(angle)*tail, cy-math.Sin(angle)*tail,
		cx+math.Cos(angle)*length, cy+math.Sin(angle)*length,
		width, clr,
	)
}
