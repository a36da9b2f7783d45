package tickface

import (
	"slices"
	"sync"
	"time"
)

// defaultFrameInterval approximates one display frame at 60Hz for hosts
// without a real frame callback.
const defaultFrameInterval = 16 * time.Millisecond

// Driver supplies the platform scheduling primitives the redraw loop is
// built on: "request a callback before the next repaint" and "run a
// callback after a delay".
//
// Both methods return a cancel function. Cancel must be safe to call more
// than once and after the callback has fired; a cancelled callback never
// runs.
//
// Two implementations are provided: [TimerDriver] for headless or
// SDK-embedded use, and [FramePump] for hosts with their own render loop.
type Driver interface {
	// RequestFrame schedules fn to run once at the next paint opportunity.
	RequestFrame(fn func()) (cancel func())

	// After schedules fn to run once after d has elapsed.
	After(d time.Duration, fn func()) (cancel func())
}

// TimerDriver implements [Driver] entirely with timers, emulating paint
// opportunities at a fixed short interval.
//
// This is the default driver: it needs no host cooperation and is
// suitable for tests and headless embedding.
type TimerDriver struct {
	// FrameInterval is the emulated time between paint opportunities.
	// Zero means one 60Hz frame.
	FrameInterval time.Duration
}

// NewTimerDriver returns a [TimerDriver] emulating a 60Hz display.
func NewTimerDriver() *TimerDriver {
	return &TimerDriver{}
}

// RequestFrame runs fn after the emulated frame interval.
func (d *TimerDriver) RequestFrame(fn func()) (cancel func()) {
	interval := d.FrameInterval
	if interval <= 0 {
		interval = defaultFrameInterval
	}
	return d.After(interval, fn)
}

// After runs fn once after the given delay.
func (d *TimerDriver) After(delay time.Duration, fn func()) (cancel func()) {
	t := time.AfterFunc(delay, fn)
	return func() { t.Stop() }
}

// FramePump implements [Driver] for hosts that own a render loop, such as
// an Ebitengine game. The host calls [FramePump.Tick] once per frame;
// callbacks registered via RequestFrame run on the next tick, on the
// host's goroutine.
//
// Delay-based callbacks still use real timers, so they fire even if the
// host stops ticking.
type FramePump struct {
	mu     sync.Mutex
	nextID uint64
	frames map[uint64]func()
}

// NewFramePump creates an empty [FramePump].
func NewFramePump() *FramePump {
	return &FramePump{frames: make(map[uint64]func())}
}

// RequestFrame schedules fn for the next [FramePump.Tick].
func (p *FramePump) RequestFrame(fn func()) (cancel func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.frames[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.frames, id)
		p.mu.Unlock()
	}
}

// After runs fn once after the given delay.
func (p *FramePump) After(delay time.Duration, fn func()) (cancel func()) {
	t := time.AfterFunc(delay, fn)
	return func() { t.Stop() }
}

// Tick runs and clears all pending frame callbacks, in registration
// order. The host calls this once per frame before drawing.
func (p *FramePump) Tick() {
	p.mu.Lock()
	if len(p.frames) == 0 {
		p.mu.Unlock()
		return
	}
	ids := make([]uint64, 0, len(p.frames))
	for id := range p.frames {
		ids = append(ids, id)
	}
	// map order is random; sort for deterministic run order
	slices.Sort(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, p.frames[id])
	}
	p.frames = make(map[uint64]func())
	p.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
