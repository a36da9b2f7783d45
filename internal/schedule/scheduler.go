package schedule

import (
	"log/slog"
	"sync"
	"time"
)

const (
	// CoarseInterval is the redraw cap applied while the second hand is
	// hidden. With only minute-level motion visible, waking more often
	// than this is wasted work, but a tighter user-configured interval
	// still wins.
	CoarseInterval = 100 * time.Millisecond

	// FrameThreshold is the delay below which the loop schedules a
	// per-frame callback instead of a timer: at that point the display
	// refresh is the tightest achievable cadence anyway.
	FrameThreshold = 20 * time.Millisecond
)

// Driver is the scheduling surface the loop runs against.
//
// This is the schedule-internal version of the platform boundary,
// declared here rather than imported from the root package to avoid a
// circular dependency. Any root tickface.Driver satisfies it.
type Driver interface {
	RequestFrame(fn func()) (cancel func())
	After(d time.Duration, fn func()) (cancel func())
}

// Via identifies how the next wake-up is scheduled.
type Via int

const (
	// ViaNone means no wake-up is pending (idle or stopped).
	ViaNone Via = iota

	// ViaFrame means the loop is waiting on a per-frame callback.
	ViaFrame

	// ViaTimer means the loop is waiting on a one-shot timer.
	ViaTimer
)

// String returns a human-readable name for the scheduling mode.
func (v Via) String() string {
	switch v {
	case ViaFrame:
		return "frame"
	case ViaTimer:
		return "timer"
	default:
		return "none"
	}
}

type state int

const (
	stateIdle state = iota
	stateScheduled
	stateStopped
)

// Loop is the adaptive redraw loop.
//
// A Loop owns at most one pending wake-up at a time. On firing it renders
// once and immediately reschedules itself; this self-perpetuating cycle
// is what keeps a widget alive without an external driver. Rescheduling
// can also be forced out-of-band (via [Loop.SetCadence] or
// [Loop.Reschedule]) when a timing-relevant field changes, and restarts
// cleanly mid-cycle: the pending wake-up is cancelled before a new one is
// placed.
//
// [Loop.Stop] is terminal: it cancels any in-flight wake-up and prevents
// further self-rescheduling. A wake-up already fired by the driver but
// superseded by a newer schedule (or by Stop) is discarded via a
// generation counter, so no zombie callback ever renders.
//
// All methods are safe for concurrent use.
type Loop struct {
	driver Driver
	render func()
	logger *slog.Logger

	mu         sync.Mutex
	st         state
	via        Via
	cancel     func()
	gen        uint64
	secondHand bool
	maxRefresh time.Duration
}

// New creates an idle [Loop] that calls render on each wake-up.
//
// The loop starts with the given cadence but schedules nothing until the
// first [Loop.Reschedule] or [Loop.SetCadence].
func New(driver Driver, render func(), secondHand bool, maxRefresh time.Duration, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		driver:     driver,
		render:     render,
		logger:     logger,
		secondHand: secondHand,
		maxRefresh: maxRefresh,
	}
}

// SetCadence updates the timing inputs and restarts the loop.
//
// Safe to call mid-cycle; the pending wake-up is cancelled and replaced.
func (l *Loop) SetCadence(secondHand bool, maxRefresh time.Duration) {
	l.mu.Lock()
	l.secondHand = secondHand
	l.maxRefresh = maxRefresh
	l.mu.Unlock()

	l.Reschedule()
}

// Delay returns the wake-up delay the current cadence yields: the maximum
// refresh interval while the second hand is shown, otherwise the lesser
// of [CoarseInterval] and the maximum refresh interval.
func (l *Loop) Delay() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.delayLocked()
}

func (l *Loop) delayLocked() time.Duration {
	d := l.maxRefresh
	if d <= 0 {
		d = CoarseInterval
	}
	if !l.secondHand && d > CoarseInterval {
		d = CoarseInterval
	}
	return d
}

// Via reports how the currently pending wake-up is scheduled, or
// [ViaNone] if nothing is pending.
func (l *Loop) Via() Via {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.st != stateScheduled {
		return ViaNone
	}
	return l.via
}

// Reschedule discards any pending wake-up and places a new one according
// to the current cadence. No-op after [Loop.Stop].
func (l *Loop) Reschedule() {
	l.mu.Lock()
	if l.st == stateStopped {
		l.mu.Unlock()
		return
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}

	l.gen++
	gen := l.gen
	delay := l.delayLocked()
	fire := func() { l.fire(gen) }

	if delay < FrameThreshold {
		l.via = ViaFrame
		l.cancel = l.driver.RequestFrame(fire)
	} else {
		l.via = ViaTimer
		l.cancel = l.driver.After(delay, fire)
	}
	l.st = stateScheduled
	l.mu.Unlock()
}

// fire runs one wake-up: render once, then reschedule. Wake-ups from a
// superseded schedule are dropped.
func (l *Loop) fire(gen uint64) {
	l.mu.Lock()
	if l.st == stateStopped || gen != l.gen {
		l.mu.Unlock()
		return
	}
	l.st = stateIdle
	l.via = ViaNone
	l.cancel = nil
	l.mu.Unlock()

	l.render()
	l.Reschedule()
}

// Stop cancels any pending wake-up and permanently halts the loop.
// Idempotent; safe to call before the first Reschedule.
func (l *Loop) Stop() {
	l.mu.Lock()
	if l.st == stateStopped {
		l.mu.Unlock()
		return
	}
	l.st = stateStopped
	l.via = ViaNone
	l.gen++ // invalidate any wake-up already handed to the driver
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.mu.Unlock()

	l.logger.Debug("redraw loop stopped")
}

// Stopped reports whether the loop has been permanently halted.
func (l *Loop) Stopped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.st == stateStopped
}
