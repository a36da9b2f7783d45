package tickface

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jpalmerr/tickface/internal/schedule"
	"github.com/jpalmerr/tickface/internal/store"
)

const (
	defaultMaxRefresh = 32 * time.Millisecond

	// timerStartKeyPrefix namespaces persisted timer starts by clock label.
	timerStartKeyPrefix = "timer-start/"
)

// Clock is an analog clock widget.
//
// A Clock owns its configuration exclusively: after construction, fields
// change only through the Bind* subscription methods, which serialise all
// mutation through a single path. Binding a field to a [View] updates the
// field whenever the view emits a different value, requests a coalesced
// redraw, and — for fields that affect timing — resets the redraw loop.
//
// The clock keeps itself current through an adaptive redraw loop (see
// internal/schedule): with the second hand visible it wakes at the
// configured maximum refresh interval, without it the cadence is
// throttled to a coarse cap. Hosts are notified through the redraw
// handler and call [Clock.Draw] to paint the current state.
//
// [Clock.Dispose] releases every subscription and timer the clock
// created and flushes pending persisted state. A disposed clock stays
// drawable but no longer advances or accepts bindings.
type Clock struct {
	logger *slog.Logger
	driver Driver

	mu         sync.Mutex
	label      string
	baseTime   time.Time
	anchor     time.Time // wall instant baseTime corresponds to
	location   *time.Location
	rate       float64
	secondHand bool
	minuteRing bool
	hourRing   bool
	maxRefresh time.Duration
	timerMode  bool
	disposed   bool

	// coalesced redraw request; at most one pending frame callback
	redrawFn      func()
	redrawPending bool
	redrawCancel  func()

	timerStart  *store.Persisted[time.Time]
	loop        *schedule.Loop
	autoAdvance DisposableStore
	disposables DisposableStore
}

// New creates a [Clock] with the given label and options.
//
// The label identifies the clock on its face and keys its persisted
// state, so two clocks sharing a state store should not share a label.
// Defaults: current time in the local timezone at rate 1, all rings and
// hands visible, 32ms maximum refresh interval, in-memory state, a
// timer-emulated 60Hz driver, and a self-scheduling redraw loop.
//
// Returns an error if the label is empty or any option is invalid.
func New(label string, opts ...Option) (*Clock, error) {
	if label == "" {
		return nil, errors.New("clock label cannot be empty")
	}

	cfg := &clockConfig{
		rate:        1,
		secondHand:  true,
		minuteRing:  true,
		hourRing:    true,
		maxRefresh:  defaultMaxRefresh,
		autoAdvance: true,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	if cfg.baseTime.IsZero() {
		cfg.baseTime = now
	}
	if cfg.location == nil {
		cfg.location = time.Local
	}
	if cfg.driver == nil {
		cfg.driver = NewTimerDriver()
	}
	if cfg.state == nil {
		cfg.state = store.NewMemoryKV()
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Clock{
		label:      label,
		logger:     logger,
		driver:     cfg.driver,
		baseTime:   cfg.baseTime,
		anchor:     now,
		location:   cfg.location,
		rate:       cfg.rate,
		secondHand: cfg.secondHand,
		minuteRing: cfg.minuteRing,
		hourRing:   cfg.hourRing,
		maxRefresh: cfg.maxRefresh,
		timerMode:  cfg.timerMode,
		redrawFn:   cfg.redraw,
	}

	c.timerStart = store.NewPersisted(cfg.state, timerStartKeyPrefix+label, time.Time{}, logger)
	c.loop = schedule.New(cfg.driver, c.notifyRedraw, cfg.secondHand, cfg.maxRefresh, logger)
	c.autoAdvance.Add(Release(c.loop.Stop))
	c.disposables.Add(&c.autoAdvance, c.timerStart)

	if cfg.autoAdvance {
		c.loop.Reschedule()
	} else {
		// never scheduled; a stopped loop also absorbs later cadence resets
		c.loop.Stop()
	}

	return c, nil
}

// Label returns the clock's display label.
func (c *Clock) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

// Time returns the instant the clock face currently displays: the base
// time advanced by scaled elapsed wall time, in the configured location.
func (c *Clock) Time() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timeLocked()
}

func (c *Clock) timeLocked() time.Time {
	elapsed := time.Since(c.anchor)
	scaled := time.Duration(float64(elapsed) * c.rate)
	return c.baseTime.Add(scaled).In(c.location)
}

// SecondHand reports whether the second hand is rendered.
func (c *Clock) SecondHand() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.secondHand
}

// TimeRate returns the current time-rate multiplier.
func (c *Clock) TimeRate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rate
}

// MaxRefreshInterval returns the configured maximum refresh interval.
func (c *Clock) MaxRefreshInterval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxRefresh
}

// TimerMode reports whether the clock displays elapsed timer time.
func (c *Clock) TimerMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timerMode
}

// RedrawDelay returns the wake-up delay the redraw loop currently uses.
func (c *Clock) RedrawDelay() time.Duration {
	return c.loop.Delay()
}

// StartTimer records the current instant as the timer start. The value is
// persisted (debounced) under the clock's label and survives restarts
// when a persistent state store is configured.
func (c *Clock) StartTimer() {
	c.timerStart.Set(time.Now())
	c.requestRedraw()
}

// ClearTimer discards the persisted timer start.
func (c *Clock) ClearTimer() {
	c.timerStart.Set(time.Time{})
	c.requestRedraw()
}

// TimerStart returns the persisted timer start and whether one is set.
func (c *Clock) TimerStart() (time.Time, bool) {
	start := c.timerStart.Get()
	return start, !start.IsZero()
}

// TimerElapsed returns the time elapsed since the timer start, or zero if
// no timer is running.
func (c *Clock) TimerElapsed() time.Duration {
	start := c.timerStart.Get()
	if start.IsZero() {
		return 0
	}
	return time.Since(start)
}

// BindLabel subscribes the display label to a view.
func (c *Clock) BindLabel(v View[string]) Disposable {
	return bindField(c, v,
		func(c *Clock) string { return c.label },
		func(c *Clock, s string) { c.label = s },
		false)
}

// BindSecondHand subscribes second-hand visibility to a view.
// This is a timing field: changes reset the redraw loop.
func (c *Clock) BindSecondHand(v View[bool]) Disposable {
	return bindField(c, v,
		func(c *Clock) bool { return c.secondHand },
		func(c *Clock, b bool) { c.secondHand = b },
		true)
}

// BindMinuteRing subscribes 60-count tick ring visibility to a view.
func (c *Clock) BindMinuteRing(v View[bool]) Disposable {
	return bindField(c, v,
		func(c *Clock) bool { return c.minuteRing },
		func(c *Clock, b bool) { c.minuteRing = b },
		false)
}

// BindHourRing subscribes 12-count numeral ring visibility to a view.
func (c *Clock) BindHourRing(v View[bool]) Disposable {
	return bindField(c, v,
		func(c *Clock) bool { return c.hourRing },
		func(c *Clock, b bool) { c.hourRing = b },
		false)
}

// BindTimeRate subscribes the time-rate multiplier to a view.
// This is a timing field: changes reset the redraw loop so the new rate
// takes effect on the next wake-up. The rate change re-anchors the
// displayed time so the face does not jump.
func (c *Clock) BindTimeRate(v View[float64]) Disposable {
	return bindField(c, v,
		func(c *Clock) float64 { return c.rate },
		func(c *Clock, r float64) {
			c.baseTime = c.timeLocked()
			c.anchor = time.Now()
			c.rate = r
		},
		true)
}

// BindMaxRefreshInterval subscribes the maximum refresh interval to a
// view. This is a timing field: changes reset the redraw loop.
// Non-positive values are ignored.
func (c *Clock) BindMaxRefreshInterval(v View[time.Duration]) Disposable {
	return bindField(c, v,
		func(c *Clock) time.Duration { return c.maxRefresh },
		func(c *Clock, d time.Duration) {
			if d > 0 {
				c.maxRefresh = d
			}
		},
		true)
}

// BindLocation subscribes the display timezone to a view.
// Nil locations are ignored.
func (c *Clock) BindLocation(v View[*time.Location]) Disposable {
	return bindField(c, v,
		func(c *Clock) *time.Location { return c.location },
		func(c *Clock, loc *time.Location) {
			if loc != nil {
				c.location = loc
			}
		},
		false)
}

// BindTimerMode subscribes timer (stopwatch) display mode to a view.
func (c *Clock) BindTimerMode(v View[bool]) Disposable {
	return bindField(c, v,
		func(c *Clock) bool { return c.timerMode },
		func(c *Clock, b bool) { c.timerMode = b },
		false)
}

// bindField wires one configuration field to a view: on each delivered
// value that differs from the field's current value, update the field,
// request a coalesced redraw, and reset the redraw loop if the field has
// timing impact. The subscription is registered for cleanup in the
// clock's disposal store.
func bindField[T comparable](c *Clock, v View[T], get func(*Clock) T, set func(*Clock, T), timing bool) Disposable {
	sub := v(func(value T) {
		c.mu.Lock()
		if c.disposed || get(c) == value {
			c.mu.Unlock()
			return
		}
		set(c, value)
		secondHand, maxRefresh := c.secondHand, c.maxRefresh
		c.mu.Unlock()

		c.requestRedraw()
		if timing {
			c.loop.SetCadence(secondHand, maxRefresh)
		}
	})
	c.disposables.Add(sub)
	return sub
}

// requestRedraw asks the host to repaint at the next paint opportunity.
// Requests arriving before the pending one fires are coalesced into a
// single repaint; rendering never happens synchronously inside a value
// notification.
func (c *Clock) requestRedraw() {
	c.mu.Lock()
	if c.disposed || c.redrawPending {
		c.mu.Unlock()
		return
	}
	c.redrawPending = true
	c.redrawCancel = c.driver.RequestFrame(func() {
		c.mu.Lock()
		c.redrawPending = false
		c.redrawCancel = nil
		c.mu.Unlock()
		c.notifyRedraw()
	})
	c.mu.Unlock()
}

// notifyRedraw invokes the host's redraw handler, if any.
func (c *Clock) notifyRedraw() {
	c.mu.Lock()
	fn := c.redrawFn
	disposed := c.disposed
	c.mu.Unlock()

	if fn != nil && !disposed {
		fn()
	}
}

// StopAutoAdvance permanently halts the self-scheduling redraw loop while
// leaving the rest of the clock (bindings, drawing, timer state) intact.
func (c *Clock) StopAutoAdvance() {
	c.autoAdvance.Dispose()
}

// Dispose tears the clock down: the redraw loop is cancelled, every
// bound subscription is released, and pending persisted writes are
// flushed. Idempotent; a disposed clock can still be drawn but no longer
// changes.
func (c *Clock) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	label := c.label
	cancel := c.redrawCancel
	c.redrawCancel = nil
	c.redrawPending = false
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.disposables.Dispose()
	c.logger.Debug("clock disposed", "label", label)
}
