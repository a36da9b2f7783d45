// Package tickface provides an embeddable, reactive analog clock widget
// that renders onto an abstract drawing surface.
//
// TickFace is designed as an SDK-first library. A [Clock] owns its
// configuration and keeps itself visually current through an adaptive
// redraw loop: when the second hand is visible it wakes at the configured
// maximum refresh interval, and when it is hidden it throttles down to a
// coarser cadence. Very short delays are scheduled as per-frame callbacks;
// longer ones as one-shot timers.
//
// # Quick Start
//
// Create a clock and draw it from your render loop:
//
//	clock, _ := tickface.New("Wall Clock")
//	defer clock.Dispose()
//
//	// inside the host's draw callback:
//	clock.Draw(canvas, tickface.DrawZone{Width: 400, Height: 400})
//
// # Reactive configuration
//
// Controls expose a [View] over their current value, and the clock binds
// configuration fields to views. A late subscriber immediately receives
// the current value, so bindings take effect at registration time:
//
//	seconds := tickface.NewToggle("seconds", tickface.StartOn())
//	clock.BindSecondHand(seconds.Value())
//
//	seconds.Flip() // clock redraws and adapts its cadence
//
// Views compose with [Map]:
//
//	rates, _ := tickface.NewRotary("rate", []string{"1", "60", "3600"})
//	clock.BindTimeRate(tickface.Map(rates.Choice(), parseRate))
//
// # Lifecycle
//
// Every subscription, timer, and pending redraw a clock creates is
// registered in a [DisposableStore]; [Clock.Dispose] releases them all,
// flushing any pending persisted state first. Widgets recreated on
// reconfiguration tear down with a single call and cannot leak timers.
//
// # Architecture
//
// TickFace consists of the public root package plus:
//
//   - internal/schedule: the adaptive self-rescheduling redraw loop
//   - internal/store: key-value persistence with debounced writes
//   - ebitencanvas: an Ebitengine-backed [Canvas] implementation
//   - config: YAML configuration for the standalone binary
//
// The internal packages are not part of the public API and may change
// without notice. The library has no network interface and no server; the
// only persistence is a small local key-value file.
package tickface
