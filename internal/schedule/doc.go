// Package schedule provides the adaptive self-rescheduling redraw loop
// for TickFace.
//
// This package is internal to TickFace and keeps a widget visually
// current without wasted redraws. After each render the loop computes the
// next wake-up delay from the widget's current cadence (second hand
// visibility and maximum refresh interval) and schedules itself again,
// either as a per-frame callback for tight cadences or as a one-shot
// timer for coarser ones.
//
// The main components are:
//
//   - [Loop]: the redraw loop state machine (idle, scheduled, stopped)
//   - [Driver]: the platform primitives the loop schedules against
//   - [Via]: how the next wake-up is scheduled (frame or timer)
//
// Users of the tickface library should not need to interact with this
// package directly. Cadence is managed by the Clock widget.
package schedule
