// Package store provides local key-value persistence for TickFace.
//
// This package is internal to TickFace and manages the small amount of
// widget state that survives restarts, such as a clock's timer start
// time.
//
// The main components are:
//
//   - [KV]: Interface over a string-keyed byte store
//   - [MemoryKV]: In-memory implementation, used in tests and as default
//   - [FileKV]: Single-file JSON implementation with atomic rewrites
//   - [Persisted]: A typed value with debounced write-behind persistence
//
// Persistence is strictly best-effort: a value that fails to load falls
// back to its default, and a value that fails to flush is logged and
// dropped. Nothing in this package returns a fatal error to the widget.
//
// Users of the tickface library should not need to interact with this
// package directly. Storage is configured through clock options.
package store
