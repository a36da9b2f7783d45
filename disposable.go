package tickface

import (
	"log/slog"
	"runtime/debug"
	"sync"
)

// Disposable is any resource with a single release operation.
//
// Dispose must be safe to call more than once: the second and later calls
// are no-ops. All Disposables returned by this package satisfy that
// contract, and implementations supplied by callers are expected to as
// well.
type Disposable interface {
	Dispose()
}

// ReleaseFunc adapts a plain function to the [Disposable] interface.
//
// The function is invoked at most once; subsequent Dispose calls are
// no-ops.
type ReleaseFunc func()

// Dispose invokes the wrapped function.
//
// Note that idempotency is per [Disposable] value obtained from
// [Release], not per ReleaseFunc: converting the same function twice
// yields two independent disposables.
func (f ReleaseFunc) Dispose() {
	f()
}

// Release wraps fn in a [Disposable] that invokes it at most once.
func Release(fn func()) Disposable {
	var once sync.Once
	return ReleaseFunc(func() {
		once.Do(fn)
	})
}

// DisposableStore collects [Disposable] values so they can be released
// together.
//
// A store moves through three states:
//
//   - active: accepting additions, holding zero or more members
//   - cleared: all members released and removed, still accepting additions
//   - disposed: terminal; all members released, further additions are
//     released immediately with a diagnostic
//
// Clear returns the store to empty-but-active; Dispose is one-way.
// Widgets recreated on reconfiguration register every subscription and
// timer they create in a store, then tear everything down with a single
// Dispose. The terminal state protects against use-after-teardown at
// shutdown: anything offered to a dead store is released on the spot
// rather than silently leaked.
//
// The zero value is an active, empty store ready for use. All methods are
// safe for concurrent use.
type DisposableStore struct {
	mu       sync.Mutex
	items    []Disposable
	disposed bool
}

// Add retains the given items for later release.
//
// If the store has been disposed, every item is released immediately
// instead and a diagnostic with the caller's stack is logged; execution
// continues. Nil items are ignored.
func (s *DisposableStore) Add(items ...Disposable) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		slog.Warn("disposable added to disposed store; releasing immediately",
			"stack", string(debug.Stack()),
		)
		for _, d := range items {
			if d != nil {
				d.Dispose()
			}
		}
		return
	}
	for _, d := range items {
		if d != nil {
			s.items = append(s.items, d)
		}
	}
	s.mu.Unlock()
}

// AddTo registers d in the store and returns it unchanged, allowing
// inline registration:
//
//	sub := tickface.AddTo(&c.disposables, view(c.onChange))
func AddTo[T Disposable](s *DisposableStore, d T) T {
	s.Add(d)
	return d
}

// Clear releases every retained item and empties the store.
//
// The store remains active and accepts further additions. Items are
// released in registration order.
func (s *DisposableStore) Clear() {
	s.mu.Lock()
	items := s.items
	s.items = nil
	s.mu.Unlock()

	for _, d := range items {
		d.Dispose()
	}
}

// Dispose releases every retained item and marks the store permanently
// disposed.
//
// After Dispose, any Add releases its arguments immediately. Dispose is
// idempotent.
func (s *DisposableStore) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	items := s.items
	s.items = nil
	s.mu.Unlock()

	for _, d := range items {
		d.Dispose()
	}
}

// Disposed reports whether the store has reached its terminal state.
func (s *DisposableStore) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// Len returns the number of currently retained items.
func (s *DisposableStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
