package tickface

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
)

// View is a read-only subscription handle over an [Observable] or a
// derived transformation of one.
//
// Calling a View registers the subscriber and returns a [Disposable] that
// deregisters exactly that subscriber. If the underlying observable
// already holds a value, the subscriber is invoked with it immediately,
// before the View call returns. Re-subscribing after disposal is
// permitted and independent of earlier subscriptions.
//
// A View carries no state of its own; it is just access to its producer.
type View[T any] func(fn func(T)) Disposable

// Observable is a mutable single-slot value holder that notifies
// subscribers on change.
//
// Notifications are delivered synchronously inside [Observable.Set], in
// subscriber-registration order, and complete before Set returns. Setting
// a value equal (==) to the current one is a no-op; for pointer-valued T
// this means an in-place mutation without replacement does not notify.
//
// All methods are safe for concurrent use, but delivery runs on the
// goroutine that calls Set.
type Observable[T comparable] struct {
	mu     sync.Mutex
	value  T
	has    bool
	nextID uint64
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// NewObservable creates an empty [Observable]. Subscribers registered
// before the first Set receive nothing until a value arrives.
func NewObservable[T comparable]() *Observable[T] {
	return &Observable[T]{}
}

// Set stores value and, if it differs from the current value, notifies
// every subscriber with it before returning.
//
// The change check is shallow equality (==), never deep equality.
func (o *Observable[T]) Set(value T) {
	o.mu.Lock()
	if o.has && o.value == value {
		o.mu.Unlock()
		return
	}
	o.value = value
	o.has = true
	// snapshot under lock: delivery order is registration order, and
	// subscribers may re-enter (e.g. dispose themselves) during notify
	subs := make([]subscriber[T], len(o.subs))
	copy(subs, o.subs)
	o.mu.Unlock()

	for _, s := range subs {
		notifySafe(s.fn, value)
	}
}

// Get returns the current value and whether one has been set.
func (o *Observable[T]) Get() (T, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value, o.has
}

// View returns a subscription handle over this observable.
//
// A subscriber added after a value has been set is immediately invoked
// with that value, exactly once, without re-notifying other subscribers.
func (o *Observable[T]) View() View[T] {
	return func(fn func(T)) Disposable {
		o.mu.Lock()
		id := o.nextID
		o.nextID++
		o.subs = append(o.subs, subscriber[T]{id: id, fn: fn})
		value, has := o.value, o.has
		o.mu.Unlock()

		if has {
			notifySafe(fn, value)
		}

		return Release(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			for i, s := range o.subs {
				if s.id == id {
					o.subs = append(o.subs[:i], o.subs[i+1:]...)
					break
				}
			}
		})
	}
}

// Dispose releases all subscribers. The observable remains usable, but
// existing subscriptions deliver nothing further.
func (o *Observable[T]) Dispose() {
	o.mu.Lock()
	o.subs = nil
	o.mu.Unlock()
}

// Map derives a View that transforms each value emitted by v through f
// before delivering it downstream.
//
// The derived view is stateless: each downstream subscription creates
// exactly one upstream subscription, and disposing the downstream handle
// tears down the upstream link. Subscriptions are not multiplexed; two
// downstream subscribers hold two independent upstream subscriptions.
func Map[T, U any](v View[T], f func(T) U) View[U] {
	return func(fn func(U)) Disposable {
		return v(func(value T) {
			fn(f(value))
		})
	}
}

// notifySafe calls a subscriber with panic recovery, so one misbehaving
// subscriber cannot prevent delivery to the others. The stack is logged
// with a correlation ID for debugging.
func notifySafe[T any](fn func(T), value T) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("view subscriber panicked",
				"correlation_id", uuid.NewString(),
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn(value)
}
