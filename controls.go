package tickface

import (
	"errors"
	"fmt"
	"sync"
)

// Toggle is a named two-state control.
//
// A Toggle owns an [Observable] over its boolean state and publishes
// every change through [Toggle.Value]. The clock side never reaches into
// the control; it only subscribes to the view.
type Toggle struct {
	name string
	obs  *Observable[bool]
}

// ToggleOption configures a [Toggle] during construction.
type ToggleOption func(*toggleConfig)

type toggleConfig struct {
	on bool
}

// StartOn creates the toggle in the on position.
func StartOn() ToggleOption {
	return func(cfg *toggleConfig) {
		cfg.on = true
	}
}

// NewToggle creates a [Toggle] with the given name.
// The initial state (off unless [StartOn] is given) is published
// immediately, so late subscribers observe it on registration.
func NewToggle(name string, opts ...ToggleOption) *Toggle {
	cfg := &toggleConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	t := &Toggle{
		name: name,
		obs:  NewObservable[bool](),
	}
	t.obs.Set(cfg.on)
	return t
}

// Name returns the control's display name.
func (t *Toggle) Name() string {
	return t.name
}

// On reports the current state.
func (t *Toggle) On() bool {
	v, _ := t.obs.Get()
	return v
}

// Set moves the toggle to the given state, notifying subscribers if it
// changed.
func (t *Toggle) Set(on bool) {
	t.obs.Set(on)
}

// Flip inverts the current state.
func (t *Toggle) Flip() {
	t.obs.Set(!t.On())
}

// Value returns a [View] over the toggle's state.
func (t *Toggle) Value() View[bool] {
	return t.obs.View()
}

// Dispose releases all subscribers of the toggle's observable.
func (t *Toggle) Dispose() {
	t.obs.Dispose()
}

// Rotary is a named selector over a fixed, non-empty list of choices.
//
// A Rotary publishes the selected index; [Rotary.Choice] derives a view
// over the selected string via [Map], one upstream subscription per
// downstream subscriber.
type Rotary struct {
	name    string
	choices []string
	obs     *Observable[int]

	mu sync.Mutex
}

// RotaryOption configures a [Rotary] during construction.
type RotaryOption func(*rotaryConfig) error

type rotaryConfig struct {
	index int
}

// WithSelected sets the initially selected choice index.
// Validated against the choice list by [NewRotary].
func WithSelected(index int) RotaryOption {
	return func(cfg *rotaryConfig) error {
		if index < 0 {
			return errors.New("selected index cannot be negative")
		}
		cfg.index = index
		return nil
	}
}

// NewRotary creates a [Rotary] over the given choices.
// The initial selection (the first choice unless [WithSelected] is given)
// is published immediately.
//
// Returns an error if choices is empty or the initial index is out of
// range.
func NewRotary(name string, choices []string, opts ...RotaryOption) (*Rotary, error) {
	if len(choices) == 0 {
		return nil, errors.New("rotary requires at least one choice")
	}

	cfg := &rotaryConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.index >= len(choices) {
		return nil, fmt.Errorf("selected index %d out of range (have %d choices)", cfg.index, len(choices))
	}

	r := &Rotary{
		name:    name,
		choices: append([]string(nil), choices...),
		obs:     NewObservable[int](),
	}
	r.obs.Set(cfg.index)
	return r, nil
}

// Name returns the control's display name.
func (r *Rotary) Name() string {
	return r.name
}

// Choices returns a copy of the choice list.
func (r *Rotary) Choices() []string {
	return append([]string(nil), r.choices...)
}

// Selected returns the currently selected index.
func (r *Rotary) Selected() int {
	i, _ := r.obs.Get()
	return i
}

// Select moves the selection to index i.
// Returns an error if i is out of range.
func (r *Rotary) Select(i int) error {
	if i < 0 || i >= len(r.choices) {
		return fmt.Errorf("index %d out of range (have %d choices)", i, len(r.choices))
	}
	r.obs.Set(i)
	return nil
}

// Step advances the selection to the next choice, wrapping around.
func (r *Rotary) Step() {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := (r.Selected() + 1) % len(r.choices)
	r.obs.Set(next)
}

// Index returns a [View] over the selected index.
func (r *Rotary) Index() View[int] {
	return r.obs.View()
}

// Choice returns a [View] over the selected choice string, derived from
// [Rotary.Index] via [Map].
func (r *Rotary) Choice() View[string] {
	return Map(r.Index(), func(i int) string {
		return r.choices[i]
	})
}

// Dispose releases all subscribers of the rotary's observable.
func (r *Rotary) Dispose() {
	r.obs.Dispose()
}
