package store

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// DefaultFlushDelay is how long a [Persisted] value coalesces writes
// before flushing to its backing store.
const DefaultFlushDelay = time.Second

// Persisted is a typed value with debounced write-behind persistence.
//
// Reads return the in-memory value, initialised once from the backing
// [KV] when the value is created. Writes update the in-memory value
// immediately and schedule a flush after a fixed delay; a write arriving
// before the delay elapses supersedes the pending flush, so rapid
// successive writes collapse into a single persisted write of the latest
// value.
//
// [Persisted.Dispose] flushes any pending write immediately before
// releasing the timer, so no write is lost at teardown.
//
// Load and flush failures are logged and swallowed; persistence here is
// best-effort widget state, never worth failing the widget over.
type Persisted[T any] struct {
	kv     KV
	key    string
	logger *slog.Logger
	delay  time.Duration

	mu       sync.Mutex
	value    T
	dirty    bool
	timer    *time.Timer
	disposed bool
}

// NewPersisted creates a [Persisted] value bound to key in kv.
//
// The initial value is read from kv; if the key is absent or its contents
// fail to deserialise, def is used and the failure is logged.
func NewPersisted[T any](kv KV, key string, def T, logger *slog.Logger) *Persisted[T] {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Persisted[T]{
		kv:     kv,
		key:    key,
		logger: logger,
		delay:  DefaultFlushDelay,
		value:  def,
	}

	raw, ok, err := kv.Get(key)
	if err != nil {
		logger.Warn("failed to read persisted value, using default", "key", key, "error", err)
		return p
	}
	if !ok {
		return p
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Warn("failed to decode persisted value, using default", "key", key, "error", err)
		return p
	}
	p.value = v
	return p
}

// Get returns the current in-memory value.
func (p *Persisted[T]) Get() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Set updates the in-memory value immediately and schedules a debounced
// flush, replacing any pending one. After Dispose, Set still updates the
// in-memory value and flushes synchronously.
func (p *Persisted[T]) Set(v T) {
	p.mu.Lock()
	p.value = v
	p.dirty = true
	if p.disposed {
		p.mu.Unlock()
		p.flush()
		return
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.delay, p.flush)
	p.mu.Unlock()
}

// Dispose stops the pending flush timer, flushing the latest value first
// if a write is outstanding. Idempotent.
func (p *Persisted[T]) Dispose() {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return
	}
	p.disposed = true
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	dirty := p.dirty
	p.mu.Unlock()

	if dirty {
		p.flush()
	}
}

// flush writes the current value to the backing store.
func (p *Persisted[T]) flush() {
	p.mu.Lock()
	value := p.value
	p.dirty = false
	p.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		p.logger.Warn("failed to encode persisted value", "key", p.key, "error", err)
		return
	}
	if err := p.kv.Set(p.key, raw); err != nil {
		p.logger.Warn("failed to flush persisted value", "key", p.key, "error", err)
	}
}
