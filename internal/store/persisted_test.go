package store

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// trackingKV wraps a MemoryKV and counts writes, optionally failing them.
type trackingKV struct {
	mu     sync.Mutex
	inner  *MemoryKV
	sets   int
	setErr error
}

func newTrackingKV() *trackingKV {
	return &trackingKV{inner: NewMemoryKV()}
}

func (k *trackingKV) Get(key string) ([]byte, bool, error) {
	return k.inner.Get(key)
}

func (k *trackingKV) Set(key string, value []byte) error {
	k.mu.Lock()
	k.sets++
	err := k.setErr
	k.mu.Unlock()
	if err != nil {
		return err
	}
	return k.inner.Set(key, value)
}

func (k *trackingKV) setCount() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.sets
}

func TestPersisted_UsesDefaultWhenAbsent(t *testing.T) {
	p := NewPersisted(NewMemoryKV(), "k", 42, testLogger())
	defer p.Dispose()

	if got := p.Get(); got != 42 {
		t.Errorf("Get() = %d for an absent key, want the default 42", got)
	}
}

func TestPersisted_LoadsStoredValue(t *testing.T) {
	kv := NewMemoryKV()
	if err := kv.Set("k", []byte(`7`)); err != nil {
		t.Fatal(err)
	}

	p := NewPersisted(kv, "k", 0, testLogger())
	defer p.Dispose()

	if got := p.Get(); got != 7 {
		t.Errorf("Get() = %d, want the stored 7", got)
	}
}

func TestPersisted_CorruptValueFallsBackToDefault(t *testing.T) {
	kv := NewMemoryKV()
	if err := kv.Set("k", []byte(`not json`)); err != nil {
		t.Fatal(err)
	}

	p := NewPersisted(kv, "k", 9, testLogger())
	defer p.Dispose()

	if got := p.Get(); got != 9 {
		t.Errorf("Get() = %d for a corrupt value, want the default 9", got)
	}
}

func TestPersisted_SetUpdatesImmediatelyFlushesLater(t *testing.T) {
	kv := newTrackingKV()
	p := NewPersisted(kv, "k", 0, testLogger())
	p.delay = 10 * time.Millisecond
	defer p.Dispose()

	p.Set(5)

	if got := p.Get(); got != 5 {
		t.Fatalf("Get() = %d right after Set, want 5", got)
	}
	if kv.setCount() != 0 {
		t.Fatalf("store written %d times before the debounce elapsed, want 0", kv.setCount())
	}

	time.Sleep(50 * time.Millisecond)

	if kv.setCount() != 1 {
		t.Errorf("store written %d times after the debounce, want 1", kv.setCount())
	}
	got, ok, _ := kv.Get("k")
	if !ok || string(got) != `5` {
		t.Errorf("stored value = %q, %v, want 5, true", got, ok)
	}
}

func TestPersisted_RapidWritesCoalesce(t *testing.T) {
	kv := newTrackingKV()
	p := NewPersisted(kv, "k", 0, testLogger())
	p.delay = 20 * time.Millisecond
	defer p.Dispose()

	for i := 1; i <= 5; i++ {
		p.Set(i)
		time.Sleep(time.Millisecond)
	}

	time.Sleep(80 * time.Millisecond)

	if kv.setCount() != 1 {
		t.Errorf("store written %d times for five rapid Sets, want 1", kv.setCount())
	}
	got, _, _ := kv.Get("k")
	if string(got) != `5` {
		t.Errorf("stored value = %q, want the latest write 5", got)
	}
}

func TestPersisted_DisposeFlushesPendingWrite(t *testing.T) {
	kv := newTrackingKV()
	p := NewPersisted(kv, "k", 0, testLogger())

	// default delay is one second; dispose long before it elapses
	p.Set(3)
	p.Dispose()

	if kv.setCount() != 1 {
		t.Fatalf("store written %d times after Dispose, want 1", kv.setCount())
	}
	got, _, _ := kv.Get("k")
	if string(got) != `3` {
		t.Errorf("stored value = %q after Dispose, want 3", got)
	}
}

func TestPersisted_DisposeWithoutWritesFlushesNothing(t *testing.T) {
	kv := newTrackingKV()
	p := NewPersisted(kv, "k", 0, testLogger())

	p.Dispose()
	p.Dispose() // idempotent

	if kv.setCount() != 0 {
		t.Errorf("store written %d times for an untouched value, want 0", kv.setCount())
	}
}

func TestPersisted_SetAfterDisposeFlushesSynchronously(t *testing.T) {
	kv := newTrackingKV()
	p := NewPersisted(kv, "k", 0, testLogger())
	p.Dispose()

	p.Set(8)

	if kv.setCount() != 1 {
		t.Fatalf("store written %d times for a post-dispose Set, want 1", kv.setCount())
	}
	if got := p.Get(); got != 8 {
		t.Errorf("Get() = %d after post-dispose Set, want 8", got)
	}
}

func TestPersisted_FlushFailureIsSwallowed(t *testing.T) {
	kv := newTrackingKV()
	kv.setErr = errors.New("disk full")

	p := NewPersisted(kv, "k", 0, testLogger())
	p.Set(1)
	p.Dispose() // must not panic

	if got := p.Get(); got != 1 {
		t.Errorf("Get() = %d after a failed flush, want the in-memory 1", got)
	}
}

func TestPersisted_StructValuesRoundTrip(t *testing.T) {
	type mark struct {
		When  time.Time `json:"when"`
		Label string    `json:"label"`
	}

	kv := NewMemoryKV()
	start := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)

	first := NewPersisted(kv, "k", mark{}, testLogger())
	first.Set(mark{When: start, Label: "run"})
	first.Dispose()

	second := NewPersisted(kv, "k", mark{}, testLogger())
	defer second.Dispose()

	got := second.Get()
	if !got.When.Equal(start) || got.Label != "run" {
		t.Errorf("round-tripped value = %+v, want {%v run}", got, start)
	}
}
