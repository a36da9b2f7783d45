package tickface

import (
	"testing"
	"time"
)

func TestFramePump_TickRunsCallbacksInOrder(t *testing.T) {
	pump := NewFramePump()

	var order []string
	pump.RequestFrame(func() { order = append(order, "a") })
	pump.RequestFrame(func() { order = append(order, "b") })
	pump.RequestFrame(func() { order = append(order, "c") })

	pump.Tick()

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("callbacks ran as %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("callbacks ran as %v, want %v", order, want)
		}
	}
}

func TestFramePump_CallbacksRunOnce(t *testing.T) {
	pump := NewFramePump()

	count := 0
	pump.RequestFrame(func() { count++ })

	pump.Tick()
	pump.Tick()

	if count != 1 {
		t.Errorf("callback ran %d times over two ticks, want 1", count)
	}
}

func TestFramePump_CancelPreventsRun(t *testing.T) {
	pump := NewFramePump()

	ran := false
	cancel := pump.RequestFrame(func() { ran = true })
	cancel()
	cancel() // safe to call twice

	pump.Tick()

	if ran {
		t.Error("cancelled callback ran")
	}
}

func TestFramePump_RequestDuringTickRunsNextTick(t *testing.T) {
	pump := NewFramePump()

	var order []string
	pump.RequestFrame(func() {
		order = append(order, "first")
		pump.RequestFrame(func() { order = append(order, "second") })
	})

	pump.Tick()
	if len(order) != 1 {
		t.Fatalf("first tick ran %v, want [first]", order)
	}

	pump.Tick()
	if len(order) != 2 || order[1] != "second" {
		t.Errorf("second tick ran %v, want [first second]", order)
	}
}

func TestFramePump_EmptyTickIsCheap(t *testing.T) {
	pump := NewFramePump()
	// must not panic or block
	pump.Tick()
}

func TestTimerDriver_AfterFires(t *testing.T) {
	driver := NewTimerDriver()

	done := make(chan struct{})
	driver.After(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("After callback did not fire within 1s")
	}
}

func TestTimerDriver_CancelStopsTimer(t *testing.T) {
	driver := NewTimerDriver()

	fired := make(chan struct{}, 1)
	cancel := driver.After(20*time.Millisecond, func() { fired <- struct{}{} })
	cancel()

	select {
	case <-fired:
		t.Error("cancelled timer fired")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestTimerDriver_RequestFrameUsesFrameInterval(t *testing.T) {
	driver := &TimerDriver{FrameInterval: time.Millisecond}

	done := make(chan struct{})
	driver.RequestFrame(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("frame callback did not fire within 1s")
	}
}
