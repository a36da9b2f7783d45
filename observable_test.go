package tickface

import (
	"testing"
)

func TestObservable_LateSubscriberReceivesCurrentValue(t *testing.T) {
	obs := NewObservable[int]()
	obs.Set(42)

	var got []int
	sub := obs.View()(func(v int) { got = append(got, v) })
	defer sub.Dispose()

	if len(got) != 1 || got[0] != 42 {
		t.Fatalf("late subscriber received %v, want [42]", got)
	}
}

func TestObservable_LateSubscriberDoesNotRenotifyOthers(t *testing.T) {
	obs := NewObservable[int]()

	var first []int
	subA := obs.View()(func(v int) { first = append(first, v) })
	defer subA.Dispose()

	obs.Set(1)

	// a second subscription replays the current value to the newcomer only
	var second []int
	subB := obs.View()(func(v int) { second = append(second, v) })
	defer subB.Dispose()

	if len(first) != 1 {
		t.Errorf("existing subscriber notified %d times, want 1", len(first))
	}
	if len(second) != 1 || second[0] != 1 {
		t.Errorf("late subscriber received %v, want [1]", second)
	}
}

func TestObservable_EqualValueIsNoOp(t *testing.T) {
	obs := NewObservable[string]()

	count := 0
	sub := obs.View()(func(string) { count++ })
	defer sub.Dispose()

	obs.Set("tick")
	obs.Set("tick")

	if count != 1 {
		t.Errorf("subscriber notified %d times, want 1", count)
	}
}

func TestObservable_EmptyDeliversNothingUntilSet(t *testing.T) {
	obs := NewObservable[int]()

	count := 0
	sub := obs.View()(func(int) { count++ })
	defer sub.Dispose()

	if count != 0 {
		t.Fatalf("subscriber notified %d times before any Set", count)
	}

	obs.Set(7)
	if count != 1 {
		t.Errorf("subscriber notified %d times after Set, want 1", count)
	}
}

func TestObservable_NotifiesInRegistrationOrder(t *testing.T) {
	obs := NewObservable[int]()

	var order []string
	subA := obs.View()(func(int) { order = append(order, "a") })
	defer subA.Dispose()
	subB := obs.View()(func(int) { order = append(order, "b") })
	defer subB.Dispose()
	subC := obs.View()(func(int) { order = append(order, "c") })
	defer subC.Dispose()

	obs.Set(1)

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("got %v notifications, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("notification order = %v, want %v", order, want)
		}
	}
}

func TestObservable_DisposedSubscriberReceivesNothing(t *testing.T) {
	obs := NewObservable[int]()

	count := 0
	sub := obs.View()(func(int) { count++ })

	obs.Set(1)
	sub.Dispose()
	obs.Set(2)

	if count != 1 {
		t.Errorf("subscriber notified %d times, want 1", count)
	}
}

func TestObservable_ResubscribeAfterDisposeIsIndependent(t *testing.T) {
	obs := NewObservable[int]()
	obs.Set(1)

	view := obs.View()

	first := 0
	sub := view(func(int) { first++ })
	sub.Dispose()
	sub.Dispose() // idempotent

	second := 0
	resub := view(func(int) { second++ })
	defer resub.Dispose()

	obs.Set(2)

	if first != 1 {
		t.Errorf("disposed subscriber notified %d times, want 1 (replay only)", first)
	}
	if second != 2 {
		t.Errorf("new subscriber notified %d times, want 2 (replay + set)", second)
	}
}

func TestObservable_PanickingSubscriberDoesNotBreakOthers(t *testing.T) {
	obs := NewObservable[int]()

	subA := obs.View()(func(int) { panic("boom") })
	defer subA.Dispose()

	count := 0
	subB := obs.View()(func(int) { count++ })
	defer subB.Dispose()

	obs.Set(1)

	if count != 1 {
		t.Errorf("second subscriber notified %d times, want 1", count)
	}
}

func TestMap_TransformsValues(t *testing.T) {
	obs := NewObservable[int]()
	doubled := Map(obs.View(), func(v int) int { return v * 2 })

	var got []int
	sub := doubled(func(v int) { got = append(got, v) })
	defer sub.Dispose()

	obs.Set(3)
	obs.Set(5)

	if len(got) != 2 || got[0] != 6 || got[1] != 10 {
		t.Errorf("mapped view delivered %v, want [6 10]", got)
	}
}

func TestMap_IdentityBehavesLikeSource(t *testing.T) {
	obs := NewObservable[int]()
	obs.Set(9)

	identity := Map(obs.View(), func(v int) int { return v })

	var direct, mapped []int
	subA := obs.View()(func(v int) { direct = append(direct, v) })
	defer subA.Dispose()
	subB := identity(func(v int) { mapped = append(mapped, v) })
	defer subB.Dispose()

	obs.Set(10)

	if len(direct) != len(mapped) {
		t.Fatalf("identity map delivered %v, source delivered %v", mapped, direct)
	}
	for i := range direct {
		if direct[i] != mapped[i] {
			t.Fatalf("identity map delivered %v, source delivered %v", mapped, direct)
		}
	}
}

func TestMap_DisposingDownstreamTearsDownUpstream(t *testing.T) {
	obs := NewObservable[int]()
	view := Map(obs.View(), func(v int) string {
		if v == 0 {
			return "zero"
		}
		return "nonzero"
	})

	count := 0
	sub := view(func(string) { count++ })

	obs.Set(0)
	sub.Dispose()
	obs.Set(1)

	if count != 1 {
		t.Errorf("downstream notified %d times after dispose, want 1", count)
	}
}

func TestMap_TypeChange(t *testing.T) {
	obs := NewObservable[string]()
	lengths := Map(obs.View(), func(s string) int { return len(s) })

	var got int
	sub := lengths(func(v int) { got = v })
	defer sub.Dispose()

	obs.Set("tick")

	if got != 4 {
		t.Errorf("mapped value = %d, want 4", got)
	}
}

func TestObservable_Get(t *testing.T) {
	obs := NewObservable[int]()

	if _, ok := obs.Get(); ok {
		t.Error("Get() reported a value before any Set")
	}

	obs.Set(5)
	v, ok := obs.Get()
	if !ok || v != 5 {
		t.Errorf("Get() = %v, %v, want 5, true", v, ok)
	}
}
