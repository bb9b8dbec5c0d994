package ring

import "testing"

func TestPushOverwritesOldestOnOverflow(t *testing.T) {
	r := New[int](3)
	r.Push(1)
	r.Push(2)
	r.Push(3)
	r.Push(4) // wraps, overwriting slot holding 1

	got := r.All()
	want := []int{4, 3, 2}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestAtReachesOlderEntries(t *testing.T) {
	r := New[string](4)
	r.Push("a")
	r.Push("b")
	r.Push("c")

	if v, ok := r.At(0); !ok || v != "c" {
		t.Fatalf("At(0) = %q, %v; want c, true", v, ok)
	}
	if v, ok := r.At(1); !ok || v != "b" {
		t.Fatalf("At(1) = %q, %v; want b, true", v, ok)
	}
	if v, ok := r.At(2); !ok || v != "a" {
		t.Fatalf("At(2) = %q, %v; want a, true", v, ok)
	}
	if _, ok := r.At(3); ok {
		t.Fatalf("At(3) should be unused, got ok")
	}
}

func TestCycleSkipsUnusedSlots(t *testing.T) {
	r := New[int](5)
	r.Push(10)
	r.Push(20)
	// slots 2,3,4 (indices) never written.

	r.Cycle(-1)
	v, ok := r.Current()
	if !ok || v != 10 {
		t.Fatalf("after Cycle(-1), Current() = %v, %v; want 10, true", v, ok)
	}
	r.Cycle(1)
	v, ok = r.Current()
	if !ok || v != 20 {
		t.Fatalf("after Cycle(1), Current() = %v, %v; want 20, true", v, ok)
	}
}

func TestKillRingForwardAccumulates(t *testing.T) {
	k := NewKillRing(DefaultKillRingSize)
	k.Begin(false)
	k.Insert(Forward, []byte("hello "))
	k.Begin(true) // continuing the same kill context
	k.Insert(Forward, []byte("world"))

	got, ok := k.Current()
	if !ok || string(got) != "hello world" {
		t.Fatalf("got %q, ok=%v; want %q", got, ok, "hello world")
	}
}

func TestKillRingBackwardPrepends(t *testing.T) {
	k := NewKillRing(DefaultKillRingSize)
	k.Begin(false)
	k.Insert(Backward, []byte("world"))
	k.Begin(true)
	k.Insert(Backward, []byte("hello "))

	got, _ := k.Current()
	if string(got) != "hello world" {
		t.Fatalf("got %q, want %q", got, "hello world")
	}
}

func TestKillRingNewKillStartsFreshSlot(t *testing.T) {
	k := NewKillRing(DefaultKillRingSize)
	k.Begin(false)
	k.Insert(Forward, []byte("first"))
	k.Begin(false) // new, non-continuing kill context
	k.Insert(Forward, []byte("second"))

	cur, _ := k.Current()
	if string(cur) != "second" {
		t.Fatalf("current = %q, want %q", cur, "second")
	}
	prev, ok := k.Yank(1)
	if !ok || string(prev) != "first" {
		t.Fatalf("Yank(1) = %q, %v; want %q, true", prev, ok, "first")
	}
}

func TestUndeleteRingRestore(t *testing.T) {
	u := NewUndeleteRing(4)
	u.Record([]byte("one"))
	u.Record([]byte("two"))

	got, ok := u.Restore()
	if !ok || string(got) != "two" {
		t.Fatalf("Restore() = %q, %v; want %q, true", got, ok, "two")
	}
}

func TestPatternRingSkipsRepeat(t *testing.T) {
	p := NewPatternRing(DefaultPatternRingSize)
	p.Record("foo")
	p.Record("foo")
	p.Record("bar")

	all := p.All()
	if len(all) != 2 || all[0] != "bar" || all[1] != "foo" {
		t.Fatalf("got %v, want [bar foo]", all)
	}
}
