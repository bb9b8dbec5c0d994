package datum

import "sync"

// GarbageList is a list of transient Datums that are dropped together
// in one sweep at a safe point (spec.md §3: Datum model), without
// needing a Go finalizer or a real GC hook — the list just gets
// dropped, and Go's collector does the rest. Only Datums passed to
// Track are on it; the evaluator and executor do not register their
// temporary results here.
type GarbageList struct {
	mu    sync.Mutex
	items []*Datum
}

// NewGarbageList returns an empty list.
func NewGarbageList() *GarbageList {
	return &GarbageList{}
}

// Track registers a transient Datum and returns it unchanged, so calls
// can be written as `return gl.Track(datum.NewInt(n))`.
func (g *GarbageList) Track(d *Datum) *Datum {
	g.mu.Lock()
	g.items = append(g.items, d)
	g.mu.Unlock()
	return d
}

// Len reports how many transient Datums are currently tracked.
func (g *GarbageList) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.items)
}

// Sweep discards every tracked Datum. The editor's command loop calls
// it at the top of each iteration.
func (g *GarbageList) Sweep() {
	g.mu.Lock()
	g.items = g.items[:0]
	g.mu.Unlock()
}
