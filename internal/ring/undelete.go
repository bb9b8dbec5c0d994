package ring

// DefaultUndeleteRingSize mirrors memacs-9.3.0's std.h `undelbuf`,
// which holds exactly the most recent non-kill deletion. We generalize
// it to the same bounded Ring[T] shape as the kill ring (a size-1 ring
// behaves identically to a single RingEntry) so a future `-undelete-
// ring-size` style setting has somewhere to plug in.
const DefaultUndeleteRingSize = 1

// UndeleteRing holds text erased by a delete operation that is not
// part of a kill context (spec.md §3: "delete-span ... collects
// deleted text into kill or undelete sink"). Unlike the kill ring, an
// undelete entry never coalesces with its predecessor — each delete is
// its own slot.
type UndeleteRing struct {
	*Ring[[]byte]
}

// NewUndeleteRing returns an UndeleteRing with room for size entries.
func NewUndeleteRing(size int) *UndeleteRing {
	return &UndeleteRing{Ring: New[[]byte](size)}
}

// Record pushes a newly deleted span as a fresh ring entry.
func (u *UndeleteRing) Record(text []byte) {
	cp := make([]byte, len(text))
	copy(cp, text)
	u.Push(cp)
}

// Restore returns the most recently recorded deletion, for the
// `undelete` command (cmd.h's `undelete` entry).
func (u *UndeleteRing) Restore() ([]byte, bool) {
	return u.Current()
}
