package ring

// DefaultPatternRingSize mirrors memacs-9.3.0 std.h's NPatRing: the
// default depth for both the search-string ring and the replacement-
// pattern ring (`cf_cycleSearchRing`/`cf_cycleReplaceRing`).
const DefaultPatternRingSize = 20

// PatternRing holds a history of search or replacement pattern
// strings, most-recent first, with the same MRU-overwrite discipline
// as the kill ring. Two independent instances back the search
// commands' pattern history and the replace commands' replacement
// history.
type PatternRing struct {
	*Ring[string]
}

// NewPatternRing returns a PatternRing with room for size entries.
func NewPatternRing(size int) *PatternRing {
	return &PatternRing{Ring: New[string](size)}
}

// Record pushes pat as the ring's new current entry, unless it is
// already the current entry (repeating the same search shouldn't
// burn a new ring slot).
func (p *PatternRing) Record(pat string) {
	if cur, ok := p.Current(); ok && cur == pat {
		return
	}
	p.Push(pat)
}
