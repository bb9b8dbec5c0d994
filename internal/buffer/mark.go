package buffer

// Mark names a position in a buffer that moves with edits (spec.md
// §4.2): it is relocated by UnlinkLine and by InsertNChars/DeleteSpan
// through the buffer's Marks list.
type Mark struct {
	ID   rune
	line *Line
	offset int
	// ReframeRow records the window row the mark's line was displayed
	// on when the mark was set, used to restore scroll position when a
	// window's dot mark is swapped back in (spec.md §5: Window Reframe).
	ReframeRow int
}

// NewMark creates and registers a mark at pos on b.
func (b *Buffer) NewMark(id rune, pos Pos) *Mark {
	m := &Mark{ID: id, line: pos.Line, offset: pos.Off, ReframeRow: -1}
	b.Marks = append(b.Marks, m)
	return m
}

// RemoveMark unregisters m.
func (b *Buffer) RemoveMark(m *Mark) {
	for i, x := range b.Marks {
		if x == m {
			b.Marks = append(b.Marks[:i], b.Marks[i+1:]...)
			return
		}
	}
}

// Mark looks up a registered mark by id.
func (b *Buffer) Mark(id rune) *Mark {
	for _, m := range b.Marks {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// Pos returns the mark's current position.
func (m *Mark) Pos() Pos { return Pos{Line: m.line, Off: m.offset} }

// Goto moves the mark to pos explicitly (e.g. after a search match, or
// a user "set mark" command).
func (m *Mark) Goto(pos Pos) { m.line, m.offset = pos.Line, pos.Off }

// follow adjusts m for an insertion of n bytes at pos on m's line. A
// mark sitting at or after the insertion point moves forward with the
// inserted text; a mark strictly before it is unaffected.
func (m *Mark) follow(pos Pos, n int) {
	if m.line == pos.Line && m.offset >= pos.Off {
		m.offset += n
	}
}

// unfollow adjusts m for a deletion of n bytes starting at pos on m's
// line (before any cross-line merge has happened). A mark inside the
// deleted span collapses to pos; a mark after it shifts back by n.
func (m *Mark) unfollow(pos Pos, n int) {
	if m.line != pos.Line {
		return
	}
	switch {
	case m.offset <= pos.Off:
		// unaffected
	case m.offset <= pos.Off+n:
		m.offset = pos.Off
	default:
		m.offset -= n
	}
}
