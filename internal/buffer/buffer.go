package buffer

import (
	"fmt"
)

// DirtyFlag is the set of reasons a window showing a buffer needs
// attention at the next redisplay (spec.md §4.1).
type DirtyFlag uint8

const (
	// WFMove means only a window's point moved; no text changed.
	WFMove DirtyFlag = 1 << iota
	// WFEdit means text changed but no line was inserted or deleted.
	WFEdit
	// WFHard means a line was inserted or deleted (a structural change).
	WFHard
)

// Watcher is notified when a buffer mutates. internal/layout's Window
// implements this to maintain its own dirty flags without buffer
// importing layout.
type Watcher interface {
	MarkDirty(DirtyFlag)
}

// Flag is a bitset of buffer attribute flags (spec.md §3: "active /
// changed / hidden / macro / narrowed / preprocessed / constrained /
// term-attr").
type Flag uint16

const (
	FlActive Flag = 1 << iota
	FlChanged
	FlHidden
	FlMacro
	FlNarrowed
	FlPreprocessed
	FlConstrained
	FlTermAttr
)

// Face is the saved view state of a buffer not currently shown in any
// window: top line, dot, and first displayed column (spec.md §3).
type Face struct {
	TopLine  *Line
	DotLine  *Line
	DotOff   int
	FirstCol int
}

// MacroExt holds the extra state a macro buffer carries (spec.md §3).
type MacroExt struct {
	MinArgs, MaxArgs int
	Usage, Descr     string
	Invocations      int // active-invocation count
	Blocks           any // *exec.LoopBlock list; typed any to avoid an
	// internal/buffer -> internal/lang/exec import cycle. Set and read
	// through the exec package's own accessor.
}

// Buffer is a named container owning its line list (spec.md §3).
type Buffer struct {
	Name     string
	Filename string
	Flags    Flag
	Delim    string // detected line delimiter ("\n", "\r\n", "\r")

	first *Line // anchor: first.prev is the last line
	nLine int
	nByte int

	Marks []*Mark
	Modes map[string]bool // enabled buffer-local modes, by mode name

	SavedFace Face
	Macro     *MacroExt

	// hiddenHead/hiddenTail hold the lines narrow() removed from the
	// visible list, in original order, so widen() can splice them back.
	hiddenHead []*Line
	hiddenTail []*Line

	watchers []Watcher
}

// New creates an empty buffer (one empty line) with the given name.
func New(name string) *Buffer {
	l := newLine(minLineCap)
	l.next = nil
	l.prev = l
	return &Buffer{
		Name:  name,
		Flags: FlActive,
		Delim: "\n",
		first: l,
		nLine: 1,
		Modes: make(map[string]bool),
	}
}

// MacroPrefix is the reserved leading character of a macro buffer's
// name.
const MacroPrefix = '&'

// IsMacroName reports whether name begins with the reserved macro
// leading character (spec.md §3).
func IsMacroName(name string) bool {
	return len(name) > 0 && name[0] == MacroPrefix
}

// AddWatcher registers w to be notified of dirty-flag events.
func (b *Buffer) AddWatcher(w Watcher) {
	for _, x := range b.watchers {
		if x == w {
			return
		}
	}
	b.watchers = append(b.watchers, w)
}

// RemoveWatcher unregisters w.
func (b *Buffer) RemoveWatcher(w Watcher) {
	for i, x := range b.watchers {
		if x == w {
			b.watchers = append(b.watchers[:i], b.watchers[i+1:]...)
			return
		}
	}
}

func (b *Buffer) notify(f DirtyFlag) {
	for _, w := range b.watchers {
		w.MarkDirty(f)
	}
}

// FirstLine returns the buffer's first visible line.
func (b *Buffer) FirstLine() *Line { return b.first }

// LastLine returns the buffer's last visible line (first.prev).
func (b *Buffer) LastLine() *Line {
	if b.first == nil {
		return nil
	}
	return b.first.prev
}

// LineCount returns the number of lines currently visible.
func (b *Buffer) LineCount() int { return b.nLine }

// ByteCount returns the total byte count of visible lines, not
// counting newline terminators.
func (b *Buffer) ByteCount() int { return b.nByte }

// Changed reports whether the buffer has been edited since last saved.
func (b *Buffer) Changed() bool { return b.Flags&FlChanged != 0 }

// SetChanged marks (or clears) the changed flag directly, used by
// file-save and by the undelete/undo-adjacent ctl verbs.
func (b *Buffer) SetChanged(v bool) {
	if v {
		b.Flags |= FlChanged
	} else {
		b.Flags &^= FlChanged
	}
}

// LinkLine inserts line l immediately after "after" (nil to prepend to
// the head of the buffer). This is a structural change: every window
// on the buffer gets WFHard.
func (b *Buffer) LinkLine(after, l *Line) {
	if b.first == nil {
		l.next = nil
		l.prev = l
		b.first = l
	} else if after == nil {
		last := b.first.prev
		l.next = b.first
		l.prev = last
		b.first.prev = l
		b.first = l
	} else {
		l.next = after.next
		l.prev = after
		if after.next != nil {
			after.next.prev = l
		} else {
			b.first.prev = l
		}
		after.next = l
	}
	b.nLine++
	b.nByte += l.used
	b.notify(WFHard)
}

// UnlinkLine removes l from the buffer's line list. Marks sitting on l
// are relocated to the successor line at offset 0 (spec.md §3), or to
// the predecessor at its end if l was the last line.
func (b *Buffer) UnlinkLine(l *Line) {
	b.nByte -= l.used
	b.nLine--

	var successor *Line
	succOff := 0
	if l.next != nil {
		successor = l.next
	} else if l.prev != l {
		successor = l.prev
		succOff = l.prev.used
	}

	if l == b.first {
		b.first = l.next
	}
	if l.prev != l {
		l.prev.next = l.next
		if l.next != nil {
			l.next.prev = l.prev
		} else if b.first != nil {
			b.first.prev = l.prev
		}
	}
	l.next, l.prev = nil, nil

	for _, m := range b.Marks {
		if m.line == l {
			if successor != nil && successor != l {
				m.line = successor
				m.offset = succOff
			}
		}
	}
	b.notify(WFHard)
}

// AppendStringAsLine appends a new line holding s to the end of the
// buffer.
func (b *Buffer) AppendStringAsLine(s string) *Line {
	l := NewLineFromBytes([]byte(s))
	if b.nLine == 1 && b.first.used == 0 && b.first.next == nil {
		// replace the initial empty line rather than leaving a blank one
		b.first = l
		l.next = nil
		l.prev = l
		b.nLine = 1
		b.nByte = l.used
		b.notify(WFHard)
		return l
	}
	b.LinkLine(b.LastLine(), l)
	return l
}

// Pos identifies a location within a buffer: a line and a byte offset
// into that line (the offset may equal the line's length, meaning
// "just before the line's newline").
type Pos struct {
	Line *Line
	Off  int
}

// InsertNChars inserts p at pos, growing the current line in place and
// splitting on embedded newlines. Returns the position immediately
// after the inserted text. Registered marks at or after pos on the same
// line move forward with the inserted text (and onto the new line when
// the insert splits theirs); a window's dot is not a registered mark,
// so callers move it themselves from the returned position.
func (b *Buffer) InsertNChars(pos Pos, p []byte) Pos {
	if len(p) == 0 {
		return pos
	}
	line := pos.Line
	off := pos.Off
	start := 0
	hard := false
	for {
		nl := indexByte(p[start:], '\n')
		if nl < 0 {
			chunk := p[start:]
			line.insertAt(off, chunk)
			b.nByte += len(chunk)
			for _, m := range b.Marks {
				m.follow(Pos{Line: line, Off: off}, len(chunk))
			}
			off += len(chunk)
			break
		}
		chunk := p[start : start+nl]
		line.insertAt(off, chunk)
		b.nByte += len(chunk)
		for _, m := range b.Marks {
			m.follow(Pos{Line: line, Off: off}, len(chunk))
		}
		off += len(chunk)

		// split the line at off: new line gets the tail.
		tail := append([]byte(nil), line.buf[off:line.used]...)
		line.used = off
		line.buf = line.buf[:off]

		newLine := NewLineFromBytes(tail)
		b.LinkLine(line, newLine)
		b.nByte -= len(tail) // LinkLine already counted newLine.used once; line keeps its own bytes
		for _, m := range b.Marks {
			if m.line == line && m.offset > off {
				m.line = newLine
				m.offset -= off
			}
		}
		hard = true

		line = newLine
		off = 0
		start += nl + 1
	}
	if hard {
		b.notify(WFHard)
	} else {
		b.notify(WFEdit)
	}
	b.SetChanged(true)
	return Pos{Line: line, Off: off}
}

// DeleteSpan deletes n bytes starting at pos (n >= 0: forward; n < 0:
// backward from pos, i.e. deletes |n| bytes ending at pos). Lines are
// merged across line breaks as needed. Returns the deleted bytes
// (caller feeds them to the kill/undelete sink) and the resulting
// position (the lower end of the deleted span).
func (b *Buffer) DeleteSpan(pos Pos, n int) ([]byte, Pos) {
	if n == 0 {
		return nil, pos
	}
	if n < 0 {
		start, ok := b.advance(pos, n)
		if !ok {
			start = Pos{Line: b.first, Off: 0}
		}
		return b.deleteForward(start, b.distance(start, pos))
	}
	return b.deleteForward(pos, n)
}

func (b *Buffer) deleteForward(pos Pos, n int) ([]byte, Pos) {
	var out []byte
	line := pos.Line
	off := pos.Off
	hard := false
	for n > 0 {
		avail := line.used - off
		if avail >= n {
			out = append(out, line.buf[off:off+n]...)
			line.deleteRange(off, off+n)
			b.nByte -= n
			for _, m := range b.Marks {
				m.unfollow(Pos{Line: line, Off: off}, n)
			}
			n = 0
			break
		}
		out = append(out, line.buf[off:line.used]...)
		b.nByte -= line.used - off
		n -= avail + 1 // +1 for the implicit newline
		out = append(out, '\n')
		next := line.next
		if next == nil {
			// nothing left to merge; clamp
			line.deleteRange(off, line.used)
			n = 0
			break
		}
		// merge next into line at off
		tail := append([]byte(nil), next.buf[:next.used]...)
		line.deleteRange(off, line.used)
		for _, m := range b.Marks {
			if m.line == next {
				m.line = line
				m.offset += off
			}
		}
		b.UnlinkLine(next)
		line.insertAt(off, tail)
		b.nByte += len(tail)
		hard = true
	}
	if hard {
		b.notify(WFHard)
	} else {
		b.notify(WFEdit)
	}
	b.SetChanged(true)
	return out, Pos{Line: line, Off: off}
}

// distance returns the byte distance from a to b (a must be <= b in
// document order for a meaningful result; used internally for
// backward deletes where the caller already established order).
func (b *Buffer) distance(a, z Pos) int {
	n := 0
	l := a.Line
	off := a.Off
	for l != z.Line {
		n += l.used - off + 1
		l = l.next
		off = 0
	}
	n += z.Off - off
	return n
}

// advance moves pos by n bytes (n may be negative) within the buffer,
// returning false if it would run off either end.
func (b *Buffer) advance(pos Pos, n int) (Pos, bool) {
	line := pos.Line
	off := pos.Off
	if n >= 0 {
		for n > 0 {
			remain := line.used - off
			if n <= remain {
				return Pos{Line: line, Off: off + n}, true
			}
			n -= remain + 1
			if line.next == nil {
				return Pos{Line: line, Off: line.used}, n <= 0
			}
			line = line.next
			off = 0
		}
		return Pos{Line: line, Off: off}, true
	}
	n = -n
	for n > 0 {
		if n <= off {
			return Pos{Line: line, Off: off - n}, true
		}
		n -= off + 1
		if line.prev == line || line.prev == b.LastLine() && line == b.first {
			return Pos{Line: b.first, Off: 0}, n <= 0
		}
		line = line.prev
		off = line.used
	}
	return Pos{Line: line, Off: off}, true
}

func indexByte(p []byte, c byte) int {
	for i, b := range p {
		if b == c {
			return i
		}
	}
	return -1
}

// String returns a short debug description.
func (b *Buffer) String() string {
	return fmt.Sprintf("buffer %q (%d lines, %d bytes)", b.Name, b.nLine, b.nByte)
}
