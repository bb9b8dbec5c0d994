package redisplay

import (
	"time"

	"github.com/mxeditor/mx/internal/buffer"
	"github.com/mxeditor/mx/internal/layout"
	"github.com/mxeditor/mx/internal/term"
)

// fenceOpen maps an opening fence byte to its closer; fenceClose is the
// reverse. Only same-type nesting is tracked, the common case display.c's
// fmatch() handles (a stray mismatched bracket inside the span doesn't
// stop the scan, it's just not itself a nesting event).
var fenceOpen = map[byte]byte{'(': ')', '[': ']', '{': '}'}
var fenceClose = map[byte]byte{')': '(', ']': '[', '}': '{'}

// prevByte returns the byte immediately before pos and its position,
// stepping back across line boundaries; ok is false at the buffer's
// start.
func prevByte(buf *buffer.Buffer, pos buffer.Pos) (byte, buffer.Pos, bool) {
	for {
		if pos.Off > 0 {
			pos.Off--
			return pos.Line.Bytes()[pos.Off], pos, true
		}
		if pos.Line == buf.FirstLine() {
			return 0, buffer.Pos{}, false
		}
		pos.Line = pos.Line.Prev()
		pos.Off = pos.Line.Len()
	}
}

// nextByte returns the byte at pos and that byte's own position,
// stepping to the start of a later line when pos is at a line's end;
// ok is false at the buffer's end.
func nextByte(buf *buffer.Buffer, pos buffer.Pos) (byte, buffer.Pos, bool) {
	for {
		if pos.Off < pos.Line.Len() {
			b := pos.Line.Bytes()[pos.Off]
			cur := pos
			pos.Off++
			return b, cur, true
		}
		if pos.Line.Next() == nil {
			return 0, buffer.Pos{}, false
		}
		pos.Line = pos.Line.Next()
		pos.Off = 0
	}
}

// MatchFence finds the fence matching the byte immediately before pos
// (spec.md §5's "transient visual effect" triggered on insert): if that
// byte is an opener, it scans forward for the balancing closer; if a
// closer, backward for the balancing opener. Returns ok=false if pos
// isn't just past a fence byte, or no balance is found.
func MatchFence(buf *buffer.Buffer, pos buffer.Pos) (buffer.Pos, bool) {
	c, at, ok := prevByte(buf, pos)
	if !ok {
		return buffer.Pos{}, false
	}
	if want, isOpener := fenceOpen[c]; isOpener {
		depth := 1
		cur := buffer.Pos{Line: at.Line, Off: at.Off + 1}
		for {
			b, np, ok2 := nextByte(buf, cur)
			if !ok2 {
				return buffer.Pos{}, false
			}
			cur = buffer.Pos{Line: np.Line, Off: np.Off + 1}
			switch {
			case b == c:
				depth++
			case b == want:
				depth--
				if depth == 0 {
					return np, true
				}
			}
		}
	}
	if want, isCloser := fenceClose[c]; isCloser {
		depth := 1
		cur := at
		for {
			b, pp, ok2 := prevByte(buf, cur)
			if !ok2 {
				return buffer.Pos{}, false
			}
			cur = pp
			switch {
			case b == c:
				depth++
			case b == want:
				depth--
				if depth == 0 {
					return pp, true
				}
			}
		}
	}
	return buffer.Pos{}, false
}

// posScreenPos converts pos into a screen row/column if it currently
// falls within w's visible range, the same walk dotScreenPos does for
// the window's own dot.
func (p *Pipeline) posScreenPos(w *layout.Window, pos buffer.Pos, cols int) (row, col int, ok bool) {
	row = w.TopRow
	line := w.TopLine
	for i := 0; ; i++ {
		if i >= w.NRows {
			return 0, 0, false
		}
		if line == pos.Line {
			break
		}
		if line.Next() == nil {
			return 0, 0, false
		}
		line = line.Next()
		row++
	}
	col = pos.Off - w.FirstCol
	if col < 0 || col >= cols {
		return 0, 0, false
	}
	return row, col, true
}

// FlashFence briefly reverse-highlights the fence at pos, the terminal
// analogue of frame/draw.go's Tick toggling the type-in cursor, then
// blocks for pause (std.h's fencepause, in centiseconds, converted by
// the caller to a time.Duration). The caller must trigger a follow-up
// Paint afterward to restore the cell; FlashFence only draws the flash.
func (p *Pipeline) FlashFence(w *layout.Window, pos buffer.Pos, pause time.Duration) {
	_, cols := p.Disp.Size()
	row, col, ok := p.posScreenPos(w, pos, cols)
	if !ok || pos.Off >= pos.Line.Len() {
		return
	}
	style := p.TextStyle
	style.Attr |= term.AttrReverse
	p.Disp.SetCell(row, col, rune(pos.Line.Bytes()[pos.Off]), style)
	p.Disp.Show()
	time.Sleep(pause)
}
