// Package layout implements the window/screen layout engine: splitting
// a screen's row stack of windows, joining neighbors, equalizing
// sizes, and reframing a window's top line to keep dot on screen
// (spec.md §3, §4.4). Windows are singly linked top-to-bottom within a
// screen, mirroring the measure-then-assign two-pass shape of
// ui/layout.Build/Measure/Layout, simplified from pixel rectangles to
// integer terminal rows since there is exactly one axis (vertical) and
// no leaf typology to dispatch on.
package layout

import (
	"fmt"

	"github.com/mxeditor/mx/internal/buffer"
)

// MinWindowRows is the fewest text rows (excluding the mode line) a
// window may have; Split and Resize refuse to create anything smaller
// (spec.md §4.6: "Refuses windows smaller than three rows").
const MinWindowRows = 3

// Window is a view onto a buffer within one screen (spec.md §3:
// "next pointer, buffer reference, face, unique window id, top screen
// row, row count, target reframe row, dirty flags").
type Window struct {
	ID   int
	next *Window

	Buf *buffer.Buffer

	TopLine  *buffer.Line
	Dot      buffer.Pos
	FirstCol int

	TopRow int // screen row of this window's first text line
	NRows  int // text rows, excluding the window's own mode line

	// ReframeRow is the row Reframe tries to keep Dot's line pinned to
	// when it is set (>=0); -1 means "just keep dot visible, no target
	// row preference" (ground: spec.md's Mark.ReframeRow).
	ReframeRow int

	dirty buffer.DirtyFlag
}

// MarkDirty implements buffer.Watcher: the buffer calls this on every
// structural or text edit so the window knows what redisplay work it
// owes, without buffer importing layout.
func (w *Window) MarkDirty(f buffer.DirtyFlag) {
	w.dirty |= f
}

// Dirty returns the window's accumulated dirty flags without clearing
// them; ClearDirty resets them. The redisplay pipeline calls this once
// per pass.
func (w *Window) Dirty() buffer.DirtyFlag {
	return w.dirty
}

// ClearDirty resets the window's dirty flags after redisplay has
// serviced them.
func (w *Window) ClearDirty() {
	w.dirty = 0
}

// Next returns the window below w in its screen's row stack, or nil if
// w is last.
func (w *Window) Next() *Window { return w.next }

// bodyRows returns the total rows a window occupies on screen,
// including its own mode line (ground: spec.md's structural invariant
// "top_row + nrows + 1 equals the top-row of the successor window").
func (w *Window) bodyRows() int { return w.NRows + 1 }

// newWindow creates a detached window bound to buf.
func newWindow(id int, buf *buffer.Buffer, topRow, nrows int) *Window {
	w := &Window{
		ID:         id,
		Buf:        buf,
		TopLine:    buf.FirstLine(),
		Dot:        buffer.Pos{Line: buf.FirstLine(), Off: 0},
		TopRow:     topRow,
		NRows:      nrows,
		ReframeRow: -1,
	}
	buf.AddWatcher(w)
	w.dirty = buffer.WFHard
	return w
}

// SwitchBuffer rebinds w to show buf instead of its current buffer,
// saving/restoring each buffer's face the way spec.md §3 describes
// ("a saved face ... used when the buffer is not currently shown").
func (w *Window) SwitchBuffer(buf *buffer.Buffer) {
	if w.Buf != nil {
		w.Buf.SavedFace = buffer.Face{TopLine: w.TopLine, DotLine: w.Dot.Line, DotOff: w.Dot.Off, FirstCol: w.FirstCol}
		w.Buf.RemoveWatcher(w)
	}
	w.Buf = buf
	buf.AddWatcher(w)
	if face := buf.SavedFace; face.DotLine != nil {
		w.TopLine = face.TopLine
		w.Dot = buffer.Pos{Line: face.DotLine, Off: face.DotOff}
		w.FirstCol = face.FirstCol
	} else {
		w.TopLine = buf.FirstLine()
		w.Dot = buffer.Pos{Line: buf.FirstLine(), Off: 0}
		w.FirstCol = 0
	}
	w.dirty |= buffer.WFHard
}

func (w *Window) String() string {
	return fmt.Sprintf("window %d (buf %q, rows %d..%d)", w.ID, w.Buf.Name, w.TopRow, w.TopRow+w.NRows)
}
