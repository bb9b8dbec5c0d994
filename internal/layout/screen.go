package layout

import (
	"fmt"

	"github.com/mxeditor/mx/internal/buffer"
)

// Screen owns one row stack of windows over a terminal-sized text
// body (the body excludes the home-row-minus-one message line, which
// internal/redisplay owns directly). Screens are created/destroyed
// explicitly by the editor (spec.md §3 Lifecycle).
type Screen struct {
	ID         int
	First      *Window
	Cur        *Window
	Rows       int // total text-body rows available to this screen
	Cols       int
	FullRedraw bool

	nextWinID int
}

// NewScreen creates a screen with a single window spanning the full
// body and showing buf.
func NewScreen(id, rows, cols int, buf *buffer.Buffer) *Screen {
	s := &Screen{ID: id, Rows: rows, Cols: cols, FullRedraw: true}
	w := newWindow(s.allocWinID(), buf, 0, rows-1)
	s.First = w
	s.Cur = w
	return s
}

func (s *Screen) allocWinID() int {
	s.nextWinID++
	return s.nextWinID
}

// Windows returns every window in the screen, top to bottom.
func (s *Screen) Windows() []*Window {
	var out []*Window
	for w := s.First; w != nil; w = w.next {
		out = append(out, w)
	}
	return out
}

// find returns w's predecessor in the chain, or nil if w is First or
// not present.
func (s *Screen) pred(w *Window) *Window {
	if s.First == w {
		return nil
	}
	for p := s.First; p != nil; p = p.next {
		if p.next == w {
			return p
		}
	}
	return nil
}

// Split divides w into two windows, w (keeping the top half) and a new
// window immediately below it showing the same buffer (ground:
// frame/box.go's splitbox, which divides one box record into two
// in-place; here the "record" is a window's row allocation rather than
// a text box). Returns the new window.
func (s *Screen) Split(w *Window) (*Window, error) {
	total := w.NRows - 1 // one row surrendered to the new window's own mode line
	if total < MinWindowRows*2 {
		return nil, fmt.Errorf("window too small to split: %d rows", w.NRows)
	}
	top := total / 2
	bottom := total - top

	nw := newWindow(s.allocWinID(), w.Buf, w.TopRow+top+1, bottom)
	nw.next = w.next
	w.next = nw
	w.NRows = top
	w.dirty |= buffer.WFHard
	s.renumberRows()
	return nw, nil
}

// Join removes w's successor from the stack, giving its rows (plus the
// row its mode line occupied) back to w. It is an error to join the
// last window (ground: spec.md "destroyed by delete or join").
func (s *Screen) Join(w *Window) error {
	if w.next == nil {
		return fmt.Errorf("window %d has no successor to join", w.ID)
	}
	absorbed := w.next
	w.NRows += absorbed.bodyRows()
	w.next = absorbed.next
	absorbed.Buf.RemoveWatcher(absorbed)
	if s.Cur == absorbed {
		s.Cur = w
	}
	w.dirty |= buffer.WFHard
	s.renumberRows()
	return nil
}

// Delete removes w from the stack (spec.md: "destroyed by delete or
// join" — Delete differs from Join in that w's rows go to its
// predecessor, or to its successor if w is first, rather than w
// absorbing a neighbor). It is an error to delete the screen's only
// window.
func (s *Screen) Delete(w *Window) error {
	if s.First == w && w.next == nil {
		return fmt.Errorf("cannot delete the only window on a screen")
	}
	w.Buf.RemoveWatcher(w)
	if p := s.pred(w); p != nil {
		p.NRows += w.bodyRows()
		p.next = w.next
		p.dirty |= buffer.WFHard
		if s.Cur == w {
			s.Cur = p
		}
	} else {
		s.First = w.next
		s.First.TopRow = w.TopRow
		s.First.NRows += w.bodyRows()
		s.First.dirty |= buffer.WFHard
		if s.Cur == w {
			s.Cur = s.First
		}
	}
	s.renumberRows()
	return nil
}

// Equalize redistributes rows evenly among all windows on the screen,
// ground: ui/layout.layoutBox's flex distribution (space divided by
// weight, remainder handed to the earliest children) adapted from
// pixel flex-weights, all equal to 1, to integer terminal rows.
func (s *Screen) Equalize() {
	wins := s.Windows()
	n := len(wins)
	if n == 0 {
		return
	}
	totalBody := s.Rows - n // one row per window reserved for its mode line
	if totalBody < n*MinWindowRows {
		return // not enough room to give everyone the minimum
	}
	base := totalBody / n
	extra := totalBody % n
	row := 0
	for i, w := range wins {
		rows := base
		if i < extra {
			rows++
		}
		w.TopRow = row
		w.NRows = rows
		w.dirty |= buffer.WFHard
		row += w.bodyRows()
	}
}

// Resize adjusts the screen's available rows (e.g. after a terminal
// resize) and proportionally rescales every window's NRows, rounding
// down and handing any leftover rows to the last window so the rows
// sum to the new body height. No window gets fewer than MinWindowRows:
// if the last window's remainder would be smaller, every window is
// made equal instead. When the new height cannot give every window
// MinWindowRows, window sizes are left unchanged.
func (s *Screen) Resize(rows, cols int) {
	wins := s.Windows()
	oldTotalBody := s.Rows - len(wins)
	s.Rows, s.Cols = rows, cols
	if len(wins) == 0 || oldTotalBody <= 0 {
		return
	}
	newTotalBody := rows - len(wins)
	if newTotalBody < len(wins)*MinWindowRows {
		s.Equalize()
		return
	}
	assigned := 0
	top := 0
	for i, w := range wins {
		var nrows int
		if i == len(wins)-1 {
			nrows = newTotalBody - assigned
			if nrows < MinWindowRows {
				s.Equalize()
				s.FullRedraw = true
				return
			}
		} else {
			nrows = w.NRows * newTotalBody / oldTotalBody
			if nrows < MinWindowRows {
				nrows = MinWindowRows
			}
		}
		w.TopRow = top
		w.NRows = nrows
		w.dirty |= buffer.WFHard
		assigned += nrows
		top += w.bodyRows()
	}
	s.FullRedraw = true
}

// renumberRows recomputes TopRow for every window from First downward,
// keeping the chain's row bookkeeping consistent after a
// Split/Join/Delete that only touched local NRows values.
func (s *Screen) renumberRows() {
	row := 0
	for w := s.First; w != nil; w = w.next {
		w.TopRow = row
		row += w.bodyRows()
	}
}

// ResizeWindow implements spec.md §4.6's gswind(n, how): how<0 shrinks
// w by n rows (taking them from its neighbor below, or above if w is
// last), how>0 grows w by n rows from the same donor, and how==0
// resizes w to an absolute size of n rows. The donor must retain at
// least MinWindowRows after the transfer, or the resize is refused.
func (s *Screen) ResizeWindow(w *Window, n int, how int) error {
	if how == 0 {
		delta := n - w.NRows
		if delta == 0 {
			return nil
		}
		if delta > 0 {
			how = 1
			n = delta
		} else {
			how = -1
			n = -delta
		}
	}
	donor := w.next
	if donor == nil {
		donor = s.pred(w)
	}
	if donor == nil {
		return fmt.Errorf("window %d has no neighbor to resize against", w.ID)
	}

	var grower, shrinker *Window
	if how > 0 {
		grower, shrinker = w, donor
	} else {
		grower, shrinker = donor, w
	}
	if shrinker.NRows-n < MinWindowRows {
		return fmt.Errorf("cannot shrink window %d below %d rows", shrinker.ID, MinWindowRows)
	}
	grower.NRows += n
	shrinker.NRows -= n
	grower.dirty |= buffer.WFHard
	shrinker.dirty |= buffer.WFHard
	s.renumberRows()
	return nil
}

// NextWindow returns the window following cur in the stack, wrapping
// to First (the "next window" command's cyclic order).
func (s *Screen) NextWindow(cur *Window) *Window {
	if cur.next != nil {
		return cur.next
	}
	return s.First
}
