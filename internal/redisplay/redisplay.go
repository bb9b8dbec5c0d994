// Package redisplay implements the dirty-flag-driven screen refresh
// pipeline (spec.md §4.6): recomputing each window's visible line
// range, painting text/mode/message lines, and placing the terminal
// cursor. It is grounded on frame/draw.go's Redraw/drawsel0/Tick
// dirty-region repaint discipline, reimplemented over terminal cells
// through internal/term instead of draw.Image.Draw.
package redisplay

import (
	"github.com/mxeditor/mx/internal/buffer"
	"github.com/mxeditor/mx/internal/layout"
	"github.com/mxeditor/mx/internal/mode"
	"github.com/mxeditor/mx/internal/rc"
	"github.com/mxeditor/mx/internal/term"
)

// Config holds the tunables original_source/memacs-9.3.0/src/std.h
// calls hjump/vjump: how aggressively redisplay jump-scrolls instead of
// recentering. The fence-match flash duration is not part of Config;
// FlashFence takes it as an argument.
type Config struct {
	// HJump is the percentage of a window's width to jump horizontally
	// once dot scrolls off the visible columns (std.h's HorzJump, 15).
	HJump int
	// VJump is the percentage of a window's height to jump vertically
	// on reframe; zero selects smooth (one-line-at-a-time) scrolling
	// instead (std.h's VertJump, 25; spec.md §4.6).
	VJump int
}

// DefaultConfig matches the original's compiled-in defaults.
func DefaultConfig() Config {
	return Config{HJump: 15, VJump: 25}
}

// Pipeline paints one screen's worth of windows, mode lines, and the
// message line onto a term.Display.
type Pipeline struct {
	Disp term.Display
	Cfg  Config

	TextStyle    term.Style
	ModeStyle    term.Style
	MessageStyle term.Style
}

// New creates a Pipeline targeting disp.
func New(disp term.Display, cfg Config) *Pipeline {
	return &Pipeline{
		Disp:         disp,
		Cfg:          cfg,
		ModeStyle:    term.Style{Attr: term.AttrReverse},
		MessageStyle: term.Style{},
	}
}

// Paint runs the five-step pipeline spec.md §4.6 lists: reframe dirty
// windows, paint their text, paint their mode lines, paint the message
// line, then move the cursor to the current window's dot. scr.FullRedraw
// forces every step unconditionally and is cleared on return.
func (p *Pipeline) Paint(scr *layout.Screen, reg *rc.Register, modes *mode.Table) {
	_, cols := p.Disp.Size()
	full := scr.FullRedraw

	for _, w := range scr.Windows() {
		dirty := w.Dirty()
		if !full && dirty == 0 {
			continue
		}
		if full || dirty&(buffer.WFHard|buffer.WFMove) != 0 {
			p.ensureVisible(w)
			p.adjustHScroll(w, cols)
		}
		p.paintWindow(w, cols)
		p.paintModeLine(w, cols)
		w.ClearDirty()
	}

	p.paintMessage(reg, modes, cols)

	cur := scr.Cur
	row, col := p.dotScreenPos(cur, cols)
	p.Disp.MoveCursor(row, col)
	scr.FullRedraw = false
	p.Disp.Show()
}

// ensureVisible reframes w if its dot has scrolled outside the window's
// current [TopLine, TopLine+NRows) range.
func (p *Pipeline) ensureVisible(w *layout.Window) {
	line := w.TopLine
	for i := 0; i < w.NRows; i++ {
		if line == w.Dot.Line {
			return
		}
		if line.Next() == nil {
			break
		}
		line = line.Next()
	}
	p.reframe(w)
}

// reframe picks a new top line for w so dot becomes visible again
// (spec.md §4.6 "Reframe"): a window with a ReframeRow target pins dot
// to that row; otherwise dot jumps by Cfg.VJump percent of window
// height, or scrolls by as few lines as needed when VJump is zero.
func (p *Pipeline) reframe(w *layout.Window) {
	if w.ReframeRow >= 0 {
		p.jumpTo(w, w.ReframeRow)
		return
	}
	if p.Cfg.VJump == 0 {
		p.smoothScroll(w)
		return
	}
	target := w.NRows * p.Cfg.VJump / 100
	if target >= w.NRows {
		target = w.NRows - 1
	}
	p.jumpTo(w, target)
}

// jumpTo sets w.TopLine so dot lands on row offset target within the
// window, walking backward from dot toward the buffer's first line.
func (p *Pipeline) jumpTo(w *layout.Window, target int) {
	first := w.Buf.FirstLine()
	line := w.Dot.Line
	for i := 0; i < target; i++ {
		if line == first {
			break
		}
		line = line.Prev()
	}
	w.TopLine = line
}

// smoothScroll moves TopLine by as few lines as bring dot back into
// view, the original's vjump==0 behavior, rather than jumping by a
// percentage: dot below the window lands on its last row, dot above it
// becomes the top line.
func (p *Pipeline) smoothScroll(w *layout.Window) {
	for l := w.TopLine; l != nil; l = l.Next() {
		if l == w.Dot.Line {
			p.jumpTo(w, w.NRows-1)
			return
		}
	}
	w.TopLine = w.Dot.Line
}

// dotScreenPos returns the absolute terminal row/column of w's dot,
// honoring the window's current FirstCol horizontal scroll.
func (p *Pipeline) dotScreenPos(w *layout.Window, cols int) (row, col int) {
	row = w.TopRow
	line := w.TopLine
	for line != w.Dot.Line && line.Next() != nil {
		line = line.Next()
		row++
	}
	col = w.Dot.Off - w.FirstCol
	if col < 0 {
		col = 0
	}
	if col > cols-1 {
		col = cols - 1
	}
	return row, col
}
