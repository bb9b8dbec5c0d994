package redisplay

import (
	"github.com/mxeditor/mx/internal/buffer"
	"github.com/mxeditor/mx/internal/layout"
)

// contMarker flags a line whose content runs past the visible column
// range on either side, the terminal analogue of frame/box.go's
// cklinewrap wrapping a text box onto a fresh screen line — this
// editor never wraps, so the marker substitutes for the cut-off tail.
const contMarker = '$'

// adjustHScroll keeps w.Dot on screen horizontally, moving FirstCol in
// steps of Cfg.HJump percent of the window's width until dot is within
// the visible columns, rather than recentering to column zero (std.h's
// HorzJump/hjumpcols, spec.md §4.6).
func (p *Pipeline) adjustHScroll(w *layout.Window, cols int) {
	width := cols
	if width <= 0 {
		return
	}
	jump := width * p.Cfg.HJump / 100
	if jump < 1 {
		jump = 1
	}
	for w.Dot.Off < w.FirstCol {
		w.FirstCol -= jump
		if w.FirstCol < 0 {
			w.FirstCol = 0
		}
	}
	for w.Dot.Off >= w.FirstCol+width {
		w.FirstCol += jump
	}
}

// paintWindow paints w's visible text rows, clipped to its horizontal
// scroll position, and blanks out any row past the end of the buffer.
func (p *Pipeline) paintWindow(w *layout.Window, cols int) {
	line := w.TopLine
	for row := 0; row < w.NRows; row++ {
		screenRow := w.TopRow + row
		if line == nil {
			p.blankRow(screenRow, cols)
			continue
		}
		p.paintLine(screenRow, cols, line, w.FirstCol)
		line = line.Next()
	}
}

func (p *Pipeline) blankRow(row, cols int) {
	for c := 0; c < cols; c++ {
		p.Disp.SetCell(row, c, ' ', p.TextStyle)
	}
}

// paintLine renders one buffer line starting at its firstCol'th byte,
// truncating to cols and flagging truncation with contMarker in the
// rightmost (and, if scrolled, leftmost) cell.
func (p *Pipeline) paintLine(row, cols int, line *buffer.Line, firstCol int) {
	b := line.Bytes()
	col := 0
	if firstCol > 0 {
		if firstCol < len(b) {
			p.Disp.SetCell(row, 0, contMarker, p.TextStyle)
		}
		col = 1
	}
	i := firstCol
	for col < cols-1 && i < len(b) {
		p.Disp.SetCell(row, col, rune(b[i]), p.TextStyle)
		col++
		i++
	}
	if i < len(b) && col < cols {
		p.Disp.SetCell(row, col, contMarker, p.TextStyle)
		col++
	}
	for ; col < cols; col++ {
		p.Disp.SetCell(row, col, ' ', p.TextStyle)
	}
}
