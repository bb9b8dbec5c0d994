package redisplay

import (
	"fmt"

	"github.com/mxeditor/mx/internal/layout"
	"github.com/mxeditor/mx/internal/mode"
)

// paintModeLine paints w's mode line, the row immediately below its
// text body, in ModeStyle (spec.md §4.6 step 3: "mode-line color
// pair").
func (p *Pipeline) paintModeLine(w *layout.Window, cols int) {
	row := w.TopRow + w.NRows
	text := modeLineText(w, cols)
	col := 0
	for _, r := range text {
		if col >= cols {
			break
		}
		p.Disp.SetCell(row, col, r, p.ModeStyle)
		col++
	}
	for ; col < cols; col++ {
		p.Disp.SetCell(row, col, ' ', p.ModeStyle)
	}
}

// modeLineText builds the mode-line content: a change marker ('*'), a
// read-only marker ('%'), and the buffer name, after the fixed fields of
// original_source/memacs-9.3.0/src/display.c's modeline(), reduced to
// what this editor's buffer actually tracks. The buffer's modes are not
// listed.
func modeLineText(w *layout.Window, cols int) string {
	buf := w.Buf
	changed := " "
	if buf.Changed() {
		changed = "*"
	}
	readOnly := ""
	if buf.Modes[mode.ReadOnly] {
		readOnly = "%"
	}
	return fmt.Sprintf("-%s%s- %s", changed, readOnly, buf.Name)
}
