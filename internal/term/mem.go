package term

import "sync"

// MemDisplay is an in-memory Display for tests: it records every
// painted cell and lets a test script feed it canned key events,
// mirroring the "mock terminal" split the gdamore/tcell and
// charmbracelet/bubbletea packs use so rendering logic can be asserted
// against without a real tty (ground: gdamore/tcell's mock Tty,
// narrowed to the cell-grid/key-queue shape this package needs).
type MemDisplay struct {
	mu sync.Mutex

	rows, cols int
	cells      [][]rune
	styles     [][]Style

	cursorRow, cursorCol int
	cursorHidden         bool

	keys    []Key
	resizeC chan ResizeEvent
	closed  bool
	beeps   int
}

// NewMemDisplay creates a fake terminal of the given size.
func NewMemDisplay(rows, cols int) *MemDisplay {
	d := &MemDisplay{rows: rows, cols: cols, resizeC: make(chan ResizeEvent, 1)}
	d.reset()
	return d
}

func (d *MemDisplay) reset() {
	d.cells = make([][]rune, d.rows)
	d.styles = make([][]Style, d.rows)
	for r := range d.cells {
		d.cells[r] = make([]rune, d.cols)
		d.styles[r] = make([]Style, d.cols)
		for c := range d.cells[r] {
			d.cells[r][c] = ' '
		}
	}
}

func (d *MemDisplay) Size() (int, int) { return d.rows, d.cols }

func (d *MemDisplay) SetCell(row, col int, ch rune, style Style) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if row < 0 || row >= d.rows || col < 0 || col >= d.cols {
		return
	}
	d.cells[row][col] = ch
	d.styles[row][col] = style
}

func (d *MemDisplay) Show() {}

func (d *MemDisplay) MoveCursor(row, col int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursorRow, d.cursorCol = row, col
	d.cursorHidden = false
}

func (d *MemDisplay) HideCursor() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursorHidden = true
}

func (d *MemDisplay) Beep() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.beeps++
}

func (d *MemDisplay) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
}

func (d *MemDisplay) PollResize() <-chan ResizeEvent { return d.resizeC }

// PollKey returns the next queued key (fed via Feed), or false when the
// queue is empty; it never blocks.
func (d *MemDisplay) PollKey() (Key, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.keys) == 0 {
		return Key{}, false
	}
	k := d.keys[0]
	d.keys = d.keys[1:]
	return k, true
}

// Feed queues key events for a later PollKey to return, in order.
func (d *MemDisplay) Feed(keys ...Key) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keys = append(d.keys, keys...)
}

// Resize changes the display's dimensions and queues a ResizeEvent.
func (d *MemDisplay) Resize(rows, cols int) {
	d.mu.Lock()
	d.rows, d.cols = rows, cols
	d.reset()
	d.mu.Unlock()
	select {
	case d.resizeC <- ResizeEvent{Rows: rows, Cols: cols}:
	default:
	}
}

// Line returns the painted text of row r, trailing spaces included, as
// a test assertion helper.
func (d *MemDisplay) Line(r int) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if r < 0 || r >= d.rows {
		return ""
	}
	return string(d.cells[r])
}

// CellStyle returns the style painted at (row, col).
func (d *MemDisplay) CellStyle(row, col int) Style {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.styles[row][col]
}

// Cursor returns the last cursor position set via MoveCursor and
// whether it is currently hidden.
func (d *MemDisplay) Cursor() (row, col int, hidden bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursorRow, d.cursorCol, d.cursorHidden
}

// Beeps returns how many times Beep has been called.
func (d *MemDisplay) Beeps() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.beeps
}
