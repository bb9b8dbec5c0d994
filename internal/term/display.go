// Package term abstracts the terminal so the redisplay pipeline and
// input reader never touch an escape sequence directly (spec.md §4.4,
// §6). The production implementation wraps github.com/gdamore/tcell/v2;
// tests use an in-memory implementation that records exactly what was
// painted, the same split the pack's gdamore/tcell mock Tty and
// charmbracelet/bubbletea "standard renderer" use to keep rendering
// logic testable without a real terminal.
package term

// Attr is a bitset of terminal text attributes (spec.md §4.4: "terminal
// attributes processed").
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrUnderline
	AttrReverse
	AttrBlink
)

// Style pairs a foreground/background color name with attributes. An
// empty color name means "terminal default".
type Style struct {
	Fg, Bg string
	Attr   Attr
}

// Key identifies one input event: either a plain byte (Rune) or a
// named function/control key (Name); extended-key encoding
// (internal/input) builds on top of whichever of these tcell reports.
type Key struct {
	Rune rune
	Name string // "", or e.g. "Up", "F1", "Enter", "Ctrl+A" for non-rune keys
	Mod  Mod
}

// Mod is a bitset of modifier keys held during a key event.
type Mod uint8

const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// ResizeEvent reports a terminal size change.
type ResizeEvent struct {
	Rows, Cols int
}

// Display is the terminal abstraction every redisplay and input
// component programs against (ground: gdamore/tcell's Screen
// interface, narrowed to exactly the calls this editor needs).
type Display interface {
	// Size returns the current terminal dimensions in character cells.
	Size() (rows, cols int)
	// SetCell paints one cell. Implementations buffer until Show.
	SetCell(row, col int, ch rune, style Style)
	// Show flushes buffered cell writes to the real terminal.
	Show()
	// MoveCursor places the terminal's visible cursor.
	MoveCursor(row, col int)
	// HideCursor hides the terminal cursor (e.g. during a full redraw).
	HideCursor()
	// PollKey blocks for the next key event, or returns ok=false if the
	// display was closed while waiting.
	PollKey() (Key, bool)
	// PollResize returns a channel that receives a ResizeEvent whenever
	// the terminal is resized.
	PollResize() <-chan ResizeEvent
	// Beep rings the terminal bell.
	Beep()
	// Close releases the terminal (restores cooked mode, etc.).
	Close()
}
