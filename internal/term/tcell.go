package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// tcellDisplay is the production Display, backed by a real terminal
// through github.com/gdamore/tcell/v2.
type tcellDisplay struct {
	screen  tcell.Screen
	resizeC chan ResizeEvent

	mu          sync.Mutex
	pendingKeys []*tcell.EventKey
	keyReady    chan struct{}
	closed      bool
}

// NewTcellDisplay initializes tcell and returns a ready-to-use Display.
func NewTcellDisplay() (Display, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.HideCursor()
	d := &tcellDisplay{
		screen:   s,
		resizeC:  make(chan ResizeEvent, 1),
		keyReady: make(chan struct{}, 1),
	}
	go d.pump()
	return d, nil
}

func (d *tcellDisplay) Size() (int, int) {
	cols, rows := d.screen.Size()
	return rows, cols
}

func (d *tcellDisplay) SetCell(row, col int, ch rune, style Style) {
	d.screen.SetContent(col, row, ch, nil, toTcellStyle(style))
}

func (d *tcellDisplay) Show() { d.screen.Show() }

func (d *tcellDisplay) MoveCursor(row, col int) { d.screen.ShowCursor(col, row) }

func (d *tcellDisplay) HideCursor() { d.screen.HideCursor() }

func (d *tcellDisplay) Beep() { _ = d.screen.Beep() }

func (d *tcellDisplay) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	select {
	case d.keyReady <- struct{}{}:
	default:
	}
	d.screen.Fini()
}

func (d *tcellDisplay) PollResize() <-chan ResizeEvent { return d.resizeC }

// PollKey blocks until a key is available or the display is closed.
func (d *tcellDisplay) PollKey() (Key, bool) {
	for {
		d.mu.Lock()
		if len(d.pendingKeys) > 0 {
			ev := d.pendingKeys[0]
			d.pendingKeys = d.pendingKeys[1:]
			d.mu.Unlock()
			return fromTcellKey(ev), true
		}
		if d.closed {
			d.mu.Unlock()
			return Key{}, false
		}
		d.mu.Unlock()
		<-d.keyReady
	}
}

func fromTcellKey(e *tcell.EventKey) Key {
	var mod Mod
	if e.Modifiers()&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if e.Modifiers()&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	if e.Modifiers()&tcell.ModAlt != 0 {
		mod |= ModAlt
	}
	if e.Modifiers()&tcell.ModMeta != 0 {
		mod |= ModMeta
	}
	if e.Key() == tcell.KeyRune {
		return Key{Rune: e.Rune(), Mod: mod}
	}
	return Key{Name: tcell.KeyNames[e.Key()], Mod: mod}
}

// pump translates tcell's single PollEvent stream into this package's
// Key/ResizeEvent channels; key events are instead delivered through
// PollKey's own blocking read to keep the call shape simple for the
// command loop (ground: gdamore/tcell mock Tty's single-reader event
// loop model).
func (d *tcellDisplay) pump() {
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}
		switch e := ev.(type) {
		case *tcell.EventResize:
			cols, rows := e.Size()
			select {
			case d.resizeC <- ResizeEvent{Rows: rows, Cols: cols}:
			default:
			}
		case *tcell.EventKey:
			d.mu.Lock()
			d.pendingKeys = append(d.pendingKeys, e)
			d.mu.Unlock()
			select {
			case d.keyReady <- struct{}{}:
			default:
			}
		}
	}
}

func toTcellStyle(s Style) tcell.Style {
	st := tcell.StyleDefault
	if s.Fg != "" {
		st = st.Foreground(tcell.GetColor(s.Fg))
	}
	if s.Bg != "" {
		st = st.Background(tcell.GetColor(s.Bg))
	}
	if s.Attr&AttrBold != 0 {
		st = st.Bold(true)
	}
	if s.Attr&AttrUnderline != 0 {
		st = st.Underline(true)
	}
	if s.Attr&AttrReverse != 0 {
		st = st.Reverse(true)
	}
	if s.Attr&AttrBlink != 0 {
		st = st.Blink(true)
	}
	return st
}
