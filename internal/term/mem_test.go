package term

import "testing"

func TestMemDisplayPaintAndLine(t *testing.T) {
	d := NewMemDisplay(5, 10)
	for i, ch := range "hello" {
		d.SetCell(0, i, ch, Style{})
	}
	got := d.Line(0)
	if got[:5] != "hello" {
		t.Fatalf("Line(0) = %q, want prefix %q", got, "hello")
	}
}

func TestMemDisplayKeyQueue(t *testing.T) {
	d := NewMemDisplay(5, 10)
	d.Feed(Key{Rune: 'a'}, Key{Name: "Enter"})
	k, ok := d.PollKey()
	if !ok || k.Rune != 'a' {
		t.Fatalf("first key = %+v, ok=%v", k, ok)
	}
	k, ok = d.PollKey()
	if !ok || k.Name != "Enter" {
		t.Fatalf("second key = %+v, ok=%v", k, ok)
	}
	if _, ok := d.PollKey(); ok {
		t.Fatal("expected no more keys")
	}
}

func TestMemDisplayCursorAndBeep(t *testing.T) {
	d := NewMemDisplay(5, 10)
	d.MoveCursor(2, 3)
	row, col, hidden := d.Cursor()
	if row != 2 || col != 3 || hidden {
		t.Fatalf("cursor = (%d,%d,%v), want (2,3,false)", row, col, hidden)
	}
	d.HideCursor()
	if _, _, hidden := d.Cursor(); !hidden {
		t.Fatal("cursor should be hidden")
	}
	d.Beep()
	d.Beep()
	if d.Beeps() != 2 {
		t.Fatalf("Beeps() = %d, want 2", d.Beeps())
	}
}

func TestMemDisplayResize(t *testing.T) {
	d := NewMemDisplay(5, 10)
	d.Resize(10, 20)
	rows, cols := d.Size()
	if rows != 10 || cols != 20 {
		t.Fatalf("Size() = (%d,%d), want (10,20)", rows, cols)
	}
	select {
	case ev := <-d.PollResize():
		if ev.Rows != 10 || ev.Cols != 20 {
			t.Fatalf("resize event = %+v", ev)
		}
	default:
		t.Fatal("expected a queued resize event")
	}
}
