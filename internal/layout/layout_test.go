package layout

import (
	"testing"

	"github.com/mxeditor/mx/internal/buffer"
)

func assertRowInvariant(t *testing.T, s *Screen) {
	t.Helper()
	sum := 0
	wins := s.Windows()
	for i, w := range wins {
		if i > 0 {
			prev := wins[i-1]
			if prev.TopRow+prev.NRows+1 != w.TopRow {
				t.Fatalf("window %d top row %d, want %d", w.ID, w.TopRow, prev.TopRow+prev.NRows+1)
			}
		}
		sum += w.NRows + 1
	}
	if sum != s.Rows {
		t.Fatalf("row sum = %d, want screen rows %d", sum, s.Rows)
	}
}

func TestSplitInvariant(t *testing.T) {
	buf := buffer.New("test")
	s := NewScreen(1, 24, 80, buf)
	assertRowInvariant(t, s)

	nw, err := s.Split(s.First)
	if err != nil {
		t.Fatal(err)
	}
	if nw.Buf != buf {
		t.Fatal("split window should share the buffer")
	}
	assertRowInvariant(t, s)
	if len(s.Windows()) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(s.Windows()))
	}
}

func TestSplitTooSmall(t *testing.T) {
	buf := buffer.New("test")
	s := NewScreen(1, 2, 80, buf) // 1 text row total, can't split
	if _, err := s.Split(s.First); err == nil {
		t.Fatal("expected split to fail on a too-small window")
	}
}

func TestJoinRestoresSingleWindow(t *testing.T) {
	buf := buffer.New("test")
	s := NewScreen(1, 24, 80, buf)
	orig := s.First.NRows
	nw, err := s.Split(s.First)
	if err != nil {
		t.Fatal(err)
	}
	s.Cur = nw
	if err := s.Join(s.First); err != nil {
		t.Fatal(err)
	}
	if len(s.Windows()) != 1 {
		t.Fatalf("expected 1 window after join, got %d", len(s.Windows()))
	}
	if s.First.NRows != orig {
		t.Fatalf("NRows after join = %d, want %d", s.First.NRows, orig)
	}
	if s.Cur != s.First {
		t.Fatal("Cur should have been reassigned off the absorbed window")
	}
	assertRowInvariant(t, s)
}

func TestEqualizeThreeWindows(t *testing.T) {
	buf := buffer.New("test")
	s := NewScreen(1, 25, 80, buf)
	w2, _ := s.Split(s.First)
	s.Split(w2)
	s.Equalize()
	assertRowInvariant(t, s)
	wins := s.Windows()
	max, min := wins[0].NRows, wins[0].NRows
	for _, w := range wins {
		if w.NRows > max {
			max = w.NRows
		}
		if w.NRows < min {
			min = w.NRows
		}
	}
	if max-min > 1 {
		t.Fatalf("equalize should keep window sizes within 1 row of each other, got max=%d min=%d", max, min)
	}
}

func TestResizeScalesWindows(t *testing.T) {
	buf := buffer.New("test")
	s := NewScreen(1, 24, 80, buf)
	s.Split(s.First)
	s.Resize(48, 80)
	assertRowInvariant(t, s)
}

func TestDeleteOnlyWindowFails(t *testing.T) {
	buf := buffer.New("test")
	s := NewScreen(1, 24, 80, buf)
	if err := s.Delete(s.First); err == nil {
		t.Fatal("expected error deleting the only window")
	}
}

func TestWindowDirtyFromBufferEdit(t *testing.T) {
	buf := buffer.New("test")
	s := NewScreen(1, 24, 80, buf)
	s.First.ClearDirty()
	buf.AppendStringAsLine("hello")
	if s.First.Dirty()&buffer.WFHard == 0 {
		t.Fatal("appending a line should mark the window WFHard")
	}
}

func TestSwitchBufferSavesFace(t *testing.T) {
	bufA := buffer.New("a")
	bufB := buffer.New("b")
	s := NewScreen(1, 24, 80, bufA)
	w := s.First
	w.Dot = buffer.Pos{Line: bufA.FirstLine(), Off: 0}
	w.SwitchBuffer(bufB)
	if w.Buf != bufB {
		t.Fatal("window should now show bufB")
	}
	w.SwitchBuffer(bufA)
	if bufB.SavedFace.DotLine == nil {
		t.Fatal("switching away from bufB should have saved its face")
	}
}
