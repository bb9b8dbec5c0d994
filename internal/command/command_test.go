package command

import (
	"testing"

	"github.com/mxeditor/mx/internal/buffer"
	"github.com/mxeditor/mx/internal/datum"
	"github.com/mxeditor/mx/internal/layout"
)

func newTestTable(t *testing.T, text string) (*Table, *Context) {
	t.Helper()
	buf := buffer.New("test")
	buf.InsertNChars(buffer.Pos{Line: buf.FirstLine(), Off: 0}, []byte(text))
	scr := layout.NewScreen(1, 10, 40, buf)
	sess := buffer.NewSession()
	ctx := NewContext(scr, sess)
	return NewTable(ctx), ctx
}

func TestTableRegisterRejectsDuplicateName(t *testing.T) {
	tbl, _ := newTestTable(t, "")
	err := tbl.Register(&Command{Name: "forwChar", Fn: cmdForwChar})
	if err == nil {
		t.Fatal("expected error registering a name already in the builtin table")
	}
}

func TestTableCallValidatesArgCount(t *testing.T) {
	tbl, _ := newTestTable(t, "x")
	if _, err := tbl.Call("gotoLine", nil, false); err == nil {
		t.Fatal("expected an error calling gotoLine with too few arguments")
	}
	if _, err := tbl.Call("forwChar", []*datum.Datum{datum.NewInt(1)}, false); err == nil {
		t.Fatal("expected an error calling forwChar with too many arguments")
	}
}

func TestTableCallUnknownName(t *testing.T) {
	tbl, _ := newTestTable(t, "")
	if _, err := tbl.Call("noSuchCommand", nil, false); err == nil {
		t.Fatal("expected an error for an unregistered command name")
	}
}

func TestCmdForwCharAdvancesDot(t *testing.T) {
	tbl, ctx := newTestTable(t, "abc")
	if _, err := tbl.Call("forwChar", nil, false); err != nil {
		t.Fatalf("forwChar: %v", err)
	}
	if ctx.Win().Dot.Off != 1 {
		t.Fatalf("dot.Off = %d, want 1", ctx.Win().Dot.Off)
	}
}

func TestCmdForwCharHonorsCount(t *testing.T) {
	tbl, ctx := newTestTable(t, "abcdef")
	ctx.N, ctx.HasN = 3, true
	if _, err := tbl.Call("forwChar", nil, false); err != nil {
		t.Fatalf("forwChar: %v", err)
	}
	if ctx.Win().Dot.Off != 3 {
		t.Fatalf("dot.Off = %d, want 3", ctx.Win().Dot.Off)
	}
}

func TestCmdInsertAndGotoLine(t *testing.T) {
	tbl, ctx := newTestTable(t, "one\ntwo\nthree\n")
	if _, err := tbl.Call("gotoLine", []*datum.Datum{datum.NewInt(2)}, false); err != nil {
		t.Fatalf("gotoLine: %v", err)
	}
	if ctx.Win().Dot.Off != 0 {
		t.Fatalf("dot.Off = %d, want 0 at start of line 2", ctx.Win().Dot.Off)
	}
	if _, err := tbl.Call("insert", []*datum.Datum{datum.NewString([]byte("X"))}, false); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if got := ctx.Win().Dot.Line.Bytes(); string(got[:1]) != "X" {
		t.Fatalf("line 2 text = %q, want to start with X", got)
	}
}

// TestCmdCopyRegionPutsDotToMarkTextOnKillRing exercises spec.md §8 end-
// to-end scenario 1's setup: insert abc\ndef\nghi, set mark at the
// start of line 2, move to the end of line 2, and copy the region.
// copyRegion must resolve the region between point and the mark (not a
// byte count sized by the pending numeric argument), put exactly "def"
// on the kill ring, and leave both the buffer and point untouched.
func TestCmdCopyRegionPutsDotToMarkTextOnKillRing(t *testing.T) {
	tbl, ctx := newTestTable(t, "abc\ndef\nghi")
	buf := ctx.Buf()

	line2 := buf.FirstLine().Next() // "def"
	ctx.Win().Dot = buffer.Pos{Line: line2, Off: 0}
	if _, err := tbl.Call("setMark", nil, false); err != nil {
		t.Fatalf("setMark: %v", err)
	}
	dotAfterMark := buffer.Pos{Line: line2, Off: line2.Len()}
	ctx.Win().Dot = dotAfterMark
	if _, err := tbl.Call("copyRegion", nil, false); err != nil {
		t.Fatalf("copyRegion: %v", err)
	}

	if ctx.Win().Dot != dotAfterMark {
		t.Fatalf("dot after copyRegion = %+v, want unchanged %+v", ctx.Win().Dot, dotAfterMark)
	}
	if got := buf.ByteCount(); got != 11 { // "abc\ndef\nghi" untouched
		t.Fatalf("buffer byte count after copyRegion = %d, want 11", got)
	}
	text, ok := ctx.Kill.Yank(0)
	if !ok {
		t.Fatal("copyRegion left nothing on the kill ring")
	}
	if string(text) != "def" {
		t.Fatalf("kill ring contents after copyRegion = %q, want %q", text, "def")
	}
}

// TestCmdKillRegionDeletesBetweenDotAndMark ensures killRegion, unlike
// copyRegion, also removes the text and leaves dot at the region's
// earlier endpoint.
func TestCmdKillRegionDeletesBetweenDotAndMark(t *testing.T) {
	tbl, ctx := newTestTable(t, "abc\ndef\nghi")
	buf := ctx.Buf()

	line2 := buf.FirstLine().Next() // "def"
	ctx.Win().Dot = buffer.Pos{Line: line2, Off: 0}
	if _, err := tbl.Call("setMark", nil, false); err != nil {
		t.Fatalf("setMark: %v", err)
	}
	ctx.Win().Dot = buffer.Pos{Line: line2, Off: line2.Len()}
	if _, err := tbl.Call("killRegion", nil, false); err != nil {
		t.Fatalf("killRegion: %v", err)
	}

	var got []byte
	for l := buf.FirstLine(); l != nil; l = l.Next() {
		got = append(got, l.Bytes()...)
		if l.Next() != nil {
			got = append(got, '\n')
		}
	}
	if want := "abc\n\nghi"; string(got) != want {
		t.Fatalf("buffer after killRegion = %q, want %q", got, want)
	}
	if ctx.Win().Dot.Off != 0 || ctx.Win().Dot.Line != buf.FirstLine().Next() {
		t.Fatalf("dot after killRegion = %+v, want start of the now-empty line 2", ctx.Win().Dot)
	}
}

func TestContextCountDefaultsToOne(t *testing.T) {
	_, ctx := newTestTable(t, "")
	if ctx.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 with no pending argument", ctx.Count())
	}
	ctx.N, ctx.HasN = 5, true
	if ctx.Count() != 5 {
		t.Fatalf("Count() = %d, want 5", ctx.Count())
	}
	ctx.ClearArg()
	if ctx.HasN || ctx.Count() != 1 {
		t.Fatal("ClearArg did not reset the pending argument")
	}
}
