package buffer

import (
	"os"
	"testing"
)

func TestAppendAndCount(t *testing.T) {
	b := New("test")
	b.AppendStringAsLine("hello")
	b.AppendStringAsLine("world")
	if b.LineCount() != 2 {
		t.Fatalf("LineCount() = %d, want 2", b.LineCount())
	}
	if b.ByteCount() != 10 {
		t.Fatalf("ByteCount() = %d, want 10", b.ByteCount())
	}
}

func TestInsertNCharsSplitsLine(t *testing.T) {
	b := New("test")
	b.AppendStringAsLine("helloworld") // replaces the initial empty line
	first := b.FirstLine()
	pos := Pos{Line: first, Off: 5}
	end := b.InsertNChars(pos, []byte("\n"))
	if b.LineCount() != 2 {
		t.Fatalf("LineCount() after split = %d, want 2", b.LineCount())
	}
	if got := b.FirstLine().Bytes(); string(got) != "hello" {
		t.Fatalf("first line = %q, want %q", got, "hello")
	}
	if got := b.FirstLine().Next().Bytes(); string(got) != "world" {
		t.Fatalf("second line = %q, want %q", got, "world")
	}
	if end.Off != 0 || end.Line != b.FirstLine().Next() {
		t.Fatalf("end position wrong after split")
	}
}

func TestDeleteSpanMergesLines(t *testing.T) {
	b := New("test")
	b.AppendStringAsLine("foo")
	b.AppendStringAsLine("bar")
	pos := Pos{Line: b.FirstLine(), Off: 3} // at the newline between "foo" and "bar"
	out, end := b.DeleteSpan(pos, 1)
	if string(out) != "\n" {
		t.Fatalf("deleted bytes = %q, want newline", out)
	}
	if b.LineCount() != 1 {
		t.Fatalf("LineCount() after merge = %d, want 1", b.LineCount())
	}
	if got := b.FirstLine().Bytes(); string(got) != "foobar" {
		t.Fatalf("merged line = %q, want %q", got, "foobar")
	}
	if end.Off != 3 {
		t.Fatalf("end offset = %d, want 3", end.Off)
	}
}

func TestDeleteSpanBackward(t *testing.T) {
	b := New("test")
	b.AppendStringAsLine("hello")
	pos := Pos{Line: b.FirstLine(), Off: 5}
	out, end := b.DeleteSpan(pos, -3)
	if string(out) != "llo" {
		t.Fatalf("deleted bytes = %q, want %q", out, "llo")
	}
	if end.Off != 2 {
		t.Fatalf("end offset = %d, want 2", end.Off)
	}
	if got := b.FirstLine().Bytes(); string(got) != "he" {
		t.Fatalf("remaining = %q, want %q", got, "he")
	}
}

func TestMarkFollowsInsertAndDelete(t *testing.T) {
	b := New("test")
	b.AppendStringAsLine("helloworld")
	line := b.FirstLine()
	m := b.NewMark('a', Pos{Line: line, Off: 8})
	b.InsertNChars(Pos{Line: line, Off: 2}, []byte("XX"))
	if m.Pos().Off != 10 {
		t.Fatalf("mark after insert before it = %d, want 10", m.Pos().Off)
	}
	b.DeleteSpan(Pos{Line: line, Off: 0}, 4)
	if m.Pos().Off != 6 {
		t.Fatalf("mark after delete before it = %d, want 6", m.Pos().Off)
	}
}

type fakeWatcher struct{ last DirtyFlag }

func (w *fakeWatcher) MarkDirty(f DirtyFlag) { w.last = f }

func TestWatcherNotified(t *testing.T) {
	b := New("test")
	w := &fakeWatcher{}
	b.AddWatcher(w)
	b.AppendStringAsLine("x")
	if w.last != WFHard {
		t.Fatalf("watcher flag = %v, want WFHard", w.last)
	}
}

func TestGetTextRegionLineBlockSelector(t *testing.T) {
	b := New("test")
	for _, s := range []string{"abc", "def", "ghi"} {
		b.AppendStringAsLine(s)
	}
	mid := b.FirstLine().Next() // "def"

	// n==1 (default): dot to end of current line.
	r := b.GetTextRegion(Pos{Line: mid, Off: 1}, 1, 0)
	if r.Size != 2 {
		t.Fatalf("n=1 Size = %d, want 2", r.Size)
	}
	// n==1 at end of line with IncludeDelim: select the delimiter.
	r = b.GetTextRegion(Pos{Line: mid, Off: 3}, 1, IncludeDelim)
	if r.Size != 1 {
		t.Fatalf("n=1 at EOL Size = %d, want 1", r.Size)
	}
	// n==1 at end of last line: nothing left to select.
	last := b.LastLine()
	r = b.GetTextRegion(Pos{Line: last, Off: last.Len()}, 1, IncludeDelim)
	if r.Size != 0 {
		t.Fatalf("n=1 at EOB Size = %d, want 0", r.Size)
	}

	// n==0: dot to beginning of line.
	r = b.GetTextRegion(Pos{Line: mid, Off: 2}, 0, 0)
	if r.Size != -2 {
		t.Fatalf("n=0 Size = %d, want -2", r.Size)
	}

	// n>1: dot forward across n-1 line breaks to the end of the last line.
	r = b.GetTextRegion(Pos{Line: b.FirstLine(), Off: 1}, 2, 0)
	if r.Size != 6 || r.LineCount != 2 { // "bc" + "\n" + "def" (no trailing delim)
		t.Fatalf("n=2 Size/LineCount = %d/%d, want 6/2", r.Size, r.LineCount)
	}

	// n<0: dot backward across |n| line breaks to the beginning of the
	// first line, ForceBegin ordering the result's Dot at the start.
	r = b.GetTextRegion(Pos{Line: b.LastLine(), Off: 1}, -2, ForceBegin)
	if r.Size != 9 { // "abc" + "\n" + "def" + "\n" + "g"
		t.Fatalf("n=-2 Size = %d, want 9", r.Size)
	}
	if r.Dot.Line != b.FirstLine() || r.Dot.Off != 0 {
		t.Fatalf("n=-2 Dot = %+v, want start of buffer", r.Dot)
	}
}

func TestNarrowWiden(t *testing.T) {
	b := New("test")
	for _, s := range []string{"one", "two", "three", "four"} {
		b.AppendStringAsLine(s)
	}
	mid := b.FirstLine().Next() // "two"
	r := b.GetLineRegion(Pos{Line: mid, Off: 0}, 2, 0)
	b.Narrow(r)
	if b.LineCount() != 2 {
		t.Fatalf("narrowed LineCount() = %d, want 2", b.LineCount())
	}
	if !b.Narrowed() {
		t.Fatal("Narrowed() should be true")
	}
	b.Widen()
	if b.Narrowed() {
		t.Fatal("Narrowed() should be false after Widen")
	}
	if b.LineCount() != 4 {
		t.Fatalf("widened LineCount() = %d, want 4", b.LineCount())
	}
	var names []string
	for l := b.FirstLine(); l != nil; l = l.Next() {
		names = append(names, string(l.Bytes()))
	}
	want := []string{"one", "two", "three", "four"}
	for i, s := range want {
		if names[i] != s {
			t.Fatalf("line %d = %q, want %q", i, names[i], s)
		}
	}
}

func TestSessionRegistry(t *testing.T) {
	s := NewSession()
	b1, err := s.Create("scratch")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Create("scratch"); err == nil {
		t.Fatal("expected duplicate name error")
	}
	b2, _ := s.Create("&startup")
	if b2.Flags&FlMacro == 0 {
		t.Fatal("buffer with reserved prefix should be flagged macro")
	}
	if s.Lookup("scratch") != b1 {
		t.Fatal("Lookup should find b1")
	}
	if got := s.Visible(); len(got) != 1 || got[0] != b1 {
		t.Fatalf("Visible() should exclude macro buffers, got %v", got)
	}
}

func TestWriteSafeAndBackup(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/out.txt"
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	b := New("test")
	b.AppendStringAsLine("new content")
	if err := b.Write(DefaultWriter, path, SaveBackup); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new content" {
		t.Fatalf("file content = %q, want %q", got, "new content")
	}
	bak, err := os.ReadFile(path + BackupExt)
	if err != nil {
		t.Fatal(err)
	}
	if string(bak) != "old" {
		t.Fatalf("backup content = %q, want %q", bak, "old")
	}
	if b.Changed() {
		t.Fatal("Changed() should be false after a successful write")
	}
}
