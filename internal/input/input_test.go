package input

import (
	"testing"

	"github.com/mxeditor/mx/internal/term"
)

func TestExtKeyString(t *testing.T) {
	cases := []struct {
		k    ExtKey
		want string
	}{
		{ExtKey('a'), "a"},
		{Ctrl | ExtKey('a'), "C-a"},
		{Meta | Ctrl | ExtKey('a'), "M-C-a"},
		{FnUp | Func, "Up"},
	}
	for _, c := range cases {
		if got := c.k.String(); got != c.want {
			t.Errorf("String(%#x) = %q, want %q", uint16(c.k), got, c.want)
		}
	}
}

func TestFromTermKey(t *testing.T) {
	k := FromTermKey(term.Key{Rune: 'x', Mod: term.ModCtrl})
	if k != Ctrl|ExtKey('x') {
		t.Fatalf("FromTermKey = %#x, want Ctrl|x", uint16(k))
	}
	k = FromTermKey(term.Key{Name: "Up"})
	if k != FnUp|Func {
		t.Fatalf("FromTermKey(Up) = %#x", uint16(k))
	}
}

func TestBindTableCoreLookup(t *testing.T) {
	tbl := NewTable()
	tbl.DefaultCoreBindings()
	name, ok := tbl.Lookup(ExtKey('q'))
	if !ok || name != SelfInsertName {
		t.Fatalf("lookup 'q' = %q, %v", name, ok)
	}
	tbl.Bind(Ctrl|ExtKey('x'), "prefixCX")
	name, ok = tbl.Lookup(Ctrl | ExtKey('x'))
	if !ok || name != "prefixCX" {
		t.Fatalf("lookup C-x = %q, %v", name, ok)
	}
}

func TestParseKeySpec(t *testing.T) {
	keys, err := Parse("C-x C-f")
	if err != nil {
		t.Fatal(err)
	}
	want := []ExtKey{Ctrl | ExtKey('x'), Ctrl | ExtKey('f')}
	if len(keys) != 2 || keys[0] != want[0] || keys[1] != want[1] {
		t.Fatalf("Parse = %v, want %v", keys, want)
	}

	if _, err := Parse("Up"); err != nil {
		t.Fatal(err)
	}
}

func TestKeyboardMacroRecordAndPlay(t *testing.T) {
	var m KeyboardMacro
	if err := m.StartRecording(); err != nil {
		t.Fatal(err)
	}
	m.Record(ExtKey('a'))
	m.Record(ExtKey('b'))
	m.StopRecording()

	if err := m.Play(2); err != nil {
		t.Fatal(err)
	}
	var played []ExtKey
	for {
		k, ok := m.Next()
		if !ok {
			break
		}
		played = append(played, k)
	}
	want := []ExtKey{'a', 'b', 'a', 'b'}
	if len(played) != len(want) {
		t.Fatalf("played %v, want %v", played, want)
	}
	for i := range want {
		if played[i] != want[i] {
			t.Fatalf("played[%d] = %v, want %v", i, played[i], want[i])
		}
	}
	if m.Playing() {
		t.Fatal("macro should have stopped after exhausting repeats")
	}
}

func TestKeyboardMacroPlayWithoutRecordingFails(t *testing.T) {
	var m KeyboardMacro
	if err := m.Play(1); err == nil {
		t.Fatal("expected error playing an empty macro")
	}
}
