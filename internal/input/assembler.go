package input

import "github.com/mxeditor/mx/internal/term"

// Assembler turns raw terminal key events into fully composed
// ExtKeys: it normalizes what term.Display reports, applies the
// one-deep unget buffer (spec.md §4.3: "supports tungetc for
// rescans"), and resolves the three user prefix keys (^X/^C/^H) by
// fetching one more key and OR-ing in the prefix's flag, the way
// bind.c's getkey/getkseq does before the main loop ever sees a
// composed key.
type Assembler struct {
	disp term.Display
	tbl  *Table

	ungot  ExtKey
	hasUng bool

	macro *KeyboardMacro
}

// NewAssembler creates an Assembler reading raw keys from disp,
// resolving prefix pseudo-commands against tbl, and recording/replaying
// through macro (nil disables keyboard-macro interplay; callers should
// always pass one since the editor needs it for spec.md §4.4).
func NewAssembler(disp term.Display, tbl *Table, macro *KeyboardMacro) *Assembler {
	return &Assembler{disp: disp, tbl: tbl, macro: macro}
}

// Unget pushes key back so the next Next call returns it again (ground:
// bind.c's tungetc, used to rescan a key that turned out not to start
// the prefix sequence it was tentatively read for).
func (a *Assembler) Unget(key ExtKey) {
	a.ungot = key
	a.hasUng = true
}

// rawKey returns the next single key, preferring the unget slot, then
// keyboard-macro playback, then the terminal itself. ok is false only
// when the terminal display has been closed.
func (a *Assembler) rawKey() (ExtKey, bool) {
	if a.hasUng {
		a.hasUng = false
		return a.ungot, true
	}
	if a.macro != nil && a.macro.Playing() {
		if k, ok := a.macro.Next(); ok {
			return k, true
		}
	}
	tk, ok := a.disp.PollKey()
	if !ok {
		return 0, false
	}
	return FromTermKey(tk), true
}

// prefixFlags maps the three user-assignable prefix pseudo-commands
// (bound via tbl.Bind, e.g. to C-x/C-c/C-h) to the ExtKey flag a
// following key is OR'ed with (ground: bind.c's metac/prefix1/prefix2/
// prefix3 key handling, generalized past the hardcoded ^X/^C/^H
// assumption into whatever the binding table currently maps those
// pseudo-commands to).
var prefixFlags = map[string]ExtKey{
	"prefix1": Pref1,
	"prefix2": Pref2,
	"prefix3": Pref3,
}

// Next assembles one fully composed key: a plain key, or a prefix
// pseudo-command's key OR'ed with the next key's base (spec.md §4.3:
// "if the result is bound to a prefix pseudo-command, fetch one more
// key and OR-in its prefix flag"). If the key that follows a prefix is
// itself a function/escape key with no printable base, the prefix flag
// still ORs onto it directly.
func (a *Assembler) Next() (ExtKey, bool) {
	k, ok := a.rawKey()
	if !ok {
		return 0, false
	}
	if name, bound := a.tbl.Lookup(k); bound {
		if flag, isPrefix := prefixFlags[name]; isPrefix {
			next, ok := a.rawKey()
			if !ok {
				return 0, false
			}
			k = next | flag
		}
	}
	if a.macro != nil {
		a.macro.Record(k)
	}
	return k, true
}
