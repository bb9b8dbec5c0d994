// Package input implements the extended-key encoding, command binding
// table, and keyboard macro recorder (spec.md §4.3, §4.6). An extended
// key packs modifier prefixes into the high bits of a 16-bit value so
// the binding table can be a flat map keyed on one integer instead of
// a (rune, modifier-set) pair.
package input

import "github.com/mxeditor/mx/internal/term"

// ExtKey is a 16-bit encoded keystroke: the low byte holds an ASCII
// code or one of the function-key codes above 0x7f, and the high byte
// holds prefix bits (ground: original_source/memacs-9.3.0/src/bind.c's
// key-encoding scheme, renamed to Go constants).
type ExtKey uint16

const (
	// Ctrl, Meta, and three user-assignable prefixes combine with a
	// base key; Shift and Func mark the base key's own nature.
	Ctrl  ExtKey = 0x0100
	Meta  ExtKey = 0x0200
	Pref1 ExtKey = 0x0400
	Pref2 ExtKey = 0x0800
	Pref3 ExtKey = 0x1000
	Shift ExtKey = 0x2000
	Func  ExtKey = 0x4000

	prefixMask = Ctrl | Meta | Pref1 | Pref2 | Pref3 | Shift | Func
	baseMask   = 0x00ff
)

// Base returns k's unprefixed low byte.
func (k ExtKey) Base() ExtKey { return k & baseMask }

// Prefixes returns k's modifier-prefix bits.
func (k ExtKey) Prefixes() ExtKey { return k & prefixMask }

// Named function-key base codes, placed above the ASCII range so they
// never collide with a literal character (ground: bind.c's function
// key table).
const (
	FnUp ExtKey = 0x80 + iota
	FnDown
	FnLeft
	FnRight
	FnHome
	FnEnd
	FnPageUp
	FnPageDown
	FnDelete
	FnInsert
	FnF1
	FnF2
	FnF3
	FnF4
	FnF5
	FnF6
	FnF7
	FnF8
	FnF9
	FnF10
	FnF11
	FnF12
	FnEnter
	FnTab
	FnBackspace
	FnEscape
)

var fnNames = map[ExtKey]string{
	FnUp: "Up", FnDown: "Down", FnLeft: "Left", FnRight: "Right",
	FnHome: "Home", FnEnd: "End", FnPageUp: "PgUp", FnPageDown: "PgDn",
	FnDelete: "Del", FnInsert: "Ins",
	FnF1: "F1", FnF2: "F2", FnF3: "F3", FnF4: "F4", FnF5: "F5", FnF6: "F6",
	FnF7: "F7", FnF8: "F8", FnF9: "F9", FnF10: "F10", FnF11: "F11", FnF12: "F12",
	FnEnter: "Enter", FnTab: "Tab", FnBackspace: "Backspace", FnEscape: "Escape",
}

var namesToFn = func() map[string]ExtKey {
	m := make(map[string]ExtKey, len(fnNames))
	for k, v := range fnNames {
		m[v] = k
	}
	return m
}()

// FromTermKey translates a term.Key (as read off a Display) into an
// ExtKey.
func FromTermKey(k term.Key) ExtKey {
	var base ExtKey
	if k.Name != "" {
		if fn, ok := namesToFn[k.Name]; ok {
			base = fn | Func
		} else {
			// unknown named key: fall through with no base, caller
			// should ignore; this keeps unmapped tcell keys from
			// silently aliasing onto a real binding.
			return 0
		}
	} else {
		base = ExtKey(k.Rune)
	}
	if k.Mod&term.ModCtrl != 0 {
		base |= Ctrl
	}
	if k.Mod&term.ModAlt != 0 || k.Mod&term.ModMeta != 0 {
		base |= Meta
	}
	if k.Mod&term.ModShift != 0 {
		base |= Shift
	}
	return base
}

// String renders k in the editor's textual key-name grammar, e.g.
// "C-x", "M-C-a", "Up", "C-Up" (ground: bind.c's key-name formatter).
func (k ExtKey) String() string {
	s := ""
	if k&Meta != 0 {
		s += "M-"
	}
	if k&Ctrl != 0 {
		s += "C-"
	}
	base := k.Base()
	if k&Func != 0 {
		if name, ok := fnNames[base]; ok {
			return s + name
		}
		return s + "?"
	}
	if base < 0x20 {
		return s + string(rune('@'+base))
	}
	return s + string(rune(base))
}
