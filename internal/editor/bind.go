package editor

import "github.com/mxeditor/mx/internal/input"

// DefaultBindings installs the editor's out-of-the-box key bindings
// over t's core self-insert/newline/backspace set (ground:
// original_source/memacs-9.3.0/src/bind.c's compiled-in default key
// map, narrowed to the commands this build actually implements).
func DefaultBindings(t *input.Table) {
	t.Bind(input.Ctrl|input.ExtKey('F'), "forwChar")
	t.Bind(input.Ctrl|input.ExtKey('B'), "backChar")
	t.Bind(input.Ctrl|input.ExtKey('N'), "forwLine")
	t.Bind(input.Ctrl|input.ExtKey('P'), "backLine")
	t.Bind(input.Ctrl|input.ExtKey('D'), "deleteForwChar")
	t.Bind(input.Ctrl|input.ExtKey('K'), "killLine")
	t.Bind(input.Ctrl|input.ExtKey('Y'), "yank")
	t.Bind(input.Meta|input.ExtKey('y'), "yankPop")
	t.Bind(input.Ctrl|input.ExtKey(' '), "setMark")
	t.Bind(input.Ctrl|input.ExtKey('W'), "killRegion")
	t.Bind(input.Meta|input.ExtKey('w'), "copyRegion")
	t.Bind(input.Ctrl|input.ExtKey('S'), "searchForward")
	t.Bind(input.Ctrl|input.ExtKey('R'), "searchBackward")
	t.Bind(input.Ctrl|input.ExtKey('T'), "twiddle")
	t.Bind(input.Meta|input.ExtKey('u'), "upperCaseWord")
	t.Bind(input.Meta|input.ExtKey('l'), "lowerCaseWord")
	t.Bind(input.Meta|input.ExtKey('%'), "queryReplace")

	t.Bind(input.FnUp|input.Func, "backLine")
	t.Bind(input.FnDown|input.Func, "forwLine")
	t.Bind(input.FnLeft|input.Func, "backChar")
	t.Bind(input.FnRight|input.Func, "forwChar")
	t.Bind(input.FnDelete|input.Func, "deleteForwChar")
	t.Bind(input.FnHome|input.Func, "gotoLine")

	// C-x is the sole default prefix pseudo-command; prefix2/prefix3
	// are left unbound for a user or site startup script to assign
	// (ground: bind.c only wires ^X out of the box too).
	t.Bind(input.Ctrl|input.ExtKey('X'), "prefix1")
	t.Bind(input.Pref1|input.Ctrl|input.ExtKey('F'), "findFile")
	t.Bind(input.Pref1|input.Ctrl|input.ExtKey('S'), "saveBuffer")
	t.Bind(input.Pref1|input.ExtKey('b'), "switchBuffer")
	t.Bind(input.Pref1|input.ExtKey('2'), "splitWindow")
	t.Bind(input.Pref1|input.ExtKey('1'), "onlyWindow")
	t.Bind(input.Pref1|input.ExtKey('0'), "deleteWindow")
	t.Bind(input.Pref1|input.ExtKey('o'), "nextWindow")
	t.Bind(input.Pref1|input.ExtKey('('), "beginMacro")
	t.Bind(input.Pref1|input.ExtKey(')'), "endMacro")
	t.Bind(input.Pref1|input.ExtKey('e'), "executeMacro")

	// Core-key cache for the numeric-argument prefix keys (spec.md §4.3:
	// "a core-key cache ... for internal commands (abort,
	// universal-argument, negative-argument, quote)"). These names are
	// never dispatched through command.Table — the command loop
	// intercepts them directly (see readArgPrefix).
	t.BindCore(input.Ctrl|input.ExtKey('U'), universalArgName)
	t.BindCore(input.Meta|input.ExtKey('-'), negativeArgName)
}
