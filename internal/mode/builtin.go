package mode

// Built-in mode names (ground: original_source/memacs-9.3.0/src/std.h
// mode table and spec.md's references to safe-save, backup, regexp,
// read-only, horizontal-scroll, and message-display behavior). These
// are the modes the editor defines for itself at startup; scripts may
// define further user modes with Table.Define.
const (
	Overwrite = "overwrite"  // buffer: typed characters replace rather than insert
	ReadOnly  = "readOnly"   // buffer: text-mutating commands are refused
	Regexp    = "regexp"     // global: search/replace patterns are regular expressions
	Safe      = "safe"       // global: writes go through the safe-save temp-file-then-rename path
	Backup    = "bak"        // global: safe-save additionally preserves a .bak copy
	Message   = "msgDisplay" // global: result messages are painted on the message line
	Wrap      = "wrap"       // global: wrap a painted message in "[ ]"
)

// Horizontal-scroll group members (spec.md §4.4: "Horizontal scrolling
// has two modes selected by a global mode").
const (
	HScrollPerWindow  = "hScrollPerWindow"
	HScrollScreenWide = "hScrollScreenWide"
)

// NewBuiltinTable returns a Table preloaded with the editor's built-in
// modes and groups, all flagged Locked (scope fixed) and none carrying
// User (so Delete refuses them).
func NewBuiltinTable() *Table {
	t := NewTable()

	hscroll := NewGroup("hScroll", "horizontal scroll policy", false)
	_ = t.DefineGroup(hscroll)

	must := func(s Spec) {
		if _, err := t.Define(s); err != nil {
			panic(err) // built-in table construction; a duplicate here is a programmer error
		}
	}

	must(Spec{Name: Overwrite, Descr: "overwrite characters instead of inserting", Scope: ScopeBuffer, Flags: Locked})
	must(Spec{Name: ReadOnly, Descr: "buffer cannot be modified", Scope: ScopeBuffer, Flags: Locked})
	must(Spec{Name: Regexp, Descr: "search and replace patterns are regular expressions", Scope: ScopeGlobal, Flags: Locked})
	must(Spec{Name: Safe, Descr: "save files via a temporary file and rename", Scope: ScopeGlobal, Flags: Locked})
	must(Spec{Name: Backup, Descr: "keep a .bak copy of the previous file contents on save", Scope: ScopeGlobal, Flags: Locked})
	must(Spec{Name: Message, Descr: "display result messages on the message line", Scope: ScopeGlobal, Flags: Locked})
	must(Spec{Name: Wrap, Descr: "wrap displayed messages in [ ]", Scope: ScopeGlobal, Flags: Locked | Hidden})
	must(Spec{Name: HScrollPerWindow, Descr: "each window scrolls horizontally on its own", Scope: ScopeGlobal, Flags: Locked | InLine, Group: hscroll})
	must(Spec{Name: HScrollScreenWide, Descr: "all windows share one horizontal scroll position", Scope: ScopeGlobal, Flags: Locked | InLine, Group: hscroll})

	// Message display and per-window horizontal scroll are on by
	// default, matching the original's out-of-the-box behavior.
	_ = t.SetGlobal(Message, true)
	_ = t.SetGlobal(HScrollPerWindow, true)

	return t
}
