package command

// registerBuiltins installs every command this package defines into
// t. Split by concern across edit.go/search.go/window.go/macro.go/
// file.go/modecmds.go/misc.go rather than one flat list, the same
// per-file grouping ui/view.Builtin's table uses (movement, selection,
// I/O as separate registration passes feeding one table).
func (t *Table) registerBuiltins() {
	for _, c := range editCommands {
		t.mustRegister(c)
	}
	for _, c := range searchCommands {
		t.mustRegister(c)
	}
	for _, c := range windowCommands {
		t.mustRegister(c)
	}
	for _, c := range macroCommands {
		t.mustRegister(c)
	}
	for _, c := range fileCommands {
		t.mustRegister(c)
	}
	for _, c := range modeCommands {
		t.mustRegister(c)
	}
	for _, c := range miscCommands {
		t.mustRegister(c)
	}
}

// mustRegister registers c, panicking on a duplicate name — a
// collision here is a programmer error in the builtin table, not a
// runtime condition (ground: mode.NewBuiltinTable's identical "must"
// helper for its own fixed table).
func (t *Table) mustRegister(c *Command) {
	if err := t.Register(c); err != nil {
		panic(err)
	}
}

var editCommands = []*Command{
	{Name: "forwChar", MinArgs: 0, MaxArgs: 0, Fn: cmdForwChar, Descr: "move point forward one character"},
	{Name: "backChar", MinArgs: 0, MaxArgs: 0, Fn: cmdBackChar, Descr: "move point backward one character"},
	{Name: "forwLine", MinArgs: 0, MaxArgs: 0, Fn: cmdForwLine, Descr: "move point forward one line"},
	{Name: "backLine", MinArgs: 0, MaxArgs: 0, Fn: cmdBackLine, Descr: "move point backward one line"},
	{Name: "selfInsert", MinArgs: 1, MaxArgs: 1, Fn: cmdInsert, Descr: "insert the typed character at point"},
	{Name: "insert", MinArgs: 1, MaxArgs: -1, Fn: cmdInsert, Descr: "insert text at point"},
	{Name: "newline", MinArgs: 0, MaxArgs: 0, Fn: cmdNewline, Descr: "insert a newline at point"},
	{Name: "openLine", MinArgs: 0, MaxArgs: 0, Fn: cmdOpenLine, Descr: "insert a newline without moving point past it"},
	{Name: "deleteForwChar", MinArgs: 0, MaxArgs: 0, Fn: cmdDeleteForwChar, Descr: "delete the character after point"},
	{Name: "deleteBackChar", MinArgs: 0, MaxArgs: 0, Fn: cmdDeleteBackChar, Descr: "delete the character before point"},
	{Name: "backspaceChar", MinArgs: 0, MaxArgs: 0, Fn: cmdDeleteBackChar, Descr: "delete the character before point"},
	{Name: "killRegion", MinArgs: 0, MaxArgs: 0, Fn: cmdKillRegion, Descr: "kill the region between point and the mark"},
	{Name: "killLine", MinArgs: 0, MaxArgs: 0, Fn: cmdKillLine, Descr: "kill to the end of the current line"},
	{Name: "copyRegion", MinArgs: 0, MaxArgs: 0, Fn: cmdCopyRegion, Descr: "copy the region to the kill ring without deleting it"},
	{Name: "yank", MinArgs: 0, MaxArgs: 0, Fn: cmdYank, Descr: "insert the most recent kill at point"},
	{Name: "yankPop", MinArgs: 0, MaxArgs: 0, Fn: cmdYankPop, Descr: "replace the just-yanked text with an earlier kill"},
	{Name: "undelete", MinArgs: 0, MaxArgs: 0, Fn: cmdUndelete, Descr: "reinsert the most recently deleted (non-kill) text"},
	{Name: "setMark", MinArgs: 0, MaxArgs: 1, Fn: cmdSetMark, Descr: "set a mark at point"},
	{Name: "swapMark", MinArgs: 0, MaxArgs: 1, Fn: cmdSwapMark, Descr: "exchange point and a mark"},
	{Name: "gotoMark", MinArgs: 0, MaxArgs: 1, Fn: cmdGotoMark, Descr: "move point to a mark"},
	{Name: "gotoLine", MinArgs: 1, MaxArgs: 1, Fn: cmdGotoLine, Descr: "move point to the start of the given line"},
}
