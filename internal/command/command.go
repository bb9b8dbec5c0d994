package command

import (
	"fmt"

	"github.com/mxeditor/mx/internal/datum"
)

// Func implements one builtin command body: given the session Context
// and its argument list, it performs the operation and returns the
// command's result value (often datum.True, datum.Nil, or an echoed
// argument).
type Func func(ctx *Context, args []*datum.Datum) (*datum.Datum, error)

// Command is one entry in the command table (ground:
// original_source/memacs-9.3.0/src/cmd.h's per-entry name/arg-count/
// function/description tuple, trimmed of the C table's flag bits that
// have no Go-side analog — CFFunc/CFEdit/CFNCount become ordinary Go
// booleans or plain argument handling inside Fn instead of a shared
// dispatch flag).
type Command struct {
	Name             string
	MinArgs, MaxArgs int // MaxArgs == -1 means unbounded
	Fn               Func
	Descr            string
}

// Table is the name->Command registry for one editing session. It
// implements exec.Caller so internal/lang/exec can dispatch script
// command calls into it without an import cycle (exec depends on
// command's interface, not its package).
type Table struct {
	ctx  *Context
	cmds map[string]*Command
}

// NewTable returns a Table preloaded with the editor's builtin commands
// over ctx.
func NewTable(ctx *Context) *Table {
	t := &Table{ctx: ctx, cmds: make(map[string]*Command)}
	t.registerBuiltins()
	return t
}

// Register adds c to the table. It is an error to register a name
// twice (mirrors exec.MacroDef registration's uniqueness rule).
func (t *Table) Register(c *Command) error {
	if _, ok := t.cmds[c.Name]; ok {
		return fmt.Errorf("command %q already registered", c.Name)
	}
	t.cmds[c.Name] = c
	return nil
}

// Lookup returns the named command, or (nil, false).
func (t *Table) Lookup(name string) (*Command, bool) {
	c, ok := t.cmds[name]
	return c, ok
}

// Names returns every registered command name, unordered.
func (t *Table) Names() []string {
	out := make([]string, 0, len(t.cmds))
	for n := range t.cmds {
		out = append(out, n)
	}
	return out
}

// IsCommand implements exec.Caller.
func (t *Table) IsCommand(name string) bool {
	_, ok := t.cmds[name]
	return ok
}

// Call implements exec.Caller: looks up name, validates the argument
// count, and invokes it. parenless is accepted to satisfy the
// interface but commands do not currently distinguish call styles.
func (t *Table) Call(name string, args []*datum.Datum, parenless bool) (*datum.Datum, error) {
	c, ok := t.cmds[name]
	if !ok {
		return nil, fmt.Errorf("no such command %q", name)
	}
	if len(args) < c.MinArgs || (c.MaxArgs >= 0 && len(args) > c.MaxArgs) {
		return nil, fmt.Errorf("command %q takes %d to %s argument(s), got %d", name, c.MinArgs, maxArgsStr(c.MaxArgs), len(args))
	}
	return c.Fn(t.ctx, args)
}

func maxArgsStr(n int) string {
	if n < 0 {
		return "inf"
	}
	return fmt.Sprint(n)
}
