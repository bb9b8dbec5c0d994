// Package mode implements the editor's named on/off settings: global
// modes (apply to the whole session) and buffer modes (apply to one
// buffer), organized into mutual-exclusion groups (spec.md §4.3).
package mode

import "fmt"

// Scope says whether a mode applies to the whole session or to one
// buffer (ground: std.h's MdGlobal bit — "Global mode if set;
// otherwise, buffer mode").
type Scope uint8

const (
	ScopeBuffer Scope = iota
	ScopeGlobal
)

// Flag mirrors std.h's ModeSpec flag bits (MdUser/MdLocked/MdHidden),
// renamed to Go naming.
type Flag uint16

const (
	// User marks a mode as user-defined: it may be deleted. Built-in
	// modes never carry this flag.
	User Flag = 1 << iota
	// Locked prevents a mode's Scope from being changed after creation
	// (std.h: "Scope cannot be changed if set (certain built-in
	// modes)").
	Locked
	// Hidden keeps a mode out of the mode-line summary even when
	// enabled.
	Hidden
	// InLine marks a mode whose name contributes custom text to the
	// mode line (so redisplay must recheck the mode line whenever this
	// mode's state changes), ground: std.h's MdInLine.
	InLine
)

// Spec describes one mode (ground: std.h's ModeSpec).
type Spec struct {
	Name  string
	Descr string
	Scope Scope
	Flags Flag
	Group *Group
}

// Group is a set of mutually exclusive modes: enabling one member
// disables every other member in the same group (ground: std.h's
// ModeGrp / "Members of a group are mutually exclusive").
type Group struct {
	Name    string
	Descr   string
	User    bool
	members []*Spec
}

// NewGroup creates an empty mode group.
func NewGroup(name, descr string, user bool) *Group {
	return &Group{Name: name, Descr: descr, User: user}
}

// Members returns the group's modes.
func (g *Group) Members() []*Spec {
	out := make([]*Spec, len(g.members))
	copy(out, g.members)
	return out
}

// Table owns every known mode and group, plus the enabled set for
// global modes. Buffer-scoped enablement lives on the buffer itself
// (internal/buffer.Buffer.Modes) to avoid a layout/buffer/mode import
// triangle; Table only tracks which modes exist and their grouping.
type Table struct {
	specs    map[string]*Spec
	groups   map[string]*Group
	globalOn map[string]bool
}

// NewTable creates an empty mode table.
func NewTable() *Table {
	return &Table{
		specs:    make(map[string]*Spec),
		groups:   make(map[string]*Group),
		globalOn: make(map[string]bool),
	}
}

// Define registers a new mode. It is an error to redefine an existing
// name.
func (t *Table) Define(s Spec) (*Spec, error) {
	if _, ok := t.specs[s.Name]; ok {
		return nil, fmt.Errorf("mode %q already defined", s.Name)
	}
	sp := &Spec{Name: s.Name, Descr: s.Descr, Scope: s.Scope, Flags: s.Flags, Group: s.Group}
	t.specs[s.Name] = sp
	if sp.Group != nil {
		sp.Group.members = append(sp.Group.members, sp)
	}
	return sp, nil
}

// DefineGroup registers a new mode group.
func (t *Table) DefineGroup(g *Group) error {
	if _, ok := t.groups[g.Name]; ok {
		return fmt.Errorf("mode group %q already defined", g.Name)
	}
	t.groups[g.Name] = g
	return nil
}

// Lookup returns the named mode's Spec, or nil.
func (t *Table) Lookup(name string) *Spec {
	return t.specs[name]
}

// Delete removes a user-defined mode. Built-in modes cannot be
// deleted.
func (t *Table) Delete(name string) error {
	sp, ok := t.specs[name]
	if !ok {
		return fmt.Errorf("no such mode %q", name)
	}
	if sp.Flags&User == 0 {
		return fmt.Errorf("mode %q is built-in and cannot be deleted", name)
	}
	delete(t.specs, name)
	delete(t.globalOn, name)
	if sp.Group != nil {
		for i, m := range sp.Group.members {
			if m == sp {
				sp.Group.members = append(sp.Group.members[:i], sp.Group.members[i+1:]...)
				break
			}
		}
	}
	return nil
}

// SetGlobal enables or disables a global mode, clearing every other
// member of its group first when enabling (the mutual-exclusion
// rule).
func (t *Table) SetGlobal(name string, on bool) error {
	sp, ok := t.specs[name]
	if !ok {
		return fmt.Errorf("no such mode %q", name)
	}
	if sp.Scope != ScopeGlobal {
		return fmt.Errorf("mode %q is not a global mode", name)
	}
	if on && sp.Group != nil {
		for _, m := range sp.Group.members {
			t.globalOn[m.Name] = false
		}
	}
	t.globalOn[name] = on
	return nil
}

// GlobalEnabled reports whether a global mode is currently on.
func (t *Table) GlobalEnabled(name string) bool {
	return t.globalOn[name]
}

// ActiveGlobals returns the names of all currently-enabled global
// modes.
func (t *Table) ActiveGlobals() []string {
	var out []string
	for name, on := range t.globalOn {
		if on {
			out = append(out, name)
		}
	}
	return out
}
