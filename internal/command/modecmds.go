package command

import (
	"fmt"

	"github.com/mxeditor/mx/internal/datum"
	"github.com/mxeditor/mx/internal/mode"
)

// cmdEnableMode turns on a mode by name, global or buffer-local
// depending on the mode's own declared Scope (spec.md §4.3's
// ModeSpec.Flags scope, not a per-call choice).
func cmdEnableMode(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	return setMode(ctx, args[0].Str(), true)
}

// cmdDisableMode turns off a mode by name.
func cmdDisableMode(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	return setMode(ctx, args[0].Str(), false)
}

func setMode(ctx *Context, name string, on bool) (*datum.Datum, error) {
	spec := ctx.Modes.Lookup(name)
	if spec == nil {
		return nil, fmt.Errorf("no such mode %q", name)
	}
	if spec.Scope == mode.ScopeGlobal {
		if err := ctx.Modes.SetGlobal(name, on); err != nil {
			return nil, err
		}
		return datum.True, nil
	}
	buf := ctx.Buf()
	if on && spec.Group != nil {
		for _, m := range spec.Group.Members() {
			delete(buf.Modes, m.Name)
		}
	}
	if on {
		buf.Modes[name] = true
	} else {
		delete(buf.Modes, name)
	}
	return datum.True, nil
}

var modeCommands = []*Command{
	{Name: "enableMode", MinArgs: 1, MaxArgs: 1, Fn: cmdEnableMode, Descr: "turn on a mode"},
	{Name: "disableMode", MinArgs: 1, MaxArgs: 1, Fn: cmdDisableMode, Descr: "turn off a mode"},
}
