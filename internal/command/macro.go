package command

import (
	"fmt"

	"github.com/mxeditor/mx/internal/datum"
)

// cmdBeginMacro starts keyboard-macro recording (spec.md §4.4).
func cmdBeginMacro(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	if err := ctx.KbdMacro.StartRecording(); err != nil {
		return nil, err
	}
	return datum.True, nil
}

// cmdEndMacro stops keyboard-macro recording. The editor's command
// loop, not this command body, is responsible for trimming the
// trailing endMacro keystroke itself out of the recorded sequence
// (spec.md §4.4: "the trailing end-keyboard-macro key itself is
// trimmed when recording stops") since only the loop sees the key
// before it gets here.
func cmdEndMacro(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	ctx.KbdMacro.StopRecording()
	return datum.True, nil
}

// cmdExecuteMacro replays the last recorded keyboard macro args[0]
// times if an argument is given, else the pending count (1 by
// default). A count below 1, including 0, plays it once; there is no
// unbounded repeat.
func cmdExecuteMacro(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	n := int(ctx.Count())
	if len(args) == 1 {
		n = int(args[0].Int())
	}
	if err := ctx.KbdMacro.Play(n); err != nil {
		return nil, err
	}
	return datum.True, nil
}

// cmdRunMacro invokes a named script macro from another command or a
// binding (spec.md §4.7 "Macro calls") through ctx.Exec, a MacroCaller
// that the editor wires in at construction time
// (internal/lang/exec.Executor satisfies it), so this package does not
// import internal/lang/exec.
type MacroCaller interface {
	CallMacro(name string, args []*datum.Datum) (*datum.Datum, error)
}

func cmdRunMacro(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	if ctx.Exec == nil {
		return nil, fmt.Errorf("no script executor attached to this session")
	}
	name := args[0].Str()
	return ctx.Exec.CallMacro(name, args[1:])
}

var macroCommands = []*Command{
	{Name: "beginMacro", MinArgs: 0, MaxArgs: 0, Fn: cmdBeginMacro, Descr: "start recording a keyboard macro"},
	{Name: "endMacro", MinArgs: 0, MaxArgs: 0, Fn: cmdEndMacro, Descr: "stop recording a keyboard macro"},
	{Name: "executeMacro", MinArgs: 0, MaxArgs: 1, Fn: cmdExecuteMacro, Descr: "replay the last recorded keyboard macro"},
	{Name: "runMacro", MinArgs: 1, MaxArgs: -1, Fn: cmdRunMacro, Descr: "invoke a named script macro"},
}
