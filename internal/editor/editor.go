// Package editor wires the text model, layout, input, command, script,
// and redisplay packages into one running session and drives the
// command loop spec.md §2 describes: keystroke -> key-sequence
// assembler -> pre-key hook -> command dispatch -> buffer mutation ->
// post-key hook -> redisplay. It is grounded on ui/view.Executor's
// "app supplies handlers, the framework drives one event at a time"
// shape, widened from one UI event to a whole keystroke/redisplay/hook
// cycle.
package editor

import (
	"github.com/mxeditor/mx/internal/buffer"
	"github.com/mxeditor/mx/internal/command"
	"github.com/mxeditor/mx/internal/datum"
	"github.com/mxeditor/mx/internal/input"
	"github.com/mxeditor/mx/internal/layout"
	"github.com/mxeditor/mx/internal/lang/exec"
	"github.com/mxeditor/mx/internal/rc"
	"github.com/mxeditor/mx/internal/redisplay"
	"github.com/mxeditor/mx/internal/term"
)

// AbortKey is the core key that cancels a prompt, search, query-replace,
// or running keyboard macro (spec.md §5 "Cancellation": "the abort key
// ... aborts any prompt, search, replace-query, or running keyboard
// macro").
const AbortKey = input.Ctrl | input.ExtKey('G')

// Session is one running editor: a screen of windows over a buffer
// registry, the binding table and key assembler reading from a
// terminal, the command table and script executor sharing one result
// register, and the redisplay pipeline that paints after every
// dispatch.
type Session struct {
	Disp term.Display

	Screen   *layout.Screen
	Sessions *buffer.Session
	Ctx      *command.Context
	Cmds     *command.Table
	Binds    *input.Table
	Asm      *input.Assembler
	Exec     *exec.Executor
	Redraw   *redisplay.Pipeline
	Garbage  *datum.GarbageList

	running bool
}

// New builds a Session over disp, already sized and showing an initial
// scratch buffer. Callers typically follow New with one or more
// cmdFindFile-equivalent loads (cmd/mx's startup sequence) before
// calling Run.
func New(disp term.Display) *Session {
	rows, cols := disp.Size()
	bodyRows := rows - 1 // the last row is the message line (spec.md §4.6 step 4)
	if bodyRows < layout.MinWindowRows+1 {
		bodyRows = layout.MinWindowRows + 1
	}

	sessions := buffer.NewSession()
	scratch, _ := sessions.Create("scratch")
	scr := layout.NewScreen(1, bodyRows, cols, scratch)

	ctx := command.NewContext(scr, sessions)
	cmds := command.NewTable(ctx)
	ex := exec.New(ctx.RC, cmds)
	ctx.Exec = ex

	binds := input.NewTable()
	binds.DefaultCoreBindings()
	DefaultBindings(binds)

	asm := input.NewAssembler(disp, binds, ctx.KbdMacro)

	s := &Session{
		Disp:     disp,
		Screen:   scr,
		Sessions: sessions,
		Ctx:      ctx,
		Cmds:     cmds,
		Binds:    binds,
		Asm:      asm,
		Exec:     ex,
		Redraw:   redisplay.New(disp, redisplay.DefaultConfig()),
		Garbage:  datum.NewGarbageList(),
	}
	ctx.Prompt = s.readPromptKey
	return s
}

// topOfLoop applies spec.md §7/§8's reset rule: the result register
// returns to Success at the start of every iteration, except a message
// flagged Keep survives exactly one more iteration before the next
// topOfLoop call clears it.
func topOfLoop(reg *rc.Register) {
	if cur := reg.Current(); cur.Flags&rc.Keep != 0 {
		reg.Set(cur.Status, cur.Flags&^rc.Keep, cur.Message)
		return
	}
	reg.Reset()
}
