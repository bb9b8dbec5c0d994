// Package command implements the editor's named command table: the
// builtin operations bound to keys and callable from scripts (spec.md
// §4, grounded on original_source/memacs-9.3.0/src/cmd.h's name table
// and on ui/view.Executor's "app supplies a name->function table, the
// framework calls into it by name" shape).
package command

import (
	"github.com/mxeditor/mx/internal/buffer"
	"github.com/mxeditor/mx/internal/input"
	"github.com/mxeditor/mx/internal/layout"
	"github.com/mxeditor/mx/internal/mode"
	"github.com/mxeditor/mx/internal/rc"
	"github.com/mxeditor/mx/internal/ring"
)

// Context bundles the session-wide state a command body needs: the
// current screen/window/buffer, the result register, the kill/undelete/
// pattern rings, the mode table, and the pending numeric argument. It
// plays the role of ui/view.ExecContext, widened from one UI click's
// worth of state to a whole editing session's.
type Context struct {
	Screen   *layout.Screen
	Sessions *buffer.Session
	Modes    *mode.Table

	RC *rc.Register

	Kill        *ring.KillRing
	Undelete    *ring.UndeleteRing
	SearchRing  *ring.PatternRing
	ReplaceRing *ring.PatternRing

	KbdMacro *input.KeyboardMacro

	// Exec is the script executor this session's runMacro command calls
	// into. It is set by the editor after both Context and
	// internal/lang/exec.Executor exist (construction order: Context
	// first since Executor's Caller wraps the command Table built over
	// it, Exec wired in second) — see internal/editor.
	Exec MacroCaller

	Writer   buffer.Writer
	SaveMode buffer.SaveMode

	// N and HasN carry the pending universal/numeric argument set by
	// the key-sequence assembler before a command is dispatched
	// (spec.md §4: commands "accept an optional leading count").
	// Commands read it through Count() or HasN and the editor resets
	// it to the no-argument state after every dispatch.
	N    int64
	HasN bool

	// Prompt, when set by the editor, displays message on the message
	// line and reads one raw keystroke in response, returning ok=false
	// if the read was aborted (e.g. the terminal closed mid-prompt).
	// Query-replace (spec.md §4.5) is the only builtin that uses it; a
	// nil Prompt makes query-replace behave like an unconditional
	// replace, which is what running one from a script needs anyway
	// since scripts have no interactive message line to read from.
	Prompt func(message string) (rune, bool)

	// LastWasKill records whether the previously dispatched command was
	// itself a kill, so consecutive kills coalesce into one ring slot
	// instead of fragmenting it one kill per keystroke (kill.c's
	// "kentry.lastflag & CFKILL" check, reshaped from a global flag bit
	// into Context state the caller updates after each dispatch).
	LastWasKill bool
}

// NewContext builds a Context wired to freshly constructed rings and
// mode table sized to the package defaults, over an existing screen and
// buffer session.
func NewContext(scr *layout.Screen, sess *buffer.Session) *Context {
	return &Context{
		Screen:      scr,
		Sessions:    sess,
		Modes:       mode.NewBuiltinTable(),
		RC:          rc.New(),
		Kill:        ring.NewKillRing(ring.DefaultKillRingSize),
		Undelete:    ring.NewUndeleteRing(ring.DefaultUndeleteRingSize),
		SearchRing:  ring.NewPatternRing(ring.DefaultPatternRingSize),
		ReplaceRing: ring.NewPatternRing(ring.DefaultPatternRingSize),
		KbdMacro:    &input.KeyboardMacro{},
		Writer:      buffer.DefaultWriter,
		SaveMode:    buffer.SaveDirect,
	}
}

// Win returns the screen's current window.
func (c *Context) Win() *layout.Window { return c.Screen.Cur }

// Buf returns the buffer shown in the current window.
func (c *Context) Buf() *buffer.Buffer { return c.Win().Buf }

// Count returns the effective repeat count for a command that treats
// its numeric argument as a plain repeat count: the argument's value if
// one was given, else 1 (spec.md §4's default-count convention).
func (c *Context) Count() int64 {
	if !c.HasN {
		return 1
	}
	return c.N
}

// ClearArg resets the pending numeric argument to its default,
// no-argument state. The editor's command loop calls this once a
// command has consumed (or ignored) the argument.
func (c *Context) ClearArg() {
	c.N = 0
	c.HasN = false
}
