package editor

import (
	"github.com/mxeditor/mx/internal/datum"
	"github.com/mxeditor/mx/internal/input"
	"github.com/mxeditor/mx/internal/lang/exec"
	"github.com/mxeditor/mx/internal/rc"
)

// universalArgName/negativeArgName are the core pseudo-commands
// spec.md §4.3 names alongside abort and quote; the command loop
// intercepts them before they ever reach command.Table (ground:
// bind.c's coreKeys cache serving exactly these by direct dispatch
// rather than a table lookup).
const (
	universalArgName = "universalArg"
	negativeArgName  = "negativeArg"
)

// Run drives the command loop until a command sets an Exit-class
// result (spec.md §7: ScriptExit/UserExit/HelpExit) or the terminal
// closes. It returns the final result register content.
func (s *Session) Run() rc.Result {
	s.running = true
	s.Screen.FullRedraw = true
	for s.running {
		s.Step()
		st := s.Ctx.RC.Current().Status
		if st.Exit() || st.Fatal() {
			break
		}
	}
	return s.Ctx.RC.Current()
}

// Stop ends the command loop after the current Step returns.
func (s *Session) Stop() { s.running = false }

// Step processes exactly one dispatch cycle: resolve a pending numeric
// argument (if any prefix keys precede the command key), run the
// pre-key hook, dispatch the bound command (or self-insert), run the
// post-key hook, and redisplay (spec.md §2, §5 "Ordering guarantees").
func (s *Session) Step() {
	topOfLoop(s.Ctx.RC)
	s.Garbage.Sweep()

	key, ok := s.readArgPrefix()
	if !ok {
		s.running = false
		return
	}

	if key == AbortKey {
		s.handleAbort()
		s.Redraw.Paint(s.Screen, s.Ctx.RC, s.Ctx.Modes)
		return
	}

	name, bound := s.Binds.Lookup(key)
	wasRecording := s.Ctx.KbdMacro.Recording()

	ok, err := s.Exec.RunHook(exec.HookPreKey, []*datum.Datum{datum.NewInt(int64(key))})
	if err != nil || !ok {
		s.reportHookFailure(err)
		s.Redraw.Paint(s.Screen, s.Ctx.RC, s.Ctx.Modes)
		return
	}

	s.dispatch(key, name, bound)

	if wasRecording && !s.Ctx.KbdMacro.Recording() && bound && name == "endMacro" {
		s.Ctx.KbdMacro.TrimLast()
	}

	if !s.Ctx.RC.Failed() {
		if ok, err := s.Exec.RunHook(exec.HookPostKey, []*datum.Datum{datum.NewInt(int64(key))}); err != nil || !ok {
			s.reportHookFailure(err)
		}
	}

	s.Ctx.ClearArg()
	s.Redraw.Paint(s.Screen, s.Ctx.RC, s.Ctx.Modes)
}

// dispatch invokes the bound command for key, or self-insert for an
// unbound plain character, recording the result in the result register.
func (s *Session) dispatch(key input.ExtKey, name string, bound bool) {
	if !bound {
		if key.Prefixes() != 0 || key.Base() >= 0x80 {
			s.Ctx.RC.Setf(rc.Failure, 0, "%s is not bound", key)
			return
		}
		s.call(input.SelfInsertName, []*datum.Datum{datum.NewString([]byte{byte(key.Base())})})
		return
	}
	switch name {
	case universalArgName, negativeArgName:
		// Consumed by readArgPrefix; reaching here means the key was
		// pressed with nothing pending and nothing follows it, so treat
		// it as a no-op rather than an error.
		return
	}
	s.call(name, nil)
}

// call invokes a command by name through the Caller seam shared with
// the script executor, so builtins behave identically whether bound to
// a key or run from a script.
func (s *Session) call(name string, args []*datum.Datum) {
	result, err := s.Cmds.Call(name, args, false)
	if err != nil {
		s.Ctx.RC.Setf(rc.Failure, 0, "%s", err.Error())
		return
	}
	if (result == nil || !result.Truthy()) && s.Ctx.RC.Current().Status == rc.Success {
		s.Ctx.RC.Set(rc.Failure, 0, name+" failed")
	}
}

// readArgPrefix consumes any leading universalArg/negativeArg keys
// and digit keys, accumulating a pending numeric argument into
// s.Ctx.N/HasN, and returns the first key that is not part of that
// prefix (spec.md §4.3's "optional leading count").
func (s *Session) readArgPrefix() (input.ExtKey, bool) {
	haveDigits := false
	negative := false
	n := int64(0)
	for {
		key, ok := s.Asm.Next()
		if !ok {
			return 0, false
		}
		name, bound := s.Binds.Lookup(key)
		switch {
		case bound && name == universalArgName:
			continue
		case bound && name == negativeArgName:
			negative = true
			continue
		case key.Prefixes() == 0 && key.Base() >= '0' && key.Base() <= '9':
			haveDigits = true
			n = n*10 + int64(key.Base()-'0')
			continue
		}
		if haveDigits || negative {
			if negative {
				n = -n
				if !haveDigits {
					n = -1
				}
			}
			s.Ctx.N = n
			s.Ctx.HasN = true
		}
		return key, true
	}
}

// handleAbort cancels an in-progress keyboard macro recording/playback
// and reports UserAbort (spec.md §5 "Cancellation"); a running prompt
// (query-replace) observes the same status through ctx.Prompt.
func (s *Session) handleAbort() {
	if s.Ctx.KbdMacro.Recording() {
		s.Ctx.KbdMacro.StopRecording()
	}
	for s.Ctx.KbdMacro.Playing() {
		s.Ctx.KbdMacro.Next()
	}
	s.Ctx.RC.Set(rc.UserAbort, 0, "Aborted")
}

func (s *Session) reportHookFailure(err error) {
	if err != nil {
		s.Ctx.RC.Setf(rc.Failure, 0, "%s", err.Error())
		return
	}
	s.Ctx.RC.Set(rc.Failure, 0, "hook returned false")
}
