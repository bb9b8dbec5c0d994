// Package rc implements the editor's single process-wide result
// register: an ordered severity plus an optional message, used in lieu
// of exceptions throughout the command dispatch, script executor, and
// redisplay pipeline (spec.md §3, §7, §8).
package rc

import "fmt"

// Status is an ordered severity. Lower numeric value means more severe;
// Set only overwrites the current status with a less-severe value when
// Force is given (spec.md: "writes with lower severity than the
// current status are dropped unless Force is specified, so the most
// severe failure in a call chain survives").
type Status int

const (
	Panic Status = iota
	OSError
	FatalError
	ScriptExit
	UserExit
	HelpExit
	ScriptError
	Failure
	UserAbort
	Cancelled
	NotFound
	Success
)

func (s Status) String() string {
	switch s {
	case Panic:
		return "panic"
	case OSError:
		return "os-error"
	case FatalError:
		return "fatal-error"
	case ScriptExit:
		return "script-exit"
	case UserExit:
		return "user-exit"
	case HelpExit:
		return "help-exit"
	case ScriptError:
		return "script-error"
	case Failure:
		return "failure"
	case UserAbort:
		return "user-abort"
	case Cancelled:
		return "cancelled"
	case NotFound:
		return "not-found"
	case Success:
		return "success"
	default:
		return "?"
	}
}

// Fatal reports whether s is Panic, OSError, or FatalError: these
// unwind every frame and terminate the process (spec.md §7).
func (s Status) Fatal() bool {
	return s <= FatalError
}

// Exit reports whether s is one of the exit-request kinds: ScriptExit,
// UserExit, or HelpExit. These unwind to the main loop, which then
// terminates cleanly (spec.md §7).
func (s Status) Exit() bool {
	return s == ScriptExit || s == UserExit || s == HelpExit
}

// UserVisible reports whether s is one of the user-visible failure
// kinds that unwind to the command loop, or in scripts to the nearest
// !force (spec.md §7).
func (s Status) UserVisible() bool {
	return s == ScriptError || s == Failure || s == UserAbort || s == Cancelled
}

// Informational reports whether s is NotFound — never written through
// Set, returned directly to the caller instead (spec.md §3, §7). The
// type also models end-of-file/no-such-file as NotFound at the call
// site; rc itself only distinguishes the one shared value.
func (s Status) Informational() bool {
	return s == NotFound
}

// Flag is a bitset of modifiers on a Result.
type Flag uint8

const (
	// Force makes Set overwrite the current status even if the new
	// status is less severe.
	Force Flag = 1 << iota
	// Keep prevents the message from being cleared at the top of the
	// next command loop iteration (spec.md §7/§8).
	Keep
	// Wrap requests the message be painted wrapped in "[ ]" on the
	// message line (spec.md §7).
	Wrap
)

// Result is the register's content: a severity, optional flags, and an
// optional human-readable message.
type Result struct {
	Status  Status
	Flags   Flag
	Message string
}

// Register is the process-wide (or, per spec.md §9's "thread through a
// Session" design note, per-session) result channel singleton.
type Register struct {
	cur Result
}

// New returns a Register initialized to Success with no message.
func New() *Register {
	return &Register{cur: Result{Status: Success}}
}

// Current returns the register's current content.
func (r *Register) Current() Result {
	return r.cur
}

// Set writes a new status and message, honoring the severity-gate rule:
// a status less severe (numerically larger) than the current one is
// dropped unless flags includes Force. Set always records the message
// when the write is accepted, even if the message is empty (an empty
// message at Failure or above should usually be avoided by the caller —
// Set does not manufacture one).
func (r *Register) Set(status Status, flags Flag, message string) {
	if status > r.cur.Status && flags&Force == 0 {
		return
	}
	r.cur = Result{Status: status, Flags: flags, Message: message}
}

// Setf is Set with fmt.Sprintf-style message formatting.
func (r *Register) Setf(status Status, flags Flag, format string, args ...any) {
	r.Set(status, flags, fmt.Sprintf(format, args...))
}

// Reset sets the register back to Success with no message, the state
// expected at the very top of the command loop before the next
// keystroke is processed.
func (r *Register) Reset() {
	r.cur = Result{Status: Success}
}

// ClearMessage clears the message of a Success result unless it is
// marked Keep; a result of any other status keeps its message.
func (r *Register) ClearMessage() {
	if r.cur.Flags&Keep != 0 {
		return
	}
	if r.cur.Status == Success {
		r.cur.Message = ""
	}
}

// Failed reports whether the current result's severity is at or above
// Failure (i.e. would abort a caller that checks for failure).
func (r *Register) Failed() bool {
	return r.cur.Status <= Failure
}
