package exec

import (
	"fmt"

	"github.com/mxeditor/mx/internal/datum"
	"github.com/mxeditor/mx/internal/rc"
)

// HookKind names one of the fixed hook points a macro can be bound to
// (spec.md §4.7: "A fixed table maps hook kinds (chgDir, createBuf,
// enterBuf, exitBuf, filename, help, mode, postKey, preKey, read,
// wrap, write) to target macros").
type HookKind int

const (
	HookChgDir HookKind = iota
	HookCreateBuf
	HookEnterBuf
	HookExitBuf
	HookFilename
	HookHelp
	HookMode
	HookPostKey
	HookPreKey
	HookRead
	HookWrap
	HookWrite
	numHooks
)

var hookNames = [numHooks]string{
	HookChgDir:    "chgDir",
	HookCreateBuf: "createBuf",
	HookEnterBuf:  "enterBuf",
	HookExitBuf:   "exitBuf",
	HookFilename:  "filename",
	HookHelp:      "help",
	HookMode:      "mode",
	HookPostKey:   "postKey",
	HookPreKey:    "preKey",
	HookRead:      "read",
	HookWrap:      "wrap",
	HookWrite:     "write",
}

func (k HookKind) String() string {
	if k < 0 || int(k) >= len(hookNames) {
		return "unknown"
	}
	return hookNames[k]
}

// ParseHookKind maps a hook name (as used in a `set-hook` style call)
// to its HookKind.
func ParseHookKind(name string) (HookKind, bool) {
	for i, n := range hookNames {
		if n == name {
			return HookKind(i), true
		}
	}
	return 0, false
}

// HookTable binds hook kinds to macro names. A zero value (empty
// string) means the hook is unset.
type HookTable struct {
	targets [numHooks]string
}

// NewHookTable returns an empty hook table.
func NewHookTable() *HookTable {
	return &HookTable{}
}

// Set binds kind to the named macro, replacing any prior binding.
func (h *HookTable) Set(kind HookKind, macroName string) {
	h.targets[kind] = macroName
}

// Clear unbinds kind.
func (h *HookTable) Clear(kind HookKind) {
	h.targets[kind] = ""
}

// Target returns the macro currently bound to kind, or "" if unset.
func (h *HookTable) Target(kind HookKind) string {
	return h.targets[kind]
}

// RunHook invokes the macro bound to kind, if any, with args as its
// positional arguments (spec.md §4.7: "the executor constructs an
// argument tuple per the hook's declared signature and runs it").
//
// It returns (true, nil) when no hook is bound, or when the hook ran
// and its result was truthy. It returns (false, nil) when the hook ran
// and explicitly returned a falsy value — the caller should abort the
// triggering command with a "false return" failure (spec.md §4.7,
// §6). It returns (false, err) when the hook failed hard; in that case
// RunHook has already cleared the binding and written a disabled-hook
// message to the result register at Failure severity; the register's
// severity gate drops that write when a more severe status (such as
// the ScriptError a failing statement records) is already set.
func (ex *Executor) RunHook(kind HookKind, args []*datum.Datum) (bool, error) {
	name := ex.Hooks.Target(kind)
	if name == "" {
		return true, nil
	}
	result, err := ex.CallMacro(name, args)
	if err != nil {
		ex.Hooks.Clear(kind)
		msg := fmt.Sprintf("%s hook disabled: macro %q failed: %v", kind, name, err)
		ex.RC.Setf(rc.Failure, 0, "%s", msg)
		return false, fmt.Errorf("%s", msg)
	}
	if !result.Truthy() {
		return false, nil
	}
	return true, nil
}
