package exec

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mxeditor/mx/internal/buffer"
	"github.com/mxeditor/mx/internal/datum"
	"github.com/mxeditor/mx/internal/rc"
)

// compileBlock tokenizes and compiles multi-line source as a plain
// (non-macro) buffer's top-level block, for tests that exercise
// !if/!loop control flow spanning several lines.
func compileBlock(t *testing.T, src string, isCommand func(string) bool) Block {
	t.Helper()
	buf := buffer.New("")
	for _, line := range strings.Split(strings.TrimRight(src, "\n"), "\n") {
		buf.AppendStringAsLine(line)
	}
	prog, err := CompileBuffer(buf, isCommand)
	if err != nil {
		t.Fatalf("compile %q: %v", src, err)
	}
	return prog.Top
}

// stubCaller is a minimal Caller for exercising the executor without
// internal/command: it knows a handful of named "builtins" used by the
// tests below and nothing else.
type stubCaller struct {
	calls []string
}

func (c *stubCaller) IsCommand(name string) bool {
	switch name {
	case "insert", "fail", "echo":
		return true
	}
	return false
}

func (c *stubCaller) Call(name string, args []*datum.Datum, parenless bool) (*datum.Datum, error) {
	c.calls = append(c.calls, name)
	switch name {
	case "insert":
		return datum.True, nil
	case "fail":
		return nil, fmt.Errorf("stub: fail command failed")
	case "echo":
		if len(args) == 0 {
			return datum.Nil, nil
		}
		return args[0], nil
	}
	return nil, fmt.Errorf("stub: unknown command %q", name)
}

func newExec() (*Executor, *stubCaller) {
	caller := &stubCaller{}
	return New(rc.New(), caller), caller
}

func run(t *testing.T, ex *Executor, src string) *datum.Datum {
	t.Helper()
	v, err := ex.RunStatement(src)
	if err != nil {
		t.Fatalf("RunStatement(%q): %v", src, err)
	}
	return v
}

func TestRunStatementArithmetic(t *testing.T) {
	ex, _ := newExec()
	v := run(t, ex, "2 + 3 * 4")
	if v.Int() != 14 {
		t.Fatalf("got %v, want 14", v.Int())
	}
}

func TestRunStatementGlobalVar(t *testing.T) {
	ex, _ := newExec()
	run(t, ex, "$x = 10")
	v := run(t, ex, "$x * 2")
	if v.Int() != 20 {
		t.Fatalf("got %v, want 20", v.Int())
	}
}

// TestIfLoopBreakScenario exercises spec.md §8 scenario 5's shape: an !if whose
// body contains a bare !loop immediately broken, yielding the trailing
// expression's value.
func TestIfLoopBreakScenario(t *testing.T) {
	ex, _ := newExec()
	prog := compileBlock(t, "!if 1 == 1\n!loop\n!break\n!endloop\n42\n!endif\n", ex.IsCommand)
	v, err := ex.RunBlock(prog)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if v.Int() != 42 {
		t.Fatalf("got %v, want 42", v.Int())
	}
}

func TestLoopBreakLevel(t *testing.T) {
	ex, _ := newExec()
	src := "!loop\n" +
		"!loop\n" +
		"!break 2\n" +
		"!endloop\n" +
		"99\n" +
		"!endloop\n" +
		"7\n"
	blk := compileBlock(t, src, ex.IsCommand)
	v, err := ex.RunBlock(blk)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// The outer loop's body never reaches "99" (break 2 unwinds both
	// loops); only the trailing bare statement "7" runs.
	if v.Int() != 7 {
		t.Fatalf("got %v, want 7", v.Int())
	}
}

func TestWhileLoopCounts(t *testing.T) {
	ex, _ := newExec()
	src := "$n = 0\n!while $n < 5\n$n = $n + 1\n!endloop\n$n\n"
	blk := compileBlock(t, src, ex.IsCommand)
	v, err := ex.RunBlock(blk)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if v.Int() != 5 {
		t.Fatalf("got %v, want 5", v.Int())
	}
}

func TestLoopMaxEnforced(t *testing.T) {
	ex, _ := newExec()
	ex.SetLoopMax(10)
	src := "!while 1 == 1\n1\n!endloop\n"
	blk := compileBlock(t, src, ex.IsCommand)
	if _, err := ex.RunBlock(blk); err == nil {
		t.Fatalf("expected loopmax error, got nil")
	}
}

func TestMacroCallAndArgs(t *testing.T) {
	ex, _ := newExec()
	buf := buffer.New("double")
	buf.AppendStringAsLine("!macro double,1")
	buf.AppendStringAsLine("$1 * 2")
	buf.AppendStringAsLine("!endmacro")

	if _, err := ex.LoadBuffer(buf); err != nil {
		t.Fatalf("LoadBuffer: %v", err)
	}
	v, err := ex.CallMacro("double", []*datum.Datum{datum.NewInt(21)})
	if err != nil {
		t.Fatalf("CallMacro: %v", err)
	}
	if v.Int() != 42 {
		t.Fatalf("got %v, want 42", v.Int())
	}
}

func TestMacroArgCountEnforced(t *testing.T) {
	ex, _ := newExec()
	buf := buffer.New("needs2")
	buf.AppendStringAsLine("!macro needs2,2,2")
	buf.AppendStringAsLine("!return $1 + $2")
	buf.AppendStringAsLine("!endmacro")
	if _, err := ex.LoadBuffer(buf); err != nil {
		t.Fatalf("LoadBuffer: %v", err)
	}
	if _, err := ex.CallMacro("needs2", []*datum.Datum{datum.NewInt(1)}); err == nil {
		t.Fatalf("expected arg-count error, got nil")
	}
}

func TestConstrainedMacroCannotCallConstrained(t *testing.T) {
	ex, _ := newExec()
	buf := buffer.New("lib")
	buf.AppendStringAsLine("!macro inner,0,0,constrain")
	buf.AppendStringAsLine("1")
	buf.AppendStringAsLine("!endmacro")
	buf.AppendStringAsLine("!macro outer,0,0,constrain")
	buf.AppendStringAsLine("inner()")
	buf.AppendStringAsLine("!endmacro")
	if _, err := ex.LoadBuffer(buf); err != nil {
		t.Fatalf("LoadBuffer: %v", err)
	}
	if _, err := ex.CallMacro("outer", nil); err == nil {
		t.Fatalf("expected constrained-context error, got nil")
	}
}

func TestCommandDelegation(t *testing.T) {
	ex, caller := newExec()
	v := run(t, ex, `echo("hi")`)
	if v.Repr() != "hi" {
		t.Fatalf("got %v, want hi", v.Repr())
	}
	if len(caller.calls) != 1 || caller.calls[0] != "echo" {
		t.Fatalf("unexpected calls: %v", caller.calls)
	}
}

func TestHookDisablesOnFailure(t *testing.T) {
	ex, _ := newExec()
	buf := buffer.New("badhook")
	buf.AppendStringAsLine("!macro onWrite,0")
	buf.AppendStringAsLine("fail()")
	buf.AppendStringAsLine("!endmacro")
	if _, err := ex.LoadBuffer(buf); err != nil {
		t.Fatalf("LoadBuffer: %v", err)
	}
	ex.Hooks.Set(HookWrite, "onWrite")

	ok, err := ex.RunHook(HookWrite, nil)
	if ok {
		t.Fatalf("expected hook failure, got ok")
	}
	if err == nil {
		t.Fatalf("expected error")
	}
	if ex.Hooks.Target(HookWrite) != "" {
		t.Fatalf("expected hook to be cleared after hard failure")
	}
	if !ex.RC.Failed() {
		t.Fatalf("expected result register to report failure")
	}
}

func TestHookFalseReturnAbortsWithoutDisabling(t *testing.T) {
	ex, _ := newExec()
	buf := buffer.New("falsehook")
	buf.AppendStringAsLine("!macro preKey,0")
	buf.AppendStringAsLine("false")
	buf.AppendStringAsLine("!endmacro")
	if _, err := ex.LoadBuffer(buf); err != nil {
		t.Fatalf("LoadBuffer: %v", err)
	}
	ex.Hooks.Set(HookPreKey, "preKey")

	ok, err := ex.RunHook(HookPreKey, nil)
	if ok {
		t.Fatalf("expected false return to report not-ok")
	}
	if err != nil {
		t.Fatalf("a false return is not a hard failure: %v", err)
	}
	if ex.Hooks.Target(HookPreKey) != "preKey" {
		t.Fatalf("a false return must not disable the hook")
	}
}
