package exec

import (
	"testing"

	"github.com/mxeditor/mx/internal/rc"
)

// TestForceClearsFailure exercises the documented decision: !force
// catches a failing result register from the statement it directly
// wraps and resets it to Success.
func TestForceClearsFailure(t *testing.T) {
	ex, _ := newExec()
	ex.RC.Setf(rc.Failure, 0, "previously failed")

	blk := compileBlock(t, "!force fail()\n", ex.IsCommand)
	if _, err := ex.RunBlock(blk); err != nil {
		t.Fatalf("!force should swallow the command error, got: %v", err)
	}
	if ex.RC.Current().Status != rc.Success {
		t.Fatalf("got status %v, want Success after !force", ex.RC.Current().Status)
	}
}

// TestForceDoesNotCatchControlFlow confirms that !force only catches
// result-register failures, not a break/next/return signal escaping
// its wrapped statement. The compiler never actually emits a
// ForceStmt wrapping a BreakStmt (!force's grammar only wraps an
// expression statement), so this builds the tree directly to pin down
// the execStmt-level contract.
func TestForceDoesNotCatchControlFlow(t *testing.T) {
	ex, _ := newExec()
	loop := &LoopStmt{
		Kind: "loop",
		Body: Block{
			&ForceStmt{Inner: &BreakStmt{Level: 1}},
			&ExprStmt{Expr: nil}, // unreachable: break fires first
		},
	}
	_, err := ex.execStmt(loop)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
}

// TestForceDoesNotResetLoopCounter documents the Open Question
// decision: !force's reach is limited to the statement it wraps, so it
// has no way to affect the enclosing loop's own iteration bookkeeping
// (loopmax keeps counting normally through forced failures).
func TestForceDoesNotResetLoopCounter(t *testing.T) {
	ex, _ := newExec()
	ex.SetLoopMax(5)
	src := "!while 1 == 1\n!force fail()\n!endloop\n"
	blk := compileBlock(t, src, ex.IsCommand)
	if _, err := ex.RunBlock(blk); err == nil {
		t.Fatalf("expected loopmax to still trip even though every iteration is !force'd")
	}
}
