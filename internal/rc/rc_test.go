package rc

import "testing"

func TestSeverityGate(t *testing.T) {
	r := New()
	r.Set(Failure, 0, "first failure")
	r.Set(NotFound, 0, "should be dropped")
	if r.Current().Status != Failure {
		t.Fatalf("status = %v, want Failure (less severe write should be dropped)", r.Current().Status)
	}
	r.Set(Panic, 0, "worse")
	if r.Current().Status != Panic {
		t.Fatalf("status = %v, want Panic (more severe write should win)", r.Current().Status)
	}
}

func TestForceOverrides(t *testing.T) {
	r := New()
	r.Set(Failure, 0, "failure")
	r.Set(Success, Force, "forced success")
	if r.Current().Status != Success {
		t.Fatalf("status = %v, want Success after Force", r.Current().Status)
	}
}

func TestClearMessageRespectsKeep(t *testing.T) {
	r := New()
	r.Reset()
	r.Set(Success, Keep, "keep me")
	r.ClearMessage()
	if r.Current().Message != "keep me" {
		t.Fatalf("message cleared despite Keep flag")
	}
}

func TestFatalExitUserVisible(t *testing.T) {
	if !Panic.Fatal() || !OSError.Fatal() || !FatalError.Fatal() {
		t.Fatal("Panic/OSError/FatalError should be Fatal")
	}
	if Failure.Fatal() {
		t.Fatal("Failure should not be Fatal")
	}
	if !ScriptExit.Exit() || !UserExit.Exit() || !HelpExit.Exit() {
		t.Fatal("exit kinds misclassified")
	}
	if !Failure.UserVisible() || !UserAbort.UserVisible() || !Cancelled.UserVisible() || !ScriptError.UserVisible() {
		t.Fatal("user-visible kinds misclassified")
	}
	if !NotFound.Informational() {
		t.Fatal("NotFound should be Informational")
	}
}
