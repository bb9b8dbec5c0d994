package mode

import "testing"

func TestMutualExclusionGroup(t *testing.T) {
	t2 := NewBuiltinTable()
	if !t2.GlobalEnabled(HScrollPerWindow) {
		t.Fatal("HScrollPerWindow should be on by default")
	}
	if err := t2.SetGlobal(HScrollScreenWide, true); err != nil {
		t.Fatal(err)
	}
	if t2.GlobalEnabled(HScrollPerWindow) {
		t.Fatal("enabling a group sibling should disable HScrollPerWindow")
	}
	if !t2.GlobalEnabled(HScrollScreenWide) {
		t.Fatal("HScrollScreenWide should now be on")
	}
}

func TestBuiltinModeNotDeletable(t *testing.T) {
	t2 := NewBuiltinTable()
	if err := t2.Delete(Regexp); err == nil {
		t.Fatal("deleting a built-in mode should fail")
	}
}

func TestUserModeLifecycle(t *testing.T) {
	t2 := NewTable()
	if _, err := t2.Define(Spec{Name: "scratch", Scope: ScopeBuffer, Flags: User}); err != nil {
		t.Fatal(err)
	}
	if _, err := t2.Define(Spec{Name: "scratch", Scope: ScopeBuffer, Flags: User}); err == nil {
		t.Fatal("redefining an existing mode should fail")
	}
	if err := t2.Delete("scratch"); err != nil {
		t.Fatal(err)
	}
	if t2.Lookup("scratch") != nil {
		t.Fatal("deleted mode should no longer be found")
	}
}

func TestSetGlobalRejectsBufferScope(t *testing.T) {
	t2 := NewTable()
	t2.Define(Spec{Name: "local", Scope: ScopeBuffer})
	if err := t2.SetGlobal("local", true); err == nil {
		t.Fatal("SetGlobal on a buffer-scoped mode should fail")
	}
}
