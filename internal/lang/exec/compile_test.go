package exec

import (
	"testing"

	"github.com/mxeditor/mx/internal/buffer"
)

func alwaysNotCommand(string) bool { return false }

func TestCompileIfElsifElse(t *testing.T) {
	buf := buffer.New("")
	for _, l := range []string{
		"!if $x == 1",
		"10",
		"!elsif $x == 2",
		"20",
		"!else",
		"30",
		"!endif",
	} {
		buf.AppendStringAsLine(l)
	}
	prog, err := CompileBuffer(buf, alwaysNotCommand)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(prog.Top) != 1 {
		t.Fatalf("expected a single IfStmt, got %d statements", len(prog.Top))
	}
	ifs, ok := prog.Top[0].(*IfStmt)
	if !ok {
		t.Fatalf("expected *IfStmt, got %T", prog.Top[0])
	}
	if len(ifs.Then) != 1 || len(ifs.Elifs) != 1 || len(ifs.Else) != 1 {
		t.Fatalf("unexpected shape: then=%d elifs=%d else=%d", len(ifs.Then), len(ifs.Elifs), len(ifs.Else))
	}
}

func TestCompileMacroHeader(t *testing.T) {
	buf := buffer.New("")
	for _, l := range []string{
		"!macro greet,1,3,constrain",
		"$1",
		"!endmacro",
	} {
		buf.AppendStringAsLine(l)
	}
	prog, err := CompileBuffer(buf, alwaysNotCommand)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	md, ok := prog.Macros["greet"]
	if !ok {
		t.Fatalf("expected macro %q", "greet")
	}
	if md.MinArgs != 1 || md.MaxArgs != 3 {
		t.Fatalf("got MinArgs=%d MaxArgs=%d, want 1,3", md.MinArgs, md.MaxArgs)
	}
	if !md.Constrained || md.Omnipotent {
		t.Fatalf("got Constrained=%v Omnipotent=%v, want true,false", md.Constrained, md.Omnipotent)
	}
}

func TestCompileBareMacroArgcount(t *testing.T) {
	buf := buffer.New("")
	for _, l := range []string{
		"!macro noop,0",
		"1",
		"!endmacro",
	} {
		buf.AppendStringAsLine(l)
	}
	prog, err := CompileBuffer(buf, alwaysNotCommand)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	md := prog.Macros["noop"]
	if md.MinArgs != 0 || md.MaxArgs != 0 {
		t.Fatalf("got MinArgs=%d MaxArgs=%d, want 0,0", md.MinArgs, md.MaxArgs)
	}
}

func TestCompileUnterminatedIfErrors(t *testing.T) {
	buf := buffer.New("")
	buf.AppendStringAsLine("!if 1 == 1")
	buf.AppendStringAsLine("1")
	if _, err := CompileBuffer(buf, alwaysNotCommand); err == nil {
		t.Fatalf("expected error for unterminated !if, got nil")
	}
}

func TestCompileBreakRejectsNonPositiveLevel(t *testing.T) {
	buf := buffer.New("")
	buf.AppendStringAsLine("!loop")
	buf.AppendStringAsLine("!break 0")
	buf.AppendStringAsLine("!endloop")
	if _, err := CompileBuffer(buf, alwaysNotCommand); err == nil {
		t.Fatalf("expected error for !break 0, got nil")
	}
}

func TestCompileCachesOnMacroBuffer(t *testing.T) {
	buf := buffer.New("cached")
	buf.Macro = &buffer.MacroExt{MaxArgs: -1}
	buf.AppendStringAsLine("!macro m,0")
	buf.AppendStringAsLine("1")
	buf.AppendStringAsLine("!endmacro")

	first, err := CompileBuffer(buf, alwaysNotCommand)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if buf.Flags&buffer.FlPreprocessed == 0 {
		t.Fatalf("expected FlPreprocessed to be set after first compile")
	}
	second, err := CompileBuffer(buf, alwaysNotCommand)
	if err != nil {
		t.Fatalf("recompile: %v", err)
	}
	if first != second {
		t.Fatalf("expected cached Program to be returned unchanged")
	}
}
