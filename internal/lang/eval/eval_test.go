package eval

import (
	"testing"

	"github.com/mxeditor/mx/internal/datum"
	"github.com/mxeditor/mx/internal/lang/lexer"
)

// testEnv is a minimal Env for exercising the evaluator in isolation.
type testEnv struct {
	vars   map[string]*datum.Datum
	args   map[int64]*datum.Datum
	calls  []string
	cmdRet *datum.Datum
}

func newTestEnv() *testEnv {
	return &testEnv{vars: map[string]*datum.Datum{}, args: map[int64]*datum.Datum{}}
}

func (e *testEnv) GetVar(name string) (*datum.Datum, bool) {
	d, ok := e.vars[name]
	return d, ok
}

func (e *testEnv) SetVar(name string, v *datum.Datum) error {
	e.vars[name] = v
	return nil
}

func (e *testEnv) Arg(n int64) (*datum.Datum, bool) {
	d, ok := e.args[n]
	return d, ok
}

func (e *testEnv) Call(name string, args []*datum.Datum, parenless bool) (*datum.Datum, error) {
	e.calls = append(e.calls, name)
	if e.cmdRet != nil {
		return e.cmdRet, nil
	}
	return datum.Nil, nil
}

func parseExpr(t *testing.T, src string, isCommand func(string) bool) Node {
	t.Helper()
	toks, err := lexer.New([]byte(src)).Tokenize()
	if err != nil {
		t.Fatalf("lex %q: %v", src, err)
	}
	n, err := NewParser(toks, isCommand).ParseStatement()
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return n
}

func evalSrc(t *testing.T, env Env, src string, isCommand func(string) bool) *datum.Datum {
	t.Helper()
	n := parseExpr(t, src, isCommand)
	d, err := Eval(n, env)
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return d
}

func TestArithmeticPrecedence(t *testing.T) {
	env := newTestEnv()
	d := evalSrc(t, env, "2 + 3 * 4", nil)
	if d.Int() != 14 {
		t.Fatalf("got %d, want 14", d.Int())
	}
}

func TestTernaryAndLogical(t *testing.T) {
	env := newTestEnv()
	d := evalSrc(t, env, "1 < 2 && 3 > 1 ? 10 : 20", nil)
	if d.Int() != 10 {
		t.Fatalf("got %d, want 10", d.Int())
	}
}

func TestAssignmentAndVariableRead(t *testing.T) {
	env := newTestEnv()
	env.vars["x"] = datum.NewInt(5)
	_ = evalSrc(t, env, "x += 3", nil)
	if env.vars["x"].Int() != 8 {
		t.Fatalf("x = %d, want 8", env.vars["x"].Int())
	}
}

func TestStringInterpolation(t *testing.T) {
	env := newTestEnv()
	env.vars["n"] = datum.NewInt(41)
	d := evalSrc(t, env, `"count: #{n + 1}"`, nil)
	if d.Str() != "count: 42" {
		t.Fatalf("got %q", d.Str())
	}
}

func TestArrayLiteralAndIndex(t *testing.T) {
	env := newTestEnv()
	d := evalSrc(t, env, "[10, 20, 30][1]", nil)
	if d.Int() != 20 {
		t.Fatalf("got %d, want 20", d.Int())
	}
}

func TestGroupRefAndGlobalVar(t *testing.T) {
	env := newTestEnv()
	env.args[1] = datum.NewStringFrom("hello")
	env.vars["$bufname"] = datum.NewStringFrom("scratch")
	d := evalSrc(t, env, "$1", nil)
	if d.Str() != "hello" {
		t.Fatalf("got %q", d.Str())
	}
	d = evalSrc(t, env, "$bufname", nil)
	if d.Str() != "scratch" {
		t.Fatalf("got %q", d.Str())
	}
}

func TestParenlessCommandCall(t *testing.T) {
	env := newTestEnv()
	env.cmdRet = datum.NewInt(99)
	isCommand := func(name string) bool { return name == "gotoLine" }
	d := evalSrc(t, env, "gotoLine 5, true", isCommand)
	if d.Int() != 99 {
		t.Fatalf("got %d, want 99", d.Int())
	}
	if len(env.calls) != 1 || env.calls[0] != "gotoLine" {
		t.Fatalf("calls = %v", env.calls)
	}
}

func TestFunctionCallWithParens(t *testing.T) {
	env := newTestEnv()
	env.vars["x"] = datum.NewStringFrom("hello")
	env.cmdRet = datum.NewInt(7)
	d := evalSrc(t, env, "substr(x, 0, 1)", nil)
	if d.Int() != 7 {
		t.Fatalf("got %d", d.Int())
	}
	if len(env.calls) != 1 || env.calls[0] != "substr" {
		t.Fatalf("calls = %v", env.calls)
	}
}

func TestRegexMatchOperator(t *testing.T) {
	env := newTestEnv()
	env.vars["s"] = datum.NewStringFrom("hello world")
	d := evalSrc(t, env, `s =~ "wor.d"`, nil)
	if !d.Truthy() {
		t.Fatal("expected match")
	}
	d = evalSrc(t, env, `s !~ "wor.d"`, nil)
	if d.Truthy() {
		t.Fatal("expected !~ to be false when the pattern matches")
	}
}

func TestIncrementDecrement(t *testing.T) {
	env := newTestEnv()
	env.vars["x"] = datum.NewInt(5)
	d := evalSrc(t, env, "++x", nil)
	if d.Int() != 6 || env.vars["x"].Int() != 6 {
		t.Fatalf("got %d, x=%d", d.Int(), env.vars["x"].Int())
	}
}

func TestUnboundIdentFallsBackToZeroArgCall(t *testing.T) {
	env := newTestEnv()
	env.cmdRet = datum.NewStringFrom("ok")
	toks, err := lexer.New([]byte("showVersion")).Tokenize()
	if err != nil {
		t.Fatal(err)
	}
	n, err := NewParser(toks, nil).ParseExpr()
	if err != nil {
		t.Fatal(err)
	}
	d, err := Eval(n, env)
	if err != nil {
		t.Fatal(err)
	}
	if d.Str() != "ok" {
		t.Fatalf("got %q", d.Str())
	}
}

func TestBadRegexOperandErrors(t *testing.T) {
	env := newTestEnv()
	env.vars["s"] = datum.NewStringFrom("x")
	n := parseExpr(t, `s =~ "["`, nil)
	if _, err := Eval(n, env); err == nil {
		t.Fatal("expected an error for a malformed regex operand")
	}
}
