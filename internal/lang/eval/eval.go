package eval

import (
	"fmt"

	"github.com/mxeditor/mx/internal/datum"
	"github.com/mxeditor/mx/internal/lang/lexer"
	"github.com/mxeditor/mx/internal/search"
)

// Env is the host the evaluator calls out to for everything outside
// pure expression arithmetic: variable storage, function/command
// dispatch, and the macro-argument frame a GroupRef reads from. The
// script executor (internal/lang/exec) implements this; the
// evaluator itself holds no state beyond one expression tree.
type Env interface {
	GetVar(name string) (*datum.Datum, bool)
	SetVar(name string, v *datum.Datum) error
	// Arg returns macro argument n ($1..$N), or the argument count for
	// n==0.
	Arg(n int64) (*datum.Datum, bool)
	// Call invokes a function (parenless==false) or a parenless
	// command/macro, returning its result.
	Call(name string, args []*datum.Datum, parenless bool) (*datum.Datum, error)
}

// Eval evaluates n against env.
func Eval(n Node, env Env) (*datum.Datum, error) {
	switch v := n.(type) {
	case constNode:
		return v.d, nil
	case *NumberLit:
		return datum.NewInt(v.Val), nil
	case *CharLit:
		return datum.NewInt(v.Val), nil
	case *BoolLit:
		return datum.NewBool(v.Val), nil
	case *NilLit:
		return datum.Nil, nil
	case *StringLit:
		return evalString(v, env)
	case *Ident:
		if d, ok := env.GetVar(v.Name); ok {
			return d, nil
		}
		// Per spec.md §4.7, a bare identifier that isn't a variable is
		// a zero-argument parenless command/macro call.
		return env.Call(v.Name, nil, true)
	case *GlobalVar:
		if d, ok := env.GetVar("$" + v.Name); ok {
			return d, nil
		}
		return nil, fmt.Errorf("eval: undefined global variable $%s", v.Name)
	case *GroupRef:
		if d, ok := env.Arg(v.N); ok {
			return d, nil
		}
		return nil, fmt.Errorf("eval: argument $%d not available", v.N)
	case *ArrayLit:
		elems := make([]*datum.Datum, len(v.Elems))
		for i, e := range v.Elems {
			d, err := Eval(e, env)
			if err != nil {
				return nil, err
			}
			elems[i] = d
		}
		return datum.NewArray(elems), nil
	case *Unary:
		return evalUnary(v, env)
	case *Binary:
		return evalBinary(v, env)
	case *Assign:
		return evalAssign(v, env)
	case *Ternary:
		c, err := Eval(v.Cond, env)
		if err != nil {
			return nil, err
		}
		if c.Truthy() {
			return Eval(v.Then, env)
		}
		return Eval(v.Else, env)
	case *Index:
		return evalIndex(v, env)
	case *Call:
		args := make([]*datum.Datum, len(v.Args))
		for i, a := range v.Args {
			d, err := Eval(a, env)
			if err != nil {
				return nil, err
			}
			args[i] = d
		}
		return env.Call(v.Name, args, v.Parenless)
	default:
		return nil, fmt.Errorf("eval: unhandled node type %T", n)
	}
}

func evalString(v *StringLit, env Env) (*datum.Datum, error) {
	b := datum.NewBuilder(0)
	for _, part := range v.Parts {
		if !part.IsExpr {
			b.WriteString(part.Literal)
			continue
		}
		toks, err := lexer.New([]byte(part.Expr)).Tokenize()
		if err != nil {
			return nil, fmt.Errorf("eval: interpolation %q: %w", part.Expr, err)
		}
		n, err := NewParser(toks, nil).ParseExpr()
		if err != nil {
			return nil, fmt.Errorf("eval: interpolation %q: %w", part.Expr, err)
		}
		d, err := Eval(n, env)
		if err != nil {
			return nil, err
		}
		b.WriteString(d.Repr())
	}
	return b.Datum(), nil
}

func evalUnary(v *Unary, env Env) (*datum.Datum, error) {
	switch v.Op {
	case "++", "--":
		cur, err := Eval(v.X, env)
		if err != nil {
			return nil, err
		}
		delta := int64(1)
		if v.Op == "--" {
			delta = -1
		}
		result := datum.NewInt(cur.Int() + delta)
		if err := assignTo(v.X, result, env); err != nil {
			return nil, err
		}
		return result, nil
	}
	x, err := Eval(v.X, env)
	if err != nil {
		return nil, err
	}
	switch v.Op {
	case "-":
		return datum.NewInt(-x.Int()), nil
	case "~":
		return datum.NewInt(^x.Int()), nil
	case "!", "not":
		return datum.NewBool(!x.Truthy()), nil
	case "force":
		// !force is the exec package's responsibility (it clears a
		// failing result register); here "force" as a unary expression
		// operator just yields its operand's value unchanged, matching
		// parse.c's treatment of "force" as a no-op at the value level.
		return x, nil
	}
	return nil, fmt.Errorf("eval: unknown unary operator %q", v.Op)
}

func evalBinary(v *Binary, env Env) (*datum.Datum, error) {
	switch v.Op {
	case ",":
		if _, err := Eval(v.X, env); err != nil {
			return nil, err
		}
		return Eval(v.Y, env)
	case "&&":
		x, err := Eval(v.X, env)
		if err != nil {
			return nil, err
		}
		if !x.Truthy() {
			return datum.False, nil
		}
		y, err := Eval(v.Y, env)
		if err != nil {
			return nil, err
		}
		return datum.NewBool(y.Truthy()), nil
	case "||":
		x, err := Eval(v.X, env)
		if err != nil {
			return nil, err
		}
		if x.Truthy() {
			return datum.True, nil
		}
		y, err := Eval(v.Y, env)
		if err != nil {
			return nil, err
		}
		return datum.NewBool(y.Truthy()), nil
	}

	x, err := Eval(v.X, env)
	if err != nil {
		return nil, err
	}
	y, err := Eval(v.Y, env)
	if err != nil {
		return nil, err
	}

	switch v.Op {
	case "==":
		return datum.NewBool(datum.Equal(x, y)), nil
	case "!=":
		return datum.NewBool(!datum.Equal(x, y)), nil
	case "=~", "!~":
		re, err := search.Compile(y.Bytes(), false, false)
		if err != nil {
			return nil, fmt.Errorf("eval: bad regex operand to %s: %w", v.Op, err)
		}
		matched := re.Find(x.Bytes(), 0) != nil
		if v.Op == "!~" {
			matched = !matched
		}
		return datum.NewBool(matched), nil
	case "<":
		return datum.NewBool(compare(x, y) < 0), nil
	case ">":
		return datum.NewBool(compare(x, y) > 0), nil
	case "<=":
		return datum.NewBool(compare(x, y) <= 0), nil
	case ">=":
		return datum.NewBool(compare(x, y) >= 0), nil
	case "+":
		if x.Kind() == datum.KindString || y.Kind() == datum.KindString {
			return datum.NewStringFrom(x.Repr() + y.Repr()), nil
		}
		return datum.NewInt(x.Int() + y.Int()), nil
	case "-":
		return datum.NewInt(x.Int() - y.Int()), nil
	case "*":
		return datum.NewInt(x.Int() * y.Int()), nil
	case "/":
		if y.Int() == 0 {
			return nil, fmt.Errorf("eval: division by zero")
		}
		return datum.NewInt(x.Int() / y.Int()), nil
	case "%":
		if y.Int() == 0 {
			return nil, fmt.Errorf("eval: division by zero")
		}
		return datum.NewInt(x.Int() % y.Int()), nil
	case "<<":
		return datum.NewInt(x.Int() << uint(y.Int())), nil
	case ">>":
		return datum.NewInt(x.Int() >> uint(y.Int())), nil
	case "&":
		return datum.NewInt(x.Int() & y.Int()), nil
	case "|":
		return datum.NewInt(x.Int() | y.Int()), nil
	case "^":
		return datum.NewInt(x.Int() ^ y.Int()), nil
	}
	return nil, fmt.Errorf("eval: unknown binary operator %q", v.Op)
}

// compare orders two Datums for relational operators: numerically if
// both are integers (KindInt), lexicographically on their Repr strings
// otherwise; no coercion from string to integer is attempted.
func compare(x, y *datum.Datum) int {
	if x.Kind() == datum.KindInt && y.Kind() == datum.KindInt {
		a, b := x.Int(), y.Int()
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
	a, b := x.Repr(), y.Repr()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func evalAssign(v *Assign, env Env) (*datum.Datum, error) {
	rhs, err := Eval(v.Rhs, env)
	if err != nil {
		return nil, err
	}
	result := rhs
	if v.Op != "=" {
		cur, err := Eval(v.Lhs, env)
		if err != nil {
			return nil, err
		}
		op := v.Op[:len(v.Op)-1] // strip trailing '='
		result, err = evalBinary(&Binary{Op: op, X: constNode{cur}, Y: constNode{rhs}}, env)
		if err != nil {
			return nil, err
		}
	}
	if err := assignTo(v.Lhs, result, env); err != nil {
		return nil, err
	}
	return result, nil
}

// constNode wraps an already-evaluated Datum so it can be replayed
// through evalBinary's normal Eval(...) calls for compound assignment
// (e.g. "x += 1" evaluates "x" once, not twice).
type constNode struct{ d *datum.Datum }

func (constNode) node() {}

func assignTo(target Node, v *datum.Datum, env Env) error {
	switch t := target.(type) {
	case *Ident:
		return env.SetVar(t.Name, v)
	case *GlobalVar:
		return env.SetVar("$"+t.Name, v)
	case *Index:
		return assignIndex(t, v, env)
	default:
		return fmt.Errorf("eval: invalid assignment target %T", target)
	}
}

func evalIndex(v *Index, env Env) (*datum.Datum, error) {
	arr, err := Eval(v.Arr, env)
	if err != nil {
		return nil, err
	}
	sub, err := Eval(v.Sub, env)
	if err != nil {
		return nil, err
	}
	elems := arr.Array()
	i := sub.Int()
	if i < 0 || i >= int64(len(elems)) {
		return nil, fmt.Errorf("eval: array index %d out of range (len %d)", i, len(elems))
	}
	return elems[i], nil
}

func assignIndex(t *Index, v *datum.Datum, env Env) error {
	arr, err := Eval(t.Arr, env)
	if err != nil {
		return err
	}
	sub, err := Eval(t.Sub, env)
	if err != nil {
		return err
	}
	elems := arr.Array()
	i := sub.Int()
	if i < 0 || i >= int64(len(elems)) {
		return fmt.Errorf("eval: array index %d out of range (len %d)", i, len(elems))
	}
	elems[i] = v
	return nil
}
