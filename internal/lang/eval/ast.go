// Package eval implements the MScript expression grammar: parsing
// (spec.md §4.7's precedence chain, comma down to primary) and
// evaluation over *datum.Datum values. Grounded on the precedence-
// climbing shape of _examples/tinyrange-rtg's
// std/compiler/parser.go (parseBinaryExpr(minPrec)/precedence()), with
// the operator set itself taken from
// original_source/memacs-9.3.0/src/parse.c's optab.
package eval

import "github.com/mxeditor/mx/internal/lang/lexer"

// Node is one parsed expression tree node.
type Node interface {
	node()
}

// NumberLit, CharLit, BoolLit, NilLit are literal leaves.
type NumberLit struct{ Val int64 }
type CharLit struct{ Val int64 }
type BoolLit struct{ Val bool }
type NilLit struct{}

// StringLit holds the lexer's StrPart list; interpolated parts are
// re-parsed and evaluated lazily at eval time (spec.md §4.7).
type StringLit struct{ Parts []lexer.StrPart }

// Ident is a bare identifier: a variable reference unless the
// evaluator's Env recognizes it as a zero-arg command/macro name.
type Ident struct{ Name string }

// GlobalVar is "$name".
type GlobalVar struct{ Name string }

// GroupRef is "$N": a positional macro argument, $0 the argument
// count, or (in a replace context) a regex capture group.
type GroupRef struct{ N int64 }

// ArrayLit is "[e1, e2, ...]".
type ArrayLit struct{ Elems []Node }

// Unary is a prefix operator: "-", "!", "~", "++", "--", "force", "not".
type Unary struct {
	Op   string
	X    Node
}

// Binary is an infix operator, including the comma and short-circuit
// logical operators (the evaluator, not the parser, implements short-
// circuiting).
type Binary struct {
	Op   string
	X, Y Node
}

// Assign is "lhs op= rhs" for "=", "+=", "-=", "*=", "/=", "%=", "<<=",
// ">>=", "&=", "|=", "^=". Lhs must be an Ident, GlobalVar, or Index.
type Assign struct {
	Op       string
	Lhs, Rhs Node
}

// Ternary is "cond ? then : else".
type Ternary struct{ Cond, Then, Else Node }

// Index is "arr[sub]".
type Index struct{ Arr, Sub Node }

// Call is a function call ("name(args...)") or, when Parenless is
// true, a command/macro invocation parsed at statement level
// ("name arg1, arg2").
type Call struct {
	Name      string
	Args      []Node
	Parenless bool
}

func (NumberLit) node() {}
func (CharLit) node()   {}
func (BoolLit) node()   {}
func (NilLit) node()    {}
func (StringLit) node() {}
func (Ident) node()     {}
func (GlobalVar) node() {}
func (GroupRef) node()  {}
func (ArrayLit) node()  {}
func (Unary) node()     {}
func (Binary) node()    {}
func (Assign) node()    {}
func (Ternary) node()   {}
func (Index) node()     {}
func (Call) node()      {}
