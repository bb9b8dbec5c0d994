// Package lexer tokenizes MScript source text: the macro language
// scripts run from buffers, startup files, and the `-e` command-line
// switch (spec.md §4.7). Grounded on the token-kind/operator-trie
// shape of original_source/memacs-9.3.0/src/parse.c, rendered as a Go
// lexer in the style of _examples/tinyrange-rtg's
// std/compiler/frontend.go Lexer (Token{Kind,Val,Line,Col}, a
// scanIdent/scanNumber/scanString/scanOperator method set).
package lexer

// Kind identifies a token's lexical class.
type Kind int

const (
	EOF Kind = iota
	Ident      // foo, foo? (predicate form keeps the '?' in Val)
	Number     // 123, 0x1F
	Char       // ?c, ?\e
	String     // 'literal' or "interpolated #{expr}"
	GlobalVar  // $name
	GroupRef   // $0, $1, ... (any run of digits)
	Keyword    // one of the reserved words in keywordKinds
	Directive  // !if, !loop, !endmacro, ...
	Op         // operator/punctuation, see Val for which one
	Comment    // # to end of line, or /# ... #/
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "ident"
	case Number:
		return "number"
	case Char:
		return "char"
	case String:
		return "string"
	case GlobalVar:
		return "globalvar"
	case GroupRef:
		return "groupref"
	case Keyword:
		return "keyword"
	case Directive:
		return "directive"
	case Op:
		return "op"
	case Comment:
		return "comment"
	default:
		return "?"
	}
}

// StrPart is one piece of a tokenized string literal: either literal
// text or an interpolated "#{expr}" expression (spec.md §4.7's
// "#{expr} denotes interpolation"). A plain string with no
// interpolation is a single Literal part.
type StrPart struct {
	Literal string
	Expr    string // source text inside "#{...}", when Literal == ""
	IsExpr  bool
}

// Token is one lexical unit.
type Token struct {
	Kind Kind
	Val  string // raw text: identifier name, operator spelling, directive name...
	Num  int64  // for Number and Char
	Str  []StrPart // for String
	Line int
	Col  int
}

func (t Token) String() string {
	if t.Val != "" {
		return t.Kind.String() + "(" + t.Val + ")"
	}
	return t.Kind.String()
}

// keywordKinds is the reserved-word table (ground: parse.c's kwtab,
// binary-searched by name; a Go map serves the same purpose without
// needing the sorted-array/binsearch machinery C requires).
var keywordKinds = map[string]bool{
	"and": true, "break": true, "constrain": true, "defn": true,
	"else": true, "elsif": true, "endif": true, "endloop": true,
	"endmacro": true, "false": true, "for": true, "force": true,
	"if": true, "in": true, "loop": true, "macro": true, "next": true,
	"nil": true, "not": true, "or": true, "return": true, "true": true,
	"until": true, "while": true,
}

// directiveKinds is the set of words valid immediately after a
// leading '!' (ground: exec.c's DIF/DELSE/DELSIF/DENDIF/DWHILE/DUNTIL/
// DLOOP/DBREAK/DNEXT/DENDLOOP/DRETURN/DFORCE/DMACRO/DENDMACRO table).
var directiveKinds = map[string]bool{
	"if": true, "elsif": true, "else": true, "endif": true,
	"while": true, "until": true, "loop": true, "endloop": true,
	"break": true, "next": true, "macro": true, "endmacro": true,
	"return": true, "force": true,
}
