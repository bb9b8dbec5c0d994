package lexer

import "testing"

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := New([]byte(src)).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", src, err)
	}
	return toks
}

func TestIdentAndKeyword(t *testing.T) {
	toks := tokenize(t, "foo bar? if")
	want := []struct {
		kind Kind
		val  string
	}{
		{Ident, "foo"}, {Ident, "bar?"}, {Keyword, "if"}, {EOF, ""},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Val != w.val {
			t.Errorf("token[%d] = %v, want {%v %q}", i, toks[i], w.kind, w.val)
		}
	}
}

func TestNumericLiterals(t *testing.T) {
	toks := tokenize(t, "42 0x1F")
	if toks[0].Kind != Number || toks[0].Num != 42 {
		t.Fatalf("token[0] = %v, want Number 42", toks[0])
	}
	if toks[1].Kind != Number || toks[1].Num != 31 {
		t.Fatalf("token[1] = %v, want Number 31", toks[1])
	}
}

func TestCharLiteral(t *testing.T) {
	toks := tokenize(t, `?a ?\e`)
	if toks[0].Kind != Char || toks[0].Num != int64('a') {
		t.Fatalf("token[0] = %v, want Char 'a'", toks[0])
	}
	if toks[1].Kind != Char || toks[1].Num != 0x1b {
		t.Fatalf("token[1] = %v, want Char ESC", toks[1])
	}
}

func TestPlainString(t *testing.T) {
	toks := tokenize(t, `'hello world'`)
	if toks[0].Kind != String || len(toks[0].Str) != 1 || toks[0].Str[0].Literal != "hello world" {
		t.Fatalf("token[0] = %+v", toks[0])
	}
}

func TestInterpolatedString(t *testing.T) {
	toks := tokenize(t, `"count: #{n + 1} done"`)
	tok := toks[0]
	if tok.Kind != String {
		t.Fatalf("kind = %v, want String", tok.Kind)
	}
	if len(tok.Str) != 3 {
		t.Fatalf("parts = %+v, want 3", tok.Str)
	}
	if tok.Str[0].Literal != "count: " || !tok.Str[1].IsExpr || tok.Str[1].Expr != "n + 1" || tok.Str[2].Literal != " done" {
		t.Fatalf("parts = %+v", tok.Str)
	}
}

func TestNestedQuoteInsideInterpolation(t *testing.T) {
	toks := tokenize(t, `"x=#{f('a}b')}"`)
	tok := toks[0]
	if len(tok.Str) != 2 || tok.Str[0].Literal != "x=" || !tok.Str[1].IsExpr {
		t.Fatalf("parts = %+v, expected literal \"x=\" then one expr part (the '}' inside 'a}b' must not end it)", tok.Str)
	}
	if tok.Str[1].Expr != "f('a}b')" {
		t.Fatalf("expr = %q", tok.Str[1].Expr)
	}
}

func TestGlobalVarAndGroupRef(t *testing.T) {
	toks := tokenize(t, "$bufname $1 $0")
	if toks[0].Kind != GlobalVar || toks[0].Val != "bufname" {
		t.Fatalf("token[0] = %v", toks[0])
	}
	if toks[1].Kind != GroupRef || toks[1].Num != 1 {
		t.Fatalf("token[1] = %v", toks[1])
	}
	if toks[2].Kind != GroupRef || toks[2].Num != 0 {
		t.Fatalf("token[2] = %v", toks[2])
	}
}

func TestDirective(t *testing.T) {
	toks := tokenize(t, "!if\n!endloop")
	if toks[0].Kind != Directive || toks[0].Val != "if" {
		t.Fatalf("token[0] = %v", toks[0])
	}
	if toks[1].Kind != Directive || toks[1].Val != "endloop" {
		t.Fatalf("token[1] = %v", toks[1])
	}
}

func TestLogicalNotMidLineIsNotADirective(t *testing.T) {
	toks := tokenize(t, "if !x and y")
	if toks[0].Kind != Keyword || toks[0].Val != "if" {
		t.Fatalf("token[0] = %v", toks[0])
	}
	if toks[1].Kind != Op || toks[1].Val != "!" {
		t.Fatalf("token[1] = %v, want Op '!'", toks[1])
	}
	if toks[2].Kind != Ident || toks[2].Val != "x" {
		t.Fatalf("token[2] = %v, want Ident x", toks[2])
	}
}

func TestLeadingNotOnUnknownWordIsNotADirective(t *testing.T) {
	toks := tokenize(t, "!bogus")
	if toks[0].Kind != Op || toks[0].Val != "!" {
		t.Fatalf("token[0] = %v, want Op '!' ('bogus' isn't a directive, so this is plain negation)", toks[0])
	}
	if toks[1].Kind != Ident || toks[1].Val != "bogus" {
		t.Fatalf("token[1] = %v", toks[1])
	}
}

func TestOperators(t *testing.T) {
	toks := tokenize(t, "<<= != + ++ =>")
	want := []string{"<<=", "!=", "+", "++", "=>"}
	for i, w := range want {
		if toks[i].Kind != Op || toks[i].Val != w {
			t.Fatalf("token[%d] = %v, want Op %q", i, toks[i], w)
		}
	}
}

func TestCommentsSkipped(t *testing.T) {
	toks := tokenize(t, "a # trailing comment\nb /# nested /# block #/ still #/ c")
	var vals []string
	for _, tok := range toks {
		if tok.Kind != EOF {
			vals = append(vals, tok.Val)
		}
	}
	want := []string{"a", "b", "c"}
	if len(vals) != len(want) {
		t.Fatalf("vals = %v, want %v", vals, want)
	}
	for i := range want {
		if vals[i] != want[i] {
			t.Fatalf("vals[%d] = %q, want %q", i, vals[i], want[i])
		}
	}
}
