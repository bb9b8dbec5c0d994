package lexer

import (
	"fmt"
	"strconv"
)

// escapes maps a backslash escape's second character to its byte value
// (ground: parse.c's stoescape()/character-literal escape table).
var escapes = map[byte]byte{
	'e': 0x1b, 'n': '\n', 't': '\t', 'r': '\r', 'b': '\b',
	'0': 0, '\\': '\\', '\'': '\'', '"': '"', '?': '?',
}

// operators lists every multi-character operator before its
// single-character prefix, so a straightforward longest-match scan
// (checking 3, then 2, then 1 characters) reproduces the effect of
// parse.c's optab character trie without needing the trie itself.
var operators3 = []string{"<<=", ">>="}
var operators2 = []string{
	"!=", "!~", "%=", "&&", "&=", "*=", "++", "+=", "--", "-=",
	"/=", "<<", "<=", "==", "=>", "=~", ">=", ">>", "^=", "||", "|=",
}
var operators1 = "!%&()*+,-/:<=>?[]^{}|~;"

// Lexer tokenizes a byte slice of MScript source.
type Lexer struct {
	src   []byte
	pos   int
	line  int
	col   int
	atBOL bool // true when the next token would start a fresh line
}

// New returns a Lexer positioned at the start of src.
func New(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1, atBOL: true}
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

// peekWord returns the run of alphanumeric bytes starting at pos+off,
// without advancing, for deciding whether a leading '!' opens a known
// directive before committing to scan it as one.
func (l *Lexer) peekWord(off int) string {
	start := l.pos + off
	end := start
	for end < len(l.src) && isAlnum(l.src[end]) {
		end++
	}
	if start >= len(l.src) {
		return ""
	}
	return string(l.src[start:end])
}

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool  { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isAlnum(c byte) bool  { return isAlpha(c) || isDigit(c) }
func isHexDig(c byte) bool { return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }

// Tokenize scans the entire source and returns its token stream,
// terminated by a single EOF token. On a lexical error it returns the
// tokens scanned so far and a non-nil error describing the offending
// position.
func (l *Lexer) Tokenize() ([]Token, error) {
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return toks, err
		}
		if tok.Kind == Comment {
			continue
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			break
		}
	}
	return toks, nil
}

func (l *Lexer) skipBlankAndComments() error {
	for l.pos < len(l.src) {
		c := l.peekByte()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			if c == '\n' {
				l.atBOL = true
			}
			l.advance()
		case c == '#':
			for l.pos < len(l.src) && l.peekByte() != '\n' {
				l.advance()
			}
		case c == '/' && l.peekAt(1) == '#':
			if err := l.skipNestableComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// skipNestableComment consumes a "/# ... #/" block, allowing nested
// occurrences of the same delimiter pair (spec.md §4.7: "in-line
// comment /# ... #/ (nestable within an outer expression terminator)").
func (l *Lexer) skipNestableComment() error {
	startLine, startCol := l.line, l.col
	l.advance() // '/'
	l.advance() // '#'
	depth := 1
	for depth > 0 {
		if l.pos >= len(l.src) {
			return fmt.Errorf("lexer: unterminated /# comment starting at %d:%d", startLine, startCol)
		}
		if l.peekByte() == '/' && l.peekAt(1) == '#' {
			l.advance()
			l.advance()
			depth++
			continue
		}
		if l.peekByte() == '#' && l.peekAt(1) == '/' {
			l.advance()
			l.advance()
			depth--
			continue
		}
		l.advance()
	}
	return nil
}

func (l *Lexer) next() (Token, error) {
	if err := l.skipBlankAndComments(); err != nil {
		return Token{}, err
	}
	line, col := l.line, l.col
	if l.pos >= len(l.src) {
		return Token{Kind: EOF, Line: line, Col: col}, nil
	}
	// Only the first token of a logical line can open a directive: mid-
	// line "!" (e.g. the "!x" in "if !x and y") is always the logical-
	// not operator (ground: exec.c's finddir(), consulted only while
	// scanning a fresh buffer line, never mid-expression).
	atLineStart := l.atBOL
	l.atBOL = false

	c := l.peekByte()
	switch {
	case isAlpha(c):
		return l.scanIdent(line, col), nil
	case isDigit(c):
		return l.scanNumber(line, col)
	case c == '!' && atLineStart && directiveKinds[l.peekWord(1)]:
		return l.scanDirective(line, col)
	case c == '?':
		return l.scanChar(line, col)
	case c == '\'' || c == '"':
		return l.scanString(line, col)
	case c == '$':
		return l.scanDollar(line, col)
	default:
		return l.scanOperator(line, col)
	}
}

func (l *Lexer) scanIdent(line, col int) Token {
	start := l.pos
	for l.pos < len(l.src) && isAlnum(l.peekByte()) {
		l.advance()
	}
	if l.peekByte() == '?' {
		l.advance()
	}
	name := string(l.src[start:l.pos])
	kind := Ident
	if keywordKinds[trimPredicate(name)] {
		kind = Keyword
	}
	return Token{Kind: kind, Val: name, Line: line, Col: col}
}

func trimPredicate(name string) string {
	if len(name) > 0 && name[len(name)-1] == '?' {
		return name[:len(name)-1]
	}
	return name
}

func (l *Lexer) scanDirective(line, col int) (Token, error) {
	l.advance() // '!'
	start := l.pos
	for l.pos < len(l.src) && isAlnum(l.peekByte()) {
		l.advance()
	}
	name := string(l.src[start:l.pos])
	if !directiveKinds[name] {
		return Token{}, fmt.Errorf("lexer: unrecognized directive '!%s' at %d:%d", name, line, col)
	}
	return Token{Kind: Directive, Val: name, Line: line, Col: col}, nil
}

func (l *Lexer) scanNumber(line, col int) (Token, error) {
	start := l.pos
	if l.peekByte() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		l.advance()
		l.advance()
		for l.pos < len(l.src) && isHexDig(l.peekByte()) {
			l.advance()
		}
		text := string(l.src[start:l.pos])
		n, err := strconv.ParseInt(text[2:], 16, 64)
		if err != nil {
			return Token{}, fmt.Errorf("lexer: bad hex literal %q at %d:%d", text, line, col)
		}
		return Token{Kind: Number, Val: text, Num: n, Line: line, Col: col}, nil
	}
	for l.pos < len(l.src) && isDigit(l.peekByte()) {
		l.advance()
	}
	text := string(l.src[start:l.pos])
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{}, fmt.Errorf("lexer: bad numeric literal %q at %d:%d", text, line, col)
	}
	return Token{Kind: Number, Val: text, Num: n, Line: line, Col: col}, nil
}

// scanChar handles a "?c" or "?\e" character literal.
func (l *Lexer) scanChar(line, col int) (Token, error) {
	l.advance() // '?'
	if l.pos >= len(l.src) {
		return Token{}, fmt.Errorf("lexer: dangling '?' character literal at %d:%d", line, col)
	}
	c := l.advance()
	if c == '\\' {
		if l.pos >= len(l.src) {
			return Token{}, fmt.Errorf("lexer: dangling escape in character literal at %d:%d", line, col)
		}
		e := l.advance()
		v, ok := escapes[e]
		if !ok {
			return Token{}, fmt.Errorf("lexer: unknown escape '\\%c' at %d:%d", e, line, col)
		}
		return Token{Kind: Char, Val: string([]byte{'\\', e}), Num: int64(v), Line: line, Col: col}, nil
	}
	return Token{Kind: Char, Val: string(c), Num: int64(c), Line: line, Col: col}, nil
}

// scanString handles 'literal' and "interpolated #{expr}" strings,
// splitting the latter into StrPart segments (spec.md §4.7: "the
// lexer scans through balanced {} and nested '...' within #{...}").
func (l *Lexer) scanString(line, col int) (Token, error) {
	quote := l.advance()
	interpolate := quote == '"'
	var parts []StrPart
	var lit []byte
	flush := func() {
		if len(lit) > 0 {
			parts = append(parts, StrPart{Literal: string(lit)})
			lit = nil
		}
	}
	for {
		if l.pos >= len(l.src) {
			return Token{}, fmt.Errorf("lexer: unterminated string starting at %d:%d", line, col)
		}
		c := l.peekByte()
		if c == quote {
			l.advance()
			break
		}
		if c == '\\' {
			l.advance()
			if l.pos >= len(l.src) {
				return Token{}, fmt.Errorf("lexer: dangling escape in string at %d:%d", line, col)
			}
			e := l.advance()
			if v, ok := escapes[e]; ok {
				lit = append(lit, v)
			} else {
				lit = append(lit, e)
			}
			continue
		}
		if interpolate && c == '#' && l.peekAt(1) == '{' {
			flush()
			l.advance()
			l.advance()
			expr, err := l.scanInterpBody(line, col)
			if err != nil {
				return Token{}, err
			}
			parts = append(parts, StrPart{Expr: expr, IsExpr: true})
			continue
		}
		lit = append(lit, l.advance())
	}
	flush()
	return Token{Kind: String, Str: parts, Line: line, Col: col}, nil
}

// scanInterpBody consumes the contents of "#{...}", tracking brace
// depth and skipping over nested '...' quoted runs so a '}' inside a
// nested string literal doesn't end the interpolation early.
func (l *Lexer) scanInterpBody(line, col int) (string, error) {
	start := l.pos
	depth := 1
	for {
		if l.pos >= len(l.src) {
			return "", fmt.Errorf("lexer: unterminated #{ interpolation at %d:%d", line, col)
		}
		c := l.peekByte()
		if c == '}' {
			depth--
			if depth == 0 {
				break
			}
			l.advance()
			continue
		}
		switch c {
		case '{':
			depth++
			l.advance()
		case '\'':
			l.advance()
			for l.pos < len(l.src) && l.peekByte() != '\'' {
				if l.peekByte() == '\\' {
					l.advance()
				}
				l.advance()
			}
			if l.pos < len(l.src) {
				l.advance()
			}
		default:
			l.advance()
		}
	}
	body := string(l.src[start:l.pos])
	l.advance() // closing '}'
	return body, nil
}

// scanDollar handles $name globals and $N group/argument references.
func (l *Lexer) scanDollar(line, col int) (Token, error) {
	l.advance() // '$'
	if isDigit(l.peekByte()) {
		start := l.pos
		for l.pos < len(l.src) && isDigit(l.peekByte()) {
			l.advance()
		}
		text := string(l.src[start:l.pos])
		n, _ := strconv.ParseInt(text, 10, 64)
		return Token{Kind: GroupRef, Val: text, Num: n, Line: line, Col: col}, nil
	}
	start := l.pos
	for l.pos < len(l.src) && isAlnum(l.peekByte()) {
		l.advance()
	}
	if l.pos == start {
		return Token{}, fmt.Errorf("lexer: dangling '$' at %d:%d", line, col)
	}
	return Token{Kind: GlobalVar, Val: string(l.src[start:l.pos]), Line: line, Col: col}, nil
}

func (l *Lexer) scanOperator(line, col int) (Token, error) {
	rest := l.src[l.pos:]
	for _, op := range operators3 {
		if hasPrefix(rest, op) {
			for range op {
				l.advance()
			}
			return Token{Kind: Op, Val: op, Line: line, Col: col}, nil
		}
	}
	for _, op := range operators2 {
		if hasPrefix(rest, op) {
			for range op {
				l.advance()
			}
			return Token{Kind: Op, Val: op, Line: line, Col: col}, nil
		}
	}
	c := l.peekByte()
	for i := 0; i < len(operators1); i++ {
		if operators1[i] == c {
			l.advance()
			return Token{Kind: Op, Val: string(c), Line: line, Col: col}, nil
		}
	}
	return Token{}, fmt.Errorf("lexer: unrecognized character %q at %d:%d", c, line, col)
}

func hasPrefix(b []byte, s string) bool {
	if len(b) < len(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if b[i] != s[i] {
			return false
		}
	}
	return true
}
