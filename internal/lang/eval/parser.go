package eval

import (
	"fmt"

	"github.com/mxeditor/mx/internal/lang/lexer"
)

// Parser builds an expression tree from a single statement's token
// slice (the exec package hands it one buffer-line's worth of tokens
// at a time, mirroring the original's per-line statement execution —
// spec.md §4.7: "Statements outside any directive are parsed as
// expressions and executed for side-effect and result").
type Parser struct {
	toks []lexer.Token
	pos  int

	// isCommand reports whether name is a known command, alias, or
	// macro name, enabling the parenless-call grammar at statement
	// level (ground: exec.c's run()/fabsearch() symbol-table lookup
	// made *during* parsing, not inferred from syntax alone). nil
	// disables parenless calls, e.g. when parsing a nested directive
	// condition or a function argument.
	isCommand func(name string) bool
}

// NewParser returns a Parser over toks (normally excluding the
// trailing lexer.EOF token; ParseStatement treats running out of
// tokens the same as reaching one).
func NewParser(toks []lexer.Token, isCommand func(string) bool) *Parser {
	return &Parser{toks: toks, isCommand: isCommand}
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.toks) {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) at(off int) lexer.Token {
	i := p.pos + off
	if i >= len(p.toks) {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.toks[i]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) atEnd() bool { return p.cur().Kind == lexer.EOF }

func (p *Parser) isOp(s string) bool {
	t := p.cur()
	return t.Kind == lexer.Op && t.Val == s
}

func (p *Parser) isKeyword(s string) bool {
	t := p.cur()
	return t.Kind == lexer.Keyword && t.Val == s
}

func (p *Parser) expectOp(s string) error {
	if !p.isOp(s) {
		return fmt.Errorf("eval: expected %q, got %v at %d:%d", s, p.cur(), p.cur().Line, p.cur().Col)
	}
	p.advance()
	return nil
}

// ParseStatement parses one top-level statement: a parenless
// command/macro call if the leading identifier names one (and isn't
// immediately applied with parens, which is always a function call),
// otherwise a full comma expression.
func (p *Parser) ParseStatement() (Node, error) {
	if p.isCommand != nil && p.cur().Kind == lexer.Ident && !isOpenParen(p.at(1)) {
		name := p.cur().Val
		if p.isCommand(name) {
			p.advance()
			var args []Node
			for !p.atEnd() {
				arg, err := p.parseAssign()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.isOp(",") {
					p.advance()
					continue
				}
				break
			}
			if !p.atEnd() {
				return nil, fmt.Errorf("eval: unexpected %v after command arguments", p.cur())
			}
			return &Call{Name: name, Args: args, Parenless: true}, nil
		}
	}
	return p.ParseExpr()
}

func isOpenParen(tok lexer.Token) bool { return tok.Kind == lexer.Op && tok.Val == "(" }

// ParseExpr parses a full comma expression and requires every token
// be consumed.
func (p *Parser) ParseExpr() (Node, error) {
	n, err := p.parseComma()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, fmt.Errorf("eval: unexpected trailing %v", p.cur())
	}
	return n, nil
}

func (p *Parser) parseComma() (Node, error) {
	left, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	for p.isOp(",") {
		p.advance()
		right, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: ",", X: left, Y: right}
	}
	return left, nil
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"<<=": true, ">>=": true, "&=": true, "|=": true, "^=": true,
}

func (p *Parser) parseAssign() (Node, error) {
	left, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind == lexer.Op && assignOps[p.cur().Val] {
		op := p.advance().Val
		rhs, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return &Assign{Op: op, Lhs: left, Rhs: rhs}, nil
	}
	return left, nil
}

func (p *Parser) parseTernary() (Node, error) {
	cond, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if p.isOp("?") {
		p.advance()
		then, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(":"); err != nil {
			return nil, err
		}
		els, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return &Ternary{Cond: cond, Then: then, Else: els}, nil
	}
	return cond, nil
}

func (p *Parser) parseLogicalOr() (Node, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.isOp("||") || p.isKeyword("or") {
		p.advance()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: "||", X: left, Y: right}
	}
	return left, nil
}

func (p *Parser) parseLogicalAnd() (Node, error) {
	left, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	for p.isOp("&&") || p.isKeyword("and") {
		p.advance()
		right, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: "&&", X: left, Y: right}
	}
	return left, nil
}

func (p *Parser) parseBitOr() (Node, error) {
	left, err := p.parseBitXorAnd()
	if err != nil {
		return nil, err
	}
	for p.isOp("|") {
		p.advance()
		right, err := p.parseBitXorAnd()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: "|", X: left, Y: right}
	}
	return left, nil
}

func (p *Parser) parseBitXorAnd() (Node, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.isOp("^") || p.isOp("&") {
		op := p.advance().Val
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, X: left, Y: right}
	}
	return left, nil
}

var equalityOps = map[string]bool{"==": true, "!=": true, "=~": true, "!~": true}

func (p *Parser) parseEquality() (Node, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == lexer.Op && equalityOps[p.cur().Val] {
		op := p.advance().Val
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, X: left, Y: right}
	}
	return left, nil
}

var relOps = map[string]bool{"<": true, ">": true, "<=": true, ">=": true}

func (p *Parser) parseRelational() (Node, error) {
	left, err := p.parseShift()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == lexer.Op && relOps[p.cur().Val] {
		op := p.advance().Val
		right, err := p.parseShift()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, X: left, Y: right}
	}
	return left, nil
}

func (p *Parser) parseShift() (Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.isOp("<<") || p.isOp(">>") {
		op := p.advance().Val
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, X: left, Y: right}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.isOp("+") || p.isOp("-") {
		op := p.advance().Val
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, X: left, Y: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isOp("*") || p.isOp("/") || p.isOp("%") {
		op := p.advance().Val
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, X: left, Y: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Node, error) {
	t := p.cur()
	if (t.Kind == lexer.Op && (t.Val == "-" || t.Val == "!" || t.Val == "~" || t.Val == "++" || t.Val == "--")) ||
		(t.Kind == lexer.Keyword && (t.Val == "force" || t.Val == "not")) {
		op := p.advance().Val
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, X: x}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (Node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.isOp("[") {
		p.advance()
		sub, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp("]"); err != nil {
			return nil, err
		}
		n = &Index{Arr: n, Sub: sub}
	}
	return n, nil
}

func (p *Parser) parsePrimary() (Node, error) {
	t := p.cur()
	switch t.Kind {
	case lexer.Number:
		p.advance()
		return &NumberLit{Val: t.Num}, nil
	case lexer.Char:
		p.advance()
		return &CharLit{Val: t.Num}, nil
	case lexer.String:
		p.advance()
		return &StringLit{Parts: t.Str}, nil
	case lexer.GlobalVar:
		p.advance()
		return &GlobalVar{Name: t.Val}, nil
	case lexer.GroupRef:
		p.advance()
		return &GroupRef{N: t.Num}, nil
	case lexer.Keyword:
		switch t.Val {
		case "true":
			p.advance()
			return &BoolLit{Val: true}, nil
		case "false":
			p.advance()
			return &BoolLit{Val: false}, nil
		case "nil":
			p.advance()
			return &NilLit{}, nil
		}
		return nil, fmt.Errorf("eval: unexpected keyword %q at %d:%d", t.Val, t.Line, t.Col)
	case lexer.Ident:
		p.advance()
		if p.isOp("(") {
			p.advance()
			var args []Node
			for !p.isOp(")") {
				arg, err := p.parseAssign()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.isOp(",") {
					p.advance()
					continue
				}
				break
			}
			if err := p.expectOp(")"); err != nil {
				return nil, err
			}
			return &Call{Name: t.Val, Args: args}, nil
		}
		return &Ident{Name: t.Val}, nil
	case lexer.Op:
		switch t.Val {
		case "(":
			p.advance()
			n, err := p.parseComma()
			if err != nil {
				return nil, err
			}
			if err := p.expectOp(")"); err != nil {
				return nil, err
			}
			return n, nil
		case "[":
			p.advance()
			var elems []Node
			for !p.isOp("]") {
				e, err := p.parseAssign()
				if err != nil {
					return nil, err
				}
				elems = append(elems, e)
				if p.isOp(",") {
					p.advance()
					continue
				}
				break
			}
			if err := p.expectOp("]"); err != nil {
				return nil, err
			}
			return &ArrayLit{Elems: elems}, nil
		}
	}
	return nil, fmt.Errorf("eval: unexpected token %v at %d:%d", t, t.Line, t.Col)
}
