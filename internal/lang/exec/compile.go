package exec

import (
	"fmt"
	"strings"

	"github.com/mxeditor/mx/internal/buffer"
	"github.com/mxeditor/mx/internal/lang/eval"
	"github.com/mxeditor/mx/internal/lang/lexer"
)

// lineRec is one buffer line's worth of pre-tokenized source: either a
// directive (the leading `!word`, with the remaining tokens as Rest)
// or a plain statement (Tokens holds the whole line).
type lineRec struct {
	isDirective bool
	directive   string
	rest        []lexer.Token // tokens after the directive keyword
	tokens      []lexer.Token // whole line, for non-directive lines
}

// tokenizeBuffer scans every line of buf into a lineRec, stripping the
// lexer's trailing EOF marker from each line's token slice.
func tokenizeBuffer(buf *buffer.Buffer) ([]lineRec, error) {
	var recs []lineRec
	n := 0
	for l := buf.FirstLine(); l != nil; l = l.Next() {
		n++
		toks, err := lexer.New(l.Bytes()).Tokenize()
		if err != nil {
			return nil, fmt.Errorf("exec: line %d: %w", n, err)
		}
		if len(toks) > 0 && toks[len(toks)-1].Kind == lexer.EOF {
			toks = toks[:len(toks)-1]
		}
		rec := lineRec{}
		if len(toks) > 0 && toks[0].Kind == lexer.Directive {
			rec.isDirective = true
			rec.directive = toks[0].Val
			rec.rest = toks[1:]
		} else {
			rec.tokens = toks
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// tokenizeStatement tokenizes one statement's worth of raw source text
// (the -e command-line switch, a single REPL-style eval) into a single
// lineRec, reusing the same directive/plain split as a buffer line.
func tokenizeStatement(src string) (lineRec, error) {
	toks, err := lexer.New([]byte(src)).Tokenize()
	if err != nil {
		return lineRec{}, err
	}
	if len(toks) > 0 && toks[len(toks)-1].Kind == lexer.EOF {
		toks = toks[:len(toks)-1]
	}
	if len(toks) > 0 && toks[0].Kind == lexer.Directive {
		return lineRec{isDirective: true, directive: toks[0].Val, rest: toks[1:]}, nil
	}
	return lineRec{tokens: toks}, nil
}

// compiler walks a flat lineRec stream and builds the nested Block/
// IfStmt/LoopStmt tree, the way a recursive-descent parser builds an
// AST from a token stream rather than exec.c's single flat pass with a
// side table of jump targets (spec.md §9 design note).
type compiler struct {
	lines     []lineRec
	pos       int
	isCommand func(string) bool
}

func (c *compiler) cur() (lineRec, bool) {
	if c.pos >= len(c.lines) {
		return lineRec{}, false
	}
	return c.lines[c.pos], true
}

// Compile parses a fully tokenized line stream into a Program: bare
// statements and directives become Top, and `!macro` definitions are
// extracted into Macros rather than executed inline (spec.md §4.7:
// macros are compiled once and invoked by name, never run as part of
// the enclosing block's straight-line flow).
func Compile(lines []lineRec, isCommand func(string) bool) (*Program, error) {
	c := &compiler{lines: lines, isCommand: isCommand}
	prog := &Program{Macros: make(map[string]*MacroDef)}
	for {
		l, ok := c.cur()
		if !ok {
			break
		}
		if l.isDirective && l.directive == "macro" {
			md, err := c.parseMacroDef()
			if err != nil {
				return nil, err
			}
			prog.Macros[md.Name] = md
			continue
		}
		blk, stop, err := c.parseBlock()
		prog.Top = append(prog.Top, blk...)
		if err != nil {
			return nil, err
		}
		if stop != "" && stop != "macro" {
			return nil, fmt.Errorf("exec: unexpected !%s with no matching opener", stop)
		}
	}
	return prog, nil
}

// CompileBuffer compiles buf's lines into a Program, caching the
// result on the buffer (spec.md §3/§4.7: "On first execution of a
// macro buffer, one pass builds ... On success the list is attached to
// the buffer and a preprocessed flag set; subsequent executions skip
// compile"). Non-macro buffers (plain scripts) are always recompiled,
// since only true macro buffers carry the MacroExt cache slot.
func CompileBuffer(buf *buffer.Buffer, isCommand func(string) bool) (*Program, error) {
	if buf.Macro != nil && buf.Flags&buffer.FlPreprocessed != 0 {
		if prog, ok := buf.Macro.Blocks.(*Program); ok {
			return prog, nil
		}
	}
	lines, err := tokenizeBuffer(buf)
	if err != nil {
		return nil, err
	}
	prog, err := Compile(lines, isCommand)
	if err != nil {
		return nil, err
	}
	if buf.Macro != nil {
		buf.Macro.Blocks = prog
		buf.Flags |= buffer.FlPreprocessed
	}
	return prog, nil
}

// CompileStatement compiles one piece of raw source (a `-e` argument,
// a `!force`-wrapped one-liner typed at a prompt) into a single-element
// Block ready for Executor.RunBlock.
func CompileStatement(src string, isCommand func(string) bool) (Block, error) {
	rec, err := tokenizeStatement(src)
	if err != nil {
		return nil, err
	}
	c := &compiler{lines: []lineRec{rec}, isCommand: isCommand}
	blk, stop, err := c.parseBlock()
	if err != nil {
		return nil, err
	}
	if stop != "" {
		return nil, fmt.Errorf("exec: unexpected !%s with no matching opener", stop)
	}
	return blk, nil
}

// stopSet is a small fixed membership test for the directive names
// that end the block currently being parsed (e.g. parsing an !if's
// Then arm stops at !elsif, !else, or !endif).
type stopSet map[string]bool

// parseBlock parses statements until EOF, or until it meets a
// directive in stop (which it does NOT consume — the caller decides
// what that directive means), returning which one stopped it ("" at
// EOF).
func (c *compiler) parseBlock(stop ...string) (Block, string, error) {
	stops := stopSet{}
	for _, s := range stop {
		stops[s] = true
	}
	var blk Block
	for {
		l, ok := c.cur()
		if !ok {
			if len(stops) > 0 {
				return blk, "", fmt.Errorf("exec: unexpected end of script, expected one of %v", stop)
			}
			return blk, "", nil
		}
		if l.isDirective && stops[l.directive] {
			return blk, l.directive, nil
		}
		if l.isDirective && l.directive == "macro" && len(stops) == 0 {
			return blk, "macro", nil
		}
		if !l.isDirective {
			c.pos++
			if len(l.tokens) == 0 {
				continue
			}
			n, err := eval.NewParser(l.tokens, c.isCommand).ParseStatement()
			if err != nil {
				return nil, "", err
			}
			blk = append(blk, &ExprStmt{Expr: n})
			continue
		}
		switch l.directive {
		case "if":
			st, err := c.parseIf()
			if err != nil {
				return nil, "", err
			}
			blk = append(blk, st)
		case "while", "until", "loop":
			st, err := c.parseLoop(l.directive)
			if err != nil {
				return nil, "", err
			}
			blk = append(blk, st)
		case "break":
			c.pos++
			level := 1
			if len(l.rest) == 1 && l.rest[0].Kind == lexer.Number {
				level = int(l.rest[0].Num)
			} else if len(l.rest) > 0 {
				return nil, "", fmt.Errorf("exec: !break takes an optional integer level, got %v", l.rest)
			}
			if level < 1 {
				return nil, "", fmt.Errorf("exec: !break level must be >= 1, got %d", level)
			}
			blk = append(blk, &BreakStmt{Level: level})
		case "next":
			c.pos++
			if len(l.rest) != 0 {
				return nil, "", fmt.Errorf("exec: !next takes no arguments")
			}
			blk = append(blk, &NextStmt{})
		case "return":
			c.pos++
			var v eval.Node
			if len(l.rest) > 0 {
				n, err := eval.NewParser(l.rest, c.isCommand).ParseExpr()
				if err != nil {
					return nil, "", err
				}
				v = n
			}
			blk = append(blk, &ReturnStmt{Value: v})
		case "force":
			c.pos++
			if len(l.rest) == 0 {
				return nil, "", fmt.Errorf("exec: !force requires a statement")
			}
			n, err := eval.NewParser(l.rest, c.isCommand).ParseStatement()
			if err != nil {
				return nil, "", err
			}
			blk = append(blk, &ForceStmt{Inner: &ExprStmt{Expr: n}})
		default:
			return nil, "", fmt.Errorf("exec: unexpected !%s here", l.directive)
		}
	}
}

func (c *compiler) parseIf() (Stmt, error) {
	l, _ := c.cur()
	c.pos++
	cond, err := eval.NewParser(l.rest, c.isCommand).ParseExpr()
	if err != nil {
		return nil, err
	}
	then, stop, err := c.parseBlock("elsif", "else", "endif")
	if err != nil {
		return nil, err
	}
	st := &IfStmt{Cond: cond, Then: then}
	for stop == "elsif" {
		el, _ := c.cur()
		c.pos++
		econd, err := eval.NewParser(el.rest, c.isCommand).ParseExpr()
		if err != nil {
			return nil, err
		}
		body, nextStop, err := c.parseBlock("elsif", "else", "endif")
		if err != nil {
			return nil, err
		}
		st.Elifs = append(st.Elifs, ElifClause{Cond: econd, Body: body})
		stop = nextStop
	}
	if stop == "else" {
		c.pos++
		body, nextStop, err := c.parseBlock("endif")
		if err != nil {
			return nil, err
		}
		st.Else = body
		stop = nextStop
	}
	// stop == "endif"
	c.pos++
	return st, nil
}

func (c *compiler) parseLoop(kind string) (Stmt, error) {
	l, _ := c.cur()
	c.pos++
	var cond eval.Node
	if kind != "loop" {
		if len(l.rest) == 0 {
			return nil, fmt.Errorf("exec: !%s requires a condition", kind)
		}
		n, err := eval.NewParser(l.rest, c.isCommand).ParseExpr()
		if err != nil {
			return nil, err
		}
		cond = n
	} else if len(l.rest) != 0 {
		return nil, fmt.Errorf("exec: bare !loop takes no condition")
	}
	body, _, err := c.parseBlock("endloop")
	if err != nil {
		return nil, err
	}
	c.pos++ // consume !endloop
	return &LoopStmt{Kind: kind, Cond: cond, Body: body}, nil
}

// parseMacroDef parses `!macro name,minArgs[,maxArgs][,constrain|omnipotent]`
// through `!endmacro` (spec.md §4.7: "!macro name,argct"; the
// constrain/omnipotent modifiers are additive texture for the
// "constrained"/"omnipotent" macro-call rule spec.md §4.7 describes but
// the distilled directive grammar leaves unparsed).
func (c *compiler) parseMacroDef() (*MacroDef, error) {
	l, _ := c.cur()
	c.pos++
	md, err := parseMacroHeader(l.rest)
	if err != nil {
		return nil, err
	}
	body, _, err := c.parseBlock("endmacro")
	if err != nil {
		return nil, err
	}
	md.Body = body
	c.pos++ // consume !endmacro
	return md, nil
}

func parseMacroHeader(toks []lexer.Token) (*MacroDef, error) {
	if len(toks) == 0 || toks[0].Kind != lexer.Ident {
		return nil, fmt.Errorf("exec: !macro requires a name")
	}
	md := &MacroDef{Name: toks[0].Val, MaxArgs: -1}
	nums := 0
	for i := 1; i < len(toks); i++ {
		t := toks[i]
		switch {
		case t.Kind == lexer.Op && t.Val == ",":
			continue
		case t.Kind == lexer.Number:
			if nums == 0 {
				md.MinArgs = int(t.Num)
				md.MaxArgs = int(t.Num)
			} else if nums == 1 {
				md.MaxArgs = int(t.Num)
			} else {
				return nil, fmt.Errorf("exec: !macro %s: too many argument-count fields", md.Name)
			}
			nums++
		case strings.EqualFold(t.Val, "constrain"):
			md.Constrained = true
		case strings.EqualFold(t.Val, "omnipotent"):
			md.Omnipotent = true
		default:
			return nil, fmt.Errorf("exec: !macro %s: unexpected token %v in header", md.Name, t)
		}
	}
	return md, nil
}
