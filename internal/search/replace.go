package search

// repElem is one element of a compiled replacement pattern (ground:
// original_source/include/search.h's RPE_LitString/RPE_GrpMatch
// replacement-pattern elements).
type repElem struct {
	lit      []byte // literal text, when grp == 0 and lit != nil
	grp      int    // 1-9: substitute this capture group's matched text; 0: literal
	isWhole  bool   // "&" or group 0: the whole match
}

// ReplacePattern is a compiled replacement string: a sequence of
// literal runs and group back-references ("\1".."\9", "&" for the
// whole match), built once and reused for every substitution in a
// query-replace pass.
type ReplacePattern struct {
	elems []repElem
}

// CompileReplace parses a replacement string. "&" stands for the whole
// match, "\N" (N in 1-9) for capture group N, "\&" and "\\" escape
// themselves.
func CompileReplace(repl []byte) *ReplacePattern {
	rp := &ReplacePattern{}
	var lit []byte
	flush := func() {
		if len(lit) > 0 {
			rp.elems = append(rp.elems, repElem{lit: append([]byte(nil), lit...)})
			lit = lit[:0]
		}
	}
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		switch {
		case c == '&':
			flush()
			rp.elems = append(rp.elems, repElem{isWhole: true})
		case c == '\\' && i+1 < len(repl):
			n := repl[i+1]
			switch {
			case n >= '1' && n <= '9':
				flush()
				rp.elems = append(rp.elems, repElem{grp: int(n - '0')})
				i++
			case n == '&' || n == '\\':
				lit = append(lit, n)
				i++
			default:
				lit = append(lit, c)
			}
		default:
			lit = append(lit, c)
		}
	}
	flush()
	return rp
}

// Expand renders the replacement against a match's group spans (as
// returned by Regex.Match/Find) over the original text. For a plain
// (non-regex) search, pass spans with only index 0 set (the whole
// match) — "&" still works, but "\N" references to unset groups expand
// to nothing.
func (rp *ReplacePattern) Expand(text []byte, spans [][2]int) []byte {
	var out []byte
	whole := spans[0]
	for _, e := range rp.elems {
		switch {
		case e.lit != nil:
			out = append(out, e.lit...)
		case e.isWhole:
			out = append(out, text[whole[0]:whole[1]]...)
		case e.grp > 0 && e.grp < len(spans):
			g := spans[e.grp]
			if g[0] >= 0 && g[1] >= g[0] {
				out = append(out, text[g[0]:g[1]]...)
			}
		}
	}
	return out
}

// Matcher is the common interface FindForward-style plain-text and
// regex patterns both satisfy, letting the query-replace loop below
// stay agnostic to which kind of search is active (ground:
// original_source/memacs-8.0.0/src/replace.c's replstr(), which
// dispatches to either the plain or regex matcher behind one loop).
type Matcher interface {
	// FindAt returns the match's group spans starting the search at or
	// after pos, or nil if no match remains. Index 0 is always the
	// whole match; a plain-text matcher returns a single-element slice.
	FindAt(text []byte, pos int) [][2]int
}

type bmMatcher struct{ p *BMPattern }

func (b bmMatcher) FindAt(text []byte, pos int) [][2]int {
	i := b.p.FindForward(text, pos)
	if i < 0 {
		return nil
	}
	return [][2]int{{i, i + len(b.p.pat)}}
}

// AsMatcher adapts a compiled Boyer-Moore pattern to Matcher.
func (p *BMPattern) AsMatcher() Matcher { return bmMatcher{p} }

type reMatcher struct{ re *Regex }

func (r reMatcher) FindAt(text []byte, pos int) [][2]int { return r.re.Find(text, pos) }

// AsMatcher adapts a compiled regex to Matcher.
func (re *Regex) AsMatcher() Matcher { return reMatcher{re} }

// ReplaceAction is the user's response to one proposed substitution in
// an interactive query-replace pass (ground: original_source/memacs-
// 8.0.0/src/replace.c's yesno() prompt: "y, SPC; n; !; u; ., q/ESC; ?").
type ReplaceAction int

const (
	ActionReplace     ReplaceAction = iota // y, SPC
	ActionSkip                             // n
	ActionReplaceRest                      // !
	ActionUndo                             // u
	ActionStop                             // ., q, ESC
	ActionHelp                             // ?
)

// ReplaceResult reports the outcome of a query-replace pass.
type ReplaceResult struct {
	Replaced int
	Stopped  bool // true if the user stopped before reaching the end
}

// QueryReplace walks text, offering each match of m to prompt (which
// returns the user's ReplaceAction for that match) and applying
// accepted substitutions via rp. It returns the edited text and a
// summary. Matching resumes after the replacement's end so a
// replacement cannot be rematched against itself, and an empty match
// always advances by one byte to avoid looping forever. An undo
// response reverts the most recent accepted substitution and offers
// that match again; with nothing left to undo it leaves the current
// match as it is (ground:
// original_source/memacs-8.0.0/src/replace.c's replstr() main loop and
// its explicit zero-length-match guard).
func QueryReplace(text []byte, m Matcher, rp *ReplacePattern, prompt func(spans [][2]int) ReplaceAction) ([]byte, ReplaceResult) {
	var out []byte
	pos := 0
	replaceRest := false
	var undoStack []struct {
		outLenBefore int
		origSpan     [2]int
	}
	result := ReplaceResult{}

	for pos <= len(text) {
		spans := m.FindAt(text, pos)
		if spans == nil {
			out = append(out, text[pos:]...)
			pos = len(text) + 1
			break
		}
		start, end := spans[0][0], spans[0][1]
		out = append(out, text[pos:start]...)

		action := ActionReplace
		if !replaceRest {
			action = prompt(spans)
		}

		switch action {
		case ActionReplaceRest:
			replaceRest = true
			fallthrough
		case ActionReplace:
			undoStack = append(undoStack, struct {
				outLenBefore int
				origSpan     [2]int
			}{len(out), [2]int{start, end}})
			out = append(out, rp.Expand(text, spans)...)
			result.Replaced++
		case ActionSkip:
			out = append(out, text[start:end]...)
		case ActionUndo:
			if n := len(undoStack); n > 0 {
				last := undoStack[n-1]
				undoStack = undoStack[:n-1]
				out = out[:last.outLenBefore]
				result.Replaced--
				pos = last.origSpan[0]
				continue
			}
			out = append(out, text[start:end]...)
		case ActionStop:
			out = append(out, text[start:]...)
			result.Stopped = true
			return out, result
		case ActionHelp:
			out = append(out, text[start:end]...)
		}

		if end == start {
			if end >= len(text) {
				break
			}
			out = append(out, text[end])
			pos = end + 1
		} else {
			pos = end
		}
	}
	return out, result
}
