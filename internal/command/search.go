package command

import (
	"fmt"

	"github.com/mxeditor/mx/internal/buffer"
	"github.com/mxeditor/mx/internal/datum"
	"github.com/mxeditor/mx/internal/mode"
	"github.com/mxeditor/mx/internal/rc"
	"github.com/mxeditor/mx/internal/search"
)

// wholeText returns b's entire content as a flat byte slice alongside
// the Pos<->offset conversions the search commands need (search.go's
// engines, unlike buffer.Region, work over one flat []byte, ground:
// original_source/memacs-8.0.0/src/replace.c's replstr() operating on
// a line-blind byte stream).
func wholeText(b *buffer.Buffer) []byte {
	return b.Text(buffer.Region{Dot: buffer.Pos{Line: b.FirstLine(), Off: 0}, Size: b.ByteCount()})
}

// offsetOf converts pos into its absolute byte offset within b's flat
// text.
func offsetOf(b *buffer.Buffer, pos buffer.Pos) int {
	off := 0
	for l := b.FirstLine(); l != pos.Line; l = l.Next() {
		off += l.Len() + 1
	}
	return off + pos.Off
}

// posAt converts an absolute byte offset within b's flat text back
// into a Pos.
func posAt(b *buffer.Buffer, offset int) buffer.Pos {
	line := b.FirstLine()
	for offset > line.Len() && line.Next() != nil {
		offset -= line.Len() + 1
		line = line.Next()
	}
	if offset > line.Len() {
		offset = line.Len()
	}
	if offset < 0 {
		offset = 0
	}
	return buffer.Pos{Line: line, Off: offset}
}

// searchMatcher builds the matcher spec.md §4.5's "exact/ignore/plain/
// regexp" flags select: a compiled regex when the global 'regexp' mode
// is on, a Boyer-Moore pattern otherwise. The builtin mode table has no
// "exact" or case-fold mode, and every caller in this package passes
// ignoreCase=false, so command-level searches are case-sensitive.
func searchMatcher(ctx *Context, pat string, ignoreCase bool) (search.Matcher, error) {
	if ctx.Modes.GlobalEnabled(mode.Regexp) {
		re, err := search.Compile([]byte(pat), ignoreCase, false)
		if err != nil {
			return nil, fmt.Errorf("bad regular expression: %w", err)
		}
		return re.AsMatcher(), nil
	}
	return search.CompileBM([]byte(pat), ignoreCase).AsMatcher(), nil
}

func patternArg(args []*datum.Datum) string {
	if len(args) == 0 {
		return ""
	}
	return args[0].Str()
}

// cmdSearchForward finds the next match at or after point, moving
// point just past it (spec.md §4.5).
func cmdSearchForward(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	pat := patternArg(args)
	if pat == "" {
		if cur, ok := ctx.SearchRing.Current(); ok {
			pat = cur
		} else {
			return nil, fmt.Errorf("no search pattern set")
		}
	}
	ctx.SearchRing.Record(pat)
	m, err := searchMatcher(ctx, pat, false)
	if err != nil {
		return nil, err
	}
	buf := ctx.Buf()
	text := wholeText(buf)
	start := offsetOf(buf, ctx.Win().Dot)
	spans := m.FindAt(text, start)
	if spans == nil {
		return nil, fmt.Errorf("%q not found", pat)
	}
	ctx.Win().Dot = posAt(buf, spans[0][1])
	ctx.Win().MarkDirty(buffer.WFMove)
	return datum.True, nil
}

// cmdSearchBackward finds the nearest match strictly before point by
// scanning forward matches up to point and keeping the last one — the
// search engines in this package only expose a forward Matcher.FindAt,
// so backward search is expressed in terms of it rather than
// duplicating a second reverse-compiled matcher per pattern kind
// (spec.md §4.5 keeps forward/reverse compilation only for plain-text
// Boyer-Moore, where FindBackward is the performance-sensitive path;
// reusing FindAt here is correct, just not delta-table-accelerated).
func cmdSearchBackward(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	pat := patternArg(args)
	if pat == "" {
		if cur, ok := ctx.SearchRing.Current(); ok {
			pat = cur
		} else {
			return nil, fmt.Errorf("no search pattern set")
		}
	}
	ctx.SearchRing.Record(pat)
	m, err := searchMatcher(ctx, pat, false)
	if err != nil {
		return nil, err
	}
	buf := ctx.Buf()
	text := wholeText(buf)
	limit := offsetOf(buf, ctx.Win().Dot)
	var best [][2]int
	for pos := 0; pos < limit; {
		spans := m.FindAt(text, pos)
		if spans == nil || spans[0][0] >= limit {
			break
		}
		best = spans
		if spans[0][1] == spans[0][0] {
			pos = spans[0][0] + 1
		} else {
			pos = spans[0][1]
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%q not found", pat)
	}
	ctx.Win().Dot = posAt(buf, best[0][0])
	ctx.Win().MarkDirty(buffer.WFMove)
	return datum.True, nil
}

// promptReplace runs QueryReplace's interactive prompt loop through
// ctx.Prompt (spec.md §4.5's "y/SPC, n, !, u, ., q/ESC, ?" actions). If
// ctx.Prompt is nil (scripted / non-interactive execution), every match
// is accepted, matching a non-query "replace" call.
func promptReplace(ctx *Context, sample func([][2]int) string) func([][2]int) search.ReplaceAction {
	return func(spans [][2]int) search.ReplaceAction {
		if ctx.Prompt == nil {
			return search.ActionReplace
		}
		for {
			r, ok := ctx.Prompt(sample(spans))
			if !ok {
				return search.ActionStop
			}
			switch r {
			case 'y', ' ':
				return search.ActionReplace
			case 'n':
				return search.ActionSkip
			case '!':
				return search.ActionReplaceRest
			case 'u':
				return search.ActionUndo
			case '.', 'q', 27:
				return search.ActionStop
			case '?':
				// ActionHelp leaves the match untouched and the loop
				// above re-prompts; QueryReplace itself only sees it
				// once per call so loop here instead of returning it.
				continue
			}
		}
	}
}

// runReplace is shared by cmdReplace and cmdQueryReplace: resolve the
// search/replacement pair, run QueryReplace over the whole buffer, and
// write the result back.
func runReplace(ctx *Context, args []*datum.Datum, interactive bool) (*datum.Datum, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("replace: requires a search pattern and a replacement")
	}
	pat, repl := args[0].Str(), args[1].Str()
	ctx.SearchRing.Record(pat)
	ctx.ReplaceRing.Record(repl)
	m, err := searchMatcher(ctx, pat, false)
	if err != nil {
		return nil, err
	}
	rp := search.CompileReplace([]byte(repl))
	buf := ctx.Buf()
	text := wholeText(buf)
	origDot := offsetOf(buf, ctx.Win().Dot)

	var prompt func([][2]int) search.ReplaceAction
	if interactive {
		prompt = promptReplace(ctx, func(spans [][2]int) string {
			return fmt.Sprintf("Query replace %q with %q? (y/n/!/u/./q/?)", text[spans[0][0]:spans[0][1]], rp.Expand(text, spans))
		})
	} else {
		prompt = func([][2]int) search.ReplaceAction { return search.ActionReplace }
	}

	out, result := search.QueryReplace(text, m, rp, prompt)
	buf.Read(out, buf.Delim)
	if len(out) != origDot {
		ctx.Win().Dot = posAt(buf, clampInt(origDot, 0, len(out)))
	}
	if len(out) != len(text) || result.Replaced > 0 {
		ctx.Win().MarkDirty(buffer.WFHard)
	}
	ctx.RC.Setf(rc.Success, 0, "%d substitution(s)", result.Replaced)
	return datum.NewInt(int64(result.Replaced)), nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func cmdReplace(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	return runReplace(ctx, args, false)
}

func cmdQueryReplace(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	return runReplace(ctx, args, true)
}

var searchCommands = []*Command{
	{Name: "searchForward", MinArgs: 0, MaxArgs: 1, Fn: cmdSearchForward, Descr: "search forward for a pattern"},
	{Name: "searchBackward", MinArgs: 0, MaxArgs: 1, Fn: cmdSearchBackward, Descr: "search backward for a pattern"},
	{Name: "replace", MinArgs: 2, MaxArgs: 2, Fn: cmdReplace, Descr: "replace every match of a pattern, unconditionally"},
	{Name: "queryReplace", MinArgs: 2, MaxArgs: 2, Fn: cmdQueryReplace, Descr: "replace matches of a pattern, prompting for each"},
}
