package command

import (
	"fmt"

	"github.com/mxeditor/mx/internal/buffer"
	"github.com/mxeditor/mx/internal/datum"
)

// cmdTab inserts a literal tab character (ground: misc.c's insert, the
// overwrite-insensitive case being handled identically to selfInsert —
// overwrite mode is a buffer mode checked by the editor loop before
// self-insert is even dispatched, not by the command body itself).
func cmdTab(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	win := ctx.Win()
	win.Dot = ctx.Buf().InsertNChars(win.Dot, []byte{'\t'})
	return datum.True, nil
}

// cmdKillFwdLine kills from point to the end of the current line,
// including its trailing newline (ground: region.c's gettregion()
// n==1 case with IncludeDelim set, distinguished from killLine in
// that it always consumes the delimiter, never leaving a dangling
// cursor-at-end-of-line case).
func cmdKillFwdLine(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	r := ctx.Buf().GetTextRegion(ctx.Win().Dot, 1, buffer.IncludeDelim)
	killInto(ctx, r.Size)
	return datum.True, nil
}

// cmdTwiddle transposes the character before point with the one at
// point (ground: misc.c's twiddle / "transpose-chars"). At end of
// line, it transposes the two characters immediately before point
// instead, matching the original's "twiddle the last two chars on the
// line" fallback.
func cmdTwiddle(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	buf := ctx.Buf()
	win := ctx.Win()
	line := win.Dot.Line
	off := win.Dot.Off
	if off == 0 {
		return nil, errNoTwiddle
	}
	if off >= line.Len() {
		off = line.Len() - 1
		if off <= 0 {
			return nil, errNoTwiddle
		}
	}
	bytes := append([]byte(nil), line.Bytes()...)
	bytes[off-1], bytes[off] = bytes[off], bytes[off-1]
	pos := buffer.Pos{Line: line, Off: off - 1}
	buf.DeleteSpan(pos, 2)
	buf.InsertNChars(pos, bytes[off-1:off+1])
	win.Dot = buffer.Pos{Line: line, Off: off + 1}
	win.MarkDirty(buffer.WFEdit)
	return datum.True, nil
}

var errNoTwiddle = fmt.Errorf("twiddle: not enough characters on the line")

// caseWord returns a copy of s with its ASCII letters upper-cased (or
// lower-cased); every other byte, including bytes above 0x7F, is copied
// unchanged.
func caseWord(s []byte, upper bool) []byte {
	out := make([]byte, len(s))
	for i, c := range s {
		if upper {
			if c >= 'a' && c <= 'z' {
				c -= 'a' - 'A'
			}
		} else {
			if c >= 'A' && c <= 'Z' {
				c += 'a' - 'A'
			}
		}
		out[i] = c
	}
	return out
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// wordSpan finds the bounds, relative to line start, of the word
// touching or following off on line.
func wordSpan(line *buffer.Line, off int) (start, end int, ok bool) {
	b := line.Bytes()
	i := off
	for i < len(b) && !isWordByte(b[i]) {
		i++
	}
	if i >= len(b) {
		return 0, 0, false
	}
	start = i
	for i < len(b) && isWordByte(b[i]) {
		i++
	}
	return start, i, true
}

// caseWordCmd implements upperCaseWord/lowerCaseWord: recase the next
// word on the current line and leave point just past it (ground:
// misc.c's upperCaseWord/lowerCaseWord, narrowed from multi-line word
// scanning to one line since this editor's word-motion primitives are
// line-local, per spec.md §1's per-line text model).
func caseWordCmd(ctx *Context, upper bool) (*datum.Datum, error) {
	buf := ctx.Buf()
	win := ctx.Win()
	start, end, ok := wordSpan(win.Dot.Line, win.Dot.Off)
	if !ok {
		return datum.False, nil
	}
	pos := buffer.Pos{Line: win.Dot.Line, Off: start}
	recased := caseWord(win.Dot.Line.Bytes()[start:end], upper)
	buf.DeleteSpan(pos, end-start)
	buf.InsertNChars(pos, recased)
	win.Dot = buffer.Pos{Line: pos.Line, Off: start + len(recased)}
	win.MarkDirty(buffer.WFEdit)
	return datum.True, nil
}

func cmdUpperCaseWord(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	return caseWordCmd(ctx, true)
}

func cmdLowerCaseWord(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	return caseWordCmd(ctx, false)
}

var miscCommands = []*Command{
	{Name: "tab", MinArgs: 0, MaxArgs: 0, Fn: cmdTab, Descr: "insert a tab character"},
	{Name: "killFwdLine", MinArgs: 0, MaxArgs: 0, Fn: cmdKillFwdLine, Descr: "kill to end of line, including the newline"},
	{Name: "twiddle", MinArgs: 0, MaxArgs: 0, Fn: cmdTwiddle, Descr: "transpose the characters around point"},
	{Name: "upperCaseWord", MinArgs: 0, MaxArgs: 0, Fn: cmdUpperCaseWord, Descr: "uppercase the next word"},
	{Name: "lowerCaseWord", MinArgs: 0, MaxArgs: 0, Fn: cmdLowerCaseWord, Descr: "lowercase the next word"},
}
