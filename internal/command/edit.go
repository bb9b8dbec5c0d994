package command

import (
	"fmt"

	"github.com/mxeditor/mx/internal/buffer"
	"github.com/mxeditor/mx/internal/datum"
	"github.com/mxeditor/mx/internal/ring"
)

// moveBy shifts dot forward (n>0) or backward (n<0) by n bytes, without
// editing the buffer, clamped to the buffer's bounds by GetRegion's own
// clamping.
func moveBy(ctx *Context, n int) {
	r := ctx.Buf().GetRegion(ctx.Win().Dot, n, buffer.EmptyOk)
	if n < 0 {
		ctx.Win().Dot = r.Dot
	} else {
		end, _ := advanceBy(ctx.Buf(), r.Dot, r.Size)
		ctx.Win().Dot = end
	}
	ctx.Win().MarkDirty(buffer.WFMove)
}

// advanceBy is Text(region)'s companion: walk n bytes forward from pos,
// following line links, clamping at the buffer's last line (buffer.go's
// advance is unexported, so callers outside internal/buffer re-derive
// the same walk via GetRegion/Text's own reach instead of duplicating
// it — this is just that derivation, factored out for reuse here).
func advanceBy(b *buffer.Buffer, pos buffer.Pos, n int) (buffer.Pos, bool) {
	end := b.GetRegion(pos, n, buffer.EmptyOk)
	if n == 0 {
		return pos, true
	}
	text := b.Text(end)
	_ = text
	line := pos.Line
	off := pos.Off
	remain := n
	for remain > 0 {
		avail := line.Len() - off
		if remain <= avail {
			return buffer.Pos{Line: line, Off: off + remain}, true
		}
		remain -= avail + 1
		if line.Next() == nil {
			return buffer.Pos{Line: line, Off: line.Len()}, false
		}
		line = line.Next()
		off = 0
	}
	return buffer.Pos{Line: line, Off: off}, true
}

func cmdForwChar(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	moveBy(ctx, int(ctx.Count()))
	return datum.True, nil
}

func cmdBackChar(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	moveBy(ctx, -int(ctx.Count()))
	return datum.True, nil
}

func cmdForwLine(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	r := ctx.Buf().GetLineRegion(ctx.Win().Dot, int(ctx.Count()), 0)
	end, _ := advanceBy(ctx.Buf(), r.Dot, r.Size)
	ctx.Win().Dot = end
	ctx.Win().MarkDirty(buffer.WFMove)
	return datum.True, nil
}

func cmdBackLine(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	r := ctx.Buf().GetLineRegion(ctx.Win().Dot, -int(ctx.Count()), 0)
	ctx.Win().Dot = r.Dot
	ctx.Win().MarkDirty(buffer.WFMove)
	return datum.True, nil
}

func cmdInsert(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	win := ctx.Win()
	for i := int64(0); i < ctx.Count(); i++ {
		for _, a := range args {
			end := ctx.Buf().InsertNChars(win.Dot, a.Bytes())
			win.Dot = end
		}
	}
	return datum.True, nil
}

func cmdNewline(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	win := ctx.Win()
	for i := int64(0); i < ctx.Count(); i++ {
		win.Dot = ctx.Buf().InsertNChars(win.Dot, []byte{'\n'})
	}
	return datum.True, nil
}

// openLine inserts a newline without advancing dot past it, leaving dot
// on the newly blank line above the split text (ground: misc.c's
// openLine: "insert a newline ... leave point before it").
func cmdOpenLine(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	win := ctx.Win()
	before := win.Dot
	for i := int64(0); i < ctx.Count(); i++ {
		ctx.Buf().InsertNChars(win.Dot, []byte{'\n'})
	}
	win.Dot = before
	return datum.True, nil
}

func deleteChars(ctx *Context, n int) []byte {
	win := ctx.Win()
	text, pos := ctx.Buf().DeleteSpan(win.Dot, n)
	win.Dot = pos
	win.MarkDirty(buffer.WFHard)
	return text
}

func cmdDeleteForwChar(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	text := deleteChars(ctx, int(ctx.Count()))
	ctx.Undelete.Record(text)
	return datum.True, nil
}

func cmdDeleteBackChar(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	text := deleteChars(ctx, -int(ctx.Count()))
	ctx.Undelete.Record(text)
	return datum.True, nil
}

// killInto deletes n bytes (signed, as DeleteSpan expects) and routes
// them to the kill ring, coalescing with the previous kill if the prior
// dispatched command was itself a kill (ctx.LastWasKill), and
// continuing in the direction the delete ran.
func killInto(ctx *Context, n int) {
	dir := ring.Forward
	if n < 0 {
		dir = ring.Backward
	}
	ctx.Kill.Begin(ctx.LastWasKill)
	text := deleteChars(ctx, n)
	ctx.Kill.Insert(dir, text)
}

// cmdKillRegion deletes the region between point and the mark
// (spec.md §4.2 get-region; ground: region.c's dkregion(n,true)), not
// the pending numeric-argument byte count — markRegion resolves dot-
// to-mark exactly as getregion() does.
func cmdKillRegion(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	r, err := markRegion(ctx)
	if err != nil {
		return nil, err
	}
	ctx.Win().Dot = r.Dot
	killInto(ctx, r.Size)
	return datum.True, nil
}

// cmdKillLine kills from point to the end of the current line, not
// including its delimiter; when point is already at the end of the
// line it kills just the delimiter, joining the next line onto this
// one (ground: region.c's gettregion() n==1 case,
// the "from dot to end of line" default, with IncludeDelim clear).
func cmdKillLine(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	r := ctx.Buf().GetTextRegion(ctx.Win().Dot, 1, 0)
	killInto(ctx, r.Size)
	return datum.True, nil
}

// cmdCopyRegion copies the region between point and the mark to the
// kill ring without deleting it or moving point (ground: region.c's
// copyreg(), called on the same dot-to-mark region as cmdKillRegion).
func cmdCopyRegion(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	r, err := markRegion(ctx)
	if err != nil {
		return nil, err
	}
	text := ctx.Buf().Text(r)
	ctx.Kill.Begin(false)
	ctx.Kill.Insert(ring.Forward, text)
	return datum.True, nil
}

func cmdYank(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	text, ok := ctx.Kill.Yank(0)
	if !ok {
		return datum.Nil, fmt.Errorf("kill ring is empty")
	}
	win := ctx.Win()
	win.Dot = ctx.Buf().InsertNChars(win.Dot, text)
	return datum.True, nil
}

// yankPop inserts at point the kill ring entry n slots older than the
// most recent one (n is the pending count, 1 by default) and leaves
// point after it. It does not remove text that an earlier yank
// inserted and does not rotate the ring, so repeating it inserts the
// same entry again.
func cmdYankPop(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	n := int(ctx.Count())
	text, ok := ctx.Kill.Yank(n)
	if !ok {
		return datum.Nil, fmt.Errorf("no earlier kill to yank")
	}
	win := ctx.Win()
	win.Dot = ctx.Buf().InsertNChars(win.Dot, text)
	return datum.True, nil
}

func cmdUndelete(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	text, ok := ctx.Undelete.Restore()
	if !ok {
		return datum.Nil, fmt.Errorf("nothing to undelete")
	}
	win := ctx.Win()
	win.Dot = ctx.Buf().InsertNChars(win.Dot, text)
	return datum.True, nil
}

// setMark places a user mark at dot, or at the default ' ' id when no
// argument is given (ground: misc.c's setMark: "the bare command sets
// the default mark").
func cmdSetMark(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	id := rune(' ')
	if len(args) == 1 {
		r := []rune(args[0].Str())
		if len(r) != 1 {
			return nil, fmt.Errorf("setMark: mark id must be one character")
		}
		id = r[0]
	}
	buf := ctx.Buf()
	if m := buf.Mark(id); m != nil {
		m.Goto(ctx.Win().Dot)
		return datum.True, nil
	}
	buf.NewMark(id, ctx.Win().Dot)
	return datum.True, nil
}

// swapMark exchanges dot with the named mark (default ' '), the
// "exchange point and mark" operation (ground: misc.c's swapMark).
// Window.Dot is stored directly on the Window rather than as a
// buffer.Mark (see internal/layout.Window), so this swaps the Window's
// Dot field against the Mark's position explicitly.
func cmdSwapMark(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	id := rune(' ')
	if len(args) == 1 {
		r := []rune(args[0].Str())
		if len(r) != 1 {
			return nil, fmt.Errorf("swapMark: mark id must be one character")
		}
		id = r[0]
	}
	buf := ctx.Buf()
	m := buf.Mark(id)
	if m == nil {
		return nil, fmt.Errorf("no mark %q set", string(id))
	}
	win := ctx.Win()
	cur := win.Dot
	win.Dot = m.Pos()
	m.Goto(cur)
	win.MarkDirty(buffer.WFMove)
	return datum.True, nil
}

func cmdGotoMark(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	id := rune(' ')
	if len(args) == 1 {
		r := []rune(args[0].Str())
		if len(r) != 1 {
			return nil, fmt.Errorf("gotoMark: mark id must be one character")
		}
		id = r[0]
	}
	m := ctx.Buf().Mark(id)
	if m == nil {
		return nil, fmt.Errorf("no mark %q set", string(id))
	}
	ctx.Win().Dot = m.Pos()
	ctx.Win().MarkDirty(buffer.WFMove)
	return datum.True, nil
}

// gotoLine moves dot to the first column of line n (1-based), the way
// misc.c's gotoLine resolves its line-number argument.
func cmdGotoLine(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	target := args[0].Int()
	if target < 1 {
		return nil, fmt.Errorf("gotoLine: line number must be positive")
	}
	buf := ctx.Buf()
	line := buf.FirstLine()
	for i := int64(1); i < target && line.Next() != nil; i++ {
		line = line.Next()
	}
	ctx.Win().Dot = buffer.Pos{Line: line, Off: 0}
	ctx.Win().MarkDirty(buffer.WFMove)
	return datum.True, nil
}
