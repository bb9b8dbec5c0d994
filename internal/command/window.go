package command

import (
	"fmt"

	"github.com/mxeditor/mx/internal/buffer"
	"github.com/mxeditor/mx/internal/datum"
	"github.com/mxeditor/mx/internal/layout"
)

// cmdSplitWindow divides the current window in two, both showing the
// same buffer, and leaves the current window unchanged so the
// caller's next command naturally continues editing where it was
// (spec.md §4.6 "Split": "preserves point in whichever window
// contained it").
func cmdSplitWindow(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	_, err := ctx.Screen.Split(ctx.Win())
	if err != nil {
		return nil, err
	}
	return datum.True, nil
}

// cmdOnlyWindow deletes every window but the current one.
func cmdOnlyWindow(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	for {
		wins := ctx.Screen.Windows()
		if len(wins) <= 1 {
			return datum.True, nil
		}
		victim := wins[0]
		if victim == ctx.Win() {
			victim = wins[1]
		}
		if err := ctx.Screen.Delete(victim); err != nil {
			return nil, err
		}
	}
}

// cmdDeleteWindow removes the current window, handing its rows to the
// window above it, or to the window below when it is the top window.
// The pending count does not choose the side.
func cmdDeleteWindow(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	if err := ctx.Screen.Delete(ctx.Win()); err != nil {
		return nil, err
	}
	return datum.True, nil
}

// cmdJoinWindow absorbs the window below the current one (or, if the
// current window is last, the one above — spec.md §4.6's wrap-around
// rule when at least three windows exist).
func cmdJoinWindow(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	cur := ctx.Win()
	wins := ctx.Screen.Windows()
	if cur.Next() != nil {
		if err := ctx.Screen.Join(cur); err != nil {
			return nil, err
		}
		return datum.True, nil
	}
	if len(wins) < 3 {
		return nil, fmt.Errorf("no neighbor to join")
	}
	// cur is last: join it into its predecessor instead, then make the
	// predecessor current so "join" always leaves the surviving window
	// selected.
	var pred *layout.Window
	for _, w := range wins {
		if w.Next() == cur {
			pred = w
			break
		}
	}
	if pred == nil {
		return nil, fmt.Errorf("no neighbor to join")
	}
	if err := ctx.Screen.Join(pred); err != nil {
		return nil, err
	}
	ctx.Screen.Cur = pred
	return datum.True, nil
}

// cmdNextWindow cycles the current window selection forward.
func cmdNextWindow(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	ctx.Screen.Cur = ctx.Screen.NextWindow(ctx.Win())
	return datum.True, nil
}

// cmdResizeWindow applies spec.md §4.6's gswind(n, how) to the current
// window: args[0] is n, args[1] (optional) is how (-1 shrink, 0
// absolute, 1 grow; default 0 — resize to an absolute row count).
func cmdResizeWindow(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	n := int(args[0].Int())
	how := 0
	if len(args) == 2 {
		how = int(args[1].Int())
	}
	if err := ctx.Screen.ResizeWindow(ctx.Win(), n, how); err != nil {
		return nil, err
	}
	return datum.True, nil
}

// cmdEqualizeWindows redistributes rows evenly across every window on
// the current screen (spec.md §4.6 "Equalize").
func cmdEqualizeWindows(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	ctx.Screen.Equalize()
	return datum.True, nil
}

// cmdSwitchBuffer rebinds the current window to show the named buffer,
// creating it if it does not exist (spec.md §3 buffer lifecycle).
func cmdSwitchBuffer(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	name := args[0].Str()
	buf := ctx.Sessions.Lookup(name)
	if buf == nil {
		var err error
		buf, err = ctx.Sessions.Create(name)
		if err != nil {
			return nil, err
		}
	}
	ctx.Win().SwitchBuffer(buf)
	return datum.True, nil
}

// markRegion resolves the region between point and the default mark
// (' ', set by setMark), ordered min->max the way get-region's
// ForceBegin flag requires (spec.md §4.2).
func markRegion(ctx *Context) (buffer.Region, error) {
	buf := ctx.Buf()
	m := buf.Mark(' ')
	if m == nil {
		return buffer.Region{}, fmt.Errorf("no mark set")
	}
	dot, mp := ctx.Win().Dot, m.Pos()
	start, end := dot, mp
	if offsetOf(buf, mp) < offsetOf(buf, dot) {
		start, end = mp, dot
	}
	size := offsetOf(buf, end) - offsetOf(buf, start)
	return buf.GetRegion(start, size, buffer.EmptyOk), nil
}

// cmdNarrowBuffer restricts editing to the region between point and
// the mark (spec.md §4.1 narrow/widen).
func cmdNarrowBuffer(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	buf := ctx.Buf()
	if buf.Narrowed() {
		return nil, fmt.Errorf("buffer already narrowed")
	}
	r, err := markRegion(ctx)
	if err != nil {
		return nil, err
	}
	buf.Narrow(r)
	return datum.True, nil
}

// cmdWidenBuffer restores a buffer narrowed by cmdNarrowBuffer.
func cmdWidenBuffer(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	ctx.Buf().Widen()
	return datum.True, nil
}

var windowCommands = []*Command{
	{Name: "splitWindow", MinArgs: 0, MaxArgs: 0, Fn: cmdSplitWindow, Descr: "split the current window in two"},
	{Name: "onlyWindow", MinArgs: 0, MaxArgs: 0, Fn: cmdOnlyWindow, Descr: "delete every window but the current one"},
	{Name: "deleteWindow", MinArgs: 0, MaxArgs: 0, Fn: cmdDeleteWindow, Descr: "delete the current window"},
	{Name: "joinWindow", MinArgs: 0, MaxArgs: 0, Fn: cmdJoinWindow, Descr: "join the current window with a neighbor"},
	{Name: "nextWindow", MinArgs: 0, MaxArgs: 0, Fn: cmdNextWindow, Descr: "select the next window"},
	{Name: "resizeWindow", MinArgs: 1, MaxArgs: 2, Fn: cmdResizeWindow, Descr: "resize the current window"},
	{Name: "equalizeWindows", MinArgs: 0, MaxArgs: 0, Fn: cmdEqualizeWindows, Descr: "make every window the same size"},
	{Name: "switchBuffer", MinArgs: 1, MaxArgs: 1, Fn: cmdSwitchBuffer, Descr: "show a named buffer in the current window"},
	{Name: "narrowBuffer", MinArgs: 0, MaxArgs: 0, Fn: cmdNarrowBuffer, Descr: "restrict editing to the region"},
	{Name: "widenBuffer", MinArgs: 0, MaxArgs: 0, Fn: cmdWidenBuffer, Descr: "undo narrowBuffer"},
}
