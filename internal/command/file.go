package command

import (
	"fmt"
	"path/filepath"

	"github.com/mxeditor/mx/internal/buffer"
	"github.com/mxeditor/mx/internal/datum"
	"github.com/mxeditor/mx/internal/mode"
)

// cmdFindFile opens path into a buffer named after its base filename,
// creating the buffer if needed, reusing it if the file is already
// open, and showing it in the current window (ground:
// original_source/memacs-8.0.0/src/file.c's ifile()).
func cmdFindFile(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	path := args[0].Str()
	name := filepath.Base(path)
	buf := ctx.Sessions.Lookup(name)
	if buf == nil {
		var err error
		buf, err = ctx.Sessions.Create(name)
		if err != nil {
			return nil, err
		}
	}
	if err := buf.ReadFile(buffer.DefaultReader, path); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	ctx.Win().SwitchBuffer(buf)
	return datum.True, nil
}

// saveMode resolves the effective SaveMode from the 'safe'/'bak'
// global modes, overriding ctx.SaveMode when either is set (ground:
// file.c's writeout(): safe-save and backup are policy toggles, not a
// fixed per-call choice).
func saveMode(ctx *Context) buffer.SaveMode {
	if ctx.Modes.GlobalEnabled(mode.Backup) {
		return buffer.SaveBackup
	}
	if ctx.Modes.GlobalEnabled(mode.Safe) {
		return buffer.SaveSafe
	}
	return ctx.SaveMode
}

// cmdSaveBuffer writes the current buffer back to its associated file.
func cmdSaveBuffer(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	buf := ctx.Buf()
	path := buf.Filename
	if len(args) == 1 {
		path = args[0].Str()
	}
	if path == "" {
		return nil, fmt.Errorf("buffer %q has no associated filename", buf.Name)
	}
	if err := buf.Write(ctx.Writer, path, saveMode(ctx)); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	buf.Filename = path
	return datum.True, nil
}

// cmdSaveAllBuffers writes every changed, filename-bearing buffer.
func cmdSaveAllBuffers(ctx *Context, args []*datum.Datum) (*datum.Datum, error) {
	saved := 0
	for _, buf := range ctx.Sessions.List() {
		if !buf.Changed() || buf.Filename == "" {
			continue
		}
		if err := buf.Write(ctx.Writer, buf.Filename, saveMode(ctx)); err != nil {
			return nil, fmt.Errorf("writing %s: %w", buf.Filename, err)
		}
		saved++
	}
	return datum.NewInt(int64(saved)), nil
}

var fileCommands = []*Command{
	{Name: "findFile", MinArgs: 1, MaxArgs: 1, Fn: cmdFindFile, Descr: "open a file into a buffer"},
	{Name: "saveBuffer", MinArgs: 0, MaxArgs: 1, Fn: cmdSaveBuffer, Descr: "write the current buffer to its file"},
	{Name: "saveAllBuffers", MinArgs: 0, MaxArgs: 0, Fn: cmdSaveAllBuffers, Descr: "write every changed buffer"},
}
