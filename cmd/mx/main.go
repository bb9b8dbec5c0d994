// Command mx is the MightEMacs-style editor's launcher (spec.md §6):
// it parses the bundled single-dash command line, runs the site and
// user startup scripts, applies command-line switches in the same
// order original_source/memacs-8.0.0/src/main.c does, then enters the
// command loop. Grounded on main.c's edinit0/scancmdline/startup/
// docmdline/editloop sequence.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mxeditor/mx/internal/buffer"
	"github.com/mxeditor/mx/internal/datum"
	"github.com/mxeditor/mx/internal/editor"
	"github.com/mxeditor/mx/internal/mode"
	"github.com/mxeditor/mx/internal/rc"
	"github.com/mxeditor/mx/internal/term"
)

// Site/user startup file names and the script search path default,
// renamed but structurally grounded on edef.h's SCRIPT_EXT/
// SITE_STARTUP/USER_STARTUP/MMPATH_NAME/MMPATH_DEFAULT.
const (
	scriptExt      = ".mx"
	siteStartup    = "mx.mx"
	userStartup    = ".mxrc"
	mmPathEnvName  = "MMPATH"
	mmPathDefault  = ":/usr/local/etc/mx.d:/usr/local/etc"
	firstBufName   = "unnamed"
	exitCodeClean  = 0
	exitCodeError  = 1
	exitCodeHelp   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, out, errOut io.Writer) int {
	args, err := ParseArgs(argv)
	if err != nil {
		fmt.Fprintf(errOut, "%s: %v\n", progName(), err)
		return exitCodeError
	}
	if args.Help != helpNone {
		printHelp(out, args.Help)
		return exitCodeClean
	}

	if os.Getenv("TERM") == "" {
		fmt.Fprintf(errOut, "%s: TERM is not set\n", progName())
		return exitCodeError
	}

	disp, err := term.NewTcellDisplay()
	if err != nil {
		fmt.Fprintf(errOut, "%s: initializing terminal: %v\n", progName(), err)
		return exitCodeError
	}
	defer disp.Close()

	sess := editor.New(disp)
	l := &launcher{sess: sess, args: args}

	if err := l.runStartupFiles(); err != nil {
		disp.Close()
		fmt.Fprintln(errOut, err)
		return exitCodeError
	}

	if err := l.applyArgs(); err != nil {
		disp.Close()
		fmt.Fprintln(errOut, err)
		return exitCodeError
	}

	result := sess.Run()
	disp.Close()

	if result.Message != "" && (result.Status.UserVisible() || result.Status.Fatal()) {
		fmt.Fprintln(errOut, result.Message)
	}
	switch {
	case result.Status.Fatal():
		return exitCodeError
	case result.Status == rc.HelpExit:
		return exitCodeHelp
	case result.Status == rc.UserExit || result.Status == rc.ScriptExit:
		return exitCodeClean
	case result.Status.UserVisible():
		return exitCodeError
	default:
		return exitCodeClean
	}
}

// launcher threads the parsed Args through startup-file execution and
// argv application against one live Session (ground: main.c's main()
// body, which does the same two steps against one process-wide editor
// state).
type launcher struct {
	sess *editor.Session
	args *Args

	firstBuf      *buffer.Buffer
	defaultModes  []modeTok
	defaultDelim  string
	readOnly      bool
	pendingGoto   *op
	pendingSrch   *op
	scriptPath string // non-empty once -X has overridden the default search path
}

// scriptDirs returns the colon-separated script search path: an -X
// switch's value if one was given, else $MMPATH, else the compiled-in
// default (spec.md §6).
func (l *launcher) scriptDirs() []string {
	path := l.scriptPath
	if path == "" {
		path = os.Getenv(mmPathEnvName)
	}
	if path == "" {
		path = mmPathDefault
	}
	return strings.Split(path, ":")
}

// findScript searches scriptDirs() (plus "." implicitly via an empty
// dir entry) for name, trying both the bare name and name+scriptExt.
func (l *launcher) findScript(name string) (string, bool) {
	if strings.ContainsRune(name, '/') {
		if _, err := os.Stat(name); err == nil {
			return name, true
		}
		return "", false
	}
	candidates := []string{name}
	if !strings.HasSuffix(name, scriptExt) {
		candidates = append(candidates, name+scriptExt)
	}
	for _, dir := range l.scriptDirs() {
		for _, cand := range candidates {
			p := cand
			if dir != "" {
				p = filepath.Join(dir, cand)
			}
			if _, err := os.Stat(p); err == nil {
				return p, true
			}
		}
	}
	return "", false
}

// runStartupFiles runs the site file, then the user file (name
// beginning with '.', resolved in $HOME), unless -n was given
// (ground: main.c's "startup(SITE_STARTUP,...) || startup(USER_STARTUP,...)").
// A missing startup file is not an error (main.c passes ignore=true
// for both); a script that fails to execute is.
func (l *launcher) runStartupFiles() error {
	if l.args.NoStartup {
		return nil
	}
	if err := l.runStartupFile(siteStartup); err != nil {
		return err
	}
	home := os.Getenv("HOME")
	if home == "" {
		return nil
	}
	return l.runStartupFile(filepath.Join(home, userStartup))
}

func (l *launcher) runStartupFile(name string) error {
	path, ok := l.findScript(name)
	if !ok {
		return nil
	}
	return l.runScriptFile(path)
}

// applyArgs replays the parsed command line in order, matching
// docmdline()'s single left-to-right pass, then (once) applies any
// pending -g/+ goto or -s search against the first buffer opened
// (main.c: "Process startup gotos and searches" runs once, after
// argument processing, against firstbp).
func (l *launcher) applyArgs() error {
	for _, o := range l.args.Ops {
		if err := l.applyOp(o); err != nil {
			return err
		}
	}
	return l.applyGotoOrSearch()
}

func (l *launcher) applyOp(o op) error {
	switch o.kind {
	case opChDir:
		if err := os.Chdir(o.s); err != nil {
			return fmt.Errorf("%s: %w", progName(), err)
		}
	case opStatement:
		if _, err := l.sess.Exec.RunStatement(o.s); err != nil {
			return err
		}
	case opMode:
		return l.applyModeOp(o)
	case opGoto:
		cp := o
		l.pendingGoto = &cp
	case opInputDelim:
		l.defaultDelim = o.s
	case opSearch:
		cp := o
		l.pendingSrch = &cp
	case opScriptPath:
		l.scriptPath = o.s
	case opReadOnly:
		l.readOnly = o.s == "r"
	case opRunScript:
		path, ok := l.findScript(o.s)
		if !ok {
			return fmt.Errorf("script file %q not found", o.s)
		}
		return l.runScriptFile(path)
	case opOpenFile:
		return l.openFile(o)
	}
	return nil
}

func (l *launcher) applyModeOp(o op) error {
	for _, m := range o.modes {
		if o.global {
			if err := l.sess.Ctx.Modes.SetGlobal(m.Name, m.Enable); err != nil {
				return err
			}
			continue
		}
		l.defaultModes = append(l.defaultModes, m)
	}
	return nil
}

// runScriptFile compiles and runs a whole startup/launcher script
// buffer (ground: main.c's startup()'s dofile(...,SRUN_STARTUP)).
func (l *launcher) runScriptFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	name := "&" + filepath.Base(path)
	buf, err := l.sess.Sessions.Create(name)
	if err != nil {
		buf = l.sess.Sessions.Lookup(name)
	}
	buf.Read(data, "\n")
	if _, err := l.sess.Exec.RunBuffer(buf); err != nil {
		return fmt.Errorf("running %s: %w", path, err)
	}
	return nil
}

// openFile loads one command-line file (or standard input) into a new
// buffer, inactive until the editor switches to it, applying any
// pending default buffer modes and the read-only switch (ground:
// main.c's docmdline's "dofile:" file-processing block).
func (l *launcher) openFile(o op) error {
	var name string
	if o.stdin {
		name = firstBufName
	} else {
		name = filepath.Base(o.s)
	}
	buf := l.sess.Sessions.Lookup(name)
	if buf == nil {
		var err error
		buf, err = l.sess.Sessions.Create(name)
		if err != nil {
			return err
		}
	}
	if o.stdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading standard input: %w", err)
		}
		buf.Read(data, l.defaultDelim)
	} else if l.defaultDelim != "" {
		data, err := os.ReadFile(o.s)
		if err != nil {
			return fmt.Errorf("reading %s: %w", o.s, err)
		}
		buf.Read(data, l.defaultDelim)
		buf.Filename = o.s
	} else {
		if err := buf.ReadFile(buffer.DefaultReader, o.s); err != nil {
			return fmt.Errorf("reading %s: %w", o.s, err)
		}
	}
	for _, m := range l.defaultModes {
		if m.Enable {
			buf.Modes[m.Name] = true
		} else {
			delete(buf.Modes, m.Name)
		}
	}
	if l.readOnly {
		buf.Modes[mode.ReadOnly] = true
	}
	if l.firstBuf == nil {
		l.firstBuf = buf
	}
	return nil
}

// applyGotoOrSearch shows the first buffer opened in the current
// window, then applies at most one of a pending goto or search against
// it (main.c: these are mutually exclusive, applied once after all argv
// processing). If no file was opened it does nothing, and a pending
// goto or search is dropped.
func (l *launcher) applyGotoOrSearch() error {
	buf := l.firstBuf
	if buf == nil {
		return nil
	}
	l.sess.Screen.Cur.SwitchBuffer(buf)

	switch {
	case l.pendingGoto != nil && l.pendingSrch != nil:
		return fmt.Errorf("cannot search and goto at the same time")
	case l.pendingGoto != nil:
		_, err := l.sess.Cmds.Call("gotoLine", intArgs(l.pendingGoto.line), false)
		if err != nil {
			return err
		}
		if l.pendingGoto.hasCol {
			w := l.sess.Screen.Cur
			w.Dot.Off = int(l.pendingGoto.col - 1)
			if w.Dot.Off < 0 {
				w.Dot.Off = 0
			}
		}
	case l.pendingSrch != nil:
		l.sess.Ctx.SearchRing.Record(l.pendingSrch.s)
		if _, err := l.sess.Cmds.Call("searchForward", nil, false); err != nil {
			return err
		}
	}
	return nil
}

func progName() string {
	if len(os.Args) == 0 {
		return "mx"
	}
	return filepath.Base(os.Args[0])
}

func printHelp(out io.Writer, kind helpKind) {
	switch kind {
	case helpUsage:
		fmt.Fprintln(out, usageLine())
	case helpLong:
		fmt.Fprintln(out, usageLine())
		fmt.Fprintln(out, longHelp)
	case helpVersion:
		fmt.Fprintln(out, versionString)
	case helpCopyright:
		fmt.Fprintln(out, copyrightText)
	}
}

func usageLine() string {
	return progName() + " [-? | -h | -V | -C] [-D[!]modes,...] [-d dir] [-e stmt] " +
		"[-G[!]modes,...] [-g line[:pos] | +line[:pos]] [-i delim] [-n] [-R | -r] " +
		"[-s search] [-X path] [@script] [file...]"
}

const (
	versionString = "mx (editor core)"
	copyrightText = "mx: an Emacs-style extensible text editor."
	longHelp       = "Run without arguments to edit a fresh buffer; see the manual for the\n" +
		"full switch reference."
)

func intArgs(n int64) []*datum.Datum { return []*datum.Datum{datum.NewInt(n)} }
