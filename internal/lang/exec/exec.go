package exec

import (
	"fmt"

	"github.com/mxeditor/mx/internal/buffer"
	"github.com/mxeditor/mx/internal/datum"
	"github.com/mxeditor/mx/internal/lang/eval"
	"github.com/mxeditor/mx/internal/rc"
)

// Caller is the seam to internal/command: everything the executor
// cannot resolve itself (a builtin command name, a registered script
// function) is forwarded here. Named variables, whether $-prefixed
// (lexer.GlobalVar) or bare identifiers, all live in the executor's one
// session-global table; a macro has no local named variables, and its
// only per-call state is its positional-argument frame ($1..$N via
// GroupRef).
type Caller interface {
	Call(name string, args []*datum.Datum, parenless bool) (*datum.Datum, error)
	IsCommand(name string) bool
}

// Default tuning knobs (spec.md §4.7: "a fixed-depth level stack
// (default max 100)" and "a configurable loopmax").
const (
	DefaultLevelMax = 100
	DefaultLoopMax  = 10000
)

// frame is one macro invocation's argument context: $1..$N are its
// positional arguments and $0 is their count. A frame does not carry
// the caller's numeric argument.
type frame struct {
	name        string
	args        []*datum.Datum
	constrained bool
}

// Executor runs a compiled Program against a session: it owns the
// global variable table, the macro registry, the hook table, and the
// result register every statement reports through (spec.md §4.7, §4.8).
type Executor struct {
	RC     *rc.Register
	Hooks  *HookTable
	Caller Caller

	globals map[string]*datum.Datum
	macros  map[string]*MacroDef
	frames  []*frame

	levelDepth int
	levelMax   int
	loopMax    int
}

// New creates an Executor. rcReg is the shared result register
// (spec.md §3); caller resolves anything that isn't a $-variable or a
// macro this executor itself compiled.
func New(rcReg *rc.Register, caller Caller) *Executor {
	return &Executor{
		RC:       rcReg,
		Hooks:    NewHookTable(),
		Caller:   caller,
		globals:  make(map[string]*datum.Datum),
		macros:   make(map[string]*MacroDef),
		levelMax: DefaultLevelMax,
		loopMax:  DefaultLoopMax,
	}
}

// SetLevelMax/SetLoopMax override the nesting-depth and per-loop
// iteration ceilings (both have sane defaults above).
func (ex *Executor) SetLevelMax(n int) { ex.levelMax = n }
func (ex *Executor) SetLoopMax(n int)  { ex.loopMax = n }

// IsCommand implements the eval.Parser isCommand callback: a name is a
// parenless-callable command if it's a macro this executor knows about
// or the host Caller recognizes it (ground: exec.c's run()/fabsearch(),
// DESIGN.md's Open Question decision on parenless calls).
func (ex *Executor) IsCommand(name string) bool {
	if _, ok := ex.macros[name]; ok {
		return true
	}
	if ex.Caller != nil {
		return ex.Caller.IsCommand(name)
	}
	return false
}

// --- eval.Env ---

// GetVar implements eval.Env.
func (ex *Executor) GetVar(name string) (*datum.Datum, bool) {
	d, ok := ex.globals[name]
	return d, ok
}

// SetVar implements eval.Env.
func (ex *Executor) SetVar(name string, v *datum.Datum) error {
	ex.globals[name] = v
	return nil
}

// Arg implements eval.Env: $0 is the argument count, $1..$N are
// positional arguments of the innermost active macro frame.
func (ex *Executor) Arg(n int64) (*datum.Datum, bool) {
	if len(ex.frames) == 0 {
		return nil, false
	}
	f := ex.frames[len(ex.frames)-1]
	if n == 0 {
		return datum.NewInt(int64(len(f.args))), true
	}
	idx := int(n) - 1
	if idx < 0 || idx >= len(f.args) {
		return nil, false
	}
	return f.args[idx], true
}

// Call implements eval.Env: a function/command call resolves first to
// a macro this executor compiled (recursion, or a sibling macro in the
// same library buffer), then falls through to the host Caller.
func (ex *Executor) Call(name string, args []*datum.Datum, parenless bool) (*datum.Datum, error) {
	if _, ok := ex.macros[name]; ok {
		return ex.CallMacro(name, args)
	}
	if ex.Caller != nil {
		return ex.Caller.Call(name, args, parenless)
	}
	return nil, fmt.Errorf("exec: unknown command or function %q", name)
}

// RegisterMacros merges a compiled Program's macro definitions into
// this executor so later statements (including other macros) can call
// them by name (spec.md §3: macro buffers are compiled, then stay
// callable for the rest of the session).
func (ex *Executor) RegisterMacros(prog *Program) {
	for name, md := range prog.Macros {
		ex.macros[name] = md
	}
}

// LoadBuffer compiles buf (caching on the buffer per spec.md §4.7) and
// registers any macros it defines.
func (ex *Executor) LoadBuffer(buf *buffer.Buffer) (*Program, error) {
	prog, err := CompileBuffer(buf, ex.IsCommand)
	if err != nil {
		return nil, err
	}
	ex.RegisterMacros(prog)
	return prog, nil
}

// RunBuffer compiles (if needed) and executes buf's top-level
// statements, e.g. a startup file or a `@script` launcher argument
// that is not itself wrapped in !macro/!endmacro.
func (ex *Executor) RunBuffer(buf *buffer.Buffer) (*datum.Datum, error) {
	prog, err := ex.LoadBuffer(buf)
	if err != nil {
		ex.RC.Setf(rc.ScriptError, 0, "%v", err)
		return nil, err
	}
	return ex.RunBlock(prog.Top)
}

// RunStatement compiles and executes one piece of raw source (the `-e`
// command-line switch, spec.md §6).
func (ex *Executor) RunStatement(src string) (*datum.Datum, error) {
	blk, err := CompileStatement(src, ex.IsCommand)
	if err != nil {
		ex.RC.Setf(rc.ScriptError, 0, "%v", err)
		return nil, err
	}
	return ex.RunBlock(blk)
}

// RunBlock executes a top-level block outside any macro frame. A
// !return, !break, or !next reaching the top is an error: those only
// make sense inside a macro body or a loop (spec.md §4.7).
func (ex *Executor) RunBlock(blk Block) (*datum.Datum, error) {
	ex.levelDepth = 0
	v, err := ex.execBlock(blk)
	if err != nil {
		switch err.(type) {
		case returnSignal:
			if rs, ok := err.(returnSignal); ok {
				return rs.val, nil
			}
		case breakSignal:
			err = fmt.Errorf("exec: !break outside any loop")
		case nextSignal:
			err = fmt.Errorf("exec: !next outside any loop")
		}
		ex.RC.Setf(rc.ScriptError, 0, "%v", err)
		return nil, err
	}
	return v, nil
}

// CallMacro invokes the named macro with args, enforcing its
// min/max argument count and constrained/omnipotent call rules
// (spec.md §4.7: "Script mode enforces min/max argument counts.
// Macros marked constrained may only be called from an unconstrained
// context; omnipotent macros may be called anywhere").
func (ex *Executor) CallMacro(name string, args []*datum.Datum) (*datum.Datum, error) {
	md, ok := ex.macros[name]
	if !ok {
		return nil, fmt.Errorf("exec: no such macro %q", name)
	}
	if len(args) < md.MinArgs || (md.MaxArgs >= 0 && len(args) > md.MaxArgs) {
		return nil, fmt.Errorf("exec: macro %q takes %d..%s arguments, got %d", name, md.MinArgs, maxArgsStr(md.MaxArgs), len(args))
	}
	if md.Constrained && !md.Omnipotent && ex.inConstrainedContext() {
		return nil, fmt.Errorf("exec: constrained macro %q cannot be called from a constrained context", name)
	}

	ex.frames = append(ex.frames, &frame{name: name, args: args, constrained: md.Constrained})
	savedDepth := ex.levelDepth
	ex.levelDepth = 0
	defer func() {
		ex.frames = ex.frames[:len(ex.frames)-1]
		ex.levelDepth = savedDepth
	}()

	v, err := ex.execBlock(md.Body)
	if err != nil {
		switch sig := err.(type) {
		case returnSignal:
			return sig.val, nil
		case breakSignal:
			return nil, fmt.Errorf("exec: !break outside any loop in macro %q", name)
		case nextSignal:
			return nil, fmt.Errorf("exec: !next outside any loop in macro %q", name)
		}
		return nil, err
	}
	return v, nil
}

func maxArgsStr(n int) string {
	if n < 0 {
		return "inf"
	}
	return fmt.Sprintf("%d", n)
}

// inConstrainedContext reports whether the innermost active frame
// belongs to a constrained macro (the rule that blocks calling a
// second constrained macro from within one).
func (ex *Executor) inConstrainedContext() bool {
	if len(ex.frames) == 0 {
		return false
	}
	return ex.frames[len(ex.frames)-1].constrained
}

// --- control-flow signals ---
//
// break/next/return unwind execBlock/execStmt the way a Go panic would,
// but as ordinary returned errors: cheap, inspectable with a type
// switch, and impossible to let slip past a recover() site by mistake.

type breakSignal struct{ level int }

func (breakSignal) Error() string { return "exec: break" }

type nextSignal struct{}

func (nextSignal) Error() string { return "exec: next" }

type returnSignal struct{ val *datum.Datum }

func (returnSignal) Error() string { return "exec: return" }

func (ex *Executor) execBlock(blk Block) (*datum.Datum, error) {
	result := datum.Nil
	for _, st := range blk {
		v, err := ex.execStmt(st)
		if err != nil {
			return nil, err
		}
		if v != nil {
			result = v
		}
	}
	return result, nil
}

func (ex *Executor) execStmt(st Stmt) (*datum.Datum, error) {
	switch s := st.(type) {
	case *ExprStmt:
		v, err := eval.Eval(s.Expr, ex)
		if err != nil {
			ex.RC.Setf(rc.ScriptError, 0, "%v", err)
			return nil, err
		}
		return v, nil
	case *IfStmt:
		return ex.execIf(s)
	case *LoopStmt:
		return ex.execLoop(s)
	case *BreakStmt:
		return nil, breakSignal{level: s.Level}
	case *NextStmt:
		return nil, nextSignal{}
	case *ReturnStmt:
		v := datum.Nil
		if s.Value != nil {
			var err error
			v, err = eval.Eval(s.Value, ex)
			if err != nil {
				ex.RC.Setf(rc.ScriptError, 0, "%v", err)
				return nil, err
			}
		}
		return nil, returnSignal{val: v}
	case *ForceStmt:
		_, err := ex.execStmt(s.Inner)
		if err != nil {
			switch err.(type) {
			case breakSignal, nextSignal, returnSignal:
				return nil, err
			}
			// !force catches a failing result-register severity and
			// converts it to Success (spec.md §4.7, §7); it has no
			// visibility into an enclosing loop's iteration counter,
			// only into the statement it directly wraps (DESIGN.md
			// Open Question decision).
			ex.RC.Set(rc.Success, rc.Force, "")
			return datum.Nil, nil
		}
		return datum.Nil, nil
	default:
		return nil, fmt.Errorf("exec: unhandled statement %T", st)
	}
}

func (ex *Executor) pushLevel() error {
	ex.levelDepth++
	if ex.levelDepth > ex.levelMax {
		ex.levelDepth--
		return fmt.Errorf("exec: if/loop nesting exceeds limit (%d)", ex.levelMax)
	}
	return nil
}

func (ex *Executor) popLevel() { ex.levelDepth-- }

func (ex *Executor) execIf(s *IfStmt) (*datum.Datum, error) {
	if err := ex.pushLevel(); err != nil {
		return nil, err
	}
	defer ex.popLevel()

	cond, err := eval.Eval(s.Cond, ex)
	if err != nil {
		ex.RC.Setf(rc.ScriptError, 0, "%v", err)
		return nil, err
	}
	if cond.Truthy() {
		return ex.execBlock(s.Then)
	}
	for _, e := range s.Elifs {
		c, err := eval.Eval(e.Cond, ex)
		if err != nil {
			ex.RC.Setf(rc.ScriptError, 0, "%v", err)
			return nil, err
		}
		if c.Truthy() {
			return ex.execBlock(e.Body)
		}
	}
	if s.Else != nil {
		return ex.execBlock(s.Else)
	}
	return datum.Nil, nil
}

// execLoop drives a LoopStmt, honoring !break (decrementing a
// multi-level break's count once per enclosing loop it passes through)
// and !next, and enforcing loopMax (spec.md §4.7: "!endloop increments
// the loop count and enforces a configurable loopmax").
func (ex *Executor) execLoop(s *LoopStmt) (*datum.Datum, error) {
	if err := ex.pushLevel(); err != nil {
		return nil, err
	}
	defer ex.popLevel()

	result := datum.Nil
	iterations := 0
	for {
		if s.Cond != nil {
			c, err := eval.Eval(s.Cond, ex)
			if err != nil {
				ex.RC.Setf(rc.ScriptError, 0, "%v", err)
				return nil, err
			}
			truthy := c.Truthy()
			if s.Kind == "while" && !truthy {
				break
			}
			if s.Kind == "until" && truthy {
				break
			}
		}

		v, err := ex.execBlock(s.Body)
		if err != nil {
			if bs, ok := err.(breakSignal); ok {
				if bs.level > 1 {
					return nil, breakSignal{level: bs.level - 1}
				}
				break
			}
			if _, ok := err.(nextSignal); !ok {
				return nil, err
			}
			// nextSignal: fall through to the iteration-count check and
			// loop back around to the condition test.
		} else if v != nil {
			result = v
		}

		iterations++
		if iterations > ex.loopMax {
			return nil, fmt.Errorf("exec: loop exceeded loopmax (%d) iterations", ex.loopMax)
		}
	}
	return result, nil
}
