package main

import (
	"fmt"
	"strconv"
	"strings"
)

// helpKind is the set of informational switches that print something
// and exit immediately without starting the editor (spec.md §6:
// "-? | -h | -V | -C").
type helpKind int

const (
	helpNone helpKind = iota
	helpUsage
	helpLong
	helpVersion
	helpCopyright
)

// opKind tags one entry of an Args.Ops sequence: the command line is
// processed as a single left-to-right pass of side effects, exactly
// the way original_source/memacs-8.0.0/src/main.c's docmdline() walks
// argv once and acts on each switch or file argument as it's seen.
type opKind int

const (
	opChDir opKind = iota
	opStatement
	opMode
	opGoto
	opInputDelim
	opSearch
	opScriptPath
	opReadOnly
	opRunScript
	opOpenFile
)

// modeTok is one name of a comma-separated -D/-G mode list, each with
// its own independent "!" (disable) prefix (ground: main.c's
// modeswitch(), which checks for a leading '!' after splitting on
// commas, not once for the whole switch value).
type modeTok struct {
	Name   string
	Enable bool
}

// op is one parsed command-line action, applied in order by main().
type op struct {
	kind   opKind
	s      string
	modes  []modeTok
	global bool // opMode: global scope vs. default (future-buffer) scope
	line   int64
	col    int64
	hasCol bool
	stdin  bool // opOpenFile: read from standard input
}

// Args is the fully parsed command line (spec.md §6).
type Args struct {
	NoStartup bool
	Help      helpKind
	Ops       []op
}

// ParseArgs parses argv (excluding argv[0]) per spec.md §6's bundled
// single-dash grammar. It never touches the filesystem or environment;
// main.go executes the resulting Ops against a live Session.
func ParseArgs(argv []string) (*Args, error) {
	a := &Args{}

	// First pass: an info switch anywhere means "print and exit",
	// matching main.c's clhelp prescan; -n is detected the same way so
	// it can appear in any position, not just first.
	for _, arg := range argv {
		switch arg {
		case "-?":
			a.Help = helpUsage
			return a, nil
		case "-h":
			a.Help = helpLong
			return a, nil
		case "-V":
			a.Help = helpVersion
			return a, nil
		case "-C":
			a.Help = helpCopyright
			return a, nil
		case "-n":
			a.NoStartup = true
		}
	}

	for _, arg := range argv {
		switch {
		case arg == "-n":
			continue // already recorded above
		case arg == "-":
			a.Ops = append(a.Ops, op{kind: opOpenFile, stdin: true})
		case arg == "+" || (len(arg) > 1 && arg[0] == '+'):
			line, col, hasCol, err := parseGoto(arg[1:])
			if err != nil {
				return nil, err
			}
			a.Ops = append(a.Ops, op{kind: opGoto, line: line, col: col, hasCol: hasCol})
		case len(arg) >= 2 && arg[0] == '-':
			sw, val := arg[1], arg[2:]
			switch sw {
			case 'D', 'G':
				if val == "" {
					return nil, fmt.Errorf("-%c switch requires a value", sw)
				}
				a.Ops = append(a.Ops, op{kind: opMode, modes: parseModeList(val), global: sw == 'G'})
			case 'd':
				if val == "" {
					return nil, fmt.Errorf("-d switch requires a value")
				}
				a.Ops = append(a.Ops, op{kind: opChDir, s: val})
			case 'e':
				if val == "" {
					return nil, fmt.Errorf("-e switch requires a value")
				}
				a.Ops = append(a.Ops, op{kind: opStatement, s: val})
			case 'g':
				if val == "" {
					return nil, fmt.Errorf("-g switch requires a value")
				}
				line, col, hasCol, err := parseGoto(val)
				if err != nil {
					return nil, err
				}
				a.Ops = append(a.Ops, op{kind: opGoto, line: line, col: col, hasCol: hasCol})
			case 'i':
				a.Ops = append(a.Ops, op{kind: opInputDelim, s: unescapeDelim(val)})
			case 'R':
				a.Ops = append(a.Ops, op{kind: opReadOnly, s: "R"})
			case 'r':
				a.Ops = append(a.Ops, op{kind: opReadOnly, s: "r"})
			case 's':
				if val == "" {
					return nil, fmt.Errorf("-s switch requires a value")
				}
				a.Ops = append(a.Ops, op{kind: opSearch, s: val})
			case 'X':
				if val == "" {
					return nil, fmt.Errorf("-X switch requires a value")
				}
				a.Ops = append(a.Ops, op{kind: opScriptPath, s: val})
			default:
				return nil, fmt.Errorf("unknown switch, -%c", sw)
			}
		case len(arg) > 1 && arg[0] == '@':
			a.Ops = append(a.Ops, op{kind: opRunScript, s: arg[1:]})
		default:
			a.Ops = append(a.Ops, op{kind: opOpenFile, s: arg})
		}
	}
	return a, nil
}

// parseModeList splits a comma-separated -D/-G value into individual
// mode tokens, each with its own "!" (disable) prefix.
func parseModeList(val string) []modeTok {
	var out []modeTok
	for _, part := range strings.Split(val, ",") {
		if part == "" {
			continue
		}
		if part[0] == '!' {
			out = append(out, modeTok{Name: part[1:], Enable: false})
		} else {
			out = append(out, modeTok{Name: part, Enable: true})
		}
	}
	return out
}

// parseGoto parses a "line[:col]" value as used by both -g and the
// bare "+line[:col]" form (ground: main.c's gotoswitch()).
func parseGoto(val string) (line, col int64, hasCol bool, err error) {
	parts := strings.SplitN(val, ":", 2)
	line, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid line number %q", parts[0])
	}
	if len(parts) == 2 {
		col, err = strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return 0, 0, false, fmt.Errorf("invalid column number %q", parts[1])
		}
		hasCol = true
	}
	return line, col, hasCol, nil
}

// unescapeDelim turns the -i switch's argument into the literal
// delimiter bytes it names: "nl", "cr", "crlf" (case-insensitive), or
// a value taken literally otherwise.
func unescapeDelim(val string) string {
	switch strings.ToLower(val) {
	case "nl", "lf":
		return "\n"
	case "cr":
		return "\r"
	case "crlf":
		return "\r\n"
	default:
		return val
	}
}
