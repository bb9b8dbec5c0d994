package redisplay

import (
	"fmt"

	"github.com/mxeditor/mx/internal/mode"
	"github.com/mxeditor/mx/internal/rc"
	"github.com/mxeditor/mx/internal/term"
)

// colorNames maps a "~c N" color-pair number to a foreground color
// name understood by term.Style; pair 0 is the terminal default.
var colorNames = []string{"", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

type styledRune struct {
	r rune
	s term.Style
}

// decodeRuns expands spec.md §6's message-line escape language into a
// run of styled runes: printable bytes pass through; control bytes
// render in caret or hex notation; '~' introduces an attribute change.
func decodeRuns(msg string, base term.Style) []styledRune {
	style := base
	altUnderline := false
	var out []styledRune
	b := []byte(msg)
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c == '~' && i+1 < len(b) {
			i++
			switch b[i] {
			case '~':
				out = append(out, styledRune{'~', style})
			case 'b':
				style.Attr |= term.AttrBold
			case 'B':
				style.Attr &^= term.AttrBold
			case 'u':
				style.Attr |= term.AttrUnderline
				altUnderline = false
			case 'U':
				style.Attr &^= term.AttrUnderline
				altUnderline = false
			case 'r':
				style.Attr |= term.AttrReverse
			case 'R':
				style.Attr &^= term.AttrReverse
			case 'Z':
				style = base
				altUnderline = false
			case '#':
				if i+1 < len(b) && b[i+1] == 'u' {
					i++
					style.Attr |= term.AttrUnderline
					altUnderline = true
				}
			case 'c':
				n, adv := readDecimal(b, i+1)
				i += adv
				if n >= 0 && n < len(colorNames) {
					style.Fg = colorNames[n]
				}
			case 'C':
				style.Fg = base.Fg
			default:
				// Unknown escape: treat the tilde and the following
				// byte as literal text rather than erroring.
				out = append(out, styledRune{'~', style})
				out = append(out, styledRune{rune(b[i]), style})
			}
			continue
		}
		cellStyle := style
		if altUnderline && c == ' ' {
			cellStyle.Attr &^= term.AttrUnderline
		}
		for _, r := range escapeControl(c) {
			out = append(out, styledRune{r, cellStyle})
		}
	}
	return out
}

// readDecimal reads a run of ASCII digits starting at off, returning
// the parsed value (-1 if none) and how many bytes were consumed.
func readDecimal(b []byte, off int) (int, int) {
	n, adv := -1, 0
	for off+adv < len(b) && b[off+adv] >= '0' && b[off+adv] <= '9' {
		if n < 0 {
			n = 0
		}
		n = n*10 + int(b[off+adv]-'0')
		adv++
	}
	return n, adv
}

// escapeControl renders one byte for the message line (spec.md §6):
// control bytes (< 0x20) and DEL in caret notation (DEL as "^?"), high
// bytes (>= 0x80) in hex, everything else verbatim.
func escapeControl(c byte) []rune {
	switch {
	case c == 0x7F:
		return []rune{'^', '?'}
	case c < 0x20:
		return []rune{'^', rune(c + 0x40)}
	case c >= 0x7F:
		return []rune(fmt.Sprintf("\\x%02X", c))
	default:
		return []rune{rune(c)}
	}
}

// paintMessage paints the pending result message on the terminal's
// last row, if message display is enabled and a message is present
// (spec.md §4.6 step 4, §7 "painted ... wrapped in [ ] if the wrap
// flag is set").
func (p *Pipeline) paintMessage(reg *rc.Register, modes *mode.Table, cols int) {
	rows, _ := p.Disp.Size()
	row := rows - 1
	if rows <= 0 {
		return
	}
	result := reg.Current()
	if result.Message == "" || !modes.GlobalEnabled(mode.Message) {
		p.blankRow(row, cols)
		return
	}
	text := result.Message
	if result.Flags&rc.Wrap != 0 {
		text = "[" + text + "]"
	}
	runs := decodeRuns(text, p.MessageStyle)
	col := 0
	for _, sr := range runs {
		if col >= cols {
			break
		}
		p.Disp.SetCell(row, col, sr.r, sr.s)
		col++
	}
	for ; col < cols; col++ {
		p.Disp.SetCell(row, col, ' ', p.MessageStyle)
	}
}
