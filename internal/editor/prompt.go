package editor

import (
	"github.com/mxeditor/mx/internal/rc"
)

// readPromptKey displays message on the message line and reads exactly
// one raw keystroke, returning ok=false if the abort key was pressed or
// the terminal closed (spec.md §5 "Cancellation": query-replace and
// other interactive prompts read one keystroke at a time and honor the
// abort key the same as the main command loop).
func (s *Session) readPromptKey(message string) (rune, bool) {
	s.Ctx.RC.Set(rc.Success, rc.Force|rc.Keep, message)
	s.Redraw.Paint(s.Screen, s.Ctx.RC, s.Ctx.Modes)

	key, ok := s.Asm.Next()
	if !ok {
		return 0, false
	}
	if key == AbortKey {
		s.Ctx.RC.Set(rc.UserAbort, 0, "Aborted")
		return 0, false
	}
	if key.Prefixes() != 0 || key.Base() >= 0x80 {
		return 0, false
	}
	return rune(key.Base()), true
}
