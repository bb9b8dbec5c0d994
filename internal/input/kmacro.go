package input

import "fmt"

// macroState is the keyboard macro recorder's state machine (ground:
// original_source/memacs-8.0.0/src/main.c's kbdmode / kbdm buffer:
// "stopped" is the normal state, "recording" appends every dispatched
// key, "playing" replays a previously recorded sequence one key at a
// time).
type macroState uint8

const (
	macroStopped macroState = iota
	macroRecording
	macroPlaying
)

// KeyboardMacro records and replays a sequence of ExtKeys.
type KeyboardMacro struct {
	state       macroState
	keys        []ExtKey
	playPos     int
	repeatsLeft int
}

// StartRecording begins capturing keys, discarding any previously
// recorded macro. Returns an error if already recording or playing.
func (m *KeyboardMacro) StartRecording() error {
	if m.state != macroStopped {
		return fmt.Errorf("keyboard macro already %s", m.stateName())
	}
	m.state = macroRecording
	m.keys = nil
	return nil
}

// StopRecording ends capture. It is a no-op (not an error) if no
// recording was in progress, matching the original's tolerant toggle
// behavior.
func (m *KeyboardMacro) StopRecording() {
	if m.state == macroRecording {
		m.state = macroStopped
	}
}

// Recording reports whether a macro is currently being captured.
func (m *KeyboardMacro) Recording() bool { return m.state == macroRecording }

// Record appends key to the in-progress macro and does nothing when no
// recording is in progress. The Assembler calls it for every key it
// composes, so the key that starts recording (composed before
// recording begins) is not captured, while the key that ends recording
// is captured and later removed by TrimLast.
func (m *KeyboardMacro) Record(key ExtKey) {
	if m.state == macroRecording {
		m.keys = append(m.keys, key)
	}
}

// Play begins replaying the last recorded macro n times (n<1 plays it
// once). Returns an error if no macro has been recorded or a
// recording/playback is already in progress.
func (m *KeyboardMacro) Play(n int) error {
	if m.state != macroStopped {
		return fmt.Errorf("keyboard macro already %s", m.stateName())
	}
	if len(m.keys) == 0 {
		return fmt.Errorf("no keyboard macro has been recorded")
	}
	if n < 1 {
		n = 1
	}
	m.state = macroPlaying
	m.playPos = 0
	m.repeatsLeft = n
	return nil
}

// Next returns the next key to dispatch during playback, advancing the
// internal position and wrapping to the next repetition. ok is false
// once every repetition has been exhausted, at which point playback
// state resets to stopped.
func (m *KeyboardMacro) Next() (key ExtKey, ok bool) {
	if m.state != macroPlaying {
		return 0, false
	}
	if m.playPos >= len(m.keys) {
		m.repeatsLeft--
		m.playPos = 0
		if m.repeatsLeft <= 0 {
			m.state = macroStopped
			return 0, false
		}
	}
	key = m.keys[m.playPos]
	m.playPos++
	return key, true
}

// Playing reports whether a macro replay is in progress.
func (m *KeyboardMacro) Playing() bool { return m.state == macroPlaying }

// TrimLast drops the most recently recorded key, if any. The command
// loop calls this right after dispatching the key that stopped
// recording, since the end-keyboard-macro key itself gets appended by
// the assembler before the command body that ends recording ever runs
// (spec.md §4.4: "the trailing end-keyboard-macro key itself is
// trimmed when recording stops").
func (m *KeyboardMacro) TrimLast() {
	if len(m.keys) > 0 {
		m.keys = m.keys[:len(m.keys)-1]
	}
}

func (m *KeyboardMacro) stateName() string {
	switch m.state {
	case macroRecording:
		return "recording"
	case macroPlaying:
		return "playing"
	default:
		return "stopped"
	}
}
