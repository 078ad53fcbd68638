package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report repeats, so this must outlast the typical auto-repeat gap.
const keyHoldDuration = 90 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit      bool
	LeftUp    bool // W
	LeftDown  bool // S
	RightUp   bool // Up arrow or I
	RightDown bool // Down arrow or K
	Space     bool
	Enter     bool
	Escape    bool
	Pause     bool // Edge-triggered, like the toggles below
	Mute      bool
	Restart   bool
	Pressed   []byte
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	quit      time.Time
	leftUp    time.Time
	leftDown  time.Time
	rightUp   time.Time
	rightDown time.Time
	space     time.Time
	enter     time.Time
	escape    time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// newStream creates a stream fed directly through its channel.
func newStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// ResetKeyInput forgets every held key, so a press that started a screen
// transition does not leak into the next one.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInput(s *Stream) Input {
	return readInput(s, time.Now())
}

func readInput(s *Stream, now time.Time) Input {
	var buf []byte

	// Drain all available bytes
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.state.quit = now
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	var toggles Input
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.rightUp = now
				i += 2
				continue
			case 'B':
				s.state.rightDown = now
				i += 2
				continue
			case 'C', 'D':
				i += 2
				continue
			}
		}

		applyByteToState(&s.state, &toggles, b, now)
	}

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	return Input{
		Quit:      held(s.state.quit),
		LeftUp:    held(s.state.leftUp),
		LeftDown:  held(s.state.leftDown),
		RightUp:   held(s.state.rightUp),
		RightDown: held(s.state.rightDown),
		Space:     held(s.state.space),
		Enter:     held(s.state.enter),
		Escape:    held(s.state.escape),
		Pause:     toggles.Pause,
		Mute:      toggles.Mute,
		Restart:   toggles.Restart,
		Pressed:   buf,
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
// Toggle keys are reported only on the frame they arrive.
func applyByteToState(state *keyState, toggles *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'w', 'W':
		state.leftUp = now
	case 's', 'S':
		state.leftDown = now
	case 'i', 'I':
		state.rightUp = now
	case 'k', 'K':
		state.rightDown = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	case 'p', 'P':
		toggles.Pause = true
	case 'm', 'M':
		toggles.Mute = true
	case 'r', 'R':
		toggles.Restart = true
	}
}
