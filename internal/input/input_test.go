package input

import (
	"testing"
	"time"
)

func feed(s *Stream, data string) {
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
}

func TestReadInputPaddleKeys(t *testing.T) {
	s := newStream()
	now := time.Now()

	feed(s, "w\x1b[B")
	in := readInput(s, now)
	if !in.LeftUp || in.LeftDown {
		t.Errorf("left keys = up %v down %v, want up only", in.LeftUp, in.LeftDown)
	}
	if !in.RightDown || in.RightUp {
		t.Errorf("right keys = up %v down %v, want down only", in.RightUp, in.RightDown)
	}
	if in.Escape {
		t.Error("arrow key sequence reported as escape")
	}
}

func TestReadInputHoldExpires(t *testing.T) {
	s := newStream()
	now := time.Now()

	feed(s, "s")
	readInput(s, now)

	in := readInput(s, now.Add(keyHoldDuration/2))
	if !in.LeftDown {
		t.Error("key released before hold duration")
	}
	in = readInput(s, now.Add(2*keyHoldDuration))
	if in.LeftDown {
		t.Error("key still held after hold duration")
	}
}

func TestReadInputTogglesAreEdgeTriggered(t *testing.T) {
	s := newStream()
	now := time.Now()

	feed(s, "pm")
	in := readInput(s, now)
	if !in.Pause || !in.Mute {
		t.Fatalf("toggles = pause %v mute %v, want both", in.Pause, in.Mute)
	}
	in = readInput(s, now.Add(time.Millisecond))
	if in.Pause || in.Mute {
		t.Error("toggle repeated without a new press")
	}
}

func TestResetKeyInput(t *testing.T) {
	s := newStream()
	now := time.Now()

	feed(s, " ")
	readInput(s, now)
	ResetKeyInput(s)
	if in := readInput(s, now); in.Space {
		t.Error("space still held after reset")
	}
}

func TestClosedStreamQuits(t *testing.T) {
	s := newStream()
	close(s.ch)
	if in := readInput(s, time.Now()); !in.Quit {
		t.Error("closed input should quit")
	}
}
