// Package audio plays the game's procedurally generated sound effects.
package audio

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	Format       = oto.FormatFloat32LE

	// frameBytes is one stereo frame of float32 samples.
	frameBytes = ChannelCount * 4

	sfxVolume = 0.58
	// maxVoices bounds simultaneous effects; more causes clipping.
	maxVoices = 6
)

// Player synthesizes every effect once and plays them on demand.
// It implements object.Sounds.
type Player struct {
	ctx     *oto.Context
	ready   chan struct{}
	samples map[string][]byte
	voices  atomic.Int32
	muted   atomic.Bool
	logger  *log.Logger
}

// NewPlayer opens the audio device. The device becomes usable once oto
// reports ready; effects requested before that are dropped.
func NewPlayer(logger *log.Logger) (*Player, error) {
	if logger == nil {
		logger = log.Default()
	}
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, Format)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	return &Player{
		ctx:     ctx,
		ready:   ready,
		samples: Effects(),
		logger:  logger,
	}, nil
}

// SetMuted silences or restores effects.
func (p *Player) SetMuted(muted bool) {
	p.muted.Store(muted)
}

// Muted reports whether effects are silenced.
func (p *Player) Muted() bool {
	return p.muted.Load()
}

// PlayEffect starts the named effect and returns immediately.
func (p *Player) PlayEffect(name string) {
	if p == nil || p.muted.Load() {
		return
	}
	select {
	case <-p.ready:
	default:
		return
	}
	data, ok := p.samples[name]
	if !ok {
		p.logger.Debug("unknown sound effect", "name", name)
		return
	}
	if p.voices.Add(1) > maxVoices {
		p.voices.Add(-1)
		return
	}
	go func() {
		defer p.voices.Add(-1)
		player := p.ctx.NewPlayer(&soundReader{data: data})
		player.SetVolume(sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			p.logger.Debug("close sound player", "err", err)
		}
	}()
}

// Nop discards every effect. SSH sessions and tests use it.
type Nop struct{}

// PlayEffect does nothing.
func (Nop) PlayEffect(string) {}

// Recorder remembers the effects it was asked to play.
type Recorder struct {
	Played []string
}

// PlayEffect records name.
func (r *Recorder) PlayEffect(name string) {
	r.Played = append(r.Played, name)
}

// Count returns how many times name was played.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, p := range r.Played {
		if p == name {
			n++
		}
	}
	return n
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
