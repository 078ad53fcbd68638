package object

import (
	"math"

	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/physics"
)

// Manhole defaults.
const (
	DefaultManholeMinInterval = 5.0
	DefaultManholeMaxInterval = 15.0
	DefaultSpoutDuration      = 2.0
	// MaxConcurrentSpouts caps how many manholes spout at the same time.
	MaxConcurrentSpouts = 2
	// SpoutSpeedup multiplies ball speed when launched by a spout.
	SpoutSpeedup = 1.5
)

// ManholeState is the spout state of a manhole.
type ManholeState int

const (
	ManholeDormant ManholeState = iota
	ManholeSpouting
)

func (s ManholeState) String() string {
	if s == ManholeSpouting {
		return "spouting"
	}
	return "dormant"
}

// ManholeConfig tunes one manhole.
type ManholeConfig struct {
	MinInterval   float64 // Seconds dormant, lower bound
	MaxInterval   float64 // Seconds dormant, upper bound
	SpoutDuration float64 // Seconds spouting
}

// DefaultManholeConfig returns the standard timings.
func DefaultManholeConfig() ManholeConfig {
	return ManholeConfig{
		MinInterval:   DefaultManholeMinInterval,
		MaxInterval:   DefaultManholeMaxInterval,
		SpoutDuration: DefaultSpoutDuration,
	}
}

// Manhole periodically spouts water that launches the ball away from its wall.
type Manhole struct {
	Rect     physics.Rect // Original footprint
	IsBottom bool         // Sits on the bottom wall; spouts upward
	Config   ManholeConfig

	state   ManholeState
	timer   float64
	boosted map[*Ball]bool // Balls already launched during the current spout
}

// NewManhole creates a dormant manhole. Placement (top/bottom) is derived from
// which half of the arena the footprint is in.
func NewManhole(r physics.Rect, cfg ManholeConfig, arena Arena) *Manhole {
	if cfg.MaxInterval < cfg.MinInterval {
		cfg.MaxInterval = cfg.MinInterval
	}
	_, cy := arena.Center()
	return &Manhole{
		Rect:     r,
		IsBottom: r.CenterY() >= cy,
		Config:   cfg,
		boosted:  make(map[*Ball]bool),
	}
}

// State returns the current state.
func (m *Manhole) State() ManholeState {
	return m.state
}

// Timer returns the seconds left in the current state.
func (m *Manhole) Timer() float64 {
	return m.timer
}

// impulse returns the vertical direction the spout pushes toward.
func (m *Manhole) impulse() float64 {
	if m.IsBottom {
		return -1
	}
	return 1
}

// HandleCollision launches an overlapping ball while spouting. Each ball is
// launched at most once per spout.
func (m *Manhole) HandleCollision(b *Ball, sounds Sounds) bool {
	if m.state != ManholeSpouting || m.boosted[b] {
		return false
	}
	if !b.Rect().Intersects(m.Rect) {
		return false
	}
	b.DY = m.impulse()
	b.SetDirection(b.DX, b.DY)
	b.Boost(SpoutSpeedup)
	m.boosted[b] = true
	playEffect(sounds, SoundSpout)
	return true
}

// Draw renders the lid, and the water column while spouting.
func (m *Manhole) Draw(ctx DrawContext) error {
	lid := ctx.Palette.Get(draw.ColorManhole)
	fillRect(ctx, m.Rect, lid)
	cy := m.Rect.CenterY()
	for i := 1; i < 4; i++ {
		y := m.Rect.Y + m.Rect.H*float64(i)/4
		line(ctx, m.Rect.X+2, y, m.Rect.Right()-2, y, lid.Lighten(0.25))
	}
	if m.state == ManholeSpouting {
		water := ctx.Palette.Get(draw.ColorWater)
		h := 40 + 10*math.Sin(ctx.Time*20)
		col := physics.Rect{X: m.Rect.X + m.Rect.W*0.25, W: m.Rect.W * 0.5, H: h}
		if m.IsBottom {
			col.Y = m.Rect.Y - h
		} else {
			col.Y = m.Rect.Bottom()
		}
		fillRect(ctx, col, water.Alpha(0.7))
		fillCircle(ctx, m.Rect.CenterX(), cy, m.Rect.W/4, water)
	}
	return nil
}

// ManholeField advances every manhole of a level together so it can enforce
// the limit on simultaneous spouts.
type ManholeField struct {
	Manholes      []*Manhole
	MaxConcurrent int
}

// NewManholeField creates a field and rolls each manhole's first dormant
// interval.
func NewManholeField(manholes []*Manhole, ctx UpdateContext) *ManholeField {
	f := &ManholeField{Manholes: manholes, MaxConcurrent: MaxConcurrentSpouts}
	for _, m := range manholes {
		m.timer = rollInterval(m.Config, ctx)
	}
	return f
}

func rollInterval(cfg ManholeConfig, ctx UpdateContext) float64 {
	return cfg.MinInterval + ctx.Rand.Float64()*(cfg.MaxInterval-cfg.MinInterval)
}

// Spouting returns how many manholes are spouting right now.
func (f *ManholeField) Spouting() int {
	n := 0
	for _, m := range f.Manholes {
		if m.state == ManholeSpouting {
			n++
		}
	}
	return n
}

// Update advances timers. A manhole whose dormant timer expires while the
// spout limit is reached rolls a new dormant interval instead.
func (f *ManholeField) Update(ctx UpdateContext) error {
	dt := ctx.DT()

	// End spouts first so their slots are free this frame.
	for _, m := range f.Manholes {
		if m.state != ManholeSpouting {
			continue
		}
		m.timer -= dt
		if m.timer <= 0 {
			m.state = ManholeDormant
			m.timer = rollInterval(m.Config, ctx)
			clear(m.boosted)
		}
	}

	spouting := f.Spouting()
	for _, m := range f.Manholes {
		switch m.state {
		case ManholeDormant:
			m.timer -= dt
			if m.timer > 0 {
				continue
			}
			if spouting >= f.MaxConcurrent {
				m.timer = rollInterval(m.Config, ctx)
				continue
			}
			m.state = ManholeSpouting
			m.timer = m.Config.SpoutDuration
			spouting++
		case ManholeSpouting:
			y := m.Rect.Y
			if !m.IsBottom {
				y = m.Rect.Bottom()
			}
			SpawnSpout(m.Rect.X+m.Rect.W*0.25, y, m.Rect.W*0.5, m.impulse(), ctx.Rand, ctx.Spawner)
		}
	}
	return nil
}
