package object

import (
	"math"

	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/physics"
)

// Piston defaults.
const (
	DefaultPistonInterval      = 3.0
	DefaultPistonUpDuration    = 1.0
	DefaultPistonSteamDuration = 0.8
	pistonBaseFraction         = 0.3 // Share of the height taken by the housing
)

// PistonState is a step in the piston cycle.
type PistonState int

const (
	PistonDown PistonState = iota
	PistonUp
	PistonSteaming
)

func (s PistonState) String() string {
	switch s {
	case PistonUp:
		return "up"
	case PistonSteaming:
		return "steaming"
	default:
		return "down"
	}
}

// PistonConfig tunes the piston cycle.
type PistonConfig struct {
	Interval      float64 // Seconds retracted
	UpDuration    float64 // Seconds extended
	SteamDuration float64 // Seconds venting, still extended
}

// DefaultPistonConfig returns the standard timings.
func DefaultPistonConfig() PistonConfig {
	return PistonConfig{
		Interval:      DefaultPistonInterval,
		UpDuration:    DefaultPistonUpDuration,
		SteamDuration: DefaultPistonSteamDuration,
	}
}

// Piston is a solid block that only blocks the ball while its head is extended.
type Piston struct {
	Rect   physics.Rect // Full extent with the head up
	Config PistonConfig

	state PistonState
	timer float64
}

// NewPiston creates a retracted piston.
func NewPiston(r physics.Rect, cfg PistonConfig) *Piston {
	return &Piston{Rect: r, Config: cfg, timer: cfg.Interval}
}

// State returns the current cycle step.
func (p *Piston) State() PistonState {
	return p.state
}

// Extended reports whether the head is out.
func (p *Piston) Extended() bool {
	return p.state == PistonUp || p.state == PistonSteaming
}

// HandleCollision bounces the ball off the piston while extended.
func (p *Piston) HandleCollision(b *Ball, sounds Sounds) bool {
	if !p.Extended() {
		return false
	}
	if !bounceOffRect(b, p.Rect) {
		return false
	}
	playEffect(sounds, SoundBounce)
	return true
}

// Update advances the cycle.
func (p *Piston) Update(ctx UpdateContext) (bool, error) {
	p.timer -= ctx.DT()
	if p.timer > 0 {
		return false, nil
	}
	switch p.state {
	case PistonDown:
		p.state = PistonUp
		p.timer = p.Config.UpDuration
		SpawnSteam(p.Rect.CenterX(), p.Rect.Y, 6, ctx.Rand, ctx.Spawner)
	case PistonUp:
		p.state = PistonSteaming
		p.timer = p.Config.SteamDuration
	case PistonSteaming:
		p.state = PistonDown
		p.timer = p.Config.Interval
	}
	return false, nil
}

// Draw renders the housing and, when extended, the rod and head.
func (p *Piston) Draw(ctx DrawContext) error {
	metal := ctx.Palette.Get(draw.ColorMetal)
	baseH := p.Rect.H * pistonBaseFraction
	housing := physics.Rect{X: p.Rect.X, Y: p.Rect.Bottom() - baseH, W: p.Rect.W, H: baseH}
	fillRect(ctx, housing, metal.Darken(0.3))

	if p.Extended() {
		rod := physics.Rect{X: p.Rect.CenterX() - p.Rect.W/8, Y: p.Rect.Y, W: p.Rect.W / 4, H: p.Rect.H - baseH}
		fillRect(ctx, rod, metal)
		head := physics.Rect{X: p.Rect.X, Y: p.Rect.Y, W: p.Rect.W, H: math.Min(12, p.Rect.H*0.2)}
		fillRect(ctx, head, metal.Lighten(0.2))
	}
	if p.state == PistonSteaming {
		fillCircle(ctx, p.Rect.CenterX(), p.Rect.Y-6, 5+2*math.Sin(ctx.Time*15), ctx.Palette.Get(draw.ColorSteam).Alpha(0.5))
	}
	return nil
}
