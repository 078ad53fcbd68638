package object

import (
	"math"

	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/physics"
)

// Power-up tuning.
const (
	PowerUpRadius         = 15.0
	PowerUpMinDelayFrames = 180 // 3s at 60fps
	PowerUpMaxDelayFrames = 900 // 15s at 60fps
	PowerUpSpawnAttempts  = 50
	PaddleReservedBand    = 100.0 // Width kept clear next to each side wall
	ObstacleSpawnMargin   = 20.0
	DuplicateOffset       = 30.0
)

// PowerUpBall is a pickup that duplicates the ball hitting it.
type PowerUpBall struct {
	CX, CY float64
	Radius float64
	Active bool

	frames int // Frames spent dormant
	delay  int // Frames to wait before appearing
}

// NewPowerUpBall creates a power-up. When placed is true it starts active at
// (cx, cy); otherwise it starts dormant and picks its own spot later.
func NewPowerUpBall(cx, cy float64, placed bool, ctx UpdateContext) *PowerUpBall {
	p := &PowerUpBall{CX: cx, CY: cy, Radius: PowerUpRadius, Active: placed}
	p.rollDelay(ctx)
	return p
}

func (p *PowerUpBall) rollDelay(ctx UpdateContext) {
	p.frames = 0
	p.delay = PowerUpMinDelayFrames + ctx.Rand.Intn(PowerUpMaxDelayFrames-PowerUpMinDelayFrames+1)
}

// Rect returns the bounding square.
func (p *PowerUpBall) Rect() physics.Rect {
	return physics.RectFromCenter(p.CX, p.CY, p.Radius*2, p.Radius*2)
}

// ValidSpawn reports whether a power-up footprint r stays out of the paddle
// bands and clear of every obstacle (inflated by a margin).
func ValidSpawn(r physics.Rect, arena Arena, obstacles []physics.Rect) bool {
	if r.X < PaddleReservedBand || r.Right() > arena.Width-PaddleReservedBand {
		return false
	}
	if r.Y < arena.Top() || r.Bottom() > arena.Bottom() {
		return false
	}
	for _, o := range obstacles {
		if r.Intersects(o.Inflate(ObstacleSpawnMargin)) {
			return false
		}
	}
	return true
}

// FindSpawnPosition samples up to PowerUpSpawnAttempts random centers for a
// footprint of the given radius. Falls back to the arena center.
func FindSpawnPosition(radius float64, ctx UpdateContext) (cx, cy float64, found bool) {
	arena := ctx.Arena
	size := radius * 2
	for i := 0; i < PowerUpSpawnAttempts; i++ {
		x := ctx.Rand.Float64() * math.Max(0, arena.Width-size)
		y := arena.Top() + ctx.Rand.Float64()*math.Max(0, arena.Height-size)
		r := physics.Rect{X: x, Y: y, W: size, H: size}
		if ValidSpawn(r, arena, ctx.Obstacles) {
			return x + radius, y + radius, true
		}
	}
	cx, cy = arena.Center()
	return cx, cy, false
}

// HandleCollision duplicates a ball touching the active power-up and returns
// the new ball, or nil when nothing happened.
func (p *PowerUpBall) HandleCollision(b *Ball, sounds Sounds) *Ball {
	if !p.Active {
		return nil
	}
	bx, by := b.Center()
	if !physics.CirclesOverlap(p.CX, p.CY, p.Radius, bx, by, b.Radius()) {
		return nil
	}
	dup := b.Clone()
	dup.X += DuplicateOffset
	dup.Y += DuplicateOffset
	p.Active = false
	playEffect(sounds, SoundPowerUp)
	return dup
}

// Update counts dormant frames and reappears somewhere valid.
func (p *PowerUpBall) Update(ctx UpdateContext) (bool, error) {
	if p.Active {
		return false, nil
	}
	p.frames++
	if p.frames < p.delay {
		return false, nil
	}
	p.CX, p.CY, _ = FindSpawnPosition(p.Radius, ctx)
	p.Active = true
	p.rollDelay(ctx)
	return false, nil
}

// Draw renders a pulsing orb while active.
func (p *PowerUpBall) Draw(ctx DrawContext) error {
	if !p.Active {
		return nil
	}
	col := ctx.Palette.Get(draw.ColorPowerUp)
	pulse := 1 + 0.1*math.Sin(ctx.Time*6)
	fillCircle(ctx, p.CX, p.CY, p.Radius*pulse, col.Alpha(0.8))
	strokeCircle(ctx, p.CX, p.CY, p.Radius*pulse, col.Lighten(0.5))
	return nil
}
