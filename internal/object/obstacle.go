package object

import (
	"math/rand"

	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/physics"
)

// Default size for procedurally spawned obstacles.
const (
	DefaultObstacleWidth  = 20.0
	DefaultObstacleHeight = 60.0
)

// Obstacle is a solid rectangle the ball bounces off.
type Obstacle struct {
	Rect physics.Rect
}

// NewObstacle creates an obstacle at a fixed position.
func NewObstacle(r physics.Rect) *Obstacle {
	return &Obstacle{Rect: r}
}

// NewRandomObstacle places an obstacle of the given size uniformly within the
// middle third of the arena horizontally and anywhere in the playable band.
func NewRandomObstacle(arena Arena, w, h float64, rng *rand.Rand) *Obstacle {
	third := arena.Width / 3
	xSpan := third - w
	if xSpan < 0 {
		xSpan = 0
	}
	ySpan := arena.Height - h
	if ySpan < 0 {
		ySpan = 0
	}
	x := third + rng.Float64()*xSpan
	y := arena.Top() + rng.Float64()*ySpan
	return &Obstacle{Rect: physics.Rect{X: x, Y: y, W: w, H: h}}
}

// HandleCollision bounces the ball off the obstacle along the axis of least
// penetration and pushes it outside. Returns true on a hit.
func (o *Obstacle) HandleCollision(b *Ball, sounds Sounds) bool {
	if !bounceOffRect(b, o.Rect) {
		return false
	}
	playEffect(sounds, SoundBounce)
	return true
}

// bounceOffRect is the shared solid-rectangle resolution used by obstacles,
// pistons and tesla coils.
func bounceOffRect(b *Ball, solid physics.Rect) bool {
	out, dx, dy, _, ok := physics.ResolveRectCollision(b.Rect(), solid, b.DX, b.DY)
	if !ok {
		return false
	}
	b.SetRect(out)
	b.DX, b.DY = dx, dy
	return true
}

// Update is a no-op; obstacles are static.
func (o *Obstacle) Update(_ UpdateContext) (bool, error) {
	return false, nil
}

// Draw renders the obstacle.
func (o *Obstacle) Draw(ctx DrawContext) error {
	col := ctx.Palette.Get(draw.ColorObstacle)
	fillRect(ctx, o.Rect, col)
	ctx.Canvas.StrokeRect(ctx.View.ScaleRect(o.Rect), col.Lighten(0.3))
	return nil
}
