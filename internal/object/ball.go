package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/physics"
)

// Ball defaults. Speeds are logical pixels per second.
const (
	DefaultBallSize     = 20.0
	DefaultBallSpeed    = 420.0
	DefaultBallMaxSpeed = 1100.0
	// PaddleSpeedup multiplies speed on paddle hits. Paddles keep the speed;
	// obstacles and bumpers are what accelerate the ball.
	PaddleSpeedup = 1.0
	// SideWallMargin keeps a bouncing ball clear of the side walls.
	SideWallMargin = 5.0
)

// Ball is a square ball moving along a unit direction at a scalar speed.
type Ball struct {
	X, Y     float64 // Position (top-left)
	Size     float64 // Width and height
	DX, DY   float64 // Unit direction
	Speed    float64 // Current speed
	MaxSpeed float64 // Speed cap

	Held           bool    // Captured by a spinner; Move does nothing
	OrbitX, OrbitY float64 // Cosmetic draw offset while held
	Possessed      bool    // A ghost has taken over the ball
}

// NewBall creates a ball with its top-left at (x, y) heading along angle (radians).
func NewBall(x, y, size, speed, maxSpeed, angle float64) *Ball {
	b := &Ball{
		X:        x,
		Y:        y,
		Size:     size,
		MaxSpeed: maxSpeed,
	}
	b.SetDirection(physics.FromAngle(angle))
	b.SetSpeed(speed)
	return b
}

// NewServeBall places a ball at the arena center heading toward the given
// side (-1 left, +1 right) with a random angle up to 30° off horizontal.
func NewServeBall(arena Arena, size, speed, maxSpeed float64, toward float64, rng *rand.Rand) *Ball {
	cx, cy := arena.Center()
	angle := (rng.Float64()*2 - 1) * physics.Radians(30)
	if toward < 0 {
		angle = math.Pi - angle
	}
	return NewBall(cx-size/2, cy-size/2, size, speed, maxSpeed, angle)
}

// Rect returns the ball's bounding rectangle.
func (b *Ball) Rect() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: b.Size, H: b.Size}
}

// SetRect moves the ball to the rectangle's position.
func (b *Ball) SetRect(r physics.Rect) {
	b.X, b.Y = r.X, r.Y
}

// Radius returns the radius used for circular collision tests.
func (b *Ball) Radius() float64 {
	return b.Size / 2
}

// Center returns the ball center.
func (b *Ball) Center() (float64, float64) {
	return b.X + b.Size/2, b.Y + b.Size/2
}

// SetCenter moves the ball so its center is at (cx, cy).
func (b *Ball) SetCenter(cx, cy float64) {
	b.X = cx - b.Size/2
	b.Y = cy - b.Size/2
}

// Velocity returns speed × direction.
func (b *Ball) Velocity() (float64, float64) {
	return b.DX * b.Speed, b.DY * b.Speed
}

// SetDirection sets the direction, normalizing it. A zero vector is ignored.
func (b *Ball) SetDirection(dx, dy float64) {
	nx, ny := physics.Normalize(dx, dy)
	if nx == 0 && ny == 0 {
		return
	}
	b.DX, b.DY = nx, ny
}

// SetSpeed sets the speed, clamped to [0, MaxSpeed].
func (b *Ball) SetSpeed(speed float64) {
	if speed > b.MaxSpeed {
		speed = b.MaxSpeed
	}
	if speed < 0 {
		speed = 0
	}
	b.Speed = speed
}

// Boost multiplies the speed by factor, respecting the cap.
func (b *Ball) Boost(factor float64) {
	b.SetSpeed(b.Speed * factor)
}

// Clone returns an independent copy of the ball.
func (b *Ball) Clone() *Ball {
	c := *b
	c.Held = false
	c.OrbitX, c.OrbitY = 0, 0
	c.Possessed = false
	return &c
}

// Move integrates position over dt seconds.
func (b *Ball) Move(dt float64) {
	if b.Held {
		return
	}
	vx, vy := b.Velocity()
	b.X += vx * dt
	b.Y += vy * dt
}

// HandleWallCollision reflects the ball off the scoreboard band and the
// bottom wall, and off the side walls when bounceWalls is set.
// Returns true if any wall was hit.
func (b *Ball) HandleWallCollision(arena Arena, bounceWalls bool) bool {
	hit := false
	if b.Y <= arena.Top() {
		b.Y = arena.Top()
		b.DY = math.Abs(b.DY)
		hit = true
	} else if b.Y+b.Size >= arena.Bottom() {
		b.Y = arena.Bottom() - b.Size
		b.DY = -math.Abs(b.DY)
		hit = true
	}

	if bounceWalls {
		if b.X <= 0 {
			b.X = SideWallMargin
			b.DX = math.Abs(b.DX)
			hit = true
		} else if b.X+b.Size >= arena.Width {
			b.X = arena.Width - b.Size - SideWallMargin
			b.DX = -math.Abs(b.DX)
			hit = true
		}
	}
	return hit
}

// HandlePaddleCollision deflects the ball off a paddle. The exit angle depends
// on where the ball struck: center sends it straight, the edges up to 45°.
// Returns false if the ball does not overlap the paddle.
func (b *Ball) HandlePaddleCollision(p *Paddle) bool {
	pr := p.Rect
	if !b.Rect().Intersects(pr) || pr.H <= 0 {
		return false
	}
	// Ignore a ball already travelling away from this paddle.
	if (p.Side == PaddleLeft && b.DX > 0) || (p.Side == PaddleRight && b.DX < 0) {
		return false
	}

	_, cy := b.Center()
	f := physics.Clamp((cy-pr.Y)/pr.H, 0, 1)
	angle := physics.Radians((f - 0.5) * 90)

	dx := 1.0
	if p.Side == PaddleRight {
		dx = -1.0
	}
	b.SetDirection(dx, math.Tan(angle))
	b.SetSpeed(b.Speed * PaddleSpeedup)

	if p.Side == PaddleLeft {
		b.X = pr.Right()
	} else {
		b.X = pr.X - b.Size
	}
	return true
}

// HandleScoring reports a score when the ball leaves through a side wall.
// Only applies when neither wall-bounce nor goals govern the level.
func (b *Ball) HandleScoring(arena Arena, bounceWalls, useGoals bool) Outcome {
	if bounceWalls || useGoals {
		return OutcomeNone
	}
	if b.X <= 0 {
		return OutcomeScoreRight
	}
	if b.X+b.Size >= arena.Width {
		return OutcomeScoreLeft
	}
	return OutcomeNone
}

// Update moves the ball.
func (b *Ball) Update(ctx UpdateContext) (bool, error) {
	b.Move(ctx.DT())
	return false, nil
}

// Draw renders the ball as a filled circle.
func (b *Ball) Draw(ctx DrawContext) error {
	col := ctx.Palette.Get(draw.ColorBall)
	if b.Possessed {
		col = ctx.Palette.Get(draw.ColorPossessed)
	}
	cx, cy := b.Center()
	fillCircle(ctx, cx+b.OrbitX, cy+b.OrbitY, b.Radius(), col)
	return nil
}
