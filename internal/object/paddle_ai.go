package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/ping/internal/physics"
)

// PaddleAI predicts where the ball will cross the paddle's line and returns a
// paddle position to meet it, with a per-rally aiming error so it can lose.
type PaddleAI struct {
	// MaxError is the largest aiming offset in logical pixels.
	MaxError float64
	// DeadZone keeps the paddle still for small corrections.
	DeadZone float64

	rng       *rand.Rand
	aimOffset float64
	lastDX    float64
}

// NewPaddleAI creates an AI with the given imprecision.
func NewPaddleAI(maxError float64, rng *rand.Rand) *PaddleAI {
	return &PaddleAI{
		MaxError: maxError,
		DeadZone: 6,
		rng:      rng,
	}
}

// Target returns the top y the paddle should move to, clamped to valid travel.
func (ai *PaddleAI) Target(b *Ball, p *Paddle, arena Arena) float64 {
	minY := arena.Top()
	maxY := arena.Bottom() - p.Rect.H
	if b == nil {
		_, cy := arena.Center()
		return physics.Clamp(cy-p.Rect.H/2, minY, maxY)
	}

	// New aiming error every time the ball changes horizontal direction.
	if math.Signbit(b.DX) != math.Signbit(ai.lastDX) || ai.lastDX == 0 {
		ai.aimOffset = (ai.rng.Float64()*2 - 1) * ai.MaxError
		ai.lastDX = b.DX
	}

	bx, by := b.Center()
	vx, vy := b.Velocity()
	approaching := (p.Side == PaddleLeft && vx < 0) || (p.Side == PaddleRight && vx > 0)

	var targetCenter float64
	if approaching && vx != 0 {
		paddleX := p.Rect.Right()
		if p.Side == PaddleRight {
			paddleX = p.Rect.X
		}
		t := (paddleX - bx) / vx
		targetCenter = foldInto(by+vy*t, arena.Top()+b.Radius(), arena.Bottom()-b.Radius())
		targetCenter += ai.aimOffset
	} else {
		// Drift back toward the middle while the ball moves away.
		_, cy := arena.Center()
		targetCenter = (cy + by) / 2
	}

	target := targetCenter - p.Rect.H/2
	if math.Abs(target-p.Rect.Y) < ai.DeadZone {
		target = p.Rect.Y
	}
	return physics.Clamp(target, minY, maxY)
}

// foldInto reflects y back into [lo, hi] as a ball bouncing between two
// horizontal walls would.
func foldInto(y, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 {
		return lo
	}
	m := math.Mod(y-lo, 2*span)
	if m < 0 {
		m += 2 * span
	}
	if m > span {
		m = 2*span - m
	}
	return lo + m
}
