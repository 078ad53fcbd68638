package object

import (
	"math"

	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/physics"
)

// Paddle defaults.
const (
	DefaultPaddleWidth  = 15.0
	DefaultPaddleHeight = 90.0
	DefaultPaddleSpeed  = 480.0
	// PaddleWallGap is the distance between a paddle and its side wall.
	PaddleWallGap = 50.0
)

// PaddleSide tells which wall a paddle defends.
type PaddleSide int

const (
	PaddleLeft PaddleSide = iota
	PaddleRight
)

func (s PaddleSide) String() string {
	if s == PaddleLeft {
		return "left"
	}
	return "right"
}

// Paddle is a player- or AI-controlled vertical bat.
type Paddle struct {
	Rect       physics.Rect
	Side       PaddleSide
	MovingUp   bool
	MovingDown bool
	Speed      float64

	// AI, when set, steers the paddle instead of the movement flags.
	AI *PaddleAI
}

// NewPaddle creates a paddle of the given size with its top-left at (x, y),
// clamped to the arena.
func NewPaddle(side PaddleSide, x, y, w, h, speed float64, arena Arena) *Paddle {
	p := &Paddle{
		Rect:  physics.Rect{X: x, Y: y, W: w, H: h},
		Side:  side,
		Speed: speed,
	}
	p.Rect = p.Rect.ClampInside(arena.Bounds())
	return p
}

// NewDefaultPaddle places a paddle at the standard spot for its side,
// vertically centered.
func NewDefaultPaddle(side PaddleSide, arena Arena, speed float64) *Paddle {
	x := PaddleWallGap
	if side == PaddleRight {
		x = arena.Width - PaddleWallGap - DefaultPaddleWidth
	}
	_, cy := arena.Center()
	return NewPaddle(side, x, cy-DefaultPaddleHeight/2, DefaultPaddleWidth, DefaultPaddleHeight, speed, arena)
}

// Move applies the movement flags over dt seconds, keeping the paddle out of
// the scoreboard band and above the bottom wall.
func (p *Paddle) Move(dt float64, arena Arena) {
	if p.MovingUp && p.Rect.Y > arena.Top() {
		p.Rect.Y = math.Max(arena.Top(), p.Rect.Y-p.Speed*dt)
	}
	if p.MovingDown && p.Rect.Bottom() < arena.Bottom() {
		p.Rect.Y = math.Min(arena.Bottom()-p.Rect.H, p.Rect.Y+p.Speed*dt)
	}
}

// Follow moves the paddle toward a target top y at most Speed*dt.
func (p *Paddle) Follow(targetY, dt float64, arena Arena) {
	step := p.Speed * dt
	diff := targetY - p.Rect.Y
	switch {
	case diff > step:
		p.Rect.Y += step
	case diff < -step:
		p.Rect.Y -= step
	default:
		p.Rect.Y = targetY
	}
	p.Rect.Y = physics.Clamp(p.Rect.Y, arena.Top(), arena.Bottom()-p.Rect.H)
}

// Steer runs the AI (if any) for one frame against the nearest approaching ball.
func (p *Paddle) Steer(balls []*Ball, dt float64, arena Arena) {
	if p.AI == nil {
		p.Move(dt, arena)
		return
	}
	target := p.AI.Target(p.pickBall(balls), p, arena)
	p.Follow(target, dt, arena)
}

// pickBall chooses the ball the paddle should care about: the one heading
// toward it that arrives first, or the first ball if none approach.
func (p *Paddle) pickBall(balls []*Ball) *Ball {
	var best *Ball
	bestDist := math.Inf(1)
	px := p.Rect.CenterX()
	for _, b := range balls {
		if b.Held {
			continue
		}
		approaching := (p.Side == PaddleLeft && b.DX < 0) || (p.Side == PaddleRight && b.DX > 0)
		if !approaching {
			continue
		}
		cx, _ := b.Center()
		if d := math.Abs(cx - px); d < bestDist {
			best, bestDist = b, d
		}
	}
	if best == nil && len(balls) > 0 {
		best = balls[0]
	}
	return best
}

// Update is a no-op: paddles are driven by the session after input is read.
func (p *Paddle) Update(_ UpdateContext) (bool, error) {
	return false, nil
}

// Draw renders the paddle.
func (p *Paddle) Draw(ctx DrawContext) error {
	fillRect(ctx, p.Rect, ctx.Palette.Get(draw.ColorPaddle))
	return nil
}
