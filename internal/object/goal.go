package object

import (
	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/physics"
)

// Goal geometry.
const (
	GoalInset         = 10.0
	GoalWidth         = 20.0
	DefaultGoalHeight = 200.0
)

// Goal is a scoring mouth next to a side wall. The ball scores when it enters
// through the open side facing the playfield; any other edge deflects it.
type Goal struct {
	Rect physics.Rect
	Side PaddleSide // Wall the goal sits against
}

// NewGoal creates a goal of the given height centered vertically against the
// side wall.
func NewGoal(side PaddleSide, height float64, arena Arena) *Goal {
	if height <= 0 || height > arena.Height {
		height = min(DefaultGoalHeight, arena.Height)
	}
	x := GoalInset
	if side == PaddleRight {
		x = arena.Width - GoalInset - GoalWidth
	}
	_, cy := arena.Center()
	return &Goal{
		Rect: physics.Rect{X: x, Y: cy - height/2, W: GoalWidth, H: height},
		Side: side,
	}
}

// OpenSide returns the edge of the goal facing the playfield.
func (g *Goal) OpenSide() physics.Side {
	if g.Side == PaddleLeft {
		return physics.SideRight
	}
	return physics.SideLeft
}

// HandleCollision resolves a ball against the goal.
func (g *Goal) HandleCollision(b *Ball, sounds Sounds) Outcome {
	side, _ := physics.Penetration(b.Rect(), g.Rect)
	if side == physics.SideNone {
		return OutcomeNone
	}
	if side == g.OpenSide() {
		playEffect(sounds, SoundScore)
		// The player opposite the goal scores.
		if g.Side == PaddleLeft {
			return OutcomeScoreRight
		}
		return OutcomeScoreLeft
	}
	b.DX, b.DY = physics.ReflectAway(b.DX, b.DY, side)
	b.SetRect(physics.PushOut(b.Rect(), g.Rect, side))
	playEffect(sounds, SoundBounce)
	return OutcomeBounce
}

// Update is a no-op.
func (g *Goal) Update(_ UpdateContext) (bool, error) {
	return false, nil
}

// Draw renders the goal frame with its open side left undrawn.
func (g *Goal) Draw(ctx DrawContext) error {
	col := ctx.Palette.Get(draw.ColorGoal)
	r := g.Rect
	fillRect(ctx, r, col.Alpha(0.25))
	line(ctx, r.X, r.Y, r.Right(), r.Y, col)
	line(ctx, r.X, r.Bottom(), r.Right(), r.Bottom(), col)
	if g.Side == PaddleLeft {
		line(ctx, r.X, r.Y, r.X, r.Bottom(), col)
	} else {
		line(ctx, r.Right(), r.Y, r.Right(), r.Bottom(), col)
	}
	return nil
}
