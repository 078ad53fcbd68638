package object

import (
	"math"

	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/physics"
)

// Bumper tuning.
const (
	BumperSpeedup      = 1.5
	BumperNudgeDegrees = 1.0
	BumperPulseTime    = 0.2
	BumperPulseScale   = 1.3
	bumperExitGap      = 1.0
)

// Bumper is a round pinball bumper that kicks the ball outward.
type Bumper struct {
	CX, CY float64
	Radius float64

	pulse float64 // Seconds left in the hit animation
}

// NewBumper creates a bumper inscribed in the given rectangle.
func NewBumper(r physics.Rect) *Bumper {
	cx, cy := r.Center()
	return &Bumper{CX: cx, CY: cy, Radius: math.Min(r.W, r.H) / 2}
}

// Rect returns the bumper's bounding square at rest.
func (bp *Bumper) Rect() physics.Rect {
	return physics.RectFromCenter(bp.CX, bp.CY, bp.Radius*2, bp.Radius*2)
}

// Scale returns the current animation scale (1 at rest).
func (bp *Bumper) Scale() float64 {
	if bp.pulse <= 0 {
		return 1
	}
	return 1 + (BumperPulseScale-1)*(bp.pulse/BumperPulseTime)
}

// CurrentRadius returns the animated radius.
func (bp *Bumper) CurrentRadius() float64 {
	return bp.Radius * bp.Scale()
}

// NudgeDirection returns the exit direction for a ball that was travelling
// along (dx, dy) and touched the bumper along outward normal (nx, ny). The
// normal is rotated by one degree, turning the same way the ball was
// crossing it, so repeated hits cannot settle into a straight back-and-forth.
func NudgeDirection(dx, dy, nx, ny float64) (float64, float64) {
	angle := physics.Radians(BumperNudgeDegrees)
	if physics.Cross(dx, dy, nx, ny) <= 0 {
		angle = -angle
	}
	return physics.Rotate(nx, ny, angle)
}

// HandleCollision kicks an overlapping ball away. Returns true on a hit.
func (bp *Bumper) HandleCollision(b *Ball, sounds Sounds) bool {
	bx, by := b.Center()
	reach := bp.CurrentRadius() + b.Radius()
	dist := physics.Distance(bp.CX, bp.CY, bx, by)
	if dist >= reach {
		return false
	}

	var nx, ny float64
	if dist > 0 {
		nx, ny = (bx-bp.CX)/dist, (by-bp.CY)/dist
	} else {
		nx, ny = -b.DX, -b.DY
	}

	b.SetDirection(NudgeDirection(b.DX, b.DY, nx, ny))
	b.Boost(BumperSpeedup)

	bp.pulse = BumperPulseTime
	out := bp.CurrentRadius() + b.Radius() + bumperExitGap
	b.SetCenter(bp.CX+b.DX*out, bp.CY+b.DY*out)

	playEffect(sounds, SoundBumper)
	return true
}

// Update relaxes the hit animation.
func (bp *Bumper) Update(ctx UpdateContext) (bool, error) {
	if bp.pulse > 0 {
		bp.pulse = math.Max(0, bp.pulse-ctx.DT())
	}
	return false, nil
}

// Draw renders the bumper, flashing while it pulses.
func (bp *Bumper) Draw(ctx DrawContext) error {
	col := ctx.Palette.Get(draw.ColorBumper)
	r := bp.CurrentRadius()
	if bp.pulse > 0 {
		col = col.Lighten(0.6 * bp.pulse / BumperPulseTime)
	}
	fillCircle(ctx, bp.CX, bp.CY, r, col)
	fillCircle(ctx, bp.CX, bp.CY, r*0.55, col.Darken(0.35))
	strokeCircle(ctx, bp.CX, bp.CY, r, col.Lighten(0.4))
	return nil
}
