package object

import (
	"math"

	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/physics"
)

// Roulette tuning.
const (
	DefaultRouletteSegments  = 36
	DefaultRouletteSpinSpeed = 90.0 // Degrees per second
	RouletteMaxHold          = 7.0  // Seconds
	RouletteReleaseSpeed     = 520.0
	rouletteRecapture        = 0.5 // Seconds the wheel ignores a released ball
	rouletteExitGap          = 2.0
)

// rouletteNumbers is the European wheel order without the zero.
var rouletteNumbers = []int{
	32, 15, 19, 4, 21, 2, 25, 17, 34, 6, 27, 13, 36, 11, 30, 8, 23, 10,
	5, 24, 16, 33, 1, 20, 14, 31, 9, 22, 18, 29, 7, 28, 12, 35, 3, 26,
}

// redNumbers are the red pockets of a standard layout.
var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true, 18: true,
	19: true, 21: true, 23: true, 25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// RouletteSegment is one pocket of the wheel.
type RouletteSegment struct {
	Number int
	Red    bool
}

// RouletteState is the capture state of a spinner.
type RouletteState int

const (
	RouletteIdle RouletteState = iota
	RouletteCapturing
)

// RouletteSpinner captures the ball, holds it for a time that depends on the
// pocket it landed in, then fires it out along the wheel's current angle.
type RouletteSpinner struct {
	CX, CY    float64
	Radius    float64
	SpinSpeed float64 // Degrees per second
	Segments  []RouletteSegment

	rotation  float64 // Degrees
	state     RouletteState
	held      *Ball
	holdTimer float64
	segment   int
	recapture float64
}

// NewRouletteSpinner creates a wheel with n pockets (n is clamped to >= 2).
func NewRouletteSpinner(cx, cy, radius float64, n int, spinSpeed float64) *RouletteSpinner {
	if n < 2 {
		n = 2
	}
	segs := make([]RouletteSegment, n)
	for i := range segs {
		num := rouletteNumbers[i%len(rouletteNumbers)]
		segs[i] = RouletteSegment{Number: num, Red: redNumbers[num]}
	}
	return &RouletteSpinner{
		CX:        cx,
		CY:        cy,
		Radius:    radius,
		SpinSpeed: spinSpeed,
		Segments:  segs,
	}
}

// Rect returns the bounding square of the wheel.
func (rs *RouletteSpinner) Rect() physics.Rect {
	return physics.RectFromCenter(rs.CX, rs.CY, rs.Radius*2, rs.Radius*2)
}

// State returns the capture state.
func (rs *RouletteSpinner) State() RouletteState {
	return rs.state
}

// Rotation returns the wheel angle in degrees.
func (rs *RouletteSpinner) Rotation() float64 {
	return rs.rotation
}

// SetRotation sets the wheel angle in degrees.
func (rs *RouletteSpinner) SetRotation(deg float64) {
	rs.rotation = physics.NormalizeDegrees(deg)
}

// HoldRemaining returns the seconds left before the held ball is released.
func (rs *RouletteSpinner) HoldRemaining() float64 {
	return rs.holdTimer
}

// Segment returns the pocket index the current ball landed in.
func (rs *RouletteSpinner) Segment() int {
	return rs.segment
}

// HoldDuration maps a pocket index to how long the ball is held.
func (rs *RouletteSpinner) HoldDuration(index int) float64 {
	n := len(rs.Segments)
	return float64(index) / float64(n-1) * RouletteMaxHold
}

// SegmentAt returns the pocket index under the given world angle (degrees),
// taking the wheel's rotation into account.
func (rs *RouletteSpinner) SegmentAt(angleDeg float64) int {
	n := len(rs.Segments)
	rel := physics.NormalizeDegrees(angleDeg - rs.rotation)
	idx := int(rel / (360 / float64(n)))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// HandleCollision captures a ball touching the wheel while idle.
func (rs *RouletteSpinner) HandleCollision(b *Ball, sounds Sounds) bool {
	if rs.state != RouletteIdle || rs.recapture > 0 || b.Held {
		return false
	}
	bx, by := b.Center()
	if !physics.CirclesOverlap(rs.CX, rs.CY, rs.Radius, bx, by, b.Radius()) {
		return false
	}

	impact := physics.Degrees(math.Atan2(by-rs.CY, bx-rs.CX))
	rs.segment = rs.SegmentAt(impact)
	rs.holdTimer = rs.HoldDuration(rs.segment)
	rs.state = RouletteCapturing
	rs.held = b

	b.Held = true
	b.SetCenter(rs.CX, rs.CY)
	playEffect(sounds, SoundSpin)
	return true
}

// Update spins the wheel, orbits a held ball and releases it when its time is up.
func (rs *RouletteSpinner) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.DT()
	rs.rotation = physics.NormalizeDegrees(rs.rotation + rs.SpinSpeed*dt)
	if rs.recapture > 0 {
		rs.recapture = math.Max(0, rs.recapture-dt)
	}

	if rs.state != RouletteCapturing || rs.held == nil {
		return false, nil
	}

	rs.holdTimer -= dt
	if rs.holdTimer > 0 {
		orbit := physics.Radians(rs.rotation * 2)
		rs.held.OrbitX = math.Cos(orbit) * rs.Radius / 2
		rs.held.OrbitY = math.Sin(orbit) * rs.Radius / 2
		return false, nil
	}

	rs.release()
	return false, nil
}

// release fires the held ball out along the wheel's current angle.
func (rs *RouletteSpinner) release() {
	b := rs.held
	dx, dy := physics.FromAngle(physics.Radians(rs.rotation))
	b.Held = false
	b.OrbitX, b.OrbitY = 0, 0
	b.SetDirection(dx, dy)
	b.SetSpeed(RouletteReleaseSpeed)
	out := rs.Radius + b.Radius() + rouletteExitGap
	b.SetCenter(rs.CX+b.DX*out, rs.CY+b.DY*out)

	rs.held = nil
	rs.holdTimer = 0
	rs.state = RouletteIdle
	rs.recapture = rouletteRecapture
}

// Drop forgets a ball that is being removed from play without firing it.
func (rs *RouletteSpinner) Drop(b *Ball) {
	if rs.held == b {
		rs.held = nil
		rs.state = RouletteIdle
		rs.holdTimer = 0
	}
}

// Draw renders the wheel as colored wedges with a hub.
func (rs *RouletteSpinner) Draw(ctx DrawContext) error {
	n := len(rs.Segments)
	step := 2 * math.Pi / float64(n)
	base := physics.Radians(rs.rotation)
	center := ctx.View.ScalePoint(rs.CX, rs.CY)
	r := ctx.View.ScaleLen(rs.Radius)

	red := ctx.Palette.Get(draw.ColorRed)
	black := ctx.Palette.Get(draw.ColorBlack)
	for i, seg := range rs.Segments {
		a0 := base + float64(i)*step
		a1 := a0 + step
		col := black
		if seg.Red {
			col = red
		}
		if rs.state == RouletteCapturing && i == rs.segment {
			col = col.Lighten(0.4)
		}
		wedge := []draw.Point{
			center,
			{X: center.X + math.Cos(a0)*r, Y: center.Y + math.Sin(a0)*r},
			{X: center.X + math.Cos(a1)*r, Y: center.Y + math.Sin(a1)*r},
		}
		ctx.Canvas.DrawPolygon(wedge, col, true)
	}
	gold := ctx.Palette.Get(draw.ColorGold)
	ctx.Canvas.StrokeCircle(center.X, center.Y, r, gold)
	ctx.Canvas.FillCircle(center.X, center.Y, r*0.18, gold)
	return nil
}
