package object

import (
	"math"

	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/physics"
)

// PortalCooldownTicks is how many updates both ends of a pair stay inert
// after a teleport.
const PortalCooldownTicks = 15

// portalExitGap separates a teleported ball from the exit portal.
const portalExitGap = 1.0

// Portal teleports the ball to its paired portal.
type Portal struct {
	ID       int
	TargetID int
	Rect     physics.Rect
	// Exit is the side of this portal balls come out of (SideLeft or SideRight).
	Exit physics.Side

	pair     *Portal
	cooldown int
}

// NewPortal creates an unpaired portal. A zero exit side is derived from the
// portal's position: portals on the left half emit to the right.
func NewPortal(id, targetID int, r physics.Rect, exit physics.Side, arena Arena) *Portal {
	if exit != physics.SideLeft && exit != physics.SideRight {
		exit = physics.SideRight
		if r.CenterX() > arena.Width/2 {
			exit = physics.SideLeft
		}
	}
	return &Portal{ID: id, TargetID: targetID, Rect: r, Exit: exit}
}

// SetPair links this portal to its destination.
func (p *Portal) SetPair(other *Portal) {
	p.pair = other
}

// Pair returns the linked portal or nil.
func (p *Portal) Pair() *Portal {
	return p.pair
}

// CoolingDown reports whether the portal is temporarily inert.
func (p *Portal) CoolingDown() bool {
	return p.cooldown > 0
}

// HandleCollision teleports an overlapping ball to the paired portal,
// keeping direction and speed. The ball's relative height inside this portal
// is mapped onto the destination. Returns true on a teleport.
func (p *Portal) HandleCollision(b *Ball, sounds Sounds) bool {
	if p.pair == nil || p.cooldown > 0 || p.pair.cooldown > 0 {
		return false
	}
	if !b.Rect().Intersects(p.Rect) {
		return false
	}

	dst := p.pair
	_, cy := b.Center()
	rel := 0.5
	if p.Rect.H > 0 {
		rel = physics.Clamp((cy-p.Rect.Y)/p.Rect.H, 0, 1)
	}
	half := b.Size / 2
	ny := dst.Rect.Y + rel*dst.Rect.H
	lo, hi := dst.Rect.Y+half, dst.Rect.Bottom()-half
	if lo > hi {
		ny = dst.Rect.CenterY()
	} else {
		ny = physics.Clamp(ny, lo, hi)
	}

	var nx float64
	if dst.Exit == physics.SideLeft {
		nx = dst.Rect.X - portalExitGap - half
	} else {
		nx = dst.Rect.Right() + portalExitGap + half
	}
	b.SetCenter(nx, ny)

	p.cooldown = PortalCooldownTicks
	dst.cooldown = PortalCooldownTicks
	playEffect(sounds, SoundPortal)
	return true
}

// Update counts down the cooldown.
func (p *Portal) Update(_ UpdateContext) (bool, error) {
	if p.cooldown > 0 {
		p.cooldown--
	}
	return false, nil
}

// Draw renders the portal as a swirling oval; inert portals are dimmed.
func (p *Portal) Draw(ctx DrawContext) error {
	col := ctx.Palette.Get(draw.ColorPortal)
	if p.pair == nil || p.cooldown > 0 {
		col = col.Darken(0.5)
	}
	r := ctx.View.ScaleRect(p.Rect)
	ctx.Canvas.FillRect(r, col.Alpha(0.35))

	cx, cy := r.Center()
	n := 12
	points := ctx.Canvas.BorrowPoints(n)
	for i := 0; i < n; i++ {
		a := float64(i)*2*math.Pi/float64(n) + ctx.Time*3
		points[i] = draw.Point{X: cx + math.Cos(a)*r.W/2, Y: cy + math.Sin(a)*r.H/2}
	}
	ctx.Canvas.DrawPolygon(points, col, false)
	return nil
}
