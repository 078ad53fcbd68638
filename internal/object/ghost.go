package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/physics"
)

// GhostState is the phase of a ghost's life.
type GhostState int

const (
	GhostAppearing GhostState = iota
	GhostFloating
	GhostRushing
	GhostPossessing
	GhostFadingOut
	GhostInactive
)

func (s GhostState) String() string {
	switch s {
	case GhostAppearing:
		return "appearing"
	case GhostFloating:
		return "floating"
	case GhostRushing:
		return "rushing"
	case GhostPossessing:
		return "possessing"
	case GhostFadingOut:
		return "fading_out"
	default:
		return "inactive"
	}
}

// Ghost tuning. Times are seconds, speeds logical pixels per second, alpha 0-255.
const (
	DefaultGhostSize   = 40.0
	GhostMaxAlpha      = 150.0
	GhostAppearTime    = 1.0
	GhostFloatMin      = 5.0
	GhostFloatMax      = 10.0
	GhostRushTimeout   = 5.0
	GhostPossessTime   = 3.0
	GhostFadeTime      = 1.0
	GhostFloatSpeed    = 60.0
	GhostRushSpeed     = 220.0
	PicklesAvoidRadius = 150.0

	lightRadialWeight  = 0.3
	lightTangentWeight = 0.7
	possessMaxAngle    = 60.0 // Degrees off horizontal for the randomized ball direction
)

// Ghost wanders the arena, avoids light and Pickles, and may take over a
// ball for a short time.
type Ghost struct {
	X, Y   float64 // Center
	Size   float64
	DX, DY float64 // Unit heading
	Look   GhostLook

	state     GhostState
	timer     float64
	alpha     float64
	fadeFrom  float64
	external  bool
	possessed *Ball
	avoiding  bool
	tangent   float64 // +1 or -1, flips after every light avoidance episode
	manager   *GhostManager
}

// NewGhost creates a ghost centered at (cx, cy). It fails when the manager
// already holds the maximum number of ghosts.
func NewGhost(cx, cy, size float64, m *GhostManager, rng *rand.Rand) (*Ghost, bool) {
	if size <= 0 {
		size = DefaultGhostSize
	}
	g := &Ghost{
		X:       cx,
		Y:       cy,
		Size:    size,
		Look:    NewGhostLook(rng),
		state:   GhostAppearing,
		timer:   GhostAppearTime,
		tangent: 1,
		manager: m,
	}
	g.DX, g.DY = physics.FromAngle(rng.Float64() * 2 * math.Pi)
	if !m.Acquire(g) {
		return nil, false
	}
	return g, true
}

// State returns the current phase.
func (g *Ghost) State() GhostState {
	return g.state
}

// Alpha returns the current opacity (0-255).
func (g *Ghost) Alpha() float64 {
	return g.alpha
}

// Radius returns the half size.
func (g *Ghost) Radius() float64 {
	return g.Size / 2
}

// Rect returns the ghost's bounding rectangle.
func (g *Ghost) Rect() physics.Rect {
	return physics.RectFromCenter(g.X, g.Y, g.Size, g.Size)
}

// Center returns the ghost center.
func (g *Ghost) Center() (float64, float64) {
	return g.X, g.Y
}

// SetCenter moves the ghost.
func (g *Ghost) SetCenter(cx, cy float64) {
	g.X, g.Y = cx, cy
}

// Valid reports whether the ghost can still be hunted.
func (g *Ghost) Valid() bool {
	return g.state != GhostFadingOut && g.state != GhostInactive
}

// Possessing returns the possessed ball, or nil.
func (g *Ghost) Possessing() *Ball {
	return g.possessed
}

// ExternallyControlled reports whether something else moves the ghost.
func (g *Ghost) ExternallyControlled() bool {
	return g.external
}

// SetExternallyControlled locks or unlocks external control. A possessing
// ghost that gets locked lets go of the ball.
func (g *Ghost) SetExternallyControlled(on bool) {
	g.external = on
	if on && g.state == GhostPossessing {
		g.unpossess()
		g.state = GhostFloating
		g.timer = GhostFloatMin
	}
}

// ForceFade starts fading from the current alpha. No-op once fading.
func (g *Ghost) ForceFade() {
	if !g.Valid() {
		return
	}
	g.unpossess()
	g.fadeFrom = g.alpha
	g.state = GhostFadingOut
	g.timer = GhostFadeTime
}

func (g *Ghost) unpossess() {
	if g.possessed != nil {
		g.possessed.Possessed = false
		g.possessed = nil
	}
	g.manager.releasePossession(g)
}

func (g *Ghost) startFloating(rng *rand.Rand) {
	g.state = GhostFloating
	g.timer = GhostFloatMin + rng.Float64()*(GhostFloatMax-GhostFloatMin)
	g.DX, g.DY = physics.FromAngle(rng.Float64() * 2 * math.Pi)
}

// Update runs the state machine. Returns true once the fade completes.
func (g *Ghost) Update(ctx UpdateContext) (bool, error) {
	if g.state == GhostInactive {
		return true, nil
	}
	dt := ctx.DT()

	if g.Valid() && g.inCriticalLight(ctx.Candles) {
		g.ForceFade()
	}

	switch g.state {
	case GhostAppearing:
		g.timer -= dt
		g.alpha = GhostMaxAlpha * physics.Clamp(1-g.timer/GhostAppearTime, 0, 1)
		if !g.external {
			g.steer(ctx)
		}
		if g.timer <= 0 {
			g.alpha = GhostMaxAlpha
			g.startFloating(ctx.Rand)
		}

	case GhostFloating:
		if g.external {
			break
		}
		g.timer -= dt
		g.move(ctx, GhostFloatSpeed, g.steer(ctx))
		if g.tryPossess(ctx) {
			break
		}
		if g.timer <= 0 {
			if len(ctx.Balls) > 0 {
				g.state = GhostRushing
				g.timer = GhostRushTimeout
			} else {
				g.startFloating(ctx.Rand)
			}
		}

	case GhostRushing:
		if g.external {
			break
		}
		g.timer -= dt
		if b := g.nearestBall(ctx.Balls); b != nil {
			bx, by := b.Center()
			if dx, dy := physics.Normalize(bx-g.X, by-g.Y); dx != 0 || dy != 0 {
				g.DX, g.DY = dx, dy
			}
		}
		g.move(ctx, GhostRushSpeed, g.steer(ctx))
		if g.tryPossess(ctx) {
			break
		}
		if g.timer <= 0 {
			g.startFloating(ctx.Rand)
		}

	case GhostPossessing:
		g.timer -= dt
		b := g.possessed
		if b == nil || !containsBall(ctx.Balls, b) {
			g.ForceFade()
			break
		}
		g.X, g.Y = b.Center()
		if g.timer <= 0 || ballLit(ctx.Candles, b) {
			g.ForceFade()
		}

	case GhostFadingOut:
		g.timer -= dt
		g.alpha = g.fadeFrom * physics.Clamp(g.timer/GhostFadeTime, 0, 1)
		if g.timer <= 0 {
			g.alpha = 0
			g.state = GhostInactive
			g.manager.Release(g)
			return true, nil
		}
	}

	g.clampInside(ctx.Arena)
	return false, nil
}

// steer sets the heading away from chasing Pickles or around lights.
// Returns true while avoiding.
func (g *Ghost) steer(ctx UpdateContext) bool {
	if p := g.nearbyChasingPickles(ctx.Pickles); p != nil {
		px, py := p.Center()
		dx, dy := physics.Normalize(g.X-px, g.Y-py)
		if dx == 0 && dy == 0 {
			dx = 1
		}
		g.DX, g.DY = dx, dy
		g.avoiding = true
		return true
	}

	var target *Ball
	if g.state == GhostRushing {
		target = g.nearestBall(ctx.Balls)
	}

	var sx, sy float64
	lit := false
	for _, c := range ctx.Candles {
		if !c.Illuminates(g.X, g.Y, g.Radius()) {
			continue
		}
		lx, ly := c.LightCenter()
		rx, ry := physics.Normalize(g.X-lx, g.Y-ly)
		if rx == 0 && ry == 0 {
			rx = 1
		}
		tx, ty := -ry*g.tangent, rx*g.tangent
		if target != nil {
			bx, by := target.Center()
			if physics.Dot(tx, ty, bx-g.X, by-g.Y) < 0 {
				tx, ty = -tx, -ty
			}
		}
		sx += lightRadialWeight*rx + lightTangentWeight*tx
		sy += lightRadialWeight*ry + lightTangentWeight*ty
		lit = true
	}

	if !lit {
		if g.avoiding {
			g.tangent = -g.tangent
		}
		g.avoiding = false
		return false
	}
	nx, ny := physics.Normalize(sx, sy)
	if nx == 0 && ny == 0 {
		return g.avoiding
	}
	g.DX, g.DY = nx, ny
	g.avoiding = true
	return true
}

// move advances along the heading and bounces off the arena walls.
func (g *Ghost) move(ctx UpdateContext, speed float64, avoiding bool) {
	dt := ctx.DT()
	g.X += g.DX * speed * dt
	g.Y += g.DY * speed * dt

	b := ctx.Arena.Bounds()
	r := g.Radius()
	var hitX, hitY float64 // Sign the heading must take after a bounce
	if g.X-r < b.Left() {
		g.X = b.Left() + r
		hitX = 1
	} else if g.X+r > b.Right() {
		g.X = b.Right() - r
		hitX = -1
	}
	if g.Y-r < b.Top() {
		g.Y = b.Top() + r
		hitY = 1
	} else if g.Y+r > b.Bottom() {
		g.Y = b.Bottom() - r
		hitY = -1
	}
	if hitX == 0 && hitY == 0 {
		return
	}
	if g.state == GhostFloating && !avoiding {
		g.DX, g.DY = physics.FromAngle(ctx.Rand.Float64() * 2 * math.Pi)
	}
	if hitX != 0 {
		g.DX = hitX * math.Abs(g.DX)
	}
	if hitY != 0 {
		g.DY = hitY * math.Abs(g.DY)
	}
}

// tryPossess takes over the first overlapping free ball if the slot is open.
func (g *Ghost) tryPossess(ctx UpdateContext) bool {
	rect := g.Rect()
	for _, b := range ctx.Balls {
		if b.Held || b.Possessed || !rect.Intersects(b.Rect()) {
			continue
		}
		if !g.manager.TryPossess(g) {
			return false
		}
		g.possessed = b
		b.Possessed = true

		angle := physics.Radians((ctx.Rand.Float64()*2 - 1) * possessMaxAngle)
		if ctx.Rand.Intn(2) == 0 {
			angle = math.Pi - angle
		}
		b.SetDirection(physics.FromAngle(angle))

		g.state = GhostPossessing
		g.timer = GhostPossessTime
		playEffect(ctx.Sounds, SoundGhost)
		return true
	}
	return false
}

func (g *Ghost) inCriticalLight(candles []*Candle) bool {
	for _, c := range candles {
		if c.InCritical(g.X, g.Y) {
			return true
		}
	}
	return false
}

func (g *Ghost) nearbyChasingPickles(pickles []*Pickles) *Pickles {
	if g.state != GhostAppearing && g.state != GhostFloating && g.state != GhostRushing {
		return nil
	}
	var best *Pickles
	bestDist := PicklesAvoidRadius * PicklesAvoidRadius
	for _, p := range pickles {
		if p.State() != PicklesChasing {
			continue
		}
		px, py := p.Center()
		if d := physics.DistanceSquared(g.X, g.Y, px, py); d <= bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

func (g *Ghost) nearestBall(balls []*Ball) *Ball {
	var best *Ball
	bestDist := math.Inf(1)
	for _, b := range balls {
		bx, by := b.Center()
		if d := physics.DistanceSquared(g.X, g.Y, bx, by); d < bestDist {
			best, bestDist = b, d
		}
	}
	return best
}

func (g *Ghost) clampInside(a Arena) {
	b := a.Bounds()
	r := g.Radius()
	g.X = physics.Clamp(g.X, b.Left()+r, b.Right()-r)
	g.Y = physics.Clamp(g.Y, b.Top()+r, b.Bottom()-r)
}

func containsBall(balls []*Ball, b *Ball) bool {
	for _, other := range balls {
		if other == b {
			return true
		}
	}
	return false
}

func ballLit(candles []*Candle, b *Ball) bool {
	cx, cy := b.Center()
	for _, c := range candles {
		if c.Illuminates(cx, cy, b.Radius()) {
			return true
		}
	}
	return false
}

// Draw renders the ghost body and face.
func (g *Ghost) Draw(ctx DrawContext) error {
	if g.alpha <= 0 {
		return nil
	}
	body := ctx.Palette.Get(draw.ColorGhost)
	if g.state == GhostPossessing {
		body = ctx.Palette.Get(draw.ColorPossessed)
	}
	g.Look.Draw(ctx, g.X, g.Y, g.Size, body.Alpha255(g.alpha))
	return nil
}
