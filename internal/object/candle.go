package object

import (
	"math"

	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/physics"
)

// Candle light defaults.
const (
	DefaultLightRadius     = 150.0
	CriticalRadiusFraction = 0.4
)

// Candle is a light source. It has no collision; ghosts fear its light and
// Pickles delivers ghosts to it.
type Candle struct {
	Rect        physics.Rect
	LightRadius float64

	flicker float64 // Cosmetic phase
}

// NewCandle creates a candle; a non-positive radius uses the default.
func NewCandle(r physics.Rect, lightRadius float64) *Candle {
	if lightRadius <= 0 {
		lightRadius = DefaultLightRadius
	}
	return &Candle{Rect: r, LightRadius: lightRadius}
}

// LightCenter returns the flame position, where light radiates from.
func (c *Candle) LightCenter() (float64, float64) {
	return c.Rect.CenterX(), c.Rect.Y
}

// CriticalRadius is the inner radius where ghosts are destroyed.
func (c *Candle) CriticalRadius() float64 {
	return c.LightRadius * CriticalRadiusFraction
}

// Illuminates reports whether a circle at (x, y) with radius r overlaps the light.
func (c *Candle) Illuminates(x, y, r float64) bool {
	lx, ly := c.LightCenter()
	return physics.CirclesOverlap(lx, ly, c.LightRadius, x, y, r)
}

// InCritical reports whether the point lies inside the critical radius.
func (c *Candle) InCritical(x, y float64) bool {
	lx, ly := c.LightCenter()
	return physics.PointInCircle(x, y, lx, ly, c.CriticalRadius())
}

// Update advances the flicker.
func (c *Candle) Update(ctx UpdateContext) (bool, error) {
	c.flicker += ctx.DT() * (8 + ctx.Rand.Float64()*4)
	return false, nil
}

// Draw renders the candle body, flame and a soft glow.
func (c *Candle) Draw(ctx DrawContext) error {
	lx, ly := c.LightCenter()
	glow := ctx.Palette.Get(draw.ColorFlame)
	radius := c.LightRadius * (0.97 + 0.03*math.Sin(c.flicker))
	strokeCircle(ctx, lx, ly, radius, glow.Alpha(0.25))
	strokeCircle(ctx, lx, ly, c.CriticalRadius(), glow.Alpha(0.15))

	body := physics.Rect{X: c.Rect.X, Y: c.Rect.Y + c.Rect.H*0.25, W: c.Rect.W, H: c.Rect.H * 0.75}
	fillRect(ctx, body, ctx.Palette.Get(draw.ColorCandle))
	flameR := c.Rect.W * (0.35 + 0.05*math.Sin(c.flicker*1.7))
	fillCircle(ctx, lx, ly+c.Rect.H*0.1, flameR, glow)
	return nil
}
