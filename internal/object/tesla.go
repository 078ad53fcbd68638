package object

import (
	"math"

	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/physics"
)

// Tesla coil timings.
const (
	teslaArcInterval = 1.2  // Seconds between discharges
	teslaArcLife     = 0.15 // Seconds an arc stays visible
	teslaArcSegments = 7
	teslaArcReach    = 60.0
)

// TeslaCoil is a solid obstacle (its base sphere) that throws decorative arcs.
type TeslaCoil struct {
	Rect       physics.Rect // Full tower
	BaseRadius float64
	TopRadius  float64

	arcTimer float64
	arcLife  float64
	arc      []draw.Point // Logical coordinates
}

// NewTeslaCoil creates a coil occupying r.
func NewTeslaCoil(r physics.Rect, baseRadius, topRadius float64) *TeslaCoil {
	if baseRadius <= 0 {
		baseRadius = r.W / 2
	}
	if topRadius <= 0 {
		topRadius = baseRadius * 0.6
	}
	return &TeslaCoil{Rect: r, BaseRadius: baseRadius, TopRadius: topRadius, arcTimer: teslaArcInterval}
}

// BaseSphere returns the collision rectangle: the bounding square of the base sphere.
func (t *TeslaCoil) BaseSphere() physics.Rect {
	cx := t.Rect.CenterX()
	cy := t.Rect.Bottom() - t.BaseRadius
	return physics.RectFromCenter(cx, cy, t.BaseRadius*2, t.BaseRadius*2)
}

// topCenter is where arcs start.
func (t *TeslaCoil) topCenter() (float64, float64) {
	return t.Rect.CenterX(), t.Rect.Y + t.TopRadius
}

// HandleCollision bounces the ball off the base sphere.
func (t *TeslaCoil) HandleCollision(b *Ball, sounds Sounds) bool {
	if !bounceOffRect(b, t.BaseSphere()) {
		return false
	}
	playEffect(sounds, SoundBounce)
	return true
}

// Update schedules arcs.
func (t *TeslaCoil) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.DT()
	if t.arcLife > 0 {
		t.arcLife -= dt
		if t.arcLife <= 0 {
			t.arc = t.arc[:0]
		}
	}
	t.arcTimer -= dt
	if t.arcTimer > 0 {
		return false, nil
	}
	t.arcTimer = teslaArcInterval * (0.5 + ctx.Rand.Float64())
	t.arcLife = teslaArcLife

	sx, sy := t.topCenter()
	angle := ctx.Rand.Float64() * 2 * math.Pi
	ex, ey := sx+math.Cos(angle)*teslaArcReach, sy+math.Sin(angle)*teslaArcReach
	t.arc = append(t.arc[:0], draw.Point{X: sx, Y: sy})
	for i := 1; i < teslaArcSegments; i++ {
		f := float64(i) / teslaArcSegments
		jitter := (ctx.Rand.Float64() - 0.5) * 16
		t.arc = append(t.arc, draw.Point{
			X: sx + (ex-sx)*f - math.Sin(angle)*jitter,
			Y: sy + (ey-sy)*f + math.Cos(angle)*jitter,
		})
	}
	t.arc = append(t.arc, draw.Point{X: ex, Y: ey})
	SpawnSparks(ex, ey, 4, ctx.Rand, ctx.Spawner)
	return false, nil
}

// Draw renders the tower, spheres and any live arc.
func (t *TeslaCoil) Draw(ctx DrawContext) error {
	metal := ctx.Palette.Get(draw.ColorMetal)
	base := t.BaseSphere()
	fillCircle(ctx, base.CenterX(), base.CenterY(), t.BaseRadius, metal.Darken(0.2))

	cx := t.Rect.CenterX()
	tx, ty := t.topCenter()
	coil := physics.Rect{X: cx - t.Rect.W/6, Y: ty, W: t.Rect.W / 3, H: base.Y - ty}
	fillRect(ctx, coil, ctx.Palette.Get(draw.ColorGold).Darken(0.3))
	fillCircle(ctx, tx, ty, t.TopRadius, metal.Lighten(0.3))

	if len(t.arc) > 1 {
		pts := make([]draw.Point, len(t.arc))
		for i, p := range t.arc {
			pts[i] = ctx.View.ScalePoint(p.X, p.Y)
		}
		ctx.Canvas.DrawPolyline(pts, ctx.Palette.Get(draw.ColorSpark))
	}
	return nil
}
