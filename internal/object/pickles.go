package object

import (
	"math"

	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/physics"
)

// PicklesState is the cat's current behaviour.
type PicklesState int

const (
	PicklesAsleep PicklesState = iota
	PicklesChasing
	PicklesCarrying
)

func (s PicklesState) String() string {
	switch s {
	case PicklesChasing:
		return "chasing"
	case PicklesCarrying:
		return "carrying"
	default:
		return "asleep"
	}
}

// PicklesCarrySpeedup multiplies Speed while carrying a ghost.
const PicklesCarrySpeedup = 1.75

// PicklesConfig tunes the cat. Distances are logical pixels, times seconds.
type PicklesConfig struct {
	ActivationRadius float64
	Speed            float64
	GrabDistance     float64
	DeliveryDistance float64
	Cooldown         float64
	CarryOffset      float64 // How far ahead the carried ghost trails
}

// DefaultPicklesConfig returns the stock tuning.
func DefaultPicklesConfig() PicklesConfig {
	return PicklesConfig{
		ActivationRadius: 220,
		Speed:            140,
		GrabDistance:     24,
		DeliveryDistance: 30,
		Cooldown:         4,
		CarryOffset:      18,
	}
}

// Pickles is a cat that hunts ghosts and drags them into candle light.
type Pickles struct {
	Rect   physics.Rect // Display rect, whole pixels only
	Config PicklesConfig

	x, y     float64 // Precise top-left
	state    PicklesState
	cooldown float64
	carried  *Ghost
	target   *Candle
	facing   float64 // -1 left, +1 right
}

// NewPickles creates a sleeping cat occupying r.
func NewPickles(r physics.Rect, cfg PicklesConfig) *Pickles {
	p := &Pickles{Config: cfg, x: r.X, y: r.Y, facing: 1}
	p.Rect = physics.Rect{W: r.W, H: r.H}
	p.syncRect()
	return p
}

// State returns the current behaviour.
func (p *Pickles) State() PicklesState {
	return p.state
}

// Carrying returns the carried ghost, or nil.
func (p *Pickles) Carrying() *Ghost {
	return p.carried
}

// Cooldown returns the seconds left before the cat may wake again.
func (p *Pickles) Cooldown() float64 {
	return p.cooldown
}

// Center returns the precise center.
func (p *Pickles) Center() (float64, float64) {
	return p.x + p.Rect.W/2, p.y + p.Rect.H/2
}

func (p *Pickles) syncRect() {
	p.Rect.X = math.Round(p.x)
	p.Rect.Y = math.Round(p.y)
}

// Update runs the cat's state machine.
func (p *Pickles) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.DT()
	switch p.state {
	case PicklesAsleep:
		if p.cooldown > 0 {
			p.cooldown = math.Max(0, p.cooldown-dt)
			break
		}
		if p.ballNearby(ctx.Balls) {
			p.state = PicklesChasing
			playEffect(ctx.Sounds, SoundMeow)
		}

	case PicklesChasing:
		g := p.nearestGhost(ctx.Ghosts)
		if g == nil {
			p.state = PicklesAsleep
			break
		}
		gx, gy := g.Center()
		if p.moveToward(gx, gy, p.Config.Speed*dt) > p.Config.GrabDistance {
			break
		}
		g.SetExternallyControlled(true)
		p.carried = g
		p.target = nearestCandle(ctx.Candles, gx, gy)
		if p.target == nil {
			p.drop()
			break
		}
		p.state = PicklesCarrying

	case PicklesCarrying:
		g := p.carried
		if g == nil || !g.Valid() {
			p.drop()
			break
		}
		lx, ly := p.target.LightCenter()
		remaining := p.moveToward(lx, ly, p.Config.Speed*PicklesCarrySpeedup*dt)

		cx, cy := p.Center()
		dx, dy := physics.Normalize(lx-cx, ly-cy)
		g.SetCenter(cx+dx*p.Config.CarryOffset, cy+dy*p.Config.CarryOffset)

		for _, c := range ctx.Candles {
			if gx, gy := g.Center(); c.InCritical(gx, gy) {
				g.ForceFade()
				p.drop()
				return false, nil
			}
		}
		if remaining <= p.Config.DeliveryDistance {
			p.drop()
		}
	}
	p.clampInside(ctx.Arena)
	return false, nil
}

// drop lets go of the ghost and goes back to sleep on cooldown.
func (p *Pickles) drop() {
	if p.carried != nil {
		p.carried.SetExternallyControlled(false)
	}
	p.carried = nil
	p.target = nil
	p.state = PicklesAsleep
	p.cooldown = p.Config.Cooldown
}

// moveToward steps the center toward (tx, ty) and returns the remaining distance.
func (p *Pickles) moveToward(tx, ty, step float64) float64 {
	cx, cy := p.Center()
	dist := physics.Distance(cx, cy, tx, ty)
	if dist > 0 {
		step = math.Min(step, dist)
		p.x += (tx - cx) / dist * step
		p.y += (ty - cy) / dist * step
		if tx < cx {
			p.facing = -1
		} else if tx > cx {
			p.facing = 1
		}
		dist -= step
	}
	p.syncRect()
	return dist
}

func (p *Pickles) ballNearby(balls []*Ball) bool {
	cx, cy := p.Center()
	for _, b := range balls {
		bx, by := b.Center()
		if physics.PointInCircle(bx, by, cx, cy, p.Config.ActivationRadius) {
			return true
		}
	}
	return false
}

func (p *Pickles) nearestGhost(m *GhostManager) *Ghost {
	if m == nil {
		return nil
	}
	cx, cy := p.Center()
	var best *Ghost
	bestDist := math.Inf(1)
	for _, g := range m.Ghosts() {
		if !g.Valid() || g.ExternallyControlled() {
			continue
		}
		gx, gy := g.Center()
		if d := physics.DistanceSquared(cx, cy, gx, gy); d < bestDist {
			best, bestDist = g, d
		}
	}
	return best
}

func nearestCandle(candles []*Candle, x, y float64) *Candle {
	var best *Candle
	bestDist := math.Inf(1)
	for _, c := range candles {
		lx, ly := c.LightCenter()
		if d := physics.DistanceSquared(x, y, lx, ly); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func (p *Pickles) clampInside(a Arena) {
	r := physics.Rect{X: p.x, Y: p.y, W: p.Rect.W, H: p.Rect.H}.ClampInside(a.Bounds())
	p.x, p.y = r.X, r.Y
	p.syncRect()
}

// Draw renders a small cat; eyes are closed while asleep.
func (p *Pickles) Draw(ctx DrawContext) error {
	fur := ctx.Palette.Get(draw.ColorPickles)
	r := p.Rect
	body := physics.Rect{X: r.X, Y: r.Y + r.H*0.35, W: r.W, H: r.H * 0.65}
	fillRect(ctx, body, fur)

	headR := r.H * 0.3
	hx := r.CenterX() + p.facing*r.W*0.3
	hy := r.Y + headR
	fillCircle(ctx, hx, hy, headR, fur)
	line(ctx, hx-headR*0.8, hy-headR*0.4, hx-headR*0.5, hy-headR*1.4, fur)
	line(ctx, hx+headR*0.8, hy-headR*0.4, hx+headR*0.5, hy-headR*1.4, fur)

	tx := r.CenterX() - p.facing*r.W*0.5
	line(ctx, tx, body.Y+body.H*0.3, tx-p.facing*r.W*0.25, r.Y, fur)

	eye := ctx.Palette.Get(draw.ColorBlack)
	if p.state == PicklesAsleep {
		line(ctx, hx-headR*0.5, hy, hx-headR*0.15, hy, eye)
		line(ctx, hx+headR*0.15, hy, hx+headR*0.5, hy, eye)
	} else {
		fillCircle(ctx, hx-headR*0.35, hy, headR*0.18, eye)
		fillCircle(ctx, hx+headR*0.35, hy, headR*0.18, eye)
	}
	return nil
}
