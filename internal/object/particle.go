package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/ping/internal/draw"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived decorative effect (water, steam, sparks).
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity
	Gravity     float64 // Downward acceleration
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay (1.0 = no drag)
	Radius      float64 // Logical radius
	Color       string  // Palette name
	Fade        bool    // Whether to fade out over lifetime
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64, color string) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Gravity = 0
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	p.Radius = 2
	p.Color = color
	p.Fade = true
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnBurst creates particles in a circular burst pattern.
func SpawnBurst(x, y float64, count int, speed, lifetime float64, color string, rng *rand.Rand, spawner Spawner) {
	if spawner == nil {
		return
	}

	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		// Random speed variation (50% to 150%)
		spd := speed * (0.5 + rng.Float64())
		// Random lifetime variation (50% to 100%)
		life := lifetime * (0.5 + rng.Float64()*0.5)

		p := NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life, color)
		spawner.Spawn(p)
	}
}

// SpawnSpout creates a column of water droplets shooting away from a wall.
// dir is -1 for upward, +1 for downward.
func SpawnSpout(x, y, width, dir float64, rng *rand.Rand, spawner Spawner) {
	if spawner == nil {
		return
	}

	count := 2 + rng.Intn(3)
	for i := 0; i < count; i++ {
		px := x + rng.Float64()*width
		vx := (rng.Float64() - 0.5) * 60
		vy := dir * (220 + rng.Float64()*160)
		p := NewParticle(px, y, vx, vy, 0.6+rng.Float64()*0.4, draw.ColorWater)
		p.Gravity = -dir * 420
		p.Drag = 0.99
		p.Radius = 2 + rng.Float64()*2
		spawner.Spawn(p)
	}
}

// SpawnSteam creates slow, rising puffs.
func SpawnSteam(x, y float64, count int, rng *rand.Rand, spawner Spawner) {
	if spawner == nil {
		return
	}

	for i := 0; i < count; i++ {
		vx := (rng.Float64() - 0.5) * 80
		vy := -(40 + rng.Float64()*60)
		p := NewParticle(x+(rng.Float64()-0.5)*10, y, vx, vy, 0.8+rng.Float64()*0.6, draw.ColorSteam)
		p.Drag = 0.97
		p.Radius = 3 + rng.Float64()*4
		spawner.Spawn(p)
	}
}

// SpawnSparks creates a few fast, short-lived sparks.
func SpawnSparks(x, y float64, count int, rng *rand.Rand, spawner Spawner) {
	SpawnBurst(x, y, count, 160, 0.25, draw.ColorSpark, rng, spawner)
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.DT()

	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true, nil // Remove particle
	}

	dragFactor := math.Pow(p.Drag, dt*60) // Normalize drag to ~60fps
	p.VX *= dragFactor
	p.VY *= dragFactor
	p.VY += p.Gravity * dt

	p.X += p.VX * dt
	p.Y += p.VY * dt

	return false, nil
}

// Draw renders the particle as a small dot that fades with age.
func (p *Particle) Draw(ctx DrawContext) error {
	alpha := 1.0
	if p.Fade && p.MaxLifetime > 0 {
		alpha = p.Lifetime / p.MaxLifetime
	}
	fillCircle(ctx, p.X, p.Y, p.Radius, ctx.Palette.Get(p.Color).Alpha(alpha))
	return nil
}
