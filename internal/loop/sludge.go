package loop

import (
	"image"
	"image/color"
	"math/rand"
	"sync"

	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/physics"
)

// Sludge is the animated-looking texture behind sewer levels. It is
// regenerated on a background goroutine whenever the render size changes.
// Rendering never waits for the worker: if the lock is busy the previous
// texture is drawn.
type Sludge struct {
	base draw.Color
	seed int64

	mu      sync.Mutex
	texture *image.RGBA
	version uint64 // Generation of texture

	requested uint64 // Latest generation asked for; guarded by mu
	width     int    // Size of the latest request; guarded by mu
	height    int

	last *image.RGBA // Texture drawn last frame; render goroutine only
	wg   sync.WaitGroup
}

// NewSludge creates an empty texture cache.
func NewSludge(base draw.Color, seed int64) *Sludge {
	return &Sludge{base: base, seed: seed}
}

// Resize requests a texture of w x h pixels. Calls with the current size are
// ignored.
func (s *Sludge) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.mu.Lock()
	if w == s.width && h == s.height {
		s.mu.Unlock()
		return
	}
	s.width, s.height = w, h
	s.requested++
	gen := s.requested
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		img := generateSludge(w, h, s.base, s.seed)
		s.mu.Lock()
		defer s.mu.Unlock()
		// A newer request may have finished first.
		if gen > s.version {
			s.texture = img
			s.version = gen
		}
	}()
}

// Wait blocks until every pending generation has finished.
func (s *Sludge) Wait() {
	s.wg.Wait()
}

// Version returns the generation of the current texture.
func (s *Sludge) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Texture returns the texture to draw this frame without blocking.
func (s *Sludge) Texture() *image.RGBA {
	if s.mu.TryLock() {
		s.last = s.texture
		s.mu.Unlock()
	}
	return s.last
}

// Draw paints the current texture into dst (canvas pixels).
func (s *Sludge) Draw(c *draw.Canvas, dst physics.Rect) {
	if img := s.Texture(); img != nil {
		c.DrawImage(img, dst)
	}
}

// generateSludge renders layered value noise tinted around base.
func generateSludge(w, h int, base draw.Color, seed int64) *image.RGBA {
	rng := rand.New(rand.NewSource(seed))
	const grid = 16
	lattice := make([]float64, (grid+1)*(grid+1))
	for i := range lattice {
		lattice[i] = rng.Float64()
	}
	sample := func(x, y float64) float64 {
		x0, y0 := int(x), int(y)
		fx, fy := smooth(x-float64(x0)), smooth(y-float64(y0))
		at := func(i, j int) float64 { return lattice[(j%(grid+1))*(grid+1)+i%(grid+1)] }
		top := at(x0, y0)*(1-fx) + at(x0+1, y0)*fx
		bot := at(x0, y0+1)*(1-fx) + at(x0+1, y0+1)*fx
		return top*(1-fy) + bot*fy
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	dark := base.Darken(0.5)
	light := base.Lighten(0.2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			u := float64(x) / float64(w) * (grid / 2)
			v := float64(y) / float64(h) * (grid / 2)
			n := 0.65*sample(u, v) + 0.35*sample(u*2, v*2)
			r, g, b := dark.Mix(light, n).RGB255()
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}
