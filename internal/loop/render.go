package loop

import (
	"math"

	"github.com/tomz197/ping/internal/draw"
	"github.com/tomz197/ping/internal/level"
	"github.com/tomz197/ping/internal/loop/config"
	"github.com/tomz197/ping/internal/object"
	"github.com/tomz197/ping/internal/physics"
)

// Draw renders the whole level onto c: backdrop, scoreboard band, center
// line, every entity and finally the lighting overlay.
func (s *Session) Draw(c *draw.Canvas, view draw.Viewport) error {
	pal := s.level.Palette
	ctx := object.DrawContext{Canvas: c, Palette: pal, View: view, Time: s.elapsed}

	// Cover the whole canvas so cells from the previous frame are overwritten.
	c.FillRect(physics.Rect{W: float64(c.Width()), H: float64(c.Height())}, draw.RGB(0, 0, 0))
	s.drawBackground(ctx)

	board := physics.Rect{W: s.arena.Width, H: s.arena.ScoreboardHeight}
	c.FillRect(view.ScaleRect(board), pal.Get(draw.ColorBackground).Lighten(0.08))
	s.drawCenterLine(ctx)

	for _, sp := range s.sprites {
		if err := sp.Draw(ctx); err != nil {
			return err
		}
	}
	for _, g := range s.goals {
		if err := g.Draw(ctx); err != nil {
			return err
		}
	}
	for _, m := range s.manholes.Manholes {
		if err := m.Draw(ctx); err != nil {
			return err
		}
	}

	objs := make([]object.Object, 0, 32)
	for _, p := range s.portals {
		objs = append(objs, p)
	}
	for _, b := range s.bumpers {
		objs = append(objs, b)
	}
	for _, o := range s.obstacles {
		objs = append(objs, o)
	}
	for _, sp := range s.spinners {
		objs = append(objs, sp)
	}
	for _, p := range s.pistons {
		objs = append(objs, p)
	}
	for _, co := range s.coils {
		objs = append(objs, co)
	}
	for _, p := range s.powerUps {
		objs = append(objs, p)
	}
	for _, ca := range s.candles {
		objs = append(objs, ca)
	}
	for _, p := range s.paddles {
		objs = append(objs, p)
	}
	for _, b := range s.balls {
		objs = append(objs, b)
	}
	objs = append(objs, s.effects...)
	for _, g := range s.ghosts.Ghosts() {
		objs = append(objs, g)
	}
	for _, p := range s.pickles {
		objs = append(objs, p)
	}
	for _, obj := range objs {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}

	if s.level.HasLighting {
		s.drawLighting(ctx)
	}
	return nil
}

func (s *Session) drawBackground(ctx object.DrawContext) {
	bounds := ctx.View.ScaleRect(s.arena.Bounds())
	base := ctx.Palette.Get(draw.ColorBackground)
	ctx.Canvas.FillRect(bounds, base)

	switch s.level.Background {
	case level.BackgroundSewer:
		if s.sludge == nil {
			return
		}
		s.sludge.Resize(int(math.Round(bounds.W)), int(math.Round(bounds.H)))
		s.sludge.Draw(ctx.Canvas, bounds)
	case level.BackgroundCasino:
		// Diamond lattice on the felt.
		tint := base.Mix(ctx.Palette.Get(draw.ColorGold), 0.12)
		step := 60.0
		for x := -s.arena.Height; x < s.arena.Width; x += step {
			line := func(x1, y1, x2, y2 float64) {
				ctx.Canvas.DrawLine(ctx.View.ScalePoint(x1, y1), ctx.View.ScalePoint(x2, y2), tint)
			}
			top, bottom := s.arena.Top(), s.arena.Bottom()
			line(x, top, x+s.arena.Height, bottom)
			line(x+s.arena.Height, top, x, bottom)
		}
	case level.BackgroundHaunted:
		// Slow drifting mist bands.
		mist := ctx.Palette.Get(draw.ColorGhost).Alpha(0.05)
		for i := 0; i < 4; i++ {
			y := s.arena.Top() + math.Mod(float64(i)*s.arena.Height/4+ctx.Time*8, s.arena.Height)
			h := math.Min(s.arena.Height/10, s.arena.Bottom()-y)
			ctx.Canvas.FillRect(ctx.View.ScaleRect(physics.Rect{Y: y, W: s.arena.Width, H: h}), mist)
		}
	case level.BackgroundFactory:
		// Hazard stripes along the top and bottom walls.
		stripe := ctx.Palette.Get(draw.ColorGold).Alpha(0.5)
		for x := 0.0; x < s.arena.Width; x += 40 {
			for _, y := range []float64{s.arena.Top(), s.arena.Bottom() - 8} {
				ctx.Canvas.FillRect(ctx.View.ScaleRect(physics.Rect{X: x, Y: y, W: 20, H: 8}), stripe)
			}
		}
	}
}

func (s *Session) drawCenterLine(ctx object.DrawContext) {
	cl := s.level.CenterLine
	if !cl.Enabled || cl.Dash <= 0 {
		return
	}
	col := ctx.Palette.Get(draw.ColorCenterLine)
	x := s.arena.Width/2 - cl.Width/2
	for y := s.arena.Top(); y < s.arena.Bottom(); y += cl.Dash * 2 {
		h := math.Min(cl.Dash, s.arena.Bottom()-y)
		ctx.Canvas.FillRect(ctx.View.ScaleRect(physics.Rect{X: x, Y: y, W: cl.Width, H: h}), col)
	}
}

// drawLighting darkens the playable band outside candle light. The overlay
// opacity scales with how dark the level is; light fades out toward the
// edge of each candle's radius.
func (s *Session) drawLighting(ctx object.DrawContext) {
	darkness := float64(100-s.level.LightingLevel) / 100 * config.MaxDarkness
	if darkness <= 0 {
		return
	}
	view := ctx.View
	if view.Scale <= 0 {
		return
	}
	bounds := view.ScaleRect(s.arena.Bounds())
	x0, y0 := int(math.Floor(bounds.X)), int(math.Floor(bounds.Y))
	x1, y1 := int(math.Ceil(bounds.Right())), int(math.Ceil(bounds.Bottom()))
	shade := draw.RGB(0, 0, 0)
	for py := y0; py < y1; py++ {
		wy := (float64(py) + 0.5 - view.OffsetY) / view.Scale
		for px := x0; px < x1; px++ {
			wx := (float64(px) + 0.5 - view.OffsetX) / view.Scale
			a := darkness * s.shadowAt(wx, wy)
			if a > 0 {
				ctx.Canvas.Set(float64(px), float64(py), shade.Alpha(a))
			}
		}
	}
}

// shadowAt returns 0 in full light and 1 in full dark.
func (s *Session) shadowAt(x, y float64) float64 {
	shadow := 1.0
	for _, c := range s.candles {
		lx, ly := c.LightCenter()
		d := physics.Distance(x, y, lx, ly)
		if d >= c.LightRadius {
			continue
		}
		// Fully lit inside the critical radius, fading out to the edge.
		t := (d - c.CriticalRadius()) / (c.LightRadius - c.CriticalRadius())
		t = physics.Clamp(t, 0, 1)
		shadow = math.Min(shadow, t*t)
	}
	return shadow
}
