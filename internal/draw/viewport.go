package draw

import (
	"math"

	"github.com/tomz197/ping/internal/physics"
)

// Viewport maps logical arena coordinates to canvas pixels with a uniform
// scale, centering the arena in the window.
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// NewViewport computes the transform for an arena of arenaW x totalH logical
// units (totalH includes the scoreboard band) shown in a windowW x windowH
// pixel window. Degenerate sizes yield the identity transform.
func NewViewport(windowW, windowH, arenaW, totalH float64) Viewport {
	if windowW <= 0 || windowH <= 0 || arenaW <= 0 || totalH <= 0 {
		return Viewport{Scale: 1}
	}
	scale := math.Min(windowW/arenaW, windowH/totalH)
	return Viewport{
		Scale:   scale,
		OffsetX: (windowW - arenaW*scale) / 2,
		OffsetY: (windowH - totalH*scale) / 2,
	}
}

// ScaleRect converts a logical rectangle to canvas pixels.
func (v Viewport) ScaleRect(r physics.Rect) physics.Rect {
	return physics.Rect{
		X: r.X*v.Scale + v.OffsetX,
		Y: r.Y*v.Scale + v.OffsetY,
		W: r.W * v.Scale,
		H: r.H * v.Scale,
	}
}

// UnscaleRect is the inverse of ScaleRect.
func (v Viewport) UnscaleRect(r physics.Rect) physics.Rect {
	if v.Scale == 0 {
		return r
	}
	return physics.Rect{
		X: (r.X - v.OffsetX) / v.Scale,
		Y: (r.Y - v.OffsetY) / v.Scale,
		W: r.W / v.Scale,
		H: r.H / v.Scale,
	}
}

// ScalePoint converts a logical point to canvas pixels.
func (v Viewport) ScalePoint(x, y float64) Point {
	r := v.ScaleRect(physics.Rect{X: x, Y: y})
	return Point{X: r.X, Y: r.Y}
}

// ScaleLen converts a logical length (e.g. a radius) to pixels.
func (v Viewport) ScaleLen(l float64) float64 {
	return l * v.Scale
}

// CellOf returns the 1-based terminal (col, row) covering a logical point.
func (v Viewport) CellOf(x, y float64) (col, row int) {
	p := v.ScalePoint(x, y)
	return int(math.Floor(p.X)) + 1, int(math.Floor(p.Y))/2 + 1
}
