package physics

import "math"

// Rect is an axis-aligned rectangle in logical arena coordinates.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectFromCenter creates a rectangle of the given size centered on (cx, cy).
func RectFromCenter(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the center point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Intersects reports whether two rectangles overlap (touching edges do not count).
func (r Rect) Intersects(o Rect) bool {
	if r.X >= o.Right() || o.X >= r.Right() {
		return false
	}
	if r.Y >= o.Bottom() || o.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inflate grows the rectangle by margin on every side.
func (r Rect) Inflate(margin float64) Rect {
	return Rect{X: r.X - margin, Y: r.Y - margin, W: r.W + 2*margin, H: r.H + 2*margin}
}

// Moved returns the rectangle translated so its top-left is at (x, y).
func (r Rect) Moved(x, y float64) Rect {
	r.X, r.Y = x, y
	return r
}

// ClampInside moves r so it lies within bounds. If r is larger than bounds
// on an axis it is aligned to the bounds' top/left edge on that axis.
func (r Rect) ClampInside(bounds Rect) Rect {
	if r.Right() > bounds.Right() {
		r.X = bounds.Right() - r.W
	}
	if r.X < bounds.X {
		r.X = bounds.X
	}
	if r.Bottom() > bounds.Bottom() {
		r.Y = bounds.Bottom() - r.H
	}
	if r.Y < bounds.Y {
		r.Y = bounds.Y
	}
	return r
}

// Side names one edge of a rectangle.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Penetration returns the edge of obstacle that mover penetrates the least,
// together with the penetration depth. SideLeft means mover entered through
// the obstacle's left edge. Returns SideNone when the rectangles do not overlap.
func Penetration(mover, obstacle Rect) (Side, float64) {
	if !mover.Intersects(obstacle) {
		return SideNone, 0
	}
	best := SideLeft
	depth := mover.Right() - obstacle.X

	if d := obstacle.Right() - mover.X; d < depth {
		best, depth = SideRight, d
	}
	if d := mover.Bottom() - obstacle.Y; d < depth {
		best, depth = SideTop, d
	}
	if d := obstacle.Bottom() - mover.Y; d < depth {
		best, depth = SideBottom, d
	}
	return best, depth
}

// PushOut moves mover so it sits just outside obstacle on the given side.
func PushOut(mover Rect, obstacle Rect, side Side) Rect {
	switch side {
	case SideLeft:
		mover.X = obstacle.X - mover.W
	case SideRight:
		mover.X = obstacle.Right()
	case SideTop:
		mover.Y = obstacle.Y - mover.H
	case SideBottom:
		mover.Y = obstacle.Bottom()
	}
	return mover
}

// ReflectAway flips the direction component matching side so that it points
// away from the obstacle. Horizontal sides affect dx, vertical sides dy.
func ReflectAway(dx, dy float64, side Side) (float64, float64) {
	switch side {
	case SideLeft:
		dx = -math.Abs(dx)
	case SideRight:
		dx = math.Abs(dx)
	case SideTop:
		dy = -math.Abs(dy)
	case SideBottom:
		dy = math.Abs(dy)
	}
	return dx, dy
}

// ResolveRectCollision resolves a moving rectangle against a solid one:
// it finds the axis of minimum penetration, reflects the matching direction
// component and pushes the mover outside. ok is false when there was no overlap.
func ResolveRectCollision(mover, obstacle Rect, dx, dy float64) (out Rect, ndx, ndy float64, side Side, ok bool) {
	side, _ = Penetration(mover, obstacle)
	if side == SideNone {
		return mover, dx, dy, SideNone, false
	}
	ndx, ndy = ReflectAway(dx, dy, side)
	return PushOut(mover, obstacle, side), ndx, ndy, side, true
}

// CircleIntersectsRect checks whether a circle overlaps a rectangle.
func CircleIntersectsRect(cx, cy, radius float64, r Rect) bool {
	closestX := Clamp(cx, r.X, r.Right())
	closestY := Clamp(cy, r.Y, r.Bottom())
	return DistanceSquared(cx, cy, closestX, closestY) < radius*radius
}
