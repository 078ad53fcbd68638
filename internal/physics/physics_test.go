package physics

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestIntersects(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlap", NewRect(5, 5, 10, 10), true},
		{"inside", NewRect(2, 2, 2, 2), true},
		{"touching edge", NewRect(10, 0, 5, 5), false},
		{"apart", NewRect(20, 20, 5, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveRectCollision(t *testing.T) {
	tests := []struct {
		name     string
		mover    Rect
		dx, dy   float64
		wantSide Side
	}{
		{"from left", NewRect(-2, 10, 5, 5), 1, 0, SideLeft},
		{"from right", NewRect(18, 10, 5, 5), -1, 0, SideRight},
		{"from top", NewRect(10, -3, 5, 5), 0, 1, SideTop},
		{"from bottom", NewRect(10, 18, 5, 5), 0, -1, SideBottom},
	}
	obstacle := NewRect(0, 0, 20, 20)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, ndx, ndy, side, ok := ResolveRectCollision(tt.mover, obstacle, tt.dx, tt.dy)
			if !ok || side != tt.wantSide {
				t.Fatalf("side = %v ok = %v, want %v", side, ok, tt.wantSide)
			}
			if out.Intersects(obstacle) {
				t.Errorf("mover still overlaps: %+v", out)
			}
			// Reflected velocity points away from the obstacle.
			if ndx*tt.dx > 0 || ndy*tt.dy > 0 {
				t.Errorf("velocity (%v, %v) not reflected", ndx, ndy)
			}
		})
	}

	if _, _, _, _, ok := ResolveRectCollision(NewRect(50, 50, 1, 1), obstacle, 1, 0); ok {
		t.Error("resolved a non-overlapping pair")
	}
}

func TestClampInside(t *testing.T) {
	bounds := NewRect(0, 60, 100, 100)
	r := NewRect(95, 10, 10, 10).ClampInside(bounds)
	if r.X != 90 || r.Y != 60 {
		t.Errorf("clamped = %+v", r)
	}
}

func TestCircleIntersectsRect(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	if !CircleIntersectsRect(12, 5, 3, r) {
		t.Error("circle touching the right edge should intersect")
	}
	if CircleIntersectsRect(14, 14, 3, r) {
		t.Error("circle beyond the corner should not intersect")
	}
}

func TestVectors(t *testing.T) {
	x, y := Normalize(3, 4)
	if !near(x, 0.6) || !near(y, 0.8) {
		t.Errorf("Normalize = (%v, %v)", x, y)
	}
	if x, y := Normalize(0, 0); x != 0 || y != 0 {
		t.Errorf("Normalize(0,0) = (%v, %v)", x, y)
	}

	x, y = Rotate(1, 0, math.Pi/2)
	if !near(x, 0) || !near(y, 1) {
		t.Errorf("Rotate = (%v, %v)", x, y)
	}
	if Cross(1, 0, 0, 1) != 1 || Dot(1, 2, 3, 4) != 11 {
		t.Error("cross/dot")
	}
	if got := NormalizeDegrees(-90); got != 270 {
		t.Errorf("NormalizeDegrees(-90) = %v", got)
	}
	if !near(Degrees(Radians(37)), 37) {
		t.Error("degree round trip")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Error("Clamp")
	}
}
