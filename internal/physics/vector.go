package physics

import "math"

// Normalize returns the unit vector of (x, y). A zero vector stays zero.
func Normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}

// Rotate rotates (x, y) by angle radians (positive is clockwise on screen,
// where y grows downward).
func Rotate(x, y, angle float64) (float64, float64) {
	s, c := math.Sincos(angle)
	return x*c - y*s, x*s + y*c
}

// Cross returns the z component of the 2D cross product a × b.
func Cross(ax, ay, bx, by float64) float64 {
	return ax*by - ay*bx
}

// Dot returns the dot product of two vectors.
func Dot(ax, ay, bx, by float64) float64 {
	return ax*bx + ay*by
}

// FromAngle returns the unit vector for an angle in radians.
func FromAngle(angle float64) (float64, float64) {
	s, c := math.Sincos(angle)
	return c, s
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeDegrees wraps an angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
