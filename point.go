package geocore

import "math"

// Point is a pair of floating-point image coordinates. It carries no
// identity beyond its coordinates.
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// BinaryImage is the read-only view the detectors operate on. Callers must
// clamp coordinates themselves: Get is undefined for out-of-range x, y.
type BinaryImage interface {
	Get(x, y int) bool
	Width() int
	Height() int
}
