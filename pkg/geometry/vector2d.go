package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used by the approximate comparisons of this package.
const (
	Epsilon = 1e-9
)

// Vector2D is a point or displacement on the screen plane.
// Screen coordinates grow to the right (X) and downwards (Y).
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewVector creates a new Vector2D.
func NewVector(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// String implements the fmt.Stringer interface.
func (v Vector2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// Value receivers, every operation returns a new vector.
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{v.X + other.X, v.Y + other.Y}
}

// Sub subtracts the other vector from the current vector.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{v.X - other.X, v.Y - other.Y}
}

// Mul scales the vector by a scalar value.
func (v Vector2D) Mul(scalar float64) Vector2D {
	return Vector2D{v.X * scalar, v.Y * scalar}
}

// Dot calculates the dot product of two vectors.
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// ---------------------------------------------------------------------
// Magnitude
// ---------------------------------------------------------------------

// LenSqr is the squared magnitude, use it for comparisons.
func (v Vector2D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len calculates the magnitude (length) of the vector.
func (v Vector2D) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns a unit vector in the same direction.
// Returns a zero vector if the length is effectively zero.
func (v Vector2D) Normalize() Vector2D {
	l := v.Len()
	if l < Epsilon {
		return Vector2D{0, 0}
	}
	return v.Mul(1 / l)
}

// ClampLen caps the magnitude at max while keeping the direction.
// Shorter vectors are returned unchanged.
func (v Vector2D) ClampLen(max float64) Vector2D {
	lsq := v.LenSqr()
	if lsq <= max*max {
		return v
	}
	return v.Mul(max / math.Sqrt(lsq))
}

// DistanceTo calculates the Euclidean distance to another vector.
func (v Vector2D) DistanceTo(other Vector2D) float64 {
	return v.Sub(other).Len()
}

// ---------------------------------------------------------------------
// Rotation
// ---------------------------------------------------------------------

// Heading returns the angle of v measured with the Y axis pointing up,
// which is what a viewer sees on a screen whose Y axis points down.
func (v Vector2D) Heading() float64 {
	return -math.Atan2(v.Y, v.X)
}

// RotateScreen turns v around center by angle radians, counter-clockwise as seen
// on screen (Y pointing down):
//
//	x' = cx + dx*cos(a) + dy*sin(a)
//	y' = cy - dx*sin(a) + dy*cos(a)
func (v Vector2D) RotateScreen(angle float64, center Vector2D) Vector2D {
	sin, cos := math.Sincos(angle)
	d := v.Sub(center)
	return Vector2D{
		X: center.X + d.X*cos + d.Y*sin,
		Y: center.Y - d.X*sin + d.Y*cos,
	}
}

// Centroid returns the mean of the given points, or the zero vector when none are given.
func Centroid(points ...Vector2D) Vector2D {
	if len(points) == 0 {
		return Vector2D{}
	}
	var sum Vector2D
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(points)))
}

// ---------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------

// Eq checks if two vectors are approximately equal using the Epsilon constant.
func (v Vector2D) Eq(other Vector2D) bool {
	return math.Abs(v.X-other.X) <= Epsilon && math.Abs(v.Y-other.Y) <= Epsilon
}
