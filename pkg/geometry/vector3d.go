package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vector3D is a point or displacement in the simulation volume.
// It shares its memory layout with r3.Vec and delegates the arithmetic to gonum.
type Vector3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// WorldUp is the vertical axis of the volume.
var WorldUp = Vector3D{X: 0, Y: 1, Z: 0}

// NewVector3D creates a new Vector3D.
func NewVector3D(x, y, z float64) Vector3D {
	return Vector3D{X: x, Y: y, Z: z}
}

func (v Vector3D) r3() r3.Vec { return r3.Vec(v) }

// String implements the fmt.Stringer interface.
func (v Vector3D) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// Add adds two vectors and returns the result.
func (v Vector3D) Add(other Vector3D) Vector3D {
	return Vector3D(r3.Add(v.r3(), other.r3()))
}

// Sub subtracts the other vector from the current vector.
func (v Vector3D) Sub(other Vector3D) Vector3D {
	return Vector3D(r3.Sub(v.r3(), other.r3()))
}

// Mul scales the vector by a scalar value.
func (v Vector3D) Mul(scalar float64) Vector3D {
	return Vector3D(r3.Scale(scalar, v.r3()))
}

// Dot calculates the dot product of two vectors.
func (v Vector3D) Dot(other Vector3D) float64 {
	return r3.Dot(v.r3(), other.r3())
}

// Cross calculates the right-handed cross product v × other.
func (v Vector3D) Cross(other Vector3D) Vector3D {
	return Vector3D(r3.Cross(v.r3(), other.r3()))
}

// LenSqr is the squared magnitude.
func (v Vector3D) LenSqr() float64 {
	return r3.Norm2(v.r3())
}

// Len calculates the magnitude (length) of the vector.
func (v Vector3D) Len() float64 {
	return r3.Norm(v.r3())
}

// Normalize returns a unit vector in the same direction.
// Returns a zero vector if the length is effectively zero (r3.Unit would yield NaN).
func (v Vector3D) Normalize() Vector3D {
	if v.Len() < Epsilon {
		return Vector3D{}
	}
	return Vector3D(r3.Unit(v.r3()))
}

// ClampLen caps the magnitude at max while keeping the direction.
func (v Vector3D) ClampLen(max float64) Vector3D {
	lsq := v.LenSqr()
	if lsq <= max*max {
		return v
	}
	return v.Mul(max / math.Sqrt(lsq))
}

// DistanceTo calculates the Euclidean distance to another vector.
func (v Vector3D) DistanceTo(other Vector3D) float64 {
	return v.Sub(other).Len()
}

// Axis returns component i (0 = X, 1 = Y, 2 = Z).
func (v Vector3D) Axis(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic(fmt.Sprintf("geometry: axis %d out of range", i))
}

// WithAxis returns a copy of v with component i replaced by value.
func (v Vector3D) WithAxis(i int, value float64) Vector3D {
	switch i {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	case 2:
		v.Z = value
	default:
		panic(fmt.Sprintf("geometry: axis %d out of range", i))
	}
	return v
}

// Eq checks if two vectors are approximately equal using the Epsilon constant.
func (v Vector3D) Eq(other Vector3D) bool {
	return math.Abs(v.X-other.X) <= Epsilon &&
		math.Abs(v.Y-other.Y) <= Epsilon &&
		math.Abs(v.Z-other.Z) <= Epsilon
}
