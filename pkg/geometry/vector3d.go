package geometry

import (
	"fmt"
	"math"
)

// Epsilon Precision constant used for approximate float64 comparisons
// and to detect vectors too short to be normalized.
const (
	Epsilon = 1e-9
)

// Vector3D represents a point or a direction in the simulation volume.
// Fields are public because they are fundamental data, not internal state,
// so literals like Vector3D{X: 1, Y: 2, Z: 3} stay readable.
type Vector3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NewVector3D creates a new Vector3D.
func NewVector3D(x, y, z float64) Vector3D {
	return Vector3D{X: x, Y: y, Z: z}
}

// String implements the fmt.Stringer interface.
func (v Vector3D) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// Value receivers returning new values: vectors are small and immutable.
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vector3D) Add(other Vector3D) Vector3D {
	return Vector3D{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub subtracts the other vector from the current vector.
func (v Vector3D) Sub(other Vector3D) Vector3D {
	return Vector3D{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Mul scales the vector by a scalar value.
func (v Vector3D) Mul(scalar float64) Vector3D {
	return Vector3D{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Div scales the vector by 1/scalar.
// A zero scalar returns the zero vector and false instead of Inf coordinates,
// so callers can never leak Inf into positions.
func (v Vector3D) Div(scalar float64) (Vector3D, bool) {
	if scalar == 0 {
		return Vector3D{}, false
	}
	return Vector3D{v.X / scalar, v.Y / scalar, v.Z / scalar}, true
}

// Dot calculates the dot product of two vectors.
func (v Vector3D) Dot(other Vector3D) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// ---------------------------------------------------------------------
// Magnitude and Normalization
// ---------------------------------------------------------------------

// LenSqr calculates the squared magnitude of the vector.
// Cheaper than Len() because it avoids the square root.
func (v Vector3D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Len calculates the magnitude (length) of the vector.
func (v Vector3D) Len() float64 {
	return math.Sqrt(v.LenSqr())
}

// Normalize returns a unit vector in the same direction.
// Returns a zero vector if the length is effectively zero.
func (v Vector3D) Normalize() Vector3D {
	l := v.Len()
	if l < Epsilon {
		return Vector3D{}
	}
	return v.Mul(1 / l)
}

// DistanceSquaredTo calculates the squared Euclidean distance to another vector.
func (v Vector3D) DistanceSquaredTo(other Vector3D) float64 {
	return v.Sub(other).LenSqr()
}

// DistanceTo calculates the Euclidean distance to another vector.
func (v Vector3D) DistanceTo(other Vector3D) float64 {
	return v.Sub(other).Len()
}

// XY drops the depth component, projecting the point onto the screen plane.
func (v Vector3D) XY() Vector2D {
	return Vector2D{X: v.X, Y: v.Y}
}

// ---------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------

// IsFinite reports whether no component is NaN or Inf.
func (v Vector3D) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// Eq checks if two vectors are approximately equal using the Epsilon constant.
func (v Vector3D) Eq(other Vector3D) bool {
	return math.Abs(v.X-other.X) <= Epsilon &&
		math.Abs(v.Y-other.Y) <= Epsilon &&
		math.Abs(v.Z-other.Z) <= Epsilon
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
