package geometry

import (
	"fmt"
	"math"
)

// Vector2D is a point on the screen plane, produced by projecting a Vector3D.
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// String implements the fmt.Stringer interface.
func (v Vector2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// Eq checks if two points are approximately equal using the Epsilon constant.
func (v Vector2D) Eq(other Vector2D) bool {
	return math.Abs(v.X-other.X) <= Epsilon && math.Abs(v.Y-other.Y) <= Epsilon
}
