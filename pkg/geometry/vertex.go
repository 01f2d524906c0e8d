package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrIndexOutOfRange is returned by the checked component accessors.
var ErrIndexOutOfRange = errors.New("index out of range")

// Vertex3D represents a 3D point or vector in single precision.
// The layout is three consecutive float32 values (12 bytes, no padding).
type Vertex3D struct {
	X, Y, Z float32
}

var (
	XAxis = Vertex3D{X: 1}
	YAxis = Vertex3D{Y: 1}
	ZAxis = Vertex3D{Z: 1}
)

// NewVertex3D creates a new vertex
func NewVertex3D(x, y, z float32) Vertex3D {
	return Vertex3D{X: x, Y: y, Z: z}
}

// NaNVertex returns a vertex with all components set to NaN.
// It marks centroids that are undefined for the given geometry.
func NaNVertex() Vertex3D {
	nan := float32(math.NaN())
	return Vertex3D{X: nan, Y: nan, Z: nan}
}

// IsNaN reports whether any component is NaN
func (v Vertex3D) IsNaN() bool {
	return v.X != v.X || v.Y != v.Y || v.Z != v.Z
}

// Add returns the sum of two vertices
func (v Vertex3D) Add(other Vertex3D) Vertex3D {
	return Vertex3D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub returns the difference between two vertices
func (v Vertex3D) Sub(other Vertex3D) Vertex3D {
	return Vertex3D{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Mul multiplies the vertex by a scalar
func (v Vertex3D) Mul(scalar float32) Vertex3D {
	return Vertex3D{
		X: v.X * scalar,
		Y: v.Y * scalar,
		Z: v.Z * scalar,
	}
}

// Div divides the vertex by a scalar
func (v Vertex3D) Div(divisor float32) Vertex3D {
	return Vertex3D{
		X: v.X / divisor,
		Y: v.Y / divisor,
		Z: v.Z / divisor,
	}
}

// Dot returns the dot product of two vertices
func (v Vertex3D) Dot(other Vertex3D) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vertices
func (v Vertex3D) Cross(other Vertex3D) Vertex3D {
	return Vertex3D{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// SquaredLength returns the squared magnitude
func (v Vertex3D) SquaredLength() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the magnitude of the vertex
func (v Vertex3D) Length() float32 {
	return float32(math.Sqrt(float64(v.SquaredLength())))
}

// SquaredDistance returns the squared distance between two points
func (v Vertex3D) SquaredDistance(other Vertex3D) float32 {
	return v.Sub(other).SquaredLength()
}

// Distance returns the distance between two points
func (v Vertex3D) Distance(other Vertex3D) float32 {
	return v.Sub(other).Length()
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (v Vertex3D) Normalize() Vertex3D {
	length := v.Length()
	if length == 0 {
		return Vertex3D{}
	}
	return v.Mul(1.0 / length)
}

// AngleTo returns the angle between two vectors in radians
func (v Vertex3D) AngleTo(other Vertex3D) (float32, error) {
	magnitudes := v.Length() * other.Length()
	if magnitudes == 0 {
		return 0, fmt.Errorf("cannot compute angle with zero-length vector")
	}
	cos := float64(v.Dot(other) / magnitudes)
	return float32(math.Acos(math.Max(-1, math.Min(1, cos)))), nil
}

// Min returns a vertex with the minimum components of two vertices
func (v Vertex3D) Min(other Vertex3D) Vertex3D {
	return Vertex3D{
		X: min(v.X, other.X),
		Y: min(v.Y, other.Y),
		Z: min(v.Z, other.Z),
	}
}

// Max returns a vertex with the maximum components of two vertices
func (v Vertex3D) Max(other Vertex3D) Vertex3D {
	return Vertex3D{
		X: max(v.X, other.X),
		Y: max(v.Y, other.Y),
		Z: max(v.Z, other.Z),
	}
}

// At returns the component at index 0 (X), 1 (Y) or 2 (Z)
func (v Vertex3D) At(i int) (float32, error) {
	switch i {
	case 0:
		return v.X, nil
	case 1:
		return v.Y, nil
	case 2:
		return v.Z, nil
	}
	return 0, fmt.Errorf("vertex component %d: %w", i, ErrIndexOutOfRange)
}

// String formats the vertex for logs and test output
func (v Vertex3D) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
