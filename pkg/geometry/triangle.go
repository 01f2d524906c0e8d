package geometry

import "fmt"

// Triangle3D represents a triangular face in 3D space.
// The winding A->B->C defines the outward direction (right-hand rule).
// The layout is three consecutive vertices (36 bytes, no padding).
type Triangle3D struct {
	A, B, C Vertex3D
}

// NewTriangle3D creates a new triangle
func NewTriangle3D(a, b, c Vertex3D) Triangle3D {
	return Triangle3D{A: a, B: b, C: c}
}

// crossEdges returns (B-A) x (C-A)
func (t Triangle3D) crossEdges() Vertex3D {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// Normal computes the unit normal from the vertex winding.
// Degenerate triangles yield the zero vector.
func (t Triangle3D) Normal() Vertex3D {
	return t.crossEdges().Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle3D) Area() float32 {
	return t.crossEdges().Length() / 2
}

// Centroid returns the arithmetic mean of the three corners
func (t Triangle3D) Centroid() Vertex3D {
	return t.A.Add(t.B).Add(t.C).Div(3)
}

// EdgeLengths returns the lengths of AB, BC and CA
func (t Triangle3D) EdgeLengths() [3]float32 {
	return [3]float32{
		t.A.Distance(t.B),
		t.B.Distance(t.C),
		t.C.Distance(t.A),
	}
}

// Circumference returns the total length of all edges
func (t Triangle3D) Circumference() float32 {
	lengths := t.EdgeLengths()
	return lengths[0] + lengths[1] + lengths[2]
}

// Perimeter is an alias for Circumference
func (t Triangle3D) Perimeter() float32 {
	return t.Circumference()
}

// Vertices returns the corners in winding order
func (t Triangle3D) Vertices() [3]Vertex3D {
	return [3]Vertex3D{t.A, t.B, t.C}
}

// Flip returns the triangle with reversed winding
func (t Triangle3D) Flip() Triangle3D {
	return Triangle3D{A: t.A, B: t.C, C: t.B}
}

// At returns the flat float at index 0..8 (A.X, A.Y, A.Z, B.X, ...)
func (t Triangle3D) At(i int) (float32, error) {
	if i < 0 || i > 8 {
		return 0, fmt.Errorf("triangle component %d: %w", i, ErrIndexOutOfRange)
	}
	return t.Vertices()[i/3].At(i % 3)
}
