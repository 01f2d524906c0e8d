package geometry

import (
	"fmt"
	"unsafe"
)

// Both types must stay tightly packed float32 sequences so the slice views
// below can alias them. These fail to compile if padding is ever introduced.
var (
	_ [unsafe.Sizeof(Vertex3D{}) - 12]struct{}
	_ [12 - unsafe.Sizeof(Vertex3D{})]struct{}
	_ [unsafe.Sizeof(Triangle3D{}) - 36]struct{}
	_ [36 - unsafe.Sizeof(Triangle3D{})]struct{}
)

// Floats returns the components as a 3-element array
func (v Vertex3D) Floats() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// VertexFromFloats builds a vertex from the first three values of f
func VertexFromFloats(f []float32) (Vertex3D, error) {
	if len(f) < 3 {
		return Vertex3D{}, fmt.Errorf("need 3 floats for a vertex, got %d: %w", len(f), ErrIndexOutOfRange)
	}
	return Vertex3D{X: f[0], Y: f[1], Z: f[2]}, nil
}

// Floats returns the corners as a 9-element array in A, B, C order
func (t Triangle3D) Floats() [9]float32 {
	return [9]float32{
		t.A.X, t.A.Y, t.A.Z,
		t.B.X, t.B.Y, t.B.Z,
		t.C.X, t.C.Y, t.C.Z,
	}
}

// TriangleFromFloats builds a triangle from the first nine values of f
func TriangleFromFloats(f []float32) (Triangle3D, error) {
	if len(f) < 9 {
		return Triangle3D{}, fmt.Errorf("need 9 floats for a triangle, got %d: %w", len(f), ErrIndexOutOfRange)
	}
	return Triangle3D{
		A: Vertex3D{X: f[0], Y: f[1], Z: f[2]},
		B: Vertex3D{X: f[3], Y: f[4], Z: f[5]},
		C: Vertex3D{X: f[6], Y: f[7], Z: f[8]},
	}, nil
}

// TrianglesAsFloats reinterprets the triangle slice as a flat float32 slice
// without copying. Writes through either slice are visible in the other.
func TrianglesAsFloats(tris []Triangle3D) []float32 {
	if len(tris) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&tris[0])), len(tris)*9)
}

// FloatsAsTriangles reinterprets a flat float32 slice as triangles without
// copying. The length must be a multiple of 9.
func FloatsAsTriangles(f []float32) ([]Triangle3D, error) {
	if len(f)%9 != 0 {
		return nil, fmt.Errorf("float buffer length %d is not a multiple of 9", len(f))
	}
	if len(f) == 0 {
		return nil, nil
	}
	return unsafe.Slice((*Triangle3D)(unsafe.Pointer(&f[0])), len(f)/9), nil
}

// VerticesAsFloats reinterprets the vertex slice as a flat float32 slice
// without copying.
func VerticesAsFloats(verts []Vertex3D) []float32 {
	if len(verts) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&verts[0])), len(verts)*3)
}
