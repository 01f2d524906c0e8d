package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestVertexFloatsRoundTrip(t *testing.T) {
	cases := []Vertex3D{
		{},
		NewVertex3D(1, 2, 3),
		NewVertex3D(math.MaxFloat32, math.SmallestNonzeroFloat32, -math.MaxFloat32),
	}

	for _, v := range cases {
		f := v.Floats()
		back, err := VertexFromFloats(f[:])
		if err != nil {
			t.Fatalf("VertexFromFloats failed: %v", err)
		}
		if back != v {
			t.Errorf("Round trip failed: expected %v, got %v", v, back)
		}
	}

	if _, err := VertexFromFloats([]float32{1, 2}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Short buffer failed: expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestTriangleFloatsRoundTrip(t *testing.T) {
	tri := NewTriangle3D(NewVertex3D(0, 1, 2), NewVertex3D(3, 4, 5), NewVertex3D(6, 7, 8))

	f := tri.Floats()
	for i, value := range f {
		if value != float32(i) {
			t.Errorf("Floats[%d] failed: expected %v, got %v", i, i, value)
		}
	}

	back, err := TriangleFromFloats(f[:])
	if err != nil {
		t.Fatalf("TriangleFromFloats failed: %v", err)
	}
	if back != tri {
		t.Errorf("Round trip failed: expected %v, got %v", tri, back)
	}
}

func TestTrianglesAsFloatsAliases(t *testing.T) {
	tris := []Triangle3D{
		NewTriangle3D(NewVertex3D(0, 1, 2), NewVertex3D(3, 4, 5), NewVertex3D(6, 7, 8)),
		NewTriangle3D(NewVertex3D(9, 10, 11), NewVertex3D(12, 13, 14), NewVertex3D(15, 16, 17)),
	}

	flat := TrianglesAsFloats(tris)
	if len(flat) != 18 {
		t.Fatalf("Length failed: expected 18, got %d", len(flat))
	}
	for i, value := range flat {
		if value != float32(i) {
			t.Errorf("flat[%d] failed: expected %v, got %v", i, i, value)
		}
	}

	// Writes through the view must be visible in the source slice
	flat[10] = 100
	if tris[1].A.Y != 100 {
		t.Errorf("Aliasing failed: expected 100, got %v", tris[1].A.Y)
	}

	if TrianglesAsFloats(nil) != nil {
		t.Error("Empty input should produce nil view")
	}
}

func TestFloatsAsTriangles(t *testing.T) {
	flat := make([]float32, 18)
	for i := range flat {
		flat[i] = float32(i)
	}

	tris, err := FloatsAsTriangles(flat)
	if err != nil {
		t.Fatalf("FloatsAsTriangles failed: %v", err)
	}
	if len(tris) != 2 {
		t.Fatalf("Length failed: expected 2, got %d", len(tris))
	}
	if tris[1].C != NewVertex3D(15, 16, 17) {
		t.Errorf("Layout failed: expected (15, 16, 17), got %v", tris[1].C)
	}

	if _, err := FloatsAsTriangles(flat[:10]); err == nil {
		t.Error("Non-multiple of 9 should fail")
	}
}

func TestVerticesAsFloats(t *testing.T) {
	verts := []Vertex3D{NewVertex3D(1, 2, 3), NewVertex3D(4, 5, 6)}
	flat := VerticesAsFloats(verts)

	if len(flat) != 6 || flat[3] != 4 {
		t.Errorf("VerticesAsFloats failed: got %v", flat)
	}
}
