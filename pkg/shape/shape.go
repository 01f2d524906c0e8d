// Package shape builds STL documents for primitive solids.
//
// Box produces an exact 12-facet cuboid. Sphere and Cylinder are signed
// distance functions from sdfx and are tessellated with marching cubes, so
// their area and volume approach the analytic values as cells grows.
package shape

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/philipparndt/stlmesh/pkg/geometry"
	"github.com/philipparndt/stlmesh/pkg/stl"
)

// DefaultCells controls marching cubes resolution along the longest axis
const DefaultCells = 100

// unitCube lists the 12 outward-wound triangles of the unit cube
var unitCube = [12][3][3]float32{
	{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}}, {{0, 0, 0}, {1, 1, 0}, {1, 0, 0}}, // -Z
	{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}}, {{0, 0, 1}, {1, 1, 1}, {0, 1, 1}}, // +Z
	{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}}, {{0, 0, 0}, {1, 0, 1}, {0, 0, 1}}, // -Y
	{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}}, {{0, 1, 0}, {1, 1, 1}, {1, 1, 0}}, // +Y
	{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}}, {{0, 0, 0}, {0, 1, 1}, {0, 1, 0}}, // -X
	{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}}, {{1, 0, 0}, {1, 1, 1}, {1, 0, 1}}, // +X
}

// Box returns an axis-aligned cuboid with its minimum corner at origin
func Box(origin, size geometry.Vertex3D, name string) *stl.Stl {
	s := stl.New(name, "box")
	for _, tri := range unitCube {
		var corners [3]geometry.Vertex3D
		for i, c := range tri {
			corners[i] = geometry.Vertex3D{
				X: origin.X + c[0]*size.X,
				Y: origin.Y + c[1]*size.Y,
				Z: origin.Z + c[2]*size.Z,
			}
		}
		s.AddTriangle(geometry.NewTriangle3D(corners[0], corners[1], corners[2]))
	}
	return s
}

// Sphere returns a sphere of the given radius centered at the origin
func Sphere(radius float64) (sdf.SDF3, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("sphere: %w", err)
	}
	return s, nil
}

// Cylinder returns a Z-aligned cylinder centered at the origin
func Cylinder(height, radius float64) (sdf.SDF3, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("cylinder: %w", err)
	}
	return s, nil
}

// Tessellate converts a solid into an STL document using marching cubes
// with the given number of cells along the longest bounding box axis.
func Tessellate(solid sdf.SDF3, cells int, name string) *stl.Stl {
	if cells <= 0 {
		cells = DefaultCells
	}
	triangles := render.ToTriangles(solid, render.NewMarchingCubesUniform(cells))

	s := stl.New(name, fmt.Sprintf("tessellated %d cells", cells))
	s.Facets = make([]stl.Facet, 0, len(triangles))
	for _, tri := range triangles {
		var corners [3]geometry.Vertex3D
		for j := range corners {
			corners[j] = vertex(tri[j])
		}
		s.AddTriangle(geometry.NewTriangle3D(corners[0], corners[1], corners[2]))
	}
	return s
}

func vertex(v v3.Vec) geometry.Vertex3D {
	return geometry.NewVertex3D(float32(v.X), float32(v.Y), float32(v.Z))
}
