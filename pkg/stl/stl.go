// Package stl reads and writes STL documents in both the binary and the
// ASCII wire format.
//
// Decoding sniffs the first five bytes of the stream: a case-insensitive
// "solid" selects the ASCII grammar, anything else is treated as binary.
// A binary file whose header happens to begin with "solid" is therefore
// misread as ASCII. This is an ambiguity of the format itself; Encode
// escapes such headers so files written here always detect correctly.
//
// Stored facet normals are never trusted. They are discarded on read and
// recomputed from the vertex winding on write.
package stl

import (
	"github.com/philipparndt/stlmesh/pkg/geometry"
)

// Facet is one STL record: a triangle plus the opaque 16-bit attribute
// field of the binary format.
type Facet struct {
	Triangle  geometry.Triangle3D
	Attribute uint16
}

// Stl represents a complete STL document
type Stl struct {
	// Name is the solid name. Empty means no name.
	Name   string
	Header string
	Facets []Facet
}

// New creates an empty STL document
func New(name, header string) *Stl {
	return &Stl{
		Name:   name,
		Header: header,
		Facets: make([]Facet, 0),
	}
}

// AddFacet appends a facet
func (s *Stl) AddFacet(facet Facet) {
	s.Facets = append(s.Facets, facet)
}

// AddTriangle appends a triangle with a zero attribute
func (s *Stl) AddTriangle(triangle geometry.Triangle3D) {
	s.Facets = append(s.Facets, Facet{Triangle: triangle})
}

// Len returns the number of facets
func (s *Stl) Len() int {
	return len(s.Facets)
}

// Triangles copies the facet triangles into a new slice, dropping attributes
func (s *Stl) Triangles() []geometry.Triangle3D {
	triangles := make([]geometry.Triangle3D, len(s.Facets))
	for i := range s.Facets {
		triangles[i] = s.Facets[i].Triangle
	}
	return triangles
}

// BoundingBox calculates the bounding box of all facets
func (s *Stl) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for i := range s.Facets {
		bbox.ExtendTriangle(s.Facets[i].Triangle)
	}
	return bbox
}
