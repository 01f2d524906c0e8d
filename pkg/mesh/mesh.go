// Package mesh computes aggregate properties of a triangle mesh: surface
// area, enclosed volume and the vertex, area and volume centroids.
//
// All five aggregates are computed together in a single reduction the
// first time any of them is read, and cached for the lifetime of the
// Mesh. The triangle slice must not be modified once a Mesh owns it.
//
// Volume and the volume centroid are only meaningful for a closed,
// consistently wound surface. This is not verified.
package mesh

import (
	"sort"
	"sync"

	"github.com/philipparndt/stlmesh/pkg/geometry"
	"github.com/philipparndt/stlmesh/pkg/stl"
	"go.uber.org/zap"
)

// Aggregates is a snapshot of every computed mesh property
type Aggregates struct {
	Triangles int
	Area      float32
	// Volume is the absolute value of SignedVolume
	Volume         float32
	SignedVolume   float32
	VertexCentroid geometry.Vertex3D
	AreaCentroid   geometry.Vertex3D
	VolumeCentroid geometry.Vertex3D
}

// Mesh is an immutable triangle array with memoized aggregates
type Mesh struct {
	triangles []geometry.Triangle3D
	strategy  Strategy

	once sync.Once
	agg  Aggregates
}

// Option configures a Mesh
type Option func(*Mesh)

// WithStrategy selects the reduction strategy. The default is
// Auto(DefaultParallelThreshold).
func WithStrategy(s Strategy) Option {
	return func(m *Mesh) {
		if s != nil {
			m.strategy = s
		}
	}
}

// New creates a mesh that takes ownership of triangles
func New(triangles []geometry.Triangle3D, opts ...Option) *Mesh {
	m := &Mesh{triangles: triangles}
	for _, opt := range opts {
		opt(m)
	}
	if m.strategy == nil {
		m.strategy = Auto(DefaultParallelThreshold)
	}
	return m
}

// FromStl builds a mesh from the facet triangles, dropping attributes
func FromStl(s *stl.Stl, opts ...Option) *Mesh {
	return New(s.Triangles(), opts...)
}

// Triangles returns the underlying triangles. The slice is shared and
// must be treated as read-only.
func (m *Mesh) Triangles() []geometry.Triangle3D {
	return m.triangles
}

// Len returns the number of triangles
func (m *Mesh) Len() int {
	return len(m.triangles)
}

// Strategy returns the reduction strategy in use
func (m *Mesh) Strategy() Strategy {
	return m.strategy
}

// Compute runs the reduction if it has not run yet. Concurrent callers
// block until the single computation finishes.
func (m *Mesh) Compute() {
	m.once.Do(func() {
		Logger().Debug("computing mesh aggregates",
			zap.String("strategy", m.strategy.Name()),
			zap.Int("triangles", len(m.triangles)))
		m.agg = m.strategy.reduce(m.triangles).finalize()
	})
}

// Aggregates returns every computed property
func (m *Mesh) Aggregates() Aggregates {
	m.Compute()
	return m.agg
}

// Area returns the total surface area
func (m *Mesh) Area() float32 {
	return m.Aggregates().Area
}

// Volume returns the enclosed volume
func (m *Mesh) Volume() float32 {
	return m.Aggregates().Volume
}

// VertexCentroid returns the mean of all triangle corners. Shared
// vertices count once per incident triangle. NaN for an empty mesh.
func (m *Mesh) VertexCentroid() geometry.Vertex3D {
	return m.Aggregates().VertexCentroid
}

// AreaCentroid returns the area-weighted mean of triangle centroids.
// NaN when the total area is zero.
func (m *Mesh) AreaCentroid() geometry.Vertex3D {
	return m.Aggregates().AreaCentroid
}

// VolumeCentroid returns the centroid of the enclosed solid.
// NaN when the signed volume is zero.
func (m *Mesh) VolumeCentroid() geometry.Vertex3D {
	return m.Aggregates().VolumeCentroid
}

// BoundingBox calculates the bounding box of all triangles
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for i := range m.triangles {
		bbox.ExtendTriangle(m.triangles[i])
	}
	return bbox
}

// SortedByArea returns triangle indices ordered by ascending area
func SortedByArea(tris []geometry.Triangle3D) []int {
	areas := make([]float32, len(tris))
	indices := make([]int, len(tris))
	for i := range tris {
		areas[i] = tris[i].Area()
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return areas[indices[i]] < areas[indices[j]]
	})
	return indices
}
