package peer

import (
	"github.com/philipparndt/stlmesh/pkg/geometry"
	"github.com/philipparndt/stlmesh/pkg/mesh"
	"github.com/philipparndt/stlmesh/pkg/stl"
)

// Point is a JSON friendly vertex. Undefined centroids encode as null.
type Point [3]float32

func point(v geometry.Vertex3D) *Point {
	if v.IsNaN() {
		return nil
	}
	return &Point{v.X, v.Y, v.Z}
}

// Vertex converts p back into a vertex. A nil point yields a NaN vertex.
func (p *Point) Vertex() geometry.Vertex3D {
	if p == nil {
		return geometry.NaNVertex()
	}
	return geometry.NewVertex3D(p[0], p[1], p[2])
}

// Result is the reply sent for every binary STL message
type Result struct {
	Name           string  `json:"name,omitempty"`
	Header         string  `json:"header,omitempty"`
	Facets         int     `json:"facets"`
	Area           float32 `json:"area"`
	Volume         float32 `json:"volume"`
	VertexCentroid *Point  `json:"vertexCentroid"`
	AreaCentroid   *Point  `json:"areaCentroid"`
	VolumeCentroid *Point  `json:"volumeCentroid"`
	Error          string  `json:"error,omitempty"`
}

func newResult(s *stl.Stl, agg mesh.Aggregates) *Result {
	return &Result{
		Name:           s.Name,
		Header:         s.Header,
		Facets:         s.Len(),
		Area:           agg.Area,
		Volume:         agg.Volume,
		VertexCentroid: point(agg.VertexCentroid),
		AreaCentroid:   point(agg.AreaCentroid),
		VolumeCentroid: point(agg.VolumeCentroid),
	}
}
