// Package analysis builds human-oriented reports on top of the mesh
// aggregates: bounding box, dimensions, edge and triangle statistics and
// a few lookups used by the CLI.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/stlmesh/pkg/geometry"
	"github.com/philipparndt/stlmesh/pkg/mesh"
)

// EdgeInfo contains information about an edge in the model
type EdgeInfo struct {
	Start      geometry.Vertex3D
	End        geometry.Vertex3D
	Length     float32
	TriangleID int
}

// Report contains various measurements of a mesh
type Report struct {
	mesh.Aggregates
	BoundingBox geometry.BoundingBox
	Dimensions  geometry.Vertex3D
	// BoxVolume is the volume of the bounding box, not of the solid
	BoxVolume float32

	EdgeCount     int
	MinEdgeLength float32
	MaxEdgeLength float32
	AvgEdgeLength float32
	AllEdges      []EdgeInfo

	MinTriangleArea float32
	MaxTriangleArea float32
	AvgTriangleArea float32
}

// Analyze performs comprehensive analysis on a mesh. Edges are listed per
// triangle, so an edge shared by two triangles appears twice.
func Analyze(m *mesh.Mesh) *Report {
	triangles := m.Triangles()
	report := &Report{
		Aggregates:  m.Aggregates(),
		BoundingBox: m.BoundingBox(),
		AllEdges:    make([]EdgeInfo, 0, 3*len(triangles)),
	}
	report.Dimensions = report.BoundingBox.Size()
	report.BoxVolume = report.BoundingBox.Volume()

	if len(triangles) == 0 {
		return report
	}

	minLength := float32(math.MaxFloat32)
	minArea := float32(math.MaxFloat32)
	var maxLength, maxArea float32
	var totalLength float64

	for i, triangle := range triangles {
		corners := triangle.Vertices()
		for j, length := range triangle.EdgeLengths() {
			report.AllEdges = append(report.AllEdges, EdgeInfo{
				Start:      corners[j],
				End:        corners[(j+1)%3],
				Length:     length,
				TriangleID: i,
			})

			totalLength += float64(length)
			minLength = min(minLength, length)
			maxLength = max(maxLength, length)
		}

		area := triangle.Area()
		minArea = min(minArea, area)
		maxArea = max(maxArea, area)
	}

	report.EdgeCount = len(report.AllEdges)
	report.MinEdgeLength = minLength
	report.MaxEdgeLength = maxLength
	report.AvgEdgeLength = float32(totalLength / float64(report.EdgeCount))
	report.MinTriangleArea = minArea
	report.MaxTriangleArea = maxArea
	report.AvgTriangleArea = report.Area / float32(len(triangles))

	return report
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(report *Report, minLength, maxLength float32) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range report.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges in the model
func FindLongestEdges(report *Report, count int) []EdgeInfo {
	return sortedEdges(report, count, func(a, b float32) bool { return a > b })
}

// FindShortestEdges returns the N shortest edges in the model
func FindShortestEdges(report *Report, count int) []EdgeInfo {
	return sortedEdges(report, count, func(a, b float32) bool { return a < b })
}

func sortedEdges(report *Report, count int, less func(a, b float32) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(report.AllEdges))
	copy(edges, report.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i].Length, edges[j].Length)
	})

	count = max(0, min(count, len(edges)))
	return edges[:count]
}

// DistanceBetweenPoints calculates the distance between two arbitrary points
func DistanceBetweenPoints(p1, p2 geometry.Vertex3D) float32 {
	return p1.Distance(p2)
}

// FindNearestVertex finds the vertex in the mesh nearest to a given point.
// For an empty mesh the distance is +Inf.
func FindNearestVertex(m *mesh.Mesh, point geometry.Vertex3D) (geometry.Vertex3D, float32) {
	var nearestVertex geometry.Vertex3D
	minDistance := float32(math.Inf(1))

	for _, triangle := range m.Triangles() {
		for _, vertex := range triangle.Vertices() {
			if distance := point.Distance(vertex); distance < minDistance {
				minDistance = distance
				nearestVertex = vertex
			}
		}
	}

	return nearestVertex, minDistance
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vertex3D) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
