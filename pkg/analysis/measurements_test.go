package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/stlmesh/pkg/geometry"
	"github.com/philipparndt/stlmesh/pkg/mesh"
	"github.com/philipparndt/stlmesh/pkg/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxMesh(size geometry.Vertex3D) *mesh.Mesh {
	return mesh.FromStl(shape.Box(geometry.Vertex3D{}, size, "box"), mesh.WithStrategy(mesh.Sequential))
}

func TestAnalyzeBox(t *testing.T) {
	report := Analyze(boxMesh(geometry.NewVertex3D(3, 4, 12)))

	assert.Equal(t, 12, report.Triangles)
	assert.InDelta(t, 2*(12+36+48), report.Area, 1e-3)
	assert.InDelta(t, 144, report.Volume, 1e-3)
	assert.InDelta(t, 144, report.BoxVolume, 1e-3)
	assert.Equal(t, geometry.NewVertex3D(3, 4, 12), report.Dimensions)

	assert.Equal(t, 36, report.EdgeCount)
	assert.Len(t, report.AllEdges, 36)
	assert.InDelta(t, 3, report.MinEdgeLength, 1e-6)
	assert.InDelta(t, math.Sqrt(4*4+12*12), report.MaxEdgeLength, 1e-5)
	assert.InDelta(t, 6, report.MinTriangleArea, 1e-5)
	assert.InDelta(t, 24, report.MaxTriangleArea, 1e-5)
	assert.InDelta(t, report.Area/12, report.AvgTriangleArea, 1e-5)
}

func TestAnalyzeEmpty(t *testing.T) {
	report := Analyze(mesh.New(nil))

	assert.Zero(t, report.Triangles)
	assert.Zero(t, report.EdgeCount)
	assert.Zero(t, report.MinEdgeLength)
	assert.Zero(t, report.MaxTriangleArea)
	assert.True(t, report.VolumeCentroid.IsNaN())
	assert.Empty(t, FindLongestEdges(report, 5))
}

func TestFindEdges(t *testing.T) {
	report := Analyze(boxMesh(geometry.NewVertex3D(3, 4, 12)))

	longest := FindLongestEdges(report, 2)
	require.Len(t, longest, 2)
	assert.InDelta(t, math.Sqrt(4*4+12*12), longest[0].Length, 1e-5)
	assert.GreaterOrEqual(t, longest[0].Length, longest[1].Length)

	shortest := FindShortestEdges(report, 100)
	assert.Len(t, shortest, 36)
	assert.InDelta(t, 3, shortest[0].Length, 1e-6)

	assert.Empty(t, FindShortestEdges(report, -1))

	// Only the 3-4 face diagonals are exactly 5 long
	fives := FindEdgesByLength(report, 4.9, 5.1)
	assert.Len(t, fives, 4)
	for _, e := range fives {
		assert.InDelta(t, 5, e.Start.Distance(e.End), 1e-5)
	}
}

func TestFindNearestVertex(t *testing.T) {
	m := boxMesh(geometry.NewVertex3D(1, 1, 1))

	vertex, distance := FindNearestVertex(m, geometry.NewVertex3D(1.1, 1.2, 0.9))
	assert.Equal(t, geometry.NewVertex3D(1, 1, 1), vertex)
	assert.InDelta(t, math.Sqrt(0.01+0.04+0.01), distance, 1e-6)

	_, distance = FindNearestVertex(mesh.New(nil), geometry.Vertex3D{})
	assert.True(t, math.IsInf(float64(distance), 1))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "(1.000000, -2.500000, 0.000000)", FormatVector(geometry.NewVertex3D(1, -2.5, 0)))
	assert.Equal(t, "1.500000 units", FormatMeasurement(1.5, ""))
	assert.Equal(t, "2.000000 mm", FormatMeasurement(2, "mm"))
	assert.InDelta(t, 5, DistanceBetweenPoints(geometry.Vertex3D{}, geometry.NewVertex3D(3, 4, 0)), 1e-6)
}
