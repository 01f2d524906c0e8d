package mesh

import (
	"math"

	"github.com/philipparndt/stlmesh/pkg/geometry"
)

// vec3 is a double precision working vector. Sums over millions of
// float32 triangles are carried in float64 and rounded once at the end.
type vec3 [3]float64

func toVec3(v geometry.Vertex3D) vec3 {
	return vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}

func (a vec3) add(b vec3) vec3 { return vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func (a vec3) sub(b vec3) vec3 { return vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func (a vec3) mul(s float64) vec3 {
	return vec3{a[0] * s, a[1] * s, a[2] * s}
}
func (a vec3) dot(b vec3) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }
func (a vec3) cross(b vec3) vec3 {
	return vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
func (a vec3) length() float64 { return math.Sqrt(a.dot(a)) }

func (a vec3) vertex() geometry.Vertex3D {
	return geometry.Vertex3D{X: float32(a[0]), Y: float32(a[1]), Z: float32(a[2])}
}

// accumulator holds the running sums for every aggregate. Partial
// accumulators from disjoint ranges merge by plain addition.
type accumulator struct {
	count int
	// sum of A+B+C
	corners vec3
	// sum of (A+B+C) * area
	areaWeighted vec3
	// sum of (A+B+C) * A·(B×C)
	volumeWeighted vec3
	area           float64
	// sum of A·(B×C), six times the signed volume
	volume6 float64
}

func (acc *accumulator) add(t *geometry.Triangle3D) {
	a, b, c := toVec3(t.A), toVec3(t.B), toVec3(t.C)
	corners := a.add(b).add(c)
	area := b.sub(a).cross(c.sub(a)).length() / 2
	volume6 := a.dot(b.cross(c))

	acc.count++
	acc.corners = acc.corners.add(corners)
	acc.areaWeighted = acc.areaWeighted.add(corners.mul(area))
	acc.volumeWeighted = acc.volumeWeighted.add(corners.mul(volume6))
	acc.area += area
	acc.volume6 += volume6
}

func (acc *accumulator) addAll(tris []geometry.Triangle3D) {
	for i := range tris {
		acc.add(&tris[i])
	}
}

func (acc *accumulator) merge(o accumulator) {
	acc.count += o.count
	acc.corners = acc.corners.add(o.corners)
	acc.areaWeighted = acc.areaWeighted.add(o.areaWeighted)
	acc.volumeWeighted = acc.volumeWeighted.add(o.volumeWeighted)
	acc.area += o.area
	acc.volume6 += o.volume6
}

// mergePairwise reduces partial results as a balanced tree
func mergePairwise(parts []accumulator) accumulator {
	if len(parts) == 0 {
		return accumulator{}
	}
	for len(parts) > 1 {
		next := make([]accumulator, 0, (len(parts)+1)/2)
		for i := 0; i < len(parts); i += 2 {
			acc := parts[i]
			if i+1 < len(parts) {
				acc.merge(parts[i+1])
			}
			next = append(next, acc)
		}
		parts = next
	}
	return parts[0]
}

// finalize applies the normalizing divisions exactly once. A centroid
// whose weight total is zero is NaN.
func (acc accumulator) finalize() Aggregates {
	agg := Aggregates{
		Triangles:      acc.count,
		Area:           float32(acc.area),
		SignedVolume:   float32(acc.volume6 / 6),
		Volume:         float32(math.Abs(acc.volume6 / 6)),
		VertexCentroid: geometry.NaNVertex(),
		AreaCentroid:   geometry.NaNVertex(),
		VolumeCentroid: geometry.NaNVertex(),
	}
	if acc.count > 0 {
		agg.VertexCentroid = acc.corners.mul(1 / (3 * float64(acc.count))).vertex()
	}
	if acc.area != 0 {
		agg.AreaCentroid = acc.areaWeighted.mul(1 / (3 * acc.area)).vertex()
	}
	if acc.volume6 != 0 {
		agg.VolumeCentroid = acc.volumeWeighted.mul(1 / (4 * acc.volume6)).vertex()
	}
	return agg
}
