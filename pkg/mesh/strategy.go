package mesh

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/philipparndt/stlmesh/pkg/geometry"
	"go.uber.org/zap"
)

// DefaultParallelThreshold is the processor count Auto must exceed
// before it picks the parallel reduction.
const DefaultParallelThreshold = 4

// Strategy selects how the aggregate sums are reduced.
// Both implementations use the same per-triangle formulas and differ only
// in summation order.
type Strategy interface {
	Name() string
	reduce(tris []geometry.Triangle3D) accumulator
}

type sequential struct{}

// Sequential sums all triangles in order on the calling goroutine
var Sequential Strategy = sequential{}

func (sequential) Name() string { return "sequential" }

func (sequential) reduce(tris []geometry.Triangle3D) accumulator {
	var acc accumulator
	acc.addAll(tris)
	return acc
}

// Parallel splits the triangles into contiguous chunks, one per worker,
// sums each chunk on its own goroutine and merges the partial sums
// pairwise. The caller blocks until every chunk is done.
type Parallel struct {
	// Workers is the number of chunks. Zero or less means GOMAXPROCS.
	Workers int
}

func (p Parallel) Name() string {
	return fmt.Sprintf("parallel(%d)", p.workers())
}

func (p Parallel) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (p Parallel) reduce(tris []geometry.Triangle3D) accumulator {
	chunks := partition(len(tris), p.workers())
	Logger().Debug("parallel reduction",
		zap.Int("triangles", len(tris)),
		zap.Int("chunks", len(chunks)))

	partials := make([]accumulator, len(chunks))
	var wg sync.WaitGroup
	for i, c := range chunks {
		wg.Go(func() {
			partials[i].addAll(tris[c.start:c.end])
		})
	}
	wg.Wait()
	return mergePairwise(partials)
}

type chunk struct {
	start, end int
}

// partition cuts n items into parts contiguous chunks of n/parts items.
// The last chunk absorbs the remainder. parts is clamped to [1, n].
func partition(n, parts int) []chunk {
	parts = max(1, min(parts, n))
	size := n / parts
	chunks := make([]chunk, parts)
	for i := 0; i < parts-1; i++ {
		chunks[i] = chunk{start: i * size, end: (i + 1) * size}
	}
	chunks[parts-1] = chunk{start: (parts - 1) * size, end: n}
	return chunks
}

// Auto resolves to Parallel when GOMAXPROCS exceeds threshold and to
// Sequential otherwise. The decision is made once, when Auto is called.
func Auto(threshold int) Strategy {
	if runtime.GOMAXPROCS(0) > threshold {
		return Parallel{}
	}
	return Sequential
}

// ParseStrategy maps a configuration name onto a Strategy
func ParseStrategy(name string, workers, threshold int) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return Auto(threshold), nil
	case "sequential", "seq":
		return Sequential, nil
	case "parallel", "par":
		return Parallel{Workers: workers}, nil
	}
	return nil, fmt.Errorf("unknown analysis strategy %q (expected auto, sequential or parallel)", name)
}
