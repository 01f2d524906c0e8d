package main

import (
	"context"
	"fmt"

	"github.com/philipparndt/stlmesh/internal/loader"
	"github.com/philipparndt/stlmesh/pkg/mesh"
	"github.com/philipparndt/stlmesh/pkg/stl"
)

// strategyOverride is bound to --strategy on commands that analyze
var strategyOverride string

func loadDocument(ctx context.Context, path string) (*stl.Stl, error) {
	return loader.Load(ctx, path, cfg.DecodeOptions()...)
}

func analysisStrategy() (mesh.Strategy, error) {
	if strategyOverride == "" {
		return cfg.Strategy()
	}
	s, err := mesh.ParseStrategy(strategyOverride, cfg.Analysis.Workers, cfg.Analysis.ParallelThreshold)
	if err != nil {
		return nil, fmt.Errorf("--strategy: %w", err)
	}
	return s, nil
}

func newMesh(s *stl.Stl) (*mesh.Mesh, error) {
	strategy, err := analysisStrategy()
	if err != nil {
		return nil, err
	}
	return mesh.FromStl(s, mesh.WithStrategy(strategy)), nil
}

// outputFormat resolves --format, falling back to output.format
func outputFormat(flag string) (stl.Format, error) {
	if flag == "" {
		return cfg.OutputFormat()
	}
	return stl.ParseFormat(flag)
}
