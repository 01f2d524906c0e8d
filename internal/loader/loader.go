// Package loader turns a path on disk into a decoded STL document,
// rendering OpenSCAD sources on the way.
package loader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philipparndt/stlmesh/pkg/openscad"
	"github.com/philipparndt/stlmesh/pkg/stl"
)

// ErrUnsupported is returned for files that are neither .stl nor .scad
var ErrUnsupported = errors.New("unsupported file type (expected .stl or .scad)")

// IsOpenSCAD reports whether path is an OpenSCAD source
func IsOpenSCAD(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".scad")
}

// Load decodes an STL file or renders an OpenSCAD file
func Load(ctx context.Context, path string, opts ...stl.Option) (*stl.Stl, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		s, err := stl.ReadFile(path, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STL file: %w", err)
		}
		return s, nil

	case ".scad":
		renderer := openscad.NewRenderer(filepath.Dir(path))
		s, err := renderer.Render(ctx, path, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to render OpenSCAD file: %w", err)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// WatchList returns the files whose change should trigger a reload:
// the file itself, plus every use/include dependency for OpenSCAD.
func WatchList(path string) ([]string, error) {
	if !IsOpenSCAD(path) {
		return []string{path}, nil
	}

	deps, err := openscad.NewRenderer(filepath.Dir(path)).ResolveDependencies(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dependencies: %w", err)
	}
	return deps, nil
}
