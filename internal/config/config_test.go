package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/philipparndt/stlmesh/pkg/mesh"
	"github.com/philipparndt/stlmesh/pkg/stl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, stl.DefaultMaxAllocBytes, cfg.Decode.MaxAllocBytes)
	assert.Equal(t, mesh.DefaultParallelThreshold, cfg.Analysis.ParallelThreshold)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, ":8080", cfg.Serve.Address)
	assert.Nil(t, cfg.Output.Color)

	format, err := cfg.OutputFormat()
	require.NoError(t, err)
	assert.Equal(t, stl.Binary, format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gostl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
decode:
  max_alloc_bytes: 4096
analysis:
  strategy: parallel
  workers: 3
output:
  format: ascii
  color: false
watch:
  debounce: 2s
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(4096), cfg.Decode.MaxAllocBytes)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
	assert.Equal(t, ":8080", cfg.Serve.Address)
	require.NotNil(t, cfg.Output.Color)
	assert.False(t, *cfg.Output.Color)

	strategy, err := cfg.Strategy()
	require.NoError(t, err)
	assert.Equal(t, mesh.Parallel{Workers: 3}, strategy)

	format, err := cfg.OutputFormat()
	require.NoError(t, err)
	assert.Equal(t, stl.ASCII, format)

	assert.Len(t, cfg.DecodeOptions(), 1)
}

func TestDecodeOptionsApplyCeiling(t *testing.T) {
	cfg, err := Parse([]byte("decode:\n  max_alloc_bytes: 10\n"))
	require.NoError(t, err)

	_, err = stl.DecodeBytes([]byte("solid a\nfacet normal 0 0 0\nouter loop\nvertex 0 0 0\nvertex 1 0 0\nvertex 0 1 0\nendloop\nendfacet\nendsolid a\n"),
		cfg.DecodeOptions()...)
	assert.ErrorIs(t, err, stl.ErrCapacity)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "decode:\n  max_bytes: 1\n"},
		{"bad strategy", "analysis:\n  strategy: gpu\n"},
		{"bad format", "output:\n  format: obj\n"},
		{"negative workers", "analysis:\n  workers: -2\n"},
		{"zero ceiling", "decode:\n  max_alloc_bytes: 0\n"},
		{"bad duration", "watch:\n  debounce: soon\n"},
		{"negative debounce", "watch:\n  debounce: -1s\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
