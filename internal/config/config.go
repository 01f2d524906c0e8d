// Package config loads the gostl YAML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/philipparndt/stlmesh/pkg/mesh"
	"github.com/philipparndt/stlmesh/pkg/stl"
	"github.com/philipparndt/stlmesh/pkg/watcher"
	"gopkg.in/yaml.v3"
)

// Config is the root of gostl.yaml
type Config struct {
	Decode   Decode   `yaml:"decode"`
	Analysis Analysis `yaml:"analysis"`
	Output   Output   `yaml:"output"`
	Watch    Watch    `yaml:"watch"`
	Serve    Serve    `yaml:"serve"`
}

type Decode struct {
	MaxAllocBytes int64 `yaml:"max_alloc_bytes"`
}

type Analysis struct {
	Strategy          string `yaml:"strategy"`
	Workers           int    `yaml:"workers"`
	ParallelThreshold int    `yaml:"parallel_threshold"`
}

type Output struct {
	Format string `yaml:"format"`
	// Color forces styling on or off; unset means auto-detect a terminal
	Color *bool `yaml:"color"`
}

type Watch struct {
	Debounce time.Duration `yaml:"debounce"`
}

type Serve struct {
	Address string `yaml:"address"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Decode:   Decode{MaxAllocBytes: stl.DefaultMaxAllocBytes},
		Analysis: Analysis{Strategy: "auto", ParallelThreshold: mesh.DefaultParallelThreshold},
		Output:   Output{Format: stl.Binary.String()},
		Watch:    Watch{Debounce: watcher.DefaultDebounce},
		Serve:    Serve{Address: ":8080"},
	}
}

// Load reads path on top of the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	if c.Decode.MaxAllocBytes <= 0 {
		return fmt.Errorf("decode.max_alloc_bytes must be positive, got %d", c.Decode.MaxAllocBytes)
	}
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("analysis.workers must not be negative, got %d", c.Analysis.Workers)
	}
	if _, err := c.Strategy(); err != nil {
		return fmt.Errorf("analysis.strategy: %w", err)
	}
	if _, err := c.OutputFormat(); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	return nil
}

// DecodeOptions translates the decode section into codec options
func (c *Config) DecodeOptions() []stl.Option {
	return []stl.Option{stl.WithMaxAllocBytes(c.Decode.MaxAllocBytes)}
}

// Strategy resolves the analysis section into a mesh strategy
func (c *Config) Strategy() (mesh.Strategy, error) {
	return mesh.ParseStrategy(c.Analysis.Strategy, c.Analysis.Workers, c.Analysis.ParallelThreshold)
}

// OutputFormat resolves output.format
func (c *Config) OutputFormat() (stl.Format, error) {
	return stl.ParseFormat(c.Output.Format)
}
