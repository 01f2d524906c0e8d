package stl

import "unsafe"

// DefaultMaxAllocBytes caps the facet slice allocated by a decode (1 GiB)
const DefaultMaxAllocBytes int64 = 1 << 30

// facetSize is the in-memory size of one Facet
var facetSize = uint64(unsafe.Sizeof(Facet{}))

type decodeConfig struct {
	maxAllocBytes int64
}

// Option configures decoding
type Option func(*decodeConfig)

// WithMaxAllocBytes sets the allocation ceiling used to reject oversized
// facet counts. Non-positive values restore DefaultMaxAllocBytes.
func WithMaxAllocBytes(n int64) Option {
	return func(c *decodeConfig) {
		if n <= 0 {
			n = DefaultMaxAllocBytes
		}
		c.maxAllocBytes = n
	}
}

func newDecodeConfig(opts []Option) *decodeConfig {
	cfg := &decodeConfig{maxAllocBytes: DefaultMaxAllocBytes}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// checkCapacity fails when count facets would not fit the ceiling
func (c *decodeConfig) checkCapacity(count uint64) error {
	required := count * facetSize
	if count != 0 && required/count != facetSize || required > uint64(c.maxAllocBytes) {
		return &CapacityError{Declared: count, Required: required, Limit: c.maxAllocBytes}
	}
	return nil
}
