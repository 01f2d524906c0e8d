package stl

import (
	"bytes"
	"fmt"
	"strings"
)

// Format selects one of the two STL wire formats
type Format int

const (
	Binary Format = iota
	ASCII
)

const asciiMagic = "solid"

func (f Format) String() string {
	switch f {
	case Binary:
		return "binary"
	case ASCII:
		return "ascii"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat parses "binary" or "ascii" (case-insensitive)
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "binary", "bin":
		return Binary, nil
	case "ascii", "text":
		return ASCII, nil
	}
	return Binary, fmt.Errorf("unknown STL format %q (expected binary or ascii)", s)
}

// Detect classifies a stream by its leading bytes. Only the first five
// bytes are inspected.
func Detect(prefix []byte) Format {
	if len(prefix) >= len(asciiMagic) && bytes.EqualFold(prefix[:len(asciiMagic)], []byte(asciiMagic)) {
		return ASCII
	}
	return Binary
}

func hasSolidPrefix(s string) bool {
	return len(s) >= len(asciiMagic) && strings.EqualFold(s[:len(asciiMagic)], asciiMagic)
}
