package stl

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const readBufferSize = 64 * 1024

// Decode reads a single STL document from r, detecting the format from
// the first five bytes.
func Decode(r io.Reader, opts ...Option) (*Stl, error) {
	cfg := newDecodeConfig(opts)
	remaining := remainingBytes(r)

	br := bufio.NewReaderSize(r, readBufferSize)
	prefix, err := br.Peek(len(asciiMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read format prefix: %w", err)
	}

	format := Detect(prefix)
	Logger().Debug("detected STL format",
		zap.Stringer("format", format),
		zap.Int64("size", remaining))

	if format == ASCII {
		return decodeASCII(br, cfg)
	}
	return decodeBinary(br, remaining, cfg)
}

// DecodeBytes decodes an STL document held in memory. Binary records are
// read in place without intermediate copies.
func DecodeBytes(data []byte, opts ...Option) (*Stl, error) {
	cfg := newDecodeConfig(opts)
	if Detect(data) == ASCII {
		return decodeASCII(bytes.NewReader(data), cfg)
	}
	return decodeBinaryBytes(data, cfg)
}

// remainingBytes reports how many bytes r still holds, or -1 if unknown
func remainingBytes(r io.Reader) int64 {
	switch v := r.(type) {
	case interface{ Len() int }:
		return int64(v.Len())
	case io.Seeker:
		cur, err := v.Seek(0, io.SeekCurrent)
		if err != nil {
			return -1
		}
		end, err := v.Seek(0, io.SeekEnd)
		if err != nil {
			return -1
		}
		if _, err := v.Seek(cur, io.SeekStart); err != nil {
			return -1
		}
		return end - cur
	}
	return -1
}

// Encode writes s to w in the given format
func Encode(w io.Writer, s *Stl, format Format) error {
	Logger().Debug("encoding STL",
		zap.Stringer("format", format),
		zap.Int("facets", len(s.Facets)))

	switch format {
	case Binary:
		return encodeBinary(w, s)
	case ASCII:
		return encodeASCII(w, s)
	}
	return fmt.Errorf("unsupported STL format: %v", format)
}

// ReadFile opens and decodes an STL file
func ReadFile(filename string, opts ...Option) (*Stl, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	s, err := Decode(file, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}
	return s, nil
}

// WriteFile encodes s into filename, creating parent directories as needed
func WriteFile(filename string, s *Stl, format Format) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Encode(file, s, format); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return file.Close()
}
