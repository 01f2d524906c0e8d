package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/philipparndt/stlmesh/pkg/geometry"
	"go.uber.org/zap"
)

const (
	binaryHeaderSize = 80
	binaryPreamble   = binaryHeaderSize + 4
	binaryRecordSize = 50

	recordVertexOffset    = 12
	recordAttributeOffset = 48
)

// headerText extracts the printable part of an 80-byte binary header
func headerText(h []byte) string {
	return string(bytes.TrimRight(h, "\x00 "))
}

// decodeRecord reads one 50-byte record. The stored normal (bytes 0-11)
// is skipped.
func decodeRecord(rec []byte) Facet {
	_ = rec[binaryRecordSize-1]
	f := func(i int) float32 {
		off := recordVertexOffset + 4*i
		return math.Float32frombits(binary.LittleEndian.Uint32(rec[off:]))
	}
	return Facet{
		Triangle: geometry.Triangle3D{
			A: geometry.Vertex3D{X: f(0), Y: f(1), Z: f(2)},
			B: geometry.Vertex3D{X: f(3), Y: f(4), Z: f(5)},
			C: geometry.Vertex3D{X: f(6), Y: f(7), Z: f(8)},
		},
		Attribute: binary.LittleEndian.Uint16(rec[recordAttributeOffset:]),
	}
}

// preamble validates the 84-byte header and returns the header text and
// the declared facet count after the capacity check.
func (c *decodeConfig) preamble(head []byte) (string, uint32, error) {
	count := binary.LittleEndian.Uint32(head[binaryHeaderSize:])
	if err := c.checkCapacity(uint64(count)); err != nil {
		return "", 0, err
	}
	return headerText(head[:binaryHeaderSize]), count, nil
}

func bodyTooShort(count uint32, available int64) error {
	return &FormatError{
		Offset: binaryPreamble,
		Detail: fmt.Sprintf("%d facets need %d body bytes, only %d available",
			count, int64(count)*binaryRecordSize, available),
	}
}

// decodeBinary reads a binary STL from r. remaining is the number of bytes
// left in the stream, or -1 when unknown.
func decodeBinary(r *bufio.Reader, remaining int64, cfg *decodeConfig) (*Stl, error) {
	if remaining >= 0 && remaining < binaryPreamble {
		return nil, &FormatError{
			Detail: fmt.Sprintf("stream has %d bytes, binary header needs %d", remaining, binaryPreamble),
		}
	}

	var head [binaryPreamble]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, &FormatError{Detail: "stream shorter than binary header", Cause: err}
	}

	header, count, err := cfg.preamble(head[:])
	if err != nil {
		return nil, err
	}
	if remaining >= 0 && remaining-binaryPreamble < int64(count)*binaryRecordSize {
		return nil, bodyTooShort(count, remaining-binaryPreamble)
	}

	Logger().Debug("decoding binary STL",
		zap.String("header", header),
		zap.Uint32("facets", count))

	s := &Stl{Header: header, Facets: make([]Facet, count)}
	var rec [binaryRecordSize]byte
	for i := range s.Facets {
		if _, err := io.ReadFull(r, rec[:]); err != nil {
			return nil, &FormatError{
				Offset: binaryPreamble + int64(i)*binaryRecordSize,
				Detail: fmt.Sprintf("truncated facet %d of %d", i, count),
				Cause:  err,
			}
		}
		s.Facets[i] = decodeRecord(rec[:])
	}
	return s, nil
}

// decodeBinaryBytes decodes records straight out of data without copying them
func decodeBinaryBytes(data []byte, cfg *decodeConfig) (*Stl, error) {
	if len(data) < binaryPreamble {
		return nil, &FormatError{
			Detail: fmt.Sprintf("stream has %d bytes, binary header needs %d", len(data), binaryPreamble),
		}
	}

	header, count, err := cfg.preamble(data[:binaryPreamble])
	if err != nil {
		return nil, err
	}
	body := data[binaryPreamble:]
	if int64(len(body)) < int64(count)*binaryRecordSize {
		return nil, bodyTooShort(count, int64(len(body)))
	}

	Logger().Debug("decoding binary STL from memory",
		zap.String("header", header),
		zap.Uint32("facets", count))

	s := &Stl{Header: header, Facets: make([]Facet, count)}
	for i := range s.Facets {
		s.Facets[i] = decodeRecord(body[i*binaryRecordSize : (i+1)*binaryRecordSize])
	}
	return s, nil
}

// binaryHeader builds the 80-byte header from name and header text.
// Text starting with "solid" gets a leading underscore so the file is
// not detected as ASCII on a later read.
func binaryHeader(s *Stl) [binaryHeaderSize]byte {
	combined := s.Header
	if s.Name != "" {
		combined = s.Name + " " + s.Header
	}
	if hasSolidPrefix(combined) {
		combined = "_" + combined
	}
	var h [binaryHeaderSize]byte
	copy(h[:], combined)
	return h
}

func encodeBinary(w io.Writer, s *Stl) error {
	if uint64(len(s.Facets)) > math.MaxUint32 {
		return fmt.Errorf("binary STL holds at most %d facets, got %d", uint32(math.MaxUint32), len(s.Facets))
	}

	bw := bufio.NewWriter(w)
	head := binaryHeader(s)
	if _, err := bw.Write(head[:]); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	var count [4]byte
	binary.LittleEndian.PutUint32(count[:], uint32(len(s.Facets)))
	if _, err := bw.Write(count[:]); err != nil {
		return fmt.Errorf("failed to write facet count: %w", err)
	}

	var rec [binaryRecordSize]byte
	for i := range s.Facets {
		facet := &s.Facets[i]
		normal := facet.Triangle.Normal().Floats()
		for j, v := range normal {
			binary.LittleEndian.PutUint32(rec[4*j:], math.Float32bits(v))
		}
		for j, v := range facet.Triangle.Floats() {
			binary.LittleEndian.PutUint32(rec[recordVertexOffset+4*j:], math.Float32bits(v))
		}
		binary.LittleEndian.PutUint16(rec[recordAttributeOffset:], facet.Attribute)
		if _, err := bw.Write(rec[:]); err != nil {
			return fmt.Errorf("failed to write facet %d: %w", i, err)
		}
	}
	return bw.Flush()
}
