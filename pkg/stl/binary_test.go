package stl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/philipparndt/stlmesh/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFacet() Facet {
	return Facet{
		Triangle: geometry.NewTriangle3D(
			geometry.NewVertex3D(0, 0, 0),
			geometry.NewVertex3D(3, 0, 0),
			geometry.NewVertex3D(0, 4, 0),
		),
		Attribute: 0xBEEF,
	}
}

// binaryStream builds a binary STL with the given declared count and records
func binaryStream(header string, count uint32, records ...[binaryRecordSize]byte) []byte {
	var buf bytes.Buffer
	var h [binaryHeaderSize]byte
	copy(h[:], header)
	buf.Write(h[:])
	_ = binary.Write(&buf, binary.LittleEndian, count)
	for _, r := range records {
		buf.Write(r[:])
	}
	return buf.Bytes()
}

func record(normal [3]float32, f Facet) [binaryRecordSize]byte {
	var rec [binaryRecordSize]byte
	for i, v := range normal {
		binary.LittleEndian.PutUint32(rec[4*i:], math.Float32bits(v))
	}
	for i, v := range f.Triangle.Floats() {
		binary.LittleEndian.PutUint32(rec[12+4*i:], math.Float32bits(v))
	}
	binary.LittleEndian.PutUint16(rec[48:], f.Attribute)
	return rec
}

func TestDecodeRecordIgnoresStoredNormal(t *testing.T) {
	f := sampleFacet()
	rec := record([3]float32{42, 42, 42}, f)

	got := decodeRecord(rec[:])
	assert.Equal(t, f, got)
}

func TestDecodeBinaryFromReaderAndBytes(t *testing.T) {
	f := sampleFacet()
	data := binaryStream("exported by test", 2, record([3]float32{}, f), record([3]float32{}, f))

	fromReader, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	fromBytes, err := DecodeBytes(data)
	require.NoError(t, err)

	for _, s := range []*Stl{fromReader, fromBytes} {
		assert.Equal(t, "exported by test", s.Header)
		assert.Empty(t, s.Name)
		require.Len(t, s.Facets, 2)
		assert.Equal(t, f, s.Facets[1])
	}
}

// onlyReader hides Len and Seek so the decoder cannot learn the size up front
type onlyReader struct{ r *bytes.Reader }

func (o onlyReader) Read(p []byte) (int, error) { return o.r.Read(p) }

func TestDecodeBinaryTruncated(t *testing.T) {
	f := sampleFacet()
	full := binaryStream("truncated", 3, record([3]float32{}, f), record([3]float32{}, f), record([3]float32{}, f))

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"mid header", full[:40]},
		{"missing count", full[:binaryHeaderSize+2]},
		{"mid body", full[:len(full)-10]},
		{"missing record", full[:len(full)-binaryRecordSize]},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tc.data))
			assert.ErrorIs(t, err, ErrFormat)

			_, err = DecodeBytes(tc.data)
			assert.ErrorIs(t, err, ErrFormat)

			_, err = Decode(onlyReader{bytes.NewReader(tc.data)})
			assert.ErrorIs(t, err, ErrFormat)

			var formatErr *FormatError
			assert.True(t, errors.As(err, &formatErr))
		})
	}
}

func TestDecodeBinaryCapacity(t *testing.T) {
	// Declares four billion facets but carries no body at all
	data := binaryStream("hostile", math.MaxUint32)

	_, err := Decode(bytes.NewReader(data))
	require.ErrorIs(t, err, ErrCapacity)

	var capErr *CapacityError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, uint64(math.MaxUint32), capErr.Declared)
	assert.Equal(t, DefaultMaxAllocBytes, capErr.Limit)

	_, err = DecodeBytes(data)
	assert.ErrorIs(t, err, ErrCapacity)
}

func TestDecodeBinaryCustomCeiling(t *testing.T) {
	f := sampleFacet()
	data := binaryStream("small", 2, record([3]float32{}, f), record([3]float32{}, f))

	_, err := Decode(bytes.NewReader(data), WithMaxAllocBytes(int64(facetSize)))
	assert.ErrorIs(t, err, ErrCapacity)

	s, err := Decode(bytes.NewReader(data), WithMaxAllocBytes(int64(2*facetSize)))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestEncodeBinaryLayout(t *testing.T) {
	f := sampleFacet()
	s := &Stl{Name: "part", Header: "rev 2", Facets: []Facet{f}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, s, Binary))

	data := buf.Bytes()
	require.Len(t, data, binaryPreamble+binaryRecordSize)
	assert.Equal(t, "part rev 2", headerText(data[:binaryHeaderSize]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(data[binaryHeaderSize:]))

	rec := data[binaryPreamble:]
	normal := [3]float32{
		math.Float32frombits(binary.LittleEndian.Uint32(rec[0:])),
		math.Float32frombits(binary.LittleEndian.Uint32(rec[4:])),
		math.Float32frombits(binary.LittleEndian.Uint32(rec[8:])),
	}
	assert.Equal(t, [3]float32{0, 0, 1}, normal, "normal is recomputed from winding")
	assert.Equal(t, f.Attribute, binary.LittleEndian.Uint16(rec[48:]))
}

func TestBinaryHeaderEscapesSolid(t *testing.T) {
	tests := []struct {
		name, header string
		want         string
	}{
		{"solidworks-export", "", "_solidworks-export"},
		{"", "SOLID model", "_SOLID model"},
		{"part", "solid", "part solid"},
		{"", strings.Repeat("x", 100), strings.Repeat("x", 80)},
	}

	for _, tc := range tests {
		h := binaryHeader(&Stl{Name: tc.name, Header: tc.header})
		assert.Equal(t, tc.want, headerText(h[:]))
		assert.Equal(t, Binary, Detect(h[:]))
	}
}

func TestCheckCapacity(t *testing.T) {
	cfg := newDecodeConfig(nil)
	assert.NoError(t, cfg.checkCapacity(0))
	assert.NoError(t, cfg.checkCapacity(1000))
	assert.ErrorIs(t, cfg.checkCapacity(math.MaxUint64), ErrCapacity)
	assert.ErrorIs(t, cfg.checkCapacity(uint64(DefaultMaxAllocBytes)/facetSize+1), ErrCapacity)
}
