package stl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/philipparndt/stlmesh/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const asciiTriangle = `solid part exported by cad tool
  facet normal 0 0 0
    outer loop
      vertex 0 0 0
      vertex 3.0e+00 0 0
      vertex 0 4 0
    endloop
  endfacet
endsolid part
`

func TestDecodeASCII(t *testing.T) {
	s, err := Decode(strings.NewReader(asciiTriangle))
	require.NoError(t, err)

	assert.Equal(t, "part", s.Name)
	assert.Equal(t, "exported by cad tool", s.Header)
	require.Len(t, s.Facets, 1)
	assert.Equal(t, sampleFacet().Triangle, s.Facets[0].Triangle)
	assert.Zero(t, s.Facets[0].Attribute)
}

func TestDecodeASCIITolerance(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"uppercase keywords", strings.ToUpper(asciiTriangle)},
		{"blank lines", strings.ReplaceAll(asciiTriangle, "\n", "\n\n")},
		{"crlf", strings.ReplaceAll(asciiTriangle, "\n", "\r\n")},
		{"tabs", strings.ReplaceAll(asciiTriangle, " ", "\t")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := DecodeBytes([]byte(tc.data))
			require.NoError(t, err)
			require.Len(t, s.Facets, 1)
			assert.Equal(t, sampleFacet().Triangle, s.Facets[0].Triangle)
		})
	}
}

func TestDecodeASCIINoName(t *testing.T) {
	s, err := Decode(strings.NewReader("solid\nendsolid\n"))
	require.NoError(t, err)
	assert.Empty(t, s.Name)
	assert.Empty(t, s.Header)
	assert.Zero(t, s.Len())
}

func TestDecodeASCIIErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		line int
	}{
		{"bad coordinate", strings.Replace(asciiTriangle, "vertex 0 4 0", "vertex 0 four 0", 1), 6},
		{"locale comma", strings.Replace(asciiTriangle, "vertex 0 4 0", "vertex 0 4,5 0", 1), 6},
		{"missing coordinate", strings.Replace(asciiTriangle, "vertex 0 4 0", "vertex 0 4", 1), 6},
		{"short block", strings.Replace(asciiTriangle, "      vertex 0 4 0\n", "", 1), 6},
		{"missing outer loop", strings.Replace(asciiTriangle, "outer loop", "inner loop", 1), 3},
		{"missing endfacet", strings.Replace(asciiTriangle, "  endfacet\n", "", 1), 8},
		{"missing endsolid", strings.Replace(asciiTriangle, "endsolid part\n", "", 1), 8},
		{"stray line", strings.Replace(asciiTriangle, "endsolid", "garbage\nendsolid", 1), 9},
		{"second solid", asciiTriangle + "solid other\nendsolid other\n", 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.data))
			require.ErrorIs(t, err, ErrParse)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tc.line, parseErr.Line)
		})
	}
}

func TestDecodeASCIICapacity(t *testing.T) {
	_, err := Decode(strings.NewReader(asciiTriangle), WithMaxAllocBytes(1))
	assert.ErrorIs(t, err, ErrCapacity)
}

func TestEncodeASCII(t *testing.T) {
	s := &Stl{Name: "part", Header: "rev 2", Facets: []Facet{sampleFacet()}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, s, ASCII))

	want := `solid part rev 2
  facet normal 0.000000e+00 0.000000e+00 1.000000e+00
    outer loop
      vertex 0.000000e+00 0.000000e+00 0.000000e+00
      vertex 3.000000e+00 0.000000e+00 0.000000e+00
      vertex 0.000000e+00 4.000000e+00 0.000000e+00
    endloop
  endfacet
endsolid part
`
	assert.Equal(t, want, buf.String())
}

func TestEncodeASCIIEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, New("", ""), ASCII))
	assert.Equal(t, "solid\nendsolid\n", buf.String())

	s, err := Decode(&buf)
	require.NoError(t, err)
	assert.Zero(t, s.Len())
}

func TestParseSolidLine(t *testing.T) {
	tests := []struct {
		line, name, header string
	}{
		{"solid", "", ""},
		{"solid cube", "cube", ""},
		{"solid cube  made   by hand", "cube", "made by hand"},
		{"SOLID Cube", "Cube", ""},
	}
	for _, tc := range tests {
		name, header := parseSolidLine(tc.line)
		assert.Equal(t, tc.name, name, tc.line)
		assert.Equal(t, tc.header, header, tc.line)
	}
}

func TestAppendCoords(t *testing.T) {
	got := appendCoords(nil, "vertex", geometry.NewVertex3D(-1.5, 1234567, 0.000125))
	assert.Equal(t, "vertex -1.500000e+00 1.234567e+06 1.250000e-04\n", string(got))
}
