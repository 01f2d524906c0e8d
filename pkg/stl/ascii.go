package stl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/stlmesh/pkg/geometry"
	"go.uber.org/zap"
)

const maxASCIILineLength = 1 << 20

// asciiScanner yields whitespace-split lines, skipping blank ones
type asciiScanner struct {
	sc   *bufio.Scanner
	line int
	text string
}

func newASCIIScanner(r io.Reader) *asciiScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxASCIILineLength)
	return &asciiScanner{sc: sc}
}

// next returns the fields of the next non-blank line, or nil at end of stream
func (a *asciiScanner) next() ([]string, error) {
	for a.sc.Scan() {
		a.line++
		a.text = strings.TrimSpace(a.sc.Text())
		if a.text != "" {
			return strings.Fields(a.text), nil
		}
	}
	if err := a.sc.Err(); err != nil {
		return nil, &ParseError{Line: a.line + 1, Detail: "error reading ASCII STL", Cause: err}
	}
	return nil, nil
}

func (a *asciiScanner) errorf(format string, args ...any) *ParseError {
	return &ParseError{Line: a.line, Detail: fmt.Sprintf(format, args...)}
}

// expect reads the next line and checks its leading keywords
func (a *asciiScanner) expect(keywords ...string) ([]string, error) {
	fields, err := a.next()
	if err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, &ParseError{Line: a.line, Detail: fmt.Sprintf("unexpected end of stream, expected %q", strings.Join(keywords, " "))}
	}
	if len(fields) < len(keywords) {
		return nil, a.errorf("expected %q, got %q", strings.Join(keywords, " "), a.text)
	}
	for i, kw := range keywords {
		if !strings.EqualFold(fields[i], kw) {
			return nil, a.errorf("expected %q, got %q", strings.Join(keywords, " "), a.text)
		}
	}
	return fields, nil
}

// vertex parses a "vertex x y z" line using locale-independent parsing
func (a *asciiScanner) vertex() (geometry.Vertex3D, error) {
	fields, err := a.expect("vertex")
	if err != nil {
		return geometry.Vertex3D{}, err
	}
	if len(fields) != 4 {
		return geometry.Vertex3D{}, a.errorf("vertex needs 3 coordinates, got %d", len(fields)-1)
	}
	var xyz [3]float32
	for i, tok := range fields[1:] {
		v, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return geometry.Vertex3D{}, &ParseError{
				Line:   a.line,
				Detail: fmt.Sprintf("invalid coordinate %q", tok),
				Cause:  err,
			}
		}
		xyz[i] = float32(v)
	}
	return geometry.Vertex3D{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

// facet parses the six lines following "facet normal ..."
func (a *asciiScanner) facet() (Facet, error) {
	if _, err := a.expect("outer", "loop"); err != nil {
		return Facet{}, err
	}
	var corners [3]geometry.Vertex3D
	for i := range corners {
		v, err := a.vertex()
		if err != nil {
			return Facet{}, err
		}
		corners[i] = v
	}
	if _, err := a.expect("endloop"); err != nil {
		return Facet{}, err
	}
	if _, err := a.expect("endfacet"); err != nil {
		return Facet{}, err
	}
	return Facet{Triangle: geometry.NewTriangle3D(corners[0], corners[1], corners[2])}, nil
}

// parseSolidLine splits "solid <name> <header...>"
func parseSolidLine(line string) (name, header string) {
	fields := strings.Fields(line[len(asciiMagic):])
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

func decodeASCII(r io.Reader, cfg *decodeConfig) (*Stl, error) {
	a := newASCIIScanner(r)

	if _, err := a.next(); err != nil {
		return nil, err
	}
	if !hasSolidPrefix(a.text) {
		return nil, a.errorf("expected \"solid\", got %q", a.text)
	}
	name, header := parseSolidLine(a.text)
	s := New(name, header)

	Logger().Debug("decoding ASCII STL",
		zap.String("name", name),
		zap.String("header", header))

	for {
		fields, err := a.next()
		if err != nil {
			return nil, err
		}
		if fields == nil {
			return nil, &ParseError{Line: a.line, Detail: "missing endsolid"}
		}
		if strings.EqualFold(fields[0], "endsolid") {
			break
		}
		if len(fields) < 2 || !strings.EqualFold(fields[0], "facet") || !strings.EqualFold(fields[1], "normal") {
			return nil, a.errorf("expected \"facet normal\", got %q", a.text)
		}
		if err := cfg.checkCapacity(uint64(len(s.Facets)) + 1); err != nil {
			return nil, err
		}
		facet, err := a.facet()
		if err != nil {
			return nil, err
		}
		s.Facets = append(s.Facets, facet)
	}

	// A stream carries exactly one solid
	fields, err := a.next()
	if err != nil {
		return nil, err
	}
	if fields != nil {
		return nil, a.errorf("unexpected content after endsolid: %q", a.text)
	}
	return s, nil
}

func appendCoords(buf []byte, keyword string, v geometry.Vertex3D) []byte {
	buf = append(buf, keyword...)
	for _, c := range v.Floats() {
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, float64(c), 'e', 6, 32)
	}
	return append(buf, '\n')
}

// solidLine joins the non-empty parts of "solid <name> <header>"
func solidLine(keyword, name, header string) string {
	parts := []string{keyword}
	for _, p := range []string{name, header} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ") + "\n"
}

func encodeASCII(w io.Writer, s *Stl) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(solidLine("solid", s.Name, s.Header)); err != nil {
		return fmt.Errorf("failed to write solid line: %w", err)
	}

	buf := make([]byte, 0, 512)
	for i := range s.Facets {
		t := s.Facets[i].Triangle
		buf = appendCoords(buf[:0], "  facet normal", t.Normal())
		buf = append(buf, "    outer loop\n"...)
		buf = appendCoords(buf, "      vertex", t.A)
		buf = appendCoords(buf, "      vertex", t.B)
		buf = appendCoords(buf, "      vertex", t.C)
		buf = append(buf, "    endloop\n  endfacet\n"...)
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("failed to write facet %d: %w", i, err)
		}
	}

	if _, err := bw.WriteString(solidLine("endsolid", s.Name, "")); err != nil {
		return fmt.Errorf("failed to write endsolid line: %w", err)
	}
	return bw.Flush()
}
