package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is a triangle render mesh.
type Mesh struct {
	Vertices []mgl64.Vec3
	// Triangles holds three vertex indices per triangle.
	Triangles []int
}

// ReadOBJ reads vertices and faces from a Wavefront OBJ stream. Polygons are
// fan-triangulated; texture and normal references are ignored.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, &ParseError{Line: line, Column: len(fields), Wrapped: ErrMissingField}
			}
			var v mgl64.Vec3
			for k := 0; k < 3; k++ {
				f, err := strconv.ParseFloat(fields[k+1], 64)
				if err != nil {
					return nil, &ParseError{Line: line, Column: k + 1, Wrapped: fmt.Errorf("%w: %q", ErrMalformedField, fields[k+1])}
				}
				v[k] = f
			}
			m.Vertices = append(m.Vertices, v)

		case "f":
			if len(fields) < 4 {
				return nil, &ParseError{Line: line, Column: len(fields), Wrapped: ErrMissingField}
			}
			idx := make([]int, 0, len(fields)-1)
			for k, tok := range fields[1:] {
				ref := tok
				if slash := strings.IndexByte(tok, '/'); slash >= 0 {
					ref = tok[:slash]
				}
				i, err := strconv.Atoi(ref)
				if err != nil || i == 0 {
					return nil, &ParseError{Line: line, Column: k + 1, Wrapped: fmt.Errorf("%w: %q", ErrMalformedField, tok)}
				}
				if i < 0 {
					i = len(m.Vertices) + i
				} else {
					i--
				}
				idx = append(idx, i)
			}
			for k := 1; k+1 < len(idx); k++ {
				m.Triangles = append(m.Triangles, idx[0], idx[k], idx[k+1])
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ReadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
