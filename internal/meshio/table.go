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

// ParseMode decides what happens to an unparsable numeric field.
type ParseMode int

const (
	// Permissive reads a bad or missing field as zero.
	Permissive ParseMode = iota
	// Strict fails with a *ParseError.
	Strict
)

type row struct {
	line   int
	fields []string
}

// readRows splits r into lines and drops the header and footer lines.
// Trailing blank lines are not counted as the footer.
func readRows(r io.Reader) ([]row, error) {
	sc := bufio.NewScanner(r)
	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 3 {
		return nil, ErrEmpty
	}

	rows := make([]row, 0, len(lines)-2)
	for i := 1; i < len(lines)-1; i++ {
		fields := strings.Fields(lines[i])
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, row{line: i + 1, fields: fields})
	}
	return rows, nil
}

func (rw row) floatAt(col int, mode ParseMode) (float64, error) {
	if col >= len(rw.fields) {
		if mode == Strict {
			return 0, &ParseError{Line: rw.line, Column: col, Wrapped: ErrMissingField}
		}
		return 0, nil
	}
	v, err := strconv.ParseFloat(rw.fields[col], 64)
	if err != nil {
		if mode == Strict {
			return 0, &ParseError{Line: rw.line, Column: col, Wrapped: fmt.Errorf("%w: %q", ErrMalformedField, rw.fields[col])}
		}
		return 0, nil
	}
	return v, nil
}

func (rw row) intAt(col int, mode ParseMode) (int, error) {
	if col >= len(rw.fields) {
		if mode == Strict {
			return 0, &ParseError{Line: rw.line, Column: col, Wrapped: ErrMissingField}
		}
		return 0, nil
	}
	v, err := strconv.Atoi(rw.fields[col])
	if err != nil {
		if mode == Strict {
			return 0, &ParseError{Line: rw.line, Column: col, Wrapped: fmt.Errorf("%w: %q", ErrMalformedField, rw.fields[col])}
		}
		return 0, nil
	}
	return v, nil
}

// ReadNodes parses a .node table into mesh-frame positions.
func ReadNodes(r io.Reader, mode ParseMode) ([]mgl64.Vec3, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	out := make([]mgl64.Vec3, 0, len(rows))
	for _, rw := range rows {
		var c [3]float64
		for k := range c {
			if c[k], err = rw.floatAt(k+1, mode); err != nil {
				return nil, err
			}
		}
		out = append(out, mgl64.Vec3{0 - c[0], c[2], 0 - c[1]})
	}
	return out, nil
}

// ReadElements parses a .ele table of 1-based node indices into 0-based
// quadruples.
func ReadElements(r io.Reader, mode ParseMode) ([][4]int, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	out := make([][4]int, 0, len(rows))
	for _, rw := range rows {
		var el [4]int
		for k := range el {
			v, err := rw.intAt(k+1, mode)
			if err != nil {
				return nil, err
			}
			el[k] = v - 1
		}
		out = append(out, el)
	}
	return out, nil
}

// WriteNodes writes positions as a .node table with 1-based indices, the
// inverse of ReadNodes.
func WriteNodes(w io.Writer, positions []mgl64.Vec3) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d 3 0 0\n", len(positions))
	for i, p := range positions {
		fmt.Fprintf(bw, "%d %s %s %s\n", i+1,
			formatFloat(0-p[0]), formatFloat(0-p[2]), formatFloat(p[1]))
	}
	fmt.Fprintln(bw, "# Generated by softsim")
	return bw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// TetMesh is a volumetric mesh in its local frame.
type TetMesh struct {
	Nodes    []mgl64.Vec3
	Elements [][4]int
}

func LoadTetMesh(nodePath, elePath string, mode ParseMode) (*TetMesh, error) {
	nf, err := os.Open(nodePath)
	if err != nil {
		return nil, err
	}
	defer nf.Close()

	nodes, err := ReadNodes(nf, mode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", nodePath, err)
	}

	ef, err := os.Open(elePath)
	if err != nil {
		return nil, err
	}
	defer ef.Close()

	elements, err := ReadElements(ef, mode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", elePath, err)
	}

	return &TetMesh{Nodes: nodes, Elements: elements}, nil
}
