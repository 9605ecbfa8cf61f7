package tetra

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/geom"
	"github.com/san-kum/softsim/internal/topology"
)

var (
	ErrIncomplete = errors.New("tetra: tetrahedron does not have four distinct nodes")
	ErrNoElements = errors.New("tetra: no tetrahedra")
)

// Tetrahedron references four nodes by index.
type Tetrahedron struct {
	Index int
	Nodes [4]int
	count int
}

// Add appends node unless the tetrahedron is full or already holds it.
func (t *Tetrahedron) Add(node int) bool {
	if t.count == 4 || t.Has(node) {
		return false
	}
	t.Nodes[t.count] = node
	t.count++
	return true
}

func (t *Tetrahedron) Has(node int) bool {
	for i := 0; i < t.count; i++ {
		if t.Nodes[i] == node {
			return true
		}
	}
	return false
}

func (t *Tetrahedron) Complete() bool { return t.count == 4 }

// Corners returns the positions of the four nodes.
func (t *Tetrahedron) Corners(positions []mgl64.Vec3) [4]mgl64.Vec3 {
	var c [4]mgl64.Vec3
	for i, n := range t.Nodes {
		c[i] = positions[n]
	}
	return c
}

// Build turns element index quadruples into tetrahedra over n nodes.
func Build(elements [][4]int, n int) ([]Tetrahedron, error) {
	tets := make([]Tetrahedron, len(elements))
	for i, el := range elements {
		tets[i].Index = i
		for _, idx := range el {
			if idx < 0 || idx >= n {
				return nil, fmt.Errorf("%w: element %d references node %d of %d", topology.ErrIndexOutOfRange, i, idx, n)
			}
			tets[i].Add(idx)
		}
		if !tets[i].Complete() {
			return nil, fmt.Errorf("%w: element %d %v", ErrIncomplete, i, el)
		}
	}
	return tets, nil
}

func volume(t *Tetrahedron, positions []mgl64.Vec3) float64 {
	c := t.Corners(positions)
	return geom.TetVolume(c[0], c[1], c[2], c[3])
}

// NodeVolumes gives each node a quarter of the volume of every incident
// tetrahedron.
func NodeVolumes(positions []mgl64.Vec3, tets []Tetrahedron) []float64 {
	out := make([]float64, len(positions))
	for i := range tets {
		v := volume(&tets[i], positions) / 4
		for _, n := range tets[i].Nodes {
			out[n] += v
		}
	}
	return out
}

// SpringVolumes sums, for each pair, a sixth of the volume of every
// tetrahedron holding both endpoints.
func SpringVolumes(pairs []topology.Pair, tets []Tetrahedron, positions []mgl64.Vec3) []float64 {
	vols := make([]float64, len(tets))
	for i := range tets {
		vols[i] = volume(&tets[i], positions) / 6
	}

	out := make([]float64, len(pairs))
	for i, p := range pairs {
		for j := range tets {
			if tets[j].Has(p.A) && tets[j].Has(p.B) {
				out[i] += vols[j]
			}
		}
	}
	return out
}
