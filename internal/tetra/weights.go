package tetra

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/geom"
)

// Resolution picks the tetrahedron for a vertex contained in several.
type Resolution string

const (
	First   Resolution = "first"
	Last    Resolution = "last"
	Nearest Resolution = "nearest"
)

func ParseResolution(s string) (Resolution, error) {
	switch r := Resolution(strings.ToLower(strings.TrimSpace(s))); r {
	case First, Last, Nearest:
		return r, nil
	case "":
		return First, nil
	}
	return "", fmt.Errorf("tetra: unknown resolution %q", s)
}

// Weights returns the volume of each sub-tetrahedron formed by replacing
// one corner with p, divided by the total volume.
func Weights(p mgl64.Vec3, c [4]mgl64.Vec3) [4]float64 {
	total := geom.TetVolume(c[0], c[1], c[2], c[3])
	var w [4]float64
	if total == 0 {
		return w
	}
	for i := range c {
		sub := c
		sub[i] = p
		w[i] = geom.TetVolume(sub[0], sub[1], sub[2], sub[3]) / total
	}
	return w
}

// SignedWeights are barycentric coordinates of p. They sum to 1 and go
// negative outside the tetrahedron.
func SignedWeights(p mgl64.Vec3, c [4]mgl64.Vec3) [4]float64 {
	total := geom.SignedTetVolume(c[0], c[1], c[2], c[3])
	var w [4]float64
	if total == 0 {
		return w
	}
	for i := range c {
		sub := c
		sub[i] = p
		w[i] = geom.SignedTetVolume(sub[0], sub[1], sub[2], sub[3]) / total
	}
	return w
}

// Entry binds a render vertex to a tetrahedron. Tet is -1 when unbound.
type Entry struct {
	Tet     int
	Weights [4]float64
}

type Table []Entry

// BuildTable maps every vertex to a containing tetrahedron. Vertices and
// positions must share one frame. Vertices outside every tetrahedron are
// bound to the one with the nearest centroid using signed weights; their
// indices are returned.
func BuildTable(vertices, positions []mgl64.Vec3, tets []Tetrahedron, res Resolution) (Table, []int) {
	corners := make([][4]mgl64.Vec3, len(tets))
	centroids := make([]mgl64.Vec3, len(tets))
	live := make([]bool, len(tets))
	for i := range tets {
		corners[i] = tets[i].Corners(positions)
		centroids[i] = geom.Centroid(corners[i])
		c := corners[i]
		live[i] = geom.TetVolume(c[0], c[1], c[2], c[3]) > 0
	}

	table := make(Table, len(vertices))
	var unmapped []int
	for vi, p := range vertices {
		best := -1
		bestDist := math.Inf(1)
		for j := range tets {
			if !live[j] || !geom.InTetrahedron(p, corners[j]) {
				continue
			}
			switch res {
			case Last:
				best = j
			case Nearest:
				if d := p.Sub(centroids[j]).Len(); d < bestDist {
					best, bestDist = j, d
				}
			default:
				if best < 0 {
					best = j
				}
			}
		}

		if best >= 0 {
			table[vi] = Entry{Tet: best, Weights: Weights(p, corners[best])}
			continue
		}

		unmapped = append(unmapped, vi)
		for j := range tets {
			if !live[j] {
				continue
			}
			if d := p.Sub(centroids[j]).Len(); d < bestDist {
				best, bestDist = j, d
			}
		}
		if best < 0 {
			table[vi] = Entry{Tet: -1}
			continue
		}
		table[vi] = Entry{Tet: best, Weights: SignedWeights(p, corners[best])}
	}
	return table, unmapped
}
