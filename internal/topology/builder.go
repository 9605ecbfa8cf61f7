package topology

import (
	"fmt"
	"sort"
)

// Edge is one triangle half-edge with A < B and the opposite vertex C.
type Edge struct {
	A, B, C int
}

func NewEdge(a, b, c int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b, C: c}
}

// SortEdges orders edges by A, then B. Ties keep no particular order.
func SortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
}

// Chain links node i to node i+1.
func Chain(n int) []Pair {
	if n < 2 {
		return nil
	}
	pairs := make([]Pair, 0, n-1)
	for i := 1; i < n; i++ {
		pairs = append(pairs, Pair{i - 1, i})
	}
	return pairs
}

// Cloth builds structural springs from the triangle list (flat, three
// indices per triangle) and bending springs across shared edges. A bending
// pair already present as a structural spring is dropped.
func Cloth(triangles []int, n int) (structural, bending []Pair, err error) {
	if len(triangles)%3 != 0 {
		return nil, nil, fmt.Errorf("%w: %d triangle indices", ErrMalformed, len(triangles))
	}
	for _, idx := range triangles {
		if err := checkIndex(idx, n); err != nil {
			return nil, nil, err
		}
	}

	st := NewSpringSet()
	edges := make([]Edge, 0, len(triangles))
	for i := 0; i < len(triangles); i += 3 {
		a, b, c := triangles[i], triangles[i+1], triangles[i+2]
		st.Add(a, b)
		st.Add(a, c)
		st.Add(b, c)

		edges = append(edges, NewEdge(a, b, c), NewEdge(b, c, a), NewEdge(c, a, b))
	}

	SortEdges(edges)

	bt := NewSpringSet()
	for i := 0; i < len(edges)-1; i++ {
		e, next := edges[i], edges[i+1]
		if e.A != next.A || e.B != next.B || e.C == next.C {
			continue
		}
		if st.Has(e.C, next.C) {
			continue
		}
		bt.Add(e.C, next.C)
	}

	return st.Pairs(), bt.Pairs(), nil
}

// Volume adds the six edges of every tetrahedron.
func Volume(elements [][4]int, n int) ([]Pair, error) {
	set := NewSpringSet()
	for _, el := range elements {
		for _, idx := range el {
			if err := checkIndex(idx, n); err != nil {
				return nil, err
			}
		}
		for i := 0; i < 4; i++ {
			for j := i + 1; j < 4; j++ {
				set.Add(el[i], el[j])
			}
		}
	}
	return set.Pairs(), nil
}
