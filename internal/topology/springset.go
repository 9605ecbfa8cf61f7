package topology

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange = errors.New("topology: index out of range")
	ErrMalformed       = errors.New("topology: malformed index list")
)

// Pair is an unordered node pair. A and B keep insertion order.
type Pair struct {
	A, B int
}

func (p Pair) key() Pair {
	if p.A > p.B {
		return Pair{p.B, p.A}
	}
	return p
}

// SpringSet collects unordered pairs, silently dropping duplicates.
type SpringSet struct {
	seen  map[Pair]struct{}
	pairs []Pair
}

func NewSpringSet() *SpringSet {
	return &SpringSet{seen: make(map[Pair]struct{})}
}

// Add inserts (a, b) unless the pair exists in either order or a == b. It
// reports whether the pair was added.
func (s *SpringSet) Add(a, b int) bool {
	if a == b {
		return false
	}
	p := Pair{a, b}
	k := p.key()
	if _, ok := s.seen[k]; ok {
		return false
	}
	s.seen[k] = struct{}{}
	s.pairs = append(s.pairs, p)
	return true
}

func (s *SpringSet) Has(a, b int) bool {
	_, ok := s.seen[Pair{a, b}.key()]
	return ok
}

func (s *SpringSet) Len() int { return len(s.pairs) }

// Pairs returns the pairs in insertion order.
func (s *SpringSet) Pairs() []Pair {
	out := make([]Pair, len(s.pairs))
	copy(out, s.pairs)
	return out
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, n)
	}
	return nil
}
