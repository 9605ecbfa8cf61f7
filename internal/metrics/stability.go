package metrics

import (
	"math"

	"github.com/san-kum/softsim/internal/dynamo"
	"github.com/san-kum/softsim/internal/geom"
)

// Stability is the fraction of observed steps in which every node stayed
// finite and within threshold of the origin.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(b *dynamo.Body, t float64) {
	s.samples++
	for _, n := range b.Nodes() {
		if !geom.IsFinite(n.Pos) || n.Pos.Len() > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// MaxStretch is the largest relative spring deformation |L-L0|/L0 seen.
type MaxStretch struct {
	name string
	max  float64
}

func NewMaxStretch() *MaxStretch {
	return &MaxStretch{name: "max_stretch"}
}

func (m *MaxStretch) Name() string { return m.name }

func (m *MaxStretch) Observe(b *dynamo.Body, t float64) {
	m.max = math.Max(m.max, Stretch(b))
}

// Stretch returns the current largest relative spring deformation.
func Stretch(b *dynamo.Body) float64 {
	worst := 0.0
	springs := b.Springs()
	for i := range springs {
		s := &springs[i]
		if s.RestLength == 0 {
			continue
		}
		worst = math.Max(worst, math.Abs(s.Stretch())/s.RestLength)
	}
	return worst
}

func (m *MaxStretch) Value() float64 { return m.max }

func (m *MaxStretch) Reset() { m.max = 0 }
