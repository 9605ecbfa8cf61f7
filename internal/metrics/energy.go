package metrics

import (
	"math"

	"github.com/san-kum/softsim/internal/dynamo"
)

// Kinetic returns the total kinetic energy of the free nodes of b.
func Kinetic(b *dynamo.Body) float64 {
	var e float64
	for _, n := range b.Nodes() {
		if n.Fixed {
			continue
		}
		e += 0.5 * n.Mass * n.Vel.Dot(n.Vel)
	}
	return e
}

// Elastic returns the potential stored in every spring of b under the
// body's elastic model.
func Elastic(b *dynamo.Body) float64 {
	var e float64
	model := b.Elastic()
	springs := b.Springs()
	for i := range springs {
		e += model.Energy(&springs[i])
	}
	return e
}

// Gravitational returns the potential of the free nodes relative to the origin.
func Gravitational(b *dynamo.Body) float64 {
	g := b.Params().Gravity
	var e float64
	for _, n := range b.Nodes() {
		if n.Fixed {
			continue
		}
		e -= n.Mass * g.Dot(n.Pos)
	}
	return e
}

func Total(b *dynamo.Body) float64 {
	return Kinetic(b) + Elastic(b) + Gravitational(b)
}

// KineticEnergy averages the kinetic energy over observed steps.
type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(b *dynamo.Body, t float64) {
	e.total += Kinetic(b)
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// ElasticEnergy averages the spring potential over observed steps.
type ElasticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewElasticEnergy() *ElasticEnergy {
	return &ElasticEnergy{name: "elastic_energy"}
}

func (e *ElasticEnergy) Name() string { return e.name }

func (e *ElasticEnergy) Observe(b *dynamo.Body, t float64) {
	e.total += Elastic(b)
	e.samples++
}

func (e *ElasticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *ElasticEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative change of total energy from the
// first observation. Damped or driven bodies drift by construction; the
// value is meaningful for undamped, windless runs.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(b *dynamo.Body, t float64) {
	energy := Total(b)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
