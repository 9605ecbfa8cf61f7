package integrators

import "github.com/san-kum/softsim/internal/dynamo"

// ExplicitEuler moves positions with the previous velocity before forces are
// evaluated, then updates velocities from those forces. Positions lag forces
// by one step.
type ExplicitEuler struct{}

func NewExplicitEuler() *ExplicitEuler {
	return &ExplicitEuler{}
}

func (e *ExplicitEuler) Name() string { return string(dynamo.ExplicitEuler) }

func (e *ExplicitEuler) Step(sys dynamo.System, h float64) {
	nodes := sys.Nodes()
	for i := range nodes {
		nodes[i].IntegratePosition(h)
	}

	sys.AccumulateForces()

	for i := range nodes {
		nodes[i].IntegrateVelocity(h)
	}
}

// SymplecticEuler updates velocity from the current forces and then moves
// positions with the new velocity. Collision response runs between the two.
type SymplecticEuler struct{}

func NewSymplecticEuler() *SymplecticEuler {
	return &SymplecticEuler{}
}

func (s *SymplecticEuler) Name() string { return string(dynamo.SymplecticEuler) }

func (s *SymplecticEuler) Step(sys dynamo.System, h float64) {
	sys.AccumulateForces()

	nodes := sys.Nodes()
	for i := range nodes {
		if nodes[i].Fixed {
			continue
		}
		nodes[i].IntegrateVelocity(h)
		sys.Collide(i)
		nodes[i].IntegratePosition(h)
	}
}
