package integrators

import "github.com/san-kum/softsim/internal/dynamo"

// Verlet is position Verlet. The first step bootstraps with
// p + h*v + h^2/2 * a; later steps use 2p - prev + h^2 * a. Velocity is
// derived from the position delta of the step.
type Verlet struct {
	started bool
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Name() string { return string(dynamo.Verlet) }

// Started reports whether the bootstrap step has run.
func (v *Verlet) Started() bool { return v.started }

func (v *Verlet) Step(sys dynamo.System, h float64) {
	sys.AccumulateForces()

	h2 := h * h
	nodes := sys.Nodes()
	for i := range nodes {
		n := &nodes[i]
		if n.Fixed {
			continue
		}

		aux := n.Pos
		a := n.Accel()
		if v.started {
			n.Pos = n.Pos.Mul(2).Sub(n.Prev).Add(a.Mul(h2))
		} else {
			n.Pos = n.Pos.Add(n.Vel.Mul(h)).Add(a.Mul(0.5 * h2))
		}
		n.Prev = aux
		n.Vel = n.Pos.Sub(n.Prev).Mul(1 / h)
	}

	v.started = true
}
