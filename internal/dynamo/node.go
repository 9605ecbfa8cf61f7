package dynamo

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/geom"
)

// Node is a point mass of the spring network.
type Node struct {
	Index int

	Pos   mgl64.Vec3
	Prev  mgl64.Vec3
	Vel   mgl64.Vec3
	Force mgl64.Vec3

	Mass float64
	// Volume is the share of incident tetrahedra volume; zero for chain and cloth nodes.
	Volume  float64
	Damping float64
	Fixed   bool
}

func NewNode(index int, pos mgl64.Vec3, mass, damping float64) Node {
	return Node{
		Index:   index,
		Pos:     pos,
		Prev:    pos,
		Mass:    mass,
		Damping: damping,
	}
}

// NewAnchoredNode builds a node that is fixed when worldPos lies inside any
// anchor box. The test runs once; later anchor movement has no effect.
func NewAnchoredNode(index int, pos, worldPos mgl64.Vec3, mass, damping float64, anchors []geom.Box) Node {
	n := NewNode(index, pos, mass, damping)
	n.Fixed = geom.ContainsAny(anchors, worldPos)
	return n
}

func (n *Node) ApplyForce(f mgl64.Vec3) {
	n.Force = n.Force.Add(f)
}

func (n *Node) ResetForce() {
	n.Force = mgl64.Vec3{}
}

// Accel returns Force/Mass, or zero for massless nodes.
func (n *Node) Accel() mgl64.Vec3 {
	if n.Mass <= 0 {
		return mgl64.Vec3{}
	}
	return n.Force.Mul(1 / n.Mass)
}

func (n *Node) IntegrateVelocity(h float64) {
	if n.Fixed {
		return
	}
	n.Vel = n.Vel.Add(n.Accel().Mul(h))
}

func (n *Node) IntegratePosition(h float64) {
	if n.Fixed {
		return
	}
	n.Pos = n.Pos.Add(n.Vel.Mul(h))
}
