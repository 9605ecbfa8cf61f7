package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/dynamo"
	"github.com/san-kum/softsim/internal/geom"
	"github.com/san-kum/softsim/internal/topology"
)

// ChainSpec describes a 1D chain in world space.
type ChainSpec struct {
	Points []mgl64.Vec3
	// Fixed lists node indices pinned at construction.
	Fixed   []int
	Anchors []geom.Box
}

// NewChain links consecutive points with structural springs.
func NewChain(spec ChainSpec, params dynamo.Params, factory dynamo.IntegratorFactory, opts ...dynamo.Option) (*dynamo.Body, error) {
	if len(spec.Points) < 2 {
		return nil, fmt.Errorf("physics: chain needs at least 2 points, got %d", len(spec.Points))
	}

	nodes := make([]dynamo.Node, len(spec.Points))
	for i, p := range spec.Points {
		nodes[i] = dynamo.NewAnchoredNode(i, p, p, params.Mass, params.DAbsolute, spec.Anchors)
	}
	if err := pin(nodes, spec.Fixed); err != nil {
		return nil, err
	}

	pairs := topology.Chain(len(nodes))
	springs := make([]dynamo.Spring, len(pairs))
	for i, p := range pairs {
		springs[i] = dynamo.NewSpring(p.A, p.B, dynamo.Structural, params.Stiffness, params.DRotation, params.DDeformation)
	}

	return dynamo.New(nodes, springs, params, factory, opts...)
}

// pin fixes the listed nodes before the body is assembled.
func pin(nodes []dynamo.Node, fixed []int) error {
	for _, i := range fixed {
		if i < 0 || i >= len(nodes) {
			return &dynamo.SetupError{Stage: "fixed", Index: i, Wrapped: dynamo.ErrIndexOutOfRange}
		}
		nodes[i].Fixed = true
	}
	return nil
}
