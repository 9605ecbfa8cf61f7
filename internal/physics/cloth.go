package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/dynamo"
	"github.com/san-kum/softsim/internal/geom"
	"github.com/san-kum/softsim/internal/topology"
)

// ClothSpec describes a triangle mesh in its local frame.
type ClothSpec struct {
	Vertices  []mgl64.Vec3
	Triangles []int
	Frame     geom.Transform
	// Coords selects whether nodes live in world (Global) or mesh (Local) space.
	Coords  dynamo.CoordMode
	Anchors []geom.Box
	// Fixed lists node indices pinned at construction.
	Fixed []int
}

// NewCloth builds one node per vertex, structural springs along triangle
// edges and bending springs across shared edges. Anchors are always tested
// against the world position of the vertex.
func NewCloth(spec ClothSpec, params dynamo.Params, factory dynamo.IntegratorFactory, opts ...dynamo.Option) (*dynamo.Body, error) {
	if len(spec.Vertices) == 0 {
		return nil, fmt.Errorf("physics: cloth has no vertices")
	}
	frame := spec.Frame
	if frame == (geom.Transform{}) {
		frame = geom.IdentityTransform()
	}
	coords := spec.Coords
	if coords == "" {
		coords = dynamo.Global
	}

	nodes := make([]dynamo.Node, len(spec.Vertices))
	for i, v := range spec.Vertices {
		world := frame.Point(v)
		pos := world
		if coords == dynamo.Local {
			pos = v
		}
		nodes[i] = dynamo.NewAnchoredNode(i, pos, world, params.Mass, params.DAbsolute, spec.Anchors)
	}
	if err := pin(nodes, spec.Fixed); err != nil {
		return nil, err
	}

	structural, bending, err := topology.Cloth(spec.Triangles, len(nodes))
	if err != nil {
		return nil, &dynamo.SetupError{Stage: "triangles", Wrapped: err}
	}

	springs := make([]dynamo.Spring, 0, len(structural)+len(bending))
	for _, p := range structural {
		springs = append(springs, dynamo.NewSpring(p.A, p.B, dynamo.Structural, params.Stiffness, params.DRotation, params.DDeformation))
	}
	for _, p := range bending {
		springs = append(springs, dynamo.NewSpring(p.A, p.B, dynamo.Bending, params.BendStiffness, params.DRotation, params.DDeformation))
	}

	base := []dynamo.Option{dynamo.WithFrame(frame), dynamo.WithCoordMode(coords)}
	return dynamo.New(nodes, springs, params, factory, append(base, opts...)...)
}
