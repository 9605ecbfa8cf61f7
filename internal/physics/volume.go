package physics

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/collision"
	"github.com/san-kum/softsim/internal/dynamo"
	"github.com/san-kum/softsim/internal/geom"
	"github.com/san-kum/softsim/internal/tetra"
	"github.com/san-kum/softsim/internal/topology"
)

// VolumeSpec describes a tetrahedral mesh in its local frame.
type VolumeSpec struct {
	Nodes    []mgl64.Vec3
	Elements [][4]int
	// RenderVertices are driven by the tetrahedra. Nil renders the nodes.
	RenderVertices []mgl64.Vec3
	Frame          geom.Transform
	Anchors        []geom.Box
	Fixed          []int
	Resolution     tetra.Resolution

	Colliders []geom.Box
	Permanent bool
	Player    *collision.Player

	Logger *slog.Logger
}

// Volume is a volumetric body together with its tetrahedra.
type Volume struct {
	*dynamo.Body
	Tetrahedra []tetra.Tetrahedron
	// Unmapped lists render vertices outside every tetrahedron.
	Unmapped []int
}

// NewVolume builds a soft body whose nodes live in world space. Node masses
// come from a quarter of the incident tetrahedra volume times density; each
// spring carries a sixth of the volume of the tetrahedra sharing it.
func NewVolume(spec VolumeSpec, params dynamo.Params, factory dynamo.IntegratorFactory, opts ...dynamo.Option) (*Volume, error) {
	if len(spec.Nodes) == 0 || len(spec.Elements) == 0 {
		return nil, fmt.Errorf("physics: volume needs nodes and elements, got %d and %d", len(spec.Nodes), len(spec.Elements))
	}
	frame := spec.Frame
	if frame == (geom.Transform{}) {
		frame = geom.IdentityTransform()
	}
	logger := spec.Logger
	if logger == nil {
		logger = slog.Default()
	}

	world := make([]mgl64.Vec3, len(spec.Nodes))
	for i, p := range spec.Nodes {
		world[i] = frame.Point(p)
	}

	tets, err := tetra.Build(spec.Elements, len(world))
	if err != nil {
		return nil, &dynamo.SetupError{Stage: "elements", Wrapped: err}
	}
	volumes := tetra.NodeVolumes(world, tets)

	nodes := make([]dynamo.Node, len(world))
	for i, p := range world {
		nodes[i] = dynamo.NewAnchoredNode(i, p, p, volumes[i]*params.Density, params.DAbsolute, spec.Anchors)
		nodes[i].Volume = volumes[i]
	}
	if err := pin(nodes, spec.Fixed); err != nil {
		return nil, err
	}

	pairs, err := topology.Volume(spec.Elements, len(nodes))
	if err != nil {
		return nil, &dynamo.SetupError{Stage: "elements", Wrapped: err}
	}
	springVolumes := tetra.SpringVolumes(pairs, tets, world)
	springs := make([]dynamo.Spring, len(pairs))
	for i, p := range pairs {
		springs[i] = dynamo.NewSpring(p.A, p.B, dynamo.Structural, params.Stiffness, params.DRotation, params.DDeformation)
		springs[i].Volume = springVolumes[i]
	}

	render := spec.RenderVertices
	if render == nil {
		render = spec.Nodes
	}
	renderWorld := make([]mgl64.Vec3, len(render))
	for i, v := range render {
		renderWorld[i] = frame.Point(v)
	}
	res := spec.Resolution
	if res == "" {
		res = tetra.First
	}
	table, unmapped := tetra.BuildTable(renderWorld, world, tets, res)
	if len(unmapped) > 0 {
		logger.Warn("render vertices outside every tetrahedron, using nearest",
			"count", len(unmapped), "first", unmapped[0])
	}

	base := []dynamo.Option{
		dynamo.WithFrame(frame),
		dynamo.WithCoordMode(dynamo.Global),
		dynamo.WithElastic(dynamo.VolumetricElastic{}),
		dynamo.WithDensityMass(),
		dynamo.WithMapper(tetra.NewMapper(table, tets)),
		dynamo.WithLogger(logger),
	}
	if len(spec.Colliders) > 0 {
		base = append(base, dynamo.WithCollider(collision.NewResponder(spec.Colliders, spec.Permanent)))
	}
	if spec.Player != nil {
		base = append(base, dynamo.WithContact(spec.Player))
	}

	body, err := dynamo.New(nodes, springs, params, factory, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Volume{Body: body, Tetrahedra: tets, Unmapped: unmapped}, nil
}
