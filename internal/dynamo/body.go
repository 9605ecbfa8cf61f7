package dynamo

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/geom"
)

// Body is one isolated mass-spring simulation.
type Body struct {
	name    string
	nodes   []Node
	springs []Spring
	params  Params
	windDir mgl64.Vec3

	factory    IntegratorFactory
	integrator Integrator
	elastic    ElasticModel
	collider   Collider
	contact    ContactVolume
	mapper     VertexMapper

	frame       geom.Transform
	coords      CoordMode
	densityMass bool

	visible func() bool
	paused  atomic.Bool
	rng     *rand.Rand
	logger  *slog.Logger

	coordErr        error
	schemeErr       error
	configErrLogged bool

	local    []mgl64.Vec3
	vertices []mgl64.Vec3
	steps    int
}

// New assembles a body from its nodes and springs. Spring rest lengths are
// fixed from the node positions passed in. An unknown scheme or coordinate
// mode does not fail construction: it is logged on the first Step and every
// Step becomes a no-op.
func New(nodes []Node, springs []Spring, params Params, factory IntegratorFactory, opts ...Option) (*Body, error) {
	if factory == nil {
		return nil, ErrNoIntegrator
	}
	if err := params.Validate(); err != nil {
		return nil, &SetupError{Stage: "params", Wrapped: err}
	}

	b := &Body{
		name:    "body",
		nodes:   nodes,
		springs: springs,
		params:  params,
		windDir: params.Wind.Direction,
		factory: factory,
		elastic: LinearElastic{},
		frame:   geom.IdentityTransform(),
		coords:  Global,
		rng:     rand.New(rand.NewSource(1)),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}

	for i := range b.nodes {
		b.nodes[i].Index = i
		b.nodes[i].Prev = b.nodes[i].Pos
	}
	for i := range b.springs {
		s := &b.springs[i]
		if s.A < 0 || s.A >= len(b.nodes) || s.B < 0 || s.B >= len(b.nodes) {
			return nil, &SetupError{
				Stage:   "spring",
				Index:   i,
				Wrapped: fmt.Errorf("%w: (%d, %d) with %d nodes", ErrIndexOutOfRange, s.A, s.B, len(b.nodes)),
			}
		}
		s.Rest(b.nodes)
	}

	if !b.coords.Valid() {
		b.coordErr = fmt.Errorf("%w: %q", ErrUnknownCoordMode, b.coords)
	}
	b.applyParams()
	b.integrator, b.schemeErr = factory(params.Scheme)

	b.local = make([]mgl64.Vec3, len(b.nodes))
	if b.mapper != nil {
		b.vertices = make([]mgl64.Vec3, b.mapper.VertexCount())
	} else {
		b.vertices = make([]mgl64.Vec3, len(b.nodes))
	}
	if b.coordErr == nil {
		b.mapVertices()
	}

	return b, nil
}

// Step advances the body by one fixed timestep. It reports whether the body
// advanced; paused, hidden and misconfigured bodies do not.
func (b *Body) Step() bool {
	if b.paused.Load() {
		return false
	}
	if b.visible != nil && !b.visible() {
		return false
	}
	if err := b.configErr(); err != nil {
		if !b.configErrLogged {
			b.logger.Error("configuration error, stepping disabled", "body", b.name, "err", err)
			b.configErrLogged = true
		}
		return false
	}

	b.integrator.Step(b, b.params.Dt)
	for i := range b.springs {
		b.springs[i].Recompute(b.nodes)
	}
	b.mapVertices()
	b.steps++
	return true
}

func (b *Body) configErr() error {
	if b.coordErr != nil {
		return b.coordErr
	}
	return b.schemeErr
}

// AccumulateForces implements System.
func (b *Body) AccumulateForces() {
	p := &b.params
	perp := geom.Perpendicular2D(b.windDir)
	playerMass := b.contact != nil && p.Scheme == SymplecticEuler

	for i := range b.nodes {
		n := &b.nodes[i]
		n.ResetForce()
		if n.Fixed {
			continue
		}

		mass := n.Mass
		if playerMass && b.contact.Contains(n.Pos) {
			mass += b.contact.ExtraMass()
		}
		n.ApplyForce(p.Gravity.Mul(mass))

		jitter := (b.rng.Float64()*2 - 1) * p.Wind.Random
		n.ApplyForce(b.windDir.Mul(p.Wind.Strength).Add(perp.Mul(jitter * p.Wind.Strength)))

		n.ApplyForce(n.Vel.Mul(-n.Damping))
	}

	for i := range b.springs {
		s := &b.springs[i]
		s.Recompute(b.nodes)

		f := b.elastic.Force(s, b.nodes)
		da, db := s.DampingForce(b.nodes)
		b.nodes[s.A].ApplyForce(da.Sub(f))
		b.nodes[s.B].ApplyForce(db.Add(f))
	}
}

// Collide implements System.
func (b *Body) Collide(i int) {
	if b.collider == nil || b.nodes[i].Fixed {
		return
	}
	b.collider.Respond(&b.nodes[i])
}

func (b *Body) mapVertices() {
	for i := range b.nodes {
		if b.coords == Global {
			b.local[i] = b.frame.InversePoint(b.nodes[i].Pos)
		} else {
			b.local[i] = b.nodes[i].Pos
		}
	}
	if b.mapper != nil {
		b.mapper.Map(b.vertices, b.local)
		return
	}
	copy(b.vertices, b.local)
}

func (b *Body) applyParams() {
	p := b.params
	for i := range b.springs {
		s := &b.springs[i]
		switch s.Kind {
		case Bending:
			s.K = p.BendStiffness
		default:
			s.K = p.Stiffness
		}
		s.DRotation = p.DRotation
		s.DDeformation = p.DDeformation
	}
	for i := range b.nodes {
		n := &b.nodes[i]
		n.Damping = p.DAbsolute
		if b.densityMass {
			n.Mass = n.Volume * p.Density
		} else {
			n.Mass = p.Mass
		}
	}
}

// ResetParams swaps the physical parameter set without touching topology.
// Springs, node masses and damping pick up the new values at once. The
// integrator is rebuilt only when the scheme changes; an unknown scheme is
// stored, returned and disables stepping until a valid one is set.
func (b *Body) ResetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	changed := p.Scheme != b.params.Scheme || b.integrator == nil
	b.params = p
	b.windDir = p.Wind.Direction
	b.applyParams()

	if changed {
		b.integrator, b.schemeErr = b.factory(p.Scheme)
		b.configErrLogged = false
	}
	return b.schemeErr
}

func (b *Body) Pause()       { b.paused.Store(true) }
func (b *Body) Resume()      { b.paused.Store(false) }
func (b *Body) Paused() bool { return b.paused.Load() }

// ReleaseAnchors frees every fixed node.
func (b *Body) ReleaseAnchors() {
	for i := range b.nodes {
		b.nodes[i].Fixed = false
	}
}

func (b *Body) Params() Params { return b.params }
func (b *Body) Name() string   { return b.name }

// Nodes returns the node arena. Callers must not grow or reorder it.
func (b *Body) Nodes() []Node { return b.nodes }

func (b *Body) Springs() []Spring { return b.springs }

// Vertices returns the render positions in the mesh frame as of the last
// step. The slice is reused by the next Step.
func (b *Body) Vertices() []mgl64.Vec3 { return b.vertices }

func (b *Body) StepCount() int { return b.steps }

// Integrator returns the active integrator, nil when misconfigured.
func (b *Body) Integrator() Integrator { return b.integrator }

// Elastic returns the spring force model of the body.
func (b *Body) Elastic() ElasticModel { return b.elastic }

func (b *Body) Frame() geom.Transform { return b.frame }

func (b *Body) WindDirection() mgl64.Vec3 { return b.windDir }

// SetWindDirection overrides the wind direction until the next ResetParams.
func (b *Body) SetWindDirection(d mgl64.Vec3) { b.windDir = d }

// FixedCount returns the number of fixed nodes.
func (b *Body) FixedCount() int {
	n := 0
	for i := range b.nodes {
		if b.nodes[i].Fixed {
			n++
		}
	}
	return n
}

// WorldPos returns node i in world coordinates.
func (b *Body) WorldPos(i int) mgl64.Vec3 {
	if b.coords == Local {
		return b.frame.Point(b.nodes[i].Pos)
	}
	return b.nodes[i].Pos
}
