package dynamo

import "github.com/go-gl/mathgl/mgl64"

// System is the view of a body an integrator works on.
type System interface {
	Nodes() []Node
	// AccumulateForces resets every node force and adds external, spring
	// and damping contributions for the current state.
	AccumulateForces()
	// Collide runs collision response for node i.
	Collide(i int)
}

type Integrator interface {
	Name() string
	Step(sys System, h float64)
}

// IntegratorFactory builds a fresh integrator for a scheme.
type IntegratorFactory func(Scheme) (Integrator, error)

// ElasticModel returns the elastic force applied to node B of s.
// Node A receives the negation. Energy is the matching potential.
type ElasticModel interface {
	Force(s *Spring, nodes []Node) mgl64.Vec3
	Energy(s *Spring) float64
}

type Collider interface {
	Respond(n *Node)
}

// ContactVolume adds supplemental mass to nodes it contains.
type ContactVolume interface {
	Contains(p mgl64.Vec3) bool
	ExtraMass() float64
}

// VertexMapper projects node positions, already in the mesh frame, onto
// render vertices.
type VertexMapper interface {
	VertexCount() int
	Map(dst, local []mgl64.Vec3)
}

type Metric interface {
	Name() string
	Observe(b *Body, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(b *Body, t float64)
}

// Controller runs once per simulation iteration before the body steps,
// whether or not the step then advances. dt is the fixed step size.
type Controller interface {
	Update(b *Body, dt float64)
}

type Config struct {
	Steps       int
	SampleEvery int
	Seed        int64
	// Track lists the node indices whose positions are sampled.
	Track []int
}

func DefaultConfig() Config {
	return Config{
		Steps:       1000,
		SampleEvery: 10,
		Seed:        1,
	}
}

type Result struct {
	Times []float64
	Track []int
	// Positions holds one row per sample with one entry per tracked node.
	Positions  [][]mgl64.Vec3
	Metrics    map[string]float64
	StepsTaken int
	// Skipped counts steps the body declined (paused, hidden or misconfigured).
	Skipped int
}
