package metrics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/dynamo"
	"github.com/san-kum/softsim/internal/integrators"
)

func pairBody(t *testing.T) *dynamo.Body {
	t.Helper()
	nodes := []dynamo.Node{
		dynamo.NewNode(0, mgl64.Vec3{0, 0, 0}, 1, 0),
		dynamo.NewNode(1, mgl64.Vec3{1, 0, 0}, 1, 0),
	}
	nodes[0].Fixed = true
	springs := []dynamo.Spring{dynamo.NewSpring(0, 1, dynamo.Structural, 0, 0, 0)}
	b, err := dynamo.New(nodes, springs, dynamo.DefaultParams(), integrators.New)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return b
}

func stretch(b *dynamo.Body, x float64) {
	b.Nodes()[1].Pos = mgl64.Vec3{x, 0, 0}
	b.Springs()[0].Recompute(b.Nodes())
}

func TestKineticEnergy(t *testing.T) {
	b := pairBody(t)
	b.Nodes()[0].Vel = mgl64.Vec3{100, 0, 0}
	b.Nodes()[1].Vel = mgl64.Vec3{2, 0, 0}

	m := NewKineticEnergy()
	m.Observe(b, 0)

	expected := 0.5 * 0.95 * 4
	if math.Abs(m.Value()-expected) > 1e-9 {
		t.Errorf("expected kinetic energy %f, got %f", expected, m.Value())
	}

	b.Nodes()[1].Vel = mgl64.Vec3{}
	m.Observe(b, 0.01)
	if math.Abs(m.Value()-expected/2) > 1e-9 {
		t.Errorf("expected averaged energy %f, got %f", expected/2, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

// tetraBody is one undamped volumetric tetrahedron with node 3 pulled 20%
// off its rest position.
func tetraBody(t *testing.T) *dynamo.Body {
	t.Helper()
	corners := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	nodes := make([]dynamo.Node, len(corners))
	for i, c := range corners {
		nodes[i] = dynamo.NewNode(i, c, 1, 0)
	}
	var springs []dynamo.Spring
	for a := 0; a < 4; a++ {
		for b := a + 1; b < 4; b++ {
			s := dynamo.NewSpring(a, b, dynamo.Structural, 0, 0, 0)
			s.Volume = 1.0 / 36
			springs = append(springs, s)
		}
	}
	p := dynamo.Params{Dt: 0.001, Stiffness: 3600, Mass: 1, Scheme: dynamo.SymplecticEuler}
	b, err := dynamo.New(nodes, springs, p, integrators.New, dynamo.WithElastic(dynamo.VolumetricElastic{}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	b.Nodes()[3].Pos = mgl64.Vec3{0, 0, 1.2}
	ss := b.Springs()
	for i := range ss {
		ss[i].Recompute(b.Nodes())
	}
	return b
}

func TestVolumetricEnergyConserved(t *testing.T) {
	b := tetraBody(t)
	initial := Total(b)
	if initial <= 0 {
		t.Fatalf("stretched tetrahedron should store energy, got %g", initial)
	}

	lo, hi := initial, initial
	for i := 0; i < 20000; i++ {
		b.Step()
		e := Total(b)
		lo, hi = math.Min(lo, e), math.Max(hi, e)
	}
	if swing := (hi - lo) / initial; swing > 0.1 {
		t.Errorf("energy swings by %.3f of %g (min %g, max %g)", swing, initial, lo, hi)
	}
}

func TestElasticEnergyAndStretch(t *testing.T) {
	b := pairBody(t)

	e := NewElasticEnergy()
	s := NewMaxStretch()
	e.Observe(b, 0)
	s.Observe(b, 0)
	if e.Value() != 0 || s.Value() != 0 {
		t.Errorf("rest state should store no energy: %f, %f", e.Value(), s.Value())
	}

	e.Reset()
	stretch(b, 1.5)
	e.Observe(b, 0)
	s.Observe(b, 0)

	k := dynamo.DefaultParams().Stiffness
	if math.Abs(e.Value()-0.5*k*0.25) > 1e-9 {
		t.Errorf("expected elastic energy %f, got %f", 0.5*k*0.25, e.Value())
	}
	if math.Abs(s.Value()-0.5) > 1e-12 {
		t.Errorf("expected max stretch 0.5, got %f", s.Value())
	}

	stretch(b, 0.9)
	s.Observe(b, 0)
	if math.Abs(s.Value()-0.5) > 1e-12 {
		t.Errorf("max stretch should keep the peak, got %f", s.Value())
	}
}

func TestGravitational(t *testing.T) {
	b := pairBody(t)
	b.Nodes()[1].Pos = mgl64.Vec3{1, 2, 0}

	expected := 0.95 * 9.8 * 2
	if math.Abs(Gravitational(b)-expected) > 1e-9 {
		t.Errorf("expected %f, got %f", expected, Gravitational(b))
	}
}

func TestEnergyDrift(t *testing.T) {
	b := pairBody(t)
	b.Nodes()[1].Vel = mgl64.Vec3{2, 0, 0}

	d := NewEnergyDrift()
	d.Observe(b, 0)
	if d.Value() != 0 {
		t.Errorf("first observation should not drift, got %f", d.Value())
	}

	b.Nodes()[1].Vel = mgl64.Vec3{4, 0, 0}
	d.Observe(b, 0.01)
	if math.Abs(d.Value()-3) > 1e-9 {
		t.Errorf("expected drift 3, got %f", d.Value())
	}
}

func TestStability(t *testing.T) {
	b := pairBody(t)
	m := NewStability(10)

	m.Observe(b, 0)
	if m.Value() != 1.0 {
		t.Errorf("expected stable, got %f", m.Value())
	}

	b.Nodes()[1].Pos = mgl64.Vec3{math.NaN(), 0, 0}
	m.Observe(b, 0.01)
	if m.Value() != 0.5 {
		t.Errorf("expected 0.5 after a NaN step, got %f", m.Value())
	}

	b.Nodes()[1].Pos = mgl64.Vec3{20, 0, 0}
	m.Observe(b, 0.02)
	if math.Abs(m.Value()-1.0/3) > 1e-12 {
		t.Errorf("expected 1/3 after escaping threshold, got %f", m.Value())
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range Names() {
		m, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if m.Name() != name {
			t.Errorf("metric %q reports name %q", name, m.Name())
		}
	}
	if _, err := New("control_effort"); err == nil {
		t.Error("expected error for unknown metric")
	}
	if len(All()) != len(Names()) {
		t.Error("All should build every metric")
	}
}
