package integrators

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/dynamo"
)

func quietParams(s dynamo.Scheme) dynamo.Params {
	p := dynamo.DefaultParams()
	p.Gravity = mgl64.Vec3{}
	p.Wind = dynamo.Wind{}
	p.DAbsolute = 0
	p.DRotation = 0
	p.DDeformation = 0
	p.Mass = 1
	p.Scheme = s
	return p
}

func pairBody(t *testing.T, s dynamo.Scheme, fixA bool) *dynamo.Body {
	t.Helper()
	nodes := []dynamo.Node{
		dynamo.NewNode(0, mgl64.Vec3{0, 0, 0}, 1, 0),
		dynamo.NewNode(1, mgl64.Vec3{1, 0, 0}, 1, 0),
	}
	nodes[0].Fixed = fixA
	springs := []dynamo.Spring{dynamo.NewSpring(0, 1, dynamo.Structural, 10, 0, 0)}

	p := quietParams(s)
	p.Stiffness = 10
	b, err := dynamo.New(nodes, springs, p, New)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return b
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		integ, err := New(dynamo.Scheme(name))
		if err != nil {
			t.Fatalf("New(%q) failed: %v", name, err)
		}
		if integ.Name() != name {
			t.Errorf("expected name %q, got %q", name, integ.Name())
		}
	}

	if _, err := New("rk4"); err == nil {
		t.Error("expected error for unknown scheme")
	}
}

func TestNamesSorted(t *testing.T) {
	want := []string{"explicit", "symplectic", "verlet"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestVerletBootstrap(t *testing.T) {
	p := quietParams(dynamo.Verlet)
	p.Gravity = mgl64.Vec3{0, -9.8, 0}
	p.Mass = 2
	h := p.Dt

	p0 := mgl64.Vec3{0.5, 3, -1}
	v0 := mgl64.Vec3{1, 2, 0.25}
	nodes := []dynamo.Node{dynamo.NewNode(0, p0, p.Mass, 0)}
	nodes[0].Vel = v0

	b, err := dynamo.New(nodes, nil, p, New)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	a := p.Gravity.Mul(p.Mass).Mul(1 / p.Mass)

	if !b.Step() {
		t.Fatal("first step did not advance")
	}
	p1 := p0.Add(v0.Mul(h)).Add(a.Mul(0.5 * h * h))
	if got := b.Nodes()[0].Pos; got != p1 {
		t.Fatalf("step 1: expected %v, got %v", p1, got)
	}

	b.Step()
	p2 := p1.Mul(2).Sub(p0).Add(a.Mul(h * h))
	if got := b.Nodes()[0].Pos; got != p2 {
		t.Fatalf("step 2: expected %v, got %v", p2, got)
	}

	wantVel := p2.Sub(p1).Mul(1 / h)
	if got := b.Nodes()[0].Vel; got != wantVel {
		t.Errorf("velocity: expected %v, got %v", wantVel, got)
	}
}

func TestFixedNodeUntouched(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			b := pairBody(t, dynamo.Scheme(name), true)
			p := b.Params()
			p.Gravity = mgl64.Vec3{0, -9.8, 0}
			p.Wind = dynamo.Wind{Direction: mgl64.Vec3{1, 0, 0}, Strength: 3, Random: 2}
			if err := b.ResetParams(p); err != nil {
				t.Fatalf("ResetParams failed: %v", err)
			}

			before := b.Nodes()[0]
			for i := 0; i < 200; i++ {
				b.Step()
			}
			after := b.Nodes()[0]

			if after.Pos != before.Pos || after.Vel != before.Vel {
				t.Errorf("fixed node moved: pos %v -> %v, vel %v -> %v",
					before.Pos, after.Pos, before.Vel, after.Vel)
			}
			if b.Nodes()[1].Pos == (mgl64.Vec3{1, 0, 0}) {
				t.Error("free node should have moved")
			}
		})
	}
}

func TestStretchedPairOscillates(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			b := pairBody(t, dynamo.Scheme(name), false)
			rest := b.Springs()[0].RestLength

			nodes := b.Nodes()
			nodes[1].Pos = mgl64.Vec3{1.5, 0, 0}
			nodes[1].Prev = nodes[1].Pos

			crossed := false
			for i := 0; i < 1000 && !crossed; i++ {
				b.Step()
				d := nodes[1].Pos.Sub(nodes[0].Pos).Len()
				crossed = d < rest
			}
			if !crossed {
				t.Error("separation never crossed the rest length")
			}
		})
	}
}

func TestExplicitPositionLagsForce(t *testing.T) {
	p := quietParams(dynamo.ExplicitEuler)
	p.Gravity = mgl64.Vec3{0, -10, 0}
	nodes := []dynamo.Node{dynamo.NewNode(0, mgl64.Vec3{}, 1, 0)}

	b, err := dynamo.New(nodes, nil, p, New)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b.Step()

	n := b.Nodes()[0]
	if n.Pos != (mgl64.Vec3{}) {
		t.Errorf("explicit step should move with the old (zero) velocity, got %v", n.Pos)
	}
	if n.Vel[1] >= 0 {
		t.Errorf("velocity should pick up gravity, got %v", n.Vel)
	}
}

func TestSymplecticUsesNewVelocity(t *testing.T) {
	p := quietParams(dynamo.SymplecticEuler)
	p.Gravity = mgl64.Vec3{0, -10, 0}
	nodes := []dynamo.Node{dynamo.NewNode(0, mgl64.Vec3{}, 1, 0)}

	b, err := dynamo.New(nodes, nil, p, New)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b.Step()

	if y := b.Nodes()[0].Pos[1]; y >= 0 {
		t.Errorf("symplectic step should move within the same step, got y=%f", y)
	}
}
