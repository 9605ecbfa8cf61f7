package tetra

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/topology"
)

var unitCorners = []mgl64.Vec3{
	{0, 0, 0},
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 1, 1},
}

func twoTets(t *testing.T) []Tetrahedron {
	t.Helper()
	tets, err := Build([][4]int{{0, 1, 2, 3}, {1, 2, 3, 4}}, len(unitCorners))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return tets
}

func TestWeightsAtCorner(t *testing.T) {
	c := [4]mgl64.Vec3{unitCorners[0], unitCorners[1], unitCorners[2], unitCorners[3]}
	for k := range c {
		w := Weights(c[k], c)
		for i, wi := range w {
			want := 0.0
			if i == k {
				want = 1
			}
			if math.Abs(wi-want) > 1e-9 {
				t.Errorf("corner %d: weight %d = %f, want %f", k, i, wi, want)
			}
		}
	}
}

func TestWeightsSumToOne(t *testing.T) {
	c := [4]mgl64.Vec3{unitCorners[0], unitCorners[1], unitCorners[2], unitCorners[3]}
	w := Weights(mgl64.Vec3{0.2, 0.1, 0.3}, c)

	sum := w[0] + w[1] + w[2] + w[3]
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("weights sum to %f", sum)
	}
}

func TestBuildRejects(t *testing.T) {
	if _, err := Build([][4]int{{0, 1, 1, 2}}, 3); !errors.Is(err, ErrIncomplete) {
		t.Errorf("expected ErrIncomplete, got %v", err)
	}
	if _, err := Build([][4]int{{0, 1, 2, 9}}, 4); !errors.Is(err, topology.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestNodeVolumes(t *testing.T) {
	tets := twoTets(t)
	vols := NodeVolumes(unitCorners, tets)

	total := 0.0
	for _, v := range vols {
		total += v
	}
	// 1/6 + 1/3
	if math.Abs(total-0.5) > 1e-12 {
		t.Errorf("expected total volume 0.5, got %f", total)
	}
	if math.Abs(vols[0]-1.0/24.0) > 1e-12 {
		t.Errorf("node 0: expected 1/24, got %f", vols[0])
	}
}

func TestSpringVolumes(t *testing.T) {
	tets := twoTets(t)
	pairs := []topology.Pair{{A: 0, B: 1}, {A: 1, B: 2}, {A: 0, B: 4}}
	vols := SpringVolumes(pairs, tets, unitCorners)

	want := []float64{
		(1.0 / 6.0) / 6,
		(1.0/6.0 + 1.0/3.0) / 6,
		0,
	}
	for i := range want {
		if math.Abs(vols[i]-want[i]) > 1e-12 {
			t.Errorf("pair %v: expected %f, got %f", pairs[i], want[i], vols[i])
		}
	}
}

func TestBuildTableResolution(t *testing.T) {
	tets := twoTets(t)
	// On the shared face of both tetrahedra.
	shared := mgl64.Vec3{0.25, 0.25, 0.5}
	vertices := []mgl64.Vec3{shared}

	tests := []struct {
		res  Resolution
		want int
	}{
		{First, 0},
		{Last, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.res), func(t *testing.T) {
			table, unmapped := BuildTable(vertices, unitCorners, tets, tt.res)
			if len(unmapped) != 0 {
				t.Fatalf("unexpected unmapped vertices %v", unmapped)
			}
			if table[0].Tet != tt.want {
				t.Errorf("expected tetrahedron %d, got %d", tt.want, table[0].Tet)
			}
		})
	}

	near := mgl64.Vec3{0.05, 0.05, 0.05}
	table, _ := BuildTable([]mgl64.Vec3{near}, unitCorners, tets, Nearest)
	if table[0].Tet != 0 {
		t.Errorf("nearest: expected tetrahedron 0, got %d", table[0].Tet)
	}
}

func TestBuildTableFallback(t *testing.T) {
	tets := twoTets(t)
	outside := mgl64.Vec3{-0.5, 0.1, 0.1}

	table, unmapped := BuildTable([]mgl64.Vec3{outside}, unitCorners, tets, First)
	if len(unmapped) != 1 || unmapped[0] != 0 {
		t.Fatalf("expected vertex 0 unmapped, got %v", unmapped)
	}
	if table[0].Tet < 0 {
		t.Fatal("fallback should bind a tetrahedron")
	}

	m := NewMapper(table, tets)
	dst := make([]mgl64.Vec3, m.VertexCount())
	m.Map(dst, unitCorners)
	if !dst[0].ApproxEqualThreshold(outside, 1e-9) {
		t.Errorf("signed weights should reproduce the vertex: got %v", dst[0])
	}
}

func TestMapperReproducesRestPose(t *testing.T) {
	tets := twoTets(t)
	vertices := []mgl64.Vec3{
		{0.1, 0.1, 0.1},
		{0.6, 0.6, 0.5},
		{1, 0, 0},
	}
	table, unmapped := BuildTable(vertices, unitCorners, tets, First)
	if len(unmapped) != 0 {
		t.Fatalf("unexpected unmapped vertices %v", unmapped)
	}

	m := NewMapper(table, tets)
	dst := make([]mgl64.Vec3, m.VertexCount())
	m.Map(dst, unitCorners)
	for i := range vertices {
		if !dst[i].ApproxEqualThreshold(vertices[i], 1e-9) {
			t.Errorf("vertex %d: expected %v, got %v", i, vertices[i], dst[i])
		}
	}

	moved := make([]mgl64.Vec3, len(unitCorners))
	for i, p := range unitCorners {
		moved[i] = p.Add(mgl64.Vec3{0, 2, 0})
	}
	m.Map(dst, moved)
	if want := vertices[0].Add(mgl64.Vec3{0, 2, 0}); !dst[0].ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("translated vertex: expected %v, got %v", want, dst[0])
	}
}

func TestParseResolution(t *testing.T) {
	if r, err := ParseResolution(""); err != nil || r != First {
		t.Errorf("empty should default to first, got %q %v", r, err)
	}
	if r, err := ParseResolution("Nearest"); err != nil || r != Nearest {
		t.Errorf("expected nearest, got %q %v", r, err)
	}
	if _, err := ParseResolution("random"); err == nil {
		t.Error("expected error for unknown resolution")
	}
}
