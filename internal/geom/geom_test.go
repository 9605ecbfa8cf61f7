package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBoxContainsInclusive(t *testing.T) {
	b := NewBox(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 2, 2})

	tests := []struct {
		name string
		p    mgl64.Vec3
		want bool
	}{
		{"center", mgl64.Vec3{0, 0, 0}, true},
		{"face", mgl64.Vec3{1, 0, 0}, true},
		{"corner", mgl64.Vec3{-1, -1, -1}, true},
		{"outside", mgl64.Vec3{1.01, 0, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestTetVolume(t *testing.T) {
	v := TetVolume(
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{1, 0, 0},
		mgl64.Vec3{0, 1, 0},
		mgl64.Vec3{0, 0, 1},
	)
	if math.Abs(v-1.0/6.0) > 1e-12 {
		t.Errorf("expected volume 1/6, got %f", v)
	}
}

func TestInTetrahedron(t *testing.T) {
	c := [4]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	if !InTetrahedron(mgl64.Vec3{0.1, 0.1, 0.1}, c) {
		t.Error("interior point should be inside")
	}
	if !InTetrahedron(mgl64.Vec3{0, 0, 0}, c) {
		t.Error("corner should be accepted")
	}
	if InTetrahedron(mgl64.Vec3{1, 1, 1}, c) {
		t.Error("far point should be outside")
	}
}

func TestTransformRoundTrip(t *testing.T) {
	tr := NewTransform(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 90, 0}, mgl64.Vec3{2, 2, 2})
	p := mgl64.Vec3{0.5, -1, 4}

	back := tr.InversePoint(tr.Point(p))
	if !back.ApproxEqualThreshold(p, 1e-9) {
		t.Errorf("round trip mismatch: %v != %v", back, p)
	}
}

func TestOrientation(t *testing.T) {
	q := Orientation(mgl64.Vec3{1, 0, 0})
	got := q.Rotate(Up)
	if !got.ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, 1e-9) {
		t.Errorf("expected up rotated onto +X, got %v", got)
	}

	if Orientation(mgl64.Vec3{}) != mgl64.QuatIdent() {
		t.Error("zero direction should give identity")
	}
}

func TestPerpendicular2D(t *testing.T) {
	got := Perpendicular2D(mgl64.Vec3{-0.5, 0, 0.3})
	want := mgl64.Vec3{0, -0.5, 0}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}
