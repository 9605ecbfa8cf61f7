package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestFFTImpulse(t *testing.T) {
	out := FFT([]float64{1, 0, 0, 0})
	for i, c := range out {
		if math.Abs(real(c)-1) > 1e-12 || math.Abs(imag(c)) > 1e-12 {
			t.Errorf("bin %d: expected 1, got %v", i, c)
		}
	}
}

func TestFFTPadsToPowerOfTwo(t *testing.T) {
	if n := len(FFT(make([]float64, 5))); n != 8 {
		t.Errorf("expected 8 bins, got %d", n)
	}
	tests := []struct{ in, want int }{{0, 1}, {1, 1}, {2, 2}, {3, 4}, {64, 64}, {65, 128}}
	for _, tt := range tests {
		if got := NextPow2(tt.in); got != tt.want {
			t.Errorf("NextPow2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDominantFrequency(t *testing.T) {
	dt := 1.0 / 64
	data := make([]float64, 64)
	for i := range data {
		data[i] = 3 + math.Sin(2*math.Pi*2*float64(i)*dt)
	}

	f := DominantFrequency(data, dt)
	if math.Abs(f-2) > 1e-9 {
		t.Errorf("expected 2 Hz, got %f", f)
	}
	if DominantFrequency(data[:2], dt) != 0 {
		t.Error("short series should report 0")
	}
}

func TestCrossings(t *testing.T) {
	values := []float64{-1, 1, -1, 1, 0.5, -0.5, 0}
	got := Crossings(values, 0)
	want := []int{1, 3, 6}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("crossing %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestPhasePortrait(t *testing.T) {
	times := []float64{0, 1, 2, 3}
	values := []float64{0, 2, 4, 6}

	p := NewPhasePortrait(times, values)
	if p == nil || len(p.Points) != 4 {
		t.Fatal("expected 4 points")
	}
	for i, pt := range p.Points {
		if math.Abs(pt.Y-2) > 1e-12 {
			t.Errorf("point %d: expected velocity 2, got %f", i, pt.Y)
		}
	}

	art := p.ASCII(20, 10)
	if lines := strings.Count(art, "\n"); lines != 10 {
		t.Errorf("expected 10 rows, got %d", lines)
	}
	if !strings.Contains(art, "•") {
		t.Error("expected plotted points")
	}

	if NewPhasePortrait(times, values[:2]) != nil {
		t.Error("mismatched lengths should return nil")
	}
}

func TestComponent(t *testing.T) {
	positions := [][]mgl64.Vec3{
		{{0, 1, 2}, {3, 4, 5}},
		{{6, 7, 8}, {9, 10, 11}},
	}
	ys := Component(positions, 1, 1)
	if len(ys) != 2 || ys[0] != 4 || ys[1] != 10 {
		t.Errorf("unexpected component %v", ys)
	}
}
