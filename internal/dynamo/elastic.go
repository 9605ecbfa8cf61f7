package dynamo

import "github.com/go-gl/mathgl/mgl64"

// LinearElastic is Hooke's law along the spring: k(L-L0).
type LinearElastic struct{}

func (LinearElastic) Force(s *Spring, _ []Node) mgl64.Vec3 {
	return s.Dir.Mul(s.K * s.Stretch())
}

// VolumetricElastic scales the spring force by the volume of the tetrahedra
// sharing the spring and divides by the squared rest length:
// F = (V/L0^2) k (L-L0) (A-B)/L0.
type VolumetricElastic struct{}

func (VolumetricElastic) Force(s *Spring, _ []Node) mgl64.Vec3 {
	l0 := s.RestLength
	if l0 == 0 {
		return mgl64.Vec3{}
	}
	scale := s.Volume / (l0 * l0) * s.K * s.Stretch() * s.Length / l0
	return s.Dir.Mul(scale)
}

func (LinearElastic) Energy(s *Spring) float64 {
	x := s.Stretch()
	return 0.5 * s.K * x * x
}

// Energy integrates the force magnitude from L0 to L:
// (V k/L0^3) ((L^3-L0^3)/3 - L0 (L^2-L0^2)/2).
func (VolumetricElastic) Energy(s *Spring) float64 {
	l0, l := s.RestLength, s.Length
	if l0 == 0 {
		return 0
	}
	return s.Volume * s.K / (l0 * l0 * l0) * ((l*l*l-l0*l0*l0)/3 - l0*(l*l-l0*l0)/2)
}
