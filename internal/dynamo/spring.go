package dynamo

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/geom"
)

type SpringKind int

const (
	// Structural springs join adjacent nodes and resist stretch.
	Structural SpringKind = iota
	// Bending springs join the opposite vertices of two triangles sharing an edge.
	Bending
)

func (k SpringKind) String() string {
	switch k {
	case Structural:
		return "structural"
	case Bending:
		return "bending"
	default:
		return "unknown"
	}
}

// Spring connects nodes A and B by index.
type Spring struct {
	A, B int
	Kind SpringKind

	K          float64
	RestLength float64

	// Geometry, refreshed by Recompute. Dir points from B to A.
	Length float64
	Dir    mgl64.Vec3
	Mid    mgl64.Vec3
	Rot    mgl64.Quat

	DRotation    float64
	DDeformation float64

	// Volume is the volume associated with the spring in volumetric bodies.
	Volume float64

	rested bool
}

func NewSpring(a, b int, kind SpringKind, k, dRot, dDef float64) Spring {
	return Spring{
		A:            a,
		B:            b,
		Kind:         kind,
		K:            k,
		Rot:          mgl64.QuatIdent(),
		DRotation:    dRot,
		DDeformation: dDef,
	}
}

func (s *Spring) Recompute(nodes []Node) {
	pa, pb := nodes[s.A].Pos, nodes[s.B].Pos
	d := pa.Sub(pb)
	s.Length = d.Len()
	s.Dir = geom.SafeNormalize(d)
	s.Mid = pa.Add(pb).Mul(0.5)
	s.Rot = geom.Orientation(s.Dir)
}

// Rest recomputes geometry and fixes the rest length. Only the first call
// has an effect on RestLength.
func (s *Spring) Rest(nodes []Node) {
	s.Recompute(nodes)
	if s.rested {
		return
	}
	s.RestLength = s.Length
	s.rested = true
}

// Stretch is Length - RestLength.
func (s *Spring) Stretch() float64 {
	return s.Length - s.RestLength
}

// DampingForce returns the rotational and deformation damping on A and B.
// The two forces are equal and opposite.
func (s *Spring) DampingForce(nodes []Node) (fa, fb mgl64.Vec3) {
	dv := nodes[s.A].Vel.Sub(nodes[s.B].Vel)
	fa = dv.Mul(-s.DRotation).Sub(s.Dir.Mul(s.DDeformation * dv.Dot(s.Dir)))
	return fa, fa.Mul(-1)
}
