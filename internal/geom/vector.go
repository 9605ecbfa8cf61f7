package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the reference axis spring orientations are measured from.
var Up = mgl64.Vec3{0, 1, 0}

// SafeNormalize returns v scaled to unit length, or the zero vector when v
// has no length.
func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// Perpendicular2D rotates the XY part of v by +90 degrees and drops Z.
func Perpendicular2D(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{-v[1], v[0], 0}
}

// Orientation returns the rotation that takes Up onto dir.
func Orientation(dir mgl64.Vec3) mgl64.Quat {
	d := SafeNormalize(dir)
	if d.Len() == 0 || Up.Dot(d) >= 1-1e-12 {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatBetweenVectors(Up, d)
}

// IsFinite reports whether every component of v is a finite number.
func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
