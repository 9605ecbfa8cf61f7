package geom

import "github.com/go-gl/mathgl/mgl64"

// Transform maps mesh-local coordinates to world coordinates and back.
type Transform struct {
	m   mgl64.Mat4
	inv mgl64.Mat4
}

func IdentityTransform() Transform {
	return Transform{m: mgl64.Ident4(), inv: mgl64.Ident4()}
}

// NewTransform composes scale, then rotation (XYZ euler angles in degrees),
// then translation. A zero scale component is treated as 1.
func NewTransform(translation, rotationDeg, scale mgl64.Vec3) Transform {
	for i := range scale {
		if scale[i] == 0 {
			scale[i] = 1
		}
	}
	rot := mgl64.AnglesToQuat(
		mgl64.DegToRad(rotationDeg[0]),
		mgl64.DegToRad(rotationDeg[1]),
		mgl64.DegToRad(rotationDeg[2]),
		mgl64.XYZ,
	)
	m := mgl64.Translate3D(translation[0], translation[1], translation[2]).
		Mul4(rot.Mat4()).
		Mul4(mgl64.Scale3D(scale[0], scale[1], scale[2]))
	return Transform{m: m, inv: m.Inv()}
}

// Point transforms a local point to world space.
func (t Transform) Point(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, t.m)
}

// InversePoint transforms a world point to local space.
func (t Transform) InversePoint(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, t.inv)
}

func (t Transform) Matrix() mgl64.Mat4 { return t.m }
