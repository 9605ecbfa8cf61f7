package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SignedTetVolume returns the signed volume of the tetrahedron r1..r4.
func SignedTetVolume(r1, r2, r3, r4 mgl64.Vec3) float64 {
	return r2.Sub(r1).Dot(r3.Sub(r1).Cross(r4.Sub(r1))) / 6
}

// TetVolume returns the unsigned volume of the tetrahedron r1..r4.
func TetVolume(r1, r2, r3, r4 mgl64.Vec3) float64 {
	return math.Abs(SignedTetVolume(r1, r2, r3, r4))
}

// SameSide reports whether p lies on the same side of the face (r1, r2, r3)
// as the opposite vertex r4. A point on the face plane is accepted.
func SameSide(r1, r2, r3, r4, p mgl64.Vec3) bool {
	normal := r2.Sub(r1).Cross(r3.Sub(r1))
	dotV4 := normal.Dot(r4.Sub(r1))
	dotP := normal.Dot(p.Sub(r1))
	return sign(dotV4) == sign(dotP) || dotP == 0
}

// InTetrahedron runs the same-side test against all four faces.
func InTetrahedron(p mgl64.Vec3, c [4]mgl64.Vec3) bool {
	return SameSide(c[0], c[1], c[2], c[3], p) &&
		SameSide(c[1], c[2], c[3], c[0], p) &&
		SameSide(c[2], c[3], c[0], c[1], p) &&
		SameSide(c[3], c[0], c[1], c[2], p)
}

// Centroid returns the mean of the four corners.
func Centroid(c [4]mgl64.Vec3) mgl64.Vec3 {
	return c[0].Add(c[1]).Add(c[2]).Add(c[3]).Mul(0.25)
}

// sign mirrors a float sign function that maps zero to +1.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
