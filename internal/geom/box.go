package geom

import "github.com/go-gl/mathgl/mgl64"

// Box is an axis-aligned bounding box.
type Box struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewBox builds a box from its center and full extents.
func NewBox(center, size mgl64.Vec3) Box {
	half := size.Mul(0.5)
	return Box{Min: center.Sub(half), Max: center.Add(half)}
}

// Contains reports whether p lies inside the box. Faces count as inside.
func (b Box) Contains(p mgl64.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

func (b Box) Center() mgl64.Vec3 { return b.Min.Add(b.Max).Mul(0.5) }
func (b Box) Size() mgl64.Vec3   { return b.Max.Sub(b.Min) }

// ContainsAny reports whether any box in boxes contains p.
func ContainsAny(boxes []Box, p mgl64.Vec3) bool {
	for _, b := range boxes {
		if b.Contains(p) {
			return true
		}
	}
	return false
}
