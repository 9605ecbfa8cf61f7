// Package collision implements the box collision policies of soft bodies.
package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/dynamo"
	"github.com/san-kum/softsim/internal/geom"
)

// DefaultMargin is the vertical speed above which a node bounces back.
const DefaultMargin = 4.0

// Responder reacts to free nodes entering any of its boxes. A node moving
// vertically faster than Margin has its velocity reflected. Otherwise a
// permanent responder stops and fixes the node, and a non-permanent one
// makes every velocity component positive.
type Responder struct {
	Boxes     []geom.Box
	Permanent bool
	Margin    float64
}

func NewResponder(boxes []geom.Box, permanent bool) *Responder {
	return &Responder{Boxes: boxes, Permanent: permanent, Margin: DefaultMargin}
}

func (r *Responder) Respond(n *dynamo.Node) {
	if n.Fixed || !geom.ContainsAny(r.Boxes, n.Pos) {
		return
	}

	margin := r.Margin
	if margin == 0 {
		margin = DefaultMargin
	}

	switch {
	case math.Abs(n.Vel[1]) > margin:
		n.Vel = n.Vel.Mul(-1)
	case r.Permanent:
		n.Vel = mgl64.Vec3{}
		n.Fixed = true
	default:
		n.Vel = mgl64.Vec3{math.Abs(n.Vel[0]), math.Abs(n.Vel[1]), math.Abs(n.Vel[2])}
	}
}

// Player is a volume whose weight adds to the gravity of the nodes inside it.
type Player struct {
	Box    geom.Box
	Weight float64
}

func NewPlayer(center, size mgl64.Vec3, weight float64) *Player {
	return &Player{Box: geom.NewBox(center, size), Weight: weight}
}

func (p *Player) Contains(pos mgl64.Vec3) bool { return p.Box.Contains(pos) }

func (p *Player) ExtraMass() float64 { return p.Weight }

// MoveTo recenters the player volume.
func (p *Player) MoveTo(center mgl64.Vec3) {
	p.Box = geom.NewBox(center, p.Box.Size())
}
