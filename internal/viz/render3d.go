package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/dynamo"
)

// Camera orbits Target at Distance and projects onto a canvas.
type Camera struct {
	Target     mgl64.Vec3
	Distance   float64
	Near       float64
	Yaw, Pitch float64
	Zoom       float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 10, Near: 0.1, Zoom: 1}
}

func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw += dYaw
	c.Pitch = mgl64.Clamp(c.Pitch+dPitch, -math.Pi/2, math.Pi/2)
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(50, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.02, c.Zoom/1.2) }

// Fit centers the camera on pts and scales them to fill the view.
func (c *Camera) Fit(pts []mgl64.Vec3) {
	if len(pts) == 0 {
		return
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], p[k])
			hi[k] = math.Max(hi[k], p[k])
		}
	}
	c.Target = lo.Add(hi).Mul(0.5)
	if extent := hi.Sub(lo).Len(); extent > 0 {
		c.Zoom = 2.5 / extent
	}
}

func (c *Camera) view() mgl64.Mat3 {
	return mgl64.Rotate3DX(c.Pitch).Mul3(mgl64.Rotate3DY(c.Yaw))
}

// Project maps p to dot coordinates on a sw x sh dot screen. It returns the
// view depth and whether the point lands on screen in front of the camera.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (int, int, float64, bool) {
	v := c.view().Mul3x1(p.Sub(c.Target)).Mul(c.Zoom)
	if v.Z() >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - v.Z())
	unit := float64(min(sw, sh)) / 3
	sx := int(math.Round(v.X()*scale*unit)) + sw/2
	sy := int(math.Round(-v.Y()*scale*unit)) + sh/2
	return sx, sy, v.Z(), sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End mgl64.Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe               { return &Wireframe{} }
func (w *Wireframe) AddEdge(s, e mgl64.Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) AddPoint(p mgl64.Vec3)   { w.Edges = append(w.Edges, Edge{p, p}) }
func (w *Wireframe) Clear()                  { w.Edges = w.Edges[:0] }
func (w *Wireframe) Points() []mgl64.Vec3    { return edgePoints(w.Edges) }

func edgePoints(edges []Edge) []mgl64.Vec3 {
	pts := make([]mgl64.Vec3, 0, 2*len(edges))
	for _, e := range edges {
		pts = append(pts, e.Start, e.End)
	}
	return pts
}

// BodyWireframe draws every node as a point and every spring as an edge,
// in world coordinates. Bending springs are included when bending is set.
func BodyWireframe(w *Wireframe, b *dynamo.Body, bending bool) {
	w.Clear()
	for i := range b.Nodes() {
		w.AddPoint(b.WorldPos(i))
	}
	for _, s := range b.Springs() {
		if s.Kind == dynamo.Bending && !bending {
			continue
		}
		w.AddEdge(b.WorldPos(s.A), b.WorldPos(s.B))
	}
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe far to near.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	sw, sh := c.Dots()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, sw, sh)
		x2, y2, d2, v2 := cam.Project(e.End, sw, sh)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}

// AxesWireframe draws the three world axes from the origin.
func AxesWireframe(l float64) *Wireframe {
	w := NewWireframe()
	w.AddEdge(mgl64.Vec3{}, mgl64.Vec3{l, 0, 0})
	w.AddEdge(mgl64.Vec3{}, mgl64.Vec3{0, l, 0})
	w.AddEdge(mgl64.Vec3{}, mgl64.Vec3{0, 0, l})
	return w
}
