package physics

import "github.com/go-gl/mathgl/mgl64"

// Line returns segments+1 evenly spaced points from start to end.
func Line(start, end mgl64.Vec3, segments int) []mgl64.Vec3 {
	if segments < 1 {
		segments = 1
	}
	pts := make([]mgl64.Vec3, segments+1)
	step := end.Sub(start).Mul(1 / float64(segments))
	for i := range pts {
		pts[i] = start.Add(step.Mul(float64(i)))
	}
	return pts
}

// Grid returns a width x height sheet in the XY plane centered on the
// origin, split into nx by ny cells of two triangles each.
func Grid(width, height float64, nx, ny int) ([]mgl64.Vec3, []int) {
	if nx < 1 {
		nx = 1
	}
	if ny < 1 {
		ny = 1
	}

	verts := make([]mgl64.Vec3, 0, (nx+1)*(ny+1))
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			verts = append(verts, mgl64.Vec3{
				width * (float64(i)/float64(nx) - 0.5),
				height * (float64(j)/float64(ny) - 0.5),
				0,
			})
		}
	}

	idx := func(i, j int) int { return j*(nx+1) + i }
	tris := make([]int, 0, nx*ny*6)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			a, b := idx(i, j), idx(i+1, j)
			c, d := idx(i, j+1), idx(i+1, j+1)
			tris = append(tris, a, b, c, b, d, c)
		}
	}
	return verts, tris
}

// kuhn splits a cell into six tetrahedra sharing the 0-7 diagonal. Corner
// bits are x=1, y=2, z=4.
var kuhn = [6][4]int{
	{0, 1, 3, 7},
	{0, 1, 5, 7},
	{0, 2, 3, 7},
	{0, 2, 6, 7},
	{0, 4, 5, 7},
	{0, 4, 6, 7},
}

// Cuboid returns a box of the given size centered on the origin, split into
// nx*ny*nz cells of six tetrahedra each.
func Cuboid(size mgl64.Vec3, nx, ny, nz int) ([]mgl64.Vec3, [][4]int) {
	n := [3]int{nx, ny, nz}
	for i := range n {
		if n[i] < 1 {
			n[i] = 1
		}
	}

	idx := func(i, j, k int) int { return (k*(n[1]+1)+j)*(n[0]+1) + i }

	nodes := make([]mgl64.Vec3, 0, (n[0]+1)*(n[1]+1)*(n[2]+1))
	for k := 0; k <= n[2]; k++ {
		for j := 0; j <= n[1]; j++ {
			for i := 0; i <= n[0]; i++ {
				nodes = append(nodes, mgl64.Vec3{
					size[0] * (float64(i)/float64(n[0]) - 0.5),
					size[1] * (float64(j)/float64(n[1]) - 0.5),
					size[2] * (float64(k)/float64(n[2]) - 0.5),
				})
			}
		}
	}

	elements := make([][4]int, 0, n[0]*n[1]*n[2]*6)
	for k := 0; k < n[2]; k++ {
		for j := 0; j < n[1]; j++ {
			for i := 0; i < n[0]; i++ {
				var corner [8]int
				for c := range corner {
					corner[c] = idx(i+(c&1), j+((c>>1)&1), k+((c>>2)&1))
				}
				for _, t := range kuhn {
					elements = append(elements, [4]int{corner[t[0]], corner[t[1]], corner[t[2]], corner[t[3]]})
				}
			}
		}
	}
	return nodes, elements
}

// BoxSurface returns the eight corners of a box inset from size, a coarse
// render proxy for a Cuboid of the same size. The inset differs per axis so
// no corner lands on a split plane of the tetrahedra.
func BoxSurface(size mgl64.Vec3) []mgl64.Vec3 {
	h := mgl64.Vec3{size[0] * 0.47, size[1] * 0.46, size[2] * 0.45}
	verts := make([]mgl64.Vec3, 0, 8)
	for c := 0; c < 8; c++ {
		verts = append(verts, mgl64.Vec3{
			sgn(c&1) * h[0],
			sgn(c&2) * h[1],
			sgn(c&4) * h[2],
		})
	}
	return verts
}

func sgn(bit int) float64 {
	if bit != 0 {
		return 1
	}
	return -1
}
