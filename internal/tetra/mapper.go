package tetra

import "github.com/go-gl/mathgl/mgl64"

// Mapper reconstructs render vertices as weighted sums of tetrahedron nodes.
type Mapper struct {
	table Table
	tets  []Tetrahedron
}

func NewMapper(table Table, tets []Tetrahedron) *Mapper {
	return &Mapper{table: table, tets: tets}
}

func (m *Mapper) VertexCount() int { return len(m.table) }

func (m *Mapper) Table() Table { return m.table }

// Map writes one vertex per table entry into dst from node positions
// already expressed in the mesh frame.
func (m *Mapper) Map(dst, local []mgl64.Vec3) {
	for i, e := range m.table {
		if e.Tet < 0 {
			dst[i] = mgl64.Vec3{}
			continue
		}
		nodes := m.tets[e.Tet].Nodes
		var v mgl64.Vec3
		for k, n := range nodes {
			v = v.Add(local[n].Mul(e.Weights[k]))
		}
		dst[i] = v
	}
}
