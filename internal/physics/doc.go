// Package physics assembles soft bodies from geometry.
//
// Three variants share the [dynamo.Body] engine:
//
//   - [NewChain]: 1D chain of nodes linked end to end
//   - [NewCloth]: 2D triangle mesh with structural and bending springs
//   - [NewVolume]: 3D tetrahedral mesh with volume-weighted springs,
//     density-derived masses and a render vertex mapper
//
// Procedural generators ([Line], [Grid], [Cuboid], [BoxSurface]) produce
// geometry when no mesh file is given.
//
// # Example
//
//	verts, tris := physics.Grid(2, 1, 20, 10)
//	flag, err := physics.NewCloth(physics.ClothSpec{
//		Vertices:  verts,
//		Triangles: tris,
//		Anchors:   []geom.Box{pole},
//	}, dynamo.DefaultParams(), integrators.New)
package physics
