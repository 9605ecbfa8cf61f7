// Package meshio reads and writes the setup-time geometry of soft bodies:
// tetrahedral .node/.ele tables and Wavefront OBJ render meshes.
//
// Node tables use a different axis convention than the mesh frame. A row
// "i c1 c2 c3" maps to the local point (-c1, c3, -c2).
package meshio
