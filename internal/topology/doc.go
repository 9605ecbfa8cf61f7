// Package topology derives deduplicated spring sets from mesh connectivity.
//
// Chains link consecutive nodes. Cloth uses triangle edges as structural
// springs and links the opposite vertices of triangles sharing an edge as
// bending springs. Volumes add the six edges of every tetrahedron.
package topology
