// Package geom holds the small amount of 3D geometry the soft-body engine
// needs: axis-aligned boxes, the mesh local/world frame, tetrahedron volume
// and containment tests, and spring orientation.
//
// All vectors are [mgl64.Vec3] values.
package geom
