// Package tetra holds the tetrahedral side of volumetric bodies: element
// records, volume-derived node masses and spring volumes, and the weight
// table that drives render vertices from simulation nodes.
package tetra
