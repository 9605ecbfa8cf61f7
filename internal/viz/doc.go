// Package viz draws soft bodies in the terminal.
//
// Bodies are projected through an orbiting [Camera] onto a braille
// [Canvas], two by four dots per cell. [Model] is a Bubble Tea program that
// advances an experiment at wall-clock pace and shows its statistics next
// to the body.
//
// # Key Bindings
//
//	Space - Pause/Resume the body
//	R     - Release anchored nodes
//	P     - Cycle parameter presets
//	B     - Toggle bending springs
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
