// Package viz is the terminal host for a ball world.
//
// [Model] is a Bubble Tea program that ticks the world at a fixed rate,
// draws bodies as filled braille discs on a [Canvas] and shows an overlay
// panel with the smoothed frame rate, the live sim step count, the body
// count and the display mode. 3-D worlds are drawn through an orbiting
// [Camera] with the domain box as wireframe.
//
// # Controls
//
//	mouse  pointer (2-D), left button attracts, right button spawns
//	space  toggle gravity
//	d      cycle display mode
//	up/dn  raise or lower sim steps when stepping manually
//	a      switch between auto and manual step control
//	f      delete bodies near the pointer
//	t      cycle themes
//	q      quit
package viz
