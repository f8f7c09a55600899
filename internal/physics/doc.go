// Package physics implements the narrow phase and boundary containment of
// the collision pipeline.
//
//   - [IsColliding]: exact sphere intersection test
//   - [Resolve]: overlap correction, velocity impulse and pressure for a pair
//   - [ResolvePair]: the same for two indices of a [body.Set]
//   - [Clamp]: per-axis wall containment with damped reflection
//
// The impulse is closing speed times the bounce factor applied directly as
// a velocity change to both bodies. Mass is ignored; both bodies
// receive the same correction regardless of radius.
package physics
