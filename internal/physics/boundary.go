package physics

import (
	"github.com/san-kum/ballsim/internal/body"
	"github.com/san-kum/ballsim/internal/vec"
)

// Clamp keeps b inside the box [0, extent] on every axis. A body pushed back
// from a wall it was moving into has that velocity component reversed and
// scaled by bounce. Reports whether any axis was clamped.
func Clamp[V vec.Vector[V]](b *body.Body[V], extent V, bounce float64) bool {
	clamped := false
	for axis := 0; axis < b.Position.Dim(); axis++ {
		p, v := b.Position.At(axis), b.Velocity.At(axis)
		lo, hi := b.Radius, extent.At(axis)-b.Radius

		switch {
		case p < lo:
			p = lo
			if v < 0 {
				v *= -bounce
			}
		case p > hi:
			p = hi
			if v > 0 {
				v *= -bounce
			}
		default:
			continue
		}

		b.Position = b.Position.With(axis, p)
		b.Velocity = b.Velocity.With(axis, v)
		clamped = true
	}
	return clamped
}

// Contained reports whether b lies inside [radius, extent-radius] on every
// axis. A non-finite position is never contained.
func Contained[V vec.Vector[V]](b *body.Body[V], extent V) bool {
	if !vec.IsFinite(b.Position) {
		return false
	}
	for axis := 0; axis < b.Position.Dim(); axis++ {
		p := b.Position.At(axis)
		if p < b.Radius || p > extent.At(axis)-b.Radius {
			return false
		}
	}
	return true
}
