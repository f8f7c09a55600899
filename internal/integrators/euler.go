// Package integrators advances body motion once per displayed frame.
package integrators

import (
	"github.com/san-kum/ballsim/internal/body"
	"github.com/san-kum/ballsim/internal/vec"
)

const (
	// FallbackDt replaces a non-positive frame duration.
	FallbackDt = 0.01

	// UpAxis is the component gravity is added to. Screen coordinates grow
	// downward, so a positive gravity pulls bodies toward the floor.
	UpAxis = 1

	attractDeadZone = 0.1
)

// Drive holds the per-frame forcing switches.
type Drive[V vec.Vector[V]] struct {
	Gravity bool
	Attract bool
	Pointer V
}

// Euler is a semi-implicit Euler step with velocity damping and a speed
// ceiling.
type Euler[V vec.Vector[V]] struct {
	Gravity    float64
	Attraction float64
	Resistance float64
	MaxSpeed   float64
}

func NewEuler[V vec.Vector[V]](gravity, attraction, resistance, maxSpeed float64) *Euler[V] {
	return &Euler[V]{
		Gravity:    gravity,
		Attraction: attraction,
		Resistance: resistance,
		MaxSpeed:   maxSpeed,
	}
}

// EffectiveDt returns dt, or FallbackDt when dt is not positive.
func EffectiveDt(dt float64) float64 {
	if dt <= 0 {
		return FallbackDt
	}
	return dt
}

// Step applies forcing to b and moves it by one frame.
//
// Gravity is a per-frame velocity increment and is not scaled by dt.
func (e *Euler[V]) Step(b *body.Body[V], d Drive[V], dt float64) {
	dt = EffectiveDt(dt)
	v := b.Velocity

	if d.Attract {
		toward := d.Pointer.Sub(b.Position)
		if toward.Len() > attractDeadZone {
			v = v.Add(toward.Mul(e.Attraction * dt))
		}
	}
	if d.Gravity {
		v = v.With(UpAxis, v.At(UpAxis)+e.Gravity)
	}

	v = vec.ClampLength(v.Mul(e.Resistance), e.MaxSpeed)
	b.Velocity = v
	b.Position = b.Position.Add(v.Mul(dt))
}

// StepAll steps every body of s.
func (e *Euler[V]) StepAll(s *body.Set[V], d Drive[V], dt float64) {
	bodies := s.All()
	for i := range bodies {
		e.Step(&bodies[i], d, dt)
	}
}
