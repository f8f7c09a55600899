package physics

import (
	"math"

	"github.com/san-kum/ballsim/internal/body"
	"github.com/san-kum/ballsim/internal/vec"
)

const (
	// MinOverlap is the penetration depth below which a touching pair is left
	// alone to avoid jitter at the contact boundary.
	MinOverlap = 0.001

	// coincident is the center distance below which no contact normal exists.
	coincident = 1e-9
)

// Outcome reports what Resolve did to a pair.
type Outcome uint8

const (
	// Separate: the pair was not overlapping enough to correct.
	Separate Outcome = iota
	// Coincident: the centers coincide, no normal could be formed.
	Coincident
	// Corrected: overlap was removed but the pair was already separating.
	Corrected
	// Bounced: overlap was removed and a velocity impulse applied.
	Bounced
)

func (o Outcome) String() string {
	switch o {
	case Separate:
		return "separate"
	case Coincident:
		return "coincident"
	case Corrected:
		return "corrected"
	case Bounced:
		return "bounced"
	}
	return "unknown"
}

// Response carries the collision tuning of a run.
type Response struct {
	Bounce      float64
	MaxPressure float64
}

// IsColliding reports whether the spheres of a and b intersect.
func IsColliding[V vec.Vector[V]](a, b *body.Body[V]) bool {
	return vec.Distance(a.Position, b.Position) < a.Radius+b.Radius
}

// Resolve pushes an overlapping pair apart by half the overlap each and, if
// they are closing, exchanges closing*Bounce of velocity along the contact
// normal. Pressure of both bodies is overwritten from the impulse.
func Resolve[V vec.Vector[V]](a, b *body.Body[V], r Response) Outcome {
	diff := b.Position.Sub(a.Position)
	d := diff.Len()
	if d < coincident {
		return Coincident
	}

	overlap := a.Radius + b.Radius - d
	if overlap < MinOverlap {
		return Separate
	}

	n := diff.Mul(1 / d)
	shift := n.Mul(overlap / 2)
	a.Position = a.Position.Sub(shift)
	b.Position = b.Position.Add(shift)

	closing := b.Velocity.Sub(a.Velocity).Dot(n)
	if closing > 0 {
		return Corrected
	}

	impulse := closing * r.Bounce
	a.Velocity = a.Velocity.Add(n.Mul(impulse))
	b.Velocity = b.Velocity.Sub(n.Mul(impulse))

	a.Pressure = pressure(impulse, a.Radius, r.MaxPressure)
	b.Pressure = pressure(impulse, b.Radius, r.MaxPressure)
	return Bounced
}

// ResolvePair resolves bodies i and j of s. Candidates that do not intersect
// have the pressure of both bodies reset.
func ResolvePair[V vec.Vector[V]](s *body.Set[V], i, j int, r Response) (Outcome, error) {
	a, b, err := s.Pair(i, j)
	if err != nil {
		return Separate, err
	}
	if !IsColliding(a, b) {
		a.Pressure = 0
		b.Pressure = 0
		return Separate, nil
	}
	return Resolve(a, b, r), nil
}

func pressure(impulse, radius, ceiling float64) float64 {
	p := -impulse / (math.Pi * radius * radius)
	return math.Min(math.Max(p, 0), ceiling)
}
