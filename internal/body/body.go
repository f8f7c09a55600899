package body

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/ballsim/internal/vec"
)

var (
	// ErrSameBody is returned when a pair borrow names one body twice.
	ErrSameBody = errors.New("body: pair indices must be distinct")

	// ErrOutOfRange is returned for an index outside the set.
	ErrOutOfRange = errors.New("body: index out of range")
)

// Body is a circle (2-D) or sphere (3-D). Its ID always equals its index in
// the owning Set.
type Body[V vec.Vector[V]] struct {
	ID       int
	Position V
	Velocity V
	Radius   float64
	Pressure float64
	Tint     colorful.Color
}

func (b *Body[V]) Speed() float64 { return b.Velocity.Len() }

// Set is the ordered body collection owned by the simulation loop. Pointers
// returned by At and Pair are invalidated by Append and Remove.
type Set[V vec.Vector[V]] struct {
	bodies []Body[V]
	drop   []bool
}

func NewSet[V vec.Vector[V]](capacity int) *Set[V] {
	return &Set[V]{bodies: make([]Body[V], 0, capacity)}
}

func (s *Set[V]) Len() int { return len(s.bodies) }

// At returns a pointer to body i. It panics when i is out of range.
func (s *Set[V]) At(i int) *Body[V] { return &s.bodies[i] }

// All exposes the backing slice for read-mostly iteration.
func (s *Set[V]) All() []Body[V] { return s.bodies }

// Append adds b with ID set to the current count and returns that ID.
func (s *Set[V]) Append(b Body[V]) int {
	b.ID = len(s.bodies)
	s.bodies = append(s.bodies, b)
	return b.ID
}

// Pair borrows two distinct bodies from the set at once.
func (s *Set[V]) Pair(i, j int) (*Body[V], *Body[V], error) {
	if i == j {
		return nil, nil, fmt.Errorf("%w: %d", ErrSameBody, i)
	}
	if i < 0 || i >= len(s.bodies) || j < 0 || j >= len(s.bodies) {
		return nil, nil, fmt.Errorf("%w: (%d, %d) with %d bodies", ErrOutOfRange, i, j, len(s.bodies))
	}
	return &s.bodies[i], &s.bodies[j], nil
}

// Remove deletes the bodies at the given indices, keeps the survivors in their
// original order and reassigns contiguous IDs. Duplicate and out of range
// indices are ignored. It returns the number of bodies removed.
func (s *Set[V]) Remove(indices ...int) int {
	if len(indices) == 0 {
		return 0
	}
	if cap(s.drop) < len(s.bodies) {
		s.drop = make([]bool, len(s.bodies))
	}
	drop := s.drop[:len(s.bodies)]
	clear(drop)

	removed := 0
	for _, i := range indices {
		if i < 0 || i >= len(s.bodies) || drop[i] {
			continue
		}
		drop[i] = true
		removed++
	}
	if removed == 0 {
		return 0
	}

	kept := s.bodies[:0]
	for i := range s.bodies {
		if drop[i] {
			continue
		}
		b := s.bodies[i]
		b.ID = len(kept)
		kept = append(kept, b)
	}
	s.bodies = kept
	return removed
}

// RemoveWithin deletes every body whose center is closer than dist to p.
func (s *Set[V]) RemoveWithin(p V, dist float64) int {
	var hits []int
	for i := range s.bodies {
		if vec.Distance(s.bodies[i].Position, p) < dist {
			hits = append(hits, i)
		}
	}
	return s.Remove(hits...)
}
