// Package vec provides the fixed-arity coordinate types shared by the 2-D
// and 3-D simulations.
//
// Every component of the collision pipeline is written once against the
// [Vector] constraint and instantiated with either [Vec2] or [Vec3]:
//
//	grid := spatial.New[vec.Vec2](22)
//	grid.Insert(vec.Vec2{10, 20}, 0)
package vec

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector is the self-referential constraint implemented by Vec2 and Vec3.
type Vector[V any] interface {
	Add(o V) V
	Sub(o V) V
	Mul(c float64) V
	Dot(o V) float64
	Len() float64
	Dim() int
	At(axis int) float64
	With(axis int, x float64) V
}

// Vec2 is a 2-D coordinate. Axis 1 points down the screen.
type Vec2 mgl64.Vec2

func (v Vec2) Add(o Vec2) Vec2     { return Vec2(mgl64.Vec2(v).Add(mgl64.Vec2(o))) }
func (v Vec2) Sub(o Vec2) Vec2     { return Vec2(mgl64.Vec2(v).Sub(mgl64.Vec2(o))) }
func (v Vec2) Mul(c float64) Vec2  { return Vec2(mgl64.Vec2(v).Mul(c)) }
func (v Vec2) Dot(o Vec2) float64  { return mgl64.Vec2(v).Dot(mgl64.Vec2(o)) }
func (v Vec2) Len() float64        { return mgl64.Vec2(v).Len() }
func (v Vec2) Dim() int            { return 2 }
func (v Vec2) At(axis int) float64 { return v[axis] }
func (v Vec2) With(axis int, x float64) Vec2 {
	v[axis] = x
	return v
}

// Vec3 is a 3-D coordinate. Axis 1 is the vertical (gravity) axis.
type Vec3 mgl64.Vec3

func (v Vec3) Add(o Vec3) Vec3     { return Vec3(mgl64.Vec3(v).Add(mgl64.Vec3(o))) }
func (v Vec3) Sub(o Vec3) Vec3     { return Vec3(mgl64.Vec3(v).Sub(mgl64.Vec3(o))) }
func (v Vec3) Mul(c float64) Vec3  { return Vec3(mgl64.Vec3(v).Mul(c)) }
func (v Vec3) Dot(o Vec3) float64  { return mgl64.Vec3(v).Dot(mgl64.Vec3(o)) }
func (v Vec3) Len() float64        { return mgl64.Vec3(v).Len() }
func (v Vec3) Dim() int            { return 3 }
func (v Vec3) At(axis int) float64 { return v[axis] }
func (v Vec3) Mgl() mgl64.Vec3     { return mgl64.Vec3(v) }
func (v Vec3) With(axis int, x float64) Vec3 {
	v[axis] = x
	return v
}

// Distance returns the Euclidean distance between a and b.
func Distance[V Vector[V]](a, b V) float64 {
	return b.Sub(a).Len()
}

// ClampLength scales v down to length limit when it is longer.
func ClampLength[V Vector[V]](v V, limit float64) V {
	l := v.Len()
	if l <= limit || l == 0 {
		return v
	}
	return v.Mul(limit / l)
}

// FromSlice builds a vector from the leading components of xs. Missing
// components stay zero.
func FromSlice[V Vector[V]](xs []float64) V {
	var v V
	for axis := 0; axis < v.Dim() && axis < len(xs); axis++ {
		v = v.With(axis, xs[axis])
	}
	return v
}

// Slice returns the components of v.
func Slice[V Vector[V]](v V) []float64 {
	out := make([]float64, v.Dim())
	for axis := range out {
		out[axis] = v.At(axis)
	}
	return out
}

// IsFinite reports whether every component is neither NaN nor Inf.
func IsFinite[V Vector[V]](v V) bool {
	for axis := 0; axis < v.Dim(); axis++ {
		x := v.At(axis)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
