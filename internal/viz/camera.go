package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/ballsim/internal/vec"
)

const (
	minZoom = 0.2
	maxZoom = 8
)

// Camera orbits the center of a 3-D domain and projects it onto the canvas
// with a simple perspective divide.
type Camera struct {
	Yaw, Pitch float64
	Zoom       float64
	// Distance is the eye distance in domain diagonals.
	Distance float64
}

func NewCamera() *Camera {
	return &Camera{Yaw: 0.5, Pitch: 0.35, Zoom: 1, Distance: 2}
}

func (c *Camera) Orbit(dyaw, dpitch float64) {
	c.Yaw += dyaw
	c.Pitch = max(-math.Pi/2, min(c.Pitch+dpitch, math.Pi/2))
}

func (c *Camera) ZoomIn()  { c.Zoom = min(maxZoom, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = max(minZoom, c.Zoom/1.2) }

// Project maps p inside a domain of the given extent to dot coordinates on
// a w x h canvas. depth grows away from the eye; ok is false behind it.
func (c *Camera) Project(p, extent vec.Vec3, w, h int) (x, y int, depth, scale float64, ok bool) {
	diag := extent.Len()
	if diag == 0 {
		return 0, 0, 0, 0, false
	}
	rot := mgl64.Rotate3DX(c.Pitch).Mul3(mgl64.Rotate3DY(c.Yaw))
	q := rot.Mul3x1(p.Sub(extent.Mul(0.5)).Mgl().Mul(1 / diag))

	eye := c.Distance
	if q.Z() >= eye {
		return 0, 0, 0, 0, false
	}
	scale = eye / (eye - q.Z()) * c.Zoom * float64(min(w, h))
	x = int(q.X()*scale) + w/2
	// domain y points down, like screen y
	y = int(q.Y()*scale) + h/2
	return x, y, eye - q.Z(), scale / diag, true
}
