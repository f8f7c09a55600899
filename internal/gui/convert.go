package gui

import (
	"math"

	"github.com/san-kum/ballsim/internal/vec"
)

// FitWindow scales a w x h domain to the largest window within maxW x maxH
// that keeps its aspect ratio. Domains smaller than the limit are not
// enlarged.
func FitWindow(w, h float64, maxW, maxH int32) (int32, int32, float64) {
	scale := math.Min(1, math.Min(float64(maxW)/w, float64(maxH)/h))
	return int32(math.Round(w * scale)), int32(math.Round(h * scale)), scale
}

// ScreenToDomain maps a window pixel to a planar domain point.
func ScreenToDomain[V vec.Vector[V]](x, y, scale float64) V {
	var p V
	if scale <= 0 {
		return p
	}
	return p.With(0, x/scale).With(1, y/scale)
}

// RayPlaneZ intersects a ray with the plane z = planeZ. ok is false when the
// ray is parallel to the plane or points away from it.
func RayPlaneZ(origin, dir vec.Vec3, planeZ float64) (vec.Vec3, bool) {
	if dir[2] == 0 {
		return vec.Vec3{}, false
	}
	t := (planeZ - origin[2]) / dir[2]
	if t <= 0 {
		return vec.Vec3{}, false
	}
	return origin.Add(dir.Mul(t)), true
}
