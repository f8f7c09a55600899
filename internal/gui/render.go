package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/ballsim/internal/vec"
)

func ToColor(c colorful.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, 255)
}

func (a *App[V]) draw2D() {
	s := float32(a.scale)
	for _, b := range a.Snap.Bodies {
		pos := rl.NewVector2(float32(b.Position.At(0))*s, float32(b.Position.At(1))*s)
		rl.DrawCircleV(pos, float32(b.Radius)*s, ToColor(b.Color))
	}
	if a.attract {
		x, y := int32(a.pointer.At(0)*a.scale), int32(a.pointer.At(1)*a.scale)
		rl.DrawCircleLines(x, y, float32(a.World.Params().DeleteDist)*s, ColCursor)
	}
}

func (a *App[V]) draw3D() {
	ext := a.World.Params().Extent
	center := rl.NewVector3(float32(ext.At(0)/2), float32(ext.At(1)/2), float32(ext.At(2)/2))

	rl.BeginMode3D(a.Camera)
	rl.DrawCubeWires(center, float32(ext.At(0)), float32(ext.At(1)), float32(ext.At(2)), ColWire)
	for _, b := range a.Snap.Bodies {
		pos := rl.NewVector3(float32(b.Position.At(0)), float32(b.Position.At(1)), float32(b.Position.At(2)))
		rl.DrawSphereEx(pos, float32(b.Radius), 6, 6, ToColor(b.Color))
	}
	if a.attract {
		p := rl.NewVector3(float32(a.pointer.At(0)), float32(a.pointer.At(1)), float32(a.pointer.At(2)))
		rl.DrawSphereWires(p, float32(a.World.Params().DeleteDist), 8, 8, ColCursor)
	}
	rl.EndMode3D()
}

// DrawHUD is the frame rate, step and body overlay.
func (a *App[V]) DrawHUD() {
	st := a.Snap.Stats
	policy := "manual"
	if a.World.AutoSteps() {
		policy = "auto"
	}
	gravity := "off"
	if st.Gravity {
		gravity = "on"
	}
	rl.DrawText(fmt.Sprintf("FPS: %.0f", st.FPS), 10, 10, 20, ColText)
	rl.DrawText(fmt.Sprintf("SIM STEPS: %d (%s)", st.SimSteps, policy), 10, 34, 20, ColText)
	rl.DrawText(fmt.Sprintf("BALLS: %d", st.Bodies), 10, 58, 20, ColText)
	rl.DrawText(fmt.Sprintf("MODE: %s  GRAVITY: %s", st.Mode, gravity), 10, 82, 20, ColText)
	rl.DrawText("[LMB] ATTRACT [RMB] SPAWN [SPACE] GRAVITY [D] MODE [UP/DOWN] STEPS [A] AUTO [F] DELETE [Q] QUIT",
		10, a.height-24, 14, ColTextDim)
}

func orbitCamera(ext vec.Vec3) rl.Camera3D {
	center := rl.NewVector3(float32(ext[0]/2), float32(ext[1]/2), float32(ext[2]/2))
	d := float32(ext.Len())
	return rl.NewCamera3D(
		rl.NewVector3(center.X+d*0.6, center.Y-d*0.4, center.Z+d*0.9),
		center,
		// domain y points down
		rl.NewVector3(0, -1, 0),
		45,
		rl.CameraPerspective,
	)
}
