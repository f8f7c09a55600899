package gui

import (
	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/vec"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColText    = rl.NewColor(200, 200, 200, 255)
	ColTextDim = rl.NewColor(90, 90, 90, 255)
	ColWire    = rl.NewColor(70, 70, 90, 255)
	ColCursor  = rl.NewColor(255, 255, 255, 90)
)

const (
	maxWindowWidth  = 1280
	maxWindowHeight = 800
)

// Options configure the window host.
type Options struct {
	Title     string
	TargetFPS int32
	Logger    *log.Logger
}

// App draws one world in a raylib window. 2-D worlds are drawn as circles
// scaled to the window; 3-D worlds as spheres inside a wire box under an
// orbiting camera.
type App[V vec.Vector[V]] struct {
	World  *sim.World[V]
	Camera rl.Camera3D
	Snap   sim.Snapshot[V]

	width, height int32
	scale         float64
	pointer       V
	attract       bool
	logger        *log.Logger
}

// Run opens the window and blocks until it is closed or Q is pressed.
func Run[V vec.Vector[V]](w *sim.World[V], opts Options) {
	if opts.Title == "" {
		opts.Title = "ballsim"
	}
	if opts.TargetFPS <= 0 {
		opts.TargetFPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	app := NewApp(w, opts.Logger)
	rl.InitWindow(app.width, app.height, opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(opts.TargetFPS)
	rl.SetExitKey(0)

	app.logger.Info("window opened", "width", app.width, "height", app.height, "dims", app.dims())
	app.RunLoop()
	app.logger.Info("window closed", "frames", app.Snap.Frame, "bodies", app.Snap.Stats.Bodies)
}

func NewApp[V vec.Vector[V]](w *sim.World[V], logger *log.Logger) *App[V] {
	ext := w.Params().Extent
	a := &App[V]{World: w, pointer: ext.Mul(0.5), logger: logger}
	if ext.Dim() == 2 {
		a.width, a.height, a.scale = FitWindow(ext.At(0), ext.At(1), maxWindowWidth, maxWindowHeight)
	} else {
		a.width, a.height, a.scale = maxWindowWidth, maxWindowHeight, 1
		a.Camera = orbitCamera(vec.Vec3{ext.At(0), ext.At(1), ext.At(2)})
	}
	return a
}

func (a *App[V]) dims() int { return a.World.Params().Extent.Dim() }

func (a *App[V]) RunLoop() {
	for !rl.WindowShouldClose() && !rl.IsKeyPressed(rl.KeyQ) {
		a.Update()
		a.Draw()
	}
}

// Update samples input and advances the world by one frame.
func (a *App[V]) Update() {
	if a.dims() == 3 {
		rl.UpdateCamera(&a.Camera, rl.CameraOrbital)
	}
	a.pointer = a.mousePointer()
	a.attract = rl.IsMouseButtonDown(rl.MouseLeftButton)

	if rl.IsKeyPressed(rl.KeyA) {
		a.World.SetAutoSteps(!a.World.AutoSteps())
		a.logger.Debug("step control", "auto", a.World.AutoSteps())
	}

	snap := a.World.Frame(sim.Input[V]{
		Pointer:       a.pointer,
		Attract:       a.attract,
		Spawn:         rl.IsMouseButtonDown(rl.MouseRightButton),
		ToggleGravity: rl.IsKeyPressed(rl.KeySpace),
		CycleDisplay:  rl.IsKeyPressed(rl.KeyD),
		StepUp:        rl.IsKeyPressed(rl.KeyUp),
		StepDown:      rl.IsKeyPressed(rl.KeyDown),
		Delete:        rl.IsKeyPressed(rl.KeyF),
		Dt:            float64(rl.GetFrameTime()),
	})
	a.Snap = snap
}

// mousePointer maps the mouse to the domain. In 3-D the mouse ray is cut
// with the plane through the domain center facing the camera axis z.
func (a *App[V]) mousePointer() V {
	m := rl.GetMousePosition()
	if a.dims() == 2 {
		return ScreenToDomain[V](float64(m.X), float64(m.Y), a.scale)
	}
	ext := a.World.Params().Extent
	ray := rl.GetMouseRay(m, a.Camera)
	p, ok := RayPlaneZ(
		vec.Vec3{float64(ray.Position.X), float64(ray.Position.Y), float64(ray.Position.Z)},
		vec.Vec3{float64(ray.Direction.X), float64(ray.Direction.Y), float64(ray.Direction.Z)},
		ext.At(2)/2,
	)
	if !ok {
		return a.pointer
	}
	return a.pointer.With(0, p[0]).With(1, p[1])
}

func (a *App[V]) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	if a.dims() == 2 {
		a.draw2D()
	} else {
		a.draw3D()
	}
	a.DrawHUD()
	rl.EndDrawing()
}
