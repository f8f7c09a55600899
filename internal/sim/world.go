package sim

import (
	"math/rand"

	"github.com/san-kum/ballsim/internal/body"
	"github.com/san-kum/ballsim/internal/control"
	"github.com/san-kum/ballsim/internal/integrators"
	"github.com/san-kum/ballsim/internal/metrics"
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/spatial"
	"github.com/san-kum/ballsim/internal/vec"
)

// World owns the bodies and all frame state of one simulation. It is not
// safe for concurrent use.
type World[V vec.Vector[V]] struct {
	params   Params[V]
	response physics.Response

	bodies *body.Set[V]
	grid   *spatial.Grid[V]
	euler  *integrators.Euler[V]
	steps  *control.StepController
	fps    *metrics.SmoothedFPS
	speed  *metrics.Peak
	press  *metrics.Peak
	rng    *rand.Rand

	mode    Mode
	gravity bool
	frame   int

	observers []Observer
	nearby    []int
	views     []BodyView[V]
	last      Snapshot[V]
}

// NewWorld builds a world and populates it with p.BodyCount bodies.
func NewWorld[V vec.Vector[V]](p Params[V]) *World[V] {
	w := &World[V]{
		params:   p,
		response: physics.Response{Bounce: p.Bounce, MaxPressure: p.MaxPressure},
		bodies:   body.NewSet[V](p.BodyCount),
		grid:     spatial.New[V](p.CellSize),
		euler:    integrators.NewEuler[V](p.Gravity, p.Attraction, p.Resistance, p.MaxSpeed),
		steps:    control.NewStepController(p.SimSteps, nil),
		fps:      metrics.NewSmoothedFPS(),
		speed:    metrics.NewPeak("peak_speed"),
		press:    metrics.NewPeak("peak_pressure"),
		rng:      rand.New(rand.NewSource(p.Seed)),
		gravity:  true,
		nearby:   make([]int, 0, 32),
	}
	w.SetAutoSteps(p.AutoSimSteps)
	w.Populate(p.BodyCount)
	return w
}

// Populate appends n bodies at uniformly random positions inside the domain
// with random velocities up to SpawnSpeed per axis.
func (w *World[V]) Populate(n int) {
	r := w.params.BodyRadius
	for i := 0; i < n; i++ {
		var pos V
		for axis := 0; axis < pos.Dim(); axis++ {
			lo, hi := r, w.params.Extent.At(axis)-r
			pos = pos.With(axis, lo+w.rng.Float64()*(hi-lo))
		}
		w.Add(pos, w.randomVelocity())
	}
}

// Add appends one body of the configured radius and returns its ID.
func (w *World[V]) Add(pos, vel V) int {
	return w.bodies.Append(body.Body[V]{
		Position: pos,
		Velocity: vel,
		Radius:   w.params.BodyRadius,
		Tint:     RandomTint(w.rng),
	})
}

// Spawn adds a body at p with a random velocity.
func (w *World[V]) Spawn(p V) int {
	return w.Add(p, w.randomVelocity())
}

// RemoveNear deletes every body closer than DeleteDist to p and reports how
// many were removed. Survivors are renumbered in order.
func (w *World[V]) RemoveNear(p V) int {
	return w.bodies.RemoveWithin(p, w.params.DeleteDist)
}

func (w *World[V]) randomVelocity() V {
	var v V
	s := w.params.SpawnSpeed
	for axis := 0; axis < v.Dim(); axis++ {
		v = v.With(axis, (w.rng.Float64()*2-1)*s)
	}
	return v
}

// SetAutoSteps switches between frame-rate driven and manual step control.
func (w *World[V]) SetAutoSteps(auto bool) {
	if auto {
		w.steps.SetPolicy(control.NewAuto(w.params.TargetFPS, w.params.FPSBoundary))
		return
	}
	w.steps.SetPolicy(control.NewManual())
}

func (w *World[V]) AutoSteps() bool        { return w.steps.Policy().Name() == "auto" }
func (w *World[V]) Params() Params[V]      { return w.params }
func (w *World[V]) Bodies() *body.Set[V]   { return w.bodies }
func (w *World[V]) Grid() *spatial.Grid[V] { return w.grid }
func (w *World[V]) Mode() Mode             { return w.mode }
func (w *World[V]) Gravity() bool          { return w.gravity }
func (w *World[V]) SimSteps() int          { return w.steps.Steps() }
func (w *World[V]) SmoothedFPS() float64   { return w.fps.Value() }

// Last returns the snapshot of the most recent frame, sharing its Bodies
// with the world.
func (w *World[V]) Last() Snapshot[V] { return w.last }

func (w *World[V]) AddObserver(o Observer) { w.observers = append(w.observers, o) }

// Frame advances the world by one displayed frame.
func (w *World[V]) Frame(in Input[V]) Snapshot[V] {
	if in.ToggleGravity {
		w.gravity = !w.gravity
	}
	if in.CycleDisplay {
		w.mode = w.mode.Next()
	}
	if in.Spawn {
		w.Spawn(in.Pointer)
	}

	w.rebuildGrid()
	for s := 0; s < w.steps.Steps(); s++ {
		w.collidePass()
	}

	dt := integrators.EffectiveDt(in.Dt)
	drive := integrators.Drive[V]{Gravity: w.gravity, Attract: in.Attract, Pointer: in.Pointer}
	bodies := w.bodies.All()
	for i := range bodies {
		w.euler.Step(&bodies[i], drive, dt)
		physics.Clamp(&bodies[i], w.params.Extent, w.params.Bounce)
	}

	if in.Delete {
		w.RemoveNear(in.Pointer)
	}

	rate := in.FrameRate
	if rate <= 0 {
		rate = 1 / dt
	}
	w.fps.Observe(rate)
	w.steps.Update(w.fps.Value(), control.Request{Up: in.StepUp, Down: in.StepDown})

	w.frame++
	snap := w.snapshot(dt, rate)
	w.last = snap
	for _, o := range w.observers {
		o.OnFrame(snap.Stats)
	}
	return snap
}

func (w *World[V]) rebuildGrid() {
	w.grid.Clear()
	for i, b := range w.bodies.All() {
		w.grid.Insert(b.Position, i)
	}
}

// collidePass is one sim step: every body against its grid candidates, then
// against the walls. The grid is not rebuilt between passes.
func (w *World[V]) collidePass() {
	bodies := w.bodies.All()
	for i := range bodies {
		w.nearby = w.grid.AppendNeighbors(w.nearby[:0], bodies[i].Position, i)
		for _, j := range w.nearby {
			// the grid indexes this set and excludes i, so a failure is a bug
			if _, err := physics.ResolvePair(w.bodies, i, j, w.response); err != nil {
				panic(err)
			}
		}
		physics.Clamp(&bodies[i], w.params.Extent, w.params.Bounce)
	}
}

func (w *World[V]) snapshot(dt, rate float64) Snapshot[V] {
	bodies := w.bodies.All()

	w.speed.Reset()
	w.press.Reset()
	for i := range bodies {
		w.speed.Observe(bodies[i].Speed())
		w.press.Observe(bodies[i].Pressure)
	}
	peakSpeed, peakPressure := w.speed.Value(), w.press.Value()

	w.views = w.views[:0]
	for i := range bodies {
		b := &bodies[i]
		view := BodyView[V]{ID: b.ID, Position: b.Position, Radius: b.Radius, Color: b.Tint}
		switch w.mode {
		case Velocity:
			view.Color = VelocityColor(b.Speed(), peakSpeed)
		case Pressure:
			view.Color = PressureColor(b.Pressure, peakPressure)
		}
		w.views = append(w.views, view)
	}

	return Snapshot[V]{
		Stats: Stats{
			Frame:        w.frame,
			Dt:           dt,
			FrameRate:    rate,
			FPS:          w.fps.Value(),
			SimSteps:     w.steps.Steps(),
			Bodies:       len(bodies),
			Mode:         w.mode,
			Gravity:      w.gravity,
			PeakSpeed:    peakSpeed,
			PeakPressure: peakPressure,
		},
		Extent: w.params.Extent,
		Bodies: w.views,
	}
}
