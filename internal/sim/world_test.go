package sim

import (
	"context"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/control"
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/vec"
)

func params2D(cfg *config.Config) Params[vec.Vec2] {
	p, err := ParamsFromConfig[vec.Vec2](cfg)
	Expect(err).NotTo(HaveOccurred())
	return p
}

func params3D(cfg *config.Config) Params[vec.Vec3] {
	cfg.Dimensions = 3
	p, err := ParamsFromConfig[vec.Vec3](cfg)
	Expect(err).NotTo(HaveOccurred())
	return p
}

func smallConfig(bodies int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.BodyCount = bodies
	cfg.Width, cfg.Height, cfg.Depth = 400, 300, 200
	cfg.SimSteps = 4
	return cfg
}

func expectContained[V vec.Vector[V]](w *World[V]) {
	for i := range w.Bodies().All() {
		b := w.Bodies().At(i)
		Expect(physics.Contained(b, w.Params().Extent)).To(BeTrue(),
			"body %d at %v escaped the domain", i, vec.Slice(b.Position))
	}
}

func expectPressureBound[V vec.Vector[V]](w *World[V]) {
	for _, b := range w.Bodies().All() {
		Expect(b.Pressure).To(BeNumerically(">=", 0))
		Expect(b.Pressure).To(BeNumerically("<=", w.Params().MaxPressure))
	}
}

func expectContiguousIDs[V vec.Vector[V]](w *World[V]) {
	for i, b := range w.Bodies().All() {
		Expect(b.ID).To(Equal(i))
	}
}

var _ = Describe("ParamsFromConfig", func() {
	It("copies the config", func() {
		p := params2D(config.DefaultConfig())
		Expect(p.Extent).To(Equal(vec.Vec2{1200, 800}))
		Expect(p.CellSize).To(Equal(22.0))
		Expect(p.Bounce).To(Equal(0.6))
	})

	It("rejects a dimension mismatch", func() {
		_, err := ParamsFromConfig[vec.Vec3](config.DefaultConfig())
		Expect(err).To(MatchError(ErrDimension))
	})
})

var _ = Describe("Mode", func() {
	It("cycles normal, velocity, pressure", func() {
		Expect(Normal.Next()).To(Equal(Velocity))
		Expect(Velocity.Next()).To(Equal(Pressure))
		Expect(Pressure.Next()).To(Equal(Normal))
		Expect(Pressure.String()).To(Equal("pressure"))
	})
})

var _ = Describe("Colors", func() {
	It("maps a zero peak to the cold end", func() {
		Expect(VelocityColor(5, 0)).To(Equal(coldColor))
		Expect(PressureColor(5, 0)).To(Equal(coldColor))
	})

	It("reaches the hot end at the peak", func() {
		c := VelocityColor(10, 10)
		Expect(c.G).To(BeNumerically("~", 1, 1e-12))
		Expect(c.B).To(BeNumerically("~", 0, 1e-12))

		c = PressureColor(0.5, 1)
		Expect(c.R).To(BeNumerically("~", 0.5, 1e-12))
		Expect(c.B).To(BeNumerically("~", 0.5, 1e-12))
	})
})

var _ = Describe("World", func() {
	Describe("containment", func() {
		It("keeps every 2-D body inside the domain after each frame", func() {
			w := NewWorld(params2D(smallConfig(250)))
			rng := rand.New(rand.NewSource(7))
			for f := 0; f < 60; f++ {
				in := Input[vec.Vec2]{
					Pointer: vec.Vec2{rng.Float64() * 400, rng.Float64() * 300},
					Attract: f%3 == 0,
					Spawn:   f%5 == 0,
					Dt:      1.0 / 60,
				}
				w.Frame(in)
				expectContained(w)
				expectPressureBound(w)
			}
		})

		It("keeps every 3-D body inside the domain after each frame", func() {
			w := NewWorld(params3D(smallConfig(200)))
			for f := 0; f < 40; f++ {
				w.Frame(Input[vec.Vec3]{Pointer: vec.Vec3{200, 150, 100}, Attract: true, Dt: 1.0 / 30})
				expectContained(w)
				expectPressureBound(w)
			}
		})

		It("resolves every grid candidate while bodies are spawned and deleted", func() {
			cfg := smallConfig(400)
			cfg.Width, cfg.Height = 200, 150
			w := NewWorld(params2D(cfg))
			for f := 0; f < 30; f++ {
				in := Input[vec.Vec2]{
					Pointer: vec.Vec2{100, 75},
					Spawn:   true,
					Delete:  f%4 == 3,
					Dt:      1.0 / 60,
				}
				Expect(func() { w.Frame(in) }).NotTo(Panic())
				expectContiguousIDs(w)
			}
		})

		It("survives a non-positive dt", func() {
			w := NewWorld(params2D(smallConfig(50)))
			snap := w.Frame(Input[vec.Vec2]{Dt: -1})
			Expect(snap.Dt).To(Equal(0.01))
			expectContained(w)
		})
	})

	Describe("settling under gravity", func() {
		It("comes to rest on the floor with shrinking rebounds", func() {
			cfg := config.DefaultConfig()
			cfg.BodyCount = 0
			cfg.Width, cfg.Height = 100, 500
			w := NewWorld(params2D(cfg))
			w.Add(vec.Vec2{50, 0}, vec.Vec2{})

			var rebounds []float64
			prevVy := 0.0
			for f := 0; f < 2000; f++ {
				w.Frame(Input[vec.Vec2]{Dt: 1.0 / 60})
				vy := w.Bodies().At(0).Velocity[1]
				if prevVy > 0 && vy < 0 {
					rebounds = append(rebounds, -vy)
				}
				prevVy = vy
			}

			Expect(w.Bodies().At(0).Position[1]).To(BeNumerically("~", 490, 1e-6))
			Expect(len(rebounds)).To(BeNumerically(">=", 5))
			for i := 1; i < len(rebounds); i++ {
				Expect(rebounds[i]).To(BeNumerically("<", rebounds[i-1]))
			}
		})
	})

	Describe("spawn and remove", func() {
		var w *World[vec.Vec2]

		BeforeEach(func() {
			w = NewWorld(params2D(smallConfig(10)))
		})

		It("gives a spawned body the next id", func() {
			Expect(w.Spawn(vec.Vec2{100, 100})).To(Equal(10))
			Expect(w.Bodies().Len()).To(Equal(11))
		})

		It("renumbers survivors in order", func() {
			before := append([]vec.Vec2(nil), positions(w)...)
			Expect(w.Bodies().Remove(2, 5)).To(Equal(2))

			Expect(w.Bodies().Len()).To(Equal(8))
			expectContiguousIDs(w)

			var want []vec.Vec2
			for i, p := range before {
				if i != 2 && i != 5 {
					want = append(want, p)
				}
			}
			Expect(positions(w)).To(Equal(want))
		})

		It("spawns at the pointer on a held button", func() {
			snap := w.Frame(Input[vec.Vec2]{Pointer: vec.Vec2{200, 150}, Spawn: true, Dt: 1.0 / 60})
			Expect(snap.Bodies).To(HaveLen(11))
			Expect(snap.Bodies[10].ID).To(Equal(10))
		})

		It("deletes bodies near the pointer", func() {
			cfg := smallConfig(0)
			cfg.Gravity = 0
			cfg.SpawnSpeed = 0
			w = NewWorld(params2D(cfg))
			for _, x := range []float64{100, 125, 300, 75} {
				w.Add(vec.Vec2{x, 150}, vec.Vec2{})
			}

			snap := w.Frame(Input[vec.Vec2]{Pointer: vec.Vec2{100, 150}, Delete: true, Dt: 1.0 / 60})
			Expect(snap.Bodies).To(HaveLen(1))
			Expect(snap.Bodies[0].ID).To(Equal(0))
			Expect(snap.Bodies[0].Position[0]).To(BeNumerically("~", 300, 1e-9))
		})
	})

	Describe("step control", func() {
		It("stays within bounds under manual requests", func() {
			cfg := smallConfig(5)
			cfg.AutoSimSteps = false
			w := NewWorld(params2D(cfg))
			for f := 0; f < 300; f++ {
				w.Frame(Input[vec.Vec2]{StepUp: true, Dt: 1.0 / 60})
			}
			Expect(w.SimSteps()).To(Equal(control.MaxSteps))
			for f := 0; f < 300; f++ {
				w.Frame(Input[vec.Vec2]{StepDown: true, Dt: 1.0 / 60})
			}
			Expect(w.SimSteps()).To(Equal(control.MinSteps))
		})

		It("backs off while the frame rate is low", func() {
			w := NewWorld(params2D(smallConfig(5)))
			Expect(w.AutoSteps()).To(BeTrue())
			for f := 0; f < 50; f++ {
				w.Frame(Input[vec.Vec2]{Dt: 1.0 / 60, FrameRate: 20})
			}
			Expect(w.SimSteps()).To(Equal(control.MinSteps))
		})

		It("climbs while the frame rate is high", func() {
			w := NewWorld(params2D(smallConfig(5)))
			for f := 0; f < 10; f++ {
				w.Frame(Input[vec.Vec2]{Dt: 1.0 / 60, FrameRate: 500})
			}
			Expect(w.SimSteps()).To(Equal(4 + 10))
		})

		It("derives the frame rate from dt", func() {
			w := NewWorld(params2D(smallConfig(5)))
			snap := w.Frame(Input[vec.Vec2]{Dt: 0.02})
			Expect(snap.FrameRate).To(BeNumerically("~", 50, 1e-9))
			Expect(snap.FPS).To(BeNumerically("~", 50, 1e-9))
		})

		It("can switch to manual at runtime", func() {
			w := NewWorld(params2D(smallConfig(5)))
			w.SetAutoSteps(false)
			Expect(w.AutoSteps()).To(BeFalse())
			w.Frame(Input[vec.Vec2]{Dt: 1.0 / 60, FrameRate: 1})
			Expect(w.SimSteps()).To(Equal(4))
		})
	})

	Describe("toggles", func() {
		It("flips gravity and cycles the display mode", func() {
			w := NewWorld(params2D(smallConfig(5)))
			snap := w.Frame(Input[vec.Vec2]{ToggleGravity: true, CycleDisplay: true, Dt: 1.0 / 60})
			Expect(snap.Gravity).To(BeFalse())
			Expect(snap.Mode).To(Equal(Velocity))

			snap = w.Frame(Input[vec.Vec2]{CycleDisplay: true, Dt: 1.0 / 60})
			Expect(snap.Mode).To(Equal(Pressure))
			snap = w.Frame(Input[vec.Vec2]{CycleDisplay: true, Dt: 1.0 / 60})
			Expect(snap.Mode).To(Equal(Normal))
		})

		It("colors the fastest body green in velocity mode", func() {
			cfg := smallConfig(0)
			cfg.Gravity = 0
			w := NewWorld(params2D(cfg))
			w.Add(vec.Vec2{50, 50}, vec.Vec2{10, 0})
			w.Add(vec.Vec2{300, 200}, vec.Vec2{100, 0})

			snap := w.Frame(Input[vec.Vec2]{CycleDisplay: true, Dt: 1.0 / 60})
			Expect(snap.Bodies[1].Color.G).To(BeNumerically("~", 1, 1e-12))
			Expect(snap.Bodies[0].Color.G).To(BeNumerically("<", 1))
		})

		It("uses the intrinsic tint in normal mode", func() {
			w := NewWorld(params2D(smallConfig(3)))
			snap := w.Frame(Input[vec.Vec2]{Dt: 1.0 / 60})
			for i, v := range snap.Bodies {
				Expect(v.Color).To(Equal(w.Bodies().At(i).Tint))
			}
		})
	})

	Describe("observers and snapshots", func() {
		It("notifies observers once per frame", func() {
			w := NewWorld(params2D(smallConfig(5)))
			var frames []int
			w.AddObserver(ObserverFunc(func(s Stats) { frames = append(frames, s.Frame) }))
			for f := 0; f < 3; f++ {
				w.Frame(Input[vec.Vec2]{Dt: 1.0 / 60})
			}
			Expect(frames).To(Equal([]int{1, 2, 3}))
		})

		It("clones bodies out of the reused buffer", func() {
			w := NewWorld(params2D(smallConfig(5)))
			kept := w.Frame(Input[vec.Vec2]{Dt: 1.0 / 60}).Clone()
			first := kept.Bodies[0].Position
			w.Frame(Input[vec.Vec2]{Dt: 1.0 / 60})
			Expect(kept.Bodies[0].Position).To(Equal(first))
		})
	})
})

var _ = Describe("Run", func() {
	It("advances the requested number of frames", func() {
		w := NewWorld(params2D(smallConfig(20)))
		stats, err := Run(context.Background(), w, RunConfig{Frames: 12, Dt: 1.0 / 60}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Frame).To(Equal(12))
		Expect(stats.Bodies).To(Equal(20))
	})

	It("feeds the script input", func() {
		w := NewWorld(params2D(smallConfig(0)))
		script := func(frame int) Input[vec.Vec2] {
			return Input[vec.Vec2]{Pointer: vec.Vec2{200, 150}, Spawn: frame < 4}
		}
		stats, err := Run(context.Background(), w, RunConfig{Frames: 8, Dt: 1.0 / 60}, script)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Bodies).To(Equal(4))
	})

	It("stops on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		w := NewWorld(params2D(smallConfig(5)))
		_, err := Run(ctx, w, RunConfig{Frames: 10, Dt: 1.0 / 60}, nil)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("rejects a non-positive frame count", func() {
		w := NewWorld(params2D(smallConfig(5)))
		_, err := Run(context.Background(), w, RunConfig{}, nil)
		Expect(err).To(HaveOccurred())
	})

	It("measures wall-clock frame rate when asked", func() {
		w := NewWorld(params2D(smallConfig(5)))
		stats, err := Run(context.Background(), w, RunConfig{Frames: 5, Dt: 1.0 / 60, Measure: true}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.FrameRate).To(BeNumerically(">", 0))
	})
})

var _ = Describe("Ensemble", func() {
	It("runs one world per seed", func() {
		e := NewEnsemble(params2D(smallConfig(30)), 3)
		results, err := e.Run(context.Background(), RunConfig{Frames: 5, Dt: 1.0 / 60})
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		for _, s := range results {
			Expect(s.Frame).To(Equal(5))
			Expect(s.Bodies).To(Equal(30))
		}
	})
})

func positions(w *World[vec.Vec2]) []vec.Vec2 {
	var out []vec.Vec2
	for _, b := range w.Bodies().All() {
		out = append(out, b.Position)
	}
	return out
}
