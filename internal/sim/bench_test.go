package sim

import (
	"testing"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/vec"
)

func benchmarkFrame[V vec.Vector[V]](b *testing.B, cfg *config.Config) {
	p, err := ParamsFromConfig[V](cfg)
	if err != nil {
		b.Fatal(err)
	}
	w := NewWorld(p)
	in := Input[V]{Dt: 1.0 / 60, FrameRate: 60}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Frame(in)
	}
}

func BenchmarkFrame2D(b *testing.B) {
	cfg := config.DefaultConfig()
	cfg.AutoSimSteps = false
	benchmarkFrame[vec.Vec2](b, cfg)
}

func BenchmarkFrame3D(b *testing.B) {
	cfg := config.GetPreset("cube")
	cfg.AutoSimSteps = false
	benchmarkFrame[vec.Vec3](b, cfg)
}
