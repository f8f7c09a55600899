package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/ballsim/internal/vec"
)

// RunConfig drives a headless run.
type RunConfig struct {
	Frames int
	Dt     float64
	// Measure feeds the wall-clock frame rate to the step controller instead
	// of 1/Dt.
	Measure bool
}

// Script supplies the input of a frame. A nil Script means no input.
type Script[V vec.Vector[V]] func(frame int) Input[V]

// Run advances w for cfg.Frames frames and returns the stats of the last
// one. It stops early with the context error when ctx is done.
func Run[V vec.Vector[V]](ctx context.Context, w *World[V], cfg RunConfig, script Script[V]) (Stats, error) {
	if cfg.Frames <= 0 {
		return Stats{}, fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}

	var last Stats
	prev := time.Now()
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return last, ctx.Err()
		default:
		}

		var in Input[V]
		if script != nil {
			in = script(i)
		}
		in.Dt = cfg.Dt
		if cfg.Measure {
			now := time.Now()
			if elapsed := now.Sub(prev).Seconds(); elapsed > 0 && i > 0 {
				in.FrameRate = 1 / elapsed
			}
			prev = now
		}

		last = w.Frame(in).Stats
	}
	return last, nil
}
