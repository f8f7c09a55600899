package automation

import (
	"bytes"
	"context"
	"fmt"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/export"
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/vec"
	"gopkg.in/yaml.v3"
)

// Sweep runs one headless world per value of a config parameter.
type Sweep struct {
	Param  string
	Min    float64
	Max    float64
	Steps  int
	Frames int
}

type SweepResult struct {
	Value float64
	Final sim.Stats
}

// SetParam sets the config field with YAML name param to value and
// revalidates the config.
func SetParam(cfg *config.Config, param string, value float64) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fields := map[string]any{}
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return err
	}
	if _, ok := fields[param]; !ok {
		return fmt.Errorf("unknown parameter %q", param)
	}
	fields[param] = value

	if data, err = yaml.Marshal(fields); err != nil {
		return err
	}
	next := config.DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(next); err != nil {
		return fmt.Errorf("set %s=%g: %w", param, value, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*cfg = *next
	return nil
}

// RunSweep runs the sweep over copies of base.
func RunSweep(ctx context.Context, base *config.Config, sw Sweep) ([]SweepResult, error) {
	if sw.Steps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sw.Steps)
	}
	step := 0.0
	if sw.Steps > 1 {
		step = (sw.Max - sw.Min) / float64(sw.Steps-1)
	}

	results := make([]SweepResult, 0, sw.Steps)
	for i := 0; i < sw.Steps; i++ {
		val := sw.Min + float64(i)*step
		cfg := base.Clone()
		if err := SetParam(cfg, sw.Param, val); err != nil {
			return results, fmt.Errorf("sweep step %d: %w", i+1, err)
		}

		final, err := RunHeadless(ctx, cfg, sim.RunConfig{Frames: sw.Frames}, nil)
		if err != nil {
			return results, fmt.Errorf("sweep step %d: %w", i+1, err)
		}
		results = append(results, SweepResult{Value: val, Final: final})
	}
	return results, nil
}

// RunHeadless builds a world of the configured dimension and runs it with
// optional scripted input and observers. A zero rc.Dt means the configured
// frame rate.
func RunHeadless(ctx context.Context, cfg *config.Config, rc sim.RunConfig, s *Script, observers ...sim.Observer) (sim.Stats, error) {
	final, _, err := headless(ctx, cfg, rc, s, 0, observers)
	return final, err
}

// RunHeadlessSVG is RunHeadless that also draws the last frame as SVG at
// the given scale.
func RunHeadlessSVG(ctx context.Context, cfg *config.Config, rc sim.RunConfig, s *Script, scale float64, observers ...sim.Observer) (sim.Stats, string, error) {
	if scale <= 0 {
		scale = 1
	}
	return headless(ctx, cfg, rc, s, scale, observers)
}

func headless(ctx context.Context, cfg *config.Config, rc sim.RunConfig, s *Script, scale float64, observers []sim.Observer) (sim.Stats, string, error) {
	if rc.Dt == 0 {
		rc.Dt = 1 / cfg.FrameRate
	}
	if cfg.Dimensions == 3 {
		return runWorld[vec.Vec3](ctx, cfg, rc, s, scale, observers)
	}
	return runWorld[vec.Vec2](ctx, cfg, rc, s, scale, observers)
}

func runWorld[V vec.Vector[V]](ctx context.Context, cfg *config.Config, rc sim.RunConfig, s *Script, scale float64, observers []sim.Observer) (sim.Stats, string, error) {
	p, err := sim.ParamsFromConfig[V](cfg)
	if err != nil {
		return sim.Stats{}, "", err
	}
	w := sim.NewWorld(p)
	for _, o := range observers {
		w.AddObserver(o)
	}
	final, err := sim.Run(ctx, w, rc, Source(s, p.Extent.Mul(0.5)))
	if err != nil || scale == 0 {
		return final, "", err
	}
	return final, export.SnapshotSVG(w.Last(), scale), nil
}
