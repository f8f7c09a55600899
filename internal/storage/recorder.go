package storage

import (
	"github.com/san-kum/ballsim/internal/metrics"
	"github.com/san-kum/ballsim/internal/sim"
)

// FrameRecord is one row of frames.csv.
type FrameRecord struct {
	Frame        int
	Dt           float64
	FPS          float64
	SimSteps     int
	Bodies       int
	PeakSpeed    float64
	PeakPressure float64
}

// Recorder collects per-frame telemetry. It implements sim.Observer.
type Recorder struct {
	frames  []FrameRecord
	summary []metrics.Metric
	fps     *metrics.Mean
	steps   *metrics.Mean
	speed   *metrics.Peak
	press   *metrics.Peak
	target  *metrics.OnTarget
}

func NewRecorder(targetFPS float64) *Recorder {
	r := &Recorder{
		fps:    metrics.NewMean("mean_fps"),
		steps:  metrics.NewMean("mean_sim_steps"),
		speed:  metrics.NewPeak("peak_speed"),
		press:  metrics.NewPeak("peak_pressure"),
		target: metrics.NewOnTarget("on_target", targetFPS),
	}
	r.summary = []metrics.Metric{r.fps, r.steps, r.speed, r.press, r.target}
	return r
}

func (r *Recorder) OnFrame(s sim.Stats) {
	r.frames = append(r.frames, FrameRecord{
		Frame:        s.Frame,
		Dt:           s.Dt,
		FPS:          s.FPS,
		SimSteps:     s.SimSteps,
		Bodies:       s.Bodies,
		PeakSpeed:    s.PeakSpeed,
		PeakPressure: s.PeakPressure,
	})
	r.fps.Observe(s.FPS)
	r.steps.Observe(float64(s.SimSteps))
	r.speed.Observe(s.PeakSpeed)
	r.press.Observe(s.PeakPressure)
	r.target.Observe(s.FrameRate)
}

func (r *Recorder) Frames() []FrameRecord { return r.frames }

// Metrics returns the run summary keyed by metric name.
func (r *Recorder) Metrics() map[string]float64 {
	out := make(map[string]float64, len(r.summary))
	for _, m := range r.summary {
		out[m.Name()] = m.Value()
	}
	return out
}
