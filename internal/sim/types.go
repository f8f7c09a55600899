package sim

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/vec"
)

var ErrDimension = errors.New("sim: config dimensions do not match vector type")

// Mode selects how body colors are computed.
type Mode uint8

const (
	Normal Mode = iota
	Velocity
	Pressure
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Velocity:
		return "velocity"
	case Pressure:
		return "pressure"
	}
	return "unknown"
}

// Next cycles Normal -> Velocity -> Pressure -> Normal.
func (m Mode) Next() Mode {
	return (m + 1) % 3
}

// Params is the immutable tuning of one world.
type Params[V vec.Vector[V]] struct {
	BodyCount    int
	BodyRadius   float64
	Gravity      float64
	Resistance   float64
	Bounce       float64
	MaxSpeed     float64
	MaxPressure  float64
	Extent       V
	SimSteps     int
	AutoSimSteps bool
	TargetFPS    float64
	FPSBoundary  float64
	DeleteDist   float64
	CellSize     float64
	Attraction   float64
	SpawnSpeed   float64
	Seed         int64
}

// ParamsFromConfig converts a validated config. The config dimensions must
// equal the dimension of V.
func ParamsFromConfig[V vec.Vector[V]](cfg *config.Config) (Params[V], error) {
	var zero V
	if cfg.Dimensions != zero.Dim() {
		return Params[V]{}, fmt.Errorf("%w: config has %d, world has %d", ErrDimension, cfg.Dimensions, zero.Dim())
	}
	return Params[V]{
		BodyCount:    cfg.BodyCount,
		BodyRadius:   cfg.BodyRadius,
		Gravity:      cfg.Gravity,
		Resistance:   cfg.Resistance,
		Bounce:       cfg.BounceAmount,
		MaxSpeed:     cfg.MaxSpeed,
		MaxPressure:  cfg.MaxPressure,
		Extent:       vec.FromSlice[V](cfg.Extents()),
		SimSteps:     cfg.SimSteps,
		AutoSimSteps: cfg.AutoSimSteps,
		TargetFPS:    cfg.TargetFPS,
		FPSBoundary:  cfg.FPSBoundary,
		DeleteDist:   cfg.DeleteDist,
		CellSize:     cfg.CellSize(),
		Attraction:   cfg.Attraction,
		SpawnSpeed:   cfg.SpawnSpeed,
		Seed:         cfg.Seed,
	}, nil
}

// Input is what a host samples once per frame. Attract and Spawn are held
// buttons; the remaining booleans are edge-triggered requests.
type Input[V vec.Vector[V]] struct {
	Pointer       V
	Attract       bool
	Spawn         bool
	ToggleGravity bool
	CycleDisplay  bool
	StepUp        bool
	StepDown      bool
	Delete        bool
	Dt            float64
	// FrameRate is the host-measured rate. Zero means derive it from Dt.
	FrameRate float64
}

// Stats is the per-frame overlay and telemetry record.
type Stats struct {
	Frame        int
	Dt           float64
	FrameRate    float64
	FPS          float64
	SimSteps     int
	Bodies       int
	Mode         Mode
	Gravity      bool
	PeakSpeed    float64
	PeakPressure float64
}

// BodyView is the read-only render data of one body.
type BodyView[V vec.Vector[V]] struct {
	ID       int
	Position V
	Radius   float64
	Color    colorful.Color
}

// Snapshot is the output of one frame. Bodies is reused by the next call to
// Frame; use Clone to keep it.
type Snapshot[V vec.Vector[V]] struct {
	Stats
	Extent V
	Bodies []BodyView[V]
}

func (s Snapshot[V]) Clone() Snapshot[V] {
	c := s
	c.Bodies = append([]BodyView[V](nil), s.Bodies...)
	return c
}

type Observer interface {
	OnFrame(s Stats)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Stats)

func (f ObserverFunc) OnFrame(s Stats) { f(s) }
