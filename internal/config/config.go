package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBodyCount   = 1000
	DefaultBodyRadius  = 10.0
	DefaultGravity     = 9.81
	DefaultResistance  = 0.999
	DefaultBounce      = 0.6
	DefaultMaxSpeed    = 2000.0
	DefaultMaxPressure = 1000.0
	DefaultWidth       = 1200.0
	DefaultHeight      = 800.0
	DefaultDepth       = 800.0
	DefaultSimSteps    = 20
	DefaultTargetFPS   = 60.0
	DefaultFPSBoundary = 10.0
	DefaultDeleteDist  = 50.0
	DefaultCellMargin  = 2.0
	DefaultSpawnSpeed  = 100.0
	DefaultFrameRate   = 60.0
	DefaultDimensions  = 2
	DefaultSeed        = 1
	DefaultAttraction  = DefaultGravity
	maxSimSteps        = 200
	minSimSteps        = 1
)

type Config struct {
	Dimensions   int     `yaml:"dimensions" json:"dimensions"`
	Seed         int64   `yaml:"seed" json:"seed"`
	BodyCount    int     `yaml:"body_count" json:"body_count"`
	BodyRadius   float64 `yaml:"body_radius" json:"body_radius"`
	Gravity      float64 `yaml:"gravity" json:"gravity"`
	Resistance   float64 `yaml:"resistance" json:"resistance"`
	BounceAmount float64 `yaml:"bounce_amount" json:"bounce_amount"`
	MaxSpeed     float64 `yaml:"max_speed" json:"max_speed"`
	MaxPressure  float64 `yaml:"max_pressure" json:"max_pressure"`
	Width        float64 `yaml:"width" json:"width"`
	Height       float64 `yaml:"height" json:"height"`
	Depth        float64 `yaml:"depth" json:"depth"`
	SimSteps     int     `yaml:"sim_steps" json:"sim_steps"`
	AutoSimSteps bool    `yaml:"auto_sim_steps" json:"auto_sim_steps"`
	TargetFPS    float64 `yaml:"target_fps" json:"target_fps"`
	FPSBoundary  float64 `yaml:"fps_boundary" json:"fps_boundary"`
	DeleteDist   float64 `yaml:"delete_dist" json:"delete_dist"`
	CellMargin   float64 `yaml:"cell_margin" json:"cell_margin"`
	Attraction   float64 `yaml:"attraction" json:"attraction"`
	SpawnSpeed   float64 `yaml:"spawn_speed" json:"spawn_speed"`
	FrameRate    float64 `yaml:"frame_rate" json:"frame_rate"`
}

func DefaultConfig() *Config {
	return &Config{
		Dimensions:   DefaultDimensions,
		Seed:         DefaultSeed,
		BodyCount:    DefaultBodyCount,
		BodyRadius:   DefaultBodyRadius,
		Gravity:      DefaultGravity,
		Resistance:   DefaultResistance,
		BounceAmount: DefaultBounce,
		MaxSpeed:     DefaultMaxSpeed,
		MaxPressure:  DefaultMaxPressure,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Depth:        DefaultDepth,
		SimSteps:     DefaultSimSteps,
		AutoSimSteps: true,
		TargetFPS:    DefaultTargetFPS,
		FPSBoundary:  DefaultFPSBoundary,
		DeleteDist:   DefaultDeleteDist,
		CellMargin:   DefaultCellMargin,
		Attraction:   DefaultAttraction,
		SpawnSpeed:   DefaultSpawnSpeed,
		FrameRate:    DefaultFrameRate,
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected and
// the result is validated. An empty file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate reports every problem at once, joined and wrapped in ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	for _, f := range []struct {
		name  string
		value float64
	}{
		{"body_radius", c.BodyRadius}, {"gravity", c.Gravity}, {"resistance", c.Resistance},
		{"bounce_amount", c.BounceAmount}, {"max_speed", c.MaxSpeed}, {"max_pressure", c.MaxPressure},
		{"width", c.Width}, {"height", c.Height}, {"depth", c.Depth},
		{"target_fps", c.TargetFPS}, {"fps_boundary", c.FPSBoundary}, {"delete_dist", c.DeleteDist},
		{"cell_margin", c.CellMargin}, {"attraction", c.Attraction}, {"spawn_speed", c.SpawnSpeed},
		{"frame_rate", c.FrameRate},
	} {
		check(!math.IsNaN(f.value) && !math.IsInf(f.value, 0), "%s must be finite, got %g", f.name, f.value)
	}
	check(c.Dimensions == 2 || c.Dimensions == 3, "dimensions must be 2 or 3, got %d", c.Dimensions)
	check(c.BodyCount >= 0, "body_count must not be negative, got %d", c.BodyCount)
	check(c.BodyRadius > 0, "body_radius must be positive, got %g", c.BodyRadius)
	check(c.Resistance >= 0 && c.Resistance <= 1, "resistance must be in [0, 1], got %g", c.Resistance)
	check(c.BounceAmount >= 0 && c.BounceAmount <= 1, "bounce_amount must be in [0, 1], got %g", c.BounceAmount)
	check(c.MaxSpeed > 0, "max_speed must be positive, got %g", c.MaxSpeed)
	check(c.MaxPressure > 0, "max_pressure must be positive, got %g", c.MaxPressure)
	check(c.Width > 2*c.BodyRadius, "width %g must exceed the body diameter", c.Width)
	check(c.Height > 2*c.BodyRadius, "height %g must exceed the body diameter", c.Height)
	if c.Dimensions == 3 {
		check(c.Depth > 2*c.BodyRadius, "depth %g must exceed the body diameter", c.Depth)
	}
	check(c.SimSteps >= minSimSteps && c.SimSteps <= maxSimSteps,
		"sim_steps must be in [%d, %d], got %d", minSimSteps, maxSimSteps, c.SimSteps)
	check(c.TargetFPS > 0, "target_fps must be positive, got %g", c.TargetFPS)
	check(c.FPSBoundary >= 0, "fps_boundary must not be negative, got %g", c.FPSBoundary)
	check(c.DeleteDist >= 0, "delete_dist must not be negative, got %g", c.DeleteDist)
	check(c.CellMargin >= 0, "cell_margin must not be negative, got %g", c.CellMargin)
	check(c.SpawnSpeed >= 0, "spawn_speed must not be negative, got %g", c.SpawnSpeed)
	check(c.FrameRate > 0, "frame_rate must be positive, got %g", c.FrameRate)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// CellSize is the broad-phase grid edge: one body diameter plus margin.
func (c *Config) CellSize() float64 {
	return 2*c.BodyRadius + c.CellMargin
}

// Extents returns the domain size per axis, trimmed to Dimensions.
func (c *Config) Extents() []float64 {
	ext := []float64{c.Width, c.Height, c.Depth}
	if c.Dimensions < len(ext) {
		return ext[:c.Dimensions]
	}
	return ext
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
