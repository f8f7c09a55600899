package stream

import (
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/vec"
)

const (
	TypeHello = "hello"
	TypeFrame = "frame"
)

// HelloMsg is sent once when a client connects.
type HelloMsg struct {
	Type       string    `json:"type"`
	Dimensions int       `json:"dimensions"`
	Extent     []float64 `json:"extent"`
	Radius     float64   `json:"radius"`
	Rate       float64   `json:"rate"`
}

type BallMsg struct {
	ID    int       `json:"id"`
	Pos   []float64 `json:"pos"`
	R     float64   `json:"r"`
	Color string    `json:"color"`
}

// FrameMsg is one broadcast frame.
type FrameMsg struct {
	Type         string    `json:"type"`
	Frame        int       `json:"frame"`
	FPS          float64   `json:"fps"`
	SimSteps     int       `json:"sim_steps"`
	Bodies       int       `json:"bodies"`
	Mode         string    `json:"mode"`
	Gravity      bool      `json:"gravity"`
	PeakSpeed    float64   `json:"peak_speed"`
	PeakPressure float64   `json:"peak_pressure"`
	Balls        []BallMsg `json:"balls"`
}

func NewFrameMsg[V vec.Vector[V]](snap sim.Snapshot[V]) FrameMsg {
	balls := make([]BallMsg, len(snap.Bodies))
	for i, b := range snap.Bodies {
		balls[i] = BallMsg{ID: b.ID, Pos: vec.Slice(b.Position), R: b.Radius, Color: b.Color.Hex()}
	}
	return FrameMsg{
		Type:         TypeFrame,
		Frame:        snap.Frame,
		FPS:          snap.FPS,
		SimSteps:     snap.SimSteps,
		Bodies:       snap.Stats.Bodies,
		Mode:         snap.Mode.String(),
		Gravity:      snap.Gravity,
		PeakSpeed:    snap.PeakSpeed,
		PeakPressure: snap.PeakPressure,
		Balls:        balls,
	}
}

// InputMsg is a client's input. Pointer, Attract and Spawn are held state
// and replace the previous values; the remaining flags are one-shot
// requests. A nil AutoSteps leaves step control as it is.
type InputMsg struct {
	Pointer       []float64 `json:"pointer,omitempty"`
	Attract       bool      `json:"attract"`
	Spawn         bool      `json:"spawn"`
	ToggleGravity bool      `json:"toggle_gravity"`
	CycleDisplay  bool      `json:"cycle_display"`
	StepUp        bool      `json:"step_up"`
	StepDown      bool      `json:"step_down"`
	Delete        bool      `json:"delete"`
	AutoSteps     *bool     `json:"auto_steps,omitempty"`
}

// merge folds a newer message into m. Held state is replaced and requests
// accumulate, except that two gravity toggles cancel out.
func (m InputMsg) merge(next InputMsg) InputMsg {
	if next.Pointer != nil {
		m.Pointer = next.Pointer
	}
	m.Attract, m.Spawn = next.Attract, next.Spawn
	m.ToggleGravity = m.ToggleGravity != next.ToggleGravity
	m.CycleDisplay = m.CycleDisplay || next.CycleDisplay
	m.StepUp = m.StepUp || next.StepUp
	m.StepDown = m.StepDown || next.StepDown
	m.Delete = m.Delete || next.Delete
	if next.AutoSteps != nil {
		m.AutoSteps = next.AutoSteps
	}
	return m
}
