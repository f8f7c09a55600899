// Package automation replays scripted input on headless runs and sweeps a
// config parameter across a range.
package automation

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/vec"
	"gopkg.in/yaml.v3"
)

var ErrUnknownAction = errors.New("automation: unknown action")

// Actions understood by scripts.
const (
	ActionSpawn         = "spawn"
	ActionAttract       = "attract"
	ActionDelete        = "delete"
	ActionToggleGravity = "toggle_gravity"
	ActionCycleDisplay  = "cycle_display"
	ActionStepUp        = "step_up"
	ActionStepDown      = "step_down"
	ActionMove          = "move"
)

var knownActions = map[string]bool{
	ActionSpawn: true, ActionAttract: true, ActionDelete: true,
	ActionToggleGravity: true, ActionCycleDisplay: true,
	ActionStepUp: true, ActionStepDown: true, ActionMove: true,
}

// Script is a scripted input sequence.
type Script struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Events      []Event `yaml:"events"`
}

// Event fires Action on frames [Frame, Frame+Repeat). Pointer, when set,
// moves the pointer for those frames.
type Event struct {
	Frame   int       `yaml:"frame"`
	Action  string    `yaml:"action"`
	Pointer []float64 `yaml:"pointer"`
	Repeat  int       `yaml:"repeat"`
}

func (e Event) active(frame int) bool {
	n := e.Repeat
	if n < 1 {
		n = 1
	}
	return frame >= e.Frame && frame < e.Frame+n
}

// LoadScript loads and validates a script from a YAML file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) Validate() error {
	var errs []error
	for i, e := range s.Events {
		if !knownActions[e.Action] {
			errs = append(errs, fmt.Errorf("event %d: %w %q", i, ErrUnknownAction, e.Action))
		}
		if e.Frame < 0 {
			errs = append(errs, fmt.Errorf("event %d: frame must not be negative", i))
		}
	}
	return errors.Join(errs...)
}

// Len is the number of frames the script needs to play out completely.
func (s *Script) Len() int {
	n := 0
	for _, e := range s.Events {
		end := e.Frame + max(e.Repeat, 1)
		n = max(n, end)
	}
	return n
}

// Input builds the input of one frame. The pointer keeps the position of
// the latest event at or before frame that set one, starting from origin.
// Of events on the same frame the one listed last wins.
func Input[V vec.Vector[V]](s *Script, frame int, origin V) sim.Input[V] {
	in := sim.Input[V]{Pointer: origin}
	pointerFrame := -1
	for _, e := range s.Events {
		if len(e.Pointer) > 0 && e.Frame <= frame && e.Frame >= pointerFrame {
			in.Pointer = vec.FromSlice[V](e.Pointer)
			pointerFrame = e.Frame
		}
		if !e.active(frame) {
			continue
		}
		switch e.Action {
		case ActionSpawn:
			in.Spawn = true
		case ActionAttract:
			in.Attract = true
		case ActionDelete:
			in.Delete = true
		case ActionToggleGravity:
			in.ToggleGravity = true
		case ActionCycleDisplay:
			in.CycleDisplay = true
		case ActionStepUp:
			in.StepUp = true
		case ActionStepDown:
			in.StepDown = true
		}
	}
	return in
}

// Source adapts s to a sim.Script for sim.Run. A nil script yields no
// input.
func Source[V vec.Vector[V]](s *Script, origin V) sim.Script[V] {
	if s == nil {
		return nil
	}
	return func(frame int) sim.Input[V] {
		return Input(s, frame, origin)
	}
}
