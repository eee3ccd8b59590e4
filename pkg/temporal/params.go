package temporal

import (
	"fmt"
	"math"
	"strconv"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
)

// Parameter keys understood by State.
const (
	ParamGenerationsPerStep   = "generations_per_step"
	ParamTargetStepsPerSecond = "target_steps_per_second"
)

// Parameter describes the current value of a single tunable.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterControl describes an adjustable parameter for a control surface.
// Steps and bounds are optional and interpreted based on the parameter type.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType

	Step float64

	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// ParameterControlsProvider exposes the list of adjustable controls.
type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

// IntParameterSetter updates integer parameters.
type IntParameterSetter interface {
	SetIntParameter(key string, value int) bool
}

// FloatParameterSetter updates floating point parameters.
type FloatParameterSetter interface {
	SetFloatParameter(key string, value float64) bool
}

var (
	_ ParameterControlsProvider = (*State)(nil)
	_ IntParameterSetter        = (*State)(nil)
	_ FloatParameterSetter      = (*State)(nil)
)

const (
	maxGenerationsPerStep   = 1 << 20
	minTargetStepsPerSecond = 0.1
	maxTargetStepsPerSecond = 1000
)

// ParameterControls lists the tunables of a State.
func (s *State) ParameterControls() []ParameterControl {
	return []ParameterControl{
		{
			Key:    ParamGenerationsPerStep,
			Label:  "Generations per step",
			Type:   ParamTypeInt,
			Step:   1,
			Min:    1,
			Max:    maxGenerationsPerStep,
			HasMin: true,
			HasMax: true,
		},
		{
			Key:    ParamTargetStepsPerSecond,
			Label:  "Steps per second",
			Type:   ParamTypeFloat,
			Step:   1,
			Min:    minTargetStepsPerSecond,
			Max:    maxTargetStepsPerSecond,
			HasMin: true,
			HasMax: true,
		},
	}
}

// Parameters reports the current value of every tunable.
func (s *State) Parameters() []Parameter {
	snap := s.Snapshot()
	return []Parameter{
		{
			Key:         ParamGenerationsPerStep,
			Label:       "Generations per step",
			Type:        ParamTypeInt,
			Value:       strconv.Itoa(snap.GenerationsPerStep),
			Description: "Generations advanced by every tick or manual step",
		},
		{
			Key:         ParamTargetStepsPerSecond,
			Label:       "Steps per second",
			Type:        ParamTypeFloat,
			Value:       strconv.FormatFloat(snap.TargetStepsPerSecond, 'g', -1, 64),
			Description: "Ticks per second while running",
		},
	}
}

// SetIntParameter updates an integer tunable, clamping it to its control
// bounds. It reports whether the key was recognised.
func (s *State) SetIntParameter(key string, value int) bool {
	if key != ParamGenerationsPerStep {
		return false
	}
	return s.SetGenerationsPerStep(min(max(value, 1), maxGenerationsPerStep)) == nil
}

// SetFloatParameter updates a floating point tunable, clamping it to its
// control bounds. It reports whether the key was recognised and the value
// usable.
func (s *State) SetFloatParameter(key string, value float64) bool {
	if key != ParamTargetStepsPerSecond || math.IsNaN(value) {
		return false
	}
	return s.SetTargetStepsPerSecond(min(max(value, minTargetStepsPerSecond), maxTargetStepsPerSecond)) == nil
}

// SetParameter parses value according to the control registered under key
// and applies it through SetIntParameter or SetFloatParameter.
func (s *State) SetParameter(key, value string) error {
	for _, c := range s.ParameterControls() {
		if c.Key != key {
			continue
		}
		switch c.Type {
		case ParamTypeInt:
			v, err := strconv.Atoi(value)
			if err != nil || !s.SetIntParameter(key, v) {
				return fmt.Errorf("%w: %s=%q", ErrInvalidParameter, key, value)
			}
		case ParamTypeFloat:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil || !s.SetFloatParameter(key, v) {
				return fmt.Errorf("%w: %s=%q", ErrInvalidParameter, key, value)
			}
		}
		return nil
	}
	return fmt.Errorf("%w: unknown key %q", ErrInvalidParameter, key)
}
