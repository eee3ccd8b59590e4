package temporal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterControls(t *testing.T) {
	s, _ := newTestState(t, DefaultConfig())
	controls := s.ParameterControls()
	require.Len(t, controls, 2)
	assert.Equal(t, ParamGenerationsPerStep, controls[0].Key)
	assert.Equal(t, ParamTypeInt, controls[0].Type)
	assert.Equal(t, ParamTargetStepsPerSecond, controls[1].Key)
	assert.Equal(t, ParamTypeFloat, controls[1].Type)
	for _, c := range controls {
		assert.True(t, c.HasMin && c.HasMax, c.Key)
		assert.Less(t, c.Min, c.Max, c.Key)
	}
}

func TestSetIntParameter(t *testing.T) {
	s, _ := newTestState(t, DefaultConfig())
	assert.True(t, s.SetIntParameter(ParamGenerationsPerStep, 32))
	assert.Equal(t, 32, s.Snapshot().GenerationsPerStep)

	assert.True(t, s.SetIntParameter(ParamGenerationsPerStep, 0))
	assert.Equal(t, 1, s.Snapshot().GenerationsPerStep)

	assert.False(t, s.SetIntParameter("rule", 3))
}

func TestSetFloatParameter(t *testing.T) {
	s, _ := newTestState(t, DefaultConfig())
	assert.True(t, s.SetFloatParameter(ParamTargetStepsPerSecond, 24))
	assert.Equal(t, 24.0, s.Snapshot().TargetStepsPerSecond)

	assert.True(t, s.SetFloatParameter(ParamTargetStepsPerSecond, 1e9))
	assert.Equal(t, float64(maxTargetStepsPerSecond), s.Snapshot().TargetStepsPerSecond)

	assert.False(t, s.SetFloatParameter(ParamTargetStepsPerSecond, math.NaN()))
	assert.False(t, s.SetFloatParameter(ParamGenerationsPerStep, 2))
}

func TestParameters(t *testing.T) {
	s, _ := newTestState(t, Config{GenerationsPerStep: 5, TargetStepsPerSecond: 12.5})
	params := s.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "5", params[0].Value)
	assert.Equal(t, "12.5", params[1].Value)
}

func TestSetParameter(t *testing.T) {
	s, _ := newTestState(t, DefaultConfig())
	require.NoError(t, s.SetParameter(ParamGenerationsPerStep, "4"))
	require.NoError(t, s.SetParameter(ParamTargetStepsPerSecond, "7.5"))
	snap := s.Snapshot()
	assert.Equal(t, 4, snap.GenerationsPerStep)
	assert.Equal(t, 7.5, snap.TargetStepsPerSecond)

	assert.ErrorIs(t, s.SetParameter(ParamGenerationsPerStep, "many"), ErrInvalidParameter)
	assert.ErrorIs(t, s.SetParameter(ParamTargetStepsPerSecond, "NaN"), ErrInvalidParameter)
	assert.ErrorIs(t, s.SetParameter("rule", "B36/S23"), ErrInvalidParameter)
	assert.Equal(t, snap, s.Snapshot())
}
