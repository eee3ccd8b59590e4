package algorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"life-engine/internal/patterns"
	"life-engine/pkg/cellstate"
)

func pattern(t *testing.T, name string) cellstate.CellState {
	t.Helper()
	s, ok := patterns.Get(name)
	require.True(t, ok, name)
	return s
}

func TestBlinkerOscillation(t *testing.T) {
	vertical := cellstate.New(
		cellstate.Point{X: 2, Y: 1},
		cellstate.Point{X: 2, Y: 2},
		cellstate.Point{X: 2, Y: 3},
	)
	horizontal := cellstate.New(
		cellstate.Point{X: 1, Y: 2},
		cellstate.Point{X: 2, Y: 2},
		cellstate.Point{X: 3, Y: 2},
	)

	naive := NewNaive()
	once := naive.Step(vertical, 1)
	assert.True(t, once.Equal(horizontal), "after one step: %v", once)
	twice := naive.Step(once, 1)
	assert.True(t, twice.Equal(vertical), "after second step: %v", twice)
}

func TestNaiveGliderTranslates(t *testing.T) {
	glider := pattern(t, "glider").Offset(cellstate.Point{X: -10, Y: -3})
	got := NewNaive().Step(glider, 8)
	assert.True(t, got.Equal(glider.Offset(cellstate.Point{X: 2, Y: 2})), got.String())
}

func TestNaiveStillLifeIsFixed(t *testing.T) {
	for _, name := range []string{"block", "pond"} {
		s := pattern(t, name)
		assert.True(t, NewNaive().Step(s, 5).Equal(s), name)
	}
}

func TestNaiveDiehardVanishes(t *testing.T) {
	naive := NewNaive()
	s := naive.Step(pattern(t, "diehard"), 129)
	assert.False(t, s.IsEmpty())
	assert.True(t, naive.Step(s, 1).IsEmpty())
}

func TestNaiveRPentominoStabilises(t *testing.T) {
	if testing.Short() {
		t.Skip("long-running evolution")
	}
	s := NewNaive().Step(pattern(t, "r-pentomino"), 1103)
	assert.Equal(t, 116, s.Len())
}

func TestZeroGenerationsIsIdentity(t *testing.T) {
	s := pattern(t, "r-pentomino").Offset(cellstate.Point{X: 5, Y: -9})
	for _, alg := range []Algorithm{NewNaive(), NewHashLife()} {
		assert.True(t, alg.Step(s, 0).Equal(s), alg.Name())
		assert.True(t, alg.Step(cellstate.Empty(), 0).IsEmpty(), alg.Name())
		assert.True(t, alg.Step(cellstate.Empty(), 100).IsEmpty(), alg.Name())
	}
}

func TestNegativeGenerationsPanic(t *testing.T) {
	for _, alg := range []Algorithm{NewNaive(), NewHashLife()} {
		assert.Panics(t, func() { alg.Step(pattern(t, "glider"), -1) }, alg.Name())
	}
}

func TestRegistry(t *testing.T) {
	assert.Subset(t, Names(), []string{"hashlife", "naive"})

	alg, err := New("hashlife", map[string]string{"max_nodes": "1000"})
	require.NoError(t, err)
	h, ok := alg.(*HashLife)
	require.True(t, ok)
	assert.Equal(t, 1000, h.maxNodes)

	alg, err = New("naive", nil)
	require.NoError(t, err)
	assert.Equal(t, "naive", alg.Name())

	_, err = New("quicklife", nil)
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestHashLifeConfigFromMap(t *testing.T) {
	assert.Equal(t, DefaultHashLifeConfig(), HashLifeConfigFromMap(nil))
	assert.Equal(t, 0, HashLifeConfigFromMap(map[string]string{"max_nodes": "0"}).MaxNodes)
	assert.Equal(t, DefaultHashLifeConfig().MaxNodes,
		HashLifeConfigFromMap(map[string]string{"max_nodes": "-4"}).MaxNodes)
	assert.Equal(t, DefaultHashLifeConfig().MaxNodes,
		HashLifeConfigFromMap(map[string]string{"max_nodes": "lots"}).MaxNodes)
}
