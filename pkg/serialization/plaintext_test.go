package serialization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"life-engine/internal/patterns"
	"life-engine/pkg/cellstate"
	"life-engine/pkg/format"
)

func pattern(t *testing.T, name string) cellstate.CellState {
	t.Helper()
	s, ok := patterns.Get(name)
	require.True(t, ok, "unknown pattern %q", name)
	return s
}

func requireSuccessful(t *testing.T, r DeserializationResult) Successful {
	t.Helper()
	ok, isOK := r.(Successful)
	require.True(t, isOK, "expected Successful, got %#v", r)
	return ok
}

func requireUnsuccessful(t *testing.T, r DeserializationResult) Unsuccessful {
	t.Helper()
	failed, isFailed := r.(Unsuccessful)
	require.True(t, isFailed, "expected Unsuccessful, got %#v", r)
	return failed
}

func TestPlaintextSerialize(t *testing.T) {
	lines := PlaintextSerializer{}.Serialize(pattern(t, "glider").Offset(cellstate.Point{X: -7, Y: 12}))
	assert.Equal(t, []string{".O.", "..O", "OOO"}, lines)

	assert.Empty(t, PlaintextSerializer{}.Serialize(cellstate.Empty()))
}

func TestPlaintextDeserializeSkipsComments(t *testing.T) {
	r := requireSuccessful(t, PlaintextSerializer{}.Deserialize([]string{
		"!Name: Glider",
		"!",
		".O.",
		"..O",
		"OOO",
	}))
	assert.Empty(t, r.Warnings)
	assert.Equal(t, format.Plaintext, r.Format)
	assert.Equal(t, pattern(t, "glider"), r.CellState)
}

func TestPlaintextDeserializeMalformed(t *testing.T) {
	lines := SplitLines("0.0.0\n......\n0.0.0.\n......\n0 0 0\n......\n")
	r := requireSuccessful(t, PlaintextSerializer{}.Deserialize(lines))

	assert.Equal(t, []Message{
		UnexpectedCharacter{Character: '0', Line: 1, Column: 1},
		UnexpectedCharacter{Character: '0', Line: 1, Column: 3},
		UnexpectedCharacter{Character: '0', Line: 1, Column: 5},
		UnexpectedShortLine{Line: 1},
		UnexpectedCharacter{Character: '0', Line: 3, Column: 1},
		UnexpectedCharacter{Character: '0', Line: 3, Column: 3},
		UnexpectedCharacter{Character: '0', Line: 3, Column: 5},
		UnexpectedCharacter{Character: '0', Line: 5, Column: 1},
		UnexpectedCharacter{Character: ' ', Line: 5, Column: 2},
		UnexpectedCharacter{Character: '0', Line: 5, Column: 3},
		UnexpectedCharacter{Character: ' ', Line: 5, Column: 4},
		UnexpectedCharacter{Character: '0', Line: 5, Column: 5},
		UnexpectedShortLine{Line: 5},
	}, r.Warnings)

	assert.Equal(t, cellstate.New(
		cellstate.Point{X: 0, Y: 0}, cellstate.Point{X: 2, Y: 0}, cellstate.Point{X: 4, Y: 0},
		cellstate.Point{X: 0, Y: 2}, cellstate.Point{X: 2, Y: 2}, cellstate.Point{X: 4, Y: 2},
		cellstate.Point{X: 0, Y: 4}, cellstate.Point{X: 2, Y: 4}, cellstate.Point{X: 4, Y: 4},
	), r.CellState)
}

func TestPlaintextDeserializeBlankLineInsideGrid(t *testing.T) {
	r := requireSuccessful(t, PlaintextSerializer{}.Deserialize([]string{
		"O.O",
		"",
		"!comment",
		".O",
		"",
		"",
	}))
	assert.Equal(t, []Message{
		UnexpectedBlankLine{Line: 2},
		UnexpectedShortLine{Line: 4},
	}, r.Warnings)
	assert.Equal(t, cellstate.New(
		cellstate.Point{X: 0, Y: 0}, cellstate.Point{X: 2, Y: 0}, cellstate.Point{X: 1, Y: 2},
	), r.CellState)
}

func TestPlaintextDeserializeEmpty(t *testing.T) {
	r := requireSuccessful(t, PlaintextSerializer{}.Deserialize(nil))
	assert.Empty(t, r.Warnings)
	assert.True(t, r.CellState.IsEmpty())
}

func TestPlaintextRoundTripModuloOffset(t *testing.T) {
	s := PlaintextSerializer{}
	assert.False(t, s.RoundTripsExactly())
	for _, p := range patterns.All() {
		moved := p.Cells.Offset(cellstate.Point{X: -13, Y: 29})
		r := requireSuccessful(t, s.Deserialize(s.Serialize(moved)))
		assert.Empty(t, r.Warnings, p.Name)
		assert.True(t, r.CellState.EqualModuloOffset(moved), p.Name)
		assert.Equal(t, p.Cells, r.CellState, p.Name)
	}
}
