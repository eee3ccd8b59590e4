package serialization

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"life-engine/internal/patterns"
	"life-engine/pkg/cellstate"
	"life-engine/pkg/format"
)

func TestLife105SerializeGlider(t *testing.T) {
	lines := Life105Serializer{}.Serialize(pattern(t, "glider").Offset(cellstate.Point{X: -1, Y: 4}))
	assert.Equal(t, []string{
		"#Life 1.05",
		"#N",
		"#P -1 4",
		".*",
		"..*",
		"***",
	}, lines)
}

func TestLife105SerializeSplitsWideRowsIntoStrips(t *testing.T) {
	var points []cellstate.Point
	for x := -10; x < 90; x++ {
		points = append(points, cellstate.Point{X: x, Y: 3})
	}
	points = append(points, cellstate.Point{X: -10, Y: 5})

	lines := Life105Serializer{}.Serialize(cellstate.FromCells(points))
	assert.Equal(t, []string{
		"#Life 1.05",
		"#N",
		"#P -10 3",
		strings.Repeat("*", 80),
		".",
		"*",
		"#P 70 3",
		strings.Repeat("*", 20),
	}, lines)
}

func TestLife105SerializeEmpty(t *testing.T) {
	lines := Life105Serializer{}.Serialize(cellstate.Empty())
	assert.Equal(t, []string{"#Life 1.05", "#N"}, lines)

	r := requireSuccessful(t, Life105Serializer{}.Deserialize(lines))
	assert.Empty(t, r.Warnings)
	assert.True(t, r.CellState.IsEmpty())
}

func TestLife105DeserializeBlocks(t *testing.T) {
	r := requireSuccessful(t, Life105Serializer{}.Deserialize([]string{
		"#Life 1.05",
		"#D Two blinkers",
		"#R 23/3",
		"#P -5 -5",
		"***",
		"#P 10 0",
		"*",
		"*",
		"*",
	}))
	assert.Empty(t, r.Warnings)
	assert.Equal(t, format.Life105, r.Format)
	assert.Equal(t, cellstate.New(
		cellstate.Point{X: -5, Y: -5}, cellstate.Point{X: -4, Y: -5}, cellstate.Point{X: -3, Y: -5},
		cellstate.Point{X: 10, Y: 0}, cellstate.Point{X: 10, Y: 1}, cellstate.Point{X: 10, Y: 2},
	), r.CellState)
}

func TestLife105DeserializeWarnings(t *testing.T) {
	r := requireSuccessful(t, Life105Serializer{}.Deserialize([]string{
		"#Life 1.05",
		"#R 34/34",
		"#P 0 0",
		"*O*",
		"",
		"*",
		"#Q",
		"#P x",
		"*",
	}))
	assert.Equal(t, []Message{
		UnsupportedRule{Line: 2, Rule: "34/34"},
		UnexpectedCharacter{Character: 'O', Line: 4, Column: 2},
		UnexpectedBlankLine{Line: 5},
		UnexpectedInput{Line: 7, Text: "#Q"},
		InvalidOffset{Line: 8, Text: "#P x"},
	}, r.Warnings)
	assert.Equal(t, cellstate.New(
		cellstate.Point{X: 0, Y: 0}, cellstate.Point{X: 2, Y: 0}, cellstate.Point{X: 0, Y: 2},
	), r.CellState)
}

func TestLife105DeserializeMissingHeader(t *testing.T) {
	failed := requireUnsuccessful(t, Life105Serializer{}.Deserialize([]string{"#P 0 0", "***"}))
	assert.Equal(t, []Message{MissingHeader{Line: 1, Expected: "#Life 1.05"}}, failed.Errors)

	failed = requireUnsuccessful(t, Life105Serializer{}.Deserialize([]string{"", ""}))
	assert.Equal(t, []Message{MissingHeader{Line: 3, Expected: "#Life 1.05"}}, failed.Errors)
}

func TestLife105RoundTripExact(t *testing.T) {
	s := Life105Serializer{}
	require.True(t, s.RoundTripsExactly())
	wide := cellstate.Empty()
	for x := 0; x < 250; x += 3 {
		wide = wide.WithCell(cellstate.Point{X: x, Y: x % 7}, true)
	}
	cases := append(patterns.All(), patterns.Pattern{Name: "wide", Cells: wide})
	for _, p := range cases {
		moved := p.Cells.Offset(cellstate.Point{X: -81, Y: 6})
		r := requireSuccessful(t, s.Deserialize(s.Serialize(moved)))
		assert.Empty(t, r.Warnings, p.Name)
		assert.Equal(t, moved, r.CellState, p.Name)
	}
}
