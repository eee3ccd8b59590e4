package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"life-engine/pkg/cellstate"
)

func TestRasterize(t *testing.T) {
	s := cellstate.New(cellstate.Point{X: -1, Y: 2}, cellstate.Point{X: 1, Y: 3})
	g := Rasterize(s, s.BoundingBox())

	assert.Equal(t, 3, g.W)
	assert.Equal(t, 2, g.H)
	assert.Equal(t, cellstate.Point{X: -1, Y: 2}, g.Origin)
	assert.Equal(t, []uint8{1, 0, 0}, g.Row(0))
	assert.Equal(t, []uint8{0, 0, 1}, g.Row(1))
	assert.Equal(t, "O..", g.RowString(0, 'O', '.', false))
	assert.Equal(t, "O", g.RowString(0, 'O', '.', true))
	assert.Equal(t, "..*", g.RowString(1, '*', '.', true))
}

func TestRasterizeClipsToWindow(t *testing.T) {
	s := cellstate.New(cellstate.Point{X: 0, Y: 0}, cellstate.Point{X: 5, Y: 5})
	g := Rasterize(s, cellstate.Rect{Max: cellstate.Point{X: 2, Y: 2}})

	assert.Equal(t, []uint8{1, 0}, g.Row(0))
	assert.False(t, g.RowEmpty(0))
	assert.True(t, g.RowEmpty(1))
}

func TestEmptyGrid(t *testing.T) {
	g := NewByteGrid(cellstate.Rect{})
	assert.Equal(t, 0, g.W)
	assert.Equal(t, 0, g.H)
}
