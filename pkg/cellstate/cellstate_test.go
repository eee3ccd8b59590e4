package cellstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func glider() CellState {
	return New(Point{1, 0}, Point{2, 1}, Point{0, 2}, Point{1, 2}, Point{2, 2})
}

func TestFromCellsCollapsesDuplicates(t *testing.T) {
	s := FromCells([]Point{{0, 0}, {0, 0}, {3, -2}})
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.IsAlive(Point{3, -2}))
	assert.False(t, s.IsAlive(Point{1, 1}))
}

func TestBoundingBox(t *testing.T) {
	s := New(Point{-2, 5}, Point{4, -1}, Point{0, 0})
	assert.Equal(t, Rect{Min: Point{-2, -1}, Max: Point{5, 6}}, s.BoundingBox())
	assert.Equal(t, 7, s.BoundingBox().Width())
	assert.Equal(t, 7, s.BoundingBox().Height())
}

func TestEmptyBoundingBoxIsCanonical(t *testing.T) {
	assert.Equal(t, Rect{}, Empty().BoundingBox())
	assert.Equal(t, Rect{}, New().BoundingBox())
	assert.Equal(t, Rect{}, New(Point{9, 9}).WithCell(Point{9, 9}, false).BoundingBox())
	assert.True(t, Empty().BoundingBox().Empty())
}

func TestOffsetTranslatesCellsAndBounds(t *testing.T) {
	s := glider()
	moved := s.Offset(Point{-3, 7})

	assert.Equal(t, s.Len(), moved.Len())
	assert.Equal(t, s.BoundingBox().Offset(Point{-3, 7}), moved.BoundingBox())
	for _, p := range s.Cells() {
		assert.True(t, moved.IsAlive(p.Add(Point{-3, 7})), "missing %v", p)
	}
	assert.True(t, moved.Offset(Point{3, -7}).Equal(s))
}

func TestWithCell(t *testing.T) {
	s := glider()

	added := s.WithCell(Point{10, 10}, true)
	assert.Equal(t, 6, added.Len())
	assert.Equal(t, Point{11, 11}, added.BoundingBox().Max)
	assert.Equal(t, 5, s.Len(), "receiver must not change")

	cleared := added.WithCell(Point{10, 10}, false)
	assert.True(t, cleared.Equal(s))

	assert.True(t, s.WithCell(Point{1, 0}, true).Equal(s))
	assert.True(t, s.WithCell(Point{5, 5}, false).Equal(s))
}

func TestCellsAreRowMajor(t *testing.T) {
	assert.Equal(t, []Point{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}, glider().Cells())
}

func TestEqual(t *testing.T) {
	assert.True(t, glider().Equal(glider()))
	assert.True(t, Empty().Equal(FromCells(nil)))
	assert.False(t, glider().Equal(glider().Offset(Point{1, 0})))
	assert.False(t, glider().Equal(glider().WithCell(Point{0, 0}, true)))
	assert.Equal(t, glider(), FromSeq(glider().All()))
}

func TestEqualModuloOffset(t *testing.T) {
	s := glider()
	assert.True(t, s.EqualModuloOffset(s.Offset(Point{-100, 42})))
	assert.True(t, Empty().EqualModuloOffset(Empty()))
	assert.False(t, s.EqualModuloOffset(Empty()))

	mirrored := New(Point{1, 0}, Point{0, 1}, Point{0, 2}, Point{1, 2}, Point{2, 2})
	require.Equal(t, s.Len(), mirrored.Len())
	assert.False(t, s.EqualModuloOffset(mirrored))
}

func TestString(t *testing.T) {
	assert.Equal(t, "CellState{}", Empty().String())
	assert.Equal(t, "CellState{[(0, 0)-(3, 3))\n.O.\n..O\nOOO\n}", glider().String())
}
