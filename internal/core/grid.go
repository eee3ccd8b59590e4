package core

import "life-engine/pkg/cellstate"

// ByteGrid stores a dense window of cell values in row-major order. Value 1
// is alive, 0 is dead.
type ByteGrid struct {
	W, H   int
	Origin cellstate.Point
	data   []uint8
}

// NewByteGrid allocates a grid covering r.
func NewByteGrid(r cellstate.Rect) *ByteGrid {
	w, h := r.Width(), r.Height()
	if r.Empty() {
		w, h = 0, 0
	}
	return &ByteGrid{W: w, H: h, Origin: r.Min, data: make([]uint8, w*h)}
}

// Rasterize copies the part of s inside r into a new grid.
func Rasterize(s cellstate.CellState, r cellstate.Rect) *ByteGrid {
	g := NewByteGrid(r)
	for p := range s.All() {
		if r.Contains(p) {
			g.data[g.Index(p.X-r.Min.X, p.Y-r.Min.Y)] = 1
		}
	}
	return g
}

// Index returns the linear slice index for grid-local coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// Row returns the grid-local row y.
func (g *ByteGrid) Row(y int) []uint8 { return g.data[y*g.W : (y+1)*g.W] }

// RowEmpty reports whether every cell of row y is dead.
func (g *ByteGrid) RowEmpty(y int) bool {
	for _, v := range g.Row(y) {
		if v != 0 {
			return false
		}
	}
	return true
}

// RowString renders row y using the given alive and dead bytes. Trailing dead
// cells are dropped when trim is set.
func (g *ByteGrid) RowString(y int, alive, dead byte, trim bool) string {
	row := g.Row(y)
	end := len(row)
	if trim {
		for end > 0 && row[end-1] == 0 {
			end--
		}
	}
	buf := make([]byte, end)
	for i := range buf {
		if row[i] != 0 {
			buf[i] = alive
		} else {
			buf[i] = dead
		}
	}
	return string(buf)
}
