// Package cellstate holds the sparse, immutable representation of a Game of
// Life board: the set of alive cells on an unbounded integer grid.
package cellstate

import (
	"cmp"
	"iter"
	"maps"
	"slices"
	"strings"
)

// CellState is an immutable set of alive cells. The zero value is the empty
// board. Every operation returns a new value; the backing map is never
// written after construction, so copies may be shared freely across
// goroutines.
type CellState struct {
	cells  map[Point]struct{}
	bounds Rect
}

// Empty returns the board with no alive cells.
func Empty() CellState { return CellState{} }

// New returns a CellState containing the given points.
func New(points ...Point) CellState { return FromCells(points) }

// FromCells builds a CellState from any collection of points. Duplicates
// collapse.
func FromCells(points []Point) CellState {
	if len(points) == 0 {
		return CellState{}
	}
	cells := make(map[Point]struct{}, len(points))
	for _, p := range points {
		cells[p] = struct{}{}
	}
	return fromMap(cells)
}

// FromSeq builds a CellState from an iterator of points.
func FromSeq(seq iter.Seq[Point]) CellState {
	cells := make(map[Point]struct{})
	for p := range seq {
		cells[p] = struct{}{}
	}
	return fromMap(cells)
}

// fromMap takes ownership of cells.
func fromMap(cells map[Point]struct{}) CellState {
	if len(cells) == 0 {
		return CellState{}
	}
	return CellState{cells: cells, bounds: boundsOf(cells)}
}

func boundsOf(cells map[Point]struct{}) Rect {
	first := true
	var r Rect
	for p := range cells {
		if first {
			r = Rect{Min: p, Max: Point{X: p.X + 1, Y: p.Y + 1}}
			first = false
			continue
		}
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X+1)
		r.Max.Y = max(r.Max.Y, p.Y+1)
	}
	return r
}

// Len returns the number of alive cells.
func (s CellState) Len() int { return len(s.cells) }

// IsEmpty reports whether no cell is alive.
func (s CellState) IsEmpty() bool { return len(s.cells) == 0 }

// IsAlive reports whether the cell at p is alive.
func (s CellState) IsAlive(p Point) bool {
	_, ok := s.cells[p]
	return ok
}

// BoundingBox returns the smallest rectangle containing every alive cell, or
// the zero Rect for an empty board.
func (s CellState) BoundingBox() Rect { return s.bounds }

// All iterates over the alive cells in no particular order.
func (s CellState) All() iter.Seq[Point] {
	return maps.Keys(s.cells)
}

// Cells returns the alive cells sorted row-major (by Y, then X).
func (s CellState) Cells() []Point {
	points := slices.Collect(maps.Keys(s.cells))
	slices.SortFunc(points, ComparePoints)
	return points
}

// ComparePoints orders points row-major.
func ComparePoints(a, b Point) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}

// Offset returns the board translated by d.
func (s CellState) Offset(d Point) CellState {
	if s.IsEmpty() || d == (Point{}) {
		return s
	}
	cells := make(map[Point]struct{}, len(s.cells))
	for p := range s.cells {
		cells[p.Add(d)] = struct{}{}
	}
	return CellState{cells: cells, bounds: s.bounds.Offset(d)}
}

// WithCell returns a board where the cell at p has the requested state. The
// receiver is returned unchanged if the cell already had that state.
func (s CellState) WithCell(p Point, alive bool) CellState {
	if s.IsAlive(p) == alive {
		return s
	}
	cells := maps.Clone(s.cells)
	if cells == nil {
		cells = make(map[Point]struct{}, 1)
	}
	if alive {
		cells[p] = struct{}{}
	} else {
		delete(cells, p)
	}
	return fromMap(cells)
}

// Equal reports whether both boards have exactly the same alive cells.
func (s CellState) Equal(other CellState) bool {
	if len(s.cells) != len(other.cells) || s.bounds != other.bounds {
		return false
	}
	for p := range s.cells {
		if !other.IsAlive(p) {
			return false
		}
	}
	return true
}

// EqualModuloOffset reports whether some translation of s equals other.
func (s CellState) EqualModuloOffset(other CellState) bool {
	if len(s.cells) != len(other.cells) {
		return false
	}
	if s.IsEmpty() {
		return true
	}
	if s.bounds.Width() != other.bounds.Width() || s.bounds.Height() != other.bounds.Height() {
		return false
	}
	d := other.bounds.Min.Sub(s.bounds.Min)
	for p := range s.cells {
		if !other.IsAlive(p.Add(d)) {
			return false
		}
	}
	return true
}

// String draws the bounding box with 'O' for alive and '.' for dead cells.
func (s CellState) String() string {
	if s.IsEmpty() {
		return "CellState{}"
	}
	var b strings.Builder
	b.WriteString("CellState{" + s.bounds.String() + "\n")
	for y := s.bounds.Min.Y; y < s.bounds.Max.Y; y++ {
		for x := s.bounds.Min.X; x < s.bounds.Max.X; x++ {
			if s.IsAlive(Point{X: x, Y: y}) {
				b.WriteByte('O')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	b.WriteByte('}')
	return b.String()
}
