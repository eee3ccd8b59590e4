package cellstate

import "fmt"

// Point is an integer cell coordinate. X grows to the right, Y grows downwards.
type Point struct {
	X, Y int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point { return Point{X: p.X + d.X, Y: p.Y + d.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// Rect is an axis-aligned rectangle. Min is inclusive and Max is exclusive.
// The zero Rect is the canonical empty rectangle.
type Rect struct {
	Min, Max Point
}

// Width returns the number of columns covered by r.
func (r Rect) Width() int { return r.Max.X - r.Min.X }

// Height returns the number of rows covered by r.
func (r Rect) Height() int { return r.Max.Y - r.Min.Y }

// Empty reports whether r contains no cells.
func (r Rect) Empty() bool { return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Offset returns r translated by d. Empty rectangles stay canonical.
func (r Rect) Offset(d Point) Rect {
	if r.Empty() {
		return Rect{}
	}
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%v-%v)", r.Min, r.Max)
}
