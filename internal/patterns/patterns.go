// Package patterns provides a small library of well-known Life patterns.
package patterns

import (
	"slices"
	"strings"

	"life-engine/pkg/cellstate"
)

// Pattern is a named reference pattern anchored at the origin.
type Pattern struct {
	Name  string
	Cells cellstate.CellState
}

var library = map[string]cellstate.CellState{
	"single-cell": rows("O"),
	"blinker":     rows("OOO"),
	"block":       rows("OO", "OO"),
	"glider":      rows(".O.", "..O", "OOO"),
	"pond": rows(
		".OO.",
		"O..O",
		"O..O",
		".OO.",
	),
	"lwss": rows(
		".O..O",
		"O....",
		"O...O",
		".OOOO",
	),
	"r-pentomino": rows(".OO", "OO.", ".O."),
	"acorn":       rows(".O.....", "...O...", "OO..OOO"),
	"diehard":     rows("......O.", "OO......", ".O...OOO"),
	"gosper-glider-gun": rows(
		"........................O...........",
		"......................O.O...........",
		"............OO......OO............OO",
		"...........O...O....OO............OO",
		"OO........O.....O...OO..............",
		"OO........O...O.OO....O.O...........",
		"..........O.....O.......O...........",
		"...........O...O....................",
		"............OO......................",
	),
	// Both switch-engine seeds below grow without bound.
	"switch-engine": rows(
		"OOO.O",
		"O....",
		"...OO",
		".OO.O",
		"O.O.O",
	),
	"long-line": rows("OOOOOOOO.OOOOO...OOO......OOOOOOO.OOOOO"),
}

// Get returns the named pattern.
func Get(name string) (cellstate.CellState, bool) {
	s, ok := library[name]
	return s, ok
}

// Names lists every pattern name in sorted order.
func Names() []string {
	names := make([]string, 0, len(library))
	for name := range library {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns every pattern sorted by name.
func All() []Pattern {
	out := make([]Pattern, 0, len(library))
	for _, name := range Names() {
		out = append(out, Pattern{Name: name, Cells: library[name]})
	}
	return out
}

// rows builds a pattern from plaintext rows of 'O' and '.'.
func rows(lines ...string) cellstate.CellState {
	var points []cellstate.Point
	for y, line := range lines {
		for x, c := range strings.Split(line, "") {
			if c == "O" {
				points = append(points, cellstate.Point{X: x, Y: y})
			}
		}
	}
	return cellstate.FromCells(points)
}
