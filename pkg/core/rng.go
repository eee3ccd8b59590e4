package core

import (
	"math/rand/v2"

	"life-engine/pkg/cellstate"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.r.Float64() < p
}

// Soup returns a random board filling the w x h rectangle at origin with
// the given density of alive cells.
func (r *RNG) Soup(origin cellstate.Point, w, h int, density float64) cellstate.CellState {
	var cells []cellstate.Point
	for y := range h {
		for x := range w {
			if r.Chance(density) {
				cells = append(cells, cellstate.Point{X: origin.X + x, Y: origin.Y + y})
			}
		}
	}
	return cellstate.FromCells(cells)
}
