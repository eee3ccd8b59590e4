package algorithm

import (
	"time"

	"life-engine/pkg/cellstate"
)

// Naive implements Conway's Game of Life by direct neighbour counting on the
// sparse cell set. Cost per generation is proportional to the number of alive
// cells, so it is the reference implementation and the cheap choice for small
// boards.
type Naive struct{}

// NewNaive returns the naive stepper.
func NewNaive() *Naive { return &Naive{} }

// Name returns the algorithm identifier.
func (*Naive) Name() string { return "naive" }

// Step advances s by the given number of generations.
func (n *Naive) Step(s cellstate.CellState, generations int) cellstate.CellState {
	checkGenerations(generations)
	start := time.Now()
	for range generations {
		if s.IsEmpty() {
			break
		}
		s = nextGeneration(s)
	}
	observeStep(n.Name(), generations, time.Since(start))
	return s
}

// nextGeneration applies one B3/S23 generation. Only alive cells and their
// neighbours can be alive afterwards, so those are the only candidates.
func nextGeneration(s cellstate.CellState) cellstate.CellState {
	neighbors := make(map[cellstate.Point]uint8, s.Len()*8)
	for p := range s.All() {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				neighbors[cellstate.Point{X: p.X + dx, Y: p.Y + dy}]++
			}
		}
	}
	next := make([]cellstate.Point, 0, s.Len())
	for p, count := range neighbors {
		if count == 3 || (count == 2 && s.IsAlive(p)) {
			next = append(next, p)
		}
	}
	return cellstate.FromCells(next)
}

func init() {
	Register("naive", func(map[string]string) Algorithm { return NewNaive() })
}
