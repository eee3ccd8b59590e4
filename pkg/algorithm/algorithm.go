// Package algorithm evolves cell states under Conway's B3/S23 rule.
//
// Two implementations are provided: Naive counts neighbours of every candidate
// cell each generation, HashLife advances a canonicalised quadtree and
// memoises the future of every distinct macrocell. Both produce identical
// results for every input.
package algorithm

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"life-engine/pkg/cellstate"
)

// Algorithm advances a board by a number of generations. A negative
// generation count is a programming error and panics.
type Algorithm interface {
	Name() string
	Step(s cellstate.CellState, generations int) cellstate.CellState
}

// Factory constructs an Algorithm using an optional configuration map.
type Factory func(cfg map[string]string) Algorithm

// ErrUnknownAlgorithm is returned by New for unregistered names.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

var (
	registryMu sync.RWMutex
	algorithms = map[string]Factory{}
)

// Register adds an algorithm factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	algorithms[name] = f
}

// New builds the named algorithm.
func New(name string, cfg map[string]string) (Algorithm, error) {
	registryMu.RLock()
	f, ok := algorithms[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownAlgorithm, name, Names())
	}
	return f(cfg), nil
}

// Names lists the registered algorithms in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func checkGenerations(generations int) {
	if generations < 0 {
		panic(fmt.Sprintf("algorithm: negative generation count %d", generations))
	}
}
