package algorithm

import (
	"log/slog"
	"math/bits"
	"strconv"
	"sync"
	"time"

	"life-engine/pkg/cellstate"
)

// HashLifeConfig holds tunables for the HashLife stepper.
type HashLifeConfig struct {
	// MaxNodes is the arena size above which the next Step starts from an
	// empty arena. Zero disables the budget.
	MaxNodes int
	Logger   *slog.Logger
}

// DefaultHashLifeConfig returns the standard configuration.
func DefaultHashLifeConfig() HashLifeConfig {
	return HashLifeConfig{MaxNodes: 1 << 21}
}

// HashLifeConfigFromMap populates a HashLifeConfig from a string map.
func HashLifeConfigFromMap(cfg map[string]string) HashLifeConfig {
	c := DefaultHashLifeConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["max_nodes"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.MaxNodes = parsed
		}
	}
	return c
}

// HashLifeStats reports the size of a HashLife arena.
type HashLifeStats struct {
	Nodes   int
	Results int
}

// HashLife advances patterns with Gosper's algorithm. Interned nodes and
// memoised results survive between Step calls, so repeated or related
// patterns get cheaper over time. A HashLife is safe for concurrent use;
// calls serialise on its arena.
type HashLife struct {
	mu       sync.Mutex
	arena    *arena
	maxNodes int
	logger   *slog.Logger
}

// NewHashLife returns a HashLife with the default configuration.
func NewHashLife() *HashLife {
	return NewHashLifeWithConfig(DefaultHashLifeConfig())
}

// NewHashLifeWithConfig returns a HashLife using cfg.
func NewHashLifeWithConfig(cfg HashLifeConfig) *HashLife {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &HashLife{arena: newArena(), maxNodes: cfg.MaxNodes, logger: logger}
}

// Name returns the algorithm identifier.
func (*HashLife) Name() string { return "hashlife" }

// Reset drops every interned node and memoised result.
func (h *HashLife) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.arena = newArena()
	hashLifeNodes.Set(0)
}

// Stats returns the current arena size.
func (h *HashLife) Stats() HashLifeStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return HashLifeStats{Nodes: len(h.arena.nodes), Results: len(h.arena.results)}
}

// Step advances s by the given number of generations.
func (h *HashLife) Step(s cellstate.CellState, generations int) cellstate.CellState {
	checkGenerations(generations)
	if generations == 0 || s.IsEmpty() {
		return s
	}
	start := time.Now()

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.maxNodes > 0 && len(h.arena.nodes) > h.maxNodes {
		h.logger.Debug("hashlife arena over budget, resetting",
			slog.Int("nodes", len(h.arena.nodes)),
			slog.Int("max_nodes", h.maxNodes))
		hashLifeResets.Inc()
		h.arena = newArena()
	}

	out := h.run(s, uint64(generations))
	hashLifeNodes.Set(float64(len(h.arena.nodes)))
	observeStep(h.Name(), generations, time.Since(start))
	return out
}

// maxChunk bounds a single advance so the root never needs more than
// maxLevel levels.
const maxChunk = maxLevel - 3

func (h *HashLife) run(s cellstate.CellState, remaining uint64) cellstate.CellState {
	a := h.arena
	box := s.BoundingBox()
	level := uint8(bits.Len(uint(max(box.Width(), box.Height()) - 1)))
	level = max(level, leafLevel+1)
	root := a.build(level, box.Min.X, box.Min.Y, s.Cells())
	origin := box.Min

	for remaining > 0 {
		j := uint8(min(bits.Len64(remaining)-1, maxChunk))
		for a.nodes[root].level < j+2 || !a.centered(root) {
			origin = expandOrigin(origin, a.nodes[root].level)
			root = a.expand(root)
		}
		origin = expandOrigin(origin, a.nodes[root].level)
		root = a.expand(root)

		l := a.nodes[root].level
		root = a.advance(root, j)
		quarter := 1 << (l - 2)
		origin = origin.Add(cellstate.Point{X: quarter, Y: quarter})
		remaining -= 1 << j

		if a.nodes[root].population == 0 {
			return cellstate.Empty()
		}
	}
	return cellstate.FromCells(a.collect(root, origin.X, origin.Y, nil))
}

// expandOrigin returns the top-left corner of the node produced by expanding
// a level-sized node whose corner is origin.
func expandOrigin(origin cellstate.Point, level uint8) cellstate.Point {
	half := 1 << (level - 1)
	return origin.Sub(cellstate.Point{X: half, Y: half})
}

// centered reports whether every alive cell of a node at level >= 4 lies in
// the middle half of its middle half.
func (a *arena) centered(id nodeID) bool {
	n := a.nodes[id]
	if n.level < leafLevel+2 {
		return false
	}
	return a.nodes[a.center(a.center(id))].population == n.population
}

func init() {
	Register("hashlife", func(cfg map[string]string) Algorithm {
		return NewHashLifeWithConfig(HashLifeConfigFromMap(cfg))
	})
}
