package algorithm

import (
	"math/bits"

	"life-engine/pkg/cellstate"
)

// nodeID indexes a node in an arena.
type nodeID uint32

const (
	// leafLevel is the level of the smallest node: a 4x4 square stored as
	// raw bits (bit y*4+x).
	leafLevel = 2
	// maxLevel keeps every square side representable as an int.
	maxLevel = 62
)

// node is a 2^level square. Leaves use bits; every other level references
// four children one level down.
type node struct {
	level          uint8
	bits           uint16
	nw, ne, sw, se nodeID
	population     uint64
}

type nodeKey struct {
	level          uint8
	bits           uint16
	nw, ne, sw, se nodeID
}

type resultKey struct {
	id nodeID
	j  uint8
}

// arena interns nodes so that equal squares share one nodeID, and memoises
// advance results per (node, log2 generations).
type arena struct {
	nodes   []node
	index   map[nodeKey]nodeID
	results map[resultKey]nodeID
	empty   []nodeID
}

func newArena() *arena {
	return &arena{
		index:   make(map[nodeKey]nodeID),
		results: make(map[resultKey]nodeID),
	}
}

func (a *arena) intern(k nodeKey, n node) nodeID {
	if id, ok := a.index[k]; ok {
		return id
	}
	id := nodeID(len(a.nodes))
	a.nodes = append(a.nodes, n)
	a.index[k] = id
	return id
}

func (a *arena) leaf(b uint16) nodeID {
	return a.intern(
		nodeKey{level: leafLevel, bits: b},
		node{level: leafLevel, bits: b, population: uint64(bits.OnesCount16(b))},
	)
}

// join returns the node whose quadrants are the four given same-level nodes.
func (a *arena) join(nw, ne, sw, se nodeID) nodeID {
	level := a.nodes[nw].level + 1
	k := nodeKey{level: level, nw: nw, ne: ne, sw: sw, se: se}
	if id, ok := a.index[k]; ok {
		return id
	}
	pop := a.nodes[nw].population + a.nodes[ne].population + a.nodes[sw].population + a.nodes[se].population
	return a.intern(k, node{level: level, nw: nw, ne: ne, sw: sw, se: se, population: pop})
}

func (a *arena) emptyNode(level uint8) nodeID {
	for len(a.empty) <= int(level) {
		l := uint8(len(a.empty))
		switch {
		case l < leafLevel:
			a.empty = append(a.empty, 0)
		case l == leafLevel:
			a.empty = append(a.empty, a.leaf(0))
		default:
			e := a.empty[l-1]
			a.empty = append(a.empty, a.join(e, e, e, e))
		}
	}
	return a.empty[level]
}

// center returns the undelayed middle half of a node at level >= 3.
func (a *arena) center(id nodeID) nodeID {
	n := a.nodes[id]
	if n.level == leafLevel+1 {
		return a.leaf(center4(a.grid8(n)))
	}
	return a.join(a.nodes[n.nw].se, a.nodes[n.ne].sw, a.nodes[n.sw].ne, a.nodes[n.se].nw)
}

// advance returns the middle half of a level-L node after 2^j generations,
// j <= L-2. For j == L-2 both recursion stages advance time; for smaller j
// the first stage only takes centres.
func (a *arena) advance(id nodeID, j uint8) nodeID {
	n := a.nodes[id]
	if n.population == 0 {
		return a.emptyNode(n.level - 1)
	}
	key := resultKey{id: id, j: j}
	if r, ok := a.results[key]; ok {
		cacheHits.Inc()
		return r
	}
	cacheMisses.Inc()

	var r nodeID
	if n.level == leafLevel+1 {
		g := a.grid8(n)
		steps := 1 << j
		for range steps {
			g = step8(g)
		}
		r = a.leaf(center4(g))
	} else {
		nw, ne, sw, se := a.nodes[n.nw], a.nodes[n.ne], a.nodes[n.sw], a.nodes[n.se]
		n00 := n.nw
		n01 := a.join(nw.ne, ne.nw, nw.se, ne.sw)
		n02 := n.ne
		n10 := a.join(nw.sw, nw.se, sw.nw, sw.ne)
		n11 := a.join(nw.se, ne.sw, sw.ne, se.nw)
		n12 := a.join(ne.sw, ne.se, se.nw, se.ne)
		n20 := n.sw
		n21 := a.join(sw.ne, se.nw, sw.se, se.sw)
		n22 := n.se

		full := j == n.level-2
		reduce := a.center
		next := j
		if full {
			next = j - 1
			reduce = func(id nodeID) nodeID { return a.advance(id, next) }
		}
		r00, r01, r02 := reduce(n00), reduce(n01), reduce(n02)
		r10, r11, r12 := reduce(n10), reduce(n11), reduce(n12)
		r20, r21, r22 := reduce(n20), reduce(n21), reduce(n22)

		r = a.join(
			a.advance(a.join(r00, r01, r10, r11), next),
			a.advance(a.join(r01, r02, r11, r12), next),
			a.advance(a.join(r10, r11, r20, r21), next),
			a.advance(a.join(r11, r12, r21, r22), next),
		)
	}
	a.results[key] = r
	return r
}

// expand embeds a node in the centre of a node twice its size.
func (a *arena) expand(id nodeID) nodeID {
	n := a.nodes[id]
	if n.level >= maxLevel {
		panic("algorithm: pattern outgrew the largest representable quadtree")
	}
	e := a.emptyNode(n.level - 1)
	return a.join(
		a.join(e, e, e, n.nw),
		a.join(e, e, n.ne, e),
		a.join(e, n.sw, e, e),
		a.join(n.se, e, e, e),
	)
}

// build creates the level-sized node with top-left corner (x0, y0) holding
// pts. Every point must lie inside the square.
func (a *arena) build(level uint8, x0, y0 int, pts []cellstate.Point) nodeID {
	if len(pts) == 0 {
		return a.emptyNode(level)
	}
	if level == leafLevel {
		var b uint16
		for _, p := range pts {
			b |= 1 << ((p.Y-y0)*4 + (p.X - x0))
		}
		return a.leaf(b)
	}
	half := 1 << (level - 1)
	var quads [4][]cellstate.Point
	for _, p := range pts {
		q := 0
		if p.X >= x0+half {
			q |= 1
		}
		if p.Y >= y0+half {
			q |= 2
		}
		quads[q] = append(quads[q], p)
	}
	return a.join(
		a.build(level-1, x0, y0, quads[0]),
		a.build(level-1, x0+half, y0, quads[1]),
		a.build(level-1, x0, y0+half, quads[2]),
		a.build(level-1, x0+half, y0+half, quads[3]),
	)
}

// collect appends the alive cells of a node whose top-left corner is (x0, y0).
// Empty subtrees are skipped.
func (a *arena) collect(id nodeID, x0, y0 int, out []cellstate.Point) []cellstate.Point {
	n := a.nodes[id]
	if n.population == 0 {
		return out
	}
	if n.level == leafLevel {
		for i := range 16 {
			if n.bits&(1<<i) != 0 {
				out = append(out, cellstate.Point{X: x0 + i%4, Y: y0 + i/4})
			}
		}
		return out
	}
	half := 1 << (n.level - 1)
	out = a.collect(n.nw, x0, y0, out)
	out = a.collect(n.ne, x0+half, y0, out)
	out = a.collect(n.sw, x0, y0+half, out)
	return a.collect(n.se, x0+half, y0+half, out)
}

// grid8 packs a level-3 node into an 8x8 bitboard (bit y*8+x).
func (a *arena) grid8(n node) uint64 {
	var g uint64
	for q, id := range [4]nodeID{n.nw, n.ne, n.sw, n.se} {
		ox, oy := (q%2)*4, (q/2)*4
		b := a.nodes[id].bits
		for i := range 16 {
			if b&(1<<i) != 0 {
				g |= 1 << ((oy+i/4)*8 + ox + i%4)
			}
		}
	}
	return g
}

// center4 extracts the middle 4x4 square of an 8x8 bitboard as leaf bits.
func center4(g uint64) uint16 {
	var b uint16
	for y := range 4 {
		for x := range 4 {
			if g&(1<<((y+2)*8+x+2)) != 0 {
				b |= 1 << (y*4 + x)
			}
		}
	}
	return b
}

// step8 advances an 8x8 bitboard one generation with dead cells outside it.
func step8(g uint64) uint64 {
	var next uint64
	for y := range 8 {
		for x := range 8 {
			count := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= 8 || ny < 0 || ny >= 8 {
						continue
					}
					if g&(1<<(ny*8+nx)) != 0 {
						count++
					}
				}
			}
			alive := g&(1<<(y*8+x)) != 0
			if count == 3 || (count == 2 && alive) {
				next |= 1 << (y*8 + x)
			}
		}
	}
	return next
}
