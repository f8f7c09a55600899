// Package spatial implements the broad phase: a uniform grid that buckets
// body ids by the cell their center falls in.
package spatial

import (
	"math"

	"github.com/san-kum/ballsim/internal/vec"
)

// NoSelf disables self exclusion in neighbor queries.
const NoSelf = -1

// Key is the integer cell coordinate. The third component is always 0 for
// 2-D grids.
type Key [3]int

// Grid is rebuilt from scratch every frame: Clear, then Insert every body.
// Pick cellSize of at least twice the largest radius so that any colliding
// pair sits in the same or adjacent cells.
type Grid[V vec.Vector[V]] struct {
	cellSize float64
	cells    map[Key][]int
	free     [][]int
	count    int
}

func New[V vec.Vector[V]](cellSize float64) *Grid[V] {
	return &Grid[V]{
		cellSize: cellSize,
		cells:    make(map[Key][]int),
	}
}

// CellSize returns the grid edge length.
func (g *Grid[V]) CellSize() float64 { return g.cellSize }

// Len returns the number of ids stored.
func (g *Grid[V]) Len() int { return g.count }

// Cells returns the number of occupied cells.
func (g *Grid[V]) Cells() int { return len(g.cells) }

// KeyOf returns the cell containing p.
func (g *Grid[V]) KeyOf(p V) Key {
	var k Key
	for axis := 0; axis < p.Dim() && axis < len(k); axis++ {
		k[axis] = int(math.Floor(p.At(axis) / g.cellSize))
	}
	return k
}

// Clear drops every bucket. Bucket storage is kept for the next rebuild.
func (g *Grid[V]) Clear() {
	for k, bucket := range g.cells {
		g.free = append(g.free, bucket[:0])
		delete(g.cells, k)
	}
	g.count = 0
}

// Insert adds id to the cell containing p.
func (g *Grid[V]) Insert(p V, id int) {
	k := g.KeyOf(p)
	bucket, ok := g.cells[k]
	if !ok && len(g.free) > 0 {
		bucket = g.free[len(g.free)-1]
		g.free = g.free[:len(g.free)-1]
	}
	g.cells[k] = append(bucket, id)
	g.count++
}

// Neighbors returns the ids in the 3x3 (or 3x3x3) block of cells around p.
func (g *Grid[V]) Neighbors(p V, self int) []int {
	return g.AppendNeighborsWithin(nil, p, 1, self)
}

// NeighborsWithin widens the block to ceil(rng/cellSize) cells per side.
func (g *Grid[V]) NeighborsWithin(p V, rng float64, self int) []int {
	return g.AppendNeighborsWithin(nil, p, g.reach(rng), self)
}

// AppendNeighbors is Neighbors appending into dst.
func (g *Grid[V]) AppendNeighbors(dst []int, p V, self int) []int {
	return g.AppendNeighborsWithin(dst, p, 1, self)
}

// AppendNeighborsWithin appends every id in the block of cells reach cells
// away from p's cell along each axis. Results are unordered and may contain
// ids that are geometrically out of range.
func (g *Grid[V]) AppendNeighborsWithin(dst []int, p V, reach int, self int) []int {
	if reach < 0 {
		reach = 0
	}
	center := g.KeyOf(p)

	rz := 0
	if p.Dim() > 2 {
		rz = reach
	}

	for dx := -reach; dx <= reach; dx++ {
		for dy := -reach; dy <= reach; dy++ {
			for dz := -rz; dz <= rz; dz++ {
				bucket, ok := g.cells[Key{center[0] + dx, center[1] + dy, center[2] + dz}]
				if !ok {
					continue
				}
				for _, id := range bucket {
					if id != self {
						dst = append(dst, id)
					}
				}
			}
		}
	}
	return dst
}

func (g *Grid[V]) reach(rng float64) int {
	if rng <= 0 {
		return 0
	}
	return int(math.Ceil(rng / g.cellSize))
}
