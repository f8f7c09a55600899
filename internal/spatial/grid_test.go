package spatial

import (
	"math/rand"
	"testing"

	"github.com/san-kum/ballsim/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asSet(ids []int) map[int]int {
	m := make(map[int]int, len(ids))
	for _, id := range ids {
		m[id]++
	}
	return m
}

func checkSuperset[V vec.Vector[V]](t *testing.T, rng *rand.Rand, cellSize float64, randomPoint func() V) {
	t.Helper()

	grid := New[V](cellSize)
	points := make([]V, 400)
	for i := range points {
		points[i] = randomPoint()
		grid.Insert(points[i], i)
	}
	require.Equal(t, len(points), grid.Len())

	for q := 0; q < 200; q++ {
		var query V
		self := NoSelf
		if q%2 == 0 {
			self = rng.Intn(len(points))
			query = points[self]
		} else {
			query = randomPoint()
		}

		got := asSet(grid.Neighbors(query, self))
		for id, p := range points {
			if id == self {
				assert.NotContains(t, got, id, "self id must be excluded")
				continue
			}
			if vec.Distance(p, query) <= cellSize {
				assert.Contains(t, got, id, "neighbor %d at distance %f missing", id, vec.Distance(p, query))
			}
		}
	}
}

func TestNeighborsSuperset2D(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	checkSuperset(t, rng, 22, func() vec.Vec2 {
		return vec.Vec2{rng.Float64()*300 - 50, rng.Float64()*200 - 50}
	})
}

func TestNeighborsSuperset3D(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	checkSuperset(t, rng, 22, func() vec.Vec3 {
		return vec.Vec3{rng.Float64() * 120, rng.Float64() * 120, rng.Float64() * 120}
	})
}

func TestKeyOfFloorsNegative(t *testing.T) {
	grid := New[vec.Vec2](10)

	assert.Equal(t, Key{-1, 0, 0}, grid.KeyOf(vec.Vec2{-0.5, 9.99}))
	assert.Equal(t, Key{2, -3, 0}, grid.KeyOf(vec.Vec2{25, -21}))

	grid3 := New[vec.Vec3](10)
	assert.Equal(t, Key{0, 1, -1}, grid3.KeyOf(vec.Vec3{5, 10, -0.1}))
}

func TestNeighborsBlock(t *testing.T) {
	grid := New[vec.Vec2](10)
	grid.Insert(vec.Vec2{5, 5}, 0)   // center cell
	grid.Insert(vec.Vec2{15, 15}, 1) // diagonal neighbor
	grid.Insert(vec.Vec2{25, 5}, 2)  // two cells away
	grid.Insert(vec.Vec2{6, 6}, 3)   // same cell

	got := grid.Neighbors(vec.Vec2{5, 5}, 0)
	assert.ElementsMatch(t, []int{1, 3}, got)

	got = grid.Neighbors(vec.Vec2{5, 5}, NoSelf)
	assert.ElementsMatch(t, []int{0, 1, 3}, got)

	got = grid.NeighborsWithin(vec.Vec2{5, 5}, 20, NoSelf)
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, got, "range of two cells reaches id 2")
}

func TestNeighbors3DBlockIncludesDepth(t *testing.T) {
	grid := New[vec.Vec3](10)
	grid.Insert(vec.Vec3{5, 5, 15}, 0)
	grid.Insert(vec.Vec3{5, 5, 25}, 1)

	got := grid.Neighbors(vec.Vec3{5, 5, 5}, NoSelf)
	assert.ElementsMatch(t, []int{0}, got)
}

func TestClearRecyclesBuckets(t *testing.T) {
	grid := New[vec.Vec2](10)
	for i := 0; i < 50; i++ {
		grid.Insert(vec.Vec2{float64(i) * 10, 0}, i)
	}
	require.Equal(t, 50, grid.Cells())

	grid.Clear()
	assert.Equal(t, 0, grid.Len())
	assert.Equal(t, 0, grid.Cells())
	assert.Empty(t, grid.Neighbors(vec.Vec2{0, 0}, NoSelf))

	grid.Insert(vec.Vec2{1, 1}, 7)
	assert.Equal(t, []int{7}, grid.Neighbors(vec.Vec2{1, 1}, NoSelf))
}

func TestAppendNeighborsReusesBuffer(t *testing.T) {
	grid := New[vec.Vec2](10)
	grid.Insert(vec.Vec2{1, 1}, 0)
	grid.Insert(vec.Vec2{2, 2}, 1)

	buf := make([]int, 0, 8)
	buf = grid.AppendNeighbors(buf[:0], vec.Vec2{1, 1}, 0)
	assert.Equal(t, []int{1}, buf)
	assert.Equal(t, 8, cap(buf))
}

func BenchmarkRebuild1000(b *testing.B) {
	rng := rand.New(rand.NewSource(3))
	points := make([]vec.Vec2, 1000)
	for i := range points {
		points[i] = vec.Vec2{rng.Float64() * 1200, rng.Float64() * 800}
	}
	grid := New[vec.Vec2](22)
	buf := make([]int, 0, 64)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		grid.Clear()
		for id, p := range points {
			grid.Insert(p, id)
		}
		for id, p := range points {
			buf = grid.AppendNeighbors(buf[:0], p, id)
		}
	}
}
