package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tile-bfs/grid"
)

func TestGenerate_AlwaysSolvable(t *testing.T) {
	sizes := [][2]int{{1, 1}, {2, 2}, {3, 3}, {4, 7}, {20, 11}, {21, 11}, {40, 22}}
	for _, sz := range sizes {
		for _, braid := range []float64{0, 0.5, 1} {
			res := Generate(Config{Cols: sz[0], Rows: sz[1], Braiding: braid, Seed: 99})
			require.Equal(t, sz[0], res.Grid.Cols())
			require.Equal(t, sz[1], res.Grid.Rows())
			assert.False(t, res.Grid.IsBlocked(res.Start), "start blocked for %v", sz)
			assert.False(t, res.Grid.IsBlocked(res.Grid.Goal()), "goal blocked for %v", sz)
			require.NotNil(t, res.Solution, "no solution for %v braid %.1f", sz, braid)
			assert.Equal(t, res.Start, res.Solution[0])
			assert.Equal(t, res.Grid.Goal(), res.Solution[len(res.Solution)-1])
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(Config{Cols: 25, Rows: 15, Braiding: 0.3, Seed: 7})
	b := Generate(Config{Cols: 25, Rows: 15, Braiding: 0.3, Seed: 7})
	assert.True(t, a.Grid.Equal(b.Grid))
	assert.Equal(t, a.Solution, b.Solution)
}

func TestGenerate_PerfectMazeIsTree(t *testing.T) {
	// In a perfect maze every room is reachable and odd-odd cells stay walls
	res := Generate(Config{Cols: 11, Rows: 9, Seed: 3})
	for y := 1; y < 9; y += 2 {
		for x := 1; x < 11; x += 2 {
			assert.True(t, res.Grid.IsBlocked(grid.Point{X: x, Y: y}), "pillar (%d,%d) removed", x, y)
		}
	}
	for y := 0; y < 9; y += 2 {
		for x := 0; x < 11; x += 2 {
			assert.False(t, res.Grid.IsBlocked(grid.Point{X: x, Y: y}), "room (%d,%d) not carved", x, y)
		}
	}
}

func TestGenerate_EmptyConfig(t *testing.T) {
	res := Generate(Config{})
	assert.True(t, res.Grid.Empty())
	assert.Nil(t, res.Solution)
}
