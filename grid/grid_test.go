package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tile-bfs/grid"
)

func TestInBounds(t *testing.T) {
	valid := []grid.Point{{0, 0}, {2, 1}, {1, 1}}
	for _, p := range valid {
		assert.True(t, grid.InBounds(p, 3, 2), "InBounds(%v)", p)
	}
	invalid := []grid.Point{{-1, 0}, {3, 0}, {1, 2}, {2, -1}}
	for _, p := range invalid {
		assert.False(t, grid.InBounds(p, 3, 2), "InBounds(%v)", p)
	}
}

func TestNew_ZeroArea(t *testing.T) {
	cases := []struct {
		name       string
		cols, rows int
	}{
		{"ZeroCols", 0, 4},
		{"ZeroRows", 4, 0},
		{"Negative", -2, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := grid.New(tc.cols, tc.rows)
			assert.True(t, g.Empty())
			assert.Zero(t, g.Cols())
			assert.Zero(t, g.Rows())
			assert.False(t, g.IsBlocked(grid.Point{}))
		})
	}
}

func TestIsBlocked_OutOfRangeIsFree(t *testing.T) {
	g := grid.FromBlocked(2, 2, []grid.Point{{0, 0}, {1, 0}, {0, 1}})
	assert.True(t, g.IsBlocked(grid.Point{0, 0}))
	assert.False(t, g.IsBlocked(grid.Point{-1, 0}))
	assert.False(t, g.IsBlocked(grid.Point{5, 5}))
}

func TestToggle(t *testing.T) {
	g := grid.New(3, 3)

	next, ok := g.Toggle(grid.Point{1, 1})
	require.True(t, ok)
	assert.True(t, next.IsBlocked(grid.Point{1, 1}))
	assert.False(t, g.IsBlocked(grid.Point{1, 1}), "receiver must not change")

	back, ok := next.Toggle(grid.Point{1, 1})
	require.True(t, ok)
	assert.False(t, back.IsBlocked(grid.Point{1, 1}))
	assert.True(t, next.IsBlocked(grid.Point{1, 1}), "snapshot must not change")
}

func TestToggle_GoalNeverBlockable(t *testing.T) {
	g := grid.New(4, 3)
	goal := g.Goal()
	require.Equal(t, grid.Point{3, 2}, goal)

	next, ok := g.Toggle(goal)
	assert.False(t, ok)
	assert.False(t, next.IsBlocked(goal))
	assert.True(t, next.Equal(g))
}

func TestToggle_OutOfRange(t *testing.T) {
	g := grid.New(2, 2)
	next, ok := g.Toggle(grid.Point{2, 0})
	assert.False(t, ok)
	assert.True(t, next.Equal(g))
}

func TestResize(t *testing.T) {
	prev := grid.FromBlocked(4, 4, []grid.Point{{0, 0}, {3, 0}, {1, 2}, {2, 2}})

	t.Run("Shrink", func(t *testing.T) {
		g := grid.Resize(3, 3, prev)
		assert.Equal(t, 3, g.Cols())
		assert.Equal(t, 3, g.Rows())
		assert.True(t, g.IsBlocked(grid.Point{0, 0}))
		assert.True(t, g.IsBlocked(grid.Point{1, 2}))
		// (2,2) was blocked and is now the goal
		assert.False(t, g.IsBlocked(grid.Point{2, 2}))
		assert.Equal(t, 2, g.BlockedCount())
	})

	t.Run("Grow", func(t *testing.T) {
		g := grid.Resize(6, 5, prev)
		assert.ElementsMatch(t, prev.Blocked(), g.Blocked())
		assert.False(t, g.IsBlocked(g.Goal()))
	})

	t.Run("ZeroArea", func(t *testing.T) {
		g := grid.Resize(0, 3, prev)
		assert.True(t, g.Empty())
	})
}

func TestFromBlocked_DropsOutOfRangeAndGoal(t *testing.T) {
	g := grid.FromBlocked(3, 2, []grid.Point{{0, 0}, {9, 9}, {-1, 0}, {2, 1}})
	assert.Equal(t, []grid.Point{{0, 0}}, g.Blocked())
}

func TestClear(t *testing.T) {
	g := grid.FromBlocked(3, 3, []grid.Point{{0, 1}, {1, 1}})
	c := g.Clear()
	assert.Zero(t, c.BlockedCount())
	assert.Equal(t, 2, g.BlockedCount())
	assert.Equal(t, g.Cols(), c.Cols())
}

func TestDirections_Order(t *testing.T) {
	assert.Equal(t, grid.Point{0, -1}, grid.DirUp.Offset())
	assert.Equal(t, grid.Point{1, 0}, grid.DirRight.Offset())
	assert.Equal(t, grid.Point{0, 1}, grid.DirDown.Offset())
	assert.Equal(t, grid.Point{-1, 0}, grid.DirLeft.Offset())
	assert.Equal(t, grid.Point{}, grid.Direction(9).Offset())
}
