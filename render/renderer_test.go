package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tile-bfs/grid"
	"github.com/lixenwraith/tile-bfs/session"
)

func newScreen(t *testing.T, w, h int) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return screen
}

func background(screen tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func rowText(screen tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

// runToEnd drives a session synchronously, ignoring the scheduler
func runToEnd(t *testing.T, s *session.Session) {
	t.Helper()
	token, err := s.Trigger()
	require.NoError(t, err)
	for i := 0; i < 1000 && s.Running(); i++ {
		s.Tick(token)
	}
	require.False(t, s.Running())
}

func TestTileAt(t *testing.T) {
	r := New(20, 2) // 4x2 cells per tile
	g := grid.New(5, 4)

	tests := []struct {
		name   string
		x, y   int
		want   grid.Point
		wantOK bool
	}{
		{"header", 0, 1, grid.Point{}, false},
		{"origin", 0, 2, grid.Point{X: 0, Y: 0}, true},
		{"inside first tile", 3, 3, grid.Point{X: 0, Y: 0}, true},
		{"second column", 4, 2, grid.Point{X: 1, Y: 0}, true},
		{"last tile", 19, 9, grid.Point{X: 4, Y: 3}, true},
		{"past columns", 20, 2, grid.Point{}, false},
		{"past rows", 0, 10, grid.Point{}, false},
		{"negative", -1, 5, grid.Point{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := r.TileAt(tt.x, tt.y, g)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestSetTileSize(t *testing.T) {
	r := New(10, 2)
	p, ok := r.TileAt(3, 2, grid.New(10, 10))
	require.True(t, ok)
	assert.Equal(t, grid.Point{X: 1, Y: 0}, p)

	r.SetTileSize(30)
	assert.Equal(t, 30, r.TileSize())
	p, ok = r.TileAt(3, 2, grid.New(10, 10))
	require.True(t, ok)
	assert.Equal(t, grid.Point{X: 0, Y: 0}, p)
}

func TestDrawIdleGrid(t *testing.T) {
	screen := newScreen(t, 40, 12)
	s := session.New(4, 4, 2)
	s.Toggle(grid.Point{X: 1, Y: 1})

	r := New(10, 2) // 2x1 cells per tile
	r.Draw(screen, s.View(), 0)

	assert.Contains(t, rowText(screen, 0, 40), "idle")
	assert.Contains(t, rowText(screen, 1, 40), "Enter run")

	assert.Equal(t, tcell.ColorRed, background(screen, 0, 2), "explorer")
	assert.Equal(t, tcell.ColorGray, background(screen, 2, 3), "blocked")

	goal, _, _, _ := screen.GetContent(6, 5)
	assert.Equal(t, glyphGoal, goal)
	assert.Equal(t, tcell.ColorWhite, background(screen, 6, 5))

	free, _, _, _ := screen.GetContent(2, 2)
	assert.Equal(t, glyphFree, free)
}

func TestDrawFinishedRun(t *testing.T) {
	screen := newScreen(t, 120, 12)
	s := session.New(3, 3, 1)
	runToEnd(t, s)
	v := s.View()
	require.Len(t, v.Path, 5)

	r := New(10, 2)

	// nothing revealed: path cells show as explored
	r.Draw(screen, v, 0)
	assert.Equal(t, tcell.ColorDarkGreen, background(screen, 2, 2))
	assert.Contains(t, rowText(screen, 1, 120), "path found")

	r.Draw(screen, v, len(v.Path))
	assert.Equal(t, tcell.ColorRed, background(screen, 0, 2), "explorer drawn over path")
	assert.Equal(t, tcell.ColorLime, background(screen, 2, 2), "(1,0) on path")
	assert.Equal(t, tcell.ColorLime, background(screen, 4, 3), "(2,1) on path")
	assert.Equal(t, tcell.ColorWhite, background(screen, 4, 4), "goal keeps its checker")
	assert.Equal(t, tcell.ColorDarkGreen, background(screen, 0, 3), "(0,1) explored only")
	assert.Contains(t, rowText(screen, 0, 120), "path 5")
}

func TestDrawFrontier(t *testing.T) {
	screen := newScreen(t, 40, 12)
	s := session.New(4, 4, 1)
	token, err := s.Trigger()
	require.NoError(t, err)
	s.Tick(token)

	v := s.View()
	require.NotEmpty(t, v.Frontier)

	r := New(10, 2)
	r.Draw(screen, v, 0)
	assert.Equal(t, tcell.ColorDarkCyan, background(screen, 2, 2), "(1,0) queued")
	assert.Contains(t, rowText(screen, 0, 40), "running")
}

func TestHeaderClipped(t *testing.T) {
	screen := newScreen(t, 12, 6)
	s := session.New(2, 2, 1)
	r := New(10, 2)
	assert.NotPanics(t, func() { r.Draw(screen, s.View(), 0) })
	assert.Equal(t, " tile-bfs | ", rowText(screen, 0, 12))
}

func TestPathReveal(t *testing.T) {
	t.Run("eases to total", func(t *testing.T) {
		r := NewPathReveal(100 * time.Millisecond)
		r.Start(10)
		assert.True(t, r.Active())
		assert.Equal(t, 0, r.Shown())

		prev := 0
		for i := 0; i < 20 && r.Active(); i++ {
			n := r.Update(10 * time.Millisecond)
			assert.GreaterOrEqual(t, n, prev)
			assert.LessOrEqual(t, n, 10)
			prev = n
		}
		assert.False(t, r.Active())
		assert.Equal(t, 10, r.Shown())
	})

	t.Run("zero duration shows at once", func(t *testing.T) {
		r := NewPathReveal(0)
		r.Start(7)
		assert.False(t, r.Active())
		assert.Equal(t, 7, r.Shown())
	})

	t.Run("overshoot finishes", func(t *testing.T) {
		r := NewPathReveal(50 * time.Millisecond)
		r.Start(4)
		assert.Equal(t, 4, r.Update(time.Second))
		assert.False(t, r.Active())
	})

	t.Run("reset", func(t *testing.T) {
		r := NewPathReveal(time.Second)
		r.Start(4)
		r.Update(100 * time.Millisecond)
		r.Reset()
		assert.Equal(t, 0, r.Shown())
		assert.False(t, r.Active())
		assert.Equal(t, 0, r.Update(time.Second))
	})
}
