// Package grid holds the occupancy model of the visualizer: a cols×rows field
// of blocked/free tiles with the goal fixed at the bottom-right corner.
//
// Grid has value semantics. Every edit returns a new Grid and never touches
// the receiver's storage, so a Grid captured by a search run stays valid for
// the lifetime of that run regardless of later edits.
package grid

// Grid is a rectangular occupancy field stored row-major
type Grid struct {
	cols, rows int
	cells      []bool
}

// New creates a free grid, non-positive dimensions yield a zero-area grid
func New(cols, rows int) Grid {
	if cols <= 0 || rows <= 0 {
		return Grid{}
	}
	return Grid{cols: cols, rows: rows, cells: make([]bool, cols*rows)}
}

// Resize builds a cols×rows grid keeping previous occupancy by coordinate where it
// still fits, other cells start free, and the new goal is forced free
func Resize(cols, rows int, previous Grid) Grid {
	g := New(cols, rows)
	if g.Empty() {
		return g
	}
	for y := 0; y < rows && y < previous.rows; y++ {
		for x := 0; x < cols && x < previous.cols; x++ {
			g.cells[y*cols+x] = previous.cells[previous.index(x, y)]
		}
	}
	g.cells[g.index(cols-1, rows-1)] = false
	return g
}

// FromBlocked builds a grid with the listed cells blocked, dropping out-of-range entries
func FromBlocked(cols, rows int, blocked []Point) Grid {
	g := New(cols, rows)
	if g.Empty() {
		return g
	}
	for _, p := range blocked {
		if g.InBounds(p) {
			g.cells[g.index(p.X, p.Y)] = true
		}
	}
	g.cells[g.index(cols-1, rows-1)] = false
	return g
}

func (g Grid) index(x, y int) int {
	return y*g.cols + x
}

func (g Grid) Cols() int { return g.cols }

func (g Grid) Rows() int { return g.rows }

// Empty reports a zero-area grid
func (g Grid) Empty() bool {
	return g.cols <= 0 || g.rows <= 0
}

// Goal returns the bottom-right cell, (-1,-1) on an empty grid
func (g Grid) Goal() Point {
	return Point{X: g.cols - 1, Y: g.rows - 1}
}

func (g Grid) InBounds(p Point) bool {
	return InBounds(p, g.cols, g.rows)
}

// IsBlocked reports occupancy at p, out-of-range lookups are not blocked
func (g Grid) IsBlocked(p Point) bool {
	if !g.InBounds(p) {
		return false
	}
	return g.cells[g.index(p.X, p.Y)]
}

// Toggle flips occupancy at p
// Goal and out-of-range points are rejected: the receiver is returned unchanged with false
func (g Grid) Toggle(p Point) (Grid, bool) {
	if !g.InBounds(p) || p == g.Goal() {
		return g, false
	}
	next := g.clone()
	i := next.index(p.X, p.Y)
	next.cells[i] = !next.cells[i]
	return next, true
}

// Clear returns a grid of the same dimensions with no obstacles
func (g Grid) Clear() Grid {
	return New(g.cols, g.rows)
}

// Blocked lists blocked cells in row-major order
func (g Grid) Blocked() []Point {
	out := make([]Point, 0, g.BlockedCount())
	for i, b := range g.cells {
		if b {
			out = append(out, Point{X: i % g.cols, Y: i / g.cols})
		}
	}
	return out
}

func (g Grid) BlockedCount() int {
	n := 0
	for _, b := range g.cells {
		if b {
			n++
		}
	}
	return n
}

// Equal compares dimensions and occupancy
func (g Grid) Equal(o Grid) bool {
	if g.cols != o.cols || g.rows != o.rows {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

func (g Grid) clone() Grid {
	cells := make([]bool, len(g.cells))
	copy(cells, g.cells)
	return Grid{cols: g.cols, rows: g.rows, cells: cells}
}
