// Package maze generates obstacle layouts for the visualizer.
package maze

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/tile-bfs/grid"
	"github.com/lixenwraith/tile-bfs/search"
)

// Cell states of the working field
const (
	Wall    = true
	Passage = false
)

type Config struct {
	Cols, Rows int

	// Braiding: 0.0 (perfect maze, a tree) to 1.0 (no dead ends).
	// Higher values add cycles, so BFS has several equally short routes to choose from.
	Braiding float64

	Seed int64 // Optional (0 = Random)
}

type Result struct {
	Grid     grid.Grid
	Start    grid.Point
	Solution []grid.Point // Shortest start..goal path, nil if unsolvable
}

// Generate creates a maze whose rooms sit on even coordinates, starting at (0,0)
// A trailing even column or row is left open so the corner goal always connects
func Generate(cfg Config) Result {
	cols, rows := cfg.Cols, cfg.Rows
	if cols <= 0 || rows <= 0 {
		return Result{Grid: grid.New(cols, rows)}
	}

	field := make([][]bool, rows)
	for y := range field {
		field[y] = make([]bool, cols)
		for x := range field[y] {
			field[y][x] = Wall
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	start := grid.Point{}
	recursiveBacktracker(field, start, rng)

	if cfg.Braiding > 0 {
		applyBraiding(field, cfg.Braiding, rng)
	}

	openTrailingEdges(field)

	var blocked []grid.Point
	for y, row := range field {
		for x, wall := range row {
			if wall {
				blocked = append(blocked, grid.Point{X: x, Y: y})
			}
		}
	}
	g := grid.FromBlocked(cols, rows, blocked)

	return Result{
		Grid:     g,
		Start:    start,
		Solution: solve(g, start),
	}
}

// --- Core Algorithms ---

var jumps = []grid.Point{{X: 0, Y: -2}, {X: 2, Y: 0}, {X: 0, Y: 2}, {X: -2, Y: 0}}

func isRoom(field [][]bool, p grid.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.Y < len(field) && p.X < len(field[0]) && p.X%2 == 0 && p.Y%2 == 0
}

func recursiveBacktracker(field [][]bool, start grid.Point, rng *rand.Rand) {
	stack := []grid.Point{start}
	field[start.Y][start.X] = Passage

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates := make([]grid.Point, 0, 4)

		for _, d := range jumps {
			next := curr.Add(d)
			if isRoom(field, next) && field[next.Y][next.X] == Wall {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(len(candidates))]
		field[curr.Y+d.Y/2][curr.X+d.X/2] = Passage
		next := curr.Add(d)
		field[next.Y][next.X] = Passage
		stack = append(stack, next)
	}
}

// applyBraiding knocks a wall out of dead-end rooms with the given probability
func applyBraiding(field [][]bool, probability float64, rng *rand.Rand) {
	rows, cols := len(field), len(field[0])

	for y := 0; y < rows; y += 2 {
		for x := 0; x < cols; x += 2 {
			exits := 0
			for _, d := range grid.Directions {
				n := grid.Point{X: x, Y: y}.Add(d)
				if grid.InBounds(n, cols, rows) && field[n.Y][n.X] == Passage {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			candidates := make([]grid.Point, 0, 3)
			for _, jd := range jumps {
				n := grid.Point{X: x + jd.X, Y: y + jd.Y}
				w := grid.Point{X: x + jd.X/2, Y: y + jd.Y/2}
				if isRoom(field, n) && field[w.Y][w.X] == Wall {
					candidates = append(candidates, w)
				}
			}
			if len(candidates) > 0 {
				w := candidates[rng.Intn(len(candidates))]
				field[w.Y][w.X] = Passage
			}
		}
	}
}

// openTrailingEdges clears an odd last column/row, which holds no rooms and would
// otherwise seal the corner
func openTrailingEdges(field [][]bool) {
	rows, cols := len(field), len(field[0])
	if (cols-1)%2 == 1 {
		for y := 0; y < rows; y++ {
			field[y][cols-1] = Passage
		}
	}
	if (rows-1)%2 == 1 {
		for x := 0; x < cols; x++ {
			field[rows-1][x] = Passage
		}
	}
}

func solve(g grid.Grid, start grid.Point) []grid.Point {
	r, err := search.Start(0, g, start, g.Goal(), g.Cols()*g.Rows())
	if err != nil {
		return nil
	}
	for !r.Done() {
		r.Advance()
	}
	return r.Path()
}
