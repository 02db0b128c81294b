// Package search implements the batched, resumable breadth-first search that
// drives the visualizer.
//
// A Run is created against an immutable grid snapshot and advanced by the host
// once per frame. Each Advance dequeues at most BatchSize cells, so progress is
// observable tick by tick, and the final path is reconstructed from parent
// links once the goal is dequeued. A run never blocks and holds no locks; it
// is driven from a single goroutine.
package search

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"github.com/lixenwraith/tile-bfs/grid"
)

// StepResult reports one tick of work
type StepResult struct {
	Token    uint64
	Explored []grid.Point // Cells dequeued this tick, in dequeue order
	Done     bool
	Status   Status
	Path     []grid.Point // start..goal, set only when Status is PathFound
}

// Run is one BFS execution identified by a token
type Run struct {
	token       uint64
	grid        grid.Grid
	start       grid.Point
	goal        grid.Point
	batchSize   int
	frontier    *queue.Queue[grid.Point]
	queued      int
	visited     mapset.Set[grid.Point]
	explored    mapset.Set[grid.Point]
	order       []grid.Point
	parent      map[grid.Point]grid.Point
	status      Status
	path        []grid.Point
	ticks       int
	reachedGoal bool
}

// Start validates the start conditions and seeds a run
// On error no run exists: the caller stays idle
func Start(token uint64, g grid.Grid, start, goal grid.Point, batchSize int) (*Run, error) {
	switch {
	case g.Empty():
		return nil, ErrEmptyGrid
	case !g.InBounds(start):
		return nil, ErrStartOutOfBounds
	case !g.InBounds(goal):
		return nil, ErrGoalOutOfBounds
	case g.IsBlocked(start):
		return nil, ErrStartBlocked
	case g.IsBlocked(goal):
		return nil, ErrGoalBlocked
	}

	size := g.Cols() * g.Rows()
	r := &Run{
		token:     token,
		grid:      g,
		start:     start,
		goal:      goal,
		batchSize: clampBatch(batchSize),
		frontier:  queue.New[grid.Point](),
		visited:   mapset.New[grid.Point](),
		explored:  mapset.New[grid.Point](),
		order:     make([]grid.Point, 0, size),
		parent:    make(map[grid.Point]grid.Point, size),
		status:    Running,
	}

	if start == goal {
		r.visited.Put(start)
		r.explored.Put(start)
		r.order = append(r.order, start)
		r.path = []grid.Point{start}
		r.status = PathFound
		return r, nil
	}

	r.enqueue(start)
	return r, nil
}

func clampBatch(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func (r *Run) enqueue(p grid.Point) {
	r.visited.Put(p)
	r.frontier.Enqueue(p)
	r.queued++
}

func (r *Run) dequeue() grid.Point {
	p := r.frontier.Dequeue()
	r.queued--
	r.explored.Put(p)
	r.order = append(r.order, p)
	return p
}

// SetBatchSize changes the per-tick quantum from the next Advance, values below 1 mean 1
func (r *Run) SetBatchSize(n int) {
	r.batchSize = clampBatch(n)
}

// Advance performs one tick: up to BatchSize dequeues, stopping early when the goal is dequeued
// Calling Advance on a finished run returns Done with no new cells
func (r *Run) Advance() StepResult {
	if r.status != Running {
		return r.result(nil)
	}
	r.ticks++

	explored := make([]grid.Point, 0, min(r.batchSize, r.queued))
	for processed := 0; processed < r.batchSize && r.queued > 0; processed++ {
		cur := r.dequeue()
		explored = append(explored, cur)

		if cur == r.goal {
			r.reachedGoal = true
			break
		}
		r.expand(cur)
	}

	switch {
	case r.reachedGoal:
		r.path = r.backtrack()
		r.status = PathFound
	case r.queued == 0:
		r.status = NoPathFound
	}
	return r.result(explored)
}

// expand enqueues unvisited, in-bounds, free neighbours of cur in fixed order
func (r *Run) expand(cur grid.Point) {
	for _, d := range grid.Directions {
		next := cur.Add(d)
		if !r.grid.InBounds(next) || r.grid.IsBlocked(next) {
			continue
		}
		if r.visited.Has(next) {
			continue
		}
		r.parent[next] = cur
		r.enqueue(next)
	}
}

// backtrack walks parent links from goal to start and returns start..goal
// Bounded by the grid area so a corrupted parent map cannot loop forever
func (r *Run) backtrack() []grid.Point {
	limit := r.grid.Cols() * r.grid.Rows()
	rev := make([]grid.Point, 0, 16)
	cur := r.goal
	for i := 0; i < limit; i++ {
		rev = append(rev, cur)
		if cur == r.start {
			break
		}
		p, ok := r.parent[cur]
		if !ok {
			return nil
		}
		cur = p
	}
	if rev[len(rev)-1] != r.start {
		return nil
	}

	path := make([]grid.Point, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}

func (r *Run) result(explored []grid.Point) StepResult {
	res := StepResult{
		Token:    r.token,
		Explored: explored,
		Done:     r.status.Terminal(),
		Status:   r.status,
	}
	if r.status == PathFound {
		res.Path = r.Path()
	}
	return res
}

func (r *Run) Token() uint64 { return r.token }

func (r *Run) Status() Status { return r.status }

// Done reports a terminal run
func (r *Run) Done() bool { return r.status.Terminal() }

// Ticks counts Advance calls that did work
func (r *Run) Ticks() int { return r.ticks }

func (r *Run) BatchSize() int { return r.batchSize }

func (r *Run) Start() grid.Point { return r.start }

func (r *Run) Goal() grid.Point { return r.goal }

// Grid returns the snapshot the run searches
func (r *Run) Grid() grid.Grid { return r.grid }

// Path returns a copy of the final path, nil unless PathFound
func (r *Run) Path() []grid.Point {
	if r.path == nil {
		return nil
	}
	out := make([]grid.Point, len(r.path))
	copy(out, r.path)
	return out
}

// Explored returns all dequeued cells in dequeue order
func (r *Run) Explored() []grid.Point {
	out := make([]grid.Point, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Run) IsExplored(p grid.Point) bool {
	return r.explored.Has(p)
}

func (r *Run) ExploredCount() int {
	return r.explored.Size()
}

func (r *Run) IsVisited(p grid.Point) bool {
	return r.visited.Has(p)
}

func (r *Run) VisitedCount() int {
	return r.visited.Size()
}

// Parent returns the cell p was first reached from, false for start and unvisited cells
func (r *Run) Parent(p grid.Point) (grid.Point, bool) {
	q, ok := r.parent[p]
	return q, ok
}

// Frontier returns the cells awaiting expansion in queue order
func (r *Run) Frontier() []grid.Point {
	out := make([]grid.Point, 0, r.queued)
	r.frontier.Each(func(p grid.Point) {
		out = append(out, p)
	})
	return out
}
