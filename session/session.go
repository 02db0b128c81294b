// Package session binds the editable grid, the explorer and the batched search
// into the run lifecycle the host drives once per frame.
//
// Every edit that changes the grid, the start or the goal invalidates the
// current run token before it is applied. Ticks carrying an older token are
// dropped without touching display state, so a cancelled run cannot leak
// explored cells into the state of its successor.
package session

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/tile-bfs/config"
	"github.com/lixenwraith/tile-bfs/grid"
	"github.com/lixenwraith/tile-bfs/preset"
	"github.com/lixenwraith/tile-bfs/search"
	"github.com/lixenwraith/tile-bfs/stats"
)

// Requester schedules one frame for a run token, FrameScheduler satisfies it
type Requester interface {
	Request(token uint64)
	Cancel()
}

// FinishFunc receives the final step of a run that reached a terminal status
type FinishFunc func(res search.StepResult)

// Option configures a Session
type Option func(*Session)

// WithLogger sets the logger, default discards
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Session) { s.log = l }
}

// WithScheduler lets the session request frames on trigger and after each unfinished tick
func WithScheduler(r Requester) Option {
	return func(s *Session) { s.sched = r }
}

// WithOnFinish registers the terminal outcome callback
func WithOnFinish(fn FinishFunc) Option {
	return func(s *Session) { s.onFinish = fn }
}

// WithStats records run counters into r, default is a private registry
func WithStats(r *stats.Registry) Option {
	return func(s *Session) { s.stats = r }
}

// Session is single-goroutine state owned by the host loop
type Session struct {
	log      logrus.FieldLogger
	sched    Requester
	onFinish FinishFunc
	stats    *stats.Registry

	grid     grid.Grid
	explorer grid.Point
	batch    int

	token  uint64
	run    *search.Run
	status search.Status

	// Display state, reset on every invalidation
	explored mapset.Set[grid.Point]
	path     []grid.Point
	ticks    int
	notice   string
}

// New creates an idle session over a free cols×rows grid with the explorer at (0,0)
func New(cols, rows, batch int, opts ...Option) *Session {
	s := &Session{
		grid:     grid.New(cols, rows),
		batch:    clampBatch(batch),
		explored: mapset.New[grid.Point](),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}
	if s.stats == nil {
		s.stats = stats.NewRegistry()
	}
	return s
}

func clampBatch(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// invalidate bumps the token so in-flight ticks go stale, drops the run and clears display
func (s *Session) invalidate(reason string) {
	if s.run != nil {
		s.log.WithFields(logrus.Fields{
			"token":  s.token,
			"reason": reason,
			"ticks":  s.run.Ticks(),
		}).Debug("run cancelled")
		s.stats.Inc(stats.RunsCancelled)
	}
	s.token++
	s.run = nil
	s.status = search.Idle
	s.explored = mapset.New[grid.Point]()
	s.path = nil
	s.ticks = 0
	s.notice = ""
	if s.sched != nil {
		s.sched.Cancel()
	}
}

// Resize re-derives the grid for new dimensions
// Occupancy is kept by coordinate, the explorer returns to (0,0) when it falls outside
func (s *Session) Resize(cols, rows int) bool {
	if cols == s.grid.Cols() && rows == s.grid.Rows() {
		return false
	}
	s.invalidate("resize")
	s.grid = grid.Resize(cols, rows, s.grid)
	if !s.grid.InBounds(s.explorer) {
		s.explorer = grid.Point{}
	}
	s.log.WithFields(logrus.Fields{"cols": cols, "rows": rows}).Debug("grid resized")
	return true
}

// Toggle flips one tile, goal and out-of-range tiles are ignored without cancelling
func (s *Session) Toggle(p grid.Point) bool {
	next, ok := s.grid.Toggle(p)
	if !ok {
		return false
	}
	s.invalidate("edit")
	s.grid = next
	return true
}

// Clear removes every obstacle
func (s *Session) Clear() {
	s.invalidate("clear")
	s.grid = s.grid.Clear()
}

// SetExplorer relocates the start, out-of-range positions are rejected
func (s *Session) SetExplorer(p grid.Point) bool {
	if !s.grid.InBounds(p) || p == s.explorer {
		return false
	}
	s.invalidate("explorer")
	s.explorer = p
	return true
}

// MoveExplorer steps the start one tile, stopping at the grid edge
func (s *Session) MoveExplorer(d grid.Direction) bool {
	return s.SetExplorer(s.explorer.Add(d.Offset()))
}

// SetBatchSize changes the per-tick quantum, picked up by the active run on its next tick
func (s *Session) SetBatchSize(n int) {
	s.batch = clampBatch(n)
}

// LoadGrid replaces occupancy, fitting g to the current dimensions
func (s *Session) LoadGrid(g grid.Grid, explorer grid.Point) {
	s.invalidate("load")
	s.grid = grid.Resize(s.grid.Cols(), s.grid.Rows(), g)
	s.explorer = explorer
	if !s.grid.InBounds(explorer) {
		s.explorer = grid.Point{}
	}
}

// LoadPreset applies a predefined grid, its batch clamped to the preset tile size, and explorer
// The host applies the preset tile size first so dimensions are current
func (s *Session) LoadPreset(p preset.Preset) {
	s.invalidate("preset")
	s.grid = p.Grid(s.grid.Cols(), s.grid.Rows())
	s.explorer = p.ExplorerPoint()
	if !s.grid.InBounds(s.explorer) {
		s.explorer = grid.Point{}
	}
	if p.Batch > 0 {
		s.batch = config.ClampBatch(p.Batch, presetTileSize(p))
	}
	s.log.WithFields(logrus.Fields{
		"preset":  p.Name,
		"blocked": s.grid.BlockedCount(),
	}).Info("preset loaded")
}

// presetTileSize is the tile size a preset batch is bounded by, default when unset
func presetTileSize(p preset.Preset) int {
	if p.TileSize <= 0 {
		return config.DefaultTileSize
	}
	return config.ClampTileSize(p.TileSize)
}

// Export captures the editor state as a preset
func (s *Session) Export(name string, tileSize int) preset.Preset {
	return preset.Export(name, tileSize, s.batch, s.explorer, s.grid)
}

// Trigger starts a fresh run on a snapshot of the current grid, cancelling any active one
// On invalid start conditions the session stays idle and the error is returned
func (s *Session) Trigger() (uint64, error) {
	s.invalidate("trigger")
	token := s.token

	run, err := search.Start(token, s.grid, s.explorer, s.grid.Goal(), s.batch)
	if err != nil {
		s.notice = fmt.Sprintf("cannot start: %v", err)
		s.stats.Inc(stats.RunsRejected)
		s.log.WithFields(logrus.Fields{"token": token, "error": err}).Info("run rejected")
		return token, err
	}

	s.run = run
	s.status = run.Status()
	s.stats.Inc(stats.RunsStarted)
	s.log.WithFields(logrus.Fields{
		"token": token,
		"start": s.explorer,
		"goal":  run.Goal(),
		"batch": s.batch,
	}).Debug("run started")

	if run.Done() {
		s.finish(run.Advance())
		return token, nil
	}
	if s.sched != nil {
		s.sched.Request(token)
	}
	return token, nil
}

// Cancel stops the active run, Running -> Idle
func (s *Session) Cancel() {
	if s.run == nil {
		return
	}
	s.invalidate("cancel")
}

// Tick advances the active run once if token is current
// Stale or orphan ticks return false and leave all state untouched
func (s *Session) Tick(token uint64) (search.StepResult, bool) {
	if s.run == nil || token != s.token {
		s.log.WithFields(logrus.Fields{
			"token":   token,
			"current": s.token,
		}).Debug("stale tick discarded")
		s.stats.Inc(stats.StaleTicks)
		return search.StepResult{}, false
	}

	s.run.SetBatchSize(s.batch)
	res := s.run.Advance()
	for _, p := range res.Explored {
		s.explored.Put(p)
	}
	s.ticks++
	s.stats.Inc(stats.Ticks)
	s.stats.Add(stats.CellsExplored, int64(len(res.Explored)))

	if res.Done {
		s.finish(res)
		return res, true
	}
	if s.sched != nil {
		s.sched.Request(token)
	}
	return res, true
}

// finish records a terminal step and destroys the run
func (s *Session) finish(res search.StepResult) {
	for _, p := range s.run.Explored() {
		s.explored.Put(p)
	}
	s.status = res.Status
	s.path = res.Path
	switch res.Status {
	case search.PathFound:
		s.notice = fmt.Sprintf("path found: %d steps", len(res.Path)-1)
		s.stats.Inc(stats.RunsFound)
	case search.NoPathFound:
		s.notice = "no path found"
		s.stats.Inc(stats.RunsNoPath)
	}
	s.stats.Set(stats.LastRunTicks, int64(s.run.Ticks()))
	s.stats.Set(stats.LastRunExplored, int64(s.explored.Size()))
	s.stats.Set(stats.LastRunPathLen, int64(len(res.Path)))
	s.log.WithFields(logrus.Fields{
		"token":    res.Token,
		"status":   res.Status.String(),
		"ticks":    s.run.Ticks(),
		"explored": s.explored.Size(),
		"path":     len(res.Path),
	}).Info("run finished")
	s.run = nil

	if s.onFinish != nil {
		s.onFinish(res)
	}
}

func (s *Session) Token() uint64 { return s.token }

// Stats returns the run counter registry
func (s *Session) Stats() *stats.Registry { return s.stats }

func (s *Session) Status() search.Status { return s.status }

// Running reports whether a run is waiting for ticks
func (s *Session) Running() bool { return s.run != nil }

func (s *Session) Grid() grid.Grid { return s.grid }

func (s *Session) Explorer() grid.Point { return s.explorer }

func (s *Session) BatchSize() int { return s.batch }

// Notice returns the last user-facing message, empty after any edit
func (s *Session) Notice() string { return s.notice }

// SetNotice shows a host message until the next edit or run
func (s *Session) SetNotice(msg string) { s.notice = msg }

// IsExplored reports whether p is in the displayed explored set
func (s *Session) IsExplored(p grid.Point) bool { return s.explored.Has(p) }

// ExploredCount is the size of the displayed explored set
func (s *Session) ExploredCount() int { return s.explored.Size() }

// Path returns the final path of the last finished run, nil otherwise
func (s *Session) Path() []grid.Point {
	if s.path == nil {
		return nil
	}
	out := make([]grid.Point, len(s.path))
	copy(out, s.path)
	return out
}
