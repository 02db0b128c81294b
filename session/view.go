package session

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/tile-bfs/grid"
	"github.com/lixenwraith/tile-bfs/search"
)

// View is a render snapshot of the session
// The explored set is shared with the session and only valid until the next Tick
type View struct {
	Grid          grid.Grid
	Explorer      grid.Point
	Goal          grid.Point
	Status        search.Status
	Token         uint64
	Batch         int
	Ticks         int
	ExploredCount int
	Notice        string
	Path          []grid.Point
	Frontier      []grid.Point

	explored mapset.Set[grid.Point]
}

// IsExplored reports explored membership
func (v View) IsExplored(p grid.Point) bool {
	return v.explored.Has(p)
}

// View builds the current render snapshot
func (s *Session) View() View {
	v := View{
		Grid:          s.grid,
		Explorer:      s.explorer,
		Goal:          s.grid.Goal(),
		Status:        s.status,
		Token:         s.token,
		Batch:         s.batch,
		Ticks:         s.ticks,
		ExploredCount: s.explored.Size(),
		Notice:        s.notice,
		Path:          s.Path(),
		explored:      s.explored,
	}
	if s.run != nil {
		v.Frontier = s.run.Frontier()
	}
	return v
}
