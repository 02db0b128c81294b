package search

import "errors"

// Start conditions that prevent a run from existing
var (
	ErrEmptyGrid        = errors.New("search: grid has zero area")
	ErrStartOutOfBounds = errors.New("search: start outside grid")
	ErrGoalOutOfBounds  = errors.New("search: goal outside grid")
	ErrStartBlocked     = errors.New("search: start cell is blocked")
	ErrGoalBlocked      = errors.New("search: goal cell is blocked")
)
