package render

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// PathReveal eases the number of visible path cells from 0 to the path length
type PathReveal struct {
	duration time.Duration
	tween    *gween.Tween
	total    int
	shown    int
}

// NewPathReveal creates an idle reveal, zero duration shows paths at once
func NewPathReveal(duration time.Duration) *PathReveal {
	return &PathReveal{duration: duration}
}

// Start begins revealing a path of n cells
func (r *PathReveal) Start(n int) {
	r.total = n
	r.shown = 0
	if n <= 0 || r.duration <= 0 {
		r.shown = n
		r.tween = nil
		return
	}
	r.tween = gween.New(0, float32(n), float32(r.duration.Seconds()), ease.OutQuad)
}

// Update advances the animation by dt and returns the visible cell count
func (r *PathReveal) Update(dt time.Duration) int {
	if r.tween == nil {
		return r.shown
	}
	current, finished := r.tween.Update(float32(dt.Seconds()))
	r.shown = int(math.Ceil(float64(current)))
	if finished || r.shown >= r.total {
		r.shown = r.total
		r.tween = nil
	}
	return r.shown
}

// Shown returns the visible cell count
func (r *PathReveal) Shown() int {
	return r.shown
}

// Active reports an animation in progress
func (r *PathReveal) Active() bool {
	return r.tween != nil
}

// Reset hides the path
func (r *PathReveal) Reset() {
	r.tween = nil
	r.total = 0
	r.shown = 0
}
