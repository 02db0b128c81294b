package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_CountersAndGauges(t *testing.T) {
	r := NewRegistry()
	assert.Zero(t, r.Int(RunsStarted))
	assert.Zero(t, r.Value(LastRunTicks))

	r.Inc(RunsStarted)
	r.Inc(RunsStarted)
	r.Add(CellsExplored, 40)
	r.Set(LastRunTicks, 3)
	r.Set(LastRunTicks, 7)

	assert.Equal(t, int64(2), r.Int(RunsStarted))
	assert.Equal(t, int64(40), r.Int(CellsExplored))
	assert.Equal(t, int64(7), r.Value(LastRunTicks))
}

func TestRegistry_UnknownKeys(t *testing.T) {
	r := NewRegistry()
	assert.NotPanics(t, func() {
		r.Inc(Counter(-1))
		r.Add(counterCount, 5)
		r.Set(Gauge(99), 1)
	})
	assert.Zero(t, r.Int(counterCount))
	assert.Zero(t, r.Value(Gauge(-3)))
	assert.Equal(t, "unknown", Counter(42).String())
	assert.Equal(t, "unknown", gaugeCount.String())
}

func TestRegistry_Lines(t *testing.T) {
	r := NewRegistry()
	r.Inc(RunsFound)
	r.Set(LastRunPathLen, 12)

	lines := r.Lines()
	assert.Len(t, lines, int(counterCount)+int(gaugeCount))
	assert.Equal(t, "runs.started=0", lines[0])
	assert.Contains(t, lines, "runs.found=1")
	assert.Equal(t, "last_run.path=12", lines[len(lines)-1])
}

func TestRegistry_ConcurrentInc(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				r.Inc(Ticks)
				_ = r.Lines()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(8000), r.Int(Ticks))
}
