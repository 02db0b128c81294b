// Package stats keeps run counters for the session and the host.
package stats

import (
	"fmt"
	"sync/atomic"
)

// Counter identifies a monotonically increasing count
type Counter int

const (
	RunsStarted Counter = iota
	RunsRejected
	RunsCancelled
	RunsFound
	RunsNoPath
	Ticks
	StaleTicks
	CellsExplored
	counterCount
)

var counterNames = [counterCount]string{
	RunsStarted:   "runs.started",
	RunsRejected:  "runs.rejected",
	RunsCancelled: "runs.cancelled",
	RunsFound:     "runs.found",
	RunsNoPath:    "runs.no_path",
	Ticks:         "ticks",
	StaleTicks:    "ticks.stale",
	CellsExplored: "cells.explored",
}

func (c Counter) String() string {
	if c < 0 || c >= counterCount {
		return "unknown"
	}
	return counterNames[c]
}

// Gauge identifies a last-value measurement
type Gauge int

const (
	LastRunTicks Gauge = iota
	LastRunExplored
	LastRunPathLen
	gaugeCount
)

var gaugeNames = [gaugeCount]string{
	LastRunTicks:    "last_run.ticks",
	LastRunExplored: "last_run.explored",
	LastRunPathLen:  "last_run.path",
}

func (g Gauge) String() string {
	if g < 0 || g >= gaugeCount {
		return "unknown"
	}
	return gaugeNames[g]
}

// Registry holds every counter and gauge, safe for concurrent readers
// Unknown keys are ignored on write and read as zero
type Registry struct {
	counters [counterCount]atomic.Int64
	gauges   [gaugeCount]atomic.Int64
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Inc adds one to a counter
func (r *Registry) Inc(c Counter) { r.Add(c, 1) }

func (r *Registry) Add(c Counter, n int64) {
	if c < 0 || c >= counterCount {
		return
	}
	r.counters[c].Add(n)
}

func (r *Registry) Set(g Gauge, v int64) {
	if g < 0 || g >= gaugeCount {
		return
	}
	r.gauges[g].Store(v)
}

// Int reads a counter
func (r *Registry) Int(c Counter) int64 {
	if c < 0 || c >= counterCount {
		return 0
	}
	return r.counters[c].Load()
}

// Value reads a gauge
func (r *Registry) Value(g Gauge) int64 {
	if g < 0 || g >= gaugeCount {
		return 0
	}
	return r.gauges[g].Load()
}

// Lines formats every metric as key=value, counters then gauges in declaration order
func (r *Registry) Lines() []string {
	out := make([]string, 0, int(counterCount)+int(gaugeCount))
	for c := Counter(0); c < counterCount; c++ {
		out = append(out, fmt.Sprintf("%s=%d", c, r.counters[c].Load()))
	}
	for g := Gauge(0); g < gaugeCount; g++ {
		out = append(out, fmt.Sprintf("%s=%d", g, r.gauges[g].Load()))
	}
	return out
}
