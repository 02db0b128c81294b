package search

// Status is the lifecycle state of a run as seen by the host
// Idle -> Running -> {PathFound | NoPathFound}; Running -> Idle on cancellation
type Status uint8

const (
	Idle Status = iota
	Running
	PathFound
	NoPathFound
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case PathFound:
		return "path found"
	case NoPathFound:
		return "no path"
	default:
		return "unknown"
	}
}

// Terminal reports PathFound or NoPathFound
func (s Status) Terminal() bool {
	return s == PathFound || s == NoPathFound
}
