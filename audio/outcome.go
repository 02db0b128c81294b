package audio

// Outcome identifies a run event worth a sound
type Outcome int

const (
	PathFound Outcome = iota
	NoPath
	Rejected
	outcomeCount
)

var outcomeNames = [outcomeCount]string{
	PathFound: "path_found",
	NoPath:    "no_path",
	Rejected:  "rejected",
}

func (o Outcome) String() string {
	if o < 0 || o >= outcomeCount {
		return "unknown"
	}
	return outcomeNames[o]
}
