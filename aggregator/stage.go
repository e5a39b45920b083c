package aggregator

// Stage is a step of one aggregate fetch
type Stage int

const (
	StageIdle Stage = iota
	StageFetchingPrimary
	StageResolvingReferences
	StageEnriching
	StageDerivedFiltering
	StageReady
	// StageFailed is terminal and only reachable from StageFetchingPrimary
	StageFailed
)

var stageNames = [...]string{
	StageIdle:                "idle",
	StageFetchingPrimary:     "fetching-primary",
	StageResolvingReferences: "resolving-references",
	StageEnriching:           "enriching",
	StageDerivedFiltering:    "derived-filtering",
	StageReady:               "ready",
	StageFailed:              "failed",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// StageEvent describes one transition, delivered to the WithStageObserver callback
type StageEvent struct {
	RequestID string
	Kind      string
	From      Stage
	To        Stage
}
