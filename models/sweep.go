package models

// SweepStatusResponse reports the most recent eviction sweep
type SweepStatusResponse struct {
	LastRun      string   `json:"lastRun,omitempty"`
	LastEvicted  []string `json:"lastEvicted"`
	RunsComplete int64    `json:"runsComplete"`
}

// SweepResultResponse carries the names evicted by a triggered sweep
type SweepResultResponse struct {
	Evicted []string `json:"evicted"`
}
