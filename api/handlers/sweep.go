package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/batepapo/group-chat-api/api/scheduler"
	"github.com/batepapo/group-chat-api/config"
	"github.com/batepapo/group-chat-api/models"
)

// Sweep exposes the eviction sweep over HTTP, next to its cron cadence
type Sweep struct {
	Scheduler *scheduler.Scheduler
}

// TriggerSweepHandler runs an eviction pass immediately and returns the
// evicted participant names
func (s Sweep) TriggerSweepHandler(w http.ResponseWriter, r *http.Request) {
	evicted := s.Scheduler.RunSweep(r.Context())

	names := make([]string, 0, len(evicted))
	for _, p := range evicted {
		names = append(names, p.Name)
	}
	b, err := json.Marshal(models.SweepResultResponse{Evicted: names})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SweepStatusHandler reports the most recent sweep outcome
func (s Sweep) SweepStatusHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(s.Scheduler.Status())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
