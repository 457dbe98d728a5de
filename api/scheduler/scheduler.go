package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/batepapo/group-chat-api/chat"
	"github.com/batepapo/group-chat-api/models"
)

// Scheduler runs the periodic eviction sweep. It is an owned instance with a
// deterministic Start/Stop pair rather than a fire-and-forget interval, so
// tests can drive RunSweep directly without real timers.
type Scheduler struct {
	cron    *cron.Cron
	manager *chat.Manager
	every   time.Duration

	mu           sync.Mutex
	lastRun      time.Time
	lastEvicted  []string
	runsComplete int64
}

// New creates a scheduler sweeping at the given cadence. The cadence bounds
// the worst-case staleness of presence as observed by others; it does not
// need to equal the eviction threshold.
func New(manager *chat.Manager, every time.Duration) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		manager: manager,
		every:   every,
	}
}

// Start begins the periodic sweep
func (s *Scheduler) Start() {
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.every), func() { s.RunSweep(context.Background()) })
	if err != nil {
		zap.S().Errorw("failed to register sweep job", "error", err)
		return
	}
	s.cron.Start()
	zap.S().Infow("presence sweep scheduler started", "every", s.every)
}

// Stop gracefully stops the scheduler, waiting for a running sweep to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("presence sweep scheduler stopped")
}

// RunSweep performs one eviction pass and records the outcome. Safe to call
// concurrently with the cron cadence; the sweep itself is idempotent.
func (s *Scheduler) RunSweep(ctx context.Context) []models.Participant {
	runID := uuid.New().String()
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	now := time.Now()
	evicted, err := s.manager.SweepExpired(ctx, now)
	if err != nil {
		zap.S().Errorw("sweep failed", "runId", runID, "error", err)
	}

	names := make([]string, 0, len(evicted))
	for _, p := range evicted {
		names = append(names, p.Name)
	}

	s.mu.Lock()
	s.lastRun = now
	s.lastEvicted = names
	s.runsComplete++
	s.mu.Unlock()

	zap.S().Infow("sweep complete", "runId", runID, "evicted", len(evicted))
	return evicted
}

// Status reports the most recent sweep outcome
func (s *Scheduler) Status() models.SweepStatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := models.SweepStatusResponse{
		LastEvicted:  append([]string{}, s.lastEvicted...),
		RunsComplete: s.runsComplete,
	}
	if !s.lastRun.IsZero() {
		resp.LastRun = s.lastRun.UTC().Format(time.RFC3339)
	}
	return resp
}
