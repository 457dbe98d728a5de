package chat

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/batepapo/group-chat-api/models"
)

// Manager owns the participant lifecycle: join, heartbeat renewal and the
// time-based eviction sweep. Presence is a pure TTL mechanism; clients are
// expected to heartbeat at an interval strictly shorter than the threshold.
type Manager struct {
	store     Store
	threshold time.Duration
	now       func() time.Time
}

// NewManager returns a Manager evicting participants whose last heartbeat is
// at least threshold old.
func NewManager(store Store, threshold time.Duration) *Manager {
	return &Manager{
		store:     store,
		threshold: threshold,
		now:       time.Now,
	}
}

// Join registers a new participant and announces it with a status message.
// The name is sanitized first; an empty result fails validation, and a name
// already active fails with ErrDuplicateName (case-sensitive exact match).
func (m *Manager) Join(ctx context.Context, name string) (models.Participant, error) {
	name = Sanitize(name)
	if name == "" {
		return models.Participant{}, fmt.Errorf("name is required: %w", ErrValidation)
	}

	now := m.now()
	p := models.Participant{Name: name, LastSeen: now}
	if err := m.store.InsertParticipant(ctx, p); err != nil {
		return models.Participant{}, err
	}

	_, err := m.store.AppendMessage(ctx, models.Message{
		From:   name,
		To:     models.BroadcastTarget,
		Text:   name + " joined",
		Kind:   models.KindStatus,
		SentAt: now,
	})
	if err != nil {
		// The participant record exists either way; the caller sees the
		// append failure and may retry the announcement path by rejoining
		// after eviction.
		return models.Participant{}, err
	}

	zap.S().Infow("participant joined", "name", name)
	return p, nil
}

// Heartbeat renews presence for an existing participant, failing with
// ErrNotFound when no active record exists so the caller can surface a
// "please rejoin" condition.
func (m *Manager) Heartbeat(ctx context.Context, name string) error {
	name = Sanitize(name)
	if name == "" {
		return fmt.Errorf("name is required: %w", ErrValidation)
	}

	ok, err := m.store.TouchParticipant(ctx, name, m.now())
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("participant %q: %w", name, ErrNotFound)
	}
	return nil
}

// Participants returns all currently active participants.
func (m *Manager) Participants(ctx context.Context) ([]models.Participant, error) {
	return m.store.ListParticipants(ctx)
}

// SweepExpired evicts every participant whose lastSeen is at least the
// configured threshold before now, appending a "<name> left" status message
// per eviction, and returns the removed participants.
//
// The staleness predicate is re-checked by the store at delete time, so a
// heartbeat that commits after the snapshot but before the delete wins and
// the participant survives. Repeated invocation is idempotent.
func (m *Manager) SweepExpired(ctx context.Context, now time.Time) ([]models.Participant, error) {
	participants, err := m.store.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := now.Add(-m.threshold)
	var evicted []models.Participant
	for _, p := range participants {
		if p.LastSeen.After(cutoff) {
			continue
		}
		deleted, err := m.store.DeleteParticipantIfStale(ctx, p.Name, cutoff)
		if err != nil {
			return evicted, err
		}
		if !deleted {
			// A heartbeat or another sweep got there first.
			continue
		}
		_, err = m.store.AppendMessage(ctx, models.Message{
			From:   p.Name,
			To:     models.BroadcastTarget,
			Text:   p.Name + " left",
			Kind:   models.KindStatus,
			SentAt: now,
		})
		if err != nil {
			return evicted, err
		}
		evicted = append(evicted, p)
		zap.S().Infow("participant evicted", "name", p.Name, "lastSeen", p.LastSeen)
	}
	return evicted, nil
}

// Threshold returns the configured staleness threshold.
func (m *Manager) Threshold() time.Duration {
	return m.threshold
}
