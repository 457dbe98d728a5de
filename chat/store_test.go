package chat

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/batepapo/group-chat-api/models"
)

// memStore is an in-memory Store used by the engine tests. It mirrors the
// atomicity contract of the mongo-backed store: insert fails on an existing
// name, and the stale delete re-checks lastSeen under the lock.
type memStore struct {
	mu           sync.Mutex
	participants map[string]models.Participant
	messages     []models.Message

	failing bool
	// beforeDelete, when set, runs just before DeleteParticipantIfStale
	// re-checks staleness, to interleave a racing heartbeat.
	beforeDelete func(name string)
}

func newMemStore() *memStore {
	return &memStore{participants: map[string]models.Participant{}}
}

func (s *memStore) fail() error {
	if s.failing {
		return fmt.Errorf("mocked outage: %w", ErrStoreUnavailable)
	}
	return nil
}

func (s *memStore) FindParticipant(_ context.Context, name string) (*models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	p, ok := s.participants[name]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *memStore) InsertParticipant(_ context.Context, p models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	if _, ok := s.participants[p.Name]; ok {
		return fmt.Errorf("participant %q: %w", p.Name, ErrDuplicateName)
	}
	p.ID = primitive.NewObjectID()
	s.participants[p.Name] = p
	return nil
}

func (s *memStore) TouchParticipant(_ context.Context, name string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return false, err
	}
	p, ok := s.participants[name]
	if !ok {
		return false, nil
	}
	p.LastSeen = now
	s.participants[name] = p
	return true, nil
}

func (s *memStore) DeleteParticipantIfStale(_ context.Context, name string, cutoff time.Time) (bool, error) {
	if s.beforeDelete != nil {
		s.beforeDelete(name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return false, err
	}
	p, ok := s.participants[name]
	if !ok || p.LastSeen.After(cutoff) {
		return false, nil
	}
	delete(s.participants, name)
	return true, nil
}

func (s *memStore) ListParticipants(_ context.Context) ([]models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	out := make([]models.Participant, 0, len(s.participants))
	for _, p := range s.participants {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memStore) AppendMessage(_ context.Context, m models.Message) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return models.Message{}, err
	}
	m.ID = primitive.NewObjectID()
	s.messages = append(s.messages, m)
	return m, nil
}

func (s *memStore) FindMessage(_ context.Context, id string) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	for _, m := range s.messages {
		if m.ID.Hex() == id {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (s *memStore) ListMessages(_ context.Context) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SentAt.Before(out[j].SentAt) })
	return out, nil
}

func (s *memStore) DeleteMessage(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return false, err
	}
	for i, m := range s.messages {
		if m.ID.Hex() == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeClock hands out a controllable time to the engines under test
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2023, 5, 12, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
	return c.t
}
