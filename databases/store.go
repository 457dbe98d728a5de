package databases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/batepapo/group-chat-api/chat"
	"github.com/batepapo/group-chat-api/models"
)

// Store adapts the participant and message collections to the contract the
// chat engines consume. Atomicity comes from mongo itself: the unique name
// index rejects duplicate joins, and the conditional FindOneAndDelete
// re-checks staleness at commit time.
type Store struct {
	participants ParticipantDatabase
	messages     MessageDatabase
}

var _ chat.Store = (*Store)(nil)

// NewStore wires the mongo-backed chat store over the given db connection.
func NewStore(db DatabaseHelper) *Store {
	return &Store{
		participants: NewParticipantDatabase(db),
		messages:     NewMessageDatabase(db),
	}
}

// EnsureIndexes creates the indexes the store relies on. Called once at
// startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if err := s.participants.EnsureIndexes(ctx); err != nil {
		return storeErr("create participant indexes", err)
	}
	return nil
}

// FindParticipant returns the active participant with that name, or nil when
// none exists.
func (s *Store) FindParticipant(ctx context.Context, name string) (*models.Participant, error) {
	p, err := s.participants.FindOne(ctx, bson.M{"name": name})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("find participant", err)
	}
	return p, nil
}

// InsertParticipant creates a participant record, relying on the unique name
// index for atomic check-and-insert.
func (s *Store) InsertParticipant(ctx context.Context, p models.Participant) error {
	err := s.participants.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("participant %q: %w", p.Name, chat.ErrDuplicateName)
	}
	if err != nil {
		return storeErr("insert participant", err)
	}
	return nil
}

// TouchParticipant sets lastSeen for an existing participant, reporting
// whether a record matched.
func (s *Store) TouchParticipant(ctx context.Context, name string, now time.Time) (bool, error) {
	matched, err := s.participants.UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{"lastSeen": now}},
	)
	if err != nil {
		return false, storeErr("touch participant", err)
	}
	return matched > 0, nil
}

// DeleteParticipantIfStale removes the named participant only if lastSeen is
// still at or before cutoff when the delete commits.
func (s *Store) DeleteParticipantIfStale(ctx context.Context, name string, cutoff time.Time) (bool, error) {
	_, err := s.participants.FindOneAndDelete(ctx, bson.M{
		"name":     name,
		"lastSeen": bson.M{"$lte": cutoff},
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, storeErr("delete stale participant", err)
	}
	return true, nil
}

// ListParticipants returns all active participants.
func (s *Store) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	participants, err := s.participants.Find(ctx, bson.D{})
	if err != nil {
		return nil, storeErr("list participants", err)
	}
	return participants, nil
}

// AppendMessage stores a message and returns it with the storage id mongo
// assigned.
func (s *Store) AppendMessage(ctx context.Context, m models.Message) (models.Message, error) {
	id, err := s.messages.InsertOne(ctx, m)
	if err != nil {
		return models.Message{}, storeErr("append message", err)
	}
	if oid, ok := id.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return m, nil
}

// FindMessage returns the message with that id, or nil when none exists. A
// malformed id is treated the same as an absent document.
func (s *Store) FindMessage(ctx context.Context, id string) (*models.Message, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	m, err := s.messages.FindOne(ctx, bson.M{"_id": oid})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("find message", err)
	}
	return m, nil
}

// ListMessages returns every stored message ordered by sentAt ascending with
// the storage id as tiebreaker, keeping sentAt non-decreasing in list order
// even under concurrent appends.
func (s *Store) ListMessages(ctx context.Context) ([]models.Message, error) {
	sort := options.Find().SetSort(bson.D{{Key: "sentAt", Value: 1}, {Key: "_id", Value: 1}})
	messages, err := s.messages.Find(ctx, bson.D{}, sort)
	if err != nil {
		return nil, storeErr("list messages", err)
	}
	return messages, nil
}

// DeleteMessage removes a message by id, reporting whether a document was
// deleted.
func (s *Store) DeleteMessage(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	deleted, err := s.messages.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, storeErr("delete message", err)
	}
	return deleted > 0, nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, chat.ErrStoreUnavailable)
}
