package chat

import (
	"context"
	"time"

	"github.com/batepapo/group-chat-api/models"
)

// Store is the persistence contract consumed by the presence and admission
// engines. The mongo-backed implementation lives in the databases package;
// tests exercise the engines against an in-memory fake.
//
// Implementations must provide atomic check-and-insert for participants
// (InsertParticipant fails with ErrDuplicateName rather than overwriting) and
// atomic check-and-delete for the sweep (DeleteParticipantIfStale re-checks
// staleness at commit time, so a heartbeat that lands first wins the race).
// Transient failures are reported as ErrStoreUnavailable.
type Store interface {
	// FindParticipant returns the active participant with that name, or
	// nil without error when none exists.
	FindParticipant(ctx context.Context, name string) (*models.Participant, error)

	// InsertParticipant creates a participant record, failing with
	// ErrDuplicateName if the name is already active.
	InsertParticipant(ctx context.Context, p models.Participant) error

	// TouchParticipant updates lastSeen for an existing participant and
	// reports whether a record matched.
	TouchParticipant(ctx context.Context, name string, now time.Time) (bool, error)

	// DeleteParticipantIfStale removes the named participant only if its
	// lastSeen is still at or before cutoff, reporting whether a document
	// was actually deleted.
	DeleteParticipantIfStale(ctx context.Context, name string, cutoff time.Time) (bool, error)

	// ListParticipants returns all active participants.
	ListParticipants(ctx context.Context) ([]models.Participant, error)

	// AppendMessage stores a message and returns it with its storage
	// identity assigned.
	AppendMessage(ctx context.Context, m models.Message) (models.Message, error)

	// FindMessage returns the message with that id, or nil without error
	// when none exists.
	FindMessage(ctx context.Context, id string) (*models.Message, error)

	// ListMessages returns every stored message ordered by sentAt, with
	// storage id as tiebreaker.
	ListMessages(ctx context.Context) ([]models.Message, error)

	// DeleteMessage removes a message by id, reporting whether a document
	// was actually deleted.
	DeleteMessage(ctx context.Context, id string) (bool, error)
}
