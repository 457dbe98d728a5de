package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/batepapo/group-chat-api/models"
)

var validate = validator.New()

// Admitter validates and timestamps incoming messages before they reach the
// store, and handles author-initiated removal.
type Admitter struct {
	store Store
	now   func() time.Time
}

// NewAdmitter returns an Admitter backed by the given store.
func NewAdmitter(store Store) *Admitter {
	return &Admitter{store: store, now: time.Now}
}

// Submit admits a client message. All string fields are sanitized first, then
// validated in order: non-empty text, non-empty recipient, an accepted kind
// (status is server-only), and finally a currently-present sender. The stored
// message carries a server-assigned sentAt; client timestamps are never
// trusted.
//
// The presence check and the append are separate store operations. A sweep
// evicting the sender between the two does not retract the message: last
// writer wins, and readers may observe a message from a participant whose
// "left" status follows it.
func (a *Admitter) Submit(ctx context.Context, sender, to, text, kind string) (models.Message, error) {
	sender = Sanitize(sender)
	req := models.SubmitMessageRequest{
		To:   Sanitize(to),
		Text: Sanitize(text),
		Kind: Sanitize(kind),
	}

	if req.Text == "" {
		return models.Message{}, fmt.Errorf("text is required: %w", ErrValidation)
	}
	if req.To == "" {
		return models.Message{}, fmt.Errorf("recipient is required: %w", ErrValidation)
	}
	if err := validate.Struct(req); err != nil {
		return models.Message{}, fmt.Errorf("invalid message payload: %v: %w", err, ErrValidation)
	}

	p, err := a.store.FindParticipant(ctx, sender)
	if err != nil {
		return models.Message{}, err
	}
	if p == nil {
		return models.Message{}, fmt.Errorf("sender %q is not present: %w", sender, ErrUnknownSender)
	}

	return a.store.AppendMessage(ctx, models.Message{
		From:   sender,
		To:     req.To,
		Text:   req.Text,
		Kind:   req.Kind,
		SentAt: a.now(),
	})
}

// Remove deletes a message permanently. Only the author may remove a message;
// anyone else gets ErrForbidden, and an unknown id gets ErrNotFound.
func (a *Admitter) Remove(ctx context.Context, id, requester string) error {
	requester = Sanitize(requester)

	msg, err := a.store.FindMessage(ctx, id)
	if err != nil {
		return err
	}
	if msg == nil {
		return fmt.Errorf("message %s: %w", id, ErrNotFound)
	}
	if msg.From != requester {
		return fmt.Errorf("message %s does not belong to %q: %w", id, requester, ErrForbidden)
	}

	deleted, err := a.store.DeleteMessage(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("message %s: %w", id, ErrNotFound)
	}
	return nil
}

// Visible lists the messages the given identity may observe, in chronological
// order. A positive limit keeps only that many of the most recent eligible
// messages.
func (a *Admitter) Visible(ctx context.Context, identity string, limit int) ([]models.Message, error) {
	msgs, err := a.store.ListMessages(ctx)
	if err != nil {
		return nil, err
	}
	return VisibleTo(identity, msgs, limit), nil
}
