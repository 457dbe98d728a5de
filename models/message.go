package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message kinds. Status messages are server-generated on join/leave; clients
// may only submit public or private chat messages.
const (
	KindStatus         = "status"
	KindMessage        = "message"
	KindPrivateMessage = "private-message"
)

// BroadcastTarget is the reserved recipient for public and status messages.
const BroadcastTarget = "all"

// Message holds the structure for the messages collection in mongo. Documents
// are immutable once appended; only the author may delete one.
type Message struct {
	ID     primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	From   string             `json:"from" bson:"from"`
	To     string             `json:"to" bson:"to"`
	Text   string             `json:"text" bson:"text"`
	Kind   string             `json:"kind" bson:"kind"`
	SentAt time.Time          `json:"sentAt" bson:"sentAt"`
}

// SubmitMessageRequest is the inbound payload for posting a message. The
// sender comes from the User header, never the body, and `status` is not an
// accepted kind here.
type SubmitMessageRequest struct {
	To   string `json:"to" validate:"required"`
	Text string `json:"text" validate:"required"`
	Kind string `json:"kind" validate:"required,oneof=message private-message"`
}
