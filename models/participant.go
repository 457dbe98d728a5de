package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Participant holds the structure for the participants collection in mongo.
// There is at most one document per name; the unique index on `name` is
// created at startup.
type Participant struct {
	ID       primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	LastSeen time.Time          `json:"lastSeen" bson:"lastSeen"`
}

// JoinRequest is the inbound payload for registering a participant
type JoinRequest struct {
	Name string `json:"name" validate:"required"`
}
