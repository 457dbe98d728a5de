package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/batepapo/group-chat-api/models"
)

const messageCollectionName = "messages"

// MessageDatabase contains the methods to use with the message collection
type MessageDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Message, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Message, error)
	InsertOne(ctx context.Context, message models.Message) (interface{}, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
}

type messageDatabase struct {
	db DatabaseHelper
}

// NewMessageDatabase initializes a new instance of message database with the
// provided db connection
func NewMessageDatabase(db DatabaseHelper) MessageDatabase {
	return &messageDatabase{
		db: db,
	}
}

func (m *messageDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Message, error) {
	message := &models.Message{}
	err := m.db.Collection(messageCollectionName).FindOne(ctx, filter).Decode(message)
	if err != nil {
		return nil, err
	}
	return message, nil
}

func (m *messageDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Message, error) {
	cursor, err := m.db.Collection(messageCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (m *messageDatabase) InsertOne(ctx context.Context, message models.Message) (interface{}, error) {
	return m.db.Collection(messageCollectionName).InsertOne(ctx, message)
}

func (m *messageDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return m.db.Collection(messageCollectionName).DeleteOne(ctx, filter)
}
