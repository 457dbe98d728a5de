package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/batepapo/group-chat-api/models"
)

const participantCollectionName = "participants"

// ParticipantDatabase contains the methods to use with the participant
// collection
type ParticipantDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Participant, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Participant, error)
	InsertOne(ctx context.Context, participant models.Participant) error
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	FindOneAndDelete(ctx context.Context, filter interface{}) (*models.Participant, error)
	EnsureIndexes(ctx context.Context) error
}

type participantDatabase struct {
	db DatabaseHelper
}

// NewParticipantDatabase initializes a new instance of participant database
// with the provided db connection
func NewParticipantDatabase(db DatabaseHelper) ParticipantDatabase {
	return &participantDatabase{
		db: db,
	}
}

func (p *participantDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Participant, error) {
	participant := &models.Participant{}
	err := p.db.Collection(participantCollectionName).FindOne(ctx, filter).Decode(participant)
	if err != nil {
		return nil, err
	}
	return participant, nil
}

func (p *participantDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Participant, error) {
	cursor, err := p.db.Collection(participantCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var participants []models.Participant
	if err := cursor.All(ctx, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

func (p *participantDatabase) InsertOne(ctx context.Context, participant models.Participant) error {
	_, err := p.db.Collection(participantCollectionName).InsertOne(ctx, participant)
	return err
}

func (p *participantDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	return p.db.Collection(participantCollectionName).UpdateOne(ctx, filter, update)
}

func (p *participantDatabase) FindOneAndDelete(ctx context.Context, filter interface{}) (*models.Participant, error) {
	participant := &models.Participant{}
	err := p.db.Collection(participantCollectionName).FindOneAndDelete(ctx, filter).Decode(participant)
	if err != nil {
		return nil, err
	}
	return participant, nil
}

// EnsureIndexes creates the unique index on participant names, giving join
// its atomic check-and-insert semantics.
func (p *participantDatabase) EnsureIndexes(ctx context.Context) error {
	return p.db.Collection(participantCollectionName).CreateIndex(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
}
