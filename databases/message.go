package databases

//go generate: mockery --name MessageDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopsync/shopsync-api/models"
)

const messageName = "messages"

// MessageDatabase contains the methods to use with the message database
type MessageDatabase interface {
	InsertOne(ctx context.Context, message models.Message) error
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Message, error)
	DeleteMany(ctx context.Context, filter interface{}) error
}

type messageDatabase struct {
	db DatabaseHelper
}

// NewMessageDatabase initializes a new instance of message database with the provided db connection
func NewMessageDatabase(db DatabaseHelper) MessageDatabase {
	return &messageDatabase{
		db: db,
	}
}

func (c *messageDatabase) InsertOne(ctx context.Context, message models.Message) error {
	if _, err := c.db.Collection(messageName).InsertOne(ctx, message); err != nil {
		return models.NewPersistenceError("failed to insert message", err)
	}
	return nil
}

func (c *messageDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Message, error) {
	cursor, err := c.db.Collection(messageName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, models.NewPersistenceError("failed to query messages", err)
	}
	var messages []models.Message
	if err := cursor.Decode(&messages); err != nil {
		return nil, models.NewPersistenceError("failed to decode messages", err)
	}
	return messages, nil
}

func (c *messageDatabase) DeleteMany(ctx context.Context, filter interface{}) error {
	if _, err := c.db.Collection(messageName).DeleteMany(ctx, filter); err != nil {
		return models.NewPersistenceError("failed to delete messages", err)
	}
	return nil
}
