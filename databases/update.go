package databases

//go generate: mockery --name UpdateDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopsync/shopsync-api/models"
)

const updateName = "updates"

// UpdateDatabase contains the methods to use with the status update audit log
type UpdateDatabase interface {
	InsertOne(ctx context.Context, update models.Update) error
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Update, error)
	DeleteMany(ctx context.Context, filter interface{}) error
}

type updateDatabase struct {
	db DatabaseHelper
}

// NewUpdateDatabase initializes a new instance of update database with the provided db connection
func NewUpdateDatabase(db DatabaseHelper) UpdateDatabase {
	return &updateDatabase{
		db: db,
	}
}

func (c *updateDatabase) InsertOne(ctx context.Context, update models.Update) error {
	if _, err := c.db.Collection(updateName).InsertOne(ctx, update); err != nil {
		return models.NewPersistenceError("failed to insert update record", err)
	}
	return nil
}

func (c *updateDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Update, error) {
	cursor, err := c.db.Collection(updateName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, models.NewPersistenceError("failed to query update records", err)
	}
	var updates []models.Update
	if err := cursor.Decode(&updates); err != nil {
		return nil, models.NewPersistenceError("failed to decode update records", err)
	}
	return updates, nil
}

func (c *updateDatabase) DeleteMany(ctx context.Context, filter interface{}) error {
	if _, err := c.db.Collection(updateName).DeleteMany(ctx, filter); err != nil {
		return models.NewPersistenceError("failed to delete update records", err)
	}
	return nil
}
