package databases

//go generate: mockery --name MediaDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopsync/shopsync-api/models"
)

const mediaName = "media"

// MediaDatabase contains the methods to use with the media database
type MediaDatabase interface {
	InsertOne(ctx context.Context, media models.Media) error
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Media, error)
	DeleteMany(ctx context.Context, filter interface{}) error
}

type mediaDatabase struct {
	db DatabaseHelper
}

// NewMediaDatabase initializes a new instance of media database with the provided db connection
func NewMediaDatabase(db DatabaseHelper) MediaDatabase {
	return &mediaDatabase{
		db: db,
	}
}

func (c *mediaDatabase) InsertOne(ctx context.Context, media models.Media) error {
	if _, err := c.db.Collection(mediaName).InsertOne(ctx, media); err != nil {
		return models.NewPersistenceError("failed to insert media", err)
	}
	return nil
}

func (c *mediaDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Media, error) {
	cursor, err := c.db.Collection(mediaName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, models.NewPersistenceError("failed to query media", err)
	}
	var media []models.Media
	if err := cursor.Decode(&media); err != nil {
		return nil, models.NewPersistenceError("failed to decode media", err)
	}
	return media, nil
}

func (c *mediaDatabase) DeleteMany(ctx context.Context, filter interface{}) error {
	if _, err := c.db.Collection(mediaName).DeleteMany(ctx, filter); err != nil {
		return models.NewPersistenceError("failed to delete media", err)
	}
	return nil
}
