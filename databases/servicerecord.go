package databases

//go generate: mockery --name ServiceRecordDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopsync/shopsync-api/models"
)

const serviceRecordName = "service_records"

// ServiceRecordDatabase contains the methods to use with the service record database
type ServiceRecordDatabase interface {
	InsertOne(ctx context.Context, record models.ServiceRecord) error
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ServiceRecord, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) error
	DeleteMany(ctx context.Context, filter interface{}) error
}

type serviceRecordDatabase struct {
	db DatabaseHelper
}

// NewServiceRecordDatabase initializes a new instance of service record database with the provided db connection
func NewServiceRecordDatabase(db DatabaseHelper) ServiceRecordDatabase {
	return &serviceRecordDatabase{
		db: db,
	}
}

func (c *serviceRecordDatabase) InsertOne(ctx context.Context, record models.ServiceRecord) error {
	if _, err := c.db.Collection(serviceRecordName).InsertOne(ctx, record); err != nil {
		return models.NewPersistenceError("failed to insert service record", err)
	}
	return nil
}

func (c *serviceRecordDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ServiceRecord, error) {
	cursor, err := c.db.Collection(serviceRecordName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, models.NewPersistenceError("failed to query service records", err)
	}
	var records []models.ServiceRecord
	if err := cursor.Decode(&records); err != nil {
		return nil, models.NewPersistenceError("failed to decode service records", err)
	}
	return records, nil
}

func (c *serviceRecordDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) error {
	matched, err := c.db.Collection(serviceRecordName).UpdateOne(ctx, filter, update)
	if err != nil {
		return models.NewPersistenceError("failed to update service record", err)
	}
	if matched == 0 {
		return models.NewNotFoundError("service record not found", mongo.ErrNoDocuments)
	}
	return nil
}

func (c *serviceRecordDatabase) DeleteMany(ctx context.Context, filter interface{}) error {
	if _, err := c.db.Collection(serviceRecordName).DeleteMany(ctx, filter); err != nil {
		return models.NewPersistenceError("failed to delete service records", err)
	}
	return nil
}
