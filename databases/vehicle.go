package databases

//go generate: mockery --name VehicleDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopsync/shopsync-api/models"
)

const vehicleName = "vehicles"

// VehicleDatabase contains the methods to use with the vehicle database
type VehicleDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Vehicle, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Vehicle, error)
	InsertOne(ctx context.Context, vehicle models.Vehicle) error
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) error
	DeleteOne(ctx context.Context, filter interface{}) error
}

type vehicleDatabase struct {
	db DatabaseHelper
}

// NewVehicleDatabase initializes a new instance of vehicle database with the provided db connection
func NewVehicleDatabase(db DatabaseHelper) VehicleDatabase {
	return &vehicleDatabase{
		db: db,
	}
}

func (c *vehicleDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{}
	err := c.db.Collection(vehicleName).FindOne(ctx, filter).Decode(&vehicle)
	if err == mongo.ErrNoDocuments {
		return nil, models.NewNotFoundError("vehicle not found", err)
	}
	if err != nil {
		return nil, models.NewPersistenceError("failed to read vehicle", err)
	}
	return vehicle, nil
}

func (c *vehicleDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Vehicle, error) {
	cursor, err := c.db.Collection(vehicleName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, models.NewPersistenceError("failed to query vehicles", err)
	}
	var vehicles []models.Vehicle
	if err := cursor.Decode(&vehicles); err != nil {
		return nil, models.NewPersistenceError("failed to decode vehicles", err)
	}
	return vehicles, nil
}

func (c *vehicleDatabase) InsertOne(ctx context.Context, vehicle models.Vehicle) error {
	if _, err := c.db.Collection(vehicleName).InsertOne(ctx, vehicle); err != nil {
		return models.NewPersistenceError("failed to insert vehicle", err)
	}
	return nil
}

func (c *vehicleDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) error {
	matched, err := c.db.Collection(vehicleName).UpdateOne(ctx, filter, update)
	if err != nil {
		return models.NewPersistenceError("failed to update vehicle", err)
	}
	if matched == 0 {
		return models.NewNotFoundError("vehicle not found", mongo.ErrNoDocuments)
	}
	return nil
}

func (c *vehicleDatabase) DeleteOne(ctx context.Context, filter interface{}) error {
	if _, err := c.db.Collection(vehicleName).DeleteOne(ctx, filter); err != nil {
		return models.NewPersistenceError("failed to delete vehicle", err)
	}
	return nil
}
