package databases

//go generate: mockery --name ApprovalDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopsync/shopsync-api/models"
)

const approvalName = "approvals"

// ApprovalDatabase contains the methods to use with the approval database
type ApprovalDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Approval, error)
	InsertOne(ctx context.Context, approval models.Approval) error
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) error
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Approval, error)
	DeleteMany(ctx context.Context, filter interface{}) error
}

type approvalDatabase struct {
	db DatabaseHelper
}

// NewApprovalDatabase initializes a new instance of approval database with the provided db connection
func NewApprovalDatabase(db DatabaseHelper) ApprovalDatabase {
	return &approvalDatabase{
		db: db,
	}
}

func (c *approvalDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Approval, error) {
	approval := &models.Approval{}
	err := c.db.Collection(approvalName).FindOne(ctx, filter).Decode(&approval)
	if err == mongo.ErrNoDocuments {
		return nil, models.NewNotFoundError("approval not found", err)
	}
	if err != nil {
		return nil, models.NewPersistenceError("failed to read approval", err)
	}
	return approval, nil
}

func (c *approvalDatabase) InsertOne(ctx context.Context, approval models.Approval) error {
	if _, err := c.db.Collection(approvalName).InsertOne(ctx, approval); err != nil {
		return models.NewPersistenceError("failed to insert approval", err)
	}
	return nil
}

func (c *approvalDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) error {
	matched, err := c.db.Collection(approvalName).UpdateOne(ctx, filter, update)
	if err != nil {
		return models.NewPersistenceError("failed to update approval", err)
	}
	if matched == 0 {
		return models.NewNotFoundError("approval not found", mongo.ErrNoDocuments)
	}
	return nil
}

func (c *approvalDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Approval, error) {
	cursor, err := c.db.Collection(approvalName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, models.NewPersistenceError("failed to query approvals", err)
	}
	var approvals []models.Approval
	if err := cursor.Decode(&approvals); err != nil {
		return nil, models.NewPersistenceError("failed to decode approvals", err)
	}
	return approvals, nil
}

func (c *approvalDatabase) DeleteMany(ctx context.Context, filter interface{}) error {
	if _, err := c.db.Collection(approvalName).DeleteMany(ctx, filter); err != nil {
		return models.NewPersistenceError("failed to delete approvals", err)
	}
	return nil
}
