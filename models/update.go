package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Update holds the structure for the updates collection in mongo. One record
// is appended per status transition attempt; records are never modified.
type Update struct {
	ID        primitive.ObjectID `json:"update_id" bson:"_id"`
	VehicleID string             `json:"vehicle_id" bson:"vehicle_id"`
	UserID    string             `json:"user_id,omitempty" bson:"user_id,omitempty"`
	OldStatus string             `json:"old_status" bson:"old_status"`
	NewStatus string             `json:"new_status" bson:"new_status"`
	Message   string             `json:"message,omitempty" bson:"message,omitempty"`
	Timestamp primitive.DateTime `json:"timestamp" bson:"timestamp"`
}
