package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Approval holds the structure for the approvals collection in mongo.
// Approved is nil while the request is pending and transitions exactly once
// to true or false when the customer responds.
type Approval struct {
	ID          primitive.ObjectID  `json:"approval_id" bson:"_id"`
	VehicleID   string              `json:"vehicle_id" bson:"vehicle_id"`
	Description string              `json:"description" bson:"description"`
	Cost        float64             `json:"cost" bson:"cost"`
	Approved    *bool               `json:"approved" bson:"approved"`
	ApprovedAt  *primitive.DateTime `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
	CreatedAt   primitive.DateTime  `json:"created_at" bson:"created_at"`
}

// ApprovalCreateRequest is the request body for requesting approval of
// additional work
type ApprovalCreateRequest struct {
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
}

// ApprovalResponseRequest is the customer's answer to an approval request
type ApprovalResponseRequest struct {
	Approved bool `json:"approved"`
}
