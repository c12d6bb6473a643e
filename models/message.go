package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Sender types for the messages collection
const (
	SenderCustomer = "customer"
	SenderAdvisor  = "advisor"
)

// Message holds the structure for the messages collection in mongo
type Message struct {
	ID          primitive.ObjectID `json:"message_id" bson:"_id"`
	VehicleID   string             `json:"vehicle_id" bson:"vehicle_id"`
	SenderType  string             `json:"sender_type" bson:"sender_type"`
	MessageText string             `json:"message_text" bson:"message_text"`
	Read        bool               `json:"read" bson:"read"`
	SentAt      primitive.DateTime `json:"sent_at" bson:"sent_at"`
}

// MessageCreateRequest is the request body for posting a message
type MessageCreateRequest struct {
	MessageText string `json:"message_text"`
	SenderType  string `json:"sender_type"`
}
