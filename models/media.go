package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Media types, derived from the uploaded content type
const (
	MediaTypePhoto = "photo"
	MediaTypeVideo = "video"
)

// Media holds the structure for the media collection in mongo
type Media struct {
	ID         primitive.ObjectID `json:"media_id" bson:"_id"`
	VehicleID  string             `json:"vehicle_id" bson:"vehicle_id"`
	UserID     string             `json:"user_id,omitempty" bson:"user_id,omitempty"`
	MediaType  string             `json:"media_type" bson:"media_type"`
	MediaURL   string             `json:"media_url" bson:"media_url"`
	Caption    string             `json:"caption,omitempty" bson:"caption,omitempty"`
	UploadedAt primitive.DateTime `json:"uploaded_at" bson:"uploaded_at"`
}

// MediaUploadResponse is returned after a successful media upload
type MediaUploadResponse struct {
	Success  bool   `json:"success"`
	MediaURL string `json:"media_url"`
	MediaID  string `json:"media_id"`
}
