package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Vehicle holds the structure for the vehicles collection in mongo. The
// unique_link field is the public tracking token handed to the customer; it
// is minted once at check-in and never rewritten.
type Vehicle struct {
	ID                  primitive.ObjectID  `json:"vehicle_id" bson:"_id"`
	ShopID              string              `json:"shop_id" bson:"shop_id"`
	CustomerName        string              `json:"customer_name" bson:"customer_name"`
	CustomerPhone       string              `json:"customer_phone" bson:"customer_phone"`
	CustomerEmail       string              `json:"customer_email,omitempty" bson:"customer_email,omitempty"`
	Make                string              `json:"make,omitempty" bson:"make,omitempty"`
	Model               string              `json:"model,omitempty" bson:"model,omitempty"`
	Year                int                 `json:"year,omitempty" bson:"year,omitempty"`
	Vin                 string              `json:"vin,omitempty" bson:"vin,omitempty"`
	LicensePlate        string              `json:"license_plate,omitempty" bson:"license_plate,omitempty"`
	UniqueLink          string              `json:"unique_link" bson:"unique_link"`
	Status              string              `json:"status" bson:"status"`
	EstimatedCompletion *primitive.DateTime `json:"estimated_completion,omitempty" bson:"estimated_completion,omitempty"`
	AwaitingWarranty    bool                `json:"awaiting_warranty" bson:"awaiting_warranty"`
	CheckedInAt         primitive.DateTime  `json:"checked_in_at" bson:"checked_in_at"`
	CompletedAt         *primitive.DateTime `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
}

// VehicleCreateRequest is the request body for checking in a new vehicle
type VehicleCreateRequest struct {
	CustomerName        string `json:"customer_name"`
	CustomerPhone       string `json:"customer_phone"`
	CustomerEmail       string `json:"customer_email"`
	Make                string `json:"make"`
	Model               string `json:"model"`
	Year                int    `json:"year"`
	Vin                 string `json:"vin"`
	LicensePlate        string `json:"license_plate"`
	EstimatedCompletion string `json:"estimated_completion"`
}

// StatusUpdateRequest is the request body for a status transition
type StatusUpdateRequest struct {
	NewStatus string `json:"new_status"`
	Message   string `json:"message"`
}

// StatusUpdateResponse acknowledges a status transition. It never carries
// partial vehicle state.
type StatusUpdateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WarrantyToggleResponse is returned by the toggle-warranty endpoint
type WarrantyToggleResponse struct {
	Success          bool   `json:"success"`
	AwaitingWarranty bool   `json:"awaiting_warranty"`
	NewStatus        string `json:"new_status"`
}
