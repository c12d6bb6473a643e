package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ServiceRecord holds the structure for the service_records collection in
// mongo. NextReminderDate is only set when a reminder interval was supplied;
// ReminderSent flips from false to true once a reminder has actually gone out.
type ServiceRecord struct {
	ID                     primitive.ObjectID  `json:"service_id" bson:"_id"`
	VehicleID              string              `json:"vehicle_id" bson:"vehicle_id"`
	ServiceType            string              `json:"service_type" bson:"service_type"`
	Mileage                int                 `json:"mileage" bson:"mileage"`
	NextServiceMileage     int                 `json:"next_service_mileage,omitempty" bson:"next_service_mileage,omitempty"`
	ReminderIntervalMonths int                 `json:"reminder_interval_months,omitempty" bson:"reminder_interval_months,omitempty"`
	NextReminderDate       *primitive.DateTime `json:"next_reminder_date,omitempty" bson:"next_reminder_date,omitempty"`
	Notes                  string              `json:"notes,omitempty" bson:"notes,omitempty"`
	ReminderSent           bool                `json:"reminder_sent" bson:"reminder_sent"`
	CreatedAt              primitive.DateTime  `json:"created_at" bson:"created_at"`
}

// ServiceRecordCreateRequest is the request body for recording a completed
// service
type ServiceRecordCreateRequest struct {
	ServiceType            string `json:"service_type"`
	Mileage                int    `json:"mileage"`
	NextServiceMileage     int    `json:"next_service_mileage"`
	ReminderIntervalMonths int    `json:"reminder_interval_months"`
	Notes                  string `json:"notes"`
}

// DueReminder joins a due, unsent service record with its owning vehicle
type DueReminder struct {
	ServiceRecord ServiceRecord `json:"service_record"`
	Vehicle       Vehicle       `json:"vehicle"`
}

// DispatchResponse reports how many reminders went out in one dispatch cycle
type DispatchResponse struct {
	Success       bool `json:"success"`
	RemindersSent int  `json:"reminders_sent"`
}
