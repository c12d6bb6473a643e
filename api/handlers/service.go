package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/shopsync/shopsync-api/api/scheduler"
	"github.com/shopsync/shopsync-api/config"
	"github.com/shopsync/shopsync-api/databases"
	"github.com/shopsync/shopsync-api/models"
	"github.com/shopsync/shopsync-api/sms"
)

// Service exposes completed-service records and the reminder workflow
type Service struct {
	DB        databases.ServiceRecordDatabase
	VDB       databases.VehicleDatabase
	SMS       sms.Sender
	Scheduler *scheduler.Scheduler
}

// CreateServiceRecordHandler records a completed service for a vehicle and
// texts the customer a confirmation. Unlike status updates, the confirmation
// text is part of the contract here: a failed send fails the whole request.
func (s Service) CreateServiceRecordHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vehicleID := mux.Vars(r)["vehicle_id"]
	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("invalid vehicle id", http.StatusBadRequest, w, err)
		return
	}

	var req models.ServiceRecordCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.ServiceType == "" {
		config.ErrorStatusFromErr("missing required fields", w,
			models.NewValidationError("service_type is required", nil))
		return
	}

	vehicle, err := s.VDB.FindOne(r.Context(), bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatusFromErr("failed to get vehicle by ID", w, err)
		return
	}

	now := time.Now()
	record := models.ServiceRecord{
		ID:                     primitive.NewObjectID(),
		VehicleID:              vehicleID,
		ServiceType:            req.ServiceType,
		Mileage:                req.Mileage,
		NextServiceMileage:     req.NextServiceMileage,
		ReminderIntervalMonths: req.ReminderIntervalMonths,
		Notes:                  req.Notes,
		ReminderSent:           false,
		CreatedAt:              primitive.NewDateTimeFromTime(now),
	}
	if req.ReminderIntervalMonths > 0 {
		// months are a fixed 30 days here, not calendar months
		next := primitive.NewDateTimeFromTime(now.Add(time.Duration(req.ReminderIntervalMonths) * 30 * 24 * time.Hour))
		record.NextReminderDate = &next
	}

	if err := s.DB.InsertOne(r.Context(), record); err != nil {
		config.ErrorStatusFromErr("failed to record service", w, err)
		return
	}

	if !s.SMS.Send(vehicle.CustomerPhone, serviceConfirmation(vehicle.CustomerName, record)) {
		zap.S().Errorw("service confirmation SMS failed",
			"vehicleId", vehicleID,
			"to", vehicle.CustomerPhone,
		)
		config.ErrorStatusFromErr("failed to send service confirmation", w,
			models.NewInternalError("failed to send service confirmation SMS", nil))
		return
	}

	b, err := json.Marshal(record)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// ServiceRecordsByVehicleIDHandler lists a vehicle's service history,
// newest first
func (s Service) ServiceRecordsByVehicleIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vehicleID := mux.Vars(r)["vehicle_id"]
	records, err := s.DB.Find(r.Context(), bson.M{"vehicle_id": vehicleID},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		config.ErrorStatusFromErr("failed to get service records", w, err)
		return
	}
	if records == nil {
		records = []models.ServiceRecord{}
	}

	b, err := json.Marshal(records)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DueRemindersHandler returns every due, unsent reminder joined with its
// vehicle. No pagination; the due set is expected to stay small.
func (s Service) DueRemindersHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	due, err := s.Scheduler.DueReminders(r.Context())
	if err != nil {
		config.ErrorStatusFromErr("failed to query due reminders", w, err)
		return
	}
	if due == nil {
		due = []models.DueReminder{}
	}

	b, err := json.Marshal(due)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DispatchRemindersHandler runs one reminder dispatch cycle on demand,
// the same code path the cron job takes
func (s Service) DispatchRemindersHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	sent, err := s.Scheduler.DispatchDueReminders(r.Context())
	if err != nil {
		config.ErrorStatusFromErr("failed to dispatch reminders", w, err)
		return
	}

	b, err := json.Marshal(models.DispatchResponse{Success: true, RemindersSent: sent})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func serviceConfirmation(customerName string, record models.ServiceRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi %s! Your %s at %d miles is complete at Summit Trucks.",
		customerName, record.ServiceType, record.Mileage)
	if record.NextServiceMileage > 0 {
		fmt.Fprintf(&sb, " Next service due at %d miles.", record.NextServiceMileage)
	}
	if record.NextReminderDate != nil {
		fmt.Fprintf(&sb, " We'll remind you around %s.", record.NextReminderDate.Time().Format("Jan 2, 2006"))
	}
	return sb.String()
}
