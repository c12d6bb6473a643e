package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopsync/shopsync-api/config"
	"github.com/shopsync/shopsync-api/databases"
	"github.com/shopsync/shopsync-api/models"
)

// Message exported for testing purposes
type Message struct {
	DB databases.MessageDatabase
}

// CreateMessageHandler appends a message to a vehicle's thread
func (m Message) CreateMessageHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	var req models.MessageCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.MessageText == "" {
		config.ErrorStatusFromErr("missing required fields", w,
			models.NewValidationError("message_text is required", nil))
		return
	}
	if req.SenderType != models.SenderCustomer && req.SenderType != models.SenderAdvisor {
		config.ErrorStatusFromErr("invalid sender type", w,
			models.NewValidationError("sender_type must be customer or advisor", nil))
		return
	}

	message := models.Message{
		ID:          primitive.NewObjectID(),
		VehicleID:   vehicleID,
		SenderType:  req.SenderType,
		MessageText: req.MessageText,
		Read:        false,
		SentAt:      primitive.NewDateTimeFromTime(time.Now()),
	}
	if err := m.DB.InsertOne(r.Context(), message); err != nil {
		config.ErrorStatusFromErr("failed to create message", w, err)
		return
	}

	broadcastVehicleEvent(vehicleID, "new_message", message)

	b, err := json.Marshal(message)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// MessagesByVehicleIDHandler returns a vehicle's messages ordered by send time
func (m Message) MessagesByVehicleIDHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	dbResp, err := m.DB.Find(r.Context(), bson.M{"vehicle_id": vehicleID},
		options.Find().SetSort(bson.M{"sent_at": 1}))
	if err != nil {
		config.ErrorStatusFromErr("failed to get messages", w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.Message{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
