package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopsync/shopsync-api/config"
	"github.com/shopsync/shopsync-api/databases"
	"github.com/shopsync/shopsync-api/models"
)

// Approval exported for testing purposes
type Approval struct {
	DB databases.ApprovalDatabase
}

// CreateApprovalHandler opens a pending approval request for additional work
func (a Approval) CreateApprovalHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	var req models.ApprovalCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Description == "" {
		config.ErrorStatusFromErr("missing required fields", w,
			models.NewValidationError("description is required", nil))
		return
	}

	approval := models.Approval{
		ID:          primitive.NewObjectID(),
		VehicleID:   vehicleID,
		Description: req.Description,
		Cost:        req.Cost,
		Approved:    nil,
		CreatedAt:   primitive.NewDateTimeFromTime(time.Now()),
	}
	if err := a.DB.InsertOne(r.Context(), approval); err != nil {
		config.ErrorStatusFromErr("failed to create approval", w, err)
		return
	}

	b, err := json.Marshal(approval)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// RespondToApprovalHandler records the customer's answer. A pending approval
// transitions exactly once; answering an already-resolved approval is
// rejected.
func (a Approval) RespondToApprovalHandler(w http.ResponseWriter, r *http.Request) {
	approvalID := mux.Vars(r)["approval_id"]

	aID, err := primitive.ObjectIDFromHex(approvalID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req models.ApprovalResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	approval, err := a.DB.FindOne(r.Context(), bson.M{"_id": aID})
	if err != nil {
		config.ErrorStatusFromErr("failed to get approval by ID", w, err)
		return
	}
	if approval.Approved != nil {
		config.ErrorStatusFromErr("approval already resolved", w,
			models.NewValidationError("approval has already been answered", nil))
		return
	}

	err = a.DB.UpdateOne(r.Context(), bson.M{"_id": aID}, bson.M{"$set": bson.M{
		"approved":    req.Approved,
		"approved_at": primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		config.ErrorStatusFromErr("failed to update approval", w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  true,
		"approved": req.Approved,
	})
}

// ApprovalsByVehicleIDHandler returns all approval requests for a vehicle
func (a Approval) ApprovalsByVehicleIDHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	dbResp, err := a.DB.Find(r.Context(), bson.M{"vehicle_id": vehicleID})
	if err != nil {
		config.ErrorStatusFromErr("failed to get approvals", w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.Approval{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
