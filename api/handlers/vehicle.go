package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/shopsync/shopsync-api/api"
	"github.com/shopsync/shopsync-api/config"
	"github.com/shopsync/shopsync-api/databases"
	"github.com/shopsync/shopsync-api/models"
	"github.com/shopsync/shopsync-api/sms"
)

// Vehicle exported for testing purposes
type Vehicle struct {
	DB         databases.VehicleDatabase
	UpdateDB   databases.UpdateDatabase
	MessageDB  databases.MessageDatabase
	MediaDB    databases.MediaDatabase
	ApprovalDB databases.ApprovalDatabase
	ServiceDB  databases.ServiceRecordDatabase
	SMS        sms.Sender
	Config     config.Config
}

// CreateVehicleHandler checks in a new vehicle, mints its tracking token and
// sends the customer a confirmation text with the portal link. Notification
// failure never fails the check-in.
func (v Vehicle) CreateVehicleHandler(w http.ResponseWriter, r *http.Request) {
	shopID := r.URL.Query().Get("shop_id")

	var req models.VehicleCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.CustomerName == "" || req.CustomerPhone == "" {
		config.ErrorStatusFromErr("missing required fields", w,
			models.NewValidationError("customer_name and customer_phone are required", nil))
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	vehicle := models.Vehicle{
		ID:            primitive.NewObjectID(),
		ShopID:        shopID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Make:          req.Make,
		Model:         req.Model,
		Year:          req.Year,
		Vin:           req.Vin,
		LicensePlate:  req.LicensePlate,
		UniqueLink:    uuid.NewString(),
		Status:        models.StatusCheckedIn,
		CheckedInAt:   now,
	}
	if req.EstimatedCompletion != "" {
		if est, err := time.Parse(time.RFC3339, req.EstimatedCompletion); err == nil {
			pd := primitive.NewDateTimeFromTime(est)
			vehicle.EstimatedCompletion = &pd
		} else {
			zap.S().Warnf("ignoring unparseable estimated_completion %q: %v", req.EstimatedCompletion, err)
		}
	}

	if err := v.DB.InsertOne(r.Context(), vehicle); err != nil {
		// the endpoint contract reports a rejected write as a bad request
		config.ErrorStatus("failed to create vehicle", http.StatusBadRequest, w, err)
		return
	}

	portalURL := fmt.Sprintf("%s/track/%s", v.Config.PortalBaseURL, vehicle.UniqueLink)
	checkInMsg := fmt.Sprintf("Hi %s! Your vehicle is checked in at Summit Trucks. Track its status here: %s",
		vehicle.CustomerName, portalURL)
	if !v.SMS.Send(vehicle.CustomerPhone, checkInMsg) {
		zap.S().Warnw("check-in confirmation SMS failed",
			"to", vehicle.CustomerPhone,
			"body", checkInMsg,
		)
	}
	if vehicle.CustomerEmail != "" {
		go v.sendCheckInEmail(vehicle.CustomerEmail, vehicle.CustomerName, portalURL)
	}

	b, err := json.Marshal(vehicle)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// VehicleByLinkHandler returns a vehicle by its public tracking token
func (v Vehicle) VehicleByLinkHandler(w http.ResponseWriter, r *http.Request) {
	uniqueLink := mux.Vars(r)["unique_link"]

	zap.S().Debugf("unique_link: %v", uniqueLink)

	dbResp, err := v.DB.FindOne(r.Context(), bson.M{"unique_link": uniqueLink})
	if err != nil {
		config.ErrorStatusFromErr("failed to get vehicle by tracking link", w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// VehiclesByShopIDHandler returns all vehicles checked in at the given shop
func (v Vehicle) VehiclesByShopIDHandler(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shop_id"]

	dbResp, err := v.DB.Find(r.Context(), bson.M{"shop_id": shopID})
	if err != nil {
		config.ErrorStatusFromErr("failed to get vehicles by shop id", w, err)
		return
	}

	// Because the frontend requires that the data elements exist, if
	// len == 0 then we will just return an empty data object
	if len(dbResp) == 0 {
		dbResp = []models.Vehicle{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateVehicleStatusHandler moves a vehicle to a new status, appends an
// audit record of the transition and notifies the customer when the outbound
// status SMS toggle is on. The audit append follows the configured policy:
// best_effort logs and continues, strict fails the whole transition.
func (v Vehicle) UpdateVehicleStatusHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]
	userID := r.URL.Query().Get("user_id")

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req models.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.NewStatus == "" {
		config.ErrorStatusFromErr("missing required fields", w,
			models.NewValidationError("new_status is required", nil))
		return
	}

	vehicle, err := v.DB.FindOne(r.Context(), bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatusFromErr("failed to get vehicle by ID", w, err)
		return
	}
	oldStatus := vehicle.Status

	if err := v.DB.UpdateOne(r.Context(), bson.M{"_id": vID}, bson.M{"$set": bson.M{"status": req.NewStatus}}); err != nil {
		config.ErrorStatusFromErr("failed to update vehicle status", w, err)
		return
	}

	auditErr := v.UpdateDB.InsertOne(r.Context(), models.Update{
		ID:        primitive.NewObjectID(),
		VehicleID: vehicleID,
		UserID:    userID,
		OldStatus: oldStatus,
		NewStatus: req.NewStatus,
		Message:   req.Message,
		Timestamp: primitive.NewDateTimeFromTime(time.Now()),
	})
	if auditErr != nil {
		if v.Config.AuditLogPolicy == config.AuditPolicyStrict {
			config.ErrorStatusFromErr("failed to record status update", w, auditErr)
			return
		}
		zap.S().Warnw("non-critical: failed to insert status update record",
			"vehicleId", vehicleID,
			"error", auditErr,
		)
	}

	if v.Config.SMSStatusUpdatesEnabled {
		if vehicle.CustomerPhone != "" {
			smsMsg := models.StatusMessage(req.NewStatus, vehicle.CustomerName)
			if req.Message != "" {
				smsMsg += "\n" + req.Message
			}
			if !v.SMS.Send(vehicle.CustomerPhone, smsMsg) {
				zap.S().Warnw("status update SMS failed",
					"to", vehicle.CustomerPhone,
					"body", smsMsg,
				)
			}
		} else {
			zap.S().Warnf("no customer phone number found for vehicle %v", vehicleID)
		}
	}

	broadcastVehicleEvent(vehicleID, "status_update", map[string]interface{}{
		"vehicle_id": vehicleID,
		"old_status": oldStatus,
		"new_status": req.NewStatus,
		"message":    req.Message,
	})

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.StatusUpdateResponse{
		Success: true,
		Message: "Status updated successfully",
	})
}

// ToggleWarrantyHandler flips the awaiting_warranty hold. Entering the hold
// forces status to awaiting_warranty; leaving it resumes service by forcing
// in_progress.
func (v Vehicle) ToggleWarrantyHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	vehicle, err := v.DB.FindOne(r.Context(), bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatusFromErr("failed to get vehicle by ID", w, err)
		return
	}

	newWarranty := !vehicle.AwaitingWarranty
	newStatus := models.StatusInProgress
	if newWarranty {
		newStatus = models.StatusAwaitingWarranty
	}

	err = v.DB.UpdateOne(r.Context(), bson.M{"_id": vID}, bson.M{"$set": bson.M{
		"awaiting_warranty": newWarranty,
		"status":            newStatus,
	}})
	if err != nil {
		config.ErrorStatusFromErr("failed to toggle warranty status", w, err)
		return
	}

	if vehicle.CustomerPhone != "" {
		smsMsg := "Good news! Warranty approved. Your vehicle service is back in progress."
		if newWarranty {
			smsMsg = "Update: Your vehicle is awaiting warranty approval. We'll notify you once approved and work can continue."
		}
		if !v.SMS.Send(vehicle.CustomerPhone, smsMsg) {
			zap.S().Warnw("warranty status SMS failed",
				"to", vehicle.CustomerPhone,
				"body", smsMsg,
			)
		}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.WarrantyToggleResponse{
		Success:          true,
		AwaitingWarranty: newWarranty,
		NewStatus:        newStatus,
	})
}

// DeleteVehicleHandler removes a vehicle and all of its child records. Each
// child collection is cleared independently; a failure partway is logged and
// the cascade keeps going, so prior deletes are never rolled back.
func (v Vehicle) DeleteVehicleHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	byVehicle := bson.M{"vehicle_id": vehicleID}
	if err := v.MessageDB.DeleteMany(ctx, byVehicle); err != nil {
		zap.S().Warnw("failed to delete messages during cascade", "vehicleId", vehicleID, "error", err)
	}
	if err := v.MediaDB.DeleteMany(ctx, byVehicle); err != nil {
		zap.S().Warnw("failed to delete media during cascade", "vehicleId", vehicleID, "error", err)
	}
	if err := v.ApprovalDB.DeleteMany(ctx, byVehicle); err != nil {
		zap.S().Warnw("failed to delete approvals during cascade", "vehicleId", vehicleID, "error", err)
	}
	if err := v.ServiceDB.DeleteMany(ctx, byVehicle); err != nil {
		zap.S().Warnw("failed to delete service records during cascade", "vehicleId", vehicleID, "error", err)
	}
	if err := v.UpdateDB.DeleteMany(ctx, byVehicle); err != nil {
		zap.S().Warnw("failed to delete update records during cascade", "vehicleId", vehicleID, "error", err)
	}

	if err := v.DB.DeleteOne(ctx, bson.M{"_id": vID}); err != nil {
		config.ErrorStatusFromErr("failed to delete vehicle", w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Vehicle deleted successfully",
	})
}
