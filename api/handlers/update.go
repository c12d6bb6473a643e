package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopsync/shopsync-api/config"
	"github.com/shopsync/shopsync-api/databases"
	"github.com/shopsync/shopsync-api/models"
)

// Update exported for testing purposes
type Update struct {
	DB databases.UpdateDatabase
}

// UpdatesByVehicleIDHandler returns the status transition history for a
// vehicle, newest first, for the tracking page timeline
func (u Update) UpdatesByVehicleIDHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	dbResp, err := u.DB.Find(r.Context(), bson.M{"vehicle_id": vehicleID},
		options.Find().SetSort(bson.M{"timestamp": -1}))
	if err != nil {
		config.ErrorStatusFromErr("failed to get status updates", w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.Update{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
