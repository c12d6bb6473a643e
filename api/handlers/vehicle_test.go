package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopsync/shopsync-api/api/handlers"
	"github.com/shopsync/shopsync-api/config"
	"github.com/shopsync/shopsync-api/databases/mocks"
	"github.com/shopsync/shopsync-api/models"
	smsmocks "github.com/shopsync/shopsync-api/sms/mocks"
)

func TestVehicle_CreateVehicleHandlerMissingFields(t *testing.T) {
	body := bytes.NewBufferString(`{"customer_name": "Dale"}`)
	req, err := http.NewRequest("POST", "/vehicles/?shop_id=shop-1", body)
	if err != nil {
		t.Fatal(err)
	}

	v := handlers.Vehicle{}

	rr := httptest.NewRecorder()
	http.HandlerFunc(v.CreateVehicleHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVehicle_CreateVehicleHandler(t *testing.T) {
	body := bytes.NewBufferString(`{"customer_name": "Dale", "customer_phone": "+15551234567", "make": "Ford", "model": "F-350", "year": 2021}`)
	req, err := http.NewRequest("POST", "/vehicles/?shop_id=shop-1", body)
	if err != nil {
		t.Fatal(err)
	}

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("InsertOne", mock.Anything, mock.Anything).Return(nil)
	sender := &smsmocks.Sender{}
	sender.On("Send", "+15551234567", mock.Anything).Return(true)

	v := handlers.Vehicle{
		DB:     vehicleDB,
		SMS:    sender,
		Config: config.Config{PortalBaseURL: "https://portal.example.com"},
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(v.CreateVehicleHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var got models.Vehicle
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "shop-1", got.ShopID)
	assert.Equal(t, models.StatusCheckedIn, got.Status)
	assert.NotEmpty(t, got.UniqueLink)

	sender.AssertNumberOfCalls(t, "Send", 1)
	sentBody := sender.Calls[0].Arguments.String(1)
	assert.Contains(t, sentBody, "https://portal.example.com/track/"+got.UniqueLink)
}

func TestVehicle_CreateVehicleHandlerTokensAreUnique(t *testing.T) {
	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("InsertOne", mock.Anything, mock.Anything).Return(nil)
	sender := &smsmocks.Sender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(true)

	v := handlers.Vehicle{DB: vehicleDB, SMS: sender}

	links := map[string]bool{}
	for i := 0; i < 5; i++ {
		body := bytes.NewBufferString(`{"customer_name": "Dale", "customer_phone": "+15551234567"}`)
		req, _ := http.NewRequest("POST", "/vehicles/", body)
		rr := httptest.NewRecorder()
		http.HandlerFunc(v.CreateVehicleHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusCreated, rr.Code)

		var got models.Vehicle
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.False(t, links[got.UniqueLink], "tracking token reused")
		links[got.UniqueLink] = true
	}
}

func TestVehicle_CreateVehicleHandlerStoreRejection(t *testing.T) {
	body := bytes.NewBufferString(`{"customer_name": "Dale", "customer_phone": "+15551234567"}`)
	req, _ := http.NewRequest("POST", "/vehicles/", body)

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("InsertOne", mock.Anything, mock.Anything).
		Return(models.NewPersistenceError("failed to insert vehicle", errors.New("mocked-error")))

	v := handlers.Vehicle{DB: vehicleDB}

	rr := httptest.NewRecorder()
	http.HandlerFunc(v.CreateVehicleHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed to create vehicle")
}

func TestVehicle_CreateVehicleHandlerSMSFailureDoesNotFailCheckIn(t *testing.T) {
	body := bytes.NewBufferString(`{"customer_name": "Dale", "customer_phone": "+15551234567"}`)
	req, _ := http.NewRequest("POST", "/vehicles/", body)

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("InsertOne", mock.Anything, mock.Anything).Return(nil)
	sender := &smsmocks.Sender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(false)

	v := handlers.Vehicle{DB: vehicleDB, SMS: sender}

	rr := httptest.NewRecorder()
	http.HandlerFunc(v.CreateVehicleHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestVehicle_VehicleByLinkHandlerNotFound(t *testing.T) {
	req, _ := http.NewRequest("GET", "/vehicles/nope", nil)
	req = mux.SetURLVars(req, map[string]string{"unique_link": "nope"})

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("FindOne", mock.Anything, mock.Anything).
		Return(nil, models.NewNotFoundError("vehicle not found", errors.New("mocked-error")))

	v := handlers.Vehicle{DB: vehicleDB}

	rr := httptest.NewRecorder()
	http.HandlerFunc(v.VehicleByLinkHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestVehicle_VehiclesByShopIDHandlerEmpty(t *testing.T) {
	req, _ := http.NewRequest("GET", "/shop/shop-1/vehicles", nil)
	req = mux.SetURLVars(req, map[string]string{"shop_id": "shop-1"})

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("Find", mock.Anything, mock.Anything).Return(nil, nil)

	v := handlers.Vehicle{DB: vehicleDB}

	rr := httptest.NewRecorder()
	http.HandlerFunc(v.VehiclesByShopIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))
}

func statusUpdateRequest(t *testing.T, id, body string) *http.Request {
	req, err := http.NewRequest("PATCH", "/vehicles/"+id+"/status?user_id=advisor-1", bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	return mux.SetURLVars(req, map[string]string{"vehicle_id": id})
}

func TestVehicle_UpdateVehicleStatusHandlerInvalidID(t *testing.T) {
	req := statusUpdateRequest(t, "1234", `{"new_status": "ready"}`)

	v := handlers.Vehicle{}

	rr := httptest.NewRecorder()
	http.HandlerFunc(v.UpdateVehicleStatusHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed to get objectID from Hex")
}

func TestVehicle_UpdateVehicleStatusHandlerVehicleMissing(t *testing.T) {
	id := primitive.NewObjectID()
	req := statusUpdateRequest(t, id.Hex(), `{"new_status": "ready"}`)

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("FindOne", mock.Anything, mock.Anything).
		Return(nil, models.NewNotFoundError("vehicle not found", errors.New("mocked-error")))

	v := handlers.Vehicle{DB: vehicleDB}

	rr := httptest.NewRecorder()
	http.HandlerFunc(v.UpdateVehicleStatusHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestVehicle_UpdateVehicleStatusHandlerRecordsOneAuditEntry(t *testing.T) {
	id := primitive.NewObjectID()
	req := statusUpdateRequest(t, id.Hex(), `{"new_status": "in_progress", "message": "parts arrived"}`)

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.Vehicle{ID: id, Status: models.StatusWaitingParts, CustomerName: "Dale", CustomerPhone: "+15551234567"}, nil)
	vehicleDB.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updateDB := &mocks.UpdateDatabase{}
	updateDB.On("InsertOne", mock.Anything, mock.MatchedBy(func(u models.Update) bool {
		return u.OldStatus == models.StatusWaitingParts &&
			u.NewStatus == models.StatusInProgress &&
			u.Message == "parts arrived" &&
			u.UserID == "advisor-1"
	})).Return(nil)

	sender := &smsmocks.Sender{}

	v := handlers.Vehicle{DB: vehicleDB, UpdateDB: updateDB, SMS: sender}

	rr := httptest.NewRecorder()
	http.HandlerFunc(v.UpdateVehicleStatusHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	updateDB.AssertNumberOfCalls(t, "InsertOne", 1)
	// outbound status SMS defaults off
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestVehicle_UpdateVehicleStatusHandlerSendsSMSWhenEnabled(t *testing.T) {
	id := primitive.NewObjectID()
	req := statusUpdateRequest(t, id.Hex(), `{"new_status": "ready", "message": "see you soon"}`)

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.Vehicle{ID: id, Status: models.StatusQualityCheck, CustomerName: "Dale", CustomerPhone: "+15551234567"}, nil)
	vehicleDB.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updateDB := &mocks.UpdateDatabase{}
	updateDB.On("InsertOne", mock.Anything, mock.Anything).Return(nil)

	wantBody := models.StatusMessage(models.StatusReady, "Dale") + "\nsee you soon"
	sender := &smsmocks.Sender{}
	sender.On("Send", "+15551234567", wantBody).Return(true)

	v := handlers.Vehicle{
		DB:       vehicleDB,
		UpdateDB: updateDB,
		SMS:      sender,
		Config:   config.Config{SMSStatusUpdatesEnabled: true},
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(v.UpdateVehicleStatusHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	sender.AssertExpectations(t)
}

func TestVehicle_UpdateVehicleStatusHandlerAuditBestEffort(t *testing.T) {
	id := primitive.NewObjectID()
	req := statusUpdateRequest(t, id.Hex(), `{"new_status": "ready"}`)

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.Vehicle{ID: id, Status: models.StatusQualityCheck, CustomerName: "Dale"}, nil)
	vehicleDB.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updateDB := &mocks.UpdateDatabase{}
	updateDB.On("InsertOne", mock.Anything, mock.Anything).
		Return(models.NewPersistenceError("failed to insert status update", errors.New("mocked-error")))

	v := handlers.Vehicle{
		DB:       vehicleDB,
		UpdateDB: updateDB,
		Config:   config.Config{AuditLogPolicy: config.AuditPolicyBestEffort},
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(v.UpdateVehicleStatusHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestVehicle_UpdateVehicleStatusHandlerAuditStrict(t *testing.T) {
	id := primitive.NewObjectID()
	req := statusUpdateRequest(t, id.Hex(), `{"new_status": "ready"}`)

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.Vehicle{ID: id, Status: models.StatusQualityCheck, CustomerName: "Dale"}, nil)
	vehicleDB.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updateDB := &mocks.UpdateDatabase{}
	updateDB.On("InsertOne", mock.Anything, mock.Anything).
		Return(models.NewPersistenceError("failed to insert status update", errors.New("mocked-error")))

	v := handlers.Vehicle{
		DB:       vehicleDB,
		UpdateDB: updateDB,
		Config:   config.Config{AuditLogPolicy: config.AuditPolicyStrict},
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(v.UpdateVehicleStatusHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed to record status update")
}

func TestVehicle_ToggleWarrantyHandlerEnterAndLeaveHold(t *testing.T) {
	id := primitive.NewObjectID()

	cases := []struct {
		name         string
		current      bool
		wantWarranty bool
		wantStatus   string
		wantSMS      string
	}{
		{
			name:         "entering the hold",
			current:      false,
			wantWarranty: true,
			wantStatus:   models.StatusAwaitingWarranty,
			wantSMS:      "Update: Your vehicle is awaiting warranty approval. We'll notify you once approved and work can continue.",
		},
		{
			name:         "leaving the hold",
			current:      true,
			wantWarranty: false,
			wantStatus:   models.StatusInProgress,
			wantSMS:      "Good news! Warranty approved. Your vehicle service is back in progress.",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req, _ := http.NewRequest("PATCH", "/vehicles/"+id.Hex()+"/toggle-warranty", nil)
			req = mux.SetURLVars(req, map[string]string{"vehicle_id": id.Hex()})

			vehicleDB := &mocks.VehicleDatabase{}
			vehicleDB.On("FindOne", mock.Anything, mock.Anything).
				Return(&models.Vehicle{ID: id, AwaitingWarranty: c.current, CustomerPhone: "+15551234567"}, nil)
			vehicleDB.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)

			sender := &smsmocks.Sender{}
			sender.On("Send", "+15551234567", c.wantSMS).Return(true)

			v := handlers.Vehicle{DB: vehicleDB, SMS: sender}

			rr := httptest.NewRecorder()
			http.HandlerFunc(v.ToggleWarrantyHandler).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)

			var got models.WarrantyToggleResponse
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.True(t, got.Success)
			assert.Equal(t, c.wantWarranty, got.AwaitingWarranty)
			assert.Equal(t, c.wantStatus, got.NewStatus)
			sender.AssertExpectations(t)
		})
	}
}

func TestVehicle_DeleteVehicleHandlerCascades(t *testing.T) {
	id := primitive.NewObjectID()
	req, _ := http.NewRequest("DELETE", "/vehicles/"+id.Hex(), nil)
	req = mux.SetURLVars(req, map[string]string{"vehicle_id": id.Hex()})

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("DeleteOne", mock.Anything, mock.Anything).Return(nil)
	messageDB := &mocks.MessageDatabase{}
	messageDB.On("DeleteMany", mock.Anything, mock.Anything).Return(nil)
	mediaDB := &mocks.MediaDatabase{}
	mediaDB.On("DeleteMany", mock.Anything, mock.Anything).Return(nil)
	approvalDB := &mocks.ApprovalDatabase{}
	// a failing child delete must not stop the cascade
	approvalDB.On("DeleteMany", mock.Anything, mock.Anything).
		Return(models.NewPersistenceError("failed to delete approvals", errors.New("mocked-error")))
	serviceDB := &mocks.ServiceRecordDatabase{}
	serviceDB.On("DeleteMany", mock.Anything, mock.Anything).Return(nil)
	updateDB := &mocks.UpdateDatabase{}
	updateDB.On("DeleteMany", mock.Anything, mock.Anything).Return(nil)

	v := handlers.Vehicle{
		DB:         vehicleDB,
		UpdateDB:   updateDB,
		MessageDB:  messageDB,
		MediaDB:    mediaDB,
		ApprovalDB: approvalDB,
		ServiceDB:  serviceDB,
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(v.DeleteVehicleHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Vehicle deleted successfully")
	messageDB.AssertNumberOfCalls(t, "DeleteMany", 1)
	mediaDB.AssertNumberOfCalls(t, "DeleteMany", 1)
	serviceDB.AssertNumberOfCalls(t, "DeleteMany", 1)
	updateDB.AssertNumberOfCalls(t, "DeleteMany", 1)
	vehicleDB.AssertNumberOfCalls(t, "DeleteOne", 1)
}
