package scheduler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopsync/shopsync-api/api/scheduler"
	"github.com/shopsync/shopsync-api/databases/mocks"
	"github.com/shopsync/shopsync-api/models"
	smsmocks "github.com/shopsync/shopsync-api/sms/mocks"
)

func TestScheduler_DueRemindersSkipsUnresolvableVehicles(t *testing.T) {
	goodVehicle := primitive.NewObjectID()
	orphanVehicle := primitive.NewObjectID()

	serviceDB := &mocks.ServiceRecordDatabase{}
	serviceDB.On("Find", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		f, ok := filter.(bson.M)
		return ok && f["reminder_sent"] == false
	})).Return([]models.ServiceRecord{
		{ID: primitive.NewObjectID(), VehicleID: goodVehicle.Hex(), ServiceType: "Oil Change"},
		{ID: primitive.NewObjectID(), VehicleID: "not-a-hex-id", ServiceType: "Brake Inspection"},
		{ID: primitive.NewObjectID(), VehicleID: orphanVehicle.Hex(), ServiceType: "Tire Rotation"},
	}, nil)

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("FindOne", mock.Anything, bson.M{"_id": goodVehicle}).
		Return(&models.Vehicle{ID: goodVehicle, CustomerName: "Dale", CustomerPhone: "+15551234567"}, nil)
	vehicleDB.On("FindOne", mock.Anything, bson.M{"_id": orphanVehicle}).
		Return(nil, models.NewNotFoundError("vehicle not found", errors.New("mocked-error")))

	s := scheduler.New(serviceDB, vehicleDB, &smsmocks.Sender{})

	due, err := s.DueReminders(context.Background())
	assert.NoError(t, err)
	assert.Len(t, due, 1)
	assert.Equal(t, "Oil Change", due[0].ServiceRecord.ServiceType)
	assert.Equal(t, "Dale", due[0].Vehicle.CustomerName)
}

func TestScheduler_DispatchDueRemindersMarksSentOnSuccess(t *testing.T) {
	vID := primitive.NewObjectID()
	recID := primitive.NewObjectID()

	serviceDB := &mocks.ServiceRecordDatabase{}
	serviceDB.On("Find", mock.Anything, mock.Anything).
		Return([]models.ServiceRecord{{ID: recID, VehicleID: vID.Hex(), ServiceType: "Oil Change", Mileage: 82000}}, nil)
	serviceDB.On("UpdateOne", mock.Anything, bson.M{"_id": recID},
		bson.M{"$set": bson.M{"reminder_sent": true}}).Return(nil)

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.Vehicle{ID: vID, CustomerName: "Dale", CustomerPhone: "+15551234567", Make: "Ford", Model: "F-350", Year: 2021}, nil)

	sender := &smsmocks.Sender{}
	sender.On("Send", "+15551234567", mock.MatchedBy(func(body string) bool {
		return len(body) > 0
	})).Return(true)

	s := scheduler.New(serviceDB, vehicleDB, sender)

	sent, err := s.DispatchDueReminders(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	serviceDB.AssertExpectations(t)

	sentBody := sender.Calls[0].Arguments.String(1)
	assert.Contains(t, sentBody, "Dale")
	assert.Contains(t, sentBody, "2021 Ford F-350")
	assert.Contains(t, sentBody, "Oil Change")
}

func TestScheduler_DispatchDueRemindersLeavesFailedSendsDue(t *testing.T) {
	vID := primitive.NewObjectID()

	serviceDB := &mocks.ServiceRecordDatabase{}
	serviceDB.On("Find", mock.Anything, mock.Anything).
		Return([]models.ServiceRecord{{ID: primitive.NewObjectID(), VehicleID: vID.Hex(), ServiceType: "Oil Change"}}, nil)

	vehicleDB := &mocks.VehicleDatabase{}
	vehicleDB.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.Vehicle{ID: vID, CustomerName: "Dale", CustomerPhone: "+15551234567"}, nil)

	sender := &smsmocks.Sender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(false)

	s := scheduler.New(serviceDB, vehicleDB, sender)

	sent, err := s.DispatchDueReminders(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, sent)
	// the record must stay due for the next cycle
	serviceDB.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestScheduler_DispatchDueRemindersQueryFailure(t *testing.T) {
	serviceDB := &mocks.ServiceRecordDatabase{}
	serviceDB.On("Find", mock.Anything, mock.Anything).
		Return(nil, models.NewPersistenceError("failed to query service records", errors.New("mocked-error")))

	s := scheduler.New(serviceDB, &mocks.VehicleDatabase{}, &smsmocks.Sender{})

	sent, err := s.DispatchDueReminders(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, sent)
	assert.Equal(t, models.PersistenceError, models.KindOf(err))
}
