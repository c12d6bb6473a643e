package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/shopsync/shopsync-api/databases"
	"github.com/shopsync/shopsync-api/models"
	"github.com/shopsync/shopsync-api/sms"
)

// Scheduler owns the service reminder workflow: finding due, unsent records
// and texting the customers. Dispatch is deliberately lock-free; a record
// whose send fails simply stays due and is picked up again on the next run.
type Scheduler struct {
	cron *cron.Cron
	SRDB databases.ServiceRecordDatabase
	VDB  databases.VehicleDatabase
	SMS  sms.Sender
}

// New creates a new scheduler instance
func New(srDB databases.ServiceRecordDatabase, vDB databases.VehicleDatabase, sender sms.Sender) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		SRDB: srDB,
		VDB:  vDB,
		SMS:  sender,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Dispatch due service reminders daily at 9 AM UTC
	_, err := s.cron.AddFunc("0 9 * * *", s.runDispatch)
	if err != nil {
		zap.S().Errorw("failed to register reminder dispatch job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Service reminder scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Service reminder scheduler stopped")
}

func (s *Scheduler) runDispatch() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	sent, err := s.DispatchDueReminders(ctx)
	if err != nil {
		zap.S().Errorw("reminder dispatch failed", "error", err)
		return
	}
	zap.S().Infow("Reminder dispatch complete", "remindersSent", sent)
}

// DueReminders returns every service record whose reminder date has passed
// and which has not been marked sent, joined with its owning vehicle.
// Records whose vehicle can no longer be resolved are skipped.
func (s *Scheduler) DueReminders(ctx context.Context) ([]models.DueReminder, error) {
	now := primitive.NewDateTimeFromTime(time.Now())
	records, err := s.SRDB.Find(ctx, bson.M{
		"reminder_sent":      false,
		"next_reminder_date": bson.M{"$lte": now},
	})
	if err != nil {
		return nil, err
	}

	var due []models.DueReminder
	for _, rec := range records {
		vID, err := primitive.ObjectIDFromHex(rec.VehicleID)
		if err != nil {
			zap.S().Warnw("skipping reminder with malformed vehicle id",
				"serviceId", rec.ID.Hex(),
				"vehicleId", rec.VehicleID,
			)
			continue
		}
		vehicle, err := s.VDB.FindOne(ctx, bson.M{"_id": vID})
		if err != nil {
			zap.S().Warnw("skipping reminder with unresolvable vehicle",
				"serviceId", rec.ID.Hex(),
				"vehicleId", rec.VehicleID,
				"error", err,
			)
			continue
		}
		due = append(due, models.DueReminder{ServiceRecord: rec, Vehicle: *vehicle})
	}
	return due, nil
}

// DispatchDueReminders texts every due reminder and marks each record sent
// only after the carrier accepted the message. Returns the number of
// reminders successfully sent. Safe to invoke repeatedly: already-sent
// records are excluded by the due query itself.
func (s *Scheduler) DispatchDueReminders(ctx context.Context) (int, error) {
	due, err := s.DueReminders(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, d := range due {
		body := reminderMessage(d.Vehicle, d.ServiceRecord)
		if !s.SMS.Send(d.Vehicle.CustomerPhone, body) {
			zap.S().Warnw("reminder SMS failed, record stays due",
				"serviceId", d.ServiceRecord.ID.Hex(),
				"to", d.Vehicle.CustomerPhone,
			)
			continue
		}
		sent++

		err := s.SRDB.UpdateOne(ctx,
			bson.M{"_id": d.ServiceRecord.ID},
			bson.M{"$set": bson.M{"reminder_sent": true}})
		if err != nil {
			// the customer was texted but the flag write failed; the next
			// cycle will re-send, which the dispatch contract accepts
			zap.S().Errorw("failed to mark reminder sent",
				"serviceId", d.ServiceRecord.ID.Hex(),
				"error", err,
			)
		}
	}
	return sent, nil
}

func reminderMessage(vehicle models.Vehicle, rec models.ServiceRecord) string {
	descriptor := strings.TrimSpace(fmt.Sprintf("%s %s", vehicle.Make, vehicle.Model))
	if vehicle.Year != 0 {
		descriptor = strings.TrimSpace(fmt.Sprintf("%d %s", vehicle.Year, descriptor))
	}
	if descriptor == "" {
		descriptor = "vehicle"
	}
	return fmt.Sprintf("Hi %s! Your %s is due for service: %s (last done at %d miles). Call Summit Trucks to schedule your appointment.",
		vehicle.CustomerName, descriptor, rec.ServiceType, rec.Mileage)
}
