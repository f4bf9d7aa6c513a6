package store

import (
	"context"
	"errors"
	"time"

	"hairdo-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("slot already booked")
)

// AppointmentRepository is the persistence side of the engine: the
// engine itself only ever sees the snapshots these methods return.
type AppointmentRepository struct {
	col *mongo.Collection
	loc *time.Location
}

func NewAppointmentRepository(col *mongo.Collection, loc *time.Location) *AppointmentRepository {
	return &AppointmentRepository{col: col, loc: loc}
}

// ListByEmployeeAndDate returns the employee's appointments for one
// date sorted by start time. All statuses are included; it is the
// conflict detector's job to ignore cancelled/no-show entries.
func (r *AppointmentRepository) ListByEmployeeAndDate(ctx context.Context, employeeID, date string) ([]models.Appointment, error) {
	filter := bson.M{"employeeId": employeeID, "date": date}
	return r.list(ctx, filter)
}

// ListByDate returns every appointment for one date across all
// employees, sorted by start time. Feeds the timeline view.
func (r *AppointmentRepository) ListByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	return r.list(ctx, bson.M{"date": date})
}

func (r *AppointmentRepository) list(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.Appointment, 0)
	for cursor.Next(ctx) {
		var appt models.Appointment
		if err := cursor.Decode(&appt); err != nil {
			return nil, err
		}
		items = append(items, appt)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Create persists a validated appointment. The store owns identity and
// record timestamps; the caller owns everything else, including the
// already-computed policy snapshot. A duplicate-key error means another
// session won the same slot and is surfaced as ErrDuplicate.
func (r *AppointmentRepository) Create(ctx context.Context, appt models.Appointment) (models.Appointment, error) {
	now := time.Now().In(r.loc)
	appt.ID = primitive.NewObjectID().Hex()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, appt); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Appointment{}, ErrDuplicate
		}
		return models.Appointment{}, err
	}
	return appt, nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (models.Appointment, error) {
	var appt models.Appointment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Appointment{}, ErrNotFound
		}
		return models.Appointment{}, err
	}
	return appt, nil
}

// UpdateStatus changes only the status field. Policy snapshot fields
// are never part of any update document.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id, status string) (models.Appointment, error) {
	return r.update(ctx, id, bson.M{"status": status})
}

// Reschedule moves an appointment's time fields. Callers must have
// re-run the conflict check and the terminal-status guard first.
func (r *AppointmentRepository) Reschedule(ctx context.Context, id, date, startTime, endTime string, duration int) (models.Appointment, error) {
	return r.update(ctx, id, bson.M{
		"date":      date,
		"startTime": startTime,
		"endTime":   endTime,
		"duration":  duration,
	})
}

func (r *AppointmentRepository) update(ctx context.Context, id string, set bson.M) (models.Appointment, error) {
	set["updatedAt"] = time.Now().In(r.loc)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Appointment
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Appointment{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return models.Appointment{}, ErrDuplicate
		}
		return models.Appointment{}, err
	}
	return updated, nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// ListNeedingReminder returns blocking appointments on the given date
// whose start time falls in (fromClock, toClock] and that have not been
// reminded yet.
func (r *AppointmentRepository) ListNeedingReminder(ctx context.Context, date, fromClock, toClock string) ([]models.Appointment, error) {
	filter := bson.M{
		"date":           date,
		"startTime":      bson.M{"$gt": fromClock, "$lte": toClock},
		"status":         bson.M{"$in": []string{models.AppointmentStatusPending, models.AppointmentStatusConfirmed}},
		"reminderSentAt": bson.M{"$exists": false},
	}
	return r.list(ctx, filter)
}

func (r *AppointmentRepository) MarkReminderSent(ctx context.Context, id string, at time.Time) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"reminderSentAt": at}})
	return err
}
