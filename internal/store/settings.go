package store

import (
	"context"
	"time"

	"hairdo-backend/internal/models"
	"hairdo-backend/internal/storehours"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bookingPolicyID = "booking_policy"

// SettingsRepository holds the salon-wide configuration the engine
// reads per operation: the booking policy document and the per-weekday
// store hours.
type SettingsRepository struct {
	settings   *mongo.Collection
	storeHours *mongo.Collection
	loc        *time.Location
}

func NewSettingsRepository(settings, storeHours *mongo.Collection, loc *time.Location) *SettingsRepository {
	return &SettingsRepository{settings: settings, storeHours: storeHours, loc: loc}
}

// GetBookingPolicy reads the single policy document. Callers decide
// what a miss means; the booking flow falls back to policy.Default()
// rather than failing.
func (r *SettingsRepository) GetBookingPolicy(ctx context.Context) (models.BookingPolicy, error) {
	var p models.BookingPolicy
	if err := r.settings.FindOne(ctx, bson.M{"_id": bookingPolicyID}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.BookingPolicy{}, ErrNotFound
		}
		return models.BookingPolicy{}, err
	}
	return p, nil
}

func (r *SettingsRepository) UpdateBookingPolicy(ctx context.Context, p models.BookingPolicy) (models.BookingPolicy, error) {
	p.UpdatedAt = time.Now().In(r.loc)
	opts := options.Replace().SetUpsert(true)
	if _, err := r.settings.ReplaceOne(ctx, bson.M{"_id": bookingPolicyID}, p, opts); err != nil {
		return models.BookingPolicy{}, err
	}
	return p, nil
}

func (r *SettingsRepository) ListStoreHours(ctx context.Context) ([]models.StoreHoursEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "weekday", Value: 1}})
	cursor, err := r.storeHours.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := make([]models.StoreHoursEntry, 0)
	for cursor.Next(ctx) {
		var entry models.StoreHoursEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Week loads the configured hours as the engine's Week value.
func (r *SettingsRepository) Week(ctx context.Context) (storehours.Week, error) {
	entries, err := r.ListStoreHours(ctx)
	if err != nil {
		return storehours.Week{}, err
	}
	configured := make(map[int]storehours.DayHours, len(entries))
	for _, e := range entries {
		configured[e.Weekday] = storehours.DayHours{Open: e.Open, Close: e.Close}
	}
	return storehours.NewWeek(configured), nil
}

// ReplaceStoreHours swaps the whole weekly schedule in one call. An
// absent weekday in the new set means the salon is closed that day.
func (r *SettingsRepository) ReplaceStoreHours(ctx context.Context, entries []models.StoreHoursEntry) error {
	if _, err := r.storeHours.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, e)
	}
	_, err := r.storeHours.InsertMany(ctx, docs)
	return err
}
