package main

import (
	"context"
	"log"
	"os"
	"time"

	"hairdo-backend/internal/auth"
	"hairdo-backend/internal/config"
	"hairdo-backend/internal/db"
	"hairdo-backend/internal/models"
	"hairdo-backend/internal/policy"
	"hairdo-backend/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedService struct {
	Name     string
	Category string
	Duration int
	Price    float64
}

type seedEmployee struct {
	Name string
	Role string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	services := []seedService{
		{Name: "Haircut", Category: "Hair", Duration: 30, Price: 45},
		{Name: "Haircut & Beard Trim", Category: "Hair", Duration: 45, Price: 60},
		{Name: "Color", Category: "Color", Duration: 90, Price: 120},
		{Name: "Highlights", Category: "Color", Duration: 120, Price: 160},
		{Name: "Blowout", Category: "Styling", Duration: 45, Price: 50},
		{Name: "Deep Conditioning", Category: "Treatment", Duration: 30, Price: 40},
		{Name: "Kids Cut", Category: "Hair", Duration: 30, Price: 30},
	}

	for _, svc := range services {
		slug := utils.Slugify(svc.Name)
		filter := bson.M{"slug": slug}
		update := bson.M{
			"$setOnInsert": bson.M{
				"_id":       primitive.NewObjectID().Hex(),
				"name":      svc.Name,
				"slug":      slug,
				"category":  svc.Category,
				"duration":  svc.Duration,
				"price":     svc.Price,
				"createdAt": time.Now().In(cfg.Timezone),
			},
		}

		if _, err := cols.Services.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			log.Fatalf("seed error for %s: %v", svc.Name, err)
		}
	}

	employees := []seedEmployee{
		{Name: "Avery", Role: "stylist"},
		{Name: "Jordan", Role: "stylist"},
		{Name: "Sam", Role: "barber"},
	}

	for _, emp := range employees {
		filter := bson.M{"name": emp.Name}
		update := bson.M{
			"$setOnInsert": bson.M{
				"_id":        primitive.NewObjectID().Hex(),
				"name":       emp.Name,
				"role":       emp.Role,
				"serviceIds": []string{},
				"createdAt":  time.Now().In(cfg.Timezone),
			},
		}
		if _, err := cols.Employees.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			log.Fatalf("seed employee error for %s: %v", emp.Name, err)
		}
	}

	// Tuesday through Saturday, 9:00 to 18:00, with a late Thursday.
	hours := []models.StoreHoursEntry{
		{Weekday: 2, Open: 9, Close: 18},
		{Weekday: 3, Open: 9, Close: 18},
		{Weekday: 4, Open: 9, Close: 20.5},
		{Weekday: 5, Open: 9, Close: 18},
		{Weekday: 6, Open: 8.5, Close: 17},
	}
	for _, h := range hours {
		filter := bson.M{"weekday": h.Weekday}
		update := bson.M{
			"$setOnInsert": bson.M{
				"weekday": h.Weekday,
				"open":    h.Open,
				"close":   h.Close,
			},
		}
		if _, err := cols.StoreHours.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			log.Fatalf("seed store hours error for weekday %d: %v", h.Weekday, err)
		}
	}

	defaults := policy.Default()
	policyUpdate := bson.M{
		"$setOnInsert": bson.M{
			"maxAdvanceDays":        defaults.MaxAdvanceDays,
			"cancellationHours":     defaults.CancellationHours,
			"depositPercentage":     defaults.DepositPercentage,
			"reminderMinutesBefore": defaults.ReminderMinutesBefore,
			"waitlistMax":           defaults.WaitlistMax,
			"updatedAt":             time.Now().In(cfg.Timezone),
		},
	}
	if _, err := cols.Settings.UpdateOne(ctx, bson.M{"_id": "booking_policy"}, policyUpdate, options.Update().SetUpsert(true)); err != nil {
		log.Fatalf("seed policy error: %v", err)
	}

	adminUser := envOrDefault("ADMIN_USER", "admin")
	adminEmail := envOrDefault("ADMIN_EMAIL", "")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Printf("seed admin: %s skipped, ADMIN_PASSWORD not set", adminUser)
	} else if err := seedAdminUser(ctx, cols, adminUser, adminEmail, adminPassword, cfg.Timezone); err != nil {
		log.Fatalf("seed admin error for %s: %v", adminUser, err)
	}

	log.Println("seed completed")
}

func seedAdminUser(ctx context.Context, cols *db.Collections, username, email, password string, loc *time.Location) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	now := time.Now().In(loc)
	set := bson.M{
		"passwordHash": hash,
		"role":         models.UserRoleAdmin,
		"updatedAt":    now,
	}
	if email != "" {
		set["email"] = email
	}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID().Hex(),
			"username":  username,
			"createdAt": now,
		},
	}
	_, err = cols.Users.UpdateOne(ctx, bson.M{"username": username}, update, options.Update().SetUpsert(true))
	return err
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
