package store

import (
	"context"
	"time"

	"hairdo-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository backs the admin login surface.
type UserRepository struct {
	col *mongo.Collection
	loc *time.Location
}

func NewUserRepository(col *mongo.Collection, loc *time.Location) *UserRepository {
	return &UserRepository{col: col, loc: loc}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	now := time.Now().In(r.loc)
	user.ID = primitive.NewObjectID().Hex()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	update := bson.M{"$set": bson.M{
		"passwordHash": passwordHash,
		"updatedAt":    time.Now().In(r.loc),
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id, "role": models.UserRoleAdmin}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
