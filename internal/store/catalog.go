package store

import (
	"context"
	"time"

	"hairdo-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CatalogRepository serves the static-ish catalog the engine consumes:
// services (duration + price) and the staff who perform them.
type CatalogRepository struct {
	services  *mongo.Collection
	employees *mongo.Collection
	loc       *time.Location
}

func NewCatalogRepository(services, employees *mongo.Collection, loc *time.Location) *CatalogRepository {
	return &CatalogRepository{services: services, employees: employees, loc: loc}
}

func (r *CatalogRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.services.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.Service, 0)
	for cursor.Next(ctx) {
		var svc models.Service
		if err := cursor.Decode(&svc); err != nil {
			return nil, err
		}
		items = append(items, svc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CatalogRepository) GetService(ctx context.Context, id string) (models.Service, error) {
	var svc models.Service
	if err := r.services.FindOne(ctx, bson.M{"_id": id}).Decode(&svc); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Service{}, ErrNotFound
		}
		return models.Service{}, err
	}
	return svc, nil
}

func (r *CatalogRepository) CreateService(ctx context.Context, svc models.Service) (models.Service, error) {
	svc.ID = primitive.NewObjectID().Hex()
	svc.CreatedAt = time.Now().In(r.loc)
	if _, err := r.services.InsertOne(ctx, svc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Service{}, ErrDuplicate
		}
		return models.Service{}, err
	}
	return svc, nil
}

func (r *CatalogRepository) UpdateService(ctx context.Context, id string, set bson.M) (models.Service, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Service
	err := r.services.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Service{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return models.Service{}, ErrDuplicate
		}
		return models.Service{}, err
	}
	return updated, nil
}

func (r *CatalogRepository) DeleteService(ctx context.Context, id string) (bool, error) {
	res, err := r.services.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *CatalogRepository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.employees.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.Employee, 0)
	for cursor.Next(ctx) {
		var emp models.Employee
		if err := cursor.Decode(&emp); err != nil {
			return nil, err
		}
		items = append(items, emp)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CatalogRepository) GetEmployee(ctx context.Context, id string) (models.Employee, error) {
	var emp models.Employee
	if err := r.employees.FindOne(ctx, bson.M{"_id": id}).Decode(&emp); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Employee{}, ErrNotFound
		}
		return models.Employee{}, err
	}
	return emp, nil
}

func (r *CatalogRepository) CreateEmployee(ctx context.Context, emp models.Employee) (models.Employee, error) {
	emp.ID = primitive.NewObjectID().Hex()
	emp.CreatedAt = time.Now().In(r.loc)
	if _, err := r.employees.InsertOne(ctx, emp); err != nil {
		return models.Employee{}, err
	}
	return emp, nil
}
