package vehicleRepo

import (
	"context"
	"fmt"
	"time"

	"glimra/database"
	"glimra/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoVehicleRepo is the MongoDB implementation of VehicleRepository.
type MongoVehicleRepo struct {
	coll *mongo.Collection
}

func NewMongoVehicleRepo() *MongoVehicleRepo {
	return &MongoVehicleRepo{
		coll: database.DB().Collection("vehicles"),
	}
}

func (repo *MongoVehicleRepo) ListUserVehicles(userID string) ([]models.Vehicle, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := repo.coll.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("error querying vehicles: %w", err)
	}
	defer cur.Close(ctx)

	var vehicles []models.Vehicle
	if err := cur.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("error decoding vehicles: %w", err)
	}
	return vehicles, nil
}

func (repo *MongoVehicleRepo) GetVehicle(id string) (*models.Vehicle, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var v models.Vehicle
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&v); err != nil {
		return nil, fmt.Errorf("vehicle not found: %w", err)
	}
	return &v, nil
}

func (repo *MongoVehicleRepo) CreateVehicle(v *models.Vehicle) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, v); err != nil {
		return fmt.Errorf("error creating vehicle: %w", err)
	}
	return nil
}

func (repo *MongoVehicleRepo) DeleteVehicle(id, userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("error deleting vehicle %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("vehicle %s not found for user", id)
	}
	return nil
}
