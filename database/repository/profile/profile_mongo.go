package profileRepo

import (
	"context"
	"fmt"
	"time"

	"glimra/database"
	"glimra/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProfileRepository serves the user context the engine reads: loyalty tier
// for pricing and device tokens for push notifications.
type ProfileRepository interface {
	GetProfile(userID string) (*models.Profile, error)
	GetLoyalty(userID string) (models.LoyaltyInfo, error)
	GetDeviceTokens(userID string) ([]string, error)
}

// MongoProfileRepo is the MongoDB implementation of ProfileRepository.
type MongoProfileRepo struct {
	coll *mongo.Collection
}

func NewMongoProfileRepo() *MongoProfileRepo {
	return &MongoProfileRepo{
		coll: database.DB().Collection("profiles"),
	}
}

func (repo *MongoProfileRepo) GetProfile(userID string) (*models.Profile, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var p models.Profile
	if err := repo.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&p); err != nil {
		return nil, fmt.Errorf("profile not found: %w", err)
	}
	return &p, nil
}

// GetLoyalty returns the user's loyalty info, or a zero value when the user
// has no profile. A missing profile means no discount, not an error.
func (repo *MongoProfileRepo) GetLoyalty(userID string) (models.LoyaltyInfo, error) {
	p, err := repo.GetProfile(userID)
	if err != nil {
		return models.LoyaltyInfo{}, nil
	}
	return p.Loyalty, nil
}

func (repo *MongoProfileRepo) GetDeviceTokens(userID string) ([]string, error) {
	p, err := repo.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	return p.DeviceTokens, nil
}
