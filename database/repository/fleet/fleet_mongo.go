package fleetRepo

import (
	"context"
	"fmt"
	"time"

	"glimra/database"
	"glimra/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFleetRepo is the MongoDB implementation of FleetRepository.
type MongoFleetRepo struct {
	branchColl *mongo.Collection
	adminColl  *mongo.Collection
	subColl    *mongo.Collection
}

func NewMongoFleetRepo() *MongoFleetRepo {
	db := database.DB()
	return &MongoFleetRepo{
		branchColl: db.Collection("branches"),
		adminColl:  db.Collection("branch_admins"),
		subColl:    db.Collection("fleet_subscriptions"),
	}
}

func (repo *MongoFleetRepo) ListBranches() ([]models.Branch, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := repo.branchColl.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("error querying branches: %w", err)
	}
	defer cur.Close(ctx)

	var branches []models.Branch
	if err := cur.All(ctx, &branches); err != nil {
		return nil, fmt.Errorf("error decoding branches: %w", err)
	}
	return branches, nil
}

func (repo *MongoFleetRepo) GetBranch(id string) (*models.Branch, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var b models.Branch
	if err := repo.branchColl.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		return nil, fmt.Errorf("branch not found: %w", err)
	}
	return &b, nil
}

func (repo *MongoFleetRepo) CreateBranch(b *models.Branch) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.branchColl.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("error creating branch: %w", err)
	}
	return nil
}

func (repo *MongoFleetRepo) UpdateBranch(id string, fields map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": fields}
	if _, err := repo.branchColl.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("error updating branch %s: %w", id, err)
	}
	return nil
}

func (repo *MongoFleetRepo) DeleteBranch(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Branches are deactivated, not removed, so historical bookings keep
	// their reference.
	update := bson.M{"$set": bson.M{"active": false}}
	if _, err := repo.branchColl.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("error deactivating branch %s: %w", id, err)
	}
	return nil
}

func (repo *MongoFleetRepo) GetAdminByEmail(email string) (*models.BranchAdmin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var a models.BranchAdmin
	if err := repo.adminColl.FindOne(ctx, bson.M{"email": email}).Decode(&a); err != nil {
		return nil, fmt.Errorf("admin not found: %w", err)
	}
	return &a, nil
}

func (repo *MongoFleetRepo) CreateAdmin(a *models.BranchAdmin) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.adminColl.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("error creating branch admin: %w", err)
	}
	return nil
}

func (repo *MongoFleetRepo) ListBranchAdmins(branchID string) ([]models.BranchAdmin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := repo.adminColl.Find(ctx, bson.M{"branchId": branchID})
	if err != nil {
		return nil, fmt.Errorf("error querying branch admins: %w", err)
	}
	defer cur.Close(ctx)

	var admins []models.BranchAdmin
	if err := cur.All(ctx, &admins); err != nil {
		return nil, fmt.Errorf("error decoding branch admins: %w", err)
	}
	return admins, nil
}

func (repo *MongoFleetRepo) DeleteAdmin(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.adminColl.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("error deleting branch admin %s: %w", id, err)
	}
	return nil
}

func (repo *MongoFleetRepo) GetUserSubscription(userID string) (*models.FleetSubscription, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var sub models.FleetSubscription
	opts := options.FindOne().SetSort(bson.M{"createdAt": -1})
	if err := repo.subColl.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&sub); err != nil {
		return nil, fmt.Errorf("subscription not found: %w", err)
	}
	return &sub, nil
}

func (repo *MongoFleetRepo) UpsertSubscription(sub *models.FleetSubscription) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"id": sub.ID}
	update := bson.M{"$set": sub}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.subColl.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("error upserting subscription %s: %w", sub.ID, err)
	}
	return nil
}
