package paymentRepo

import (
	"context"
	"fmt"
	"time"

	"glimra/database"
	"glimra/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PaymentRepository persists payment attempts so the reconciliation worker
// can pick up where the polling loop left off.
type PaymentRepository interface {
	CreateAttempt(a *models.PaymentAttempt) error
	GetAttempt(id string) (*models.PaymentAttempt, error)
	UpdateAttemptStatus(id, status, failureMessage string) error
}

// MongoPaymentRepo is the MongoDB implementation of PaymentRepository.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

func NewMongoPaymentRepo() *MongoPaymentRepo {
	return &MongoPaymentRepo{
		coll: database.DB().Collection("payment_attempts"),
	}
}

func (repo *MongoPaymentRepo) CreateAttempt(a *models.PaymentAttempt) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("error creating payment attempt: %w", err)
	}
	return nil
}

func (repo *MongoPaymentRepo) GetAttempt(id string) (*models.PaymentAttempt, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var a models.PaymentAttempt
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&a); err != nil {
		return nil, fmt.Errorf("payment attempt not found: %w", err)
	}
	return &a, nil
}

func (repo *MongoPaymentRepo) UpdateAttemptStatus(id, status, failureMessage string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	set := bson.M{"status": status, "updatedAt": time.Now()}
	if failureMessage != "" {
		set["failureMessage"] = failureMessage
	}
	if _, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("error updating payment attempt %s: %w", id, err)
	}
	return nil
}
