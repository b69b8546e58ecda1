package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"glimra/database"
	"glimra/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCatalogRepo is the MongoDB implementation of CatalogRepository.
type MongoCatalogRepo struct {
	serviceColl *mongo.Collection
	valetColl   *mongo.Collection
	addonColl   *mongo.Collection
	planColl    *mongo.Collection
}

func NewMongoCatalogRepo() *MongoCatalogRepo {
	db := database.DB()
	return &MongoCatalogRepo{
		serviceColl: db.Collection("service_types"),
		valetColl:   db.Collection("valet_types"),
		addonColl:   db.Collection("addons"),
		planColl:    db.Collection("subscription_plans"),
	}
}

func (repo *MongoCatalogRepo) ListServiceTypes() ([]models.ServiceType, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := repo.serviceColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error querying service types: %w", err)
	}
	defer cur.Close(ctx)

	var types []models.ServiceType
	if err := cur.All(ctx, &types); err != nil {
		return nil, fmt.Errorf("error decoding service types: %w", err)
	}
	return types, nil
}

func (repo *MongoCatalogRepo) GetServiceType(id string) (*models.ServiceType, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var st models.ServiceType
	if err := repo.serviceColl.FindOne(ctx, bson.M{"id": id}).Decode(&st); err != nil {
		return nil, fmt.Errorf("service type not found: %w", err)
	}
	return &st, nil
}

func (repo *MongoCatalogRepo) ListValetTypes() ([]models.ValetType, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := repo.valetColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error querying valet types: %w", err)
	}
	defer cur.Close(ctx)

	var types []models.ValetType
	if err := cur.All(ctx, &types); err != nil {
		return nil, fmt.Errorf("error decoding valet types: %w", err)
	}
	return types, nil
}

func (repo *MongoCatalogRepo) GetValetType(id string) (*models.ValetType, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var vt models.ValetType
	if err := repo.valetColl.FindOne(ctx, bson.M{"id": id}).Decode(&vt); err != nil {
		return nil, fmt.Errorf("valet type not found: %w", err)
	}
	return &vt, nil
}

func (repo *MongoCatalogRepo) ListAddOns() ([]models.AddOn, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := repo.addonColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error querying addons: %w", err)
	}
	defer cur.Close(ctx)

	var addons []models.AddOn
	if err := cur.All(ctx, &addons); err != nil {
		return nil, fmt.Errorf("error decoding addons: %w", err)
	}
	return addons, nil
}

// GetAddOns resolves a set of add-on IDs. Unknown IDs are simply absent from
// the result; callers validate the count if they need all of them.
func (repo *MongoCatalogRepo) GetAddOns(ids []string) ([]models.AddOn, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := repo.addonColl.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("error querying addons by id: %w", err)
	}
	defer cur.Close(ctx)

	var addons []models.AddOn
	if err := cur.All(ctx, &addons); err != nil {
		return nil, fmt.Errorf("error decoding addons: %w", err)
	}
	return addons, nil
}

func (repo *MongoCatalogRepo) ListSubscriptionPlans() ([]models.SubscriptionPlan, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := repo.planColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error querying subscription plans: %w", err)
	}
	defer cur.Close(ctx)

	var plans []models.SubscriptionPlan
	if err := cur.All(ctx, &plans); err != nil {
		return nil, fmt.Errorf("error decoding subscription plans: %w", err)
	}
	return plans, nil
}

func (repo *MongoCatalogRepo) GetSubscriptionPlan(id string) (*models.SubscriptionPlan, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var plan models.SubscriptionPlan
	if err := repo.planColl.FindOne(ctx, bson.M{"id": id}).Decode(&plan); err != nil {
		return nil, fmt.Errorf("subscription plan not found: %w", err)
	}
	return &plan, nil
}
