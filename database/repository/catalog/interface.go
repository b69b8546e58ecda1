package catalogRepo

import "glimra/models"

// CatalogRepository serves the read-only service catalog the wizard consumes.
type CatalogRepository interface {
	ListServiceTypes() ([]models.ServiceType, error)
	GetServiceType(id string) (*models.ServiceType, error)
	ListValetTypes() ([]models.ValetType, error)
	GetValetType(id string) (*models.ValetType, error)
	ListAddOns() ([]models.AddOn, error)
	GetAddOns(ids []string) ([]models.AddOn, error)
	ListSubscriptionPlans() ([]models.SubscriptionPlan, error)
	GetSubscriptionPlan(id string) (*models.SubscriptionPlan, error)
}
