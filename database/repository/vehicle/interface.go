package vehicleRepo

import "glimra/models"

// VehicleRepository manages a user's registered vehicles.
type VehicleRepository interface {
	ListUserVehicles(userID string) ([]models.Vehicle, error)
	GetVehicle(id string) (*models.Vehicle, error)
	CreateVehicle(v *models.Vehicle) error
	DeleteVehicle(id, userID string) error
}
