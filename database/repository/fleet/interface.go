package fleetRepo

import "glimra/models"

// FleetRepository manages branches, branch admins and fleet subscriptions.
type FleetRepository interface {
	ListBranches() ([]models.Branch, error)
	GetBranch(id string) (*models.Branch, error)
	CreateBranch(b *models.Branch) error
	UpdateBranch(id string, fields map[string]interface{}) error
	DeleteBranch(id string) error

	GetAdminByEmail(email string) (*models.BranchAdmin, error)
	CreateAdmin(a *models.BranchAdmin) error
	ListBranchAdmins(branchID string) ([]models.BranchAdmin, error)
	DeleteAdmin(id string) error

	GetUserSubscription(userID string) (*models.FleetSubscription, error)
	UpsertSubscription(sub *models.FleetSubscription) error
}
