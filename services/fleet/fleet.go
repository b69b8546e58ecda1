package fleet

import (
	"fmt"
	"time"

	fleetRepo "glimra/database/repository/fleet"
	"glimra/models"
	"glimra/services/payment"
	"glimra/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// FleetService manages branches, branch admins and fleet subscriptions.
type FleetService interface {
	ListBranches() ([]models.Branch, error)
	CreateBranch(b models.Branch) (*models.Branch, error)
	UpdateBranch(id string, fields map[string]interface{}) error
	DeactivateBranch(id string) error

	RegisterAdmin(branchID, name, email, password string) (*models.BranchAdmin, error)
	AuthenticateAdmin(email, password string) (string, *models.BranchAdmin, error)
	ListBranchAdmins(branchID string) ([]models.BranchAdmin, error)
	RemoveAdmin(id string) error

	Subscribe(userID, planID string, trial bool) (*models.FleetSubscription, *models.PaymentAttempt, error)
	ActivateSubscription(userID string) (*models.FleetSubscription, error)
	CancelSubscription(userID string) error
}

// DefaultFleetService implements FleetService.
type DefaultFleetService struct {
	Repo       fleetRepo.FleetRepository
	PaymentSvc payment.PaymentService
	Plans      PlanSource
}

// PlanSource resolves subscription plans from the catalog.
type PlanSource interface {
	GetSubscriptionPlan(id string) (*models.SubscriptionPlan, error)
}

func (fs *DefaultFleetService) ListBranches() ([]models.Branch, error) {
	return fs.Repo.ListBranches()
}

func (fs *DefaultFleetService) CreateBranch(b models.Branch) (*models.Branch, error) {
	if b.Name == "" {
		return nil, fmt.Errorf("branch name is required")
	}
	if b.OperatingHours.Close <= b.OperatingHours.Open {
		return nil, fmt.Errorf("branch operating hours are invalid")
	}
	b.ID = uuid.New().String()
	b.Active = true
	b.CreatedAt = time.Now()
	if err := fs.Repo.CreateBranch(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (fs *DefaultFleetService) UpdateBranch(id string, fields map[string]interface{}) error {
	if _, err := fs.Repo.GetBranch(id); err != nil {
		return err
	}
	return fs.Repo.UpdateBranch(id, fields)
}

func (fs *DefaultFleetService) DeactivateBranch(id string) error {
	return fs.Repo.DeleteBranch(id)
}

// RegisterAdmin creates a branch admin with a bcrypt-hashed password.
func (fs *DefaultFleetService) RegisterAdmin(branchID, name, email, password string) (*models.BranchAdmin, error) {
	if _, err := fs.Repo.GetBranch(branchID); err != nil {
		return nil, err
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	admin := &models.BranchAdmin{
		ID:           uuid.New().String(),
		BranchID:     branchID,
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := fs.Repo.CreateAdmin(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// AuthenticateAdmin verifies credentials and issues a JWT for admin routes.
func (fs *DefaultFleetService) AuthenticateAdmin(email, password string) (string, *models.BranchAdmin, error) {
	admin, err := fs.Repo.GetAdminByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}
	token, err := utils.GenerateToken(admin.ID, admin.Email, 24*time.Hour)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, admin, nil
}

func (fs *DefaultFleetService) ListBranchAdmins(branchID string) ([]models.BranchAdmin, error) {
	return fs.Repo.ListBranchAdmins(branchID)
}

func (fs *DefaultFleetService) RemoveAdmin(id string) error {
	return fs.Repo.DeleteAdmin(id)
}
