package wizard

import (
	"context"
	"time"

	bookingRepo "glimra/database/repository/booking"
	catalogRepo "glimra/database/repository/catalog"
	fleetRepo "glimra/database/repository/fleet"
	profileRepo "glimra/database/repository/profile"
	vehicleRepo "glimra/database/repository/vehicle"
	"glimra/models"
	"glimra/services/notification"
	"glimra/services/pricing"
)

// WizardService manages a stateful booking wizard session from vehicle
// selection through submission.
type WizardService interface {
	StartSession(ctx context.Context, userID string) (*models.WizardSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.WizardSession, error)
	CancelSession(ctx context.Context, sessionID string) error

	SelectVehicle(ctx context.Context, sessionID, vehicleID string) (*models.WizardSession, error)
	SelectService(ctx context.Context, sessionID, serviceTypeID string) (*models.WizardSession, error)
	SelectValet(ctx context.Context, sessionID, valetTypeID string) (*models.WizardSession, error)
	SelectAddress(ctx context.Context, sessionID, addressID, branchID string) (*models.WizardSession, error)
	SetInstructions(ctx context.Context, sessionID, instructions string) (*models.WizardSession, error)
	SetExpressService(ctx context.Context, sessionID string, express bool) (*models.WizardSession, error)
	SelectDate(ctx context.Context, sessionID, date string) (*models.WizardSession, error)
	SelectSlot(ctx context.Context, sessionID string, start int) (*models.WizardSession, error)

	OpenAddOns(ctx context.Context, sessionID string) (*models.WizardSession, error)
	ConfirmAddOns(ctx context.Context, sessionID string, addonIDs []string) (*models.WizardSession, error)

	Next(ctx context.Context, sessionID string) (*models.WizardSession, error)
	Back(ctx context.Context, sessionID string) (*models.WizardSession, error)
	GoToStep(ctx context.Context, sessionID string, step models.WizardStep) (*models.WizardSession, error)

	Quote(ctx context.Context, sessionID string) (*models.PriceBreakdown, error)
	Slots(ctx context.Context, sessionID, date string) ([]models.TimeSlot, error)
	Submit(ctx context.Context, sessionID string) (*models.BookingReference, error)
}

// DefaultWizardService implements WizardService.
type DefaultWizardService struct {
	Catalog  catalogRepo.CatalogRepository
	Vehicles vehicleRepo.VehicleRepository
	Bookings bookingRepo.BookingRepository
	Fleet    fleetRepo.FleetRepository
	Profiles profileRepo.ProfileRepository
	Notifier notification.NotificationService
	Calc     pricing.Calculator
	Sessions *SessionStore
	Flags    FlagStore

	// DefaultGranularity applies when a branch does not set its own.
	DefaultGranularity int

	// Now is the clock; tests override it.
	Now func() time.Time
}

func (s *DefaultWizardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
