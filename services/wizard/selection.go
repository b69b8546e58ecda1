package wizard

import (
	"context"
	"fmt"

	"glimra/models"
	"glimra/services/availability"
	"glimra/services/pricing"
	"glimra/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartSession creates a new, empty wizard session for the user.
func (s *DefaultWizardService) StartSession(ctx context.Context, userID string) (*models.WizardSession, error) {
	if userID == "" {
		return nil, NewSessionError("missing user ID")
	}
	sess := &models.WizardSession{
		SessionID: uuid.New().String(),
		UserID:    userID,
		Step:      models.StepVehicle,
	}
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("wizard session started",
		zap.String("sessionID", sess.SessionID), zap.String("userID", userID))
	return sess, nil
}

// GetSession retrieves the current session state.
func (s *DefaultWizardService) GetSession(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	return s.Sessions.Get(ctx, sessionID)
}

// CancelSession discards the session and all wizard state.
func (s *DefaultWizardService) CancelSession(ctx context.Context, sessionID string) error {
	return s.Sessions.Delete(ctx, sessionID)
}

// SelectVehicle sets the vehicle for the session. The SUV flag follows the
// vehicle, feeding the surcharge rule.
func (s *DefaultWizardService) SelectVehicle(ctx context.Context, sessionID, vehicleID string) (*models.WizardSession, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	vehicle, err := s.Vehicles.GetVehicle(vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vehicle: %w", err)
	}
	if vehicle.UserID != sess.UserID {
		return nil, NewSessionError("vehicle does not belong to this user")
	}
	sess.Selection.Vehicle = vehicle
	sess.Selection.IsSUV = vehicle.IsSUV
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SelectService sets the service type. Duration changes with the service, so
// any computed slots are invalidated.
func (s *DefaultWizardService) SelectService(ctx context.Context, sessionID, serviceTypeID string) (*models.WizardSession, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	st, err := s.Catalog.GetServiceType(serviceTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve service type: %w", err)
	}
	sess.Selection.ServiceType = st
	s.invalidateSlots(sess)
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SelectValet sets the valet type.
func (s *DefaultWizardService) SelectValet(ctx context.Context, sessionID, valetTypeID string) (*models.WizardSession, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	vt, err := s.Catalog.GetValetType(valetTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve valet type: %w", err)
	}
	sess.Selection.ValetType = vt
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SelectAddress sets the service address and the branch that will serve it.
// The address itself is an opaque reference resolved elsewhere.
func (s *DefaultWizardService) SelectAddress(ctx context.Context, sessionID, addressID, branchID string) (*models.WizardSession, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Fleet.GetBranch(branchID); err != nil {
		return nil, fmt.Errorf("failed to resolve branch: %w", err)
	}
	sess.Selection.AddressID = addressID
	sess.Selection.BranchID = branchID
	// A different branch means different operating hours and bookings.
	s.invalidateSlots(sess)
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SetInstructions stores free-text instructions.
func (s *DefaultWizardService) SetInstructions(ctx context.Context, sessionID, instructions string) (*models.WizardSession, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Selection.Instructions = instructions
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SetExpressService toggles the express flag. Express changes the price, not
// the duration, so slots stay valid.
func (s *DefaultWizardService) SetExpressService(ctx context.Context, sessionID string, express bool) (*models.WizardSession, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Selection.IsExpressService = express
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SelectDate sets the calendar day and clears any previously selected slot:
// slots belong to a day.
func (s *DefaultWizardService) SelectDate(ctx context.Context, sessionID, date string) (*models.WizardSession, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Selection.Date != date {
		sess.Selection.Date = date
		s.invalidateSlots(sess)
	}
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SelectSlot records an explicit slot choice. The slot must be one of the
// currently computed available slots for the session's day and duration.
func (s *DefaultWizardService) SelectSlot(ctx context.Context, sessionID string, start int) (*models.WizardSession, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.AvailabilityRev != s.availabilityRev(sess) {
		return nil, ErrStaleAvailability
	}
	found := false
	for i := range sess.Slots {
		if sess.Slots[i].Start == start && sess.Slots[i].Available {
			sess.Slots[i].Selected = true
			found = true
		} else {
			sess.Slots[i].Selected = false
		}
	}
	if !found {
		return nil, NewSessionError("selected slot is not available")
	}
	sess.Selection.SlotStart = start
	sess.Selection.SlotSelected = true
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// OpenAddOns opens the transient add-on picker layered over the details step.
func (s *DefaultWizardService) OpenAddOns(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.AddonModalOpen = true
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// ConfirmAddOns replaces the selected add-ons and closes the picker. Add-ons
// change the total duration, so the computed slots are invalidated; a
// previously selected slot that no longer fits the new duration is cleared.
func (s *DefaultWizardService) ConfirmAddOns(ctx context.Context, sessionID string, addonIDs []string) (*models.WizardSession, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	addons, err := s.Catalog.GetAddOns(addonIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve addons: %w", err)
	}
	if len(addons) != len(addonIDs) {
		return nil, NewSessionError("one or more selected addons do not exist")
	}

	sess.Selection.AddOns = addons
	sess.AddonModalOpen = false

	if sess.Selection.SlotSelected {
		kept, err := s.slotStillFits(sess)
		if err != nil {
			return nil, err
		}
		if !kept {
			sess.Selection.SlotSelected = false
			sess.Selection.SlotStart = 0
			utils.GetLogger().Info("selected slot cleared: duration no longer fits",
				zap.String("sessionID", sess.SessionID))
		}
	}
	s.invalidateSlots(sess)

	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Quote computes the current price breakdown. Pure derivation over the
// session: recomputed on every call, never stored.
func (s *DefaultWizardService) Quote(ctx context.Context, sessionID string) (*models.PriceBreakdown, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	loyalty, err := s.Profiles.GetLoyalty(sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch loyalty info: %w", err)
	}
	bd := s.Calc.Compute(sess.Selection, loyalty)
	return &bd, nil
}

// Slots computes the offerable slots for a day and stores them on the
// session. The result is tagged with the day|duration revision it was
// computed for; if the session has moved on by the time the computation
// finishes, the result is discarded instead of applied.
func (s *DefaultWizardService) Slots(ctx context.Context, sessionID, date string) ([]models.TimeSlot, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Selection.BranchID == "" {
		return nil, NewSessionError("no branch selected")
	}
	if sess.Selection.ServiceType == nil {
		return nil, NewSessionError("no service type selected")
	}

	branch, err := s.Fleet.GetBranch(sess.Selection.BranchID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve branch: %w", err)
	}
	granularity := branch.SlotGranularityMinutes
	if granularity <= 0 {
		granularity = s.DefaultGranularity
	}
	duration := pricing.TotalDuration(sess.Selection)
	rev := fmt.Sprintf("%s|%d", date, duration)

	intervals, err := s.Bookings.GetIntervalsForDay(branch.ID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing bookings: %w", err)
	}
	slots := availability.ComputeSlots(date, duration, intervals, branch.OperatingHours, granularity, s.now())

	// Reload before applying: a concurrent day or addon change makes this
	// result stale, and stale results must be discarded, not applied.
	current, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s.availabilityRev(current) != rev {
		return nil, ErrStaleAvailability
	}
	if current.Selection.SlotSelected {
		for i := range slots {
			if slots[i].Start == current.Selection.SlotStart && slots[i].Available {
				slots[i].Selected = true
			}
		}
	}
	current.Slots = slots
	current.AvailabilityRev = rev
	if err := s.Sessions.Save(ctx, current); err != nil {
		return nil, err
	}
	return slots, nil
}

// availabilityRev tags the session's current day and duration.
func (s *DefaultWizardService) availabilityRev(sess *models.WizardSession) string {
	return s.availabilityRevFor(sess, sess.Selection.Date)
}

func (s *DefaultWizardService) availabilityRevFor(sess *models.WizardSession, date string) string {
	return fmt.Sprintf("%s|%d", date, pricing.TotalDuration(sess.Selection))
}

// invalidateSlots drops computed slots after a change that shifts slot
// boundaries (day, branch, service, add-ons).
func (s *DefaultWizardService) invalidateSlots(sess *models.WizardSession) {
	sess.Slots = nil
	sess.AvailabilityRev = ""
}

// slotStillFits re-validates the selected slot against the session's new
// total duration.
func (s *DefaultWizardService) slotStillFits(sess *models.WizardSession) (bool, error) {
	branch, err := s.Fleet.GetBranch(sess.Selection.BranchID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve branch: %w", err)
	}
	intervals, err := s.Bookings.GetIntervalsForDay(branch.ID, sess.Selection.Date)
	if err != nil {
		return false, fmt.Errorf("failed to fetch existing bookings: %w", err)
	}
	duration := pricing.TotalDuration(sess.Selection)
	return availability.SlotFits(sess.Selection.SlotStart, duration, intervals, branch.OperatingHours), nil
}
