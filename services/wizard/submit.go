package wizard

import (
	"context"
	"fmt"
	"time"

	"glimra/models"
	"glimra/services/pricing"
	"glimra/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// submitFlagTTL bounds how long a crashed submission can block retries.
const submitFlagTTL = 30 * time.Second

// Submit assembles the final booking from the wizard state and creates it
// exactly once per user confirmation. While a submission is in flight,
// repeats are rejected. On success the session is cleared; on failure it is
// preserved so the user retries without re-entering selections.
func (s *DefaultWizardService) Submit(ctx context.Context, sessionID string) (*models.BookingReference, error) {
	logger := utils.GetLogger()

	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !CanProceedToSummary(sess) {
		return nil, ErrIncompleteSelection
	}

	flagKey := "submit:" + sessionID
	acquired, err := s.Flags.Acquire(ctx, flagKey, submitFlagTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire submission flag: %w", err)
	}
	if !acquired {
		return nil, ErrSubmissionInFlight
	}
	defer func() {
		if err := s.Flags.Release(ctx, flagKey); err != nil {
			logger.Warn("failed to release submission flag", zap.Error(err))
		}
	}()

	loyalty, err := s.Profiles.GetLoyalty(sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch loyalty info: %w", err)
	}
	breakdown := s.Calc.Compute(sess.Selection, loyalty)
	duration := pricing.TotalDuration(sess.Selection)
	sel := sess.Selection

	addonIDs := make([]string, 0, len(sel.AddOns))
	for _, a := range sel.AddOns {
		addonIDs = append(addonIDs, a.ID)
	}

	booking := models.Booking{
		ID:               uuid.New().String(),
		UserID:           sess.UserID,
		BranchID:         sel.BranchID,
		VehicleID:        sel.Vehicle.ID,
		ServiceTypeID:    sel.ServiceType.ID,
		ServiceTypeName:  sel.ServiceType.Name,
		ValetTypeID:      sel.ValetType.ID,
		AddressID:        sel.AddressID,
		AddOnIDs:         addonIDs,
		Date:             sel.Date,
		Start:            sel.SlotStart,
		End:              sel.SlotStart + duration,
		DurationMinutes:  duration,
		Instructions:     sel.Instructions,
		IsExpressService: sel.IsExpressService,
		TotalPrice:       breakdown.FinalPrice,
		Status:           models.BookingStatusConfirmed,
		CreatedAt:        s.now(),
	}

	if err := s.Bookings.CreateBooking(&booking); err != nil {
		// Session is kept; the user can retry from the summary.
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		logger.Warn("failed to clear wizard session after booking",
			zap.String("sessionID", sessionID), zap.Error(err))
	}

	if s.Notifier != nil {
		if err := s.Notifier.SendBookingConfirmed(ctx, booking.UserID, booking); err != nil {
			logger.Warn("booking confirmation push failed", zap.Error(err))
		}
	}

	logger.Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("userID", booking.UserID),
		zap.String("date", booking.Date))

	return &models.BookingReference{
		BookingID:  booking.ID,
		BranchID:   booking.BranchID,
		Date:       booking.Date,
		Start:      booking.Start,
		End:        booking.End,
		TotalPrice: booking.TotalPrice,
		Status:     booking.Status,
	}, nil
}
