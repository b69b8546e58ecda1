package fleet

import (
	"context"
	"fmt"
	"time"

	"glimra/models"
	"glimra/services/payment"
	"glimra/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Subscribe starts a fleet subscription for the user. A trial subscription
// collects a payment method with a setup intent and never charges; a paid
// subscription charges the plan's monthly price up front. The returned
// attempt carries the client secret the app needs to present the sheet.
func (fs *DefaultFleetService) Subscribe(userID, planID string, trial bool) (*models.FleetSubscription, *models.PaymentAttempt, error) {
	plan, err := fs.Plans.GetSubscriptionPlan(planID)
	if err != nil {
		return nil, nil, fmt.Errorf("unknown subscription plan: %w", err)
	}
	if trial && plan.TrialDays <= 0 {
		return nil, nil, fmt.Errorf("plan %s does not offer a trial", plan.Name)
	}

	if existing, err := fs.Repo.GetUserSubscription(userID); err == nil && existing.Status == models.SubscriptionStatusActive {
		return nil, nil, fmt.Errorf("user already has an active subscription")
	}

	kind := models.PaymentKindPayment
	amount := plan.MonthlyPrice
	if trial {
		kind = models.PaymentKindSetup
		amount = 0
	}

	attempt, err := fs.PaymentSvc.Initiate(context.Background(), payment.InitiateRequest{
		UserID:      userID,
		PurchaseKey: fmt.Sprintf("subscription:%s:%s", userID, planID),
		Kind:        kind,
		Amount:      amount,
	})
	if err != nil {
		return nil, nil, err
	}

	sub := &models.FleetSubscription{
		ID:             uuid.New().String(),
		UserID:         userID,
		PlanID:         planID,
		Status:         models.SubscriptionStatusPending,
		Trial:          trial,
		PaymentAttempt: attempt.ID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := fs.Repo.UpsertSubscription(sub); err != nil {
		return nil, nil, err
	}

	utils.GetLogger().Info("fleet subscription started",
		zap.String("userID", userID),
		zap.String("planID", planID),
		zap.Bool("trial", trial),
		zap.String("attemptID", attempt.ID))
	return sub, attempt, nil
}

// ActivateSubscription re-reads the payment attempt for the user's pending
// subscription and flips it active when the attempt has confirmed. Called
// after the confirmation wait returns, whether it confirmed or timed out:
// reconciliation may have confirmed a timed-out attempt in the background.
func (fs *DefaultFleetService) ActivateSubscription(userID string) (*models.FleetSubscription, error) {
	sub, err := fs.Repo.GetUserSubscription(userID)
	if err != nil {
		return nil, err
	}
	if sub.Status == models.SubscriptionStatusActive {
		return sub, nil
	}
	if sub.PaymentAttempt == "" {
		return sub, nil
	}

	attempt, err := fs.PaymentSvc.GetAttempt(context.Background(), sub.PaymentAttempt)
	if err != nil {
		return nil, err
	}
	if attempt.Status != models.PaymentStatusConfirmed {
		return sub, nil
	}

	sub.Status = models.SubscriptionStatusActive
	sub.ActivatedAt = time.Now()
	sub.UpdatedAt = time.Now()
	if err := fs.Repo.UpsertSubscription(sub); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("fleet subscription activated",
		zap.String("userID", userID), zap.String("planID", sub.PlanID))
	return sub, nil
}

// CancelSubscription marks the user's subscription canceled.
func (fs *DefaultFleetService) CancelSubscription(userID string) error {
	sub, err := fs.Repo.GetUserSubscription(userID)
	if err != nil {
		return err
	}
	if sub.Status == models.SubscriptionStatusCanceled {
		return nil
	}
	sub.Status = models.SubscriptionStatusCanceled
	sub.UpdatedAt = time.Now()
	return fs.Repo.UpsertSubscription(sub)
}
