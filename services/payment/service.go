package payment

import (
	"context"
	"fmt"
	"time"

	paymentRepo "glimra/database/repository/payment"
	"glimra/models"
	"glimra/services/wizard"
	"glimra/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PresentationOutcome is what the device reports after the payment sheet is
// dismissed.
type PresentationOutcome string

const (
	PresentationSucceeded PresentationOutcome = "succeeded"
	PresentationCanceled  PresentationOutcome = "canceled"
	PresentationFailed    PresentationOutcome = "failed"
)

// InitiateRequest describes one purchase or setup action.
type InitiateRequest struct {
	UserID      string
	PurchaseKey string // logical purchase, e.g. "subscription:<planID>"
	Kind        string // models.PaymentKindPayment or models.PaymentKindSetup
	Amount      float64
	Currency    string
}

// PaymentService drives the create → present → poll → activate protocol.
type PaymentService interface {
	Initiate(ctx context.Context, req InitiateRequest) (*models.PaymentAttempt, error)
	ReportPresentation(ctx context.Context, attemptID string, outcome PresentationOutcome, message string) (*models.PaymentAttempt, error)
	StartConfirmation(ctx context.Context, attemptID string) (*ConfirmationHandle, error)
	Reconcile(ctx context.Context, attemptID string) (*models.PaymentAttempt, error)
	GetAttempt(ctx context.Context, attemptID string) (*models.PaymentAttempt, error)
}

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Intents  IntentClient
	Repo     paymentRepo.PaymentRepository
	Flags    wizard.FlagStore
	Enqueuer ReconcileEnqueuer

	PollInterval time.Duration
	MaxWait      time.Duration
	Currency     string
}

// inFlightTTL covers presentation plus the full polling window.
const inFlightTTL = 5 * time.Minute

func (s *DefaultPaymentService) flagKey(purchaseKey string) string {
	return "payinflight:" + purchaseKey
}

// Initiate creates the provider intent for a purchase. A second Initiate for
// the same logical purchase while a confirmation is outstanding is rejected.
func (s *DefaultPaymentService) Initiate(ctx context.Context, req InitiateRequest) (*models.PaymentAttempt, error) {
	if req.UserID == "" || req.PurchaseKey == "" {
		return nil, NewProviderError("missing user or purchase key")
	}
	if req.Kind != models.PaymentKindPayment && req.Kind != models.PaymentKindSetup {
		return nil, NewProviderError(fmt.Sprintf("unsupported payment kind: %s", req.Kind))
	}
	if req.Kind == models.PaymentKindPayment && req.Amount <= 0 {
		return nil, NewProviderError("invalid payment amount")
	}

	acquired, err := s.Flags.Acquire(ctx, s.flagKey(req.PurchaseKey), inFlightTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire payment flag: %w", err)
	}
	if !acquired {
		return nil, ErrConfirmationInFlight
	}

	currency := req.Currency
	if currency == "" {
		currency = s.Currency
	}

	var intent *Intent
	if req.Kind == models.PaymentKindSetup {
		intent, err = s.Intents.CreateSetupIntent(ctx, req.PurchaseKey)
	} else {
		intent, err = s.Intents.CreatePaymentIntent(ctx, req.Amount, currency, req.PurchaseKey)
	}
	if err != nil {
		// Nothing was presented; free the purchase for a manual retry.
		s.releaseFlag(ctx, req.PurchaseKey)
		return nil, err
	}

	attempt := &models.PaymentAttempt{
		ID:            uuid.New().String(),
		UserID:        req.UserID,
		PurchaseKey:   req.PurchaseKey,
		Kind:          req.Kind,
		ClientSecret:  intent.ClientSecret,
		TransactionID: intent.TransactionID,
		Amount:        req.Amount,
		Currency:      currency,
		Status:        models.PaymentStatusInitiated,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := s.Repo.CreateAttempt(attempt); err != nil {
		s.releaseFlag(ctx, req.PurchaseKey)
		return nil, err
	}

	utils.GetLogger().Info("payment attempt initiated",
		zap.String("attemptID", attempt.ID),
		zap.String("kind", attempt.Kind),
		zap.String("purchaseKey", attempt.PurchaseKey))
	return attempt, nil
}

// ReportPresentation records the payment sheet outcome. Cancellation aborts
// the protocol with no side effects and no automatic retry; a hard failure is
// terminal too. For setup attempts success is immediately terminal: no money
// moved, nothing to poll. For payment attempts, success moves the
// attempt to presented, awaiting confirmation.
func (s *DefaultPaymentService) ReportPresentation(ctx context.Context, attemptID string, outcome PresentationOutcome, message string) (*models.PaymentAttempt, error) {
	attempt, err := s.Repo.GetAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.IsTerminal() {
		return nil, ErrAttemptTerminal
	}

	switch outcome {
	case PresentationCanceled:
		attempt.Status = models.PaymentStatusCanceled
		s.releaseFlag(ctx, attempt.PurchaseKey)
	case PresentationFailed:
		attempt.Status = models.PaymentStatusFailed
		attempt.FailureMessage = message
		s.releaseFlag(ctx, attempt.PurchaseKey)
	case PresentationSucceeded:
		if attempt.Kind == models.PaymentKindSetup {
			attempt.Status = models.PaymentStatusConfirmed
			s.releaseFlag(ctx, attempt.PurchaseKey)
		} else {
			attempt.Status = models.PaymentStatusPresented
		}
	default:
		return nil, NewProviderError(fmt.Sprintf("unknown presentation outcome: %s", outcome))
	}

	if err := s.Repo.UpdateAttemptStatus(attempt.ID, attempt.Status, attempt.FailureMessage); err != nil {
		return nil, err
	}
	return attempt, nil
}

// GetAttempt returns the attempt's current state.
func (s *DefaultPaymentService) GetAttempt(ctx context.Context, attemptID string) (*models.PaymentAttempt, error) {
	return s.Repo.GetAttempt(attemptID)
}

func (s *DefaultPaymentService) releaseFlag(ctx context.Context, purchaseKey string) {
	if err := s.Flags.Release(ctx, s.flagKey(purchaseKey)); err != nil {
		utils.GetLogger().Warn("failed to release payment flag",
			zap.String("purchaseKey", purchaseKey), zap.Error(err))
	}
}
