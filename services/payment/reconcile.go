package payment

import (
	"context"

	"glimra/models"
	"glimra/utils"

	"go.uber.org/zap"
)

// Reconcile performs the single follow-up status re-check for an attempt
// whose confirmation timed out. A still-pending provider status leaves the
// attempt timed_out; settlement will be reflected next time the client
// refetches its state.
func (s *DefaultPaymentService) Reconcile(ctx context.Context, attemptID string) (*models.PaymentAttempt, error) {
	attempt, err := s.Repo.GetAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != models.PaymentStatusTimedOut {
		return attempt, nil
	}

	status, err := s.Intents.CheckStatus(ctx, attempt.TransactionID)
	if err != nil {
		return nil, err
	}

	switch status {
	case IntentStatusSucceeded:
		attempt.Status = models.PaymentStatusConfirmed
	case IntentStatusFailed:
		attempt.Status = models.PaymentStatusFailed
		attempt.FailureMessage = "payment was not completed by the provider"
	default:
		utils.GetLogger().Info("reconcile: provider still pending",
			zap.String("attemptID", attempt.ID))
		return attempt, nil
	}

	if err := s.Repo.UpdateAttemptStatus(attempt.ID, attempt.Status, attempt.FailureMessage); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("payment attempt reconciled",
		zap.String("attemptID", attempt.ID),
		zap.String("status", attempt.Status))
	return attempt, nil
}
