package payment

import (
	"context"
	"time"

	"glimra/models"
	"glimra/utils"

	"go.uber.org/zap"
)

// ReconcileEnqueuer schedules the single follow-up re-check performed after a
// confirmation timeout.
type ReconcileEnqueuer interface {
	EnqueueReconcile(attemptID string) error
}

// ConfirmationResult is the terminal outcome of one confirmation run.
type ConfirmationResult struct {
	Status string // confirmed, failed or timed_out
	// Aborted is set when the caller cancelled the run (navigation away);
	// the attempt keeps its non-terminal status and no result applies.
	Aborted bool
}

// ConfirmationHandle is a cancellable, running confirmation task. Callers
// cancel it when the user navigates away; no timers outlive the handle.
type ConfirmationHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
	result ConfirmationResult
}

// Cancel stops the polling loop. Safe to call more than once.
func (h *ConfirmationHandle) Cancel() {
	h.cancel()
}

// Done is closed once the run finished, whether terminal or aborted.
func (h *ConfirmationHandle) Done() <-chan struct{} {
	return h.done
}

// Result is valid after Done is closed.
func (h *ConfirmationHandle) Result() ConfirmationResult {
	<-h.done
	return h.result
}

// Wait blocks until the run finishes and returns its result.
func (h *ConfirmationHandle) Wait() ConfirmationResult {
	return h.Result()
}

// StartConfirmation begins polling the provider for the attempt's terminal
// status at a fixed interval with a bounded maximum wait.
//
// Timeout is not failure: the provider accepted the payment and settlement is
// presumed to be in progress server-side, so the run resolves timed_out and
// exactly one reconciliation re-check is enqueued instead of blocking the
// user indefinitely.
func (s *DefaultPaymentService) StartConfirmation(ctx context.Context, attemptID string) (*ConfirmationHandle, error) {
	attempt, err := s.Repo.GetAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Kind == models.PaymentKindSetup {
		return nil, NewProviderError("setup attempts are not polled")
	}
	if attempt.Status != models.PaymentStatusPresented {
		return nil, NewProviderError("attempt is not awaiting confirmation")
	}

	if err := s.Repo.UpdateAttemptStatus(attempt.ID, models.PaymentStatusConfirming, ""); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	handle := &ConfirmationHandle{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.confirmLoop(runCtx, attempt, handle)
	return handle, nil
}

func (s *DefaultPaymentService) confirmLoop(ctx context.Context, attempt *models.PaymentAttempt, handle *ConfirmationHandle) {
	logger := utils.GetLogger()
	defer close(handle.done)
	defer handle.cancel()

	ticker := time.NewTicker(s.PollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(s.MaxWait)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			// Navigation away: stop waiting. The attempt stays
			// confirming; the server-side outcome is unchanged.
			handle.result = ConfirmationResult{Status: attempt.Status, Aborted: true}
			return

		case <-deadline.C:
			s.finish(ctx, attempt, handle, models.PaymentStatusTimedOut, "")
			if err := s.Enqueuer.EnqueueReconcile(attempt.ID); err != nil {
				logger.Error("failed to enqueue reconciliation",
					zap.String("attemptID", attempt.ID), zap.Error(err))
			}
			return

		case <-ticker.C:
			status, err := s.Intents.CheckStatus(ctx, attempt.TransactionID)
			if err != nil {
				// Transient check errors do not fail the attempt;
				// the deadline bounds the loop.
				logger.Warn("payment status check failed",
					zap.String("attemptID", attempt.ID), zap.Error(err))
				continue
			}
			switch status {
			case IntentStatusSucceeded:
				s.finish(ctx, attempt, handle, models.PaymentStatusConfirmed, "")
				return
			case IntentStatusFailed:
				s.finish(ctx, attempt, handle, models.PaymentStatusFailed, "payment was not completed by the provider")
				return
			}
		}
	}
}

// finish records the terminal status and frees the purchase for future
// attempts.
func (s *DefaultPaymentService) finish(ctx context.Context, attempt *models.PaymentAttempt, handle *ConfirmationHandle, status, failureMessage string) {
	if err := s.Repo.UpdateAttemptStatus(attempt.ID, status, failureMessage); err != nil {
		utils.GetLogger().Error("failed to record payment status",
			zap.String("attemptID", attempt.ID),
			zap.String("status", status), zap.Error(err))
	}
	s.releaseFlag(context.WithoutCancel(ctx), attempt.PurchaseKey)
	handle.result = ConfirmationResult{Status: status}
}
