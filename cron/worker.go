package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"glimra/config"
	"glimra/models"
	"glimra/services/notification"
	"glimra/services/payment"
	"glimra/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReconcileWorker runs the async worker in background. It consumes the
// follow-up re-checks enqueued when a payment confirmation timed out.
func InitReconcileWorker(paymentSvc payment.PaymentService, notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReconcileDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypePaymentReconcile, handleReconcileTask(paymentSvc, notifSvc))

	go func() {
		log.Println("[ReconcileWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReconcileWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReconcileWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReconcileTask(paymentSvc payment.PaymentService, notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ReconcilePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReconcileHandler] Invalid payload: %v", err)
			return err
		}

		attempt, err := paymentSvc.Reconcile(ctx, p.AttemptID)
		if err != nil {
			log.Printf("[ReconcileHandler] Re-check failed for attempt %s: %v", p.AttemptID, err)
			return err
		}

		if attempt.Status == models.PaymentStatusConfirmed && notifSvc != nil {
			if err := notifSvc.SendPaymentConfirmed(ctx, attempt.UserID, *attempt); err != nil {
				log.Printf("[ReconcileHandler] Late confirmation push failed: %v", err)
			}
		}
		return nil
	}
}
