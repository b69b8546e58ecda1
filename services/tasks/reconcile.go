package tasks

import (
	"encoding/json"
	"fmt"

	"glimra/config"

	"github.com/hibiken/asynq"
)

const TypePaymentReconcile = "payment:reconcile"

// ReconcilePayload identifies the payment attempt to re-check after a
// confirmation timeout.
type ReconcilePayload struct {
	AttemptID string `json:"attemptId"`
}

func NewReconcileTask(attemptID string) (*asynq.Task, error) {
	b, err := json.Marshal(ReconcilePayload{AttemptID: attemptID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePaymentReconcile, b), nil
}

// AsynqEnqueuer enqueues reconciliation tasks on the shared Redis queue.
type AsynqEnqueuer struct {
	Client *asynq.Client
}

func NewAsynqEnqueuer() *AsynqEnqueuer {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReconcileDB,
	})
	return &AsynqEnqueuer{Client: client}
}

func (e *AsynqEnqueuer) EnqueueReconcile(attemptID string) error {
	task, err := NewReconcileTask(attemptID)
	if err != nil {
		return err
	}
	if _, err := e.Client.Enqueue(task, asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("failed to enqueue reconcile task: %w", err)
	}
	return nil
}
