package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderConfirmation is the asynq task type of order confirmation emails.
	TaskOrderConfirmation = "email:order_confirmation"
)

// OrderConfirmationPayload is the JSON payload stored in Redis.
type OrderConfirmationPayload struct {
	To           string `json:"to"`
	CustomerName string `json:"customer_name"`
	OrderID      int64  `json:"order_id"`
	OrderDate    string `json:"order_date"`
	ItemCount    int    `json:"item_count"`
}

// NewOrderConfirmationTask builds the task: up to 3 retries on the default
// queue, 30s per attempt.
func NewOrderConfirmationTask(p OrderConfirmationPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskOrderConfirmation,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
