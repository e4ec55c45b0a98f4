package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/storefront/internal/config"
	"github.com/deppfellow/storefront/internal/lib/email"
	"github.com/deppfellow/storefront/internal/metrics"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// orderMailer is the part of *email.Client the workers use.
type orderMailer interface {
	SendOrderConfirmationEmail(to string, order email.OrderConfirmation) error
}

// InitHandlers builds the dependencies the task handlers need. It must run
// before Start.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(cfg, logger)
}

func (j *JobService) handleOrderConfirmationTask(ctx context.Context, t *asynq.Task) (err error) {
	defer func(start time.Time) {
		metrics.RecordQueueJob(TaskOrderConfirmation, err, start)
	}(time.Now())

	var p OrderConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Retrying cannot fix a bad payload.
		return fmt.Errorf("failed to unmarshal order confirmation payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskOrderConfirmation).
		Int64("order_id", p.OrderID).
		Logger()

	logger.Info().Msg("Processing order confirmation email task")

	err = j.mailer.SendOrderConfirmationEmail(p.To, email.OrderConfirmation{
		CustomerName: p.CustomerName,
		OrderID:      p.OrderID,
		OrderDate:    p.OrderDate,
		ItemCount:    p.ItemCount,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to send order confirmation email")
		return err
	}

	logger.Info().Msg("Successfully sent order confirmation email")
	return nil
}
