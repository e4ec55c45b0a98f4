package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/deppfellow/storefront/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to    string
	order email.OrderConfirmation
	err   error
	calls int
}

func (f *fakeMailer) SendOrderConfirmationEmail(to string, order email.OrderConfirmation) error {
	f.calls++
	f.to = to
	f.order = order
	return f.err
}

func newTestJobService(m orderMailer) *JobService {
	logger := zerolog.Nop()
	return &JobService{logger: &logger, mailer: m}
}

func TestNewOrderConfirmationTask(t *testing.T) {
	task, err := NewOrderConfirmationTask(OrderConfirmationPayload{
		To:      "ana@x.com",
		OrderID: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, TaskOrderConfirmation, task.Type())

	var p OrderConfirmationPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, "ana@x.com", p.To)
	assert.Equal(t, int64(3), p.OrderID)
}

func TestHandleOrderConfirmationTask(t *testing.T) {
	mailer := &fakeMailer{}
	j := newTestJobService(mailer)

	task, err := NewOrderConfirmationTask(OrderConfirmationPayload{
		To:           "ana@x.com",
		CustomerName: "Ana",
		OrderID:      11,
		OrderDate:    "2026-10-18",
		ItemCount:    2,
	})
	require.NoError(t, err)

	require.NoError(t, j.Mux().ProcessTask(context.Background(), task))
	assert.Equal(t, 1, mailer.calls)
	assert.Equal(t, "ana@x.com", mailer.to)
	assert.Equal(t, email.OrderConfirmation{
		CustomerName: "Ana",
		OrderID:      11,
		OrderDate:    "2026-10-18",
		ItemCount:    2,
	}, mailer.order)
}

func TestHandleOrderConfirmationTask_SendFailureIsRetried(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("provider down")}
	j := newTestJobService(mailer)

	task, err := NewOrderConfirmationTask(OrderConfirmationPayload{To: "ana@x.com", OrderID: 1})
	require.NoError(t, err)

	err = j.handleOrderConfirmationTask(context.Background(), task)
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleOrderConfirmationTask_BadPayloadSkipsRetry(t *testing.T) {
	mailer := &fakeMailer{}
	j := newTestJobService(mailer)

	err := j.handleOrderConfirmationTask(context.Background(), asynq.NewTask(TaskOrderConfirmation, []byte("{")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
	assert.Zero(t, mailer.calls)
}
