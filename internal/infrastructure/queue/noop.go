package queue

import (
	"context"

	"github.com/s4084228/toc-backend/internal/application/ports"
)

// NoopEnqueuer is a no-op enqueuer when Redis/Asynq is not configured.
type NoopEnqueuer struct{}

func NewNoopEnqueuer() *NoopEnqueuer {
	return &NoopEnqueuer{}
}

func (q *NoopEnqueuer) EnqueueSendResetCode(ctx context.Context, email, code string) error {
	return nil
}

func (q *NoopEnqueuer) EnqueueSendWelcome(ctx context.Context, email, firstName string) error {
	return nil
}

func (q *NoopEnqueuer) EnqueueWebhook(ctx context.Context, event string, payload interface{}) error {
	return nil
}

var _ ports.TaskEnqueuer = (*NoopEnqueuer)(nil)
