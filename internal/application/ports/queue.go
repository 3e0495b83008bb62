package ports

import "context"

// TaskEnqueuer enqueues async tasks (email, webhook). Callers on the password
// reset path must swallow enqueue errors; delivery failure never changes the
// response.
type TaskEnqueuer interface {
	EnqueueSendResetCode(ctx context.Context, email, code string) error
	EnqueueSendWelcome(ctx context.Context, email, firstName string) error
	EnqueueWebhook(ctx context.Context, event string, payload interface{}) error
}
