package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/s4084228/toc-backend/internal/application/ports"
)

const (
	TypeSendResetCode = "email:reset_code"
	TypeSendWelcome   = "email:welcome"
	TypeWebhook       = "webhook:emit"
)

type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) (*TaskEnqueuer, error) {
	client := asynq.NewClient(redisOpt)
	return &TaskEnqueuer{client: client, log: log}, nil
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

func (q *TaskEnqueuer) EnqueueSendResetCode(ctx context.Context, email, code string) error {
	payload, _ := json.Marshal(map[string]string{
		"email": email,
		"code":  code,
	})
	task := asynq.NewTask(TypeSendResetCode, payload)
	_, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("email", email).Msg("enqueue reset code email failed")
		return err
	}
	return nil
}

func (q *TaskEnqueuer) EnqueueSendWelcome(ctx context.Context, email, firstName string) error {
	payload, _ := json.Marshal(map[string]string{
		"email":      email,
		"first_name": firstName,
	})
	task := asynq.NewTask(TypeSendWelcome, payload)
	_, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("email", email).Msg("enqueue welcome email failed")
		return err
	}
	return nil
}

func (q *TaskEnqueuer) EnqueueWebhook(ctx context.Context, event string, payload interface{}) error {
	body, _ := json.Marshal(struct {
		Event   string      `json:"event"`
		Payload interface{} `json:"payload"`
	}{Event: event, Payload: payload})
	task := asynq.NewTask(TypeWebhook, body)
	_, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("event", event).Msg("enqueue webhook failed")
		return err
	}
	return nil
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)
