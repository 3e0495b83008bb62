package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// resetCodePayload matches the JSON enqueued by TaskEnqueuer.EnqueueSendResetCode.
type resetCodePayload struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// welcomePayload matches the JSON enqueued by TaskEnqueuer.EnqueueSendWelcome.
type welcomePayload struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}

// Worker runs Asynq task handlers (e.g. send reset code email).
type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
	log zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, log: log}
	mux.HandleFunc(TypeSendResetCode, w.handleSendResetCode)
	mux.HandleFunc(TypeSendWelcome, w.handleSendWelcome)
	mux.HandleFunc(TypeWebhook, w.handleWebhook)
	return w
}

func (w *Worker) handleSendResetCode(ctx context.Context, t *asynq.Task) error {
	var p resetCodePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("reset code task payload invalid")
		return err
	}
	// Dev: log the code; production would send email via SMTP/sendgrid etc.
	w.log.Info().
		Str("email", p.Email).
		Str("code", p.Code).
		Msg("password reset email (log only; configure SMTP for real email)")
	return nil
}

func (w *Worker) handleSendWelcome(ctx context.Context, t *asynq.Task) error {
	var p welcomePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("welcome task payload invalid")
		return err
	}
	w.log.Info().
		Str("email", p.Email).
		Str("first_name", p.FirstName).
		Msg("welcome email (log only; configure SMTP for real email)")
	return nil
}

func (w *Worker) handleWebhook(ctx context.Context, t *asynq.Task) error {
	w.log.Debug().Str("payload", string(t.Payload())).Msg("webhook task (noop)")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
