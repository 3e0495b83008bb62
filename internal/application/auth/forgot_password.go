package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/s4084228/toc-backend/internal/application/ports"
	domerrors "github.com/s4084228/toc-backend/internal/domain/errors"
)

// DefaultResetCodeTTL is how long a reset code stays valid.
const DefaultResetCodeTTL = 15 * time.Minute

// ForgotPasswordInput is the email requesting a reset code.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordResult is always the same generic acceptance; it carries no
// signal about whether the account exists.
type ForgotPasswordResult struct {
	Message string
}

const genericResetMessage = "If an account exists for this email, a reset code has been sent"

// ForgotPassword issues a reset code: any previously issued codes for the
// email are superseded, the new code is stored with a TTL, and delivery is
// enqueued. Whether the account exists is never revealed, and a delivery
// failure never changes the response.
type ForgotPassword struct {
	resetStore ports.PasswordResetStore
	users      ports.UserRepository
	enqueuer   ports.TaskEnqueuer
	ttl        time.Duration
	log        zerolog.Logger
}

func NewForgotPassword(resetStore ports.PasswordResetStore, users ports.UserRepository, enqueuer ports.TaskEnqueuer, ttl time.Duration, log zerolog.Logger) *ForgotPassword {
	if ttl <= 0 {
		ttl = DefaultResetCodeTTL
	}
	return &ForgotPassword{
		resetStore: resetStore,
		users:      users,
		enqueuer:   enqueuer,
		ttl:        ttl,
		log:        log,
	}
}

// Execute runs the request-reset step. The only surfaced failure is a
// malformed email; everything past validation returns the generic acceptance.
func (uc *ForgotPassword) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !ValidEmail(email) {
		return nil, domerrors.Validation("Invalid email format")
	}
	accepted := &ForgotPasswordResult{Message: genericResetMessage}
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil || user == nil {
		// No account: same response, no token record.
		return accepted, nil
	}
	code, err := GenerateResetCode()
	if err != nil {
		return nil, err
	}
	if err := uc.resetStore.DeleteAllForEmail(ctx, email); err != nil {
		return nil, err
	}
	if err := uc.resetStore.Create(ctx, user.ID, email, code, time.Now().Add(uc.ttl)); err != nil {
		return nil, err
	}
	if err := uc.enqueuer.EnqueueSendResetCode(ctx, email, code); err != nil {
		uc.log.Warn().Err(err).Str("email", email).Msg("reset code delivery enqueue failed")
	}
	return accepted, nil
}

// GenerateResetCode returns an 8-character uppercase hexadecimal code from a
// cryptographically strong source (4 random bytes).
func GenerateResetCode() (string, error) {
	raw := make([]byte, 4)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(raw)), nil
}
