package auth

import (
	"context"
	"strings"

	"github.com/s4084228/toc-backend/internal/application/ports"
	domerrors "github.com/s4084228/toc-backend/internal/domain/errors"
)

// ResetPasswordInput is the emailed code plus the new password.
type ResetPasswordInput struct {
	Email       string
	Token       string
	NewPassword string
}

type ResetPasswordResult struct{}

// ResetPassword consumes a reset code: it must match an unexpired record for
// the email, the new password must pass the strength rules, and the record is
// deleted only after the password update so the code is single-use. A wrong
// code and an expired one are indistinguishable to the caller.
type ResetPassword struct {
	resetStore ports.PasswordResetStore
	users      ports.UserRepository
	hasher     ports.PasswordHasher
}

func NewResetPassword(resetStore ports.PasswordResetStore, users ports.UserRepository, hasher ports.PasswordHasher) *ResetPassword {
	return &ResetPassword{
		resetStore: resetStore,
		users:      users,
		hasher:     hasher,
	}
}

func (uc *ResetPassword) Execute(ctx context.Context, input ResetPasswordInput) (*ResetPasswordResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !ValidEmail(email) {
		return nil, domerrors.Validation("Invalid email format")
	}
	if input.Token == "" || input.NewPassword == "" {
		return nil, domerrors.Validation("Token and new password are required")
	}
	code := strings.ToUpper(strings.TrimSpace(input.Token))
	record, err := uc.resetStore.FindValid(ctx, email, code)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domerrors.ErrInvalidResetToken
	}
	if err := ValidatePasswordStrength(input.NewPassword); err != nil {
		return nil, err
	}
	hash, err := uc.hasher.Hash(input.NewPassword)
	if err != nil {
		return nil, err
	}
	if err := uc.users.UpdatePassword(ctx, record.UserID, hash); err != nil {
		return nil, err
	}
	// Consume only after the password is persisted.
	if err := uc.resetStore.DeleteByID(ctx, record.ID.String()); err != nil {
		return nil, err
	}
	return &ResetPasswordResult{}, nil
}
