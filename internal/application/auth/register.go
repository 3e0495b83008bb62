package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/s4084228/toc-backend/internal/application/ports"
	"github.com/s4084228/toc-backend/internal/domain"
	domerrors "github.com/s4084228/toc-backend/internal/domain/errors"
)

type RegisterUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type RegisterUserResult struct {
	User *domain.User
}

// RegisterUser creates an account with a hashed password and enqueues the
// welcome email. Enqueue failure does not fail the signup.
type RegisterUser struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	enqueuer ports.TaskEnqueuer
}

func NewRegisterUser(users ports.UserRepository, hasher ports.PasswordHasher, enqueuer ports.TaskEnqueuer) *RegisterUser {
	return &RegisterUser{users: users, hasher: hasher, enqueuer: enqueuer}
}

func (uc *RegisterUser) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserResult, error) {
	if !ValidEmail(input.Email) {
		return nil, domerrors.Validation("Invalid email format")
	}
	if err := ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}
	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrUserExists
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	_ = uc.enqueuer.EnqueueSendWelcome(ctx, user.Email, user.FirstName)
	return &RegisterUserResult{User: user}, nil
}
