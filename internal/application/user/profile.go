package user

import (
	"context"
	"strings"
	"time"

	"github.com/s4084228/toc-backend/internal/application/ports"
	"github.com/s4084228/toc-backend/internal/domain"
	domerrors "github.com/s4084228/toc-backend/internal/domain/errors"
)

// GetProfile fetches the account for the authenticated user.
type GetProfile struct {
	users ports.UserRepository
}

func NewGetProfile(users ports.UserRepository) *GetProfile {
	return &GetProfile{users: users}
}

func (uc *GetProfile) Execute(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domerrors.ErrUserNotFound
	}
	return u, nil
}

// UpdateProfileInput holds the mutable profile fields. Email is immutable.
type UpdateProfileInput struct {
	UserID       domain.UserID
	FirstName    string
	LastName     string
	Organization string
}

// UpdateProfile mutates name and organization on the account.
type UpdateProfile struct {
	users ports.UserRepository
}

func NewUpdateProfile(users ports.UserRepository) *UpdateProfile {
	return &UpdateProfile{users: users}
}

func (uc *UpdateProfile) Execute(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	u, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domerrors.ErrUserNotFound
	}
	u.FirstName = strings.TrimSpace(input.FirstName)
	u.LastName = strings.TrimSpace(input.LastName)
	u.Organization = strings.TrimSpace(input.Organization)
	u.UpdatedAt = time.Now()
	if err := uc.users.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
