package db

import (
	"time"

	"github.com/google/uuid"
)

// Row types scanned by the postgres repositories.

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Organization string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type PasswordResetToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Email     string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

type Subscription struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Plan      string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
