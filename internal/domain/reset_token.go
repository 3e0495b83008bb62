package domain

import (
	"time"

	"github.com/google/uuid"
)

// ResetToken is a single-use password reset code record. The code itself is
// stored hashed; Email and UserID are denormalized so verification needs no
// account lookup. At most one valid token exists per email: issuing a new one
// deletes its predecessors.
type ResetToken struct {
	ID        uuid.UUID
	UserID    UserID
	Email     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
