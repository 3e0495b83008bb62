package ports

import (
	"context"
	"time"

	"github.com/s4084228/toc-backend/internal/domain"
)

// UserRepository defines persistence for accounts (Postgres).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID domain.UserID, passwordHash string) error
	UpdateProfile(ctx context.Context, user *domain.User) error
}

// ProjectStore defines persistence for Theory-of-Change documents (MongoDB).
type ProjectStore interface {
	Find(ctx context.Context, ownerID domain.UserID, projectID string) (*domain.Project, error)
	// TitleExists reports whether another project of the owner carries the
	// title, compared case-insensitively. excludeID is skipped ("" excludes
	// nothing).
	TitleExists(ctx context.Context, ownerID domain.UserID, title, excludeID string) (bool, error)
	Insert(ctx context.Context, p *domain.Project) error
	// Replace overwrites the whole document identified by (OwnerID, ProjectID).
	Replace(ctx context.Context, p *domain.Project) error
	// ListByOwner returns the owner's projects ordered by CreatedAt descending.
	ListByOwner(ctx context.Context, ownerID domain.UserID) ([]*domain.Project, error)
	Delete(ctx context.Context, ownerID domain.UserID, projectID string) (bool, error)
}

// PasswordResetStore defines storage for single-use reset codes. Lookup takes
// the plain code; implementations hash it at rest.
type PasswordResetStore interface {
	DeleteAllForEmail(ctx context.Context, email string) error
	Create(ctx context.Context, userID domain.UserID, email, code string, expiresAt time.Time) error
	// FindValid returns the token record for (email, code) when it has not
	// expired, nil when no such record exists.
	FindValid(ctx context.Context, email, code string) (*domain.ResetToken, error)
	DeleteByID(ctx context.Context, id string) error
	// DeleteExpired purges records past their expiry; lookup already excludes
	// them, this is hygiene for the retention sweep.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// RefreshTokenInfo is the stored state of a refresh token.
type RefreshTokenInfo struct {
	TokenID   string
	UserID    domain.UserID
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// TokenStore defines storage for refresh tokens (hashed at rest).
type TokenStore interface {
	StoreRefreshToken(ctx context.Context, userID domain.UserID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshTokenInfo, error)
	RevokeByID(ctx context.Context, tokenID string) error
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
}

// SubscriptionRepository defines persistence for plans.
type SubscriptionRepository interface {
	// Upsert replaces the user's subscription with sub.
	Upsert(ctx context.Context, sub *domain.Subscription) error
	GetByUserID(ctx context.Context, userID domain.UserID) (*domain.Subscription, error)
	Cancel(ctx context.Context, userID domain.UserID) (bool, error)
}
