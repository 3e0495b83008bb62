package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/s4084228/toc-backend/internal/application/ports"
	"github.com/s4084228/toc-backend/internal/domain"
	"github.com/s4084228/toc-backend/internal/infrastructure/persistence/db"
)

const (
	createRefreshTokenSQL = `INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
VALUES ($1, $2, $3, $4, NOW())`
	getRefreshTokenSQL = `SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
FROM refresh_tokens WHERE token_hash = $1`
	revokeRefreshTokenSQL = `UPDATE refresh_tokens SET revoked_at = COALESCE(revoked_at, NOW()) WHERE id = $1`
)

// TokenStore implements ports.TokenStore over pgx. Tokens arrive pre-hashed.
type TokenStore struct {
	pool *pgxpool.Pool
}

func NewTokenStore(pool *pgxpool.Pool) *TokenStore {
	return &TokenStore{pool: pool}
}

func (s *TokenStore) StoreRefreshToken(ctx context.Context, userID domain.UserID, tokenHash string, expiresAt time.Time) error {
	_, err := s.pool.Exec(ctx, createRefreshTokenSQL, uuid.New(), userID.UUID, tokenHash, expiresAt)
	return err
}

func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenHash string) (*ports.RefreshTokenInfo, error) {
	var row db.RefreshToken
	err := s.pool.QueryRow(ctx, getRefreshTokenSQL, tokenHash).
		Scan(&row.ID, &row.UserID, &row.TokenHash, &row.ExpiresAt, &row.RevokedAt, &row.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ports.RefreshTokenInfo{
		TokenID:   row.ID.String(),
		UserID:    domain.NewUserID(row.UserID),
		ExpiresAt: row.ExpiresAt,
		RevokedAt: row.RevokedAt,
	}, nil
}

func (s *TokenStore) RevokeByID(ctx context.Context, tokenID string) error {
	id, err := uuid.Parse(tokenID)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, revokeRefreshTokenSQL, id)
	return err
}

func (s *TokenStore) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	info, err := s.GetRefreshToken(ctx, tokenHash)
	if err != nil {
		return err
	}
	if info == nil {
		return nil // already gone or invalid
	}
	return s.RevokeByID(ctx, info.TokenID)
}

// Ensure TokenStore implements ports.TokenStore.
var _ ports.TokenStore = (*TokenStore)(nil)
