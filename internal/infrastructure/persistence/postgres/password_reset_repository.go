package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/s4084228/toc-backend/internal/application/ports"
	"github.com/s4084228/toc-backend/internal/domain"
	"github.com/s4084228/toc-backend/internal/infrastructure/persistence/db"
)

// PasswordResetRepository implements ports.PasswordResetStore. Codes are
// stored as SHA-256 digests; expired rows are invisible to lookup and purged
// by the retention sweep.
type PasswordResetRepository struct {
	pool *pgxpool.Pool
}

func NewPasswordResetRepository(pool *pgxpool.Pool) *PasswordResetRepository {
	return &PasswordResetRepository{pool: pool}
}

const (
	deleteResetForEmailSQL = `DELETE FROM password_reset_tokens WHERE email = $1`
	createResetSQL         = `INSERT INTO password_reset_tokens (id, user_id, email, token_hash, expires_at, created_at)
VALUES ($1, $2, $3, $4, $5, NOW())`
	findValidResetSQL = `SELECT id, user_id, email, expires_at, created_at
FROM password_reset_tokens WHERE email = $1 AND token_hash = $2 AND expires_at > NOW()`
	deleteResetByIDSQL   = `DELETE FROM password_reset_tokens WHERE id = $1`
	deleteResetBeforeSQL = `DELETE FROM password_reset_tokens WHERE expires_at <= $1`
)

func (r *PasswordResetRepository) DeleteAllForEmail(ctx context.Context, email string) error {
	_, err := r.pool.Exec(ctx, deleteResetForEmailSQL, strings.ToLower(email))
	return err
}

func (r *PasswordResetRepository) Create(ctx context.Context, userID domain.UserID, email, code string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, createResetSQL,
		uuid.New(), userID.UUID, strings.ToLower(email), hashResetCode(code), expiresAt)
	return err
}

func (r *PasswordResetRepository) FindValid(ctx context.Context, email, code string) (*domain.ResetToken, error) {
	var row db.PasswordResetToken
	err := r.pool.QueryRow(ctx, findValidResetSQL, strings.ToLower(email), hashResetCode(code)).
		Scan(&row.ID, &row.UserID, &row.Email, &row.ExpiresAt, &row.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &domain.ResetToken{
		ID:        row.ID,
		UserID:    domain.NewUserID(row.UserID),
		Email:     row.Email,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (r *PasswordResetRepository) DeleteByID(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, deleteResetByIDSQL, parsed)
	return err
}

func (r *PasswordResetRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, deleteResetBeforeSQL, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func hashResetCode(code string) string {
	h := sha256.Sum256([]byte(code))
	return hex.EncodeToString(h[:])
}

var _ ports.PasswordResetStore = (*PasswordResetRepository)(nil)
