package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/s4084228/toc-backend/internal/application/ports"
	"github.com/s4084228/toc-backend/internal/domain"
	"github.com/s4084228/toc-backend/internal/infrastructure/persistence/db"
)

const (
	upsertSubscriptionSQL = `INSERT INTO subscriptions (id, user_id, plan, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id) DO UPDATE SET id = $1, plan = $3, status = $4, updated_at = $6`
	getSubscriptionSQL = `SELECT id, user_id, plan, status, created_at, updated_at
FROM subscriptions WHERE user_id = $1`
	cancelSubscriptionSQL = `UPDATE subscriptions SET status = 'cancelled', updated_at = NOW()
WHERE user_id = $1 AND status = 'active'`
)

// SubscriptionRepository implements ports.SubscriptionRepository over pgx.
// One row per user, enforced by a unique constraint on user_id.
type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

func (r *SubscriptionRepository) Upsert(ctx context.Context, sub *domain.Subscription) error {
	_, err := r.pool.Exec(ctx, upsertSubscriptionSQL,
		sub.ID, sub.UserID.UUID, string(sub.Plan), string(sub.Status), sub.CreatedAt, sub.UpdatedAt)
	return err
}

func (r *SubscriptionRepository) GetByUserID(ctx context.Context, userID domain.UserID) (*domain.Subscription, error) {
	var row db.Subscription
	err := r.pool.QueryRow(ctx, getSubscriptionSQL, userID.UUID).
		Scan(&row.ID, &row.UserID, &row.Plan, &row.Status, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &domain.Subscription{
		ID:        row.ID,
		UserID:    domain.NewUserID(row.UserID),
		Plan:      domain.SubscriptionPlan(row.Plan),
		Status:    domain.SubscriptionStatus(row.Status),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (r *SubscriptionRepository) Cancel(ctx context.Context, userID domain.UserID) (bool, error) {
	tag, err := r.pool.Exec(ctx, cancelSubscriptionSQL, userID.UUID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

var _ ports.SubscriptionRepository = (*SubscriptionRepository)(nil)
