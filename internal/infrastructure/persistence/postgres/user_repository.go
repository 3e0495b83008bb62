package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/s4084228/toc-backend/internal/application/ports"
	"github.com/s4084228/toc-backend/internal/domain"
	"github.com/s4084228/toc-backend/internal/infrastructure/persistence/db"
)

const (
	createUserSQL = `INSERT INTO users (id, email, password_hash, first_name, last_name, organization, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	getUserByEmailSQL = `SELECT id, email, password_hash, first_name, last_name, organization, created_at, updated_at
FROM users WHERE email = $1`
	getUserByIDSQL = `SELECT id, email, password_hash, first_name, last_name, organization, created_at, updated_at
FROM users WHERE id = $1`
	updatePasswordSQL = `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`
	updateProfileSQL  = `UPDATE users SET first_name = $1, last_name = $2, organization = $3, updated_at = $4 WHERE id = $5`
)

// UserRepository implements ports.UserRepository over pgx.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.pool.Exec(ctx, createUserSQL,
		user.ID.UUID, strings.ToLower(user.Email), user.PasswordHash,
		user.FirstName, user.LastName, user.Organization,
		user.CreatedAt, user.UpdatedAt)
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, getUserByEmailSQL, strings.ToLower(email))
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, getUserByIDSQL, userID.UUID)
	return scanUser(row)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID domain.UserID, passwordHash string) error {
	_, err := r.pool.Exec(ctx, updatePasswordSQL, passwordHash, userID.UUID)
	return err
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	_, err := r.pool.Exec(ctx, updateProfileSQL,
		user.FirstName, user.LastName, user.Organization, user.UpdatedAt, user.ID.UUID)
	return err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u db.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Organization, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &domain.User{
		ID:           domain.NewUserID(u.ID),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Organization: u.Organization,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}, nil
}

// Ensure UserRepository implements ports.UserRepository.
var _ ports.UserRepository = (*UserRepository)(nil)
