package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/s4084228/toc-backend/internal/application/ports"
	"github.com/s4084228/toc-backend/internal/domain"
)

type fakeUserRepo struct {
	byEmail   map[string]*domain.User
	passwords map[string]string // userID -> hash written via UpdatePassword
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{
		byEmail:   make(map[string]*domain.User),
		passwords: make(map[string]string),
	}
	for _, u := range users {
		r.byEmail[u.Email] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.byEmail[strings.ToLower(email)], nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id domain.UserID, hash string) error {
	r.passwords[id.String()] = hash
	return nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, u *domain.User) error {
	r.byEmail[u.Email] = u
	return nil
}

type storedReset struct {
	rec  *domain.ResetToken
	hash string
}

type fakeResetStore struct {
	records []storedReset
}

func hashCode(code string) string {
	h := sha256.Sum256([]byte(code))
	return hex.EncodeToString(h[:])
}

func (s *fakeResetStore) DeleteAllForEmail(_ context.Context, email string) error {
	kept := s.records[:0]
	for _, r := range s.records {
		if r.rec.Email != email {
			kept = append(kept, r)
		}
	}
	s.records = kept
	return nil
}

func (s *fakeResetStore) Create(_ context.Context, userID domain.UserID, email, code string, expiresAt time.Time) error {
	s.records = append(s.records, storedReset{
		rec: &domain.ResetToken{
			ID:        uuid.New(),
			UserID:    userID,
			Email:     email,
			ExpiresAt: expiresAt,
			CreatedAt: time.Now(),
		},
		hash: hashCode(code),
	})
	return nil
}

func (s *fakeResetStore) FindValid(_ context.Context, email, code string) (*domain.ResetToken, error) {
	h := hashCode(code)
	for _, r := range s.records {
		if r.rec.Email == email && r.hash == h && r.rec.ExpiresAt.After(time.Now()) {
			return r.rec, nil
		}
	}
	return nil, nil
}

func (s *fakeResetStore) DeleteByID(_ context.Context, id string) error {
	for i, r := range s.records {
		if r.rec.ID.String() == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *fakeResetStore) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	var purged int64
	kept := s.records[:0]
	for _, r := range s.records {
		if r.rec.ExpiresAt.Before(before) {
			purged++
			continue
		}
		kept = append(kept, r)
	}
	s.records = kept
	return purged, nil
}

type fakeEnqueuer struct {
	resetCodes []string
	fail       bool
}

func (q *fakeEnqueuer) EnqueueSendResetCode(_ context.Context, email, code string) error {
	if q.fail {
		return errors.New("redis down")
	}
	q.resetCodes = append(q.resetCodes, code)
	return nil
}

func (q *fakeEnqueuer) EnqueueSendWelcome(_ context.Context, email, firstName string) error {
	if q.fail {
		return errors.New("redis down")
	}
	return nil
}

func (q *fakeEnqueuer) EnqueueWebhook(_ context.Context, event string, payload interface{}) error {
	return nil
}

// plainHasher avoids argon2 cost in use case tests.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Verify(p, h string) bool       { return "hashed:"+p == h }

type storedRefresh struct {
	info *ports.RefreshTokenInfo
}

type fakeTokenStore struct {
	tokens map[string]*storedRefresh // hash -> record
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*storedRefresh)}
}

func (s *fakeTokenStore) StoreRefreshToken(_ context.Context, userID domain.UserID, tokenHash string, expiresAt time.Time) error {
	s.tokens[tokenHash] = &storedRefresh{info: &ports.RefreshTokenInfo{
		TokenID:   uuid.NewString(),
		UserID:    userID,
		ExpiresAt: expiresAt,
	}}
	return nil
}

func (s *fakeTokenStore) GetRefreshToken(_ context.Context, tokenHash string) (*ports.RefreshTokenInfo, error) {
	r, ok := s.tokens[tokenHash]
	if !ok {
		return nil, nil
	}
	return r.info, nil
}

func (s *fakeTokenStore) RevokeByID(_ context.Context, tokenID string) error {
	for _, r := range s.tokens {
		if r.info.TokenID == tokenID {
			now := time.Now()
			r.info.RevokedAt = &now
		}
	}
	return nil
}

func (s *fakeTokenStore) RevokeRefreshToken(_ context.Context, tokenHash string) error {
	if r, ok := s.tokens[tokenHash]; ok {
		now := time.Now()
		r.info.RevokedAt = &now
	}
	return nil
}

// fakeIssuer encodes the subject into the token so tests can assert on it.
type fakeIssuer struct{}

func (fakeIssuer) IssueAccessToken(userID, email string, _ int64) (string, error) {
	return "jwt:" + userID + ":" + email, nil
}

func (fakeIssuer) ValidateAccessToken(token string) (string, string, error) {
	parts := strings.SplitN(token, ":", 3)
	if len(parts) != 3 || parts[0] != "jwt" {
		return "", "", errors.New("invalid token")
	}
	return parts[1], parts[2], nil
}

type fakeLockout struct {
	failures map[string]int
	max      int
}

func newFakeLockout(max int) *fakeLockout {
	return &fakeLockout{failures: make(map[string]int), max: max}
}

func (l *fakeLockout) IsLocked(_ context.Context, email string) (bool, int) {
	if l.failures[email] >= l.max {
		return true, 60
	}
	return false, 0
}

func (l *fakeLockout) RecordFailure(_ context.Context, email string) { l.failures[email]++ }
func (l *fakeLockout) RecordSuccess(_ context.Context, email string) { delete(l.failures, email) }

var (
	_ ports.UserRepository     = (*fakeUserRepo)(nil)
	_ ports.PasswordResetStore = (*fakeResetStore)(nil)
	_ ports.TaskEnqueuer       = (*fakeEnqueuer)(nil)
	_ ports.PasswordHasher     = plainHasher{}
	_ ports.TokenStore         = (*fakeTokenStore)(nil)
	_ ports.TokenIssuer        = fakeIssuer{}
	_ ports.LoginLockoutStore  = (*fakeLockout)(nil)
)
