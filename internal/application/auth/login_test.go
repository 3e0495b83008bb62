package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s4084228/toc-backend/internal/domain"
	domerrors "github.com/s4084228/toc-backend/internal/domain/errors"
)

func testUser(email, password string) *domain.User {
	return &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Email:        email,
		PasswordHash: "hashed:" + password,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestLoginIssuesTokens(t *testing.T) {
	ctx := context.Background()
	u := testUser("jess@example.com", "Passw0rd")
	users := newFakeUserRepo(u)
	store := newFakeTokenStore()
	uc := NewLogin(users, plainHasher{}, fakeIssuer{}, store, newFakeLockout(3), 0, 0)

	result, err := uc.Execute(ctx, LoginInput{Email: "jess@example.com", Password: "Passw0rd"})
	require.NoError(t, err)
	assert.Equal(t, "jwt:"+u.ID.String()+":jess@example.com", result.AccessToken)
	assert.Len(t, result.RefreshToken, 64)
	assert.Equal(t, int64(DefaultAccessTokenExpiry), result.ExpiresIn)

	// refresh token is stored hashed, never verbatim
	_, plain := store.tokens[result.RefreshToken]
	assert.False(t, plain)
	info, err := store.GetRefreshToken(ctx, hashForStorage(result.RefreshToken))
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, u.ID, info.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo(testUser("jess@example.com", "Passw0rd"))
	uc := NewLogin(users, plainHasher{}, fakeIssuer{}, newFakeTokenStore(), newFakeLockout(3), 0, 0)

	_, err := uc.Execute(ctx, LoginInput{Email: "jess@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domerrors.ErrInvalidCredentials)
}

func TestLoginUnknownUserSameError(t *testing.T) {
	ctx := context.Background()
	uc := NewLogin(newFakeUserRepo(), plainHasher{}, fakeIssuer{}, newFakeTokenStore(), newFakeLockout(3), 0, 0)

	_, err := uc.Execute(ctx, LoginInput{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, domerrors.ErrInvalidCredentials)
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo(testUser("jess@example.com", "Passw0rd"))
	uc := NewLogin(users, plainHasher{}, fakeIssuer{}, newFakeTokenStore(), newFakeLockout(2), 0, 0)

	for i := 0; i < 2; i++ {
		_, err := uc.Execute(ctx, LoginInput{Email: "jess@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, domerrors.ErrInvalidCredentials)
	}
	_, err := uc.Execute(ctx, LoginInput{Email: "jess@example.com", Password: "Passw0rd"})
	assert.ErrorIs(t, err, domerrors.ErrAccountLocked)
}

func TestLoginSuccessClearsFailures(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo(testUser("jess@example.com", "Passw0rd"))
	uc := NewLogin(users, plainHasher{}, fakeIssuer{}, newFakeTokenStore(), newFakeLockout(3), 0, 0)

	_, err := uc.Execute(ctx, LoginInput{Email: "jess@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domerrors.ErrInvalidCredentials)
	_, err = uc.Execute(ctx, LoginInput{Email: "jess@example.com", Password: "Passw0rd"})
	require.NoError(t, err)
	_, err = uc.Execute(ctx, LoginInput{Email: "jess@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domerrors.ErrInvalidCredentials)
}
