package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/s4084228/toc-backend/internal/domain/errors"
)

func loginFor(t *testing.T, users *fakeUserRepo, store *fakeTokenStore, email, password string) *LoginResult {
	t.Helper()
	uc := NewLogin(users, plainHasher{}, fakeIssuer{}, store, nil, 0, 0)
	result, err := uc.Execute(context.Background(), LoginInput{Email: email, Password: password})
	require.NoError(t, err)
	return result
}

func TestRefreshRotatesToken(t *testing.T) {
	ctx := context.Background()
	u := testUser("jess@example.com", "Passw0rd")
	users := newFakeUserRepo(u)
	store := newFakeTokenStore()
	session := loginFor(t, users, store, "jess@example.com", "Passw0rd")

	uc := NewRefresh(users, fakeIssuer{}, store, 0, 0)
	result, err := uc.Execute(ctx, RefreshInput{RefreshToken: session.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, result.RefreshToken)
	assert.Equal(t, "jwt:"+u.ID.String()+":jess@example.com", result.AccessToken)

	// the presented token is now revoked; reusing it fails
	_, err = uc.Execute(ctx, RefreshInput{RefreshToken: session.RefreshToken})
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)

	// the rotated token works
	_, err = uc.Execute(ctx, RefreshInput{RefreshToken: result.RefreshToken})
	require.NoError(t, err)
}

func TestRefreshUnknownToken(t *testing.T) {
	uc := NewRefresh(newFakeUserRepo(), fakeIssuer{}, newFakeTokenStore(), 0, 0)
	_, err := uc.Execute(context.Background(), RefreshInput{RefreshToken: "never-issued"})
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestRefreshEmptyToken(t *testing.T) {
	uc := NewRefresh(newFakeUserRepo(), fakeIssuer{}, newFakeTokenStore(), 0, 0)
	_, err := uc.Execute(context.Background(), RefreshInput{})
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestRefreshExpiredToken(t *testing.T) {
	ctx := context.Background()
	u := testUser("jess@example.com", "Passw0rd")
	users := newFakeUserRepo(u)
	store := newFakeTokenStore()
	require.NoError(t, store.StoreRefreshToken(ctx, u.ID, hashForStorage("stale"), time.Now().Add(-time.Minute)))

	uc := NewRefresh(users, fakeIssuer{}, store, 0, 0)
	_, err := uc.Execute(ctx, RefreshInput{RefreshToken: "stale"})
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo(testUser("jess@example.com", "Passw0rd"))
	store := newFakeTokenStore()
	session := loginFor(t, users, store, "jess@example.com", "Passw0rd")

	require.NoError(t, NewLogout(store).Execute(ctx, session.RefreshToken))

	uc := NewRefresh(users, fakeIssuer{}, store, 0, 0)
	_, err := uc.Execute(ctx, RefreshInput{RefreshToken: session.RefreshToken})
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestLogoutUnknownTokenIsNoop(t *testing.T) {
	assert.NoError(t, NewLogout(newFakeTokenStore()).Execute(context.Background(), "never-issued"))
}
