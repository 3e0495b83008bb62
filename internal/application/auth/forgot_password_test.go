package auth

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s4084228/toc-backend/internal/domain"
	domerrors "github.com/s4084228/toc-backend/internal/domain/errors"
)

func newAccount(email string) *domain.User {
	return &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Email:        email,
		PasswordHash: "hashed:Original1",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestGenerateResetCodeShape(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-F]{8}$`)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateResetCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}
	// 4 random bytes: 50 draws colliding every time would mean a broken source.
	assert.Greater(t, len(seen), 1)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	store := &fakeResetStore{}
	uc := NewForgotPassword(store, newFakeUserRepo(), &fakeEnqueuer{}, 0, zerolog.Nop())

	for i := 0; i < 3; i++ {
		res, err := uc.Execute(context.Background(), ForgotPasswordInput{Email: "missing@x.com"})
		require.NoError(t, err)
		assert.Equal(t, genericResetMessage, res.Message)
	}
	assert.Empty(t, store.records, "no token records for unknown accounts")
}

func TestForgotPasswordMalformedEmail(t *testing.T) {
	uc := NewForgotPassword(&fakeResetStore{}, newFakeUserRepo(), &fakeEnqueuer{}, 0, zerolog.Nop())

	_, err := uc.Execute(context.Background(), ForgotPasswordInput{Email: "not-an-email"})
	require.Error(t, err)
	assert.True(t, domerrors.IsValidation(err))
}

func TestForgotPasswordIssuesAndSupersedes(t *testing.T) {
	acct := newAccount("user@example.com")
	store := &fakeResetStore{}
	enq := &fakeEnqueuer{}
	uc := NewForgotPassword(store, newFakeUserRepo(acct), enq, 0, zerolog.Nop())

	_, err := uc.Execute(context.Background(), ForgotPasswordInput{Email: "User@Example.com"})
	require.NoError(t, err)
	require.Len(t, store.records, 1)
	first := store.records[0]
	assert.Equal(t, acct.ID, first.rec.UserID)
	assert.Equal(t, "user@example.com", first.rec.Email)
	assert.WithinDuration(t, time.Now().Add(DefaultResetCodeTTL), first.rec.ExpiresAt, 2*time.Second)

	// A second request supersedes: only the latest token survives.
	_, err = uc.Execute(context.Background(), ForgotPasswordInput{Email: "user@example.com"})
	require.NoError(t, err)
	require.Len(t, store.records, 1)
	assert.NotEqual(t, first.rec.ID, store.records[0].rec.ID)

	require.Len(t, enq.resetCodes, 2)
	assert.Regexp(t, `^[0-9A-F]{8}$`, enq.resetCodes[0])
}

func TestForgotPasswordSwallowsDeliveryFailure(t *testing.T) {
	acct := newAccount("user@example.com")
	store := &fakeResetStore{}
	uc := NewForgotPassword(store, newFakeUserRepo(acct), &fakeEnqueuer{fail: true}, 0, zerolog.Nop())

	res, err := uc.Execute(context.Background(), ForgotPasswordInput{Email: "user@example.com"})
	require.NoError(t, err)
	assert.Equal(t, genericResetMessage, res.Message)
	assert.Len(t, store.records, 1, "token is stored even when delivery enqueue fails")
}
