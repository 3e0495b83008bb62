package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/s4084228/toc-backend/internal/domain/errors"
)

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	uc := NewRegisterUser(users, plainHasher{}, &fakeEnqueuer{})

	result, err := uc.Execute(ctx, RegisterUserInput{
		Email:     "jess@example.com",
		Password:  "Passw0rd",
		FirstName: "Jess",
	})
	require.NoError(t, err)
	assert.Equal(t, "jess@example.com", result.User.Email)
	assert.Equal(t, "hashed:Passw0rd", result.User.PasswordHash)
	assert.False(t, result.User.ID.UUID.String() == "")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo(testUser("jess@example.com", "Other1pw"))
	uc := NewRegisterUser(users, plainHasher{}, &fakeEnqueuer{})

	_, err := uc.Execute(ctx, RegisterUserInput{Email: "jess@example.com", Password: "Passw0rd"})
	assert.ErrorIs(t, err, domerrors.ErrUserExists)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	ctx := context.Background()
	uc := NewRegisterUser(newFakeUserRepo(), plainHasher{}, &fakeEnqueuer{})

	_, err := uc.Execute(ctx, RegisterUserInput{Email: "jess@example.com", Password: "short"})
	assert.True(t, domerrors.IsValidation(err))
}

func TestRegisterWelcomeEnqueueFailureIgnored(t *testing.T) {
	ctx := context.Background()
	uc := NewRegisterUser(newFakeUserRepo(), plainHasher{}, &fakeEnqueuer{fail: true})

	_, err := uc.Execute(ctx, RegisterUserInput{Email: "jess@example.com", Password: "Passw0rd"})
	require.NoError(t, err)
}
