package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/s4084228/toc-backend/internal/domain/errors"
)

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last+tag@example.org", "UPPER@EXAMPLE.COM"}
	for _, e := range valid {
		assert.True(t, ValidEmail(e), "%s should be valid", e)
	}
	invalid := []string{"", "plain", "@missing.local", "no-at.example.com", "two@@x.com", "a@nodot"}
	for _, e := range invalid {
		assert.False(t, ValidEmail(e), "%s should be invalid", e)
	}
}

func TestValidatePasswordStrengthRuleOrder(t *testing.T) {
	tests := []struct {
		password string
		wantMsg  string
	}{
		{"", "Password is required"},
		{"Ab1", "at least 8 characters"},
		{"ABCD1234", "lowercase letter"},
		// Lowercase and digit pass first, so the uppercase rule surfaces.
		{"abc12345", "uppercase letter"},
		{"Abcdefgh", "digit"},
	}
	for _, tt := range tests {
		err := ValidatePasswordStrength(tt.password)
		require.Error(t, err, "password %q", tt.password)
		assert.True(t, domerrors.IsValidation(err))
		assert.Contains(t, err.Error(), tt.wantMsg)
	}

	assert.NoError(t, ValidatePasswordStrength("Abc12345"))
	// No special-character requirement.
	assert.NoError(t, ValidatePasswordStrength("Password1"))
}
