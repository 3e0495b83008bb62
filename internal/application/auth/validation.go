package auth

import (
	"regexp"

	domerrors "github.com/s4084228/toc-backend/internal/domain/errors"
)

// Deliberately permissive: single @, no whitespace in the local part, dotted
// domain. Not an RFC 5322 validator.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether email passes the format check.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

var (
	hasLower = regexp.MustCompile(`[a-z]`)
	hasUpper = regexp.MustCompile(`[A-Z]`)
	hasDigit = regexp.MustCompile(`[0-9]`)
)

// ValidatePasswordStrength checks rules in a fixed order and returns the first
// violation as a ValidationError. There is no special-character rule.
func ValidatePasswordStrength(password string) error {
	switch {
	case password == "":
		return domerrors.Validation("Password is required")
	case len(password) < 8:
		return domerrors.Validation("Password must be at least 8 characters long")
	case !hasLower.MatchString(password):
		return domerrors.Validation("Password must contain at least one lowercase letter")
	case !hasUpper.MatchString(password):
		return domerrors.Validation("Password must contain at least one uppercase letter")
	case !hasDigit.MatchString(password):
		return domerrors.Validation("Password must contain at least one digit")
	}
	return nil
}
