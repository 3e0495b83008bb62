package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrUserExists                 = errors.New("an account with this email already exists")
	ErrInvalidCredentials         = errors.New("invalid email or password")
	ErrUserNotFound               = errors.New("user not found")
	ErrAccountLocked              = errors.New("account temporarily locked")
	ErrInvalidToken               = errors.New("invalid or expired refresh token")
	ErrInvalidResetToken          = errors.New("invalid or expired reset code")
	ErrProjectNotFound            = errors.New("project not found")
	ErrTitleExists                = errors.New("a project with this title already exists")
	ErrRenameConfirmationRequired = errors.New("title change requires rename confirmation")
	ErrSubscriptionNotFound       = errors.New("no subscription found")
)

// ValidationError is a recoverable input error; Msg names the violated rule
// and is safe to surface to the caller.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation wraps msg into a *ValidationError.
func Validation(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
