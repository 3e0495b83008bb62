package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	domerrors "github.com/s4084228/toc-backend/internal/domain/errors"
)

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is empty, a default is used from code.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeAccountLocked
	default:
		return ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainErr maps expected domain outcomes to HTTP statuses and stable
// codes. Returns false if err was not an expected outcome, in which case the
// caller logs it and responds 500.
func writeDomainErr(w http.ResponseWriter, err error) bool {
	if domerrors.IsValidation(err) {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return true
	}
	switch {
	case errors.Is(err, domerrors.ErrUserExists),
		errors.Is(err, domerrors.ErrTitleExists):
		writeErr(w, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, domerrors.ErrRenameConfirmationRequired):
		writeErr(w, http.StatusConflict, ErrCodeRenameConfirmation, err.Error())
	case errors.Is(err, domerrors.ErrInvalidCredentials):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
	case errors.Is(err, domerrors.ErrInvalidToken):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidToken, err.Error())
	case errors.Is(err, domerrors.ErrInvalidResetToken):
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidToken, err.Error())
	case errors.Is(err, domerrors.ErrProjectNotFound),
		errors.Is(err, domerrors.ErrUserNotFound),
		errors.Is(err, domerrors.ErrSubscriptionNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, domerrors.ErrAccountLocked):
		writeErr(w, http.StatusTooManyRequests, ErrCodeAccountLocked, err.Error())
	default:
		return false
	}
	return true
}
