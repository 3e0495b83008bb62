package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/s4084228/toc-backend/internal/application/auth"
	"github.com/s4084228/toc-backend/internal/application/ports"
	"github.com/s4084228/toc-backend/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	register       *auth.RegisterUser
	login          *auth.Login
	refresh        *auth.Refresh
	logout         *auth.Logout
	forgotPassword *auth.ForgotPassword
	resetPassword  *auth.ResetPassword
	emitter        ports.WebhookEmitter
	validate       *validator.Validate
	log            zerolog.Logger
}

func NewAuthHandler(register *auth.RegisterUser, login *auth.Login, refresh *auth.Refresh, logout *auth.Logout, forgotPassword *auth.ForgotPassword, resetPassword *auth.ResetPassword, emitter ports.WebhookEmitter, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		register:       register,
		login:          login,
		refresh:        refresh,
		logout:         logout,
		forgotPassword: forgotPassword,
		resetPassword:  resetPassword,
		emitter:        emitter,
		validate:       validator.New(),
		log:            log,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Password  string `json:"password" validate:"required,min=8,max=128"`
		FirstName string `json:"firstName" validate:"max=100"`
		LastName  string `json:"lastName" validate:"max=100"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid email or password length")
		return
	}
	result, err := h.register.Execute(r.Context(), auth.RegisterUserInput{
		Email:     email,
		Password:  password,
		FirstName: body.FirstName,
		LastName:  body.LastName,
	})
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "user.signup", "", false, err.Error())
		middleware.RecordAuthAttempt("signup", false)
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("signup failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditEmit(h.log, r, h.emitter, "user.signup", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("signup", true)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":        result.User.ID.String(),
		"email":     result.User.Email,
		"firstName": result.User.FirstName,
		"lastName":  result.User.LastName,
		"createdAt": result.User.CreatedAt,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid email or password length")
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "user.login", "", false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditEmit(h.log, r, h.emitter, "user.login", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("login", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
		"expiresIn":    result.ExpiresIn,
		"user": map[string]interface{}{
			"id":    result.User.ID.String(),
			"email": result.User.Email,
		},
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refreshToken" validate:"required,max=1024"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.refresh.Execute(r.Context(), auth.RefreshInput{RefreshToken: TruncateRefreshToken(body.RefreshToken)})
	if err != nil {
		middleware.RecordAuthAttempt("refresh", false)
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("refresh failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	middleware.RecordAuthAttempt("refresh", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
		"expiresIn":    result.ExpiresIn,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.RefreshToken != "" {
		if err := h.logout.Execute(r.Context(), TruncateRefreshToken(body.RefreshToken)); err != nil {
			h.log.Warn().Err(err).Msg("logout revoke failed")
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,max=254"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.forgotPassword.Execute(r.Context(), auth.ForgotPasswordInput{Email: body.Email})
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("forgot password failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditEmit(h.log, r, h.emitter, "auth.reset_requested", "", true, "")
	writeJSON(w, http.StatusAccepted, map[string]string{"message": result.Message})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email       string `json:"email" validate:"required,max=254"`
		Token       string `json:"token"`
		NewPassword string `json:"newPassword" validate:"max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	_, err := h.resetPassword.Execute(r.Context(), auth.ResetPasswordInput{
		Email:       body.Email,
		Token:       body.Token,
		NewPassword: body.NewPassword,
	})
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "auth.reset_completed", "", false, err.Error())
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("reset password failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditEmit(h.log, r, h.emitter, "auth.reset_completed", "", true, "")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password has been reset successfully"})
}
