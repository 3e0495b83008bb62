package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/s4084228/toc-backend/internal/application/user"
	"github.com/s4084228/toc-backend/internal/domain"
)

type UsersHandler struct {
	getProfile    *user.GetProfile
	updateProfile *user.UpdateProfile
	validate      *validator.Validate
	log           zerolog.Logger
}

func NewUsersHandler(getProfile *user.GetProfile, updateProfile *user.UpdateProfile, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{
		getProfile:    getProfile,
		updateProfile: updateProfile,
		validate:      validator.New(),
		log:           log,
	}
}

func userJSON(u *domain.User) map[string]interface{} {
	return map[string]interface{}{
		"id":           u.ID.String(),
		"email":        u.Email,
		"firstName":    u.FirstName,
		"lastName":     u.LastName,
		"organization": u.Organization,
		"createdAt":    u.CreatedAt,
		"updatedAt":    u.UpdatedAt,
	}
}

func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerFromContext(w, r)
	if !ok {
		return
	}
	u, err := h.getProfile.Execute(r.Context(), userID)
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("get profile failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, userJSON(u))
}

func (h *UsersHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerFromContext(w, r)
	if !ok {
		return
	}
	var body struct {
		FirstName    string `json:"firstName" validate:"max=100"`
		LastName     string `json:"lastName" validate:"max=100"`
		Organization string `json:"organization" validate:"max=200"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	u, err := h.updateProfile.Execute(r.Context(), user.UpdateProfileInput{
		UserID:       userID,
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		Organization: body.Organization,
	})
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("update profile failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, userJSON(u))
}
