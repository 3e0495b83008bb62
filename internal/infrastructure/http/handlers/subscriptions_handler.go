package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/s4084228/toc-backend/internal/application/subscription"
	"github.com/s4084228/toc-backend/internal/domain"
)

type SubscriptionsHandler struct {
	subscribe *subscription.Subscribe
	get       *subscription.GetSubscription
	cancel    *subscription.CancelSubscription
	log       zerolog.Logger
}

func NewSubscriptionsHandler(subscribe *subscription.Subscribe, get *subscription.GetSubscription, cancel *subscription.CancelSubscription, log zerolog.Logger) *SubscriptionsHandler {
	return &SubscriptionsHandler{subscribe: subscribe, get: get, cancel: cancel, log: log}
}

func subscriptionJSON(s *domain.Subscription) map[string]interface{} {
	return map[string]interface{}{
		"id":        s.ID.String(),
		"plan":      s.Plan,
		"status":    s.Status,
		"createdAt": s.CreatedAt,
		"updatedAt": s.UpdatedAt,
	}
}

func (h *SubscriptionsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerFromContext(w, r)
	if !ok {
		return
	}
	var body struct {
		Plan string `json:"plan"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	sub, err := h.subscribe.Execute(r.Context(), subscription.SubscribeInput{
		UserID: userID,
		Plan:   domain.SubscriptionPlan(body.Plan),
	})
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("subscribe failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, subscriptionJSON(sub))
}

func (h *SubscriptionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerFromContext(w, r)
	if !ok {
		return
	}
	sub, err := h.get.Execute(r.Context(), userID)
	if err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("get subscription failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, subscriptionJSON(sub))
}

func (h *SubscriptionsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerFromContext(w, r)
	if !ok {
		return
	}
	if err := h.cancel.Execute(r.Context(), userID); err != nil {
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("cancel subscription failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
