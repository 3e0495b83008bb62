package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/s4084228/toc-backend/internal/application/ports"
	"github.com/s4084228/toc-backend/internal/domain"
	domerrors "github.com/s4084228/toc-backend/internal/domain/errors"
)

type SubscribeInput struct {
	UserID domain.UserID
	Plan   domain.SubscriptionPlan
}

// Subscribe puts the user on a plan. An existing subscription, active or
// cancelled, is superseded.
type Subscribe struct {
	subs ports.SubscriptionRepository
}

func NewSubscribe(subs ports.SubscriptionRepository) *Subscribe {
	return &Subscribe{subs: subs}
}

func (uc *Subscribe) Execute(ctx context.Context, input SubscribeInput) (*domain.Subscription, error) {
	if !domain.ValidPlan(input.Plan) {
		return nil, domerrors.Validation("Invalid subscription plan")
	}
	now := time.Now()
	sub := &domain.Subscription{
		ID:        uuid.New(),
		UserID:    input.UserID,
		Plan:      input.Plan,
		Status:    domain.SubscriptionActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.subs.Upsert(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// GetSubscription returns the user's current subscription.
type GetSubscription struct {
	subs ports.SubscriptionRepository
}

func NewGetSubscription(subs ports.SubscriptionRepository) *GetSubscription {
	return &GetSubscription{subs: subs}
}

func (uc *GetSubscription) Execute(ctx context.Context, userID domain.UserID) (*domain.Subscription, error) {
	sub, err := uc.subs.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domerrors.ErrSubscriptionNotFound
	}
	return sub, nil
}

// CancelSubscription marks the user's subscription cancelled.
type CancelSubscription struct {
	subs ports.SubscriptionRepository
}

func NewCancelSubscription(subs ports.SubscriptionRepository) *CancelSubscription {
	return &CancelSubscription{subs: subs}
}

func (uc *CancelSubscription) Execute(ctx context.Context, userID domain.UserID) error {
	cancelled, err := uc.subs.Cancel(ctx, userID)
	if err != nil {
		return err
	}
	if !cancelled {
		return domerrors.ErrSubscriptionNotFound
	}
	return nil
}
