package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionPlan is the billing tier of an account.
type SubscriptionPlan string

const (
	PlanFree SubscriptionPlan = "free"
	PlanPro  SubscriptionPlan = "pro"
	PlanTeam SubscriptionPlan = "team"
)

// ValidPlan reports whether p is a known plan.
func ValidPlan(p SubscriptionPlan) bool {
	switch p {
	case PlanFree, PlanPro, PlanTeam:
		return true
	}
	return false
}

// SubscriptionStatus is the lifecycle state of a subscription.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Subscription is a user's plan. At most one active subscription exists per
// user; subscribing again supersedes the previous record.
type Subscription struct {
	ID        uuid.UUID
	UserID    UserID
	Plan      SubscriptionPlan
	Status    SubscriptionStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
