// FILE: internal/entity/subscription_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionStatusDefault SubscriptionStatus = "default"
	SubscriptionStatusSpecial SubscriptionStatus = "special"
)

type SubscriptionPlan struct {
	Id          uuid.UUID
	Name        string
	PricePerDay int64 // rials
	IsActive    bool
	IsFree      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type AdvertisementSubscription struct {
	Id                 uuid.UUID
	SubscriptionStatus SubscriptionStatus
	PlanId             *uuid.UUID
	Duration           int // days
	StartDate          time.Time
	EndDate            *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Activate moves the subscription to the special tier for the given number of
// days starting at now.
func (s *AdvertisementSubscription) Activate(planId uuid.UUID, durations int, now time.Time) {
	end := now.AddDate(0, 0, durations)
	s.SubscriptionStatus = SubscriptionStatusSpecial
	s.PlanId = &planId
	s.Duration = durations
	s.StartDate = now
	s.EndDate = &end
}
