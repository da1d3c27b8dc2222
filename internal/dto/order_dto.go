package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateOrderRequest struct {
	PlanId         string `json:"plan_id" validate:"required,uuid"`
	SubscriptionId string `json:"subscription_id" validate:"required,uuid"`
	AdSlug         string `json:"ad_slug" validate:"required,max=255"`
	Durations      int    `json:"durations" validate:"min=1,max=3650"`
}

type OrderResponse struct {
	Id              uuid.UUID `json:"id"`
	OwnerId         uuid.UUID `json:"owner_id"`
	AdvertisementId uuid.UUID `json:"advertisement_id"`
	PlanId          uuid.UUID `json:"plan_id"`
	SubscriptionId  uuid.UUID `json:"subscription_id"`
	PaymentStatus   string    `json:"payment_status"`
	AdType          string    `json:"ad_type"`
	Durations       int       `json:"durations"`
	Price           int64     `json:"price"`
	TotalPrice      int64     `json:"total_price"`
	Authority       *string   `json:"authority,omitempty"`
	RefId           *string   `json:"ref_id,omitempty"`
	FailureReason   *string   `json:"failure_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
