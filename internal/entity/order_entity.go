package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusCanceled PaymentStatus = "canceled"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// TaxPercent is applied on top of the pre-tax amount, truncated to an integer.
const TaxPercent = 10

type SubscriptionOrder struct {
	Id              uuid.UUID
	OwnerId         uuid.UUID
	AdvertisementId uuid.UUID
	PlanId          uuid.UUID
	SubscriptionId  uuid.UUID
	PaymentStatus   PaymentStatus
	AdType          AdType
	Durations       int
	Price           int64 // per day, informational
	TotalPrice      int64
	Authority       *string
	RefId           *string
	FailureReason   *string
	GatewayMeta     map[string]interface{}
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (o *SubscriptionOrder) IsOwnedBy(userId uuid.UUID) bool {
	return o != nil && o.OwnerId == userId
}

// ComputeTotalPrice returns pricePerDay*durations plus TaxPercent of that
// amount, with the tax truncated.
func ComputeTotalPrice(pricePerDay int64, durations int) int64 {
	pre := pricePerDay * int64(durations)
	return pre + pre*TaxPercent/100
}
