package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderCreated  = "ORDER_CREATED"
	OrderPaid     = "ORDER_PAID"
	OrderFailed   = "ORDER_FAILED"
	OrderCanceled = "ORDER_CANCELED"
)

// OrderEventData is the payload shared by all order lifecycle events.
type OrderEventData struct {
	OrderID       uuid.UUID
	OwnerID       uuid.UUID
	PlanID        uuid.UUID
	Status        string
	TotalPrice    int64
	Durations     int
	RefID         string
	FailureReason string
}

func NewOrderEvent(eventType string, d OrderEventData, at time.Time) BaseEvent {
	data := map[string]interface{}{
		"order_id":    d.OrderID.String(),
		"owner_id":    d.OwnerID.String(),
		"plan_id":     d.PlanID.String(),
		"status":      d.Status,
		"total_price": d.TotalPrice,
		"durations":   d.Durations,
		"occurred_at": at.Format(time.RFC3339),
	}
	if d.RefID != "" {
		data["ref_id"] = d.RefID
	}
	if d.FailureReason != "" {
		data["failure_reason"] = d.FailureReason
	}
	return BaseEvent{Type: eventType, Data: data, OccurredAt: at}
}
