package dto

import "github.com/google/uuid"

// PaymentRequestResponse is the outcome of starting a gateway payment.
// Status false carries the gateway status or transport code in Code.
type PaymentRequestResponse struct {
	Status    bool   `json:"status"`
	Url       string `json:"url,omitempty"`
	Authority string `json:"authority,omitempty"`
	Code      string `json:"code,omitempty"`
}

type VerifyPaymentRequest struct {
	OrderId   string `query:"order_id" json:"order_id" validate:"required,uuid"`
	Authority string `query:"Authority" json:"authority" validate:"required"`
	// Status is the gateway's OK/NOK hint on the callback; informational only.
	Status string `query:"Status" json:"status"`
}

type VerifyPaymentResponse struct {
	OrderId       uuid.UUID `json:"order_id"`
	PaymentStatus string    `json:"payment_status"`
	RefId         string    `json:"ref_id,omitempty"`
}
