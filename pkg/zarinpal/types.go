package zarinpal

// StatusSuccess is the gateway status code for an accepted request or a
// verified payment.
const StatusSuccess = 100

type Metadata struct {
	Email   string `json:"Email,omitempty"`
	Mobile  string `json:"mobile,omitempty"`
	OrderID string `json:"order_id"`
}

type PaymentRequest struct {
	MerchantID  string   `json:"MerchantID"`
	Amount      int64    `json:"Amount"`
	Description string   `json:"Description"`
	CallbackURL string   `json:"CallbackURL"`
	Metadata    Metadata `json:"metadata"`
}

type PaymentResponse struct {
	Status    int    `json:"Status"`
	Authority string `json:"Authority"`

	HTTPStatus int `json:"-"`
}

// OK reports whether the gateway accepted the payment request.
func (r *PaymentResponse) OK() bool {
	return r != nil && r.HTTPStatus == 200 && r.Status == StatusSuccess
}

type VerifyRequest struct {
	MerchantID string `json:"MerchantID"`
	Amount     int64  `json:"Amount"`
	Authority  string `json:"Authority"`
}

type VerifyResponse struct {
	Status int   `json:"Status"`
	RefID  int64 `json:"RefID"`

	HTTPStatus int `json:"-"`
}

// OK reports whether the gateway confirmed the payment.
func (r *VerifyResponse) OK() bool {
	return r != nil && r.HTTPStatus == 200 && r.Status == StatusSuccess
}
