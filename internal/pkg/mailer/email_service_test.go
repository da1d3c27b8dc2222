package mailer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingSender struct {
	messages []*gomail.Message
	err      error
}

func (r *recordingSender) DialAndSend(m ...*gomail.Message) error {
	r.messages = append(r.messages, m...)
	return r.err
}

func sampleReceipt() PaymentReceipt {
	return PaymentReceipt{
		OrderId:    "7f0c",
		FullName:   "Sara",
		PlanName:   "Gold",
		Durations:  5,
		TotalPrice: 550000,
		RefId:      "201",
		PaidAt:     time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestRenderReceipt(t *testing.T) {
	body, err := RenderReceipt(sampleReceipt())
	require.NoError(t, err)
	assert.Contains(t, body, "550000 IRR")
	assert.Contains(t, body, "<b>Gold</b>")
	assert.Contains(t, body, "2024-03-01 10:30")
}

func TestSendPaymentReceipt(t *testing.T) {
	sender := &recordingSender{}
	svc := NewEmailServiceWithSender(sender, "billing@jobs.example", "JobBoard")

	require.NoError(t, svc.SendPaymentReceipt("sara@example.com", sampleReceipt()))
	require.Len(t, sender.messages, 1)
	assert.Equal(t, []string{"sara@example.com"}, sender.messages[0].GetHeader("To"))
	assert.Equal(t, []string{"Your payment receipt"}, sender.messages[0].GetHeader("Subject"))

	sender.err = errors.New("smtp down")
	err := svc.SendPaymentReceipt("sara@example.com", sampleReceipt())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "smtp down"))
}
