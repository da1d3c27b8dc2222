// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"
)

type PaymentReceipt struct {
	OrderId    string
	FullName   string
	PlanName   string
	Durations  int
	TotalPrice int64
	RefId      string
	PaidAt     time.Time
}

type IEmailService interface {
	SendPaymentReceipt(toEmail string, receipt PaymentReceipt) error
}

// Sender is satisfied by *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	sender      Sender
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	return NewEmailServiceWithSender(gomail.NewDialer(host, port, username, password), username, senderName)
}

func NewEmailServiceWithSender(sender Sender, senderEmail, senderName string) IEmailService {
	return &emailService{
		sender:      sender,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Payment received</h2>
			<p>Hi {{.FullName}}, your advertisement is now on the <b>{{.PlanName}}</b> plan for {{.Durations}} days.</p>
			<table>
				<tr><td>Order</td><td>{{.OrderId}}</td></tr>
				<tr><td>Reference</td><td>{{.RefId}}</td></tr>
				<tr><td>Amount</td><td>{{.TotalPrice}} IRR</td></tr>
				<tr><td>Date</td><td>{{.PaidAt.Format "2006-01-02 15:04"}}</td></tr>
			</table>
		</div>
	`))

func RenderReceipt(receipt PaymentReceipt) (string, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, receipt); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *emailService) SendPaymentReceipt(toEmail string, receipt PaymentReceipt) error {
	body, err := RenderReceipt(receipt)
	if err != nil {
		return fmt.Errorf("render receipt: %w", err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your payment receipt")
	m.SetBody("text/html", body)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("send receipt to %s: %w", toEmail, err)
	}
	return nil
}
