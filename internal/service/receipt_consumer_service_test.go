package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"jobboard-be/internal/entity"
	"jobboard-be/internal/pkg/logger"
	"jobboard-be/internal/pkg/mailer"
	"jobboard-be/internal/repository/memory"
	"jobboard-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedReceipt struct {
	to      string
	receipt mailer.PaymentReceipt
}

type fakeEmailService struct {
	mu   sync.Mutex
	sent []capturedReceipt
	done chan struct{}
}

func (s *fakeEmailService) SendPaymentReceipt(toEmail string, receipt mailer.PaymentReceipt) error {
	s.mu.Lock()
	s.sent = append(s.sent, capturedReceipt{to: toEmail, receipt: receipt})
	s.mu.Unlock()
	s.done <- struct{}{}
	return nil
}

func TestReceiptConsumer_SendsReceiptForPaidOrder(t *testing.T) {
	f := newFixture(t)
	order := f.insertOrder(t, entity.PaymentStatusPaid, "AUTH")

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	mail := &fakeEmailService{done: make(chan struct{}, 1)}
	consumer := NewReceiptConsumerService(pubSub, "order-events", f.uowFactory, mail, memory.NewPlanCache(time.Minute), logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewEventPublisher(NewPublisherService("order-events", pubSub), logger.NewNopLogger(), 0)

	// Events other than ORDER_PAID are acknowledged and ignored.
	require.NoError(t, publisher.Publish(ctx, newOrderEvent(events.OrderCreated, order)))
	require.NoError(t, publisher.Publish(ctx, newOrderEvent(events.OrderPaid, order)))

	select {
	case <-mail.done:
	case <-time.After(2 * time.Second):
		t.Fatal("receipt was not sent")
	}

	mail.mu.Lock()
	defer mail.mu.Unlock()
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "owner@jobs.example", mail.sent[0].to)
	assert.Equal(t, order.Id.String(), mail.sent[0].receipt.OrderId)
	assert.Equal(t, "Gold", mail.sent[0].receipt.PlanName)
	assert.Equal(t, int64(550000), mail.sent[0].receipt.TotalPrice)
}

type failingSink struct{}

func (failingSink) Publish(context.Context, events.Event) error {
	return assert.AnError
}

func TestEventPublisher_FansOutAndReportsFailures(t *testing.T) {
	rec := &recordingPublisher{}

	pub := NewEventPublisher(nil, logger.NewNopLogger(), 0, rec, nil)
	evt := events.NewOrderEvent(events.OrderCanceled, events.OrderEventData{Status: "canceled"}, time.Now())
	require.NoError(t, pub.Publish(context.Background(), evt))
	assert.Equal(t, []string{events.OrderCanceled}, rec.types())

	pub = NewEventPublisher(nil, logger.NewNopLogger(), 0, rec, failingSink{})
	err := pub.Publish(context.Background(), evt)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Len(t, rec.types(), 2, "healthy sinks still receive the event")
}

// blockingSink waits until its context ends, like a broker that never acks.
type blockingSink struct{}

func (blockingSink) Publish(ctx context.Context, _ events.Event) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestEventPublisher_SlowSinkIsBounded(t *testing.T) {
	rec := &recordingPublisher{}
	pub := NewEventPublisher(nil, logger.NewNopLogger(), 50*time.Millisecond, blockingSink{}, rec)
	evt := events.NewOrderEvent(events.OrderPaid, events.OrderEventData{Status: "paid"}, time.Now())

	start := time.Now()
	err := pub.Publish(context.Background(), evt)
	elapsed := time.Since(start)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, elapsed, time.Second)
	assert.Equal(t, []string{events.OrderPaid}, rec.types())
}

func TestOrderService_Create_NotBlockedBySlowSink(t *testing.T) {
	f := newFixture(t)
	pub := NewEventPublisher(nil, logger.NewNopLogger(), 50*time.Millisecond, blockingSink{})
	svc := NewOrderService(f.uowFactory, pub, logger.NewNopLogger())

	start := time.Now()
	res, err := svc.Create(context.Background(), actorOf(f.owner), f.createRequest(5))
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, int64(550000), res.TotalPrice)
}
