package service

import (
	"context"
	"encoding/json"
	"time"

	"jobboard-be/internal/pkg/logger"
	"jobboard-be/internal/pkg/mailer"
	"jobboard-be/internal/repository/memory"
	"jobboard-be/internal/repository/specification"
	"jobboard-be/internal/repository/unitofwork"
	"jobboard-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// receiptConsumerService mails a receipt to the owner of every paid order.
type receiptConsumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	planCache    *memory.PlanCache
	logger       logger.ILogger
}

func NewReceiptConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	planCache *memory.PlanCache,
	logger logger.ILogger,
) IConsumerService {
	return &receiptConsumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		emailService: emailService,
		planCache:    planCache,
		logger:       logger,
	}
}

func (cs *receiptConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *receiptConsumerService) processMessage(msg *message.Message) {
	var envelope BusEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		cs.logger.Error("ReceiptConsumer", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // a malformed message never becomes valid
		return
	}
	if envelope.Type != events.OrderPaid {
		msg.Ack()
		return
	}

	orderIdStr, _ := envelope.Payload["order_id"].(string)
	orderId, err := uuid.Parse(orderIdStr)
	if err != nil {
		cs.logger.Error("ReceiptConsumer", "Event without order id", map[string]interface{}{"payload": envelope.Payload})
		msg.Ack()
		return
	}

	if err := cs.sendReceipt(msg.Context(), orderId, envelope.OccurredAt); err != nil {
		cs.logger.Error("ReceiptConsumer", "Failed to send receipt", map[string]interface{}{
			"order_id": orderId.String(),
			"error":    err.Error(),
		})
	}
	// Receipts are best effort.
	msg.Ack()
}

func (cs *receiptConsumerService) sendReceipt(ctx context.Context, orderId uuid.UUID, paidAt time.Time) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return err
	}
	if order == nil {
		cs.logger.Warn("ReceiptConsumer", "Order vanished before receipt", map[string]interface{}{"order_id": orderId.String()})
		return nil
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: order.OwnerId})
	if err != nil {
		return err
	}
	if user == nil || user.Email == "" {
		cs.logger.Warn("ReceiptConsumer", "Owner has no e-mail, receipt skipped", map[string]interface{}{"order_id": orderId.String()})
		return nil
	}

	planName, err := cs.planName(ctx, uow, order.PlanId)
	if err != nil {
		return err
	}

	receipt := mailer.PaymentReceipt{
		OrderId:    order.Id.String(),
		FullName:   user.FullName,
		PlanName:   planName,
		Durations:  order.Durations,
		TotalPrice: order.TotalPrice,
		PaidAt:     paidAt,
	}
	if order.RefId != nil {
		receipt.RefId = *order.RefId
	}

	if err := cs.emailService.SendPaymentReceipt(user.Email, receipt); err != nil {
		return err
	}

	cs.logger.Info("ReceiptConsumer", "Receipt sent", map[string]interface{}{"order_id": orderId.String()})
	return nil
}

func (cs *receiptConsumerService) planName(ctx context.Context, uow unitofwork.UnitOfWork, planId uuid.UUID) (string, error) {
	if cs.planCache != nil {
		if plan, ok := cs.planCache.Get(planId); ok {
			return plan.Name, nil
		}
	}
	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: planId})
	if err != nil {
		return "", err
	}
	if plan == nil {
		return "", nil
	}
	if cs.planCache != nil {
		cs.planCache.Set(plan)
	}
	return plan.Name, nil
}
