package service

import (
	"context"
	"fmt"
	"time"

	"jobboard-be/internal/dto"
	"jobboard-be/internal/entity"
	"jobboard-be/internal/pkg/apperror"
	"jobboard-be/internal/pkg/logger"
	"jobboard-be/internal/repository/contract"
	"jobboard-be/internal/repository/specification"
	"jobboard-be/internal/repository/unitofwork"
	"jobboard-be/pkg/events"

	"github.com/google/uuid"
)

type IOrderService interface {
	List(ctx context.Context, actor entity.Actor) ([]*dto.OrderResponse, error)
	Retrieve(ctx context.Context, actor entity.Actor, orderId uuid.UUID) (*dto.OrderResponse, error)
	Create(ctx context.Context, actor entity.Actor, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
	Cancel(ctx context.Context, actor entity.Actor, orderId uuid.UUID) (*dto.OrderResponse, error)
}

type orderService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher IEventPublisher
	logger         logger.ILogger
}

func NewOrderService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher IEventPublisher,
	logger logger.ILogger,
) IOrderService {
	return &orderService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (s *orderService) List(ctx context.Context, actor entity.Actor) ([]*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.OrderBy{Field: "created_at", Desc: true}}
	if !actor.IsAdmin() {
		specs = append(specs, specification.OwnedBy{OwnerID: actor.UserId})
	}

	orders, err := uow.OrderRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	res := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, toOrderResponse(o))
	}
	return res, nil
}

func (s *orderService) Retrieve(ctx context.Context, actor entity.Actor, orderId uuid.UUID) (*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return nil, fmt.Errorf("retrieve order: %w", err)
	}
	if order == nil {
		return nil, apperror.NotFound("order")
	}
	if !order.IsOwnedBy(actor.UserId) && !actor.IsAdmin() {
		return nil, apperror.PermissionDenied("you do not have access to this order")
	}
	return toOrderResponse(order), nil
}

func (s *orderService) Create(ctx context.Context, actor entity.Actor, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	planId, subscriptionId, err := parseCreateRequest(req)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Priced from the stored plan, never a cached copy.
	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: planId})
	if err != nil {
		return nil, fmt.Errorf("find plan: %w", err)
	}
	if plan == nil {
		return nil, apperror.NotFound("plan")
	}

	sub, err := uow.SubscriptionRepository().FindOneAdSubscription(ctx, specification.ByID{ID: subscriptionId})
	if err != nil {
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	if sub == nil {
		return nil, apperror.NotFound("subscription")
	}

	ad, err := uow.AdvertisementRepository().FindOne(ctx,
		specification.BySlug{Slug: req.AdSlug},
		specification.OwnedBy{OwnerID: actor.UserId},
		specification.WithSubscription{SubscriptionID: sub.Id},
	)
	if err != nil {
		return nil, fmt.Errorf("find advertisement: %w", err)
	}
	if ad == nil {
		return nil, apperror.NotFound("advertisement")
	}

	now := time.Now()
	order := &entity.SubscriptionOrder{
		Id:              uuid.New(),
		OwnerId:         actor.UserId,
		AdvertisementId: ad.Id,
		PlanId:          plan.Id,
		SubscriptionId:  sub.Id,
		PaymentStatus:   entity.PaymentStatusPending,
		AdType:          ad.AdType,
		Durations:       req.Durations,
		Price:           plan.PricePerDay,
		TotalPrice:      entity.ComputeTotalPrice(plan.PricePerDay, req.Durations),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uow.OrderRepository().Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.Info("OrderService", "Order created", map[string]interface{}{
		"order_id":    order.Id.String(),
		"owner_id":    order.OwnerId.String(),
		"total_price": order.TotalPrice,
	})
	s.publish(ctx, newOrderEvent(events.OrderCreated, order))

	return toOrderResponse(order), nil
}

func (s *orderService) Cancel(ctx context.Context, actor entity.Actor, orderId uuid.UUID) (*dto.OrderResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperror.PermissionDenied("only administrators can cancel orders")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.OrderRepository()

	order, err := repo.FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, apperror.NotFound("order")
	}

	ok, err := repo.TransitionStatus(ctx, order.Id, entity.PaymentStatusPending, entity.PaymentStatusCanceled, contract.OrderTransition{})
	if err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	if !ok {
		return nil, apperror.Conflict(fmt.Sprintf("order is already %s", order.PaymentStatus))
	}

	order.PaymentStatus = entity.PaymentStatusCanceled
	order.UpdatedAt = time.Now()

	s.logger.Info("OrderService", "Order canceled", map[string]interface{}{
		"order_id": order.Id.String(),
		"admin_id": actor.UserId.String(),
	})
	s.publish(ctx, newOrderEvent(events.OrderCanceled, order))

	return toOrderResponse(order), nil
}

func (s *orderService) publish(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	// Delivery problems are logged by the publisher.
	_ = s.eventPublisher.Publish(ctx, event)
}

func parseCreateRequest(req *dto.CreateOrderRequest) (uuid.UUID, uuid.UUID, error) {
	fields := map[string]string{}
	planId, err := uuid.Parse(req.PlanId)
	if err != nil {
		fields["plan_id"] = "must be a valid uuid"
	}
	subscriptionId, err := uuid.Parse(req.SubscriptionId)
	if err != nil {
		fields["subscription_id"] = "must be a valid uuid"
	}
	if req.AdSlug == "" {
		fields["ad_slug"] = "this field is required"
	}
	if req.Durations < 1 {
		fields["durations"] = "must be at least 1"
	}
	if len(fields) > 0 {
		return uuid.Nil, uuid.Nil, apperror.Validation("validation failed", fields)
	}
	return planId, subscriptionId, nil
}

func newOrderEvent(eventType string, o *entity.SubscriptionOrder) events.BaseEvent {
	d := events.OrderEventData{
		OrderID:    o.Id,
		OwnerID:    o.OwnerId,
		PlanID:     o.PlanId,
		Status:     string(o.PaymentStatus),
		TotalPrice: o.TotalPrice,
		Durations:  o.Durations,
	}
	if o.RefId != nil {
		d.RefID = *o.RefId
	}
	if o.FailureReason != nil {
		d.FailureReason = *o.FailureReason
	}
	return events.NewOrderEvent(eventType, d, time.Now())
}

func toOrderResponse(o *entity.SubscriptionOrder) *dto.OrderResponse {
	return &dto.OrderResponse{
		Id:              o.Id,
		OwnerId:         o.OwnerId,
		AdvertisementId: o.AdvertisementId,
		PlanId:          o.PlanId,
		SubscriptionId:  o.SubscriptionId,
		PaymentStatus:   string(o.PaymentStatus),
		AdType:          string(o.AdType),
		Durations:       o.Durations,
		Price:           o.Price,
		TotalPrice:      o.TotalPrice,
		Authority:       o.Authority,
		RefId:           o.RefId,
		FailureReason:   o.FailureReason,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
