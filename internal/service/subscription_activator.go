package service

import (
	"context"
	"fmt"
	"time"

	"jobboard-be/internal/entity"
	"jobboard-be/internal/pkg/logger"
	"jobboard-be/internal/repository/specification"
	"jobboard-be/internal/repository/unitofwork"
)

// ISubscriptionActivator upgrades the advertisement subscription bought by a
// paid order. It runs inside the caller's unit of work so the upgrade commits
// or rolls back together with the order status.
type ISubscriptionActivator interface {
	Activate(ctx context.Context, uow unitofwork.UnitOfWork, order *entity.SubscriptionOrder) (*entity.AdvertisementSubscription, error)
}

type subscriptionActivator struct {
	now    func() time.Time
	logger logger.ILogger
}

// NewSubscriptionActivator uses time.Now when now is nil.
func NewSubscriptionActivator(now func() time.Time, logger logger.ILogger) ISubscriptionActivator {
	if now == nil {
		now = time.Now
	}
	return &subscriptionActivator{now: now, logger: logger}
}

func (a *subscriptionActivator) Activate(ctx context.Context, uow unitofwork.UnitOfWork, order *entity.SubscriptionOrder) (*entity.AdvertisementSubscription, error) {
	repo := uow.SubscriptionRepository()

	plan, err := repo.FindOnePlan(ctx, specification.ByID{ID: order.PlanId})
	if err != nil {
		return nil, fmt.Errorf("load plan %s: %w", order.PlanId, err)
	}
	if plan == nil {
		return nil, fmt.Errorf("plan %s no longer exists", order.PlanId)
	}

	sub, err := repo.FindOneAdSubscription(ctx, specification.ByID{ID: order.SubscriptionId})
	if err != nil {
		return nil, fmt.Errorf("load subscription %s: %w", order.SubscriptionId, err)
	}
	if sub == nil {
		return nil, fmt.Errorf("subscription %s no longer exists", order.SubscriptionId)
	}

	sub.Activate(plan.Id, order.Durations, a.now())

	if err := repo.UpdateAdSubscription(ctx, sub); err != nil {
		return nil, fmt.Errorf("save subscription %s: %w", sub.Id, err)
	}

	a.logger.Info("SubscriptionActivator", "Subscription upgraded", map[string]interface{}{
		"subscription_id": sub.Id.String(),
		"order_id":        order.Id.String(),
		"plan_id":         plan.Id.String(),
		"end_date":        sub.EndDate,
	})
	return sub, nil
}
