package contract

import (
	"context"

	"jobboard-be/internal/entity"
	"jobboard-be/internal/repository/specification"
)

type SubscriptionRepository interface {
	// Plans
	CreatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error
	FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error)

	// Advertisement subscriptions
	CreateAdSubscription(ctx context.Context, subscription *entity.AdvertisementSubscription) error
	UpdateAdSubscription(ctx context.Context, subscription *entity.AdvertisementSubscription) error
	FindOneAdSubscription(ctx context.Context, specs ...specification.Specification) (*entity.AdvertisementSubscription, error)
}
