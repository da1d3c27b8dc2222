package unitofwork

import (
	"context"

	"jobboard-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	AdvertisementRepository() contract.AdvertisementRepository
	SubscriptionRepository() contract.SubscriptionRepository
	OrderRepository() contract.OrderRepository
}
