package implementation

import (
	"context"
	"errors"

	"jobboard-be/internal/entity"
	"jobboard-be/internal/mapper"
	"jobboard-be/internal/model"
	"jobboard-be/internal/repository/contract"
	"jobboard-be/internal/repository/specification"

	"gorm.io/gorm"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewSubscriptionRepository(db *gorm.DB) contract.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriptionMapper(),
	}
}

// Plan Implementation

func (r *SubscriptionRepositoryImpl) CreatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	m := r.mapper.PlanToModel(plan)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*plan = *r.mapper.PlanToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error) {
	var m model.SubscriptionPlan
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PlanToEntity(&m), nil
}

// Advertisement Subscription Implementation

func (r *SubscriptionRepositoryImpl) CreateAdSubscription(ctx context.Context, subscription *entity.AdvertisementSubscription) error {
	m := r.mapper.AdSubscriptionToModel(subscription)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*subscription = *r.mapper.AdSubscriptionToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) UpdateAdSubscription(ctx context.Context, subscription *entity.AdvertisementSubscription) error {
	m := r.mapper.AdSubscriptionToModel(subscription)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*subscription = *r.mapper.AdSubscriptionToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) FindOneAdSubscription(ctx context.Context, specs ...specification.Specification) (*entity.AdvertisementSubscription, error) {
	var m model.AdvertisementSubscription
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.AdSubscriptionToEntity(&m), nil
}
