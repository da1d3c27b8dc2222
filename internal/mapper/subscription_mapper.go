package mapper

import (
	"jobboard-be/internal/entity"
	"jobboard-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.SubscriptionPlan) *entity.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &entity.SubscriptionPlan{
		Id:          p.Id,
		Name:        p.Name,
		PricePerDay: p.PricePerDay,
		IsActive:    p.IsActive,
		IsFree:      p.IsFree,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *SubscriptionMapper) PlanToModel(p *entity.SubscriptionPlan) *model.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &model.SubscriptionPlan{
		Id:          p.Id,
		Name:        p.Name,
		PricePerDay: p.PricePerDay,
		IsActive:    p.IsActive,
		IsFree:      p.IsFree,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *SubscriptionMapper) AdSubscriptionToEntity(s *model.AdvertisementSubscription) *entity.AdvertisementSubscription {
	if s == nil {
		return nil
	}
	return &entity.AdvertisementSubscription{
		Id:                 s.Id,
		SubscriptionStatus: entity.SubscriptionStatus(s.SubscriptionStatus),
		PlanId:             s.PlanId,
		Duration:           s.Duration,
		StartDate:          s.StartDate,
		EndDate:            s.EndDate,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) AdSubscriptionToModel(s *entity.AdvertisementSubscription) *model.AdvertisementSubscription {
	if s == nil {
		return nil
	}
	return &model.AdvertisementSubscription{
		Id:                 s.Id,
		SubscriptionStatus: string(s.SubscriptionStatus),
		PlanId:             s.PlanId,
		Duration:           s.Duration,
		StartDate:          s.StartDate,
		EndDate:            s.EndDate,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}
