package mapper

import (
	"jobboard-be/internal/entity"
	"jobboard-be/internal/model"
)

type AdvertisementMapper struct{}

func NewAdvertisementMapper() *AdvertisementMapper {
	return &AdvertisementMapper{}
}

func (m *AdvertisementMapper) ToEntity(a *model.Advertisement) *entity.Advertisement {
	if a == nil {
		return nil
	}
	return &entity.Advertisement{
		Id:             a.Id,
		Slug:           a.Slug,
		Title:          a.Title,
		OwnerId:        a.OwnerId,
		AdType:         entity.AdType(a.AdType),
		SubscriptionId: a.SubscriptionId,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (m *AdvertisementMapper) ToModel(a *entity.Advertisement) *model.Advertisement {
	if a == nil {
		return nil
	}
	return &model.Advertisement{
		Id:             a.Id,
		Slug:           a.Slug,
		Title:          a.Title,
		OwnerId:        a.OwnerId,
		AdType:         string(a.AdType),
		SubscriptionId: a.SubscriptionId,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
