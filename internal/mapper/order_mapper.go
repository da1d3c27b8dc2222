package mapper

import (
	"jobboard-be/internal/entity"
	"jobboard-be/internal/model"

	"gorm.io/datatypes"
)

type OrderMapper struct{}

func NewOrderMapper() *OrderMapper {
	return &OrderMapper{}
}

func (m *OrderMapper) ToEntity(o *model.SubscriptionOrder) *entity.SubscriptionOrder {
	if o == nil {
		return nil
	}
	return &entity.SubscriptionOrder{
		Id:              o.Id,
		OwnerId:         o.OwnerId,
		AdvertisementId: o.AdvertisementId,
		PlanId:          o.PlanId,
		SubscriptionId:  o.SubscriptionId,
		PaymentStatus:   entity.PaymentStatus(o.PaymentStatus),
		AdType:          entity.AdType(o.AdType),
		Durations:       o.Durations,
		Price:           o.Price,
		TotalPrice:      o.TotalPrice,
		Authority:       o.Authority,
		RefId:           o.RefId,
		FailureReason:   o.FailureReason,
		GatewayMeta:     map[string]interface{}(o.GatewayMeta),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func (m *OrderMapper) ToModel(o *entity.SubscriptionOrder) *model.SubscriptionOrder {
	if o == nil {
		return nil
	}
	return &model.SubscriptionOrder{
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
		GatewayMeta:     datatypes.JSONMap(o.GatewayMeta),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
