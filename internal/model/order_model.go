package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubscriptionOrder struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerId         uuid.UUID `gorm:"type:uuid;not null;index"`
	AdvertisementId uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanId          uuid.UUID `gorm:"type:uuid;not null"`
	SubscriptionId  uuid.UUID `gorm:"type:uuid;not null"`
	PaymentStatus   string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	AdType          string    `gorm:"type:varchar(20);not null"`
	Durations       int       `gorm:"not null"`
	Price           int64     `gorm:"not null"`
	TotalPrice      int64     `gorm:"not null"`
	Authority       *string   `gorm:"type:varchar(64);index"`
	RefId           *string   `gorm:"type:varchar(64)"`
	FailureReason   *string   `gorm:"type:text"`
	GatewayMeta     datatypes.JSONMap
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (SubscriptionOrder) TableName() string {
	return "subscription_orders"
}
