package model

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlan struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	PricePerDay int64     `gorm:"not null;default:0"`
	IsActive    bool      `gorm:"default:true"`
	IsFree      bool      `gorm:"default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

type AdvertisementSubscription struct {
	Id                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SubscriptionStatus string     `gorm:"type:varchar(20);not null;default:'default'"`
	PlanId             *uuid.UUID `gorm:"type:uuid;index"`
	Duration           int        `gorm:"not null;default:0"`
	StartDate          time.Time  `gorm:"not null"`
	EndDate            *time.Time
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (AdvertisementSubscription) TableName() string {
	return "advertisement_subscriptions"
}
