package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Advertisement struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Slug           string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	Title          string         `gorm:"type:varchar(255);not null"`
	OwnerId        uuid.UUID      `gorm:"type:uuid;not null;index"`
	AdType         string         `gorm:"type:varchar(20);not null"`
	SubscriptionId uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Advertisement) TableName() string {
	return "advertisements"
}
