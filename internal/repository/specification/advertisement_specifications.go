package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

// OwnedBy matches rows whose owner_id column is the given user.
type OwnedBy struct {
	OwnerID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_id = ?", s.OwnerID)
}

type WithSubscription struct {
	SubscriptionID uuid.UUID
}

func (s WithSubscription) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subscription_id = ?", s.SubscriptionID)
}
