package entity

import (
	"time"

	"github.com/google/uuid"
)

type AdType string

const (
	AdTypeJob    AdType = "job"
	AdTypeResume AdType = "resume"
)

// Advertisement is a job or resume posting. Each one owns exactly one
// AdvertisementSubscription.
type Advertisement struct {
	Id             uuid.UUID
	Slug           string
	Title          string
	OwnerId        uuid.UUID
	AdType         AdType
	SubscriptionId uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
