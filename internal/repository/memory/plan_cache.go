package memory

import (
	"time"

	"jobboard-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// PlanCache keeps recently read subscription plans in process for display
// purposes such as receipts. Order pricing must not read from it.
type PlanCache struct {
	cache *cache.Cache
}

func NewPlanCache(ttl time.Duration) *PlanCache {
	return &PlanCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *PlanCache) Get(id uuid.UUID) (*entity.SubscriptionPlan, bool) {
	if x, found := c.cache.Get(id.String()); found {
		plan := *x.(*entity.SubscriptionPlan)
		return &plan, true
	}
	return nil, false
}

func (c *PlanCache) Set(plan *entity.SubscriptionPlan) {
	if plan == nil {
		return
	}
	stored := *plan
	c.cache.Set(plan.Id.String(), &stored, cache.DefaultExpiration)
}
