package memory

import (
	"testing"
	"time"

	"jobboard-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanCache(t *testing.T) {
	c := NewPlanCache(time.Minute)
	plan := &entity.SubscriptionPlan{Id: uuid.New(), Name: "Gold", PricePerDay: 100000}

	_, ok := c.Get(plan.Id)
	assert.False(t, ok)

	c.Set(plan)
	got, ok := c.Get(plan.Id)
	require.True(t, ok)
	assert.Equal(t, int64(100000), got.PricePerDay)

	// Callers get copies; mutating one does not leak into the cache.
	got.PricePerDay = 1
	plan.PricePerDay = 2
	again, _ := c.Get(plan.Id)
	assert.Equal(t, int64(100000), again.PricePerDay)

	c.Set(nil)
}

func TestPlanCache_Expires(t *testing.T) {
	c := NewPlanCache(20 * time.Millisecond)
	plan := &entity.SubscriptionPlan{Id: uuid.New(), Name: "Silver"}
	c.Set(plan)

	assert.Eventually(t, func() bool {
		_, ok := c.Get(plan.Id)
		return !ok
	}, time.Second, 10*time.Millisecond)
}
