package service

import (
	"context"
	"testing"
	"time"

	"jobboard-be/internal/entity"
	"jobboard-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionActivator_Activate(t *testing.T) {
	f := newFixture(t)
	activator := NewSubscriptionActivator(func() time.Time { return fixedNow }, logger.NewNopLogger())

	order := f.insertOrder(t, entity.PaymentStatusPaid, "")
	order.Durations = 30

	uow := f.uowFactory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.Begin(context.Background()))
	sub, err := activator.Activate(context.Background(), uow, order)
	require.NoError(t, err)
	require.NoError(t, uow.Commit())

	assert.Equal(t, entity.SubscriptionStatusSpecial, sub.SubscriptionStatus)
	assert.Equal(t, 30, sub.Duration)

	stored := f.reloadSubscription(t)
	assert.Equal(t, entity.SubscriptionStatusSpecial, stored.SubscriptionStatus)
	assert.Equal(t, f.plan.Id, *stored.PlanId)
	assert.True(t, stored.StartDate.Equal(fixedNow))
	assert.True(t, stored.EndDate.Equal(fixedNow.AddDate(0, 0, 30)))
}

func TestSubscriptionActivator_MissingReferences(t *testing.T) {
	f := newFixture(t)
	activator := NewSubscriptionActivator(nil, logger.NewNopLogger())
	uow := f.uowFactory.NewUnitOfWork(context.Background())

	order := f.insertOrder(t, entity.PaymentStatusPaid, "")

	missingPlan := *order
	missingPlan.PlanId = uuid.New()
	_, err := activator.Activate(context.Background(), uow, &missingPlan)
	assert.Error(t, err)

	missingSub := *order
	missingSub.SubscriptionId = uuid.New()
	_, err = activator.Activate(context.Background(), uow, &missingSub)
	assert.Error(t, err)

	assert.Equal(t, entity.SubscriptionStatusDefault, f.reloadSubscription(t).SubscriptionStatus)
}
