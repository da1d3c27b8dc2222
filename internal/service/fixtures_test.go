package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"jobboard-be/internal/entity"
	"jobboard-be/internal/model"
	"jobboard-be/internal/repository/specification"
	"jobboard-be/internal/repository/unitofwork"
	"jobboard-be/pkg/events"
	"jobboard-be/pkg/zarinpal"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// One connection so every query sees the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

type fixture struct {
	db         *gorm.DB
	uowFactory unitofwork.RepositoryFactory

	owner    *entity.User
	stranger *entity.User
	admin    *entity.User

	plan         *entity.SubscriptionPlan
	subscription *entity.AdvertisementSubscription
	ad           *entity.Advertisement
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{db: db, uowFactory: unitofwork.NewRepositoryFactory(db)}

	ctx := context.Background()
	uow := f.uowFactory.NewUnitOfWork(ctx)

	f.owner = &entity.User{Id: uuid.New(), Email: "owner@jobs.example", Phone: "09120000000", FullName: "Ad Owner", Role: entity.UserRoleUser}
	f.stranger = &entity.User{Id: uuid.New(), Email: "stranger@jobs.example", FullName: "Someone Else", Role: entity.UserRoleUser}
	f.admin = &entity.User{Id: uuid.New(), Email: "admin@jobs.example", FullName: "Admin", Role: entity.UserRoleAdmin}
	for _, u := range []*entity.User{f.owner, f.stranger, f.admin} {
		require.NoError(t, uow.UserRepository().Create(ctx, u))
	}

	f.plan = &entity.SubscriptionPlan{Id: uuid.New(), Name: "Gold", PricePerDay: 100000, IsActive: true}
	require.NoError(t, uow.SubscriptionRepository().CreatePlan(ctx, f.plan))

	f.subscription = &entity.AdvertisementSubscription{
		Id:                 uuid.New(),
		SubscriptionStatus: entity.SubscriptionStatusDefault,
		StartDate:          time.Now(),
	}
	require.NoError(t, uow.SubscriptionRepository().CreateAdSubscription(ctx, f.subscription))

	f.ad = &entity.Advertisement{
		Id:             uuid.New(),
		Slug:           "senior-go-engineer",
		Title:          "Senior Go Engineer",
		OwnerId:        f.owner.Id,
		AdType:         entity.AdTypeJob,
		SubscriptionId: f.subscription.Id,
	}
	require.NoError(t, uow.AdvertisementRepository().Create(ctx, f.ad))

	return f
}

func actorOf(u *entity.User) entity.Actor {
	return entity.Actor{UserId: u.Id, Role: u.Role}
}

// insertOrder stores an order for the fixture advertisement directly.
func (f *fixture) insertOrder(t *testing.T, status entity.PaymentStatus, authority string) *entity.SubscriptionOrder {
	t.Helper()
	order := &entity.SubscriptionOrder{
		Id:              uuid.New(),
		OwnerId:         f.owner.Id,
		AdvertisementId: f.ad.Id,
		PlanId:          f.plan.Id,
		SubscriptionId:  f.subscription.Id,
		PaymentStatus:   status,
		AdType:          f.ad.AdType,
		Durations:       5,
		Price:           f.plan.PricePerDay,
		TotalPrice:      entity.ComputeTotalPrice(f.plan.PricePerDay, 5),
	}
	if authority != "" {
		order.Authority = &authority
	}
	require.NoError(t, f.uowFactory.NewUnitOfWork(context.Background()).OrderRepository().Create(context.Background(), order))
	return order
}

func (f *fixture) reloadOrder(t *testing.T, id uuid.UUID) *entity.SubscriptionOrder {
	t.Helper()
	order, err := f.uowFactory.NewUnitOfWork(context.Background()).OrderRepository().FindOne(context.Background(), specification.ByID{ID: id})
	require.NoError(t, err)
	require.NotNil(t, order)
	return order
}

func (f *fixture) reloadSubscription(t *testing.T) *entity.AdvertisementSubscription {
	t.Helper()
	sub, err := f.uowFactory.NewUnitOfWork(context.Background()).SubscriptionRepository().FindOneAdSubscription(context.Background(), specification.ByID{ID: f.subscription.Id})
	require.NoError(t, err)
	require.NotNil(t, sub)
	return sub
}

func (f *fixture) countOrders(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.SubscriptionOrder{}).Count(&n).Error)
	return n
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

type fakeGateway struct {
	mu sync.Mutex

	requestResp *zarinpal.PaymentResponse
	requestErr  error
	verifyResp  *zarinpal.VerifyResponse
	verifyErr   error

	requests      []zarinpal.PaymentRequest
	verifications []zarinpal.VerifyRequest
}

func (g *fakeGateway) RequestPayment(_ context.Context, req zarinpal.PaymentRequest) (*zarinpal.PaymentResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	return g.requestResp, g.requestErr
}

func (g *fakeGateway) VerifyPayment(_ context.Context, req zarinpal.VerifyRequest) (*zarinpal.VerifyResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verifications = append(g.verifications, req)
	return g.verifyResp, g.verifyErr
}

func (g *fakeGateway) StartPayURL(authority string) string {
	return "https://sandbox.zarinpal.com/pg/StartPay/" + authority
}

func (g *fakeGateway) verifyCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.verifications)
}
