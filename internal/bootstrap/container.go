package bootstrap

import (
	"context"
	"log"

	"jobboard-be/internal/config"
	"jobboard-be/internal/controller"
	"jobboard-be/internal/pkg/logger"
	"jobboard-be/internal/pkg/mailer"
	"jobboard-be/internal/repository/memory"
	"jobboard-be/internal/repository/unitofwork"
	"jobboard-be/internal/service"
	"jobboard-be/pkg/lock"
	"jobboard-be/pkg/zarinpal"

	pktNats "jobboard-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const orderEventsTopic = "order-events"

type Container struct {
	// Controllers
	OrderController   controller.IOrderController
	PaymentController controller.IPaymentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var sinks []service.EventSink
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		sinks = append(sinks, natsPub)
		c.closers = append(c.closers, natsPub.Close)
	}

	publisherService := service.NewPublisherService(orderEventsTopic, pubSub)
	eventPublisher := service.NewEventPublisher(publisherService, sysLogger, cfg.App.EventSinkTimeout, sinks...)

	// 3. Redis (verify lock)
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	c.closers = append(c.closers, func() { _ = rdb.Close() })
	locker := lock.NewRedisLocker(rdb, "jobboard:")

	// 4. Gateway
	gateway := zarinpal.NewClient(zarinpal.Config{
		MerchantID: cfg.Zarinpal.MerchantID,
		Sandbox:    cfg.Zarinpal.Sandbox,
		Timeout:    cfg.Zarinpal.Timeout,
		BaseURL:    cfg.Zarinpal.BaseURL,
	})
	if cfg.Zarinpal.MerchantID == "" {
		log.Printf("[WARN] ZARINPAL_MERCHANT_ID is empty; the gateway will reject payment requests")
	}

	// 5. Services
	planCache := memory.NewPlanCache(cfg.App.PlanCacheTTL)
	activator := service.NewSubscriptionActivator(nil, sysLogger)

	orderService := service.NewOrderService(uowFactory, eventPublisher, sysLogger)
	paymentService := service.NewPaymentService(
		uowFactory,
		gateway,
		locker,
		activator,
		eventPublisher,
		sysLogger,
		service.PaymentConfig{
			CallbackURL: cfg.Zarinpal.CallbackBaseURL,
			LockTTL:     cfg.App.VerifyLockTTL,
		},
	)

	c.ConsumerService = service.NewReceiptConsumerService(pubSub, orderEventsTopic, uowFactory, emailService, planCache, sysLogger)

	// 6. Controllers
	c.OrderController = controller.NewOrderController(orderService)
	c.PaymentController = controller.NewPaymentController(paymentService)

	return c
}

// Close releases broker and cache connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
