package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"time"

	"jobboard-be/internal/dto"
	"jobboard-be/internal/entity"
	"jobboard-be/internal/pkg/apperror"
	"jobboard-be/internal/pkg/logger"
	"jobboard-be/internal/repository/contract"
	"jobboard-be/internal/repository/specification"
	"jobboard-be/internal/repository/unitofwork"
	"jobboard-be/pkg/events"
	"jobboard-be/pkg/lock"
	"jobboard-be/pkg/zarinpal"

	"github.com/google/uuid"
)

// PaymentGateway is the part of *zarinpal.Client the payment flow uses.
type PaymentGateway interface {
	RequestPayment(ctx context.Context, req zarinpal.PaymentRequest) (*zarinpal.PaymentResponse, error)
	VerifyPayment(ctx context.Context, req zarinpal.VerifyRequest) (*zarinpal.VerifyResponse, error)
	StartPayURL(authority string) string
}

type PaymentConfig struct {
	// CallbackURL is the public verify endpoint; order_id is added to its query.
	CallbackURL string
	Description string
	LockTTL     time.Duration
}

type IPaymentService interface {
	RequestPayment(ctx context.Context, actor entity.Actor, orderId uuid.UUID) (*dto.PaymentRequestResponse, error)
	VerifyPayment(ctx context.Context, orderId uuid.UUID, authority string) (*dto.VerifyPaymentResponse, error)
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	gateway        PaymentGateway
	locker         lock.Locker
	activator      ISubscriptionActivator
	eventPublisher IEventPublisher
	logger         logger.ILogger
	cfg            PaymentConfig
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	gateway PaymentGateway,
	locker lock.Locker,
	activator ISubscriptionActivator,
	eventPublisher IEventPublisher,
	logger logger.ILogger,
	cfg PaymentConfig,
) IPaymentService {
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 30 * time.Second
	}
	if cfg.Description == "" {
		cfg.Description = "Advertisement subscription payment"
	}
	return &paymentService{
		uowFactory:     uowFactory,
		gateway:        gateway,
		locker:         locker,
		activator:      activator,
		eventPublisher: eventPublisher,
		logger:         logger,
		cfg:            cfg,
	}
}

func (s *paymentService) RequestPayment(ctx context.Context, actor entity.Actor, orderId uuid.UUID) (*dto.PaymentRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, apperror.NotFound("order")
	}
	if !order.IsOwnedBy(actor.UserId) {
		return nil, apperror.PermissionDenied("you do not own this order")
	}
	if order.PaymentStatus != entity.PaymentStatusPending {
		return nil, apperror.Conflict(fmt.Sprintf("order is already %s", order.PaymentStatus))
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: order.OwnerId})
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	callbackURL, err := withOrderID(s.cfg.CallbackURL, order.Id)
	if err != nil {
		return nil, fmt.Errorf("build callback url: %w", err)
	}

	req := zarinpal.PaymentRequest{
		Amount:      order.TotalPrice,
		Description: s.cfg.Description,
		CallbackURL: callbackURL,
		Metadata:    zarinpal.Metadata{OrderID: order.Id.String()},
	}
	if user != nil {
		req.Metadata.Email = user.Email
		req.Metadata.Mobile = user.Phone
	}

	resp, err := s.gateway.RequestPayment(ctx, req)
	if err != nil {
		return nil, s.transportFailure("request", order.Id, err)
	}
	if !resp.OK() {
		code := gatewayCode(resp.Status, resp.HTTPStatus)
		s.logger.Warn("PaymentService", "Payment request rejected", map[string]interface{}{
			"order_id": order.Id.String(),
			"code":     code,
		})
		return nil, apperror.GatewayBusiness(code)
	}

	// Earlier authorities stay valid for the callback.
	meta := mergeMeta(order.GatewayMeta, map[string]interface{}{
		"request_status": resp.Status,
		"requested_at":   time.Now().Format(time.RFC3339),
		"authorities":    append(knownAuthorities(order), resp.Authority),
	})
	if err := uow.OrderRepository().SetAuthority(ctx, order.Id, resp.Authority, meta); err != nil {
		return nil, fmt.Errorf("record authority: %w", err)
	}

	s.logger.Info("PaymentService", "Payment requested", map[string]interface{}{
		"order_id":  order.Id.String(),
		"authority": resp.Authority,
		"amount":    order.TotalPrice,
	})

	return &dto.PaymentRequestResponse{
		Status:    true,
		Url:       s.gateway.StartPayURL(resp.Authority),
		Authority: resp.Authority,
	}, nil
}

func (s *paymentService) VerifyPayment(ctx context.Context, orderId uuid.UUID, authority string) (*dto.VerifyPaymentResponse, error) {
	if authority == "" {
		return nil, apperror.Validation("validation failed", map[string]string{"Authority": "this field is required"})
	}

	order, err := s.findOrder(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(knownAuthorities(order), authority) {
		return nil, apperror.Validation("authority does not match this order", map[string]string{"Authority": "unknown authority"})
	}

	release, err := s.acquire(ctx, order.Id)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(context.Background()); err != nil {
			s.logger.Warn("PaymentService", "Failed to release verify lock", map[string]interface{}{
				"order_id": order.Id.String(),
				"error":    err.Error(),
			})
		}
	}()

	// Another callback may have settled the order while we waited.
	order, err = s.findOrder(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus != entity.PaymentStatusPending {
		return settledOutcome(order)
	}

	resp, err := s.gateway.VerifyPayment(ctx, zarinpal.VerifyRequest{
		Amount:    order.TotalPrice,
		Authority: authority,
	})
	if err != nil {
		return nil, s.transportFailure("verify", order.Id, err)
	}

	if !resp.OK() {
		return nil, s.rejectPayment(ctx, order, gatewayCode(resp.Status, resp.HTTPStatus))
	}

	return s.completePayment(ctx, order, authority, strconv.FormatInt(resp.RefID, 10))
}

// completePayment marks the order paid and upgrades the subscription in one
// transaction. Any failure there leaves the order failed with the cause kept.
func (s *paymentService) completePayment(ctx context.Context, order *entity.SubscriptionOrder, authority, refId string) (*dto.VerifyPaymentResponse, error) {
	meta := mergeMeta(order.GatewayMeta, map[string]interface{}{
		"verify_status":  zarinpal.StatusSuccess,
		"paid_authority": authority,
		"ref_id":         refId,
		"verified_at":    time.Now().Format(time.RFC3339),
	})

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	ok, err := uow.OrderRepository().TransitionStatus(ctx, order.Id, entity.PaymentStatusPending, entity.PaymentStatusPaid,
		contract.OrderTransition{RefId: &refId, GatewayMeta: meta})
	if err != nil {
		_ = uow.Rollback()
		return nil, s.failActivation(ctx, order, fmt.Errorf("mark order paid: %w", err), meta)
	}
	if !ok {
		_ = uow.Rollback()
		current, err := s.findOrder(ctx, order.Id)
		if err != nil {
			return nil, err
		}
		return settledOutcome(current)
	}

	if _, err := s.activator.Activate(ctx, uow, order); err != nil {
		_ = uow.Rollback()
		return nil, s.failActivation(ctx, order, err, meta)
	}

	if err := uow.Commit(); err != nil {
		return nil, s.failActivation(ctx, order, fmt.Errorf("commit payment: %w", err), meta)
	}

	order.PaymentStatus = entity.PaymentStatusPaid
	order.RefId = &refId
	order.GatewayMeta = meta

	s.logger.Info("PaymentService", "Payment verified", map[string]interface{}{
		"order_id": order.Id.String(),
		"ref_id":   refId,
	})
	s.publish(ctx, newOrderEvent(events.OrderPaid, order))

	return &dto.VerifyPaymentResponse{
		OrderId:       order.Id,
		PaymentStatus: string(entity.PaymentStatusPaid),
		RefId:         refId,
	}, nil
}

func (s *paymentService) rejectPayment(ctx context.Context, order *entity.SubscriptionOrder, code string) error {
	meta := mergeMeta(order.GatewayMeta, map[string]interface{}{
		"verify_status": code,
		"verified_at":   time.Now().Format(time.RFC3339),
	})

	uow := s.uowFactory.NewUnitOfWork(ctx)
	ok, err := uow.OrderRepository().TransitionStatus(ctx, order.Id, entity.PaymentStatusPending, entity.PaymentStatusFailed,
		contract.OrderTransition{FailureReason: &code, GatewayMeta: meta})
	if err != nil {
		return fmt.Errorf("mark order failed: %w", err)
	}
	if ok {
		order.PaymentStatus = entity.PaymentStatusFailed
		order.FailureReason = &code
		order.GatewayMeta = meta
		s.publish(ctx, newOrderEvent(events.OrderFailed, order))
	}

	s.logger.Warn("PaymentService", "Payment verification rejected", map[string]interface{}{
		"order_id": order.Id.String(),
		"code":     code,
	})
	return apperror.GatewayBusiness(code)
}

func (s *paymentService) failActivation(ctx context.Context, order *entity.SubscriptionOrder, cause error, meta map[string]interface{}) error {
	reason := cause.Error()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	ok, err := uow.OrderRepository().TransitionStatus(ctx, order.Id, entity.PaymentStatusPending, entity.PaymentStatusFailed,
		contract.OrderTransition{FailureReason: &reason, GatewayMeta: meta})
	if err != nil {
		s.logger.Error("PaymentService", "Failed to mark order failed after activation error", map[string]interface{}{
			"order_id": order.Id.String(),
			"error":    err.Error(),
		})
	}

	s.logger.Error("PaymentService", "Subscription activation failed", map[string]interface{}{
		"order_id": order.Id.String(),
		"error":    reason,
	})

	if ok {
		order.PaymentStatus = entity.PaymentStatusFailed
		order.FailureReason = &reason
		s.publish(ctx, newOrderEvent(events.OrderFailed, order))
	}
	return apperror.Activation(cause)
}

func (s *paymentService) acquire(ctx context.Context, orderId uuid.UUID) (lock.Release, error) {
	noop := func(context.Context) error { return nil }
	if s.locker == nil {
		return noop, nil
	}

	release, err := s.locker.Acquire(ctx, "verify:"+orderId.String(), s.cfg.LockTTL)
	if errors.Is(err, lock.ErrNotAcquired) {
		return nil, apperror.Conflict("payment verification already in progress")
	}
	if err != nil {
		// Status updates are compare-and-set, so a redis outage only costs
		// the duplicate gateway call protection.
		s.logger.Warn("PaymentService", "Verify lock unavailable, continuing without it", map[string]interface{}{
			"order_id": orderId.String(),
			"error":    err.Error(),
		})
		return noop, nil
	}
	return release, nil
}

func (s *paymentService) findOrder(ctx context.Context, orderId uuid.UUID) (*entity.SubscriptionOrder, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, apperror.NotFound("order")
	}
	return order, nil
}

func (s *paymentService) transportFailure(step string, orderId uuid.UUID, err error) error {
	var te *zarinpal.TransportError
	if !errors.As(err, &te) {
		return fmt.Errorf("payment %s: %w", step, err)
	}
	s.logger.Error("PaymentService", "Payment gateway unreachable", map[string]interface{}{
		"order_id": orderId.String(),
		"step":     step,
		"code":     te.Code,
		"error":    err.Error(),
	})
	return apperror.GatewayTransport(te.Code, err)
}

func (s *paymentService) publish(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, event)
}

// settledOutcome reports an order that is no longer pending the same way the
// call that settled it did.
func settledOutcome(order *entity.SubscriptionOrder) (*dto.VerifyPaymentResponse, error) {
	switch order.PaymentStatus {
	case entity.PaymentStatusPaid:
		res := &dto.VerifyPaymentResponse{OrderId: order.Id, PaymentStatus: string(order.PaymentStatus)}
		if order.RefId != nil {
			res.RefId = *order.RefId
		}
		return res, nil
	case entity.PaymentStatusFailed:
		if code, ok := order.GatewayMeta["verify_status"].(string); ok {
			return nil, apperror.GatewayBusiness(code)
		}
		return nil, apperror.Activation(errors.New("order already failed"))
	default:
		return nil, apperror.Conflict(fmt.Sprintf("order is %s", order.PaymentStatus))
	}
}

// gatewayCode is the gateway status, or the HTTP status when the answer
// carried none.
func gatewayCode(status, httpStatus int) string {
	if status != 0 {
		return strconv.Itoa(status)
	}
	return "http " + strconv.Itoa(httpStatus)
}

func withOrderID(callback string, orderId uuid.UUID) (string, error) {
	u, err := url.Parse(callback)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("order_id", orderId.String())
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// knownAuthorities lists every authority issued for the order, oldest first.
func knownAuthorities(order *entity.SubscriptionOrder) []string {
	var out []string
	if prev, ok := order.GatewayMeta["authorities"]; ok {
		switch v := prev.(type) {
		case []string:
			out = append(out, v...)
		case []interface{}:
			for _, a := range v {
				if s, ok := a.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	if order.Authority != nil && !slices.Contains(out, *order.Authority) {
		out = append(out, *order.Authority)
	}
	return out
}

func mergeMeta(base, add map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(add))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range add {
		out[k] = v
	}
	return out
}
