package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobboard-be/internal/dto"
	"jobboard-be/internal/entity"
	"jobboard-be/internal/pkg/apperror"
	"jobboard-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-test-secret"

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) List(ctx context.Context, actor entity.Actor) ([]*dto.OrderResponse, error) {
	args := m.Called(ctx, actor)
	res, _ := args.Get(0).([]*dto.OrderResponse)
	return res, args.Error(1)
}

func (m *mockOrderService) Retrieve(ctx context.Context, actor entity.Actor, orderId uuid.UUID) (*dto.OrderResponse, error) {
	args := m.Called(ctx, actor, orderId)
	res, _ := args.Get(0).(*dto.OrderResponse)
	return res, args.Error(1)
}

func (m *mockOrderService) Create(ctx context.Context, actor entity.Actor, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	args := m.Called(ctx, actor, req)
	res, _ := args.Get(0).(*dto.OrderResponse)
	return res, args.Error(1)
}

func (m *mockOrderService) Cancel(ctx context.Context, actor entity.Actor, orderId uuid.UUID) (*dto.OrderResponse, error) {
	args := m.Called(ctx, actor, orderId)
	res, _ := args.Get(0).(*dto.OrderResponse)
	return res, args.Error(1)
}

type mockPaymentService struct {
	mock.Mock
}

func (m *mockPaymentService) RequestPayment(ctx context.Context, actor entity.Actor, orderId uuid.UUID) (*dto.PaymentRequestResponse, error) {
	args := m.Called(ctx, actor, orderId)
	res, _ := args.Get(0).(*dto.PaymentRequestResponse)
	return res, args.Error(1)
}

func (m *mockPaymentService) VerifyPayment(ctx context.Context, orderId uuid.UUID, authority string) (*dto.VerifyPaymentResponse, error) {
	args := m.Called(ctx, orderId, authority)
	res, _ := args.Get(0).(*dto.VerifyPaymentResponse)
	return res, args.Error(1)
}

func newTestApp(orders *mockOrderService, payments *mockPaymentService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	jwt := serverutils.JwtMiddleware(testSecret)
	NewOrderController(orders).RegisterRoutes(api, jwt)
	NewPaymentController(payments).RegisterRoutes(api, jwt)
	return app
}

func authorized(t *testing.T, req *http.Request, actor entity.Actor) *http.Request {
	t.Helper()
	token, err := serverutils.SignToken(testSecret, actor.UserId, actor.Role)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func readBody(t *testing.T, r io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(r).Decode(&out))
	return out
}

func TestOrderController_Create(t *testing.T) {
	owner := entity.Actor{UserId: uuid.New(), Role: entity.UserRoleUser}
	planId, subId := uuid.New(), uuid.New()

	tests := []struct {
		name       string
		body       string
		setup      func(m *mockOrderService)
		wantStatus int
	}{
		{
			name: "created",
			body: `{"plan_id":"` + planId.String() + `","subscription_id":"` + subId.String() + `","ad_slug":"go-dev","durations":5}`,
			setup: func(m *mockOrderService) {
				m.On("Create", mock.Anything, owner, mock.MatchedBy(func(r *dto.CreateOrderRequest) bool {
					return r.AdSlug == "go-dev" && r.Durations == 5
				})).Return(&dto.OrderResponse{Id: uuid.New(), PaymentStatus: "pending", TotalPrice: 550000}, nil)
			},
			wantStatus: 201,
		},
		{
			name:       "validation",
			body:       `{"plan_id":"x","subscription_id":"` + subId.String() + `","ad_slug":"go-dev","durations":0}`,
			setup:      func(m *mockOrderService) {},
			wantStatus: 400,
		},
		{
			name: "not found",
			body: `{"plan_id":"` + planId.String() + `","subscription_id":"` + subId.String() + `","ad_slug":"someone-elses","durations":1}`,
			setup: func(m *mockOrderService) {
				m.On("Create", mock.Anything, owner, mock.Anything).Return(nil, apperror.NotFound("advertisement"))
			},
			wantStatus: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := &mockOrderService{}
			tt.setup(orders)
			app := newTestApp(orders, &mockPaymentService{})

			req := httptest.NewRequest("POST", "/api/subscription-orders/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(authorized(t, req, owner))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			orders.AssertExpectations(t)
		})
	}
}

func TestOrderController_RequiresToken(t *testing.T) {
	app := newTestApp(&mockOrderService{}, &mockPaymentService{})
	resp, err := app.Test(httptest.NewRequest("GET", "/api/subscription-orders/", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestOrderController_RetrieveAndCancel(t *testing.T) {
	user := entity.Actor{UserId: uuid.New(), Role: entity.UserRoleUser}
	admin := entity.Actor{UserId: uuid.New(), Role: entity.UserRoleAdmin}
	orderId := uuid.New()

	orders := &mockOrderService{}
	orders.On("Retrieve", mock.Anything, user, orderId).Return(nil, apperror.PermissionDenied("no access"))
	orders.On("Cancel", mock.Anything, admin, orderId).Return(nil, apperror.Conflict("order is already paid"))
	orders.On("List", mock.Anything, admin).Return([]*dto.OrderResponse{{Id: orderId}}, nil)
	app := newTestApp(orders, &mockPaymentService{})

	resp, err := app.Test(authorized(t, httptest.NewRequest("GET", "/api/subscription-orders/"+orderId.String()+"/", nil), user))
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	resp, err = app.Test(authorized(t, httptest.NewRequest("POST", "/api/subscription-orders/"+orderId.String()+"/cancel/", nil), admin))
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)

	resp, err = app.Test(authorized(t, httptest.NewRequest("GET", "/api/subscription-orders/not-a-uuid/", nil), user))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = app.Test(authorized(t, httptest.NewRequest("GET", "/api/subscription-orders/", nil), admin))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body := readBody(t, resp.Body)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["data"], 1)

	orders.AssertExpectations(t)
}

func TestPaymentController_RequestPayment(t *testing.T) {
	owner := entity.Actor{UserId: uuid.New(), Role: entity.UserRoleUser}
	okOrder, timeoutOrder, rejectedOrder := uuid.New(), uuid.New(), uuid.New()

	payments := &mockPaymentService{}
	payments.On("RequestPayment", mock.Anything, owner, okOrder).
		Return(&dto.PaymentRequestResponse{Status: true, Url: "https://sandbox.zarinpal.com/pg/StartPay/A1", Authority: "A1"}, nil)
	payments.On("RequestPayment", mock.Anything, owner, timeoutOrder).
		Return(nil, apperror.GatewayTransport("timeout", errors.New("deadline exceeded")))
	payments.On("RequestPayment", mock.Anything, owner, rejectedOrder).
		Return(nil, apperror.GatewayBusiness("-11"))
	app := newTestApp(&mockOrderService{}, payments)

	resp, err := app.Test(authorized(t, httptest.NewRequest("GET", "/api/zarinpal-pay/"+okOrder.String()+"/", nil), owner))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	data := readBody(t, resp.Body)["data"].(map[string]interface{})
	assert.Equal(t, true, data["status"])
	assert.Equal(t, "https://sandbox.zarinpal.com/pg/StartPay/A1", data["url"])

	resp, err = app.Test(authorized(t, httptest.NewRequest("GET", "/api/zarinpal-pay/"+timeoutOrder.String()+"/", nil), owner))
	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)
	data = readBody(t, resp.Body)["data"].(map[string]interface{})
	assert.Equal(t, false, data["status"])
	assert.Equal(t, "timeout", data["code"])

	resp, err = app.Test(authorized(t, httptest.NewRequest("GET", "/api/zarinpal-pay/"+rejectedOrder.String()+"/", nil), owner))
	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)
	data = readBody(t, resp.Body)["data"].(map[string]interface{})
	assert.Equal(t, "-11", data["code"])

	payments.AssertExpectations(t)
}

func TestPaymentController_VerifyPayment(t *testing.T) {
	paidOrder, rejectedOrder, brokenOrder := uuid.New(), uuid.New(), uuid.New()

	payments := &mockPaymentService{}
	payments.On("VerifyPayment", mock.Anything, paidOrder, "A-OK").
		Return(&dto.VerifyPaymentResponse{OrderId: paidOrder, PaymentStatus: "paid", RefId: "201"}, nil)
	payments.On("VerifyPayment", mock.Anything, rejectedOrder, "A-NOK").
		Return(nil, apperror.GatewayBusiness("-21"))
	payments.On("VerifyPayment", mock.Anything, brokenOrder, "A-BROKEN").
		Return(nil, apperror.Activation(errors.New("subscription row locked")))
	app := newTestApp(&mockOrderService{}, payments)

	// No Authorization header: the callback is public.
	resp, err := app.Test(httptest.NewRequest("GET", "/api/zarinpal-verify/?order_id="+paidOrder.String()+"&Authority=A-OK&Status=OK", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	data := readBody(t, resp.Body)["data"].(map[string]interface{})
	assert.Equal(t, "paid", data["payment_status"])

	resp, err = app.Test(httptest.NewRequest("GET", "/api/zarinpal-verify/?order_id="+rejectedOrder.String()+"&Authority=A-NOK&Status=NOK", nil))
	require.NoError(t, err)
	assert.Equal(t, 417, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/zarinpal-verify/?order_id="+brokenOrder.String()+"&Authority=A-BROKEN", nil))
	require.NoError(t, err)
	assert.Equal(t, 417, resp.StatusCode)
	body := readBody(t, resp.Body)
	assert.Equal(t, "operation failed", body["message"])

	resp, err = app.Test(httptest.NewRequest("GET", "/api/zarinpal-verify/?Authority=A-OK", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	payments.AssertExpectations(t)
}
