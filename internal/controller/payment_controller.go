package controller

import (
	"errors"

	"jobboard-be/internal/dto"
	"jobboard-be/internal/pkg/apperror"
	"jobboard-be/internal/pkg/serverutils"
	"jobboard-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPaymentController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
	RequestPayment(ctx *fiber.Ctx) error
	VerifyPayment(ctx *fiber.Ctx) error
}

type paymentController struct {
	service service.IPaymentService
}

func NewPaymentController(service service.IPaymentService) IPaymentController {
	return &paymentController{service: service}
}

func (c *paymentController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	api.Get("/zarinpal-pay/:order_id", jwtMiddleware, c.RequestPayment)

	// Gateway callback; the payer's browser arrives here without a token.
	api.Get("/zarinpal-verify", c.VerifyPayment)
}

func (c *paymentController) RequestPayment(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentActor(ctx)
	if err != nil {
		return err
	}
	orderId, err := orderIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.RequestPayment(ctx.UserContext(), actor, orderId)
	if err != nil {
		// Gateway problems on the request step are upstream failures.
		return gatewayFailure(ctx, err, fiber.StatusBadGateway)
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment requested", res))
}

func (c *paymentController) VerifyPayment(ctx *fiber.Ctx) error {
	var req dto.VerifyPaymentRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.Validation("invalid query", nil)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	orderId, _ := uuid.Parse(req.OrderId)

	res, err := c.service.VerifyPayment(ctx.UserContext(), orderId, req.Authority)
	if err != nil {
		return gatewayFailure(ctx, err, 0)
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment verified", res))
}

// gatewayFailure renders gateway errors as {status:false, code} inside the
// failure envelope. businessStatus overrides the status used for gateway
// rejections; zero keeps the default. Other errors go to the error handler.
func gatewayFailure(ctx *fiber.Ctx, err error, businessStatus int) error {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		return err
	}
	if appErr.Kind != apperror.KindGatewayTransport && appErr.Kind != apperror.KindGatewayBusiness {
		return err
	}

	status := serverutils.StatusFor(err)
	if appErr.Kind == apperror.KindGatewayBusiness && businessStatus != 0 {
		status = businessStatus
	}

	return ctx.Status(status).JSON(serverutils.Response[dto.PaymentRequestResponse]{
		Success: false,
		Code:    status,
		Message: appErr.Message,
		Data:    dto.PaymentRequestResponse{Status: false, Code: appErr.Code},
	})
}
