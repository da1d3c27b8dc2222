package controller

import (
	"jobboard-be/internal/dto"
	"jobboard-be/internal/pkg/apperror"
	"jobboard-be/internal/pkg/serverutils"
	"jobboard-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IOrderController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Retrieve(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
}

type orderController struct {
	service service.IOrderService
}

func NewOrderController(service service.IOrderService) IOrderController {
	return &orderController{service: service}
}

func (c *orderController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	h := api.Group("/subscription-orders", jwtMiddleware)
	h.Get("/", c.List)
	h.Post("/", c.Create)
	h.Get("/:order_id", c.Retrieve)
	h.Post("/:order_id/cancel", c.Cancel)
}

func (c *orderController) List(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentActor(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), actor)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Orders retrieved", res))
}

func (c *orderController) Create(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentActor(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateOrderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body", nil)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), actor, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Order created", res))
}

func (c *orderController) Retrieve(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentActor(ctx)
	if err != nil {
		return err
	}
	orderId, err := orderIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Retrieve(ctx.UserContext(), actor, orderId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Order retrieved", res))
}

func (c *orderController) Cancel(ctx *fiber.Ctx) error {
	actor, err := serverutils.CurrentActor(ctx)
	if err != nil {
		return err
	}
	orderId, err := orderIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Cancel(ctx.UserContext(), actor, orderId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Order canceled", res))
}

// orderIdParam parses :order_id. A malformed id cannot name an order, so it
// is reported as not found.
func orderIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("order_id"))
	if err != nil {
		return uuid.Nil, apperror.NotFound("order")
	}
	return id, nil
}
