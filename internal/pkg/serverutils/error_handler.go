package serverutils

import (
	"errors"

	"jobboard-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error to the HTTP status the API reports for it.
// Gateway rejections default to 417; the payment-request endpoint reports
// them as 502 itself.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindPermissionDenied:
		return fiber.StatusForbidden
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindGatewayTransport:
		return fiber.StatusBadGateway
	case apperror.KindGatewayBusiness, apperror.KindActivation:
		return fiber.StatusExpectationFailed
	default:
		return fiber.StatusInternalServerError
	}
}

// WriteError renders err in the failure envelope. Internal errors never leak
// their message.
func WriteError(ctx *fiber.Ctx, err error) error {
	status := StatusFor(err)

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		if appErr.Kind == apperror.KindValidation {
			return ctx.Status(status).JSON(ValidationErrorResponse(appErr.Message, appErr.Fields))
		}
		return ctx.Status(status).JSON(ErrorResponse(status, appErr.Message))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(status).JSON(ErrorResponse(status, fiberErr.Message))
	}

	return ctx.Status(status).JSON(ErrorResponse(status, "internal server error"))
}

func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, err)
	}
}
