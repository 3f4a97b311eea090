package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns handler errors into the standard envelope.
// Unknown errors are reported as 500 without their text.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return writeError(ctx, err)
	}
}

// FiberErrorHandler is installed as fiber.Config.ErrorHandler for errors
// raised outside the middleware chain (routing, body limit).
func FiberErrorHandler(ctx *fiber.Ctx, err error) error {
	return writeError(ctx, err)
}

func writeError(ctx *fiber.Ctx, err error) error {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		body := ErrorResponse(fiber.StatusBadRequest, "Validation failed")
		body.Errors = validationErr.Fields
		return ctx.Status(fiber.StatusBadRequest).JSON(body)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
}
