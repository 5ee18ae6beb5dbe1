package middleware

import (
	"errors"

	"kiosk/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, apperr.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperr.ErrInvalidInput):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrTimeout):
		return fiber.StatusGatewayTimeout
	case errors.Is(err, apperr.ErrUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler returns the app-wide Fiber error handler. Known error kinds
// keep their message; anything else is reported as a generic server error.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := StatusFor(err)

		var fe *fiber.Error
		message := err.Error()
		kind := apperr.Kind(err)
		switch {
		case errors.As(err, &fe):
			message = fe.Message
			kind = fiberKind(fe.Code)
		case kind == "internal":
			message = "internal server error"
		}

		return c.Status(status).JSON(fiber.Map{
			"message": message,
			"error":   kind,
		})
	}
}

func fiberKind(code int) string {
	switch code {
	case fiber.StatusNotFound:
		return "not_found"
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return "invalid_input"
	case fiber.StatusMethodNotAllowed:
		return "method_not_allowed"
	default:
		if code >= fiber.StatusInternalServerError {
			return "internal"
		}
		return "request_error"
	}
}
