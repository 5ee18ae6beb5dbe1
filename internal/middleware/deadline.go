package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// StoreDeadline bounds the work of each request. Handlers pass
// c.UserContext() to the services so a slow store surfaces as a timeout
// instead of hanging the request.
func StoreDeadline(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
