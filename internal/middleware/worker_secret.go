package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/choreosync/api/pkg/response"
)

// SecretHeader carries the shared secret on worker calls in both directions
const SecretHeader = "X-Webhook-Secret"

// Authorizer checks a presented shared secret
type Authorizer interface {
	Authorize(presented string) error
}

// WorkerSecret guards the internal worker write routes
func WorkerSecret(a Authorizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Authorize(c.Get(SecretHeader)); err != nil {
			return response.Unauthorized(c, "Invalid worker secret")
		}
		return c.Next()
	}
}
