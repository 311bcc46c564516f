package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"accounthub/app/auth"
)

// AuthMiddleware requires a Bearer access token and injects the resolved
// user id into the request context under "user_id".
func AuthMiddleware(c *fiber.Ctx) error {
	issuer := c.Locals("auth").(*auth.Issuer)

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authorization token is missing or malformed.",
			"code":    "NO_TOKEN",
			"details": "A valid access token is required to access this resource.",
		})
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")

	userID, err := issuer.Verify(auth.PurposeAccess, token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid or expired token.",
			"code":    "INVALID_TOKEN",
			"details": "The provided token is invalid, expired, or malformed.",
		})
	}

	c.Locals("user_id", userID)

	return c.Next()
}
