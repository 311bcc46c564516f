package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"accounthub/app/config"
	"accounthub/app/platform/account"
)

func jsonError(c *fiber.Ctx, status int, message, code, details string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"code":    code,
		"details": details,
	})
}

// domainError maps a service error onto the {message, code, details}
// response shape. Unexpected errors become a generic 500; the raw error
// message is only surfaced behind the debug flag.
func domainError(c *fiber.Ctx, err error) error {
	var derr *account.DomainError
	if errors.As(err, &derr) {
		return jsonError(c, derr.Status, derr.Message, derr.Code, derr.Details)
	}

	log.Errorf("unhandled error on %s: %v", c.Path(), err)

	cfg := c.Locals("config").(*config.Config)
	details := "Unexpected error."
	if cfg.DebugErrors {
		details = err.Error()
	}

	return jsonError(c, fiber.StatusInternalServerError,
		"An internal server error occurred.", "INTERNAL_SERVER_ERROR", details)
}
