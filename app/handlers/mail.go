package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// ResendVerificationEmail issues a fresh verification token for the
// authenticated user and mails it out. The optional :token path segment
// from older clients is accepted and ignored; the bearer token is
// authoritative.
func ResendVerificationEmail(c *fiber.Ctx) error {
	if err := accountService(c).ResendVerification(currentUserID(c)); err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Verification email sent.",
		"code":    "EMAIL_SENT",
		"details": "A new verification email has been sent to your email address.",
	})
}
