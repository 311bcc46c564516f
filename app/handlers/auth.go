package handlers

import (
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"accounthub/app/auth"
	"accounthub/app/config"
	"accounthub/app/platform/account"
)

func accountService(c *fiber.Ctx) *account.Service {
	cfg := c.Locals("config").(*config.Config)
	db := c.Locals("db").(*gorm.DB)
	issuer := c.Locals("auth").(*auth.Issuer)

	return account.NewService(db, cfg, issuer)
}

func validEmailFormat(email string) bool {
	return config.Validate.Var(email, "email") == nil
}

func validUsernameLength(username string) bool {
	length := utf8.RuneCountInString(username)
	return length >= 5 && length <= 20
}

func Register(c *fiber.Ctx) error {
	type RegisterInput struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid input.", "INVALID_INPUT",
			"The request body could not be parsed.")
	}

	if input.Username == "" {
		return jsonError(c, fiber.StatusBadRequest, "Username is required.", "MISSING_USERNAME",
			"A valid username is required to register.")
	}
	if !validUsernameLength(input.Username) {
		return jsonError(c, fiber.StatusBadRequest, "Invalid username.", "INVALID_USERNAME",
			"Username must be between 5 and 20 characters long. Please try again.")
	}
	if input.Email == "" {
		return jsonError(c, fiber.StatusBadRequest, "Email is required.", "MISSING_EMAIL",
			"A valid email address is required to register.")
	}
	if !validEmailFormat(input.Email) {
		return jsonError(c, fiber.StatusBadRequest, "Invalid email format.", "INVALID_EMAIL",
			"Please provide a valid email address.")
	}
	if input.Password == "" {
		return jsonError(c, fiber.StatusBadRequest, "Password is required.", "MISSING_PASSWORD",
			"A password is required to create an account.")
	}

	tokens, _, err := accountService(c).Register(account.RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"message":      "Registration successful.",
		"code":         "REGISTRATION_SUCCESS",
		"details":      "User account created successfully.",
	})
}

func CheckUsername(c *fiber.Ctx) error {
	type CheckUsernameInput struct {
		Username string `json:"username"`
	}

	var input CheckUsernameInput
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid input.", "INVALID_INPUT",
			"The request body could not be parsed.")
	}

	if input.Username == "" {
		return jsonError(c, fiber.StatusBadRequest, "Username is required.", "MISSING_USERNAME",
			"A valid username is required to check availability.")
	}
	if !validUsernameLength(input.Username) {
		return jsonError(c, fiber.StatusBadRequest, "Invalid username.", "INVALID_USERNAME",
			"Username must be between 5 and 20 characters long. Please try again.")
	}

	if err := accountService(c).CheckUsername(input.Username); err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Username available.",
		"code":    "USERNAME_AVAILABLE",
		"details": "The username is available for registration.",
	})
}

func CheckEmail(c *fiber.Ctx) error {
	type CheckEmailInput struct {
		Email string `json:"email"`
	}

	var input CheckEmailInput
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid input.", "INVALID_INPUT",
			"The request body could not be parsed.")
	}

	if input.Email == "" {
		return jsonError(c, fiber.StatusBadRequest, "Email is required", "MISSING_EMAIL",
			"A valid email address is required to check availability.")
	}
	if !validEmailFormat(input.Email) {
		return jsonError(c, fiber.StatusBadRequest, "Invalid email format", "INVALID_EMAIL",
			"Please provide a valid email address.")
	}

	if err := accountService(c).CheckEmail(input.Email); err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Email is available",
		"code":    "EMAIL_AVAILABLE",
		"details": "The email address is available for registration.",
	})
}

func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid input.", "INVALID_INPUT",
			"The request body could not be parsed.")
	}

	if input.Username == "" || input.Password == "" {
		return jsonError(c, fiber.StatusBadRequest, "Please provide a username and password.",
			"MISSING_CREDENTIALS", "Both username and password are required to log in.")
	}

	ip := c.IP()
	if len(c.IPs()) > 1 {
		ip = c.IPs()[0]
	}

	tokens, err := accountService(c).Login(account.LoginInput{
		Username:  input.Username,
		Password:  input.Password,
		IPAddress: ip,
		Timezone:  c.Get("timezone"),
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"message":      "Login successful.",
		"code":         "LOGIN_SUCCESS",
		"details":      "User logged in successfully.",
	})
}

func VerifyEmail(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return jsonError(c, fiber.StatusBadRequest, "Verification link is missing.", "MISSING_TOKEN",
			"A valid verification link is required to verify the email address.")
	}

	if err := accountService(c).VerifyEmail(token); err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Email verified.",
		"code":    "EMAIL_VERIFIED",
		"details": "The email address has been successfully verified.",
	})
}

func ForgotPassword(c *fiber.Ctx) error {
	type ForgotPasswordInput struct {
		Email string `json:"email"`
	}

	var input ForgotPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid input.", "INVALID_INPUT",
			"The request body could not be parsed.")
	}

	if input.Email == "" {
		return jsonError(c, fiber.StatusBadRequest, "Email is required.", "MISSING_EMAIL",
			"A valid email address is required to reset the password.")
	}

	if err := accountService(c).ForgotPassword(input.Email); err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Password reset email sent.",
		"code":    "PASSWORD_RESET_EMAIL_SENT",
		"details": "A password reset email has been sent to your email address.",
	})
}

func ResetPassword(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return jsonError(c, fiber.StatusBadRequest, "Reset token is missing.", "MISSING_TOKEN",
			"A valid reset token is required to reset the password. Please check the link in your email.")
	}

	type ResetPasswordInput struct {
		NewPassword      string `json:"newPassword"`
		NewPasswordAgain string `json:"newPasswordAgain"`
	}

	var input ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid input.", "INVALID_INPUT",
			"The request body could not be parsed.")
	}

	if input.NewPassword == "" || input.NewPasswordAgain == "" {
		return jsonError(c, fiber.StatusBadRequest, "New password is required.", "MISSING_PASSWORD",
			"Please provide a new password to reset your account.")
	}

	if err := accountService(c).ResetPassword(token, input.NewPassword, input.NewPasswordAgain); err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Password reset successful.",
		"code":    "PASSWORD_RESET_SUCCESS",
		"details": "Your password has been successfully reset.",
	})
}

func RefreshToken(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return jsonError(c, fiber.StatusBadRequest, "Refresh token is missing.", "MISSING_TOKEN",
			"A valid refresh token is required to refresh the session.")
	}

	tokens, err := accountService(c).Refresh(token)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"message":      "Token refreshed.",
		"code":         "TOKEN_REFRESHED",
		"details":      "A new token pair has been issued.",
	})
}
