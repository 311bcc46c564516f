package account

import "fmt"

// DomainError is an expected domain outcome with a stable machine-readable
// code. Handlers map it to the {message, code, details} response shape.
type DomainError struct {
	Status  int
	Code    string
	Message string
	Details string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	ErrUsernameExists = &DomainError{
		Status:  400,
		Code:    "USERNAME_EXISTS",
		Message: "Username already exists.",
		Details: "The provided username is already taken. Please choose another one.",
	}
	ErrEmailExists = &DomainError{
		Status:  400,
		Code:    "EMAIL_EXISTS",
		Message: "Email already exists.",
		Details: "The provided email address is already associated with an account.",
	}
	ErrUsernameTaken = &DomainError{
		Status:  400,
		Code:    "USERNAME_TAKEN",
		Message: "This username cannot be used.",
		Details: "The username entered is already taken. Please choose another one.",
	}
	ErrEmailTaken = &DomainError{
		Status:  400,
		Code:    "EMAIL_TAKEN",
		Message: "This email cannot be used",
		Details: "The email address entered is already associated with an account.",
	}
	ErrInvalidPasswordFormat = &DomainError{
		Status:  400,
		Code:    "INVALID_PASSWORD",
		Message: "Invalid password format.",
		Details: "Password must be at least 6 characters long, and contain at least one uppercase and one lowercase letter.",
	}
	ErrPasswordMismatch = &DomainError{
		Status:  400,
		Code:    "PASSWORD_MISMATCH",
		Message: "Passwords do not match.",
		Details: "The new passwords entered do not match. Please try again.",
	}

	ErrLoginUserNotFound = &DomainError{
		Status:  401,
		Code:    "USER_NOT_FOUND",
		Message: "User does not exist.",
		Details: "The username entered was not found in the system. Please verify the username and try again.",
	}
	ErrInvalidCredentials = &DomainError{
		Status:  401,
		Code:    "INVALID_PASSWORD",
		Message: "Invalid password.",
		Details: "The password entered is incorrect. Please try again.",
	}
	ErrUserInactive = &DomainError{
		Status:  403,
		Code:    "USER_NOT_ACTIVE",
		Message: "Your account is inactive.",
		Details: "The user account is marked as inactive.",
	}
	ErrAccountSuspended = &DomainError{
		Status:  403,
		Code:    "ACCOUNT_SUSPENDED",
		Message: "Your account is suspended. Please contact support.",
		Details: "The user account is currently suspended.",
	}

	ErrUserNotFound = &DomainError{
		Status:  404,
		Code:    "USER_NOT_FOUND",
		Message: "User not found.",
		Details: "No user found with the provided ID.",
	}
	ErrTokenUserNotFound = &DomainError{
		Status:  404,
		Code:    "USER_NOT_FOUND",
		Message: "User not found.",
		Details: "The user account associated with the token was not found.",
	}
	ErrForgotUserNotFound = &DomainError{
		Status:  404,
		Code:    "USER_NOT_FOUND",
		Message: "User not found.",
		Details: "The email address entered was not found in the system. Please verify the email address and try again.",
	}

	ErrAlreadyVerified = &DomainError{
		Status:  400,
		Code:    "EMAIL_ALREADY_VERIFIED",
		Message: "Email already verified.",
		Details: "The email address is already verified.",
	}

	ErrInvalidToken = &DomainError{
		Status:  404,
		Code:    "INVALID_TOKEN",
		Message: "Invalid token.",
		Details: "The provided token is invalid or malformed.",
	}
	ErrVerifyTokenExpired = &DomainError{
		Status:  410,
		Code:    "INVALID_TOKEN",
		Message: "The verification link is invalid or has expired.",
		Details: "Please request a new verification link.",
	}
	ErrResetTokenExpired = &DomainError{
		Status:  410,
		Code:    "INVALID_TOKEN",
		Message: "The password reset link is invalid or has expired.",
		Details: "Please request a new password reset link.",
	}
	ErrResetTokenStale = &DomainError{
		Status:  410,
		Code:    "TOKEN_EXPIRED",
		Message: "The password reset link has expired.",
		Details: "Please request a new password reset link.",
	}
	ErrResetTokenMismatch = &DomainError{
		Status:  400,
		Code:    "INVALID_TOKEN",
		Message: "Invalid token.",
		Details: "The provided token is invalid or has expired.",
	}
	ErrRefreshTokenInvalid = &DomainError{
		Status:  401,
		Code:    "INVALID_TOKEN",
		Message: "Invalid or expired token.",
		Details: "The provided refresh token is invalid, expired, or malformed.",
	}

	ErrVerificationMailSend = &DomainError{
		Status:  500,
		Code:    "MAIL_SEND_ERROR",
		Message: "Failed to send registration email.",
		Details: "An error occurred while sending the registration email. Please try again.",
	}
	ErrResetMailSend = &DomainError{
		Status:  500,
		Code:    "MAIL_SEND_ERROR",
		Message: "Failed to send password reset email.",
		Details: "An error occurred while sending the password reset email. Please try again.",
	}
)

// AccountLockedError carries the remaining lock time into the message.
func AccountLockedError(remainingMinutes int) *DomainError {
	return &DomainError{
		Status:  403,
		Code:    "ACCOUNT_LOCKED",
		Message: fmt.Sprintf("Your account is locked. Please try again in %d minutes.", remainingMinutes),
		Details: "The account is temporarily locked due to multiple failed login attempts.",
	}
}
