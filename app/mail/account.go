package mail

import "fmt"

// AccountMailer sends the account lifecycle mails. Delivery failures are
// reported, never fatal to the calling flow.
type AccountMailer interface {
	SendVerificationMail(username, email, token string) error
	SendResendVerificationMail(username, email, token string) error
	SendPasswordResetMail(username, email, token string) error
	SendSuspensionMail(username, email string) error
	SendSuspensionWarningMail(username, email, token string) error
}

// AccountMail sends the lifecycle mails through mailgun templates.
type AccountMail struct {
	mailer Mailer
	domain string
}

func NewAccountMail(mailer Mailer, domain string) *AccountMail {
	return &AccountMail{mailer: mailer, domain: domain}
}

func (m *AccountMail) from() string {
	return fmt.Sprintf("Accounthub <no-reply@%s>", m.domain)
}

func (m *AccountMail) SendVerificationMail(username, email, token string) error {
	return m.mailer.SendTemplatedMail(&Email{
		Subject:  "Welcome to our platform - Please verify your email",
		From:     m.from(),
		To:       []string{email},
		Template: "verify-email",
		TemplateVars: map[string]any{
			"username":          username,
			"verificationToken": token,
		},
	})
}

func (m *AccountMail) SendResendVerificationMail(username, email, token string) error {
	return m.mailer.SendTemplatedMail(&Email{
		Subject:  "Your new verification link",
		From:     m.from(),
		To:       []string{email},
		Template: "resend-verification",
		TemplateVars: map[string]any{
			"username":          username,
			"verificationToken": token,
		},
	})
}

func (m *AccountMail) SendPasswordResetMail(username, email, token string) error {
	return m.mailer.SendTemplatedMail(&Email{
		Subject:  "Password reset request",
		From:     m.from(),
		To:       []string{email},
		Template: "reset-password",
		TemplateVars: map[string]any{
			"username":   username,
			"resetToken": token,
		},
	})
}

func (m *AccountMail) SendSuspensionMail(username, email string) error {
	return m.mailer.SendTemplatedMail(&Email{
		Subject:  "Your account has been suspended",
		From:     m.from(),
		To:       []string{email},
		Template: "account-suspended",
		TemplateVars: map[string]any{
			"username": username,
		},
	})
}

func (m *AccountMail) SendSuspensionWarningMail(username, email, token string) error {
	return m.mailer.SendTemplatedMail(&Email{
		Subject:  "Verify your email to keep your account active",
		From:     m.from(),
		To:       []string{email},
		Template: "suspension-warning",
		TemplateVars: map[string]any{
			"username":          username,
			"verificationToken": token,
		},
	})
}
