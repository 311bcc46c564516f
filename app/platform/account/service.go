package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"accounthub/app/auth"
	"accounthub/app/config"
	"accounthub/app/database"
	"accounthub/app/mail"
	"accounthub/pkg/utils"
)

// Service orchestrates the account security state machine: registration,
// credential verification, token issuance, password reset and profile
// management.
type Service struct {
	repo         Repository
	issuer       *auth.Issuer
	mailer       mail.AccountMailer
	lockDuration int // minutes, seeds new accounts
	now          func() time.Time
}

func NewService(db *gorm.DB, cfg *config.Config, issuer *auth.Issuer) *Service {
	mailer := mail.NewAccountMail(
		mail.NewMailer(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunAPIBase),
		cfg.MailgunDomain,
	)
	return NewServiceWith(NewRepository(db), issuer, mailer, cfg.AccountLockDuration)
}

// NewServiceWith wires explicit collaborators. Used by tests.
func NewServiceWith(repo Repository, issuer *auth.Issuer, mailer mail.AccountMailer, lockDuration int) *Service {
	return &Service{
		repo:         repo,
		issuer:       issuer,
		mailer:       mailer,
		lockDuration: lockDuration,
		now:          time.Now,
	}
}

type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (s *Service) issueAuthTokens(userID uuid.UUID) (*AuthTokens, error) {
	accessToken, err := s.issuer.Issue(auth.PurposeAccess, userID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.issuer.Issue(auth.PurposeRefresh, userID)
	if err != nil {
		return nil, err
	}
	return &AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates an unverified account with its satellite records,
// issues the token triple and sends the verification mail. A failed mail
// send does not roll back the account: the caller gets
// ErrVerificationMailSend and the user must use resend-verification.
func (s *Service) Register(input RegisterInput) (*AuthTokens, *database.User, error) {
	username := strings.ToLower(input.Username)
	email := strings.ToLower(input.Email)

	if !utils.PasswordValidation(input.Password) {
		return nil, nil, ErrInvalidPasswordFormat
	}

	if _, err := s.repo.FindByUsername(username); err == nil {
		return nil, nil, ErrUsernameExists
	} else if err != ErrNotFound {
		return nil, nil, err
	}

	if _, err := s.repo.FindByEmail(email); err == nil {
		return nil, nil, ErrEmailExists
	} else if err != ErrNotFound {
		return nil, nil, err
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &database.User{
		ID:                  uuid.New(),
		Username:            username,
		Email:               email,
		Password:            hash,
		Gender:              "other",
		Role:                database.RoleUser,
		IsActive:            true,
		AccountStatus:       database.AccountStatusActive,
		AccountLockDuration: s.lockDuration,
		Language:            "en-US",
		Timezone:            "UTC",
	}

	if err := s.repo.Create(user); err != nil {
		return nil, nil, err
	}

	if _, err := s.repo.FindOrCreateAddress(user.ID); err != nil {
		return nil, nil, err
	}
	if _, err := s.repo.FindOrCreatePreferences(user.ID); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueAuthTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}

	verifyToken, err := s.issuer.Issue(auth.PurposeVerifyEmail, user.ID)
	if err != nil {
		return nil, nil, err
	}

	expires := s.now().Add(s.issuer.Expiry(auth.PurposeVerifyEmail))
	user.EmailVerificationToken = verifyToken
	user.EmailVerificationExpires = &expires
	user.ProfileCompletion = Completion(user, false)

	if err := s.repo.Save(user); err != nil {
		return nil, nil, err
	}

	if err := s.mailer.SendVerificationMail(user.Username, user.Email, verifyToken); err != nil {
		return tokens, user, ErrVerificationMailSend
	}

	return tokens, user, nil
}

// CheckUsername reports availability of a normalized username.
func (s *Service) CheckUsername(username string) error {
	if _, err := s.repo.FindByUsername(strings.ToLower(username)); err == nil {
		return ErrUsernameTaken
	} else if err != ErrNotFound {
		return err
	}
	return nil
}

// CheckEmail reports availability of a normalized email address.
func (s *Service) CheckEmail(email string) error {
	if _, err := s.repo.FindByEmail(strings.ToLower(email)); err == nil {
		return ErrEmailTaken
	} else if err != ErrNotFound {
		return err
	}
	return nil
}

type LoginInput struct {
	Username  string
	Password  string
	IPAddress string
	Timezone  string
}

// Login runs the per-user security state machine: active and not
// suspended, soft-deleted accounts reactivated, the lock window enforced,
// the failed-attempt counter advanced on a bad password, and the lock
// unconditionally cleared on success.
func (s *Service) Login(input LoginInput) (*AuthTokens, error) {
	user, err := s.repo.FindByUsername(strings.ToLower(input.Username))
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrLoginUserNotFound
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if user.AccountStatus == database.AccountStatusSuspended {
		return nil, ErrAccountSuspended
	}

	if user.AccountStatus == database.AccountStatusDeleted {
		user.AccountStatus = database.AccountStatusActive
		if err := s.repo.Save(user); err != nil {
			return nil, err
		}
	}

	now := s.now()
	state := LockStateOf(user)

	if IsLocked(state, now) {
		return nil, AccountLockedError(RemainingLockMinutes(state, now))
	}

	if !utils.VerifyPassword(input.Password, user.Password) {
		lockFor := time.Duration(user.AccountLockDuration) * time.Minute
		RecordFailedAttempt(state, now, lockFor).ApplyTo(user)
		if err := s.repo.Save(user); err != nil {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}

	if input.Timezone != "" && user.Timezone != input.Timezone {
		user.Timezone = input.Timezone
	}

	if input.IPAddress != "" {
		if err := s.repo.UpsertLoginHistory(user.ID, input.IPAddress, now); err != nil {
			return nil, err
		}
		user.LastLoginIP = input.IPAddress
	}

	Unlock(state).ApplyTo(user)
	user.LastLogin = &now

	if err := s.repo.Save(user); err != nil {
		return nil, err
	}

	return s.issueAuthTokens(user.ID)
}

// VerifyEmail consumes a verification token and marks the address
// verified. Expired tokens are distinguished from malformed ones so the
// transport can answer 410 versus 404.
func (s *Service) VerifyEmail(token string) error {
	userID, err := s.issuer.Verify(auth.PurposeVerifyEmail, token)
	if err != nil {
		if err == auth.ErrTokenExpired {
			return ErrVerifyTokenExpired
		}
		return ErrInvalidToken
	}

	user, err := s.repo.FindByID(userID)
	if err != nil {
		if err == ErrNotFound {
			return ErrTokenUserNotFound
		}
		return err
	}

	if user.VerifyEmail {
		return ErrAlreadyVerified
	}

	user.VerifyEmail = true
	user.EmailVerificationToken = ""
	user.EmailVerificationExpires = nil

	return s.repo.Save(user)
}

// ResendVerification issues a fresh verification token, implicitly
// invalidating the previous one by overwrite, and mails it out.
func (s *Service) ResendVerification(userID uuid.UUID) error {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		if err == ErrNotFound {
			return ErrUserNotFound
		}
		return err
	}

	if user.VerifyEmail {
		return ErrAlreadyVerified
	}

	verifyToken, err := s.issuer.Issue(auth.PurposeVerifyEmail, user.ID)
	if err != nil {
		return err
	}

	expires := s.now().Add(s.issuer.Expiry(auth.PurposeVerifyEmail))
	user.EmailVerificationToken = verifyToken
	user.EmailVerificationExpires = &expires

	if err := s.repo.Save(user); err != nil {
		return err
	}

	if err := s.mailer.SendResendVerificationMail(user.Username, user.Email, verifyToken); err != nil {
		return ErrVerificationMailSend
	}

	return nil
}

// ForgotPassword issues a reset token for the account behind the email
// and mails it out.
func (s *Service) ForgotPassword(email string) error {
	user, err := s.repo.FindByEmail(strings.ToLower(email))
	if err != nil {
		if err == ErrNotFound {
			return ErrForgotUserNotFound
		}
		return err
	}

	resetToken, err := s.issuer.Issue(auth.PurposeResetPassword, user.ID)
	if err != nil {
		return err
	}

	expires := s.now().Add(s.issuer.Expiry(auth.PurposeResetPassword))
	user.PasswordResetToken = resetToken
	user.PasswordResetExpires = &expires

	if err := s.repo.Save(user); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetMail(user.Username, user.Email, resetToken); err != nil {
		return ErrResetMailSend
	}

	return nil
}

// ResetPassword validates the new password pair before ever decoding the
// token, then requires the token to match the stored one and the stored
// expiry to still be in the future.
func (s *Service) ResetPassword(token, newPassword, newPasswordAgain string) error {
	if !utils.PasswordValidation(newPassword) {
		return ErrInvalidPasswordFormat
	}

	if newPassword != newPasswordAgain {
		return ErrPasswordMismatch
	}

	userID, err := s.issuer.Verify(auth.PurposeResetPassword, token)
	if err != nil {
		if err == auth.ErrTokenExpired {
			return ErrResetTokenExpired
		}
		return ErrInvalidToken
	}

	user, err := s.repo.FindByID(userID)
	if err != nil {
		if err == ErrNotFound {
			return ErrTokenUserNotFound
		}
		return err
	}

	if user.PasswordResetToken != token {
		return ErrResetTokenMismatch
	}

	if user.PasswordResetExpires == nil || user.PasswordResetExpires.Before(s.now()) {
		return ErrResetTokenStale
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.Password = hash
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil

	return s.repo.Save(user)
}

// Refresh trades a valid refresh token for a fresh token pair.
func (s *Service) Refresh(token string) (*AuthTokens, error) {
	userID, err := s.issuer.Verify(auth.PurposeRefresh, token)
	if err != nil {
		return nil, ErrRefreshTokenInvalid
	}

	user, err := s.repo.FindByID(userID)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.issueAuthTokens(user.ID)
}

type ProfileUpdateInput struct {
	FirstName string
	LastName  string
	Gender    string
	Phone     string
	Timezone  string

	Street     string
	City       string
	State      string
	PostalCode string
	Country    string

	EmailNotifications *bool
	SMSNotifications   *bool
	PushNotifications  *bool
}

// UpdateProfile merges the provided fields into the user and its
// satellite records. Only non-empty values overwrite; notification flags
// are tri-state through pointers. Profile completion is recomputed.
func (s *Service) UpdateProfile(userID uuid.UUID, input ProfileUpdateInput) (*database.User, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	switch input.Gender {
	case "male", "female", "other":
		user.Gender = input.Gender
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Timezone != "" {
		user.Timezone = input.Timezone
	}

	address, err := s.repo.FindOrCreateAddress(user.ID)
	if err != nil {
		return nil, err
	}
	if input.Street != "" {
		address.Street = input.Street
	}
	if input.City != "" {
		address.City = input.City
	}
	if input.State != "" {
		address.State = input.State
	}
	if input.PostalCode != "" {
		address.PostalCode = input.PostalCode
	}
	if input.Country != "" {
		address.Country = input.Country
	}
	if err := s.repo.SaveAddress(address); err != nil {
		return nil, err
	}

	preferences, err := s.repo.FindOrCreatePreferences(user.ID)
	if err != nil {
		return nil, err
	}
	if input.EmailNotifications != nil {
		preferences.Email = *input.EmailNotifications
	}
	if input.SMSNotifications != nil {
		preferences.SMS = *input.SMSNotifications
	}
	if input.PushNotifications != nil {
		preferences.Push = *input.PushNotifications
	}
	if err := s.repo.SavePreferences(preferences); err != nil {
		return nil, err
	}

	user.ProfileCompletion = Completion(user, AddressHasData(address))

	if err := s.repo.Save(user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetProfile loads a user for display; sensitive fields are stripped by
// the model's JSON tags.
func (s *Service) GetProfile(userID uuid.UUID) (*database.User, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// SetProfilePicture stores the new picture reference and returns the
// previous one so the caller can evict the stale blob.
func (s *Service) SetProfilePicture(userID uuid.UUID, picture string) (string, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		if err == ErrNotFound {
			return "", ErrUserNotFound
		}
		return "", err
	}

	previous := user.ProfilePicture
	user.ProfilePicture = picture
	if err := s.refreshCompletion(user); err != nil {
		return "", err
	}

	return previous, s.repo.Save(user)
}

// ClearProfilePicture removes the picture reference and returns the
// previous one for blob eviction.
func (s *Service) ClearProfilePicture(userID uuid.UUID) (string, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		if err == ErrNotFound {
			return "", ErrUserNotFound
		}
		return "", err
	}

	previous := user.ProfilePicture
	user.ProfilePicture = ""
	if err := s.refreshCompletion(user); err != nil {
		return "", err
	}

	return previous, s.repo.Save(user)
}

func (s *Service) refreshCompletion(user *database.User) error {
	address, err := s.repo.FindAddress(user.ID)
	if err != nil && err != ErrNotFound {
		return err
	}
	user.ProfileCompletion = Completion(user, AddressHasData(address))
	return nil
}
