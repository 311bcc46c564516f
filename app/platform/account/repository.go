package account

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"accounthub/app/database"
)

// ErrNotFound is returned by repository lookups that match nothing.
var ErrNotFound = errors.New("record not found")

// Repository is the sole persistence boundary for account state.
type Repository interface {
	Create(u *database.User) error
	Save(u *database.User) error
	FindByID(id uuid.UUID) (*database.User, error)
	FindByUsername(username string) (*database.User, error)
	FindByEmail(email string) (*database.User, error)

	FindAddress(userID uuid.UUID) (*database.Address, error)
	FindOrCreateAddress(userID uuid.UUID) (*database.Address, error)
	SaveAddress(a *database.Address) error

	FindOrCreatePreferences(userID uuid.UUID) (*database.NotificationPreferences, error)
	SavePreferences(p *database.NotificationPreferences) error

	// UpsertLoginHistory keeps one row per (user, ip) pair, refreshing
	// the login time in place on repeat logins from the same address.
	UpsertLoginHistory(userID uuid.UUID, ipAddress string, loginTime time.Time) error

	// FindUnverifiedExpired selects active users whose verification
	// window has closed without the email being verified.
	FindUnverifiedExpired(now time.Time) ([]database.User, error)
	// FindUnverifiedExpiring selects active unverified users whose
	// verification window closes after now but before deadline.
	FindUnverifiedExpiring(now, deadline time.Time) ([]database.User, error)
}
