package database

import (
	"time"

	"github.com/google/uuid"
)

// Account status markers. "deleted" is a soft marker, reversible on the
// next successful login.
const (
	AccountStatusActive    = "active"
	AccountStatusSuspended = "suspended"
	AccountStatusDeleted   = "deleted"
)

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// User represents a user account and its security state.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Password  string    `json:"-"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Gender    string    `json:"gender" gorm:"default:'other'"`
	Phone     string    `json:"phone"`

	VerifyEmail              bool       `json:"verifyEmail" gorm:"default:false"`
	EmailVerificationToken   string     `json:"-"`
	EmailVerificationExpires *time.Time `json:"-"`
	PasswordResetToken       string     `json:"-"`
	PasswordResetExpires     *time.Time `json:"-"`

	Role          string `json:"role" gorm:"default:'user'"`
	IsActive      bool   `json:"isActive" gorm:"default:true"`
	AccountStatus string `json:"accountStatus" gorm:"default:'active'"`

	FailedLoginAttempts        int        `json:"-" gorm:"default:0"`
	FailedLoginAttemptsHistory TimeArray  `json:"-" gorm:"type:jsonb"`
	AccountLocked              bool       `json:"-" gorm:"default:false"`
	LockUntil                  *time.Time `json:"-"`
	AccountLockDuration        int        `json:"-" gorm:"default:1"` // minutes

	LastLogin         *time.Time `json:"lastLogin"`
	LastLoginIP       string     `json:"-"`
	ProfilePicture    string     `json:"profilePicture"`
	ProfileCompletion int        `json:"profileCompletion" gorm:"default:0"`
	Language          string     `json:"language" gorm:"default:'en-US'"`
	Timezone          string     `json:"timezone" gorm:"default:'UTC'"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) TableName() string {
	return "account.user"
}

// Address is a 1:1 satellite record, lazily created on first write.
type Address struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postalCode"`
	Country    string    `json:"country"`
}

func (a *Address) TableName() string {
	return "account.address"
}

// NotificationPreferences is a 1:1 satellite record, lazily created on
// first write.
type NotificationPreferences struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex"`
	Email  bool      `json:"email" gorm:"default:true"`
	SMS    bool      `json:"sms" gorm:"default:false"`
	Push   bool      `json:"push" gorm:"default:true"`
}

func (n *NotificationPreferences) TableName() string {
	return "account.notification_preferences"
}

// LoginHistory keeps one row per distinct (user, ip) pair. The timestamp
// is refreshed in place on repeat logins from the same address.
type LoginHistory struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	IPAddress string    `json:"ip_address"`
	LoginTime time.Time `json:"login_time"`
}

func (lh *LoginHistory) TableName() string {
	return "account.login_history"
}
