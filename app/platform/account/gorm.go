package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"accounthub/app/database"
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository returns a Repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(u *database.User) error {
	return r.db.Create(u).Error
}

func (r *gormRepository) Save(u *database.User) error {
	return r.db.Save(u).Error
}

func (r *gormRepository) findUser(query string, args ...any) (*database.User, error) {
	var user database.User

	result := r.db.Where(query, args...).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (r *gormRepository) FindByID(id uuid.UUID) (*database.User, error) {
	return r.findUser("id = ?", id)
}

func (r *gormRepository) FindByUsername(username string) (*database.User, error) {
	return r.findUser("username = ?", username)
}

func (r *gormRepository) FindByEmail(email string) (*database.User, error) {
	return r.findUser("email = ?", email)
}

func (r *gormRepository) FindAddress(userID uuid.UUID) (*database.Address, error) {
	var address database.Address

	result := r.db.First(&address, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &address, nil
}

func (r *gormRepository) FindOrCreateAddress(userID uuid.UUID) (*database.Address, error) {
	var address database.Address

	result := r.db.Where("user_id = ?", userID).FirstOrCreate(&address, database.Address{UserID: userID})
	if result.Error != nil {
		return nil, result.Error
	}
	return &address, nil
}

func (r *gormRepository) SaveAddress(a *database.Address) error {
	return r.db.Save(a).Error
}

func (r *gormRepository) FindOrCreatePreferences(userID uuid.UUID) (*database.NotificationPreferences, error) {
	var preferences database.NotificationPreferences

	result := r.db.Where("user_id = ?", userID).FirstOrCreate(&preferences, database.NotificationPreferences{UserID: userID})
	if result.Error != nil {
		return nil, result.Error
	}
	return &preferences, nil
}

func (r *gormRepository) SavePreferences(p *database.NotificationPreferences) error {
	return r.db.Save(p).Error
}

func (r *gormRepository) UpsertLoginHistory(userID uuid.UUID, ipAddress string, loginTime time.Time) error {
	var row database.LoginHistory

	result := r.db.Where("user_id = ? AND ip_address = ?", userID, ipAddress).
		FirstOrCreate(&row, database.LoginHistory{UserID: userID, IPAddress: ipAddress})
	if result.Error != nil {
		return result.Error
	}

	row.LoginTime = loginTime
	return r.db.Save(&row).Error
}

func (r *gormRepository) FindUnverifiedExpired(now time.Time) ([]database.User, error) {
	var users []database.User

	result := r.db.
		Where("verify_email = ? AND email_verification_expires < ? AND account_status = ?",
			false, now, database.AccountStatusActive).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (r *gormRepository) FindUnverifiedExpiring(now, deadline time.Time) ([]database.User, error) {
	var users []database.User

	result := r.db.
		Where("verify_email = ? AND email_verification_expires > ? AND email_verification_expires < ? AND account_status = ?",
			false, now, deadline, database.AccountStatusActive).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}
