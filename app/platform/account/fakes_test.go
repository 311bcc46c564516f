package account

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"accounthub/app/database"
)

// fakeRepo is an in-memory Repository. Lookups return copies so that, as
// with a real database, mutations only stick after Save.
type fakeRepo struct {
	users       map[uuid.UUID]*database.User
	addresses   map[uuid.UUID]*database.Address
	preferences map[uuid.UUID]*database.NotificationPreferences
	history     map[string]*database.LoginHistory
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:       map[uuid.UUID]*database.User{},
		addresses:   map[uuid.UUID]*database.Address{},
		preferences: map[uuid.UUID]*database.NotificationPreferences{},
		history:     map[string]*database.LoginHistory{},
	}
}

func (r *fakeRepo) Create(u *database.User) error {
	return r.Save(u)
}

func (r *fakeRepo) Save(u *database.User) error {
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *fakeRepo) FindByID(id uuid.UUID) (*database.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeRepo) FindByUsername(username string) (*database.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) FindByEmail(email string) (*database.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) FindAddress(userID uuid.UUID) (*database.Address, error) {
	a, ok := r.addresses[userID]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *fakeRepo) FindOrCreateAddress(userID uuid.UUID) (*database.Address, error) {
	if a, ok := r.addresses[userID]; ok {
		clone := *a
		return &clone, nil
	}
	a := &database.Address{ID: uuid.New(), UserID: userID}
	r.addresses[userID] = a
	clone := *a
	return &clone, nil
}

func (r *fakeRepo) SaveAddress(a *database.Address) error {
	clone := *a
	r.addresses[a.UserID] = &clone
	return nil
}

func (r *fakeRepo) FindOrCreatePreferences(userID uuid.UUID) (*database.NotificationPreferences, error) {
	if p, ok := r.preferences[userID]; ok {
		clone := *p
		return &clone, nil
	}
	p := &database.NotificationPreferences{ID: uuid.New(), UserID: userID, Email: true, Push: true}
	r.preferences[userID] = p
	clone := *p
	return &clone, nil
}

func (r *fakeRepo) SavePreferences(p *database.NotificationPreferences) error {
	clone := *p
	r.preferences[p.UserID] = &clone
	return nil
}

func (r *fakeRepo) UpsertLoginHistory(userID uuid.UUID, ipAddress string, loginTime time.Time) error {
	key := fmt.Sprintf("%s|%s", userID, ipAddress)
	if row, ok := r.history[key]; ok {
		row.LoginTime = loginTime
		return nil
	}
	r.history[key] = &database.LoginHistory{
		ID:        uuid.New(),
		UserID:    userID,
		IPAddress: ipAddress,
		LoginTime: loginTime,
	}
	return nil
}

func (r *fakeRepo) FindUnverifiedExpired(now time.Time) ([]database.User, error) {
	var users []database.User
	for _, u := range r.users {
		if !u.VerifyEmail && u.EmailVerificationExpires != nil &&
			u.EmailVerificationExpires.Before(now) &&
			u.AccountStatus == database.AccountStatusActive {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (r *fakeRepo) FindUnverifiedExpiring(now, deadline time.Time) ([]database.User, error) {
	var users []database.User
	for _, u := range r.users {
		if !u.VerifyEmail && u.EmailVerificationExpires != nil &&
			u.EmailVerificationExpires.After(now) &&
			u.EmailVerificationExpires.Before(deadline) &&
			u.AccountStatus == database.AccountStatusActive {
			users = append(users, *u)
		}
	}
	return users, nil
}

// fakeMailer records sends and can be told to fail per address.
type fakeMailer struct {
	verifications []string
	resends       []string
	resets        []string
	suspensions   []string
	warnings      []string
	failFor       map[string]bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failFor: map[string]bool{}}
}

func (m *fakeMailer) send(bucket *[]string, email string) error {
	if m.failFor[email] {
		return errors.New("mail delivery failed")
	}
	*bucket = append(*bucket, email)
	return nil
}

func (m *fakeMailer) SendVerificationMail(username, email, token string) error {
	return m.send(&m.verifications, email)
}

func (m *fakeMailer) SendResendVerificationMail(username, email, token string) error {
	return m.send(&m.resends, email)
}

func (m *fakeMailer) SendPasswordResetMail(username, email, token string) error {
	return m.send(&m.resets, email)
}

func (m *fakeMailer) SendSuspensionMail(username, email string) error {
	return m.send(&m.suspensions, email)
}

func (m *fakeMailer) SendSuspensionWarningMail(username, email, token string) error {
	return m.send(&m.warnings, email)
}
