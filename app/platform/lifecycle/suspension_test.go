package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounthub/app/auth"
	"accounthub/app/config"
	"accounthub/app/platform/account"
)

// A registered account that never verifies its email ends up suspended
// by the sweep and can no longer log in, even with valid credentials.
func TestUnverifiedAccountEndsUpSuspended(t *testing.T) {
	cfg := &config.Config{
		AccessTokenSecret:     "access-secret",
		AccessTokenExpiresIn:  60,
		RefreshTokenSecret:    "refresh-secret",
		RefreshTokenExpiresIn: 60 * 24 * 30,
		VerifyTokenSecret:     "verify-secret",
		VerifyTokenExpiresIn:  60 * 24 * 3,
		ResetTokenSecret:      "reset-secret",
		ResetTokenExpiresIn:   60,
		AccountLockDuration:   1,
	}
	issuer, err := auth.NewIssuer(cfg)
	require.NoError(t, err)

	repo := newSweepRepo()
	mailer := newSweepMailer()
	svc := account.NewServiceWith(repo, issuer, mailer, cfg.AccountLockDuration)
	sweeper := NewSweeperWith(repo, mailer)

	_, user, err := svc.Register(account.RegisterInput{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "Secret123",
	})
	require.NoError(t, err)

	_, err = svc.Login(account.LoginInput{Username: "jdoe", Password: "Secret123"})
	require.NoError(t, err)

	// the verification window elapses without the user acting
	past := time.Now().Add(-time.Hour)
	repo.users[user.ID].EmailVerificationExpires = &past

	count, err := sweeper.SuspendExpired(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"jdoe@example.com"}, mailer.suspensions)

	_, err = svc.Login(account.LoginInput{Username: "jdoe", Password: "Secret123"})
	assert.Equal(t, account.ErrAccountSuspended, err)
}
