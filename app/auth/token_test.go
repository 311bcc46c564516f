package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounthub/app/config"
)

func testConfig() *config.Config {
	return &config.Config{
		AccessTokenSecret:     "access-secret",
		AccessTokenExpiresIn:  60,
		RefreshTokenSecret:    "refresh-secret",
		RefreshTokenExpiresIn: 60,
		VerifyTokenSecret:     "verify-secret",
		VerifyTokenExpiresIn:  60,
		ResetTokenSecret:      "reset-secret",
		ResetTokenExpiresIn:   60,
	}
}

func TestIssueAndVerify(t *testing.T) {
	issuer, err := NewIssuer(testConfig())
	require.NoError(t, err)

	userID := uuid.New()

	for _, purpose := range []Purpose{PurposeAccess, PurposeRefresh, PurposeVerifyEmail, PurposeResetPassword} {
		token, err := issuer.Issue(purpose, userID)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		got, err := issuer.Verify(purpose, token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	}
}

func TestVerifyRejectsCrossPurpose(t *testing.T) {
	// A token issued for one workflow must never verify for another;
	// each purpose signs with its own secret.
	issuer, err := NewIssuer(testConfig())
	require.NoError(t, err)

	token, err := issuer.Issue(PurposeVerifyEmail, uuid.New())
	require.NoError(t, err)

	_, err = issuer.Verify(PurposeAccess, token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = issuer.Verify(PurposeResetPassword, token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.VerifyTokenExpiresIn = -5

	issuer, err := NewIssuer(cfg)
	require.NoError(t, err)

	token, err := issuer.Issue(PurposeVerifyEmail, uuid.New())
	require.NoError(t, err)

	_, err = issuer.Verify(PurposeVerifyEmail, token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyTamperedToken(t *testing.T) {
	issuer, err := NewIssuer(testConfig())
	require.NoError(t, err)

	token, err := issuer.Issue(PurposeAccess, uuid.New())
	require.NoError(t, err)

	_, err = issuer.Verify(PurposeAccess, token+"x")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = issuer.Verify(PurposeAccess, "not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestNewIssuerMissingSecret(t *testing.T) {
	cfg := testConfig()
	cfg.ResetTokenSecret = ""

	_, err := NewIssuer(cfg)
	assert.Error(t, err)
}
