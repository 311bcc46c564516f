package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"accounthub/app/config"
)

// Purpose scopes a bearer token to one workflow. Each purpose signs with
// its own secret, so a token issued for one purpose never verifies for
// another.
type Purpose string

const (
	PurposeAccess        Purpose = "access"
	PurposeRefresh       Purpose = "refresh"
	PurposeVerifyEmail   Purpose = "verify-email"
	PurposeResetPassword Purpose = "reset-password"
)

var (
	// ErrTokenExpired marks a well-formed, correctly signed token whose
	// expiry has passed. Callers branch on this to return 410 rather
	// than 404.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid marks a malformed or wrongly signed token.
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type purposeConfig struct {
	secret []byte
	expiry time.Duration
}

// Issuer signs and verifies the four purpose-scoped bearer tokens.
type Issuer struct {
	purposes map[Purpose]purposeConfig
}

func NewIssuer(cfg *config.Config) (*Issuer, error) {
	issuer := &Issuer{
		purposes: map[Purpose]purposeConfig{
			PurposeAccess:        {secret: []byte(cfg.AccessTokenSecret), expiry: cfg.AccessTokenExpiry()},
			PurposeRefresh:       {secret: []byte(cfg.RefreshTokenSecret), expiry: cfg.RefreshTokenExpiry()},
			PurposeVerifyEmail:   {secret: []byte(cfg.VerifyTokenSecret), expiry: cfg.VerifyTokenExpiry()},
			PurposeResetPassword: {secret: []byte(cfg.ResetTokenSecret), expiry: cfg.ResetTokenExpiry()},
		},
	}

	for purpose, pc := range issuer.purposes {
		if len(pc.secret) == 0 {
			return nil, fmt.Errorf("missing %s token secret", purpose)
		}
	}

	return issuer, nil
}

func (i *Issuer) Issue(purpose Purpose, userID uuid.UUID) (string, error) {
	pc, ok := i.purposes[purpose]
	if !ok {
		return "", fmt.Errorf("unknown token purpose: %s", purpose)
	}

	now := time.Now()
	claims := Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(pc.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(pc.secret)
}

func (i *Issuer) Verify(purpose Purpose, token string) (uuid.UUID, error) {
	pc, ok := i.purposes[purpose]
	if !ok {
		return uuid.Nil, fmt.Errorf("unknown token purpose: %s", purpose)
	}

	claims := Claims{}
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return pc.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}

	return userID, nil
}

// Expiry returns the configured lifetime for a purpose, used to stamp the
// stored verification and reset expiries alongside the issued token.
func (i *Issuer) Expiry(purpose Purpose) time.Duration {
	return i.purposes[purpose].expiry
}
