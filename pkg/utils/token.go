package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	appErrors "github.com/Despicable-at/robot-delivery-backend/pkg/errors"
)

// AccessClaims are carried by short-lived access tokens. They are
// self-verifying: no persistence lookup is needed to trust them.
type AccessClaims struct {
	AccountID uuid.UUID `json:"account_id"`
	Email     string    `json:"email"`
	jwt.RegisteredClaims
}

// RefreshClaims are carried by refresh tokens. A valid signature alone is not
// enough to trust a refresh token: a matching hash must also exist in the
// session registry.
type RefreshClaims struct {
	AccountID uuid.UUID `json:"account_id"`
	jwt.RegisteredClaims
}

func IssueAccessToken(accountID uuid.UUID, email, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		AccountID: accountID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func IssueRefreshToken(accountID uuid.UUID, secret string, ttl time.Duration) (string, error) {
	claims := RefreshClaims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessToken checks signature and expiry. Every failure mode collapses
// to the same error so callers cannot tell a forged token from an expired one.
func ParseAccessToken(tokenString, secret string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, appErrors.ErrInvalidToken
	}

	return claims, nil
}

func ParseRefreshToken(tokenString, secret string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, appErrors.ErrInvalidToken
	}

	return claims, nil
}

// GenerateVerificationCode returns a 6-digit numeric code suitable for
// sending by email.
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// GenerateResetToken returns a high-entropy opaque token for password reset
// links.
func GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
