package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt rejects inputs longer than 72 bytes. Secrets past that limit, such
// as refresh JWTs, are reduced to a fixed-length digest before hashing. The
// same reduction must apply on the compare path.
func normalizeSecret(secret string) []byte {
	if len(secret) <= 72 {
		return []byte(secret)
	}
	sum := sha256.Sum256([]byte(secret))
	return []byte(hex.EncodeToString(sum[:]))
}

// HashSecret applies a salted bcrypt hash to an opaque secret: passwords,
// robot PINs, verification codes, reset tokens and refresh tokens are all
// stored this way, never as plaintext.
func HashSecret(secret string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword(normalizeSecret(secret), cost)
	return string(bytes), err
}

// CheckSecret compares a candidate secret against a stored bcrypt hash.
// Malformed hashes and mismatches both report false.
func CheckSecret(hashedSecret, secret string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedSecret), normalizeSecret(secret))
	return err == nil
}

func ValidatePassword(password string) error {
	var (
		hasMinLength = false
		hasUpper     = false
		hasLower     = false
		hasNumber    = false
	)

	if len(password) >= 8 {
		hasMinLength = true
	}

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if !hasMinLength || !hasUpper || !hasLower || !hasNumber {
		return errors.New("password must be at least 8 characters and contain uppercase, " +
			"lowercase and number")
	}

	return nil
}

func ValidatePIN(pin string) error {
	if len(pin) < 4 || len(pin) > 6 {
		return errors.New("PIN must be 4 to 6 digits")
	}
	for _, char := range pin {
		if !unicode.IsDigit(char) {
			return errors.New("PIN must contain digits only")
		}
	}
	return nil
}
