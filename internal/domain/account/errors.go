package account

import "errors"

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already registered")

	ErrVerificationNotFound = errors.New("no active verification record")
	ErrSessionNotFound      = errors.New("session not found")
)
