package account

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a registered user of the robot delivery service.
// PasswordHash and RobotPINHash are one-way bcrypt hashes; the plaintext is
// never persisted. IsVerified gates login.
type Account struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PhoneNumber  *string
	OfficeID     *uuid.UUID
	PasswordHash string
	RobotPINHash *string
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Office is a delivery destination an account can be attached to.
type Office struct {
	ID        uuid.UUID
	Name      string
	Address   *string
	CreatedAt time.Time
}

// EmailVerification is a single-use, time-boxed code issued at signup.
// At most one unused, unexpired record per account is authoritative: the most
// recently created one. Once Used is set the record is permanently inert.
type EmailVerification struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	CodeHash  string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

func (v *EmailVerification) IsActive() bool {
	return !v.Used && time.Now().Before(v.ExpiresAt)
}

// PasswordReset follows the same single-use state machine as
// EmailVerification but carries a high-entropy random token instead of a
// human-readable code.
type PasswordReset struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

func (r *PasswordReset) IsActive() bool {
	return !r.Used && time.Now().Before(r.ExpiresAt)
}

// Session records one active refresh token. There is no used flag: a session
// ends by deletion (logout, bulk revocation) or by expiry.
type Session struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
