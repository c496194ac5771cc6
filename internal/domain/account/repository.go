package account

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines persistence operations on accounts.
type Repository interface {
	Create(ctx context.Context, acc *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, accountID uuid.UUID) (*Account, error)
	GetAll(ctx context.Context) ([]*Account, error)
	UpdatePassword(ctx context.Context, accountID uuid.UUID, passwordHash string) error
	UpdateRobotPIN(ctx context.Context, accountID uuid.UUID, pinHash string) error
}

// CredentialRepository manages the ephemeral single-use artifacts: email
// verification codes and password reset tokens. Consume operations are
// transactional with their dependent state change so a crash cannot leave a
// code consumed but the account unverified, or a password changed with old
// sessions still valid.
type CredentialRepository interface {
	CreateVerification(ctx context.Context, v *EmailVerification) error
	// GetActiveVerification returns the most recently created unused,
	// unexpired verification for the account.
	GetActiveVerification(ctx context.Context, accountID uuid.UUID) (*EmailVerification, error)
	// ConsumeVerification marks the record used and flips the account to
	// verified in a single transaction.
	ConsumeVerification(ctx context.Context, verificationID, accountID uuid.UUID) error

	CreateReset(ctx context.Context, r *PasswordReset) error
	// ListActiveResets returns every unused, unexpired reset record across
	// all accounts. Reset tokens are salted-hashed, so resolution is a scan
	// plus hash comparison by the caller.
	ListActiveResets(ctx context.Context) ([]*PasswordReset, error)
	// ConsumeResetAndRevoke marks the record used, replaces the account's
	// password hash and deletes every session for the account in a single
	// transaction.
	ConsumeResetAndRevoke(ctx context.Context, resetID, accountID uuid.UUID, passwordHash string) error

	DeleteStale(ctx context.Context, olderThan time.Duration) error
}

// SessionRepository is the refresh-token registry. Lookup by presented secret
// cannot be indexed (hashes are salted), so ListActive feeds a
// scan-and-compare loop in the service layer.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	ListActive(ctx context.Context) ([]*Session, error)
	Delete(ctx context.Context, sessionID uuid.UUID) error
	DeleteAllForAccount(ctx context.Context, accountID uuid.UUID) error
	DeleteExpired(ctx context.Context, olderThan time.Duration) error
}
