package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Despicable-at/robot-delivery-backend/internal/domain/account"
	"github.com/Despicable-at/robot-delivery-backend/internal/infrastructure/database/postgres/models"
)

// CredentialRepository implements account.CredentialRepository
type CredentialRepository struct {
	db *DB
}

// NewCredentialRepository creates a new ephemeral credential repository
func NewCredentialRepository(db *DB) account.CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) CreateVerification(ctx context.Context, v *account.EmailVerification) error {
	v.ID = uuid.New()
	v.CreatedAt = time.Now()
	v.Used = false

	dbModel := toVerificationModel(v)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create email verification: %w", err)
	}

	v.ID = dbModel.ID
	v.CreatedAt = dbModel.CreatedAt

	return nil
}

func (r *CredentialRepository) GetActiveVerification(ctx context.Context, accountID uuid.UUID) (*account.EmailVerification, error) {
	var dbModel models.EmailVerificationModel
	err := r.db.DB.WithContext(ctx).
		Where("account_id = ? AND used = false AND expires_at > NOW()", accountID).
		Order("created_at DESC").
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrVerificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get email verification: %w", err)
	}

	return toVerificationEntity(&dbModel), nil
}

// ConsumeVerification marks the record used and sets is_verified on the
// account inside one transaction. Already-consumed records are a no-op for
// the used flag but still flip the account, keeping the call idempotent.
func (r *CredentialRepository) ConsumeVerification(ctx context.Context, verificationID, accountID uuid.UUID) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.EmailVerificationModel{}).
			Where("id = ?", verificationID).
			Update("used", true).Error; err != nil {
			return fmt.Errorf("failed to consume verification: %w", err)
		}

		result := tx.Model(&models.AccountModel{}).
			Where("id = ?", accountID).
			Updates(map[string]interface{}{
				"is_verified": true,
				"updated_at":  time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to mark account verified: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return account.ErrAccountNotFound
		}

		return nil
	})
}

func (r *CredentialRepository) CreateReset(ctx context.Context, reset *account.PasswordReset) error {
	reset.ID = uuid.New()
	reset.CreatedAt = time.Now()
	reset.Used = false

	dbModel := toResetModel(reset)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create password reset: %w", err)
	}

	reset.ID = dbModel.ID
	reset.CreatedAt = dbModel.CreatedAt

	return nil
}

func (r *CredentialRepository) ListActiveResets(ctx context.Context) ([]*account.PasswordReset, error) {
	var dbModels []models.PasswordResetModel
	err := r.db.DB.WithContext(ctx).
		Where("used = false AND expires_at > NOW()").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list password resets: %w", err)
	}

	resets := make([]*account.PasswordReset, len(dbModels))
	for i, dbModel := range dbModels {
		resets[i] = toResetEntity(&dbModel)
	}

	return resets, nil
}

// ConsumeResetAndRevoke runs the reset epilogue atomically: mark the record
// used, replace the password hash and drop every session for the account.
func (r *CredentialRepository) ConsumeResetAndRevoke(ctx context.Context, resetID, accountID uuid.UUID, passwordHash string) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PasswordResetModel{}).
			Where("id = ?", resetID).
			Update("used", true).Error; err != nil {
			return fmt.Errorf("failed to consume reset: %w", err)
		}

		result := tx.Model(&models.AccountModel{}).
			Where("id = ?", accountID).
			Updates(map[string]interface{}{
				"password_hash": passwordHash,
				"updated_at":    time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update password: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return account.ErrAccountNotFound
		}

		if err := tx.Where("account_id = ?", accountID).
			Delete(&models.SessionModel{}).Error; err != nil {
			return fmt.Errorf("failed to revoke sessions: %w", err)
		}

		return nil
	})
}

// DeleteStale prunes used or expired verification and reset rows past the
// retention window. Live records are never touched.
func (r *CredentialRepository) DeleteStale(ctx context.Context, olderThan time.Duration) error {
	cutoffTime := time.Now().Add(-olderThan)

	if err := r.db.DB.WithContext(ctx).
		Where("expires_at < ? OR (used = true AND created_at < ?)", cutoffTime, cutoffTime).
		Delete(&models.EmailVerificationModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete stale verifications: %w", err)
	}

	if err := r.db.DB.WithContext(ctx).
		Where("expires_at < ? OR (used = true AND created_at < ?)", cutoffTime, cutoffTime).
		Delete(&models.PasswordResetModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete stale resets: %w", err)
	}

	return nil
}

func toVerificationModel(v *account.EmailVerification) *models.EmailVerificationModel {
	return &models.EmailVerificationModel{
		ID:        v.ID,
		AccountID: v.AccountID,
		CodeHash:  v.CodeHash,
		ExpiresAt: v.ExpiresAt,
		Used:      v.Used,
		CreatedAt: v.CreatedAt,
	}
}

func toVerificationEntity(m *models.EmailVerificationModel) *account.EmailVerification {
	return &account.EmailVerification{
		ID:        m.ID,
		AccountID: m.AccountID,
		CodeHash:  m.CodeHash,
		ExpiresAt: m.ExpiresAt,
		Used:      m.Used,
		CreatedAt: m.CreatedAt,
	}
}

func toResetModel(r *account.PasswordReset) *models.PasswordResetModel {
	return &models.PasswordResetModel{
		ID:        r.ID,
		AccountID: r.AccountID,
		TokenHash: r.TokenHash,
		ExpiresAt: r.ExpiresAt,
		Used:      r.Used,
		CreatedAt: r.CreatedAt,
	}
}

func toResetEntity(m *models.PasswordResetModel) *account.PasswordReset {
	return &account.PasswordReset{
		ID:        m.ID,
		AccountID: m.AccountID,
		TokenHash: m.TokenHash,
		ExpiresAt: m.ExpiresAt,
		Used:      m.Used,
		CreatedAt: m.CreatedAt,
	}
}
