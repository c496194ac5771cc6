package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Despicable-at/robot-delivery-backend/internal/domain/account"
	"github.com/Despicable-at/robot-delivery-backend/internal/infrastructure/database/postgres/models"
)

// AccountRepository implements account.Repository
type AccountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) account.Repository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, acc *account.Account) error {
	acc.ID = uuid.New()
	acc.CreatedAt = time.Now()
	acc.UpdatedAt = time.Now()

	dbModel := toAccountModel(acc)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		errStr := strings.ToLower(err.Error())
		if strings.Contains(errStr, "duplicate key") && strings.Contains(errStr, "email") {
			return account.ErrEmailTaken
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	acc.ID = dbModel.ID
	acc.CreatedAt = dbModel.CreatedAt
	acc.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	var dbModel models.AccountModel
	err := r.db.DB.WithContext(ctx).Where("email = ?", email).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return toAccountEntity(&dbModel), nil
}

func (r *AccountRepository) GetByID(ctx context.Context, accountID uuid.UUID) (*account.Account, error) {
	var dbModel models.AccountModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", accountID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return toAccountEntity(&dbModel), nil
}

func (r *AccountRepository) GetAll(ctx context.Context) ([]*account.Account, error) {
	var dbModels []models.AccountModel
	err := r.db.DB.WithContext(ctx).Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}

	accounts := make([]*account.Account, len(dbModels))
	for i, dbModel := range dbModels {
		accounts[i] = toAccountEntity(&dbModel)
	}

	return accounts, nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, accountID uuid.UUID, passwordHash string) error {
	result := r.db.DB.WithContext(ctx).Model(&models.AccountModel{}).
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

	return nil
}

func (r *AccountRepository) UpdateRobotPIN(ctx context.Context, accountID uuid.UUID, pinHash string) error {
	result := r.db.DB.WithContext(ctx).Model(&models.AccountModel{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"robot_pin_hash": pinHash,
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update robot PIN: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

func toAccountModel(a *account.Account) *models.AccountModel {
	return &models.AccountModel{
		ID:           a.ID,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Email:        a.Email,
		PhoneNumber:  a.PhoneNumber,
		OfficeID:     a.OfficeID,
		PasswordHash: a.PasswordHash,
		RobotPINHash: a.RobotPINHash,
		IsVerified:   a.IsVerified,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toAccountEntity(m *models.AccountModel) *account.Account {
	return &account.Account{
		ID:           m.ID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		PhoneNumber:  m.PhoneNumber,
		OfficeID:     m.OfficeID,
		PasswordHash: m.PasswordHash,
		RobotPINHash: m.RobotPINHash,
		IsVerified:   m.IsVerified,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
