package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Despicable-at/robot-delivery-backend/internal/domain/account"
	"github.com/Despicable-at/robot-delivery-backend/internal/infrastructure/database/postgres/models"
)

// SessionRepository implements account.SessionRepository
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *DB) account.SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *account.Session) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()

	dbModel := toSessionModel(s)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	s.ID = dbModel.ID
	s.CreatedAt = dbModel.CreatedAt

	return nil
}

// ListActive returns every unexpired session. Token hashes are salted, so
// callers resolve a presented secret by comparing against each row.
func (r *SessionRepository) ListActive(ctx context.Context) ([]*account.Session, error) {
	var dbModels []models.SessionModel
	err := r.db.DB.WithContext(ctx).
		Where("expires_at > NOW()").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]*account.Session, len(dbModels))
	for i, dbModel := range dbModels {
		sessions[i] = toSessionEntity(&dbModel)
	}

	return sessions, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&models.SessionModel{}, "id = ?", sessionID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrSessionNotFound
	}

	return nil
}

func (r *SessionRepository) DeleteAllForAccount(ctx context.Context, accountID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&models.SessionModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete sessions: %w", result.Error)
	}

	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, olderThan time.Duration) error {
	cutoffTime := time.Now().Add(-olderThan)
	result := r.db.DB.WithContext(ctx).
		Where("expires_at < ?", cutoffTime).
		Delete(&models.SessionModel{})

	return result.Error
}

func toSessionModel(s *account.Session) *models.SessionModel {
	return &models.SessionModel{
		ID:        s.ID,
		AccountID: s.AccountID,
		TokenHash: s.TokenHash,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
	}
}

func toSessionEntity(m *models.SessionModel) *account.Session {
	return &account.Session{
		ID:        m.ID,
		AccountID: m.AccountID,
		TokenHash: m.TokenHash,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}
