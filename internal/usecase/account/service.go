package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Despicable-at/robot-delivery-backend/internal/config"
	domainAccount "github.com/Despicable-at/robot-delivery-backend/internal/domain/account"
	"github.com/Despicable-at/robot-delivery-backend/internal/logger"
	appErrors "github.com/Despicable-at/robot-delivery-backend/pkg/errors"
	"github.com/Despicable-at/robot-delivery-backend/pkg/utils"
)

// Service implements account profile use cases
type Service struct {
	accountRepo domainAccount.Repository
	config      *config.Config
}

// NewService creates a new account service
func NewService(accountRepo domainAccount.Repository, cfg *config.Config) *Service {
	return &Service{
		accountRepo: accountRepo,
		config:      cfg,
	}
}

func (s *Service) GetProfile(ctx context.Context, accountID uuid.UUID) (*AccountResponse, error) {
	acc, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return ToAccountResponse(acc), nil
}

func (s *Service) GetAllAccounts(ctx context.Context) ([]*AccountResponse, error) {
	accounts, err := s.accountRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var responses []*AccountResponse
	for _, acc := range accounts {
		responses = append(responses, ToAccountResponse(acc))
	}

	return responses, nil
}

// UpdateRobotPIN validates and stores a new robot access PIN. The PIN is
// hashed like every other account secret.
func (s *Service) UpdateRobotPIN(ctx context.Context, accountID uuid.UUID, req *UpdatePINRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePIN(req.PIN); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", err.Error(), nil)
	}

	pinHash, err := utils.HashSecret(req.PIN, s.config.Auth.HashCost)
	if err != nil {
		return fmt.Errorf("failed to hash PIN: %w", err)
	}

	if err := s.accountRepo.UpdateRobotPIN(ctx, accountID, pinHash); err != nil {
		return err
	}

	logger.Info("Robot PIN updated",
		zap.String("account_id", accountID.String()),
		zap.String("event", "robot_pin_updated"),
	)

	return nil
}
