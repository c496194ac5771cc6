package robot

import (
	"context"
	"time"

	"go.uber.org/zap"

	domainRobot "github.com/Despicable-at/robot-delivery-backend/internal/domain/robot"
	"github.com/Despicable-at/robot-delivery-backend/internal/logger"
	appErrors "github.com/Despicable-at/robot-delivery-backend/pkg/errors"
	"github.com/Despicable-at/robot-delivery-backend/pkg/utils"
)

type UpdateStatusRequest struct {
	Status string  `json:"status" validate:"required,robot_status"`
	Notes  *string `json:"notes" validate:"omitempty,max=1000"`
}

type StatusResponse struct {
	Status    string    `json:"status"`
	Notes     *string   `json:"notes"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service implements robot status use cases
type Service struct {
	robotRepo domainRobot.Repository
}

// NewService creates a new robot service
func NewService(robotRepo domainRobot.Repository) *Service {
	return &Service{robotRepo: robotRepo}
}

func (s *Service) GetStatus(ctx context.Context) (*StatusResponse, error) {
	state, err := s.robotRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	return &StatusResponse{
		Status:    string(state.Status),
		Notes:     state.Notes,
		UpdatedAt: state.UpdatedAt,
	}, nil
}

func (s *Service) UpdateStatus(ctx context.Context, req *UpdateStatusRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	status := domainRobot.Status(req.Status)
	if !status.Valid() {
		return appErrors.ErrInvalidRobotStatus
	}

	if err := s.robotRepo.Update(ctx, status, req.Notes); err != nil {
		return err
	}

	logger.Info("Robot status updated",
		zap.String("status", req.Status),
		zap.String("event", "robot_status_updated"),
	)

	return nil
}
