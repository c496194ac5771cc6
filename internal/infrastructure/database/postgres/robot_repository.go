package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Despicable-at/robot-delivery-backend/internal/domain/robot"
	"github.com/Despicable-at/robot-delivery-backend/internal/infrastructure/database/postgres/models"
)

// RobotRepository implements robot.Repository over the singleton status row
type RobotRepository struct {
	db *DB
}

// NewRobotRepository creates a new robot state repository
func NewRobotRepository(db *DB) robot.Repository {
	return &RobotRepository{db: db}
}

func (r *RobotRepository) Get(ctx context.Context) (*robot.State, error) {
	var dbModel models.RobotStateModel
	err := r.db.DB.WithContext(ctx).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, robot.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get robot state: %w", err)
	}

	return &robot.State{
		ID:        dbModel.ID,
		Status:    robot.Status(dbModel.Status),
		Notes:     dbModel.Notes,
		UpdatedAt: dbModel.UpdatedAt,
	}, nil
}

func (r *RobotRepository) Update(ctx context.Context, status robot.Status, notes *string) error {
	result := r.db.DB.WithContext(ctx).Model(&models.RobotStateModel{}).
		Where("id = ?", 1).
		Updates(map[string]interface{}{
			"status":     string(status),
			"notes":      notes,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update robot state: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return robot.ErrStateNotFound
	}

	return nil
}
