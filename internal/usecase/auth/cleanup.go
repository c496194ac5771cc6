package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Despicable-at/robot-delivery-backend/internal/logger"
)

// StartCleanupJob periodically prunes expired sessions and used or expired
// ephemeral credential records past the retention window. It runs until the
// context is cancelled.
func (s *Service) StartCleanupJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Credential cleanup job started",
		zap.Duration("interval", interval),
		zap.Duration("retention", s.config.Cleanup.Retention),
	)

	s.cleanupStaleRecords(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Credential cleanup job stopped")
			return
		case <-ticker.C:
			s.cleanupStaleRecords(ctx)
		}
	}
}

func (s *Service) cleanupStaleRecords(ctx context.Context) {
	retention := s.config.Cleanup.Retention

	if err := s.sessionRepo.DeleteExpired(ctx, retention); err != nil {
		logger.Error("Failed to delete expired sessions", zap.Error(err))
	}

	if err := s.credRepo.DeleteStale(ctx, retention); err != nil {
		logger.Error("Failed to delete stale credential records", zap.Error(err))
		return
	}

	logger.Debug("Stale credential records cleaned up",
		zap.Duration("older_than", retention),
	)
}
