package services

import (
	"context"

	"github.com/tallara/ozquiz/internal/errors"
	"github.com/tallara/ozquiz/internal/logger"
	"github.com/tallara/ozquiz/internal/models"
	"github.com/tallara/ozquiz/internal/repository"
)

type activityService struct {
	xpLog repository.XPLogRepository
}

// NewActivityService creates an ActivityReader over the XP audit log.
func NewActivityService(xpLog repository.XPLogRepository) ActivityReader {
	return &activityService{xpLog: xpLog}
}

func (s *activityService) RecentActivity(ctx context.Context, profileID int64, limit int) ([]models.XPLogEntry, error) {
	log := logger.FromContext(ctx)

	entries, err := s.xpLog.RecentByProfile(ctx, profileID, limit)
	if err != nil {
		log.Error("failed to load recent activity: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return entries, nil
}
