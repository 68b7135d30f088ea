package services

import (
	"context"

	"github.com/tallara/ozquiz/internal/errors"
	"github.com/tallara/ozquiz/internal/logger"
	"github.com/tallara/ozquiz/internal/models"
	"github.com/tallara/ozquiz/internal/repository"
)

// SocialService handles the friend and battle events that feed
// achievements
type SocialService interface {
	// AcceptFriend records a friend acceptance and returns any newly
	// unlocked achievement names.
	AcceptFriend(ctx context.Context, profileID int64) ([]string, error)
	RecordBattleResult(ctx context.Context, profileID int64, won bool) ([]string, error)
}

type socialService struct {
	profiles     repository.ProfileRepository
	achievements AchievementService
}

// NewSocialService creates a new SocialService
func NewSocialService(profiles repository.ProfileRepository, achievements AchievementService) SocialService {
	return &socialService{profiles: profiles, achievements: achievements}
}

func (s *socialService) AcceptFriend(ctx context.Context, profileID int64) ([]string, error) {
	log := logger.FromContext(ctx)
	log.Info("friend accepted: profile_id=%d", profileID)

	if err := s.requireProfile(ctx, profileID); err != nil {
		return nil, err
	}
	return s.achievements.Evaluate(ctx, profileID, models.AchievementCategoryFriend, models.AchievementContext{})
}

func (s *socialService) RecordBattleResult(ctx context.Context, profileID int64, won bool) ([]string, error) {
	log := logger.FromContext(ctx)
	log.Info("battle finished: profile_id=%d, won=%t", profileID, won)

	if err := s.requireProfile(ctx, profileID); err != nil {
		return nil, err
	}
	return s.achievements.Evaluate(ctx, profileID, models.AchievementCategoryBattle, models.AchievementContext{Won: won})
}

func (s *socialService) requireProfile(ctx context.Context, profileID int64) error {
	profile, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if profile == nil {
		return errors.NewNotFoundError("profile", profileID)
	}
	return nil
}
