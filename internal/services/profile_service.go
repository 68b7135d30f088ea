package services

import (
	"context"
	"strings"

	"github.com/tallara/ozquiz/internal/errors"
	"github.com/tallara/ozquiz/internal/jobs"
	"github.com/tallara/ozquiz/internal/logger"
	"github.com/tallara/ozquiz/internal/models"
	"github.com/tallara/ozquiz/internal/repository"
)

// ProfileService manages player profiles
type ProfileService interface {
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	GetOrCreate(ctx context.Context, username string) (*models.Profile, error)
	ListProfiles(ctx context.Context) ([]models.Profile, error)
}

type profileService struct {
	profiles repository.ProfileRepository
	queue    jobs.JobQueue
}

// NewProfileService creates a new ProfileService
func NewProfileService(profiles repository.ProfileRepository, queue jobs.JobQueue) ProfileService {
	return &profileService{profiles: profiles, queue: queue}
}

func (s *profileService) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	log := logger.FromContext(ctx)

	profile, err := s.profiles.Get(ctx, id)
	if err != nil {
		log.Error("failed to load profile %d: %v", id, err)
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", id)
	}
	return profile, nil
}

func (s *profileService) GetOrCreate(ctx context.Context, username string) (*models.Profile, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.NewValidationError("username", "is required")
	}

	existing, err := s.profiles.GetByUsername(ctx, username)
	if err != nil {
		log.Error("failed to look up profile %q: %v", username, err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return existing, nil
	}

	created, err := s.profiles.Create(ctx, username)
	if err != nil {
		log.Error("failed to create profile %q: %v", username, err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("profile created: id=%d, username=%s", created.ID, created.Username)

	if s.queue != nil {
		if err := s.queue.EnqueueDailyQuests(created.ID); err != nil {
			log.Warn("failed to enqueue daily quest assignment: %v", err)
		}
	}
	return created, nil
}

func (s *profileService) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	log := logger.FromContext(ctx)

	profiles, err := s.profiles.List(ctx)
	if err != nil {
		log.Error("failed to list profiles: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return profiles, nil
}
