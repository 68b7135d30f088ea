package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tallara/ozquiz/internal/models"
)

// MockAchievementRepository is a mock implementation of repository.AchievementRepository
type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) CountDefinitions(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockAchievementRepository) InsertDefinitions(ctx context.Context, defs []models.Achievement) error {
	args := m.Called(ctx, defs)
	return args.Error(0)
}

func (m *MockAchievementRepository) GetByName(ctx context.Context, name string) (*models.Achievement, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Achievement), args.Error(1)
}

func (m *MockAchievementRepository) HasUnlock(ctx context.Context, profileID, achievementID int64) (bool, error) {
	args := m.Called(ctx, profileID, achievementID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAchievementRepository) InsertUnlock(ctx context.Context, profileID, achievementID int64) error {
	args := m.Called(ctx, profileID, achievementID)
	return args.Error(0)
}

func (m *MockAchievementRepository) ListUnlocked(ctx context.Context, profileID int64) ([]models.Achievement, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Achievement), args.Error(1)
}
