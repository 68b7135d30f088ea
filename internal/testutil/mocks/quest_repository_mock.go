package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tallara/ozquiz/internal/models"
)

// MockQuestRepository is a mock implementation of repository.QuestRepository
type MockQuestRepository struct {
	mock.Mock
}

func (m *MockQuestRepository) CountDefinitions(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockQuestRepository) ListDefinitions(ctx context.Context) ([]models.QuestDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuestDefinition), args.Error(1)
}

func (m *MockQuestRepository) InsertDefinitions(ctx context.Context, defs []models.QuestDefinition) error {
	args := m.Called(ctx, defs)
	return args.Error(0)
}

func (m *MockQuestRepository) ActiveForProfile(ctx context.Context, profileID int64, now time.Time) ([]models.UserQuestWithDefinition, error) {
	args := m.Called(ctx, profileID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserQuestWithDefinition), args.Error(1)
}

func (m *MockQuestRepository) CountAssignedBetween(ctx context.Context, profileID int64, from, to time.Time) (int, error) {
	args := m.Called(ctx, profileID, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockQuestRepository) InsertInstances(ctx context.Context, instances []models.UserQuest) error {
	args := m.Called(ctx, instances)
	return args.Error(0)
}

func (m *MockQuestRepository) UpdateInstanceProgress(ctx context.Context, id int64, progress int, completed bool, completedAt *time.Time) error {
	args := m.Called(ctx, id, progress, completed, completedAt)
	return args.Error(0)
}
