package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tallara/ozquiz/internal/models"
)

// MockLeagueRepository is a mock implementation of repository.LeagueRepository
type MockLeagueRepository struct {
	mock.Mock
}

func (m *MockLeagueRepository) Get(ctx context.Context, profileID int64) (*models.LeagueStanding, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeagueStanding), args.Error(1)
}

func (m *MockLeagueRepository) Insert(ctx context.Context, standing models.LeagueStanding) error {
	args := m.Called(ctx, standing)
	return args.Error(0)
}

func (m *MockLeagueRepository) AddWeeklyXP(ctx context.Context, profileID int64, amount int) (bool, error) {
	args := m.Called(ctx, profileID, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeagueRepository) CountPeersAbove(ctx context.Context, leagueID string, weeklyXP int, excludeProfileID int64) (int, error) {
	args := m.Called(ctx, leagueID, weeklyXP, excludeProfileID)
	return args.Int(0), args.Error(1)
}

func (m *MockLeagueRepository) TopPlayers(ctx context.Context, leagueID string, limit int) ([]models.LeaguePlayer, error) {
	args := m.Called(ctx, leagueID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LeaguePlayer), args.Error(1)
}
