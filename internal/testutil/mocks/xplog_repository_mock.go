package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tallara/ozquiz/internal/models"
)

// MockXPLogRepository is a mock implementation of repository.XPLogRepository
type MockXPLogRepository struct {
	mock.Mock
}

func (m *MockXPLogRepository) Insert(ctx context.Context, entry models.XPLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockXPLogRepository) RecentByProfile(ctx context.Context, profileID int64, limit int) ([]models.XPLogEntry, error) {
	args := m.Called(ctx, profileID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.XPLogEntry), args.Error(1)
}
