package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tallara/ozquiz/internal/models"
)

// MockTopicRepository is a mock implementation of repository.TopicRepository
type MockTopicRepository struct {
	mock.Mock
}

func (m *MockTopicRepository) Get(ctx context.Context, profileID int64, topic string) (*models.TopicProgress, error) {
	args := m.Called(ctx, profileID, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TopicProgress), args.Error(1)
}

func (m *MockTopicRepository) ListForProfile(ctx context.Context, profileID int64) ([]models.TopicProgress, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TopicProgress), args.Error(1)
}

func (m *MockTopicRepository) Upsert(ctx context.Context, row models.TopicProgress) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}
