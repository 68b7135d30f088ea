package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueCatalogSeed() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockJobQueue) EnqueueDailyQuests(profileID int64) error {
	args := m.Called(profileID)
	return args.Error(0)
}
