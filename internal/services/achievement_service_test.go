package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tallara/ozquiz/internal/models"
	"github.com/tallara/ozquiz/internal/services"
	"github.com/tallara/ozquiz/internal/testutil/mocks"
)

func newAchievementService() (services.AchievementService, *mocks.MockAchievementRepository, *mocks.MockProfileRepository, *mocks.MockXPLogRepository) {
	achievements := new(mocks.MockAchievementRepository)
	profiles := new(mocks.MockProfileRepository)
	xpLog := new(mocks.MockXPLogRepository)
	return services.NewAchievementService(achievements, profiles, xpLog), achievements, profiles, xpLog
}

func TestEvaluateUnlocksQualifyingAchievements(t *testing.T) {
	svc, achievements, profiles, xpLog := newAchievementService()
	ctx := context.Background()

	firstStep := &models.Achievement{ID: 1, Name: "First Step", XPReward: 10}
	perfect := &models.Achievement{ID: 2, Name: "Perfect Score", XPReward: 25}

	achievements.On("GetByName", mock.Anything, "First Step").Return(firstStep, nil)
	achievements.On("GetByName", mock.Anything, "Perfect Score").Return(perfect, nil)
	achievements.On("HasUnlock", mock.Anything, int64(1), int64(1)).Return(false, nil)
	achievements.On("HasUnlock", mock.Anything, int64(1), int64(2)).Return(false, nil)
	achievements.On("InsertUnlock", mock.Anything, int64(1), int64(1)).Return(nil)
	achievements.On("InsertUnlock", mock.Anything, int64(1), int64(2)).Return(nil)
	profiles.On("IncrementXP", mock.Anything, int64(1), 10).Return(nil)
	profiles.On("IncrementXP", mock.Anything, int64(1), 25).Return(nil)
	xpLog.On("Insert", mock.Anything, mock.MatchedBy(func(e models.XPLogEntry) bool {
		return e.Source == models.XPSourceAchievement
	})).Return(nil)

	unlocked, err := svc.Evaluate(ctx, 1, models.AchievementCategoryQuiz, models.AchievementContext{
		Score: 10, TotalQuestions: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"First Step", "Perfect Score"}, unlocked)
	achievements.AssertExpectations(t)
}

func TestEvaluateSkipsAlreadyUnlocked(t *testing.T) {
	svc, achievements, _, _ := newAchievementService()
	ctx := context.Background()

	firstStep := &models.Achievement{ID: 1, Name: "First Step", XPReward: 10}
	achievements.On("GetByName", mock.Anything, "First Step").Return(firstStep, nil)
	achievements.On("HasUnlock", mock.Anything, int64(1), int64(1)).Return(true, nil)

	// Imperfect score, so only First Step qualifies.
	unlocked, err := svc.Evaluate(ctx, 1, models.AchievementCategoryQuiz, models.AchievementContext{
		Score: 6, TotalQuestions: 10,
	})
	require.NoError(t, err)
	assert.Empty(t, unlocked)
	achievements.AssertNotCalled(t, "InsertUnlock", mock.Anything, mock.Anything, mock.Anything)
}

func TestEvaluateSkipsMissingDefinition(t *testing.T) {
	svc, achievements, _, _ := newAchievementService()
	ctx := context.Background()

	achievements.On("GetByName", mock.Anything, "First Step").Return(nil, nil)

	unlocked, err := svc.Evaluate(ctx, 1, models.AchievementCategoryQuiz, models.AchievementContext{
		Score: 4, TotalQuestions: 10,
	})
	require.NoError(t, err)
	assert.Empty(t, unlocked)
}

func TestEvaluateStreakThresholds(t *testing.T) {
	tests := []struct {
		name     string
		streak   int
		expected []string
	}{
		{"below threshold", 2, nil},
		{"on fire at three", 3, []string{"On Fire"}},
		{"both at seven", 7, []string{"On Fire", "Week Warrior"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, achievements, profiles, xpLog := newAchievementService()
			ctx := context.Background()

			achievements.On("GetByName", mock.Anything, "On Fire").Return(&models.Achievement{ID: 3, Name: "On Fire", XPReward: 30}, nil).Maybe()
			achievements.On("GetByName", mock.Anything, "Week Warrior").Return(&models.Achievement{ID: 4, Name: "Week Warrior", XPReward: 70}, nil).Maybe()
			achievements.On("HasUnlock", mock.Anything, int64(1), mock.Anything).Return(false, nil).Maybe()
			achievements.On("InsertUnlock", mock.Anything, int64(1), mock.Anything).Return(nil).Maybe()
			profiles.On("IncrementXP", mock.Anything, int64(1), mock.Anything).Return(nil).Maybe()
			xpLog.On("Insert", mock.Anything, mock.Anything).Return(nil).Maybe()

			unlocked, err := svc.Evaluate(ctx, 1, models.AchievementCategoryStreak, models.AchievementContext{Streak: tt.streak})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, unlocked)
		})
	}
}

func TestEvaluateXPGrantFailureIsNotFatal(t *testing.T) {
	svc, achievements, profiles, _ := newAchievementService()
	ctx := context.Background()

	scholar := &models.Achievement{ID: 9, Name: "Scholar", XPReward: 40}
	achievements.On("GetByName", mock.Anything, "Scholar").Return(scholar, nil)
	achievements.On("HasUnlock", mock.Anything, int64(1), int64(9)).Return(false, nil)
	achievements.On("InsertUnlock", mock.Anything, int64(1), int64(9)).Return(nil)
	profiles.On("IncrementXP", mock.Anything, int64(1), 40).Return(assert.AnError)

	unlocked, err := svc.Evaluate(ctx, 1, models.AchievementCategoryTopicComplete, models.AchievementContext{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Scholar"}, unlocked)
}
