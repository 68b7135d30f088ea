package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tallara/ozquiz/internal/errors"
	"github.com/tallara/ozquiz/internal/models"
	"github.com/tallara/ozquiz/internal/services"
	"github.com/tallara/ozquiz/internal/testutil/mocks"
)

type mockQuestService struct{ mock.Mock }

func (m *mockQuestService) SeedCatalog(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockQuestService) EnsureDailyQuests(ctx context.Context, profileID int64) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

func (m *mockQuestService) ActiveQuests(ctx context.Context, profileID int64) ([]models.UserQuestWithDefinition, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserQuestWithDefinition), args.Error(1)
}

func (m *mockQuestService) HandleEvent(ctx context.Context, profileID int64, event models.QuestEvent) error {
	args := m.Called(ctx, profileID, event)
	return args.Error(0)
}

type mockAchievementService struct{ mock.Mock }

func (m *mockAchievementService) SeedCatalog(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockAchievementService) Evaluate(ctx context.Context, profileID int64, category string, meta models.AchievementContext) ([]string, error) {
	args := m.Called(ctx, profileID, category, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockAchievementService) Unlocked(ctx context.Context, profileID int64) ([]models.Achievement, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Achievement), args.Error(1)
}

type mockTopicService struct{ mock.Mock }

func (m *mockTopicService) UpdateProgress(ctx context.Context, profileID int64, topic string, percentage int) (bool, error) {
	args := m.Called(ctx, profileID, topic, percentage)
	return args.Bool(0), args.Error(1)
}

func (m *mockTopicService) SkillTree(ctx context.Context, profileID int64) (*models.SkillTreeSnapshot, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SkillTreeSnapshot), args.Error(1)
}

type mockLeagueService struct{ mock.Mock }

func (m *mockLeagueService) AddWeeklyXP(ctx context.Context, profileID int64, xp int) error {
	args := m.Called(ctx, profileID, xp)
	return args.Error(0)
}

func (m *mockLeagueService) Standing(ctx context.Context, profileID int64) (*models.LeagueSnapshot, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeagueSnapshot), args.Error(1)
}

type progressFixture struct {
	profiles     *mocks.MockProfileRepository
	attempts     *mocks.MockAttemptRepository
	xpLog        *mocks.MockXPLogRepository
	quests       *mockQuestService
	achievements *mockAchievementService
	topics       *mockTopicService
	league       *mockLeagueService
	now          time.Time
	svc          services.ProgressService
}

func newProgressFixture(t *testing.T) *progressFixture {
	t.Helper()
	f := &progressFixture{
		profiles:     new(mocks.MockProfileRepository),
		attempts:     new(mocks.MockAttemptRepository),
		xpLog:        new(mocks.MockXPLogRepository),
		quests:       new(mockQuestService),
		achievements: new(mockAchievementService),
		topics:       new(mockTopicService),
		league:       new(mockLeagueService),
		now:          time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	f.svc = services.NewProgressService(
		f.profiles, f.attempts, f.xpLog,
		f.quests, f.achievements, f.topics, f.league,
		3*time.Hour,
		services.WithClock(func() time.Time { return f.now }),
	)
	return f
}

func (f *progressFixture) freshProfile() *models.Profile {
	return &models.Profile{
		ID:             1,
		Username:       "bluey",
		Level:          1,
		Hearts:         5,
		LastHeartRegen: f.now,
		CreatedAt:      f.now.AddDate(0, 0, -1),
	}
}

func TestRecordQuizCompletionFirstQuiz(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()
	topic := "Australia and its people"

	f.profiles.On("Get", mock.Anything, int64(1)).Return(f.freshProfile(), nil)
	f.profiles.On("IncrementXP", mock.Anything, int64(1), 100).Return(nil)
	f.profiles.On("UpdateStreak", mock.Anything, int64(1), 1, f.now).Return(nil)
	f.attempts.On("Insert", mock.Anything, mock.MatchedBy(func(a models.QuizAttempt) bool {
		return a.ProfileID == 1 && a.Kind == models.AttemptKindQuiz &&
			a.Topic == topic && a.Score == 10 && a.XPEarned == 100 && a.AttemptKey != ""
	})).Return(int64(1), nil)
	f.quests.On("HandleEvent", mock.Anything, int64(1), mock.AnythingOfType("models.QuestEvent")).Return(nil)
	f.topics.On("UpdateProgress", mock.Anything, int64(1), topic, 20).Return(false, nil)
	f.league.On("AddWeeklyXP", mock.Anything, int64(1), 100).Return(nil)
	f.xpLog.On("Insert", mock.Anything, mock.MatchedBy(func(e models.XPLogEntry) bool {
		return e.ProfileID == 1 && e.Amount == 100 && e.Source == models.XPSourceQuiz
	})).Return(nil)
	f.achievements.On("Evaluate", mock.Anything, int64(1), models.AchievementCategoryQuiz, mock.Anything).
		Return([]string{"First Step", "Perfect Score"}, nil)
	f.achievements.On("Evaluate", mock.Anything, int64(1), models.AchievementCategoryStreak, mock.Anything).
		Return([]string(nil), nil)

	result, err := f.svc.RecordQuizCompletion(ctx, 1, services.QuizCompletionInput{
		Topic:          topic,
		Score:          10,
		TotalQuestions: 10,
		XPEarned:       100,
		TopicProgress:  20,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.NewStreak)
	assert.Equal(t, 100, result.NewTotalXP)
	assert.Equal(t, 1, result.NewLevel)
	assert.Equal(t, []string{"First Step", "Perfect Score"}, result.UnlockedAchievements)
	assert.True(t, result.SideEffects.Ok())

	// A perfect scored topic quiz fans out to all four event types.
	f.quests.AssertNumberOfCalls(t, "HandleEvent", 4)
	f.profiles.AssertExpectations(t)
	f.achievements.AssertExpectations(t)
}

func TestRecordQuizCompletionSideEffectFailureIsIsolated(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()
	topic := "Democratic beliefs"

	f.profiles.On("Get", mock.Anything, int64(1)).Return(f.freshProfile(), nil)
	f.profiles.On("IncrementXP", mock.Anything, int64(1), 50).Return(nil)
	f.profiles.On("UpdateStreak", mock.Anything, int64(1), 1, f.now).Return(nil)
	f.attempts.On("Insert", mock.Anything, mock.Anything).Return(int64(0), errors.New("disk full"))
	f.quests.On("HandleEvent", mock.Anything, int64(1), mock.Anything).Return(nil)
	f.topics.On("UpdateProgress", mock.Anything, int64(1), topic, 10).Return(false, nil)
	f.league.On("AddWeeklyXP", mock.Anything, int64(1), 50).Return(nil)
	f.xpLog.On("Insert", mock.Anything, mock.Anything).Return(nil)
	f.achievements.On("Evaluate", mock.Anything, int64(1), mock.Anything, mock.Anything).Return([]string(nil), nil)

	result, err := f.svc.RecordQuizCompletion(ctx, 1, services.QuizCompletionInput{
		Topic:          topic,
		Score:          7,
		TotalQuestions: 10,
		XPEarned:       50,
		TopicProgress:  10,
	})
	require.NoError(t, err)

	require.Len(t, result.SideEffects.Failures, 1)
	assert.Equal(t, models.SideEffectAttempt, result.SideEffects.Failures[0].Op)
	assert.False(t, result.SideEffects.Ok())
}

func TestRecordQuizCompletionProfileWriteIsFatal(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	f.profiles.On("Get", mock.Anything, int64(1)).Return(f.freshProfile(), nil)
	f.profiles.On("IncrementXP", mock.Anything, int64(1), 50).Return(errors.New("database locked"))
	f.attempts.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil).Maybe()
	f.quests.On("HandleEvent", mock.Anything, int64(1), mock.Anything).Return(nil).Maybe()
	f.topics.On("UpdateProgress", mock.Anything, int64(1), mock.Anything, mock.Anything).Return(false, nil).Maybe()
	f.league.On("AddWeeklyXP", mock.Anything, int64(1), 50).Return(nil).Maybe()
	f.xpLog.On("Insert", mock.Anything, mock.Anything).Return(nil).Maybe()

	_, err := f.svc.RecordQuizCompletion(ctx, 1, services.QuizCompletionInput{
		Topic:          "Australian values",
		Score:          5,
		TotalQuestions: 10,
		XPEarned:       50,
	})
	require.Error(t, err)
	f.achievements.AssertNotCalled(t, "Evaluate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordQuizCompletionValidation(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input services.QuizCompletionInput
	}{
		{"zero questions", services.QuizCompletionInput{Topic: "Australian values", Score: 0, TotalQuestions: 0}},
		{"score above total", services.QuizCompletionInput{Topic: "Australian values", Score: 11, TotalQuestions: 10}},
		{"negative xp", services.QuizCompletionInput{Topic: "Australian values", Score: 5, TotalQuestions: 10, XPEarned: -1}},
		{"unknown topic", services.QuizCompletionInput{Topic: "Cricket history", Score: 5, TotalQuestions: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.RecordQuizCompletion(ctx, 1, tt.input)
			require.Error(t, err)
			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
		})
	}
}

func TestRecordMockTestCompletionIgnoresHearts(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	profile := f.freshProfile()
	profile.Hearts = 0

	f.profiles.On("Get", mock.Anything, int64(1)).Return(profile, nil)
	f.profiles.On("IncrementXP", mock.Anything, int64(1), 200).Return(nil)
	f.profiles.On("UpdateStreak", mock.Anything, int64(1), 1, f.now).Return(nil)
	f.attempts.On("Insert", mock.Anything, mock.MatchedBy(func(a models.QuizAttempt) bool {
		return a.Kind == models.AttemptKindMockTest && a.Topic == ""
	})).Return(int64(1), nil)
	f.quests.On("HandleEvent", mock.Anything, int64(1), mock.Anything).Return(nil)
	f.league.On("AddWeeklyXP", mock.Anything, int64(1), 200).Return(nil)
	f.xpLog.On("Insert", mock.Anything, mock.MatchedBy(func(e models.XPLogEntry) bool {
		return e.Source == models.XPSourceMockTest
	})).Return(nil)
	f.achievements.On("Evaluate", mock.Anything, int64(1), models.AchievementCategoryQuiz, mock.Anything).Return([]string(nil), nil)
	f.achievements.On("Evaluate", mock.Anything, int64(1), models.AchievementCategoryStreak, mock.Anything).Return([]string(nil), nil)
	f.achievements.On("Evaluate", mock.Anything, int64(1), models.AchievementCategoryMockTest, mock.MatchedBy(func(m models.AchievementContext) bool {
		return m.Passed
	})).Return([]string{"Mock Master"}, nil)

	result, err := f.svc.RecordMockTestCompletion(ctx, 1, services.MockTestCompletionInput{
		Score:          18,
		TotalQuestions: 20,
		XPEarned:       200,
		Passed:         true,
	})
	require.NoError(t, err)
	assert.Contains(t, result.UnlockedAchievements, "Mock Master")

	// No topic update for mock tests.
	f.topics.AssertNotCalled(t, "UpdateProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStartQuizBlockedWithoutHearts(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	profile := f.freshProfile()
	profile.Hearts = 0

	f.profiles.On("Get", mock.Anything, int64(1)).Return(profile, nil)

	_, err := f.svc.StartQuiz(ctx, 1)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeConflict, appErr.Code)
}

func TestStartQuizPremiumNeverBlocked(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	profile := f.freshProfile()
	profile.Hearts = 0
	profile.IsPremium = true

	f.profiles.On("Get", mock.Anything, int64(1)).Return(profile, nil)

	status, err := f.svc.StartQuiz(ctx, 1)
	require.NoError(t, err)
	assert.True(t, status.Unlimited)
	assert.Equal(t, 5, status.Hearts)
}

func TestStartQuizRegeneratesBeforeGate(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	// Zero hearts but the last regen anchor is 3h10m old: one heart is due.
	profile := f.freshProfile()
	profile.Hearts = 0
	profile.LastHeartRegen = f.now.Add(-3*time.Hour - 10*time.Minute)

	f.profiles.On("Get", mock.Anything, int64(1)).Return(profile, nil)
	f.profiles.On("UpdateHearts", mock.Anything, int64(1), 1, profile.LastHeartRegen.Add(3*time.Hour)).Return(nil)

	status, err := f.svc.StartQuiz(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Hearts)
	f.profiles.AssertExpectations(t)
}

func TestConsumeHeart(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	f.profiles.On("Get", mock.Anything, int64(1)).Return(f.freshProfile(), nil)
	// Dropping below the cap restarts the regen countdown from now.
	f.profiles.On("UpdateHearts", mock.Anything, int64(1), 4, f.now).Return(nil)

	status, err := f.svc.ConsumeHeart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, status.Hearts)
	require.NotNil(t, status.NextHeartAt)
	assert.Equal(t, f.now.Add(3*time.Hour), *status.NextHeartAt)
}

func TestHeartStatusUnknownProfile(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	f.profiles.On("Get", mock.Anything, int64(42)).Return(nil, nil)

	_, err := f.svc.HeartStatus(ctx, 42)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}
