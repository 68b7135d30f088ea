package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tallara/ozquiz/internal/models"
	"github.com/tallara/ozquiz/internal/services"
	"github.com/tallara/ozquiz/internal/testutil/mocks"
)

func newQuestFixture(now time.Time) (services.QuestService, *mocks.MockQuestRepository, *mocks.MockProfileRepository, *mocks.MockXPLogRepository) {
	quests := new(mocks.MockQuestRepository)
	profiles := new(mocks.MockProfileRepository)
	xpLog := new(mocks.MockXPLogRepository)
	svc := services.NewQuestService(quests, profiles, xpLog, 3,
		services.WithQuestClock(func() time.Time { return now }))
	return svc, quests, profiles, xpLog
}

func questInstance(id int64, questType, topic string, progress, requirement, reward int) models.UserQuestWithDefinition {
	return models.UserQuestWithDefinition{
		UserQuest: models.UserQuest{
			ID:        id,
			ProfileID: 1,
			QuestID:   id,
			Progress:  progress,
		},
		Title:       "quest",
		Type:        questType,
		Topic:       topic,
		Requirement: requirement,
		XPReward:    reward,
	}
}

func TestEnsureDailyQuestsAssignsOnce(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, quests, _, _ := newQuestFixture(now)
	ctx := context.Background()

	defs := []models.QuestDefinition{
		{ID: 1, Title: "Daily Learner", Type: models.QuestTypeQuizCount, Requirement: 3, XPReward: 50},
		{ID: 2, Title: "Perfectionist", Type: models.QuestTypePerfectScore, Requirement: 1, XPReward: 75},
		{ID: 3, Title: "XP Hunter", Type: models.QuestTypeXPEarned, Requirement: 150, XPReward: 60},
		{ID: 4, Title: "True Blue", Type: models.QuestTypeTopicQuiz, Topic: "Australian values", Requirement: 2, XPReward: 80},
	}

	quests.On("CountAssignedBetween", mock.Anything, int64(1), mock.Anything, mock.Anything).Return(0, nil).Once()
	quests.On("ListDefinitions", mock.Anything).Return(defs, nil).Once()
	quests.On("InsertInstances", mock.Anything, mock.MatchedBy(func(instances []models.UserQuest) bool {
		if len(instances) != 3 {
			return false
		}
		seen := map[int64]bool{}
		for _, in := range instances {
			if in.ProfileID != 1 || seen[in.QuestID] {
				return false
			}
			seen[in.QuestID] = true
			// Quests expire at local end of day.
			if !in.ExpiresAt.After(now) || in.ExpiresAt.Sub(now) > 24*time.Hour {
				return false
			}
		}
		return true
	})).Return(nil).Once()

	require.NoError(t, svc.EnsureDailyQuests(ctx, 1))

	// Second call the same day is a no-op.
	quests.On("CountAssignedBetween", mock.Anything, int64(1), mock.Anything, mock.Anything).Return(3, nil).Once()
	require.NoError(t, svc.EnsureDailyQuests(ctx, 1))
	quests.AssertExpectations(t)
}

func TestHandleEventAdvancesAndCompletes(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, quests, profiles, xpLog := newQuestFixture(now)
	ctx := context.Background()

	active := []models.UserQuestWithDefinition{
		questInstance(1, models.QuestTypeQuizCount, "", 2, 3, 50),
	}
	quests.On("ActiveForProfile", mock.Anything, int64(1), now).Return(active, nil)
	quests.On("UpdateInstanceProgress", mock.Anything, int64(1), 3, true, mock.Anything).Return(nil)
	profiles.On("IncrementXP", mock.Anything, int64(1), 50).Return(nil)
	xpLog.On("Insert", mock.Anything, mock.MatchedBy(func(e models.XPLogEntry) bool {
		return e.Source == models.XPSourceQuest && e.Amount == 50
	})).Return(nil)

	err := svc.HandleEvent(ctx, 1, models.QuestEvent{Type: models.QuestTypeQuizCount, Increment: 1})
	require.NoError(t, err)
	quests.AssertExpectations(t)
	profiles.AssertExpectations(t)
}

func TestHandleEventTopicMatching(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, quests, _, _ := newQuestFixture(now)
	ctx := context.Background()

	active := []models.UserQuestWithDefinition{
		questInstance(1, models.QuestTypeTopicQuiz, "Government and the law", 0, 2, 80),
	}
	quests.On("ActiveForProfile", mock.Anything, int64(1), now).Return(active, nil)

	// Event for a different topic leaves the quest untouched.
	err := svc.HandleEvent(ctx, 1, models.QuestEvent{
		Type: models.QuestTypeTopicQuiz, Increment: 1, Topic: "Australian values",
	})
	require.NoError(t, err)
	quests.AssertNotCalled(t, "UpdateInstanceProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// Matching topic advances it.
	quests.On("UpdateInstanceProgress", mock.Anything, int64(1), 1, false, (*time.Time)(nil)).Return(nil)
	err = svc.HandleEvent(ctx, 1, models.QuestEvent{
		Type: models.QuestTypeTopicQuiz, Increment: 1, Topic: "Government and the law",
	})
	require.NoError(t, err)
	quests.AssertExpectations(t)
}

func TestHandleEventSkipsCompletedQuests(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, quests, _, _ := newQuestFixture(now)
	ctx := context.Background()

	done := questInstance(1, models.QuestTypeQuizCount, "", 3, 3, 50)
	done.IsCompleted = true
	quests.On("ActiveForProfile", mock.Anything, int64(1), now).Return([]models.UserQuestWithDefinition{done}, nil)

	err := svc.HandleEvent(ctx, 1, models.QuestEvent{Type: models.QuestTypeQuizCount, Increment: 1})
	require.NoError(t, err)
	quests.AssertNotCalled(t, "UpdateInstanceProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleEventXPRewardFailureIsNotFatal(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, quests, profiles, _ := newQuestFixture(now)
	ctx := context.Background()

	active := []models.UserQuestWithDefinition{
		questInstance(1, models.QuestTypeXPEarned, "", 100, 150, 60),
	}
	quests.On("ActiveForProfile", mock.Anything, int64(1), now).Return(active, nil)
	quests.On("UpdateInstanceProgress", mock.Anything, int64(1), 200, true, mock.Anything).Return(nil)
	profiles.On("IncrementXP", mock.Anything, int64(1), 60).Return(assert.AnError)

	err := svc.HandleEvent(ctx, 1, models.QuestEvent{Type: models.QuestTypeXPEarned, Increment: 100})
	require.NoError(t, err)
}

func TestSeedCatalogIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, quests, _, _ := newQuestFixture(now)
	ctx := context.Background()

	quests.On("CountDefinitions", mock.Anything).Return(9, nil)
	require.NoError(t, svc.SeedCatalog(ctx))
	quests.AssertNotCalled(t, "InsertDefinitions", mock.Anything, mock.Anything)
}
