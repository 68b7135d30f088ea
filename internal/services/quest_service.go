package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/tallara/ozquiz/internal/errors"
	"github.com/tallara/ozquiz/internal/gamification"
	"github.com/tallara/ozquiz/internal/logger"
	"github.com/tallara/ozquiz/internal/models"
	"github.com/tallara/ozquiz/internal/repository"
)

// QuestService handles daily quest assignment and quest-progress evaluation
type QuestService interface {
	SeedCatalog(ctx context.Context) error
	EnsureDailyQuests(ctx context.Context, profileID int64) error
	ActiveQuests(ctx context.Context, profileID int64) ([]models.UserQuestWithDefinition, error)
	HandleEvent(ctx context.Context, profileID int64, event models.QuestEvent) error
}

type questService struct {
	quests   repository.QuestRepository
	profiles repository.ProfileRepository
	xpLog    repository.XPLogRepository
	daily    int
	now      func() time.Time
}

// QuestOption configures a QuestService.
type QuestOption func(*questService)

// WithQuestClock overrides the service clock, used by tests.
func WithQuestClock(now func() time.Time) QuestOption {
	return func(s *questService) { s.now = now }
}

// NewQuestService creates a new QuestService
func NewQuestService(quests repository.QuestRepository, profiles repository.ProfileRepository, xpLog repository.XPLogRepository, dailyCount int, opts ...QuestOption) QuestService {
	if dailyCount <= 0 {
		dailyCount = 3
	}
	s := &questService{
		quests:   quests,
		profiles: profiles,
		xpLog:    xpLog,
		daily:    dailyCount,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *questService) SeedCatalog(ctx context.Context) error {
	log := logger.FromContext(ctx)

	count, err := s.quests.CountDefinitions(ctx)
	if err != nil {
		log.Error("failed to count quest definitions: %v", err)
		return errors.NewInternalError(err)
	}
	if count > 0 {
		log.Debug("quest catalog already seeded (%d definitions)", count)
		return nil
	}

	if err := s.quests.InsertDefinitions(ctx, questCatalog); err != nil {
		log.Error("failed to seed quest catalog: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("quest catalog seeded with %d definitions", len(questCatalog))
	return nil
}

func (s *questService) EnsureDailyQuests(ctx context.Context, profileID int64) error {
	log := logger.FromContext(ctx)

	now := s.now()
	dayStart := gamification.EndOfDay(now).AddDate(0, 0, -1)
	dayEnd := gamification.EndOfDay(now)

	assigned, err := s.quests.CountAssignedBetween(ctx, profileID, dayStart, dayEnd)
	if err != nil {
		log.Error("failed to count today's quests: %v", err)
		return errors.NewInternalError(err)
	}
	if assigned >= s.daily {
		log.Debug("daily quests already assigned: profile_id=%d, count=%d", profileID, assigned)
		return nil
	}

	defs, err := s.quests.ListDefinitions(ctx)
	if err != nil {
		log.Error("failed to list quest definitions: %v", err)
		return errors.NewInternalError(err)
	}
	if len(defs) == 0 {
		log.Warn("quest catalog is empty, skipping daily assignment")
		return nil
	}

	// Uniform pick without replacement.
	want := s.daily - assigned
	if want > len(defs) {
		want = len(defs)
	}
	perm := rand.Perm(len(defs))

	instances := make([]models.UserQuest, 0, want)
	for _, idx := range perm[:want] {
		instances = append(instances, models.UserQuest{
			ProfileID:  profileID,
			QuestID:    defs[idx].ID,
			AssignedAt: now,
			ExpiresAt:  dayEnd,
		})
	}

	if err := s.quests.InsertInstances(ctx, instances); err != nil {
		log.Error("failed to assign daily quests: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("assigned %d daily quests: profile_id=%d", len(instances), profileID)
	return nil
}

func (s *questService) ActiveQuests(ctx context.Context, profileID int64) ([]models.UserQuestWithDefinition, error) {
	log := logger.FromContext(ctx)

	if err := s.EnsureDailyQuests(ctx, profileID); err != nil {
		return nil, err
	}

	quests, err := s.quests.ActiveForProfile(ctx, profileID, s.now())
	if err != nil {
		log.Error("failed to load active quests: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return quests, nil
}

func (s *questService) HandleEvent(ctx context.Context, profileID int64, event models.QuestEvent) error {
	log := logger.FromContext(ctx)
	log.Debug("handling quest event: profile_id=%d, type=%s, increment=%d, topic=%s",
		profileID, event.Type, event.Increment, event.Topic)

	if event.Increment <= 0 {
		return nil
	}

	active, err := s.quests.ActiveForProfile(ctx, profileID, s.now())
	if err != nil {
		log.Error("failed to load active quests for event: %v", err)
		return errors.NewInternalError(err)
	}

	for _, q := range active {
		if q.IsCompleted || q.Type != event.Type {
			continue
		}
		// Topic quests only advance for their own topic.
		if q.Type == models.QuestTypeTopicQuiz && q.Topic != event.Topic {
			continue
		}

		progress := q.Progress + event.Increment
		completed := progress >= q.Requirement
		var completedAt *time.Time
		if completed {
			t := s.now()
			completedAt = &t
		}

		if err := s.quests.UpdateInstanceProgress(ctx, q.ID, progress, completed, completedAt); err != nil {
			log.Error("failed to advance quest %d: %v", q.ID, err)
			return errors.NewInternalError(err)
		}

		if completed {
			log.Info("quest completed: profile_id=%d, quest=%q, reward=%d", profileID, q.Title, q.XPReward)
			s.awardQuestXP(ctx, profileID, q)
		}
	}
	return nil
}

// awardQuestXP grants the completion reward. Failures are logged, never
// fatal to the completion flow.
func (s *questService) awardQuestXP(ctx context.Context, profileID int64, q models.UserQuestWithDefinition) {
	log := logger.FromContext(ctx)

	if q.XPReward <= 0 {
		return
	}
	if err := s.profiles.IncrementXP(ctx, profileID, q.XPReward); err != nil {
		log.Warn("failed to grant quest xp: profile_id=%d, quest=%q: %v", profileID, q.Title, err)
		return
	}
	if err := s.xpLog.Insert(ctx, models.XPLogEntry{
		ProfileID: profileID,
		Amount:    q.XPReward,
		Source:    models.XPSourceQuest,
		Detail:    q.Title,
	}); err != nil {
		log.Warn("failed to log quest xp grant: %v", err)
	}
}
