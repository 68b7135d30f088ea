package services

import (
	"context"

	"github.com/tallara/ozquiz/internal/errors"
	"github.com/tallara/ozquiz/internal/logger"
	"github.com/tallara/ozquiz/internal/models"
	"github.com/tallara/ozquiz/internal/repository"
)

// AchievementService evaluates unlock conditions for achievement events
type AchievementService interface {
	SeedCatalog(ctx context.Context) error
	// Evaluate returns the achievement names newly unlocked by this call.
	// Already-unlocked achievements are skipped, never re-unlocked and
	// never returned again.
	Evaluate(ctx context.Context, profileID int64, category string, meta models.AchievementContext) ([]string, error)
	Unlocked(ctx context.Context, profileID int64) ([]models.Achievement, error)
}

// unlockRule maps an event category to one candidate achievement and its
// unlock condition over the event metadata.
type unlockRule struct {
	category  string
	name      string
	qualifies func(models.AchievementContext) bool
}

var unlockRules = []unlockRule{
	{models.AchievementCategoryQuiz, "First Step", func(models.AchievementContext) bool { return true }},
	{models.AchievementCategoryQuiz, "Perfect Score", func(m models.AchievementContext) bool {
		return m.TotalQuestions > 0 && m.Score == m.TotalQuestions
	}},
	{models.AchievementCategoryStreak, "On Fire", func(m models.AchievementContext) bool { return m.Streak >= 3 }},
	{models.AchievementCategoryStreak, "Week Warrior", func(m models.AchievementContext) bool { return m.Streak >= 7 }},
	{models.AchievementCategoryFriend, "Socialite", func(models.AchievementContext) bool { return true }},
	{models.AchievementCategoryBattle, "Gladiator", func(m models.AchievementContext) bool { return m.Won }},
	{models.AchievementCategoryLevel, "Koala King", func(m models.AchievementContext) bool { return m.Level >= 10 }},
	{models.AchievementCategoryMockTest, "Mock Master", func(m models.AchievementContext) bool { return m.Passed }},
	{models.AchievementCategoryTopicComplete, "Scholar", func(models.AchievementContext) bool { return true }},
}

type achievementService struct {
	achievements repository.AchievementRepository
	profiles     repository.ProfileRepository
	xpLog        repository.XPLogRepository
}

// NewAchievementService creates a new AchievementService
func NewAchievementService(achievements repository.AchievementRepository, profiles repository.ProfileRepository, xpLog repository.XPLogRepository) AchievementService {
	return &achievementService{
		achievements: achievements,
		profiles:     profiles,
		xpLog:        xpLog,
	}
}

func (s *achievementService) SeedCatalog(ctx context.Context) error {
	log := logger.FromContext(ctx)

	count, err := s.achievements.CountDefinitions(ctx)
	if err != nil {
		log.Error("failed to count achievement definitions: %v", err)
		return errors.NewInternalError(err)
	}
	if count > 0 {
		log.Debug("achievement catalog already seeded (%d definitions)", count)
		return nil
	}

	if err := s.achievements.InsertDefinitions(ctx, achievementCatalog); err != nil {
		log.Error("failed to seed achievement catalog: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("achievement catalog seeded with %d definitions", len(achievementCatalog))
	return nil
}

func (s *achievementService) Evaluate(ctx context.Context, profileID int64, category string, meta models.AchievementContext) ([]string, error) {
	log := logger.FromContext(ctx)
	log.Debug("evaluating achievements: profile_id=%d, category=%s", profileID, category)

	var unlocked []string
	var firstErr error

	for _, rule := range unlockRules {
		if rule.category != category || !rule.qualifies(meta) {
			continue
		}

		def, err := s.achievements.GetByName(ctx, rule.name)
		if err != nil {
			log.Error("failed to load achievement %q: %v", rule.name, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if def == nil {
			// Catalog rows are seeded at startup; a miss means the seed
			// was skipped or the name drifted. Skip the candidate.
			log.Warn("achievement definition missing: %q", rule.name)
			continue
		}

		has, err := s.achievements.HasUnlock(ctx, profileID, def.ID)
		if err != nil {
			log.Error("failed to check unlock for %q: %v", rule.name, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if has {
			continue
		}

		if err := s.achievements.InsertUnlock(ctx, profileID, def.ID); err != nil {
			log.Error("failed to record unlock for %q: %v", rule.name, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if def.XPReward > 0 {
			if err := s.profiles.IncrementXP(ctx, profileID, def.XPReward); err != nil {
				log.Warn("failed to grant achievement xp for %q: %v", rule.name, err)
			} else if err := s.xpLog.Insert(ctx, models.XPLogEntry{
				ProfileID: profileID,
				Amount:    def.XPReward,
				Source:    models.XPSourceAchievement,
				Detail:    def.Name,
			}); err != nil {
				log.Warn("failed to log achievement xp grant: %v", err)
			}
		}

		log.Info("achievement unlocked: profile_id=%d, name=%q", profileID, def.Name)
		unlocked = append(unlocked, def.Name)
	}

	return unlocked, firstErr
}

func (s *achievementService) Unlocked(ctx context.Context, profileID int64) ([]models.Achievement, error) {
	log := logger.FromContext(ctx)

	list, err := s.achievements.ListUnlocked(ctx, profileID)
	if err != nil {
		log.Error("failed to list unlocked achievements: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return list, nil
}
