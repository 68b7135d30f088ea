package worker

import (
	"context"

	"github.com/tallara/ozquiz/internal/logger"
)

// SeedCatalogJob loads the quest and achievement catalogs into the
// database on startup when they are missing.
type SeedCatalogJob struct {
	Quests       CatalogSeeder
	Achievements CatalogSeeder
}

func (j *SeedCatalogJob) Name() string { return "seed_catalog" }

func (j *SeedCatalogJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if err := j.Quests.SeedCatalog(ctx); err != nil {
		log.Error("failed to seed quest catalog: %v", err)
		return err
	}
	if err := j.Achievements.SeedCatalog(ctx); err != nil {
		log.Error("failed to seed achievement catalog: %v", err)
		return err
	}
	return nil
}

// DailyQuestsJob pre-assigns today's quests for a profile so the first
// quest fetch does not pay the assignment cost.
type DailyQuestsJob struct {
	Quests    DailyQuestEnsurer
	ProfileID int64
}

func (j *DailyQuestsJob) Name() string { return "assign_daily_quests" }

func (j *DailyQuestsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("profile_id", j.ProfileID)
	log.Debug("ensuring daily quests")
	return j.Quests.EnsureDailyQuests(ctx, j.ProfileID)
}
