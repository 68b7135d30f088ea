package worker

import "context"

// CatalogSeeder seeds a static catalog into the database.
// This avoids import cycles by not importing the services package
type CatalogSeeder interface {
	SeedCatalog(ctx context.Context) error
}

// DailyQuestEnsurer assigns a profile's quests for the current day.
type DailyQuestEnsurer interface {
	EnsureDailyQuests(ctx context.Context, profileID int64) error
}

// QuestTasks is what quest background jobs need from the quest service.
type QuestTasks interface {
	CatalogSeeder
	DailyQuestEnsurer
}
