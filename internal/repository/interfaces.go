package repository

import (
	"context"
	"time"

	"github.com/tallara/ozquiz/internal/models"
)

// ProfileRepository handles profile data access
type ProfileRepository interface {
	Get(ctx context.Context, id int64) (*models.Profile, error)
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Create(ctx context.Context, username string) (*models.Profile, error)
	UpdateStreak(ctx context.Context, id int64, streak int, lastUpdate time.Time) error
	UpdateHearts(ctx context.Context, id int64, hearts int, lastRegen time.Time) error
	// IncrementXP adds amount to total_xp and re-derives level and
	// current_xp in a single UPDATE, so concurrent grants never lose
	// updates.
	IncrementXP(ctx context.Context, id int64, amount int) error
}

// AttemptRepository handles the immutable quiz attempt log
type AttemptRepository interface {
	Insert(ctx context.Context, attempt models.QuizAttempt) (int64, error)
	CountByProfile(ctx context.Context, profileID int64) (int, error)
	RecentByProfile(ctx context.Context, profileID int64, limit int) ([]models.QuizAttempt, error)
}

// QuestRepository handles quest catalog and per-user quest instances
type QuestRepository interface {
	CountDefinitions(ctx context.Context) (int, error)
	ListDefinitions(ctx context.Context) ([]models.QuestDefinition, error)
	InsertDefinitions(ctx context.Context, defs []models.QuestDefinition) error
	ActiveForProfile(ctx context.Context, profileID int64, now time.Time) ([]models.UserQuestWithDefinition, error)
	CountAssignedBetween(ctx context.Context, profileID int64, from, to time.Time) (int, error)
	InsertInstances(ctx context.Context, instances []models.UserQuest) error
	UpdateInstanceProgress(ctx context.Context, id int64, progress int, completed bool, completedAt *time.Time) error
}

// AchievementRepository handles achievement catalog and unlock records
type AchievementRepository interface {
	CountDefinitions(ctx context.Context) (int, error)
	InsertDefinitions(ctx context.Context, defs []models.Achievement) error
	GetByName(ctx context.Context, name string) (*models.Achievement, error)
	HasUnlock(ctx context.Context, profileID, achievementID int64) (bool, error)
	InsertUnlock(ctx context.Context, profileID, achievementID int64) error
	ListUnlocked(ctx context.Context, profileID int64) ([]models.Achievement, error)
}

// TopicRepository handles per-topic progress rows
type TopicRepository interface {
	Get(ctx context.Context, profileID int64, topic string) (*models.TopicProgress, error)
	ListForProfile(ctx context.Context, profileID int64) ([]models.TopicProgress, error)
	Upsert(ctx context.Context, row models.TopicProgress) error
}

// LeagueRepository handles league standings
type LeagueRepository interface {
	Get(ctx context.Context, profileID int64) (*models.LeagueStanding, error)
	Insert(ctx context.Context, standing models.LeagueStanding) error
	// AddWeeklyXP atomically increments an existing standing and reports
	// whether a row was updated.
	AddWeeklyXP(ctx context.Context, profileID int64, amount int) (bool, error)
	CountPeersAbove(ctx context.Context, leagueID string, weeklyXP int, excludeProfileID int64) (int, error)
	TopPlayers(ctx context.Context, leagueID string, limit int) ([]models.LeaguePlayer, error)
}

// XPLogRepository handles the XP audit log
type XPLogRepository interface {
	Insert(ctx context.Context, entry models.XPLogEntry) error
	RecentByProfile(ctx context.Context, profileID int64, limit int) ([]models.XPLogEntry, error)
}
