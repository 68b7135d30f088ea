package models

import "time"

// Achievement event categories.
const (
	AchievementCategoryQuiz          = "quiz"
	AchievementCategoryStreak        = "streak"
	AchievementCategoryFriend        = "friend"
	AchievementCategoryBattle        = "battle"
	AchievementCategoryLevel         = "level"
	AchievementCategoryMockTest      = "mock_test"
	AchievementCategoryTopicComplete = "topic_complete"
)

// Achievement is static catalog data. Secret achievements are hidden from
// listings until unlocked.
type Achievement struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	XPReward    int    `json:"xp_reward"`
	Secret      bool   `json:"secret"`
}

// UserAchievement records an unlock. Existence of the row is the unlocked
// state: rows are inserted at most once per (profile, achievement) and
// never removed.
type UserAchievement struct {
	ID            int64     `json:"id"`
	ProfileID     int64     `json:"profile_id"`
	AchievementID int64     `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// AchievementContext carries the post-update state an unlock condition may
// inspect. Only the fields relevant to the event category are set.
type AchievementContext struct {
	Score          int
	TotalQuestions int
	Streak         int
	Level          int
	Won            bool
	Passed         bool
}
