package models

import "time"

// Quest definition types. The type decides which completion events advance
// an instance of the quest.
const (
	QuestTypeQuizCount    = "quiz_count"
	QuestTypePerfectScore = "perfect_score"
	QuestTypeTopicQuiz    = "topic_quiz"
	QuestTypeXPEarned     = "xp_earned"
)

// QuestDefinition is static catalog data, seeded once and never mutated.
// Topic is only set for topic_quiz definitions; matching is done on this
// field, never on the free-text description.
type QuestDefinition struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Topic       string `json:"topic,omitempty"`
	Requirement int    `json:"requirement"`
	XPReward    int    `json:"xp_reward"`
}

// UserQuest is one per-user, per-day assignment of a quest definition.
// Progress only ever increases and IsCompleted is a one-way transition.
type UserQuest struct {
	ID          int64      `json:"id"`
	ProfileID   int64      `json:"profile_id"`
	QuestID     int64      `json:"quest_id"`
	Progress    int        `json:"progress"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	AssignedAt  time.Time  `json:"assigned_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
}

type UserQuestWithDefinition struct {
	UserQuest
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Topic       string `json:"topic,omitempty"`
	Requirement int    `json:"requirement"`
	XPReward    int    `json:"xp_reward"`
}

// QuestEvent is one quest-relevant occurrence derived from a completion.
// A single submission fans out to several events (quiz count, perfect
// score, topic quiz, XP earned).
type QuestEvent struct {
	Type      string
	Increment int
	Topic     string
}
