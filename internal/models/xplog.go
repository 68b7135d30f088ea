package models

import "time"

// XP grant sources for the audit log.
const (
	XPSourceQuiz        = "quiz"
	XPSourceMockTest    = "mock_test"
	XPSourceQuest       = "quest"
	XPSourceAchievement = "achievement"
)

// XPLogEntry is one audited XP grant.
type XPLogEntry struct {
	ID        int64     `json:"id"`
	ProfileID int64     `json:"profile_id"`
	Amount    int       `json:"amount"`
	Source    string    `json:"source"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
