package models

import "time"

const (
	AttemptKindQuiz     = "quiz"
	AttemptKindMockTest = "mock_test"
)

// QuizAttempt is the immutable record of one completed quiz or mock test.
// Rows are inserted once and never updated.
type QuizAttempt struct {
	ID             int64     `json:"id"`
	ProfileID      int64     `json:"profile_id"`
	AttemptKey     string    `json:"attempt_key"`
	Kind           string    `json:"kind"`
	Topic          string    `json:"topic,omitempty"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	XPEarned       int       `json:"xp_earned"`
	CreatedAt      time.Time `json:"created_at"`
}
