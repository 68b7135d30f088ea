package models

import "time"

// Topic progress statuses. Status is monotonic per topic: completed is a
// terminal state and is never overwritten back to in_progress.
const (
	TopicStatusLocked     = "locked"
	TopicStatusInProgress = "in_progress"
	TopicStatusCompleted  = "completed"
)

// Curriculum is the fixed ordered list of study topics. Topic i+1 unlocks
// only when topic i is completed; the first topic is always accessible,
// even without a stored progress row.
var Curriculum = []string{
	"Australia and its people",
	"Democratic beliefs",
	"Government and the law",
	"Australian values",
	"Citizenship: our common bond",
}

// TopicIndex returns the curriculum position of a topic, or -1 when the
// name is not part of the curriculum.
func TopicIndex(topic string) int {
	for i, t := range Curriculum {
		if t == topic {
			return i
		}
	}
	return -1
}

// NextTopic returns the topic following the given one in the curriculum.
// ok is false for the last topic and for unknown names.
func NextTopic(topic string) (next string, ok bool) {
	i := TopicIndex(topic)
	if i < 0 || i+1 >= len(Curriculum) {
		return "", false
	}
	return Curriculum[i+1], true
}

type TopicProgress struct {
	ID                 int64     `json:"id"`
	ProfileID          int64     `json:"profile_id"`
	Topic              string    `json:"topic"`
	ProgressPercentage int       `json:"progress_percentage"`
	Status             string    `json:"status"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// SkillTreeNode is one curriculum entry merged with the user's stored
// progress for display.
type SkillTreeNode struct {
	Topic              string `json:"topic"`
	Position           int    `json:"position"`
	Status             string `json:"status"`
	ProgressPercentage int    `json:"progress_percentage"`
}
