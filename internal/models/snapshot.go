package models

import "time"

// HeartStatus is the display shape of the heart resource after
// regeneration has been applied.
type HeartStatus struct {
	Hearts      int        `json:"hearts"`
	MaxHearts   int        `json:"max_hearts"`
	Unlimited   bool       `json:"unlimited"`
	NextHeartAt *time.Time `json:"next_heart_at,omitempty"`
}

// DashboardSnapshot is a thin read-only aggregation for the home screen.
type DashboardSnapshot struct {
	Profile        *Profile                  `json:"profile"`
	Hearts         HeartStatus               `json:"hearts"`
	ActiveQuests   []UserQuestWithDefinition `json:"active_quests"`
	League         *LeagueSnapshot           `json:"league,omitempty"`
	RecentActivity []XPLogEntry              `json:"recent_activity"`
}

// SkillTreeSnapshot is the per-topic view over the whole curriculum.
type SkillTreeSnapshot struct {
	Nodes []SkillTreeNode `json:"nodes"`
}
