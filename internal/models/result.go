package models

// Best-effort sub-operation names used in side-effect reports.
const (
	SideEffectAttempt = "attempt_record"
	SideEffectQuests  = "quest_progress"
	SideEffectTopic   = "topic_progress"
	SideEffectLeague  = "league_update"
	SideEffectXPLog   = "xp_log"
	SideEffectAwards  = "achievement_check"
)

// SideEffectFailure names one best-effort sub-operation that failed while
// the primary profile update still succeeded.
type SideEffectFailure struct {
	Op    string `json:"op"`
	Error string `json:"error"`
}

// SideEffectReport distinguishes "core profile update succeeded" from
// "some best-effort side effects failed". An empty report means every
// sub-operation completed.
type SideEffectReport struct {
	Failures []SideEffectFailure `json:"failures,omitempty"`
}

func (r SideEffectReport) Ok() bool { return len(r.Failures) == 0 }

// CompletionResult is the merged outcome of one quiz or mock-test
// completion: the new totals plus the achievement names newly unlocked by
// this call (never previously unlocked ones).
type CompletionResult struct {
	NewStreak            int              `json:"new_streak"`
	NewTotalXP           int              `json:"new_total_xp"`
	NewLevel             int              `json:"new_level"`
	Hearts               int              `json:"hearts"`
	UnlimitedHearts      bool             `json:"unlimited_hearts"`
	UnlockedAchievements []string         `json:"unlocked_achievements"`
	SideEffects          SideEffectReport `json:"side_effects"`
}
