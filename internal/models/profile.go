package models

import "time"

type Profile struct {
	ID               int64      `json:"id"`
	Username         string     `json:"username"`
	CurrentXP        int        `json:"current_xp"`
	TotalXP          int        `json:"total_xp"`
	Level            int        `json:"level"`
	DailyStreak      int        `json:"daily_streak"`
	LastStreakUpdate *time.Time `json:"last_streak_update"`
	Hearts           int        `json:"hearts"`
	LastHeartRegen   time.Time  `json:"last_heart_regen"`
	IsPremium        bool       `json:"is_premium"`
	CreatedAt        time.Time  `json:"created_at"`
}
