package models

import "time"

// LeagueBronze is the lowest tier; standings are created there.
const (
	LeagueBronze = "bronze"
	LeagueSilver = "silver"
	LeagueGold   = "gold"
)

// LeagueStanding tracks a user's weekly XP within a league bucket.
// WeeklyXP is reset externally on a weekly cadence; rank is recomputed on
// read and never stored.
type LeagueStanding struct {
	ID        int64     `json:"id"`
	ProfileID int64     `json:"profile_id"`
	LeagueID  string    `json:"league_id"`
	WeeklyXP  int       `json:"weekly_xp"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LeaguePlayer is one row of the top-players display. Synthetic players
// pad out sparse cohorts and count toward rank, but must stay clearly
// separable from real peers.
type LeaguePlayer struct {
	Username    string `json:"username"`
	WeeklyXP    int    `json:"weekly_xp"`
	IsSynthetic bool   `json:"is_synthetic"`
}

type LeagueSnapshot struct {
	LeagueID   string         `json:"league_id"`
	WeeklyXP   int            `json:"weekly_xp"`
	Rank       int            `json:"rank"`
	TopPlayers []LeaguePlayer `json:"top_players"`
}
