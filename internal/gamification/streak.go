package gamification

import "time"

// NextStreak computes the daily streak after an activity at now.
// Continuity is judged on calendar dates, not elapsed hours: a second
// activity on the same day leaves the streak unchanged, activity on the
// next calendar day increments it, and any gap of two or more days resets
// it to 1. A nil lastUpdate means this is the first ever activity.
func NextStreak(lastUpdate *time.Time, current int, now time.Time) int {
	if lastUpdate == nil {
		return 1
	}

	last := dateOf(lastUpdate.In(now.Location()))
	today := dateOf(now)

	switch {
	case last.Equal(today):
		return current
	case last.Equal(today.AddDate(0, 0, -1)):
		return current + 1
	default:
		return 1
	}
}

// dateOf truncates a time to midnight of its calendar day.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the first instant of the next calendar day, used as the
// expiry of daily quest assignments.
func EndOfDay(t time.Time) time.Time {
	return dateOf(t).AddDate(0, 0, 1)
}
