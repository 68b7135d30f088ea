package gamification

import "time"

// MaxHearts is the heart cap for non-premium users.
const MaxHearts = 5

// DefaultRefillInterval is the time it takes to regain one heart.
const DefaultRefillInterval = 3 * time.Hour

// HeartState is the outcome of applying regeneration at a point in time.
// The caller persists Hearts and LastRegen; NextHeartAt is display-only.
type HeartState struct {
	Hearts      int
	Unlimited   bool
	LastRegen   time.Time
	NextHeartAt *time.Time
}

// Regenerate applies time-based heart refill. Whole elapsed intervals each
// grant one heart up to MaxHearts, and the regen anchor advances by exactly
// the granted intervals so fractional progress toward the next heart is
// never lost. Premium users are always at the cap.
func Regenerate(hearts int, lastRegen time.Time, now time.Time, interval time.Duration, premium bool) HeartState {
	if premium {
		return HeartState{Hearts: MaxHearts, Unlimited: true, LastRegen: lastRegen}
	}
	if interval <= 0 {
		interval = DefaultRefillInterval
	}
	if hearts < 0 {
		hearts = 0
	}

	if hearts >= MaxHearts {
		return HeartState{Hearts: MaxHearts, LastRegen: lastRegen}
	}

	gained := 0
	if elapsed := now.Sub(lastRegen); elapsed > 0 {
		gained = int(elapsed / interval)
	}
	if gained > 0 {
		if hearts+gained > MaxHearts {
			gained = MaxHearts - hearts
		}
		hearts += gained
		lastRegen = lastRegen.Add(time.Duration(gained) * interval)
	}

	state := HeartState{Hearts: hearts, LastRegen: lastRegen}
	if hearts < MaxHearts {
		next := lastRegen.Add(interval)
		state.NextHeartAt = &next
	}
	return state
}

// Consume removes n hearts, flooring at zero. Premium users never lose
// hearts.
func Consume(hearts, n int, premium bool) int {
	if premium {
		return MaxHearts
	}
	if n < 0 {
		n = 0
	}
	hearts -= n
	if hearts < 0 {
		hearts = 0
	}
	return hearts
}

// CanStartQuiz reports whether a life-limited quiz may begin. Mock tests
// are life-less and never call this.
func CanStartQuiz(hearts int, premium bool) bool {
	return premium || hearts > 0
}
