package gamification

// XPPerLevel is the flat XP cost of each level.
const XPPerLevel = 1000

// LevelForXP derives the level from lifetime XP: floor(totalXP/1000) + 1.
func LevelForXP(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/XPPerLevel + 1
}

// XPWithinLevel returns the XP accumulated inside the current level.
func XPWithinLevel(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP % XPPerLevel
}
