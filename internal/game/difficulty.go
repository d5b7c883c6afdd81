package game

import "github.com/abhisek/divvy/internal/problemgen"

// levelThresholds[i] is the lifetime solved count at which level i+1 begins.
var levelThresholds = []int{0, 10, 25, 45, 70}

// LevelForSolved maps a lifetime solved total to a 1-based difficulty level.
func LevelForSolved(totalSolved int) int {
	level := 1
	for i, threshold := range levelThresholds {
		if totalSolved >= threshold {
			level = i + 1
		}
	}
	if max := problemgen.MaxTier(); level > max {
		level = max
	}
	return level
}

// TierForSolved returns the tier config for a lifetime solved total.
func TierForSolved(totalSolved int) problemgen.TierConfig {
	return problemgen.TierByLevel(LevelForSolved(totalSolved))
}
