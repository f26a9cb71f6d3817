package outcome

// LevelUpThreshold returns the experience required to advance past the
// given level.
func LevelUpThreshold(level int) int64 {
	return int64(level) * 100
}

// AdvanceLevel consumes experience thresholds until the remaining
// experience is below the next requirement. A single large gain can cross
// several thresholds, so this loops rather than checking once.
func AdvanceLevel(level int, experience int64) (int, int64) {
	for experience >= LevelUpThreshold(level) {
		experience -= LevelUpThreshold(level)
		level++
	}
	return level, experience
}
