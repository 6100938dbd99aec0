package solitaire

import (
	"math"
	"time"
)

// Fixed score adjustments applied by the session.
const (
	UndoPenalty      = 10
	RedoCredit       = 10
	RecyclePenalty   = 100
	FoundationPoints = 10
	TableauPoints    = 5
	RunPoints        = 100
)

// CalculateScore returns the final score for a won game:
// floor((score + timeBonus) * multiplier), where timeBonus is the
// milliseconds left before bonusCap divided by 1000.
func CalculateScore(score int, elapsed, bonusCap time.Duration, multiplier float64) int {
	remaining := bonusCap.Milliseconds() - elapsed.Milliseconds()
	if remaining < 0 {
		remaining = 0
	}
	bonus := float64(remaining) / 1000
	return int(math.Floor((float64(score) + bonus) * multiplier))
}

// DifficultyMultiplier maps a difficulty label to its score multiplier.
// Klondike and FreeCell use easy/medium/hard, Spider beginner/medium/expert.
func DifficultyMultiplier(difficulty string) float64 {
	switch difficulty {
	case "easy", "beginner":
		return 1
	case "medium":
		return 1.5
	case "hard", "expert":
		return 2
	default:
		return 1
	}
}

func floorZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
