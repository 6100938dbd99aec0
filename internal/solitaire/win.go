package solitaire

import "github.com/vovakirdan/tui-solitaire/internal/cards"

// SpiderRunsToWin is the number of banked runs that completes a Spider game.
const SpiderRunsToWin = 8

// AllFoundationsComplete reports whether there are n foundations and each holds a full suit.
func AllFoundationsComplete(foundations []Pile, n int) bool {
	if len(foundations) < n {
		return false
	}
	for i := 0; i < n; i++ {
		if len(foundations[i]) != cards.RanksPerSuit {
			return false
		}
	}
	return true
}

// SpiderRunsComplete reports whether all eight runs have been banked.
func SpiderRunsComplete(foundations []Pile) bool {
	runs := 0
	for _, f := range foundations {
		if IsValidSpiderRun(f) {
			runs++
		}
	}
	return runs == SpiderRunsToWin
}
