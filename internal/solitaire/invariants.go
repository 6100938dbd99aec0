package solitaire

import (
	"fmt"

	"github.com/vovakirdan/tui-solitaire/internal/cards"
)

// CheckInvariants verifies the structural rules every reachable state obeys.
// It returns the first violation found.
func CheckInvariants(st *GameState, rules Rules) error {
	layout := rules.Layout()

	decks := layout.Decks
	if decks < 1 {
		decks = 1
	}
	if want, got := 52*decks, st.CardCount(); got != want {
		return fmt.Errorf("card count: have %d, want %d", got, want)
	}

	for i, p := range st.Tableau {
		seenUp := false
		for j, c := range p {
			if c.FaceUp {
				seenUp = true
			} else if seenUp {
				return fmt.Errorf("tableau %d: face-down %v at %d above a face-up card", i, c, j)
			}
		}
		if n := len(p); n > 0 && !p[n-1].FaceUp {
			return fmt.Errorf("tableau %d: top card %v is face-down", i, p[n-1])
		}
	}

	if layout.BankRuns {
		if len(st.Foundations) > SpiderRunsToWin {
			return fmt.Errorf("foundations: %d runs banked", len(st.Foundations))
		}
		for i, f := range st.Foundations {
			if !IsValidSpiderRun(f) {
				return fmt.Errorf("foundation %d: not a complete run", i)
			}
		}
	} else {
		for i, f := range st.Foundations {
			for j, c := range f {
				if c.Value() != j+1 || c.Suit != f[0].Suit {
					return fmt.Errorf("foundation %d: %v out of order at %d", i, c, j)
				}
			}
		}
	}

	for i, c := range st.FreeCells {
		if len(c) > 1 {
			return fmt.Errorf("free cell %d holds %d cards", i, len(c))
		}
	}

	for _, c := range st.Stock {
		if c.FaceUp {
			return fmt.Errorf("stock: face-up %v", c)
		}
	}
	for _, c := range st.Waste {
		if !c.FaceUp {
			return fmt.Errorf("waste: face-down %v", c)
		}
	}

	return checkMultiset(st, decks)
}

// checkMultiset verifies each (suit, rank) appears a consistent number of times.
func checkMultiset(st *GameState, decks int) error {
	counts := make(map[cards.Card]int)
	add := func(p Pile) {
		for _, c := range p {
			counts[c.Down()]++
		}
	}
	for _, group := range [][]Pile{st.Tableau, st.Foundations, st.FreeCells, st.StockGroups} {
		for _, p := range group {
			add(p)
		}
	}
	add(st.Stock)
	add(st.Waste)

	// Spider shoes use a subset of suits, so only the per-card count is
	// fixed: every distinct card appears the same number of times.
	want := 0
	for c, n := range counts {
		if want == 0 {
			want = n
		}
		if n != want {
			return fmt.Errorf("card %v appears %d times, others %d", c, n, want)
		}
	}
	if len(counts)*want != 52*decks {
		return fmt.Errorf("deck shape: %d distinct cards x %d", len(counts), want)
	}
	return nil
}

func (s *Session) assertInvariants(op string) {
	if !debugInvariants {
		return
	}
	if err := CheckInvariants(s.state, s.rules); err != nil {
		panic(fmt.Sprintf("solitaire: invariant violated after %s: %v", op, err))
	}
}
