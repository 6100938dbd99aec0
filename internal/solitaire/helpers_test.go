package solitaire

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-solitaire/internal/cards"
)

// testRules is a configurable variant used to exercise the engine without
// depending on the game packages.
type testRules struct {
	layout Layout
	redo   bool
}

func drawRules() *testRules {
	return &testRules{layout: Layout{Tableau: 7, Foundations: 4, Stock: StockDraw, Decks: 1}}
}

func cellRules() *testRules {
	return &testRules{layout: Layout{Tableau: 8, Foundations: 4, FreeCells: 4, Decks: 1}, redo: true}
}

func runRules() *testRules {
	return &testRules{layout: Layout{Tableau: 10, Foundations: 8, Stock: StockDeal, Decks: 2, BankRuns: true}, redo: true}
}

func (r *testRules) ID() string     { return "test" }
func (r *testRules) Title() string  { return "Test" }
func (r *testRules) Layout() Layout { return r.layout }

func (r *testRules) Modes() []string {
	if r.layout.Stock == StockDraw {
		return []string{"draw-1", "draw-3"}
	}
	return nil
}

func (r *testRules) Difficulties() []string { return []string{"easy", "medium", "hard"} }

func (r *testRules) Deal(rng *rand.Rand, _ string) Deal {
	suits := cards.AllSuits
	copies := 1
	if r.layout.BankRuns {
		suits = []cards.Suit{cards.Spades}
		copies = 8
	}
	deck := cards.Shuffle(rng, cards.BuildDeck(suits, 13, copies))

	var d Deal
	switch r.layout.Stock {
	case StockDraw:
		d.Stock = Pile(deck[:24])
		deck = deck[24:]
	case StockDeal:
		for i := 0; i < 5; i++ {
			d.StockGroups = append(d.StockGroups, Pile(deck[i*10:(i+1)*10]))
		}
		deck = deck[50:]
	}
	d.Tableau = make([]Pile, r.layout.Tableau)
	for i, c := range deck {
		d.Tableau[i%r.layout.Tableau] = append(d.Tableau[i%r.layout.Tableau], c.Up())
	}
	return d
}

func (r *testRules) CanPickUp(p Pile, index int) bool {
	return IsPartOfDescendingSequence(p, index, r.layout.BankRuns)
}

func (r *testRules) ValidateFoundationMove(moving []cards.Card, target Pile) bool {
	return !r.layout.BankRuns && len(moving) == 1 && IsValidFoundationMove(moving[0], target)
}

func (r *testRules) ValidateTableauMove(st *GameState, moving []cards.Card, target Pile) bool {
	switch {
	case r.layout.BankRuns:
		return IsValidSpiderTableauMove(moving, target)
	case r.layout.FreeCells > 0:
		return IsValidFreeCellMove(moving, target, st.FreeCells, st.Tableau)
	default:
		return IsValidTableauMove(moving, target)
	}
}

func (r *testRules) CheckWin(st *GameState) bool {
	if r.layout.BankRuns {
		return SpiderRunsComplete(st.Foundations)
	}
	return AllFoundationsComplete(st.Foundations, 4)
}

func (r *testRules) ScoreDelta(kind MoveKind) int {
	switch kind {
	case MoveToFoundation:
		return FoundationPoints
	case MoveToTableau:
		return TableauPoints
	case RunCompleted:
		return RunPoints
	}
	return 0
}

func (r *testRules) TimeBonusCap() time.Duration          { return 700 * time.Second }
func (r *testRules) Multiplier(difficulty string) float64 { return DifficultyMultiplier(difficulty) }
func (r *testRules) SupportsRedo() bool                   { return r.redo }

func (r *testRules) DrawCount(mode string) int {
	if mode == "draw-3" {
		return 3
	}
	return 1
}

func (r *testRules) RecyclePenalty() int { return RecyclePenalty }

// pile parses compact card notation; "*" marks face-up cards.
func pile(s string) Pile {
	return Pile(cards.MustParseList(s))
}

// table builds n tableau piles, filling the first ones from specs.
func table(n int, specs ...string) []Pile {
	out := make([]Pile, n)
	for i, s := range specs {
		out[i] = pile(s)
	}
	return out
}

func fullSuit(s cards.Suit) Pile {
	out := make(Pile, 0, 13)
	for r := cards.Ace; r <= cards.King; r++ {
		out = append(out, cards.Card{Suit: s, Rank: r, FaceUp: true})
	}
	return out
}

func spiderRun(s cards.Suit) Pile {
	out := make(Pile, 0, 13)
	for r := cards.King; r >= cards.Ace; r-- {
		out = append(out, cards.Card{Suit: s, Rank: r, FaceUp: true})
	}
	return out
}

func fixedClock() func() time.Time {
	t0 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t0 }
}

func samePiles(a, b []Pile) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
