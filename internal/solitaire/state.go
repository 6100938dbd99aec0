package solitaire

import (
	"time"

	"github.com/vovakirdan/tui-solitaire/internal/cards"
	"github.com/vovakirdan/tui-solitaire/internal/stats"
)

// GameState is the full table for one game plus the settings and aggregates
// that persist across games. It is owned by exactly one Session.
type GameState struct {
	Tableau     []Pile
	Foundations []Pile
	FreeCells   []Pile

	// Stock and Waste are used by draw variants.
	Stock Pile
	Waste Pile

	// StockGroups holds pre-split deal groups for deal variants; the last group is dealt next.
	StockGroups []Pile

	Score     int
	Moves     int
	StartTime time.Time
	Complete  bool

	Difficulty string
	Mode       string
	Stats      stats.Stats
}

// Clone returns a deep copy of the state.
func (s *GameState) Clone() *GameState {
	out := *s
	out.Tableau = clonePiles(s.Tableau)
	out.Foundations = clonePiles(s.Foundations)
	out.FreeCells = clonePiles(s.FreeCells)
	out.Stock = s.Stock.Clone()
	out.Waste = s.Waste.Clone()
	out.StockGroups = clonePiles(s.StockGroups)
	out.Stats = s.Stats.Clone()
	return &out
}

// CardCount returns the number of cards on the table, stock included.
func (s *GameState) CardCount() int {
	n := len(s.Stock) + len(s.Waste)
	for _, group := range [][]Pile{s.Tableau, s.Foundations, s.FreeCells, s.StockGroups} {
		for _, p := range group {
			n += len(p)
		}
	}
	return n
}

// EmptyFreeCells counts free cells holding no card.
func (s *GameState) EmptyFreeCells() int {
	n := 0
	for _, c := range s.FreeCells {
		if len(c) == 0 {
			n++
		}
	}
	return n
}

// EmptyColumns counts empty tableau piles.
func (s *GameState) EmptyColumns() int {
	n := 0
	for _, p := range s.Tableau {
		if len(p) == 0 {
			n++
		}
	}
	return n
}

// StockRemaining returns the number of cards left to draw or deal.
func (s *GameState) StockRemaining() int {
	n := len(s.Stock)
	for _, g := range s.StockGroups {
		n += len(g)
	}
	return n
}

// pile resolves a location to the pile it names, or nil when out of range.
func (s *GameState) pile(l Location) *Pile {
	var set []Pile
	switch l.Kind {
	case Tableau:
		set = s.Tableau
	case Foundation:
		set = s.Foundations
	case FreeCell:
		set = s.FreeCells
	case Stock:
		if l.Index == 0 {
			return &s.Stock
		}
		return nil
	case Waste:
		if l.Index == 0 {
			return &s.Waste
		}
		return nil
	default:
		return nil
	}
	if l.Index < 0 || l.Index >= len(set) {
		return nil
	}
	return &set[l.Index]
}

// flipTop turns the top card of a pile face-up. It reports whether a flip happened.
func flipTop(p *Pile) bool {
	n := len(*p)
	if n == 0 || (*p)[n-1].FaceUp {
		return false
	}
	(*p)[n-1] = (*p)[n-1].Up()
	return true
}

func faceUp(cs []cards.Card) []cards.Card {
	out := make([]cards.Card, len(cs))
	for i, c := range cs {
		out[i] = c.Up()
	}
	return out
}

func faceDown(cs []cards.Card) []cards.Card {
	out := make([]cards.Card, len(cs))
	for i, c := range cs {
		out[i] = c.Down()
	}
	return out
}
