// Package solitaire implements the rules engine shared by every solitaire
// variant: pile model, move validation, win checks, the session state
// machine, the undo/redo history and scoring.
//
// A variant plugs into the engine by implementing Rules. The engine owns all
// mutation; variants only answer questions about legality, layout and score.
package solitaire

import (
	"fmt"

	"github.com/vovakirdan/tui-solitaire/internal/cards"
)

// Pile is an ordered stack of cards. Index 0 is the bottom, the last element is the top.
type Pile []cards.Card

// Top returns the top card and whether the pile is non-empty.
func (p Pile) Top() (cards.Card, bool) {
	if len(p) == 0 {
		return cards.Card{}, false
	}
	return p[len(p)-1], true
}

// Clone returns an independent copy of the pile.
func (p Pile) Clone() Pile {
	if p == nil {
		return nil
	}
	out := make(Pile, len(p))
	copy(out, p)
	return out
}

// FaceUpFrom returns the index of the lowest card in the face-up tail of the pile.
// An empty pile or one with a face-down top returns len(p).
func (p Pile) FaceUpFrom() int {
	i := len(p)
	for i > 0 && p[i-1].FaceUp {
		i--
	}
	return i
}

func clonePiles(ps []Pile) []Pile {
	if ps == nil {
		return nil
	}
	out := make([]Pile, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}
	return out
}

// PileKind names the role a pile plays on the table.
type PileKind uint8

const (
	Tableau PileKind = iota
	Foundation
	Stock
	Waste
	FreeCell
)

func (k PileKind) String() string {
	switch k {
	case Tableau:
		return "tableau"
	case Foundation:
		return "foundation"
	case Stock:
		return "stock"
	case Waste:
		return "waste"
	case FreeCell:
		return "freecell"
	default:
		return "unknown"
	}
}

// Location addresses a pile, and optionally a card within it.
// CardIndex is only meaningful for tableau sources; -1 means "the top card".
type Location struct {
	Kind      PileKind
	Index     int
	CardIndex int
}

// At returns a location addressing the top card of a pile.
func At(kind PileKind, index int) Location {
	return Location{Kind: kind, Index: index, CardIndex: -1}
}

// TableauAt addresses a tableau pile starting at a specific card.
func TableauAt(index, cardIndex int) Location {
	return Location{Kind: Tableau, Index: index, CardIndex: cardIndex}
}

func (l Location) String() string {
	if l.CardIndex >= 0 {
		return fmt.Sprintf("%s[%d]@%d", l.Kind, l.Index, l.CardIndex)
	}
	return fmt.Sprintf("%s[%d]", l.Kind, l.Index)
}

// samePile reports whether two locations name the same pile.
func (l Location) samePile(o Location) bool {
	return l.Kind == o.Kind && l.Index == o.Index
}
