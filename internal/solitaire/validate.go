package solitaire

import "github.com/vovakirdan/tui-solitaire/internal/cards"

// IsValidFoundationMove reports whether card may be placed on a foundation pile:
// an Ace on an empty pile, otherwise the next rank of the top card's suit.
func IsValidFoundationMove(card cards.Card, pile Pile) bool {
	top, ok := pile.Top()
	if !ok {
		return card.Rank == cards.Ace
	}
	return card.Suit == top.Suit && card.Value() == top.Value()+1
}

// IsValidTableauMove is the Klondike building rule: a King on an empty pile,
// otherwise opposite color and one rank lower than the top.
func IsValidTableauMove(moving []cards.Card, pile Pile) bool {
	if len(moving) == 0 {
		return false
	}
	first := moving[0]
	top, ok := pile.Top()
	if !ok {
		return first.Rank == cards.King
	}
	return buildsOn(first, top)
}

// IsValidSpiderTableauMove accepts any card on an empty pile, otherwise one
// rank lower than the top regardless of suit.
func IsValidSpiderTableauMove(moving []cards.Card, pile Pile) bool {
	if len(moving) == 0 {
		return false
	}
	top, ok := pile.Top()
	if !ok {
		return true
	}
	return moving[0].Value() == top.Value()-1
}

// IsPartOfDescendingSequence reports whether pile[index:] is a movable group:
// all face-up, each card one rank below the previous, and either alternating
// color or, when requireSameSuit is set, a single suit.
func IsPartOfDescendingSequence(pile Pile, index int, requireSameSuit bool) bool {
	if index < 0 || index >= len(pile) {
		return false
	}
	if !pile[index].FaceUp {
		return false
	}
	for i := index + 1; i < len(pile); i++ {
		prev, cur := pile[i-1], pile[i]
		if !cur.FaceUp || cur.Value() != prev.Value()-1 {
			return false
		}
		if requireSameSuit {
			if cur.Suit != prev.Suit {
				return false
			}
		} else if cur.Color() == prev.Color() {
			return false
		}
	}
	return true
}

// SupermoveCapacity is the largest group FreeCell lets the player move at once.
func SupermoveCapacity(emptyFreeCells, emptyColumns int) int {
	if emptyFreeCells < 0 {
		emptyFreeCells = 0
	}
	if emptyColumns < 0 {
		emptyColumns = 0
	}
	return (emptyFreeCells + 1) << emptyColumns
}

// IsValidFreeCellMove applies the FreeCell tableau rule. The group size is
// capped by SupermoveCapacity over the current free cells and tableau;
// an empty target column accepts any card.
func IsValidFreeCellMove(moving []cards.Card, target Pile, freeCells, tableau []Pile) bool {
	if len(moving) == 0 {
		return false
	}

	emptyCells := 0
	for _, c := range freeCells {
		if len(c) == 0 {
			emptyCells++
		}
	}
	emptyCols := 0
	for _, p := range tableau {
		if len(p) == 0 {
			emptyCols++
		}
	}
	if len(moving) > SupermoveCapacity(emptyCells, emptyCols) {
		return false
	}

	top, ok := target.Top()
	if !ok {
		return true
	}
	return buildsOn(moving[0], top)
}

// IsValidSpiderRun reports whether cs is a complete King-to-Ace run of one suit.
func IsValidSpiderRun(cs []cards.Card) bool {
	if len(cs) != cards.RanksPerSuit {
		return false
	}
	suit := cs[0].Suit
	for i, c := range cs {
		if c.Suit != suit || c.Value() != cards.RanksPerSuit-i {
			return false
		}
	}
	return true
}

func buildsOn(card, top cards.Card) bool {
	return card.Color() != top.Color() && card.Value() == top.Value()-1
}
