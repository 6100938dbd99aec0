package cards

import "math/rand"

// BuildDeck returns one face-down card per (suit, rank) pair, repeated copies times.
// ranksPerSuit outside 1..13 means a full suit. Multi-deck shoes (Spider) pass
// copies > 1; the result then contains intentional duplicates.
func BuildDeck(suits []Suit, ranksPerSuit, copies int) []Card {
	if ranksPerSuit <= 0 || ranksPerSuit > RanksPerSuit {
		ranksPerSuit = RanksPerSuit
	}
	if copies < 1 {
		copies = 1
	}

	deck := make([]Card, 0, len(suits)*ranksPerSuit*copies)
	for range copies {
		for _, suit := range suits {
			for r := 1; r <= ranksPerSuit; r++ {
				deck = append(deck, New(suit, Rank(r)))
			}
		}
	}
	return deck
}

// Shuffle returns a uniformly permuted copy of deck using Fisher-Yates.
// The input slice is left untouched.
func Shuffle(rng *rand.Rand, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Count returns how many cards in deck are the same as c.
func Count(deck []Card, c Card) int {
	n := 0
	for _, d := range deck {
		if d.Same(c) {
			n++
		}
	}
	return n
}
