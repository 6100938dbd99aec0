// Package cards provides playing card primitives shared by every solitaire
// variant: suits, ranks, colors, deck construction and shuffling.
package cards

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Suit is one of the four French suits.
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// AllSuits lists the suits in deck-building order.
var AllSuits = []Suit{Spades, Hearts, Diamonds, Clubs}

// String returns the suit symbol.
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Rank is the face value of a card. Ace is low (1), King is high (13).
type Rank uint8

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// RanksPerSuit is the number of ranks in a full suit.
const RanksPerSuit = 13

// String returns the rank label used on the card face.
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r >= Two && r <= Ten {
		return fmt.Sprintf("%d", int(r))
	}
	return "?"
}

// Color classifies suits for alternating-color building.
type Color uint8

const (
	Red Color = iota
	Black
)

// String returns "red" or "black".
func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// RankValue returns the ordering value of a rank, 1 for Ace through 13 for King.
func RankValue(r Rank) int {
	return int(r)
}

// ColorOf returns red for hearts and diamonds, black for spades and clubs.
func ColorOf(s Suit) Color {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

// Card is a playing card plus its orientation.
// Cards carry no identity: two cards are the same when suit and rank match.
type Card struct {
	Suit   Suit
	Rank   Rank
	FaceUp bool
}

// New creates a face-down card.
func New(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// Color returns the card's suit color.
func (c Card) Color() Color {
	return ColorOf(c.Suit)
}

// Value returns RankValue of the card's rank.
func (c Card) Value() int {
	return RankValue(c.Rank)
}

// Same reports whether two cards have the same suit and rank, ignoring orientation.
func (c Card) Same(other Card) bool {
	return c.Suit == other.Suit && c.Rank == other.Rank
}

// Up returns a face-up copy of the card.
func (c Card) Up() Card {
	c.FaceUp = true
	return c
}

// Down returns a face-down copy of the card.
func (c Card) Down() Card {
	c.FaceUp = false
	return c
}

// String renders the card as rank followed by suit, e.g. "10♥".
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

type cardJSON struct {
	Suit   string `json:"suit"`
	Rank   string `json:"rank"`
	FaceUp bool   `json:"faceUp"`
}

// MarshalJSON encodes the card using its face labels.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{Suit: c.Suit.String(), Rank: c.Rank.String(), FaceUp: c.FaceUp})
}

// UnmarshalJSON decodes a card written by MarshalJSON.
func (c *Card) UnmarshalJSON(data []byte) error {
	var raw cardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := Parse(raw.Rank + raw.Suit)
	if err != nil {
		return err
	}
	parsed.FaceUp = raw.FaceUp
	*c = parsed
	return nil
}

// Parse reads a card in compact notation: a rank (A, 2-10, J, Q, K, or T for ten)
// followed by a suit symbol or letter (S, H, D, C). A trailing '*' marks the
// card face-up, e.g. "QH*". Parsed cards are face-down unless marked.
func Parse(s string) (Card, error) {
	s = strings.TrimSpace(s)
	faceUp := false
	if strings.HasSuffix(s, "*") {
		faceUp = true
		s = strings.TrimSuffix(s, "*")
	}

	runes := []rune(s)
	if len(runes) < 2 {
		return Card{}, fmt.Errorf("cards: cannot parse %q", s)
	}

	suit, ok := parseSuit(runes[len(runes)-1])
	if !ok {
		return Card{}, fmt.Errorf("cards: unknown suit in %q", s)
	}
	rank, ok := parseRank(strings.ToUpper(string(runes[:len(runes)-1])))
	if !ok {
		return Card{}, fmt.Errorf("cards: unknown rank in %q", s)
	}

	return Card{Suit: suit, Rank: rank, FaceUp: faceUp}, nil
}

// MustParseList parses a whitespace-separated list of cards and panics on error.
// Intended for tests and fixtures.
func MustParseList(s string) []Card {
	fields := strings.Fields(s)
	out := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := Parse(f)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}

func parseSuit(r rune) (Suit, bool) {
	switch r {
	case '♠', 'S', 's':
		return Spades, true
	case '♥', 'H', 'h':
		return Hearts, true
	case '♦', 'D', 'd':
		return Diamonds, true
	case '♣', 'C', 'c':
		return Clubs, true
	}
	return 0, false
}

func parseRank(s string) (Rank, bool) {
	switch s {
	case "A", "1":
		return Ace, true
	case "J":
		return Jack, true
	case "Q":
		return Queen, true
	case "K":
		return King, true
	case "T", "10":
		return Ten, true
	}
	if len(s) == 1 && s[0] >= '2' && s[0] <= '9' {
		return Rank(s[0] - '0'), true
	}
	return 0, false
}
