package solitaire

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-solitaire/internal/cards"
)

// MoveKind classifies a move for scoring.
type MoveKind int

const (
	MoveToTableau MoveKind = iota
	MoveToFoundation
	MoveToFreeCell
	// RunCompleted replaces MoveToTableau when the move banks a Spider run.
	RunCompleted
)

func (k MoveKind) String() string {
	switch k {
	case MoveToTableau:
		return "tableau"
	case MoveToFoundation:
		return "foundation"
	case MoveToFreeCell:
		return "freecell"
	case RunCompleted:
		return "run"
	default:
		return "unknown"
	}
}

// StockKind describes how a variant replenishes the tableau.
type StockKind int

const (
	StockNone StockKind = iota
	// StockDraw flips cards from a stock onto a waste pile (Klondike).
	StockDraw
	// StockDeal deals one card onto every tableau pile at once (Spider).
	StockDeal
)

// Layout describes the piles a variant puts on the table.
type Layout struct {
	Tableau     int
	Foundations int
	FreeCells   int
	Stock       StockKind
	// Decks is the number of 52-card decks in play.
	Decks int
	// BankRuns means foundations are filled only by completed King-to-Ace
	// runs lifted off the tableau, never by moving single cards.
	BankRuns bool
}

// Deal is the initial distribution produced by Rules.Deal.
type Deal struct {
	Tableau     []Pile
	Stock       Pile
	StockGroups []Pile
}

// Rules is the per-variant policy plugged into the engine.
// Implementations must be stateless; all game data lives in GameState.
type Rules interface {
	// ID is the stable identifier used for registry lookup and storage keys.
	ID() string
	Title() string
	Layout() Layout

	// Modes lists the variant modes; the first is the default. Empty means no modes.
	Modes() []string
	// Difficulties lists accepted difficulty labels, easiest first.
	Difficulties() []string

	// Deal builds, shuffles and distributes a fresh deck for mode.
	Deal(rng *rand.Rand, mode string) Deal

	// CanPickUp reports whether the cards from index to the top of a tableau pile may be lifted together.
	CanPickUp(pile Pile, index int) bool
	ValidateFoundationMove(moving []cards.Card, target Pile) bool
	ValidateTableauMove(st *GameState, moving []cards.Card, target Pile) bool
	CheckWin(st *GameState) bool

	ScoreDelta(kind MoveKind) int
	TimeBonusCap() time.Duration
	Multiplier(difficulty string) float64
	SupportsRedo() bool
}

// Drawer is implemented by variants with a draw stock and waste.
type Drawer interface {
	DrawCount(mode string) int
	RecyclePenalty() int
}

// DefaultDifficulty is the difficulty every variant starts on.
const DefaultDifficulty = "medium"

func hasLabel(labels []string, want string) bool {
	for _, l := range labels {
		if l == want {
			return true
		}
	}
	return false
}

func defaultMode(r Rules) string {
	if modes := r.Modes(); len(modes) > 0 {
		return modes[0]
	}
	return ""
}
