// Package klondike implements the rules of Klondike solitaire:
// seven tableau piles built down in alternating colors, four foundations
// built up by suit, and a stock dealt onto a waste one or three at a time.
package klondike

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-solitaire/internal/cards"
	"github.com/vovakirdan/tui-solitaire/internal/config"
	"github.com/vovakirdan/tui-solitaire/internal/registry"
	"github.com/vovakirdan/tui-solitaire/internal/solitaire"
)

// ID is the registry and storage identifier.
const ID = "klondike"

// Modes.
const (
	ModeDraw1 = "draw-1"
	ModeDraw3 = "draw-3"
)

const (
	tableauPiles = 7
	foundations  = 4
)

var settings = config.DefaultConfig().Klondike

// SetConfig replaces the tuning used by rules created afterwards.
func SetConfig(cfg config.KlondikeConfig) {
	settings = cfg
}

// Rules implements solitaire.Rules and solitaire.Drawer for Klondike.
type Rules struct {
	cfg config.KlondikeConfig
}

// New creates Klondike rules with the current package configuration.
func New() *Rules {
	return &Rules{cfg: settings}
}

// NewWithConfig creates Klondike rules with explicit tuning.
func NewWithConfig(cfg config.KlondikeConfig) *Rules {
	return &Rules{cfg: cfg}
}

func init() {
	registry.Register(ID, func() solitaire.Rules {
		return New()
	})
}

func (r *Rules) ID() string    { return ID }
func (r *Rules) Title() string { return "Klondike" }

func (r *Rules) Layout() solitaire.Layout {
	return solitaire.Layout{
		Tableau:     tableauPiles,
		Foundations: foundations,
		Stock:       solitaire.StockDraw,
		Decks:       1,
	}
}

func (r *Rules) Modes() []string        { return []string{ModeDraw1, ModeDraw3} }
func (r *Rules) Difficulties() []string { return []string{"easy", "medium", "hard"} }

// Deal shuffles one deck and lays out the triangle: pile i gets i+1 cards,
// only the last face-up. The remaining 24 cards form the stock.
func (r *Rules) Deal(rng *rand.Rand, mode string) solitaire.Deal {
	deck := cards.Shuffle(rng, cards.BuildDeck(cards.AllSuits, cards.RanksPerSuit, 1))

	tableau := make([]solitaire.Pile, tableauPiles)
	for i := 0; i < tableauPiles; i++ {
		for j := i; j < tableauPiles; j++ {
			c := deck[len(deck)-1]
			deck = deck[:len(deck)-1]
			c.FaceUp = i == j
			tableau[j] = append(tableau[j], c)
		}
	}

	return solitaire.Deal{
		Tableau: tableau,
		Stock:   solitaire.Pile(deck),
	}
}

// CanPickUp allows any face-up alternating-color run ending at the top.
func (r *Rules) CanPickUp(pile solitaire.Pile, index int) bool {
	return solitaire.IsPartOfDescendingSequence(pile, index, false)
}

func (r *Rules) ValidateFoundationMove(moving []cards.Card, target solitaire.Pile) bool {
	return len(moving) == 1 && solitaire.IsValidFoundationMove(moving[0], target)
}

func (r *Rules) ValidateTableauMove(_ *solitaire.GameState, moving []cards.Card, target solitaire.Pile) bool {
	return solitaire.IsValidTableauMove(moving, target)
}

func (r *Rules) CheckWin(st *solitaire.GameState) bool {
	return solitaire.AllFoundationsComplete(st.Foundations, foundations)
}

func (r *Rules) ScoreDelta(kind solitaire.MoveKind) int {
	switch kind {
	case solitaire.MoveToFoundation:
		return solitaire.FoundationPoints
	case solitaire.MoveToTableau:
		return solitaire.TableauPoints
	default:
		return 0
	}
}

func (r *Rules) TimeBonusCap() time.Duration { return r.cfg.TimeBonusCap }

func (r *Rules) Multiplier(difficulty string) float64 {
	return solitaire.DifficultyMultiplier(difficulty)
}

// SupportsRedo is false: Klondike offers undo only.
func (r *Rules) SupportsRedo() bool { return false }

// DrawCount returns how many cards a draw flips in mode.
func (r *Rules) DrawCount(mode string) int {
	if mode == ModeDraw3 {
		return 3
	}
	return 1
}

func (r *Rules) RecyclePenalty() int { return r.cfg.RecyclePenalty }

var (
	_ solitaire.Rules  = (*Rules)(nil)
	_ solitaire.Drawer = (*Rules)(nil)
)
