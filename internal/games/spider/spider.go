// Package spider implements Spider solitaire with one, two or four suits.
// Ten tableau piles are built down regardless of suit; only same-suit runs
// can be lifted, and a complete King-to-Ace run is banked automatically.
package spider

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-solitaire/internal/cards"
	"github.com/vovakirdan/tui-solitaire/internal/config"
	"github.com/vovakirdan/tui-solitaire/internal/registry"
	"github.com/vovakirdan/tui-solitaire/internal/solitaire"
)

const ID = "spider"

// Modes select how many suits the 104-card shoe uses.
const (
	ModeOneSuit   = "1-suit"
	ModeTwoSuits  = "2-suits"
	ModeFourSuits = "4-suits"
)

const (
	tableauPiles = 10
	decks        = 2
	// initialDeal cards go to the tableau; the last tableauPiles of them face-up.
	initialDeal = 54
	groupSize   = 10
)

var settings = config.DefaultConfig().Spider

// SetConfig replaces the tuning used by rules created afterwards.
func SetConfig(cfg config.SpiderConfig) {
	settings = cfg
}

type Rules struct {
	cfg config.SpiderConfig
}

func New() *Rules {
	return &Rules{cfg: settings}
}

func NewWithConfig(cfg config.SpiderConfig) *Rules {
	return &Rules{cfg: cfg}
}

func init() {
	registry.Register(ID, func() solitaire.Rules {
		return New()
	})
}

func (r *Rules) ID() string    { return ID }
func (r *Rules) Title() string { return "Spider" }

func (r *Rules) Layout() solitaire.Layout {
	return solitaire.Layout{
		Tableau:     tableauPiles,
		Foundations: solitaire.SpiderRunsToWin,
		Stock:       solitaire.StockDeal,
		Decks:       decks,
		BankRuns:    true,
	}
}

func (r *Rules) Modes() []string {
	return []string{ModeOneSuit, ModeTwoSuits, ModeFourSuits}
}

func (r *Rules) Difficulties() []string {
	return []string{"beginner", "medium", "expert"}
}

// SuitsFor returns the suits used by mode.
func SuitsFor(mode string) []cards.Suit {
	switch mode {
	case ModeTwoSuits:
		return []cards.Suit{cards.Spades, cards.Hearts}
	case ModeFourSuits:
		return cards.AllSuits
	default:
		return []cards.Suit{cards.Spades}
	}
}

// Deal builds the 104-card shoe for mode. The first 54 cards go round-robin
// onto the tableau with the last ten face-up; the other 50 are split into
// five face-down groups of ten.
func (r *Rules) Deal(rng *rand.Rand, mode string) solitaire.Deal {
	suits := SuitsFor(mode)
	copies := decks * len(cards.AllSuits) / len(suits)
	deck := cards.Shuffle(rng, cards.BuildDeck(suits, cards.RanksPerSuit, copies))

	tableau := make([]solitaire.Pile, tableauPiles)
	for i := 0; i < initialDeal; i++ {
		c := deck[i]
		c.FaceUp = i >= initialDeal-tableauPiles
		tableau[i%tableauPiles] = append(tableau[i%tableauPiles], c)
	}

	rest := deck[initialDeal:]
	groups := make([]solitaire.Pile, 0, len(rest)/groupSize)
	for len(rest) > 0 {
		n := groupSize
		if n > len(rest) {
			n = len(rest)
		}
		groups = append(groups, append(solitaire.Pile(nil), rest[:n]...))
		rest = rest[n:]
	}

	return solitaire.Deal{
		Tableau:     tableau,
		StockGroups: groups,
	}
}

// CanPickUp allows only same-suit descending runs.
func (r *Rules) CanPickUp(pile solitaire.Pile, index int) bool {
	return solitaire.IsPartOfDescendingSequence(pile, index, true)
}

// ValidateFoundationMove is always false; runs are banked by the engine.
func (r *Rules) ValidateFoundationMove([]cards.Card, solitaire.Pile) bool {
	return false
}

func (r *Rules) ValidateTableauMove(_ *solitaire.GameState, moving []cards.Card, target solitaire.Pile) bool {
	return solitaire.IsValidSpiderTableauMove(moving, target)
}

func (r *Rules) CheckWin(st *solitaire.GameState) bool {
	return solitaire.SpiderRunsComplete(st.Foundations)
}

func (r *Rules) ScoreDelta(kind solitaire.MoveKind) int {
	switch kind {
	case solitaire.MoveToTableau:
		return solitaire.TableauPoints
	case solitaire.RunCompleted:
		return solitaire.RunPoints
	default:
		return 0
	}
}

func (r *Rules) TimeBonusCap() time.Duration { return r.cfg.TimeBonusCap }

func (r *Rules) Multiplier(difficulty string) float64 {
	return solitaire.DifficultyMultiplier(difficulty)
}

func (r *Rules) SupportsRedo() bool { return true }

var _ solitaire.Rules = (*Rules)(nil)
