// Package freecell implements FreeCell: the whole deck dealt face-up onto
// eight piles, four single-card free cells and four foundations.
package freecell

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-solitaire/internal/cards"
	"github.com/vovakirdan/tui-solitaire/internal/config"
	"github.com/vovakirdan/tui-solitaire/internal/registry"
	"github.com/vovakirdan/tui-solitaire/internal/solitaire"
)

const ID = "freecell"

const (
	tableauPiles = 8
	foundations  = 4
	freeCells    = 4
)

var settings = config.DefaultConfig().FreeCell

// SetConfig replaces the tuning used by rules created afterwards.
func SetConfig(cfg config.FreeCellConfig) {
	settings = cfg
}

type Rules struct {
	cfg config.FreeCellConfig
}

func New() *Rules {
	return &Rules{cfg: settings}
}

func NewWithConfig(cfg config.FreeCellConfig) *Rules {
	return &Rules{cfg: cfg}
}

func init() {
	registry.Register(ID, func() solitaire.Rules {
		return New()
	})
}

func (r *Rules) ID() string    { return ID }
func (r *Rules) Title() string { return "FreeCell" }

func (r *Rules) Layout() solitaire.Layout {
	return solitaire.Layout{
		Tableau:     tableauPiles,
		Foundations: foundations,
		FreeCells:   freeCells,
		Decks:       1,
	}
}

// Modes is empty: FreeCell has a single mode.
func (r *Rules) Modes() []string        { return nil }
func (r *Rules) Difficulties() []string { return []string{"easy", "medium", "hard"} }

// Deal distributes a shuffled deck round-robin, all face-up.
func (r *Rules) Deal(rng *rand.Rand, _ string) solitaire.Deal {
	deck := cards.Shuffle(rng, cards.BuildDeck(cards.AllSuits, cards.RanksPerSuit, 1))

	tableau := make([]solitaire.Pile, tableauPiles)
	for i, c := range deck {
		tableau[i%tableauPiles] = append(tableau[i%tableauPiles], c.Up())
	}
	return solitaire.Deal{Tableau: tableau}
}

func (r *Rules) CanPickUp(pile solitaire.Pile, index int) bool {
	return solitaire.IsPartOfDescendingSequence(pile, index, false)
}

func (r *Rules) ValidateFoundationMove(moving []cards.Card, target solitaire.Pile) bool {
	return len(moving) == 1 && solitaire.IsValidFoundationMove(moving[0], target)
}

// ValidateTableauMove applies the supermove capacity over the live table.
func (r *Rules) ValidateTableauMove(st *solitaire.GameState, moving []cards.Card, target solitaire.Pile) bool {
	return solitaire.IsValidFreeCellMove(moving, target, st.FreeCells, st.Tableau)
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

func (r *Rules) SupportsRedo() bool { return true }

var _ solitaire.Rules = (*Rules)(nil)
