package klondike

import (
	"errors"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-solitaire/internal/cards"
	"github.com/vovakirdan/tui-solitaire/internal/config"
	"github.com/vovakirdan/tui-solitaire/internal/registry"
	"github.com/vovakirdan/tui-solitaire/internal/solitaire"
)

func newSession(t *testing.T, seed int64) *solitaire.Session {
	t.Helper()
	return solitaire.NewSession(New(), solitaire.WithSeed(seed), solitaire.WithLogger(log.New(io.Discard)))
}

func TestDealLayout(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42, 12345} {
		snap := newSession(t, seed).Snapshot()

		if len(snap.Tableau) != 7 {
			t.Fatalf("seed %d: %d tableau piles", seed, len(snap.Tableau))
		}
		for i, p := range snap.Tableau {
			if len(p) != i+1 {
				t.Errorf("seed %d: pile %d has %d cards, want %d", seed, i, len(p), i+1)
			}
			for j, c := range p {
				if c.FaceUp != (j == len(p)-1) {
					t.Errorf("seed %d: pile %d card %d faceUp=%v", seed, i, j, c.FaceUp)
				}
			}
		}

		if len(snap.Stock) != 24 {
			t.Errorf("seed %d: stock has %d cards, want 24", seed, len(snap.Stock))
		}
		for _, c := range snap.Stock {
			if c.FaceUp {
				t.Errorf("seed %d: stock card %v face-up", seed, c)
			}
		}
		if len(snap.Waste) != 0 {
			t.Errorf("seed %d: waste not empty", seed)
		}
		for i, f := range snap.Foundations {
			if len(f) != 0 {
				t.Errorf("seed %d: foundation %d not empty", seed, i)
			}
		}

		if err := solitaire.CheckInvariants(snap, New()); err != nil {
			t.Errorf("seed %d: %v", seed, err)
		}
	}
}

func TestDealUsesEveryCardOnce(t *testing.T) {
	d := New().Deal(rand.New(rand.NewSource(9)), ModeDraw1)

	seen := make(map[cards.Card]int)
	for _, p := range d.Tableau {
		for _, c := range p {
			seen[c.Down()]++
		}
	}
	for _, c := range d.Stock {
		seen[c.Down()]++
	}

	if len(seen) != 52 {
		t.Fatalf("expected 52 distinct cards, got %d", len(seen))
	}
	for c, n := range seen {
		if n != 1 {
			t.Errorf("%v dealt %d times", c, n)
		}
	}
}

func TestDrawModes(t *testing.T) {
	r := New()
	if r.DrawCount(ModeDraw1) != 1 || r.DrawCount(ModeDraw3) != 3 {
		t.Error("unexpected draw counts")
	}

	s := newSession(t, 5)
	if err := s.SetMode(ModeDraw3); err != nil {
		t.Fatal(err)
	}
	s.NewGame()
	if err := s.Draw(); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	if len(snap.Waste) != 3 || len(snap.Stock) != 21 {
		t.Errorf("draw-3: waste=%d stock=%d", len(snap.Waste), len(snap.Stock))
	}
}

func TestFullStockCycle(t *testing.T) {
	s := newSession(t, 11)
	for i := 0; i < 24; i++ {
		if err := s.Draw(); err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
	}
	if err := s.Draw(); err != nil {
		t.Fatalf("recycle: %v", err)
	}
	snap := s.Snapshot()
	if len(snap.Stock) != 24 || len(snap.Waste) != 0 {
		t.Errorf("after recycle stock=%d waste=%d", len(snap.Stock), len(snap.Waste))
	}
	if snap.Moves != 25 {
		t.Errorf("moves = %d, want 25", snap.Moves)
	}
	if err := solitaire.CheckInvariants(snap, New()); err != nil {
		t.Error(err)
	}
}

func TestRecyclePenaltyFromConfig(t *testing.T) {
	cfg := config.DefaultConfig().Klondike
	cfg.RecyclePenalty = 30

	st := &solitaire.GameState{
		Tableau:     make([]solitaire.Pile, 7),
		Foundations: make([]solitaire.Pile, 4),
		Waste:       solitaire.Pile(cards.MustParseList("2C* 3C*")),
		Score:       50,
		Difficulty:  "medium",
		Mode:        ModeDraw1,
	}
	s := solitaire.NewSessionFromState(NewWithConfig(cfg), st, solitaire.WithLogger(log.New(io.Discard)))
	if err := s.Draw(); err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot().Score; got != 20 {
		t.Errorf("score = %d, want 20", got)
	}
}

func TestAceToFoundationScenario(t *testing.T) {
	st := &solitaire.GameState{
		Tableau: []solitaire.Pile{
			solitaire.Pile(cards.MustParseList("AS*")),
			solitaire.Pile(cards.MustParseList("AH*")),
			nil, nil, nil, nil, nil,
		},
		Foundations: []solitaire.Pile{nil, solitaire.Pile(cards.MustParseList("AD*")), nil, nil},
		Difficulty:  "medium",
	}
	s := solitaire.NewSessionFromState(New(), st, solitaire.WithLogger(log.New(io.Discard)))

	if err := s.Move(solitaire.At(solitaire.Tableau, 0), solitaire.At(solitaire.Foundation, 1)); !errors.Is(err, solitaire.ErrInvalidMove) {
		t.Errorf("AS onto a foundation expecting 2D: %v", err)
	}
	if err := s.Move(solitaire.At(solitaire.Tableau, 0), solitaire.At(solitaire.Foundation, 0)); err != nil {
		t.Errorf("AS onto empty foundation: %v", err)
	}
}

func TestFoundationToTableauAllowed(t *testing.T) {
	st := &solitaire.GameState{
		Tableau:     []solitaire.Pile{solitaire.Pile(cards.MustParseList("3H*")), nil, nil, nil, nil, nil, nil},
		Foundations: []solitaire.Pile{solitaire.Pile(cards.MustParseList("AS* 2S*")), nil, nil, nil},
		Difficulty:  "medium",
	}
	s := solitaire.NewSessionFromState(New(), st, solitaire.WithLogger(log.New(io.Discard)))

	if err := s.Move(solitaire.At(solitaire.Foundation, 0), solitaire.At(solitaire.Tableau, 0)); err != nil {
		t.Fatalf("2S onto 3H: %v", err)
	}
	if got := s.Snapshot().Score; got != 5 {
		t.Errorf("score = %d, want 5", got)
	}
}

func TestRulesMetadata(t *testing.T) {
	r := New()
	if r.SupportsRedo() {
		t.Error("Klondike has no redo")
	}
	if r.TimeBonusCap() != 700*time.Second {
		t.Errorf("cap = %v", r.TimeBonusCap())
	}
	if r.ScoreDelta(solitaire.MoveToFoundation) != 10 || r.ScoreDelta(solitaire.MoveToTableau) != 5 {
		t.Error("unexpected score deltas")
	}
	if r.Multiplier("hard") != 2 {
		t.Error("hard should double the score")
	}
	if !registry.Exists(ID) {
		t.Error("klondike not registered")
	}
}
