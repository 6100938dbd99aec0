package solitaire

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-solitaire/internal/cards"
	"github.com/vovakirdan/tui-solitaire/internal/stats"
)

func quiet() Option {
	return WithLogger(log.New(io.Discard))
}

func resume(r Rules, st *GameState, opts ...Option) *Session {
	if st.Foundations == nil && !r.Layout().BankRuns {
		st.Foundations = make([]Pile, r.Layout().Foundations)
	}
	if st.FreeCells == nil {
		st.FreeCells = make([]Pile, r.Layout().FreeCells)
	}
	if st.Difficulty == "" {
		st.Difficulty = DefaultDifficulty
	}
	return NewSessionFromState(r, st, append([]Option{quiet(), WithClock(fixedClock())}, opts...)...)
}

func TestAceToEmptyFoundation(t *testing.T) {
	s := resume(drawRules(), &GameState{Tableau: table(7, "5H AS*", "AH*")})

	if err := s.Move(At(Tableau, 0), At(Foundation, 0)); err != nil {
		t.Fatalf("ace to empty foundation rejected: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Foundations[0]) != 1 || !snap.Foundations[0][0].Same(card("AS")) {
		t.Fatalf("foundation 0 = %v", snap.Foundations[0])
	}
	if !snap.Tableau[0][0].FaceUp {
		t.Error("exposed 5H should flip face-up")
	}
	if snap.Score != 10 || snap.Moves != 1 {
		t.Errorf("score/moves = %d/%d, want 10/1", snap.Score, snap.Moves)
	}

	// Foundation 0 now expects 2S.
	err := s.Move(At(Tableau, 1), At(Foundation, 0))
	if !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("AH onto AS should be rejected, got %v", err)
	}
}

func TestRejectedMoveLeavesNoTrace(t *testing.T) {
	s := resume(drawRules(), &GameState{Tableau: table(7, "9S*", "9H*"), Score: 20})
	before := s.Snapshot()

	tests := []struct {
		name     string
		from, to Location
	}{
		{"same rank", At(Tableau, 0), At(Tableau, 1)},
		{"same pile", At(Tableau, 0), At(Tableau, 0)},
		{"empty source", At(Tableau, 3), At(Tableau, 0)},
		{"out of range", At(Tableau, 9), At(Tableau, 0)},
		{"to stock", At(Tableau, 0), At(Stock, 0)},
		{"non-king to empty", At(Tableau, 0), At(Tableau, 4)},
		{"card index beyond top", TableauAt(0, 3), At(Tableau, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Move(tt.from, tt.to); !errors.Is(err, ErrInvalidMove) {
				t.Fatalf("expected ErrInvalidMove, got %v", err)
			}
		})
	}

	after := s.Snapshot()
	if !samePiles(before.Tableau, after.Tableau) || after.Score != 20 || after.Moves != 0 {
		t.Error("rejected moves mutated state")
	}
	if s.CanUndo() {
		t.Error("rejected moves should not be recorded")
	}
}

func TestUndoInverseLaw(t *testing.T) {
	tests := []struct {
		name  string
		rules Rules
		st    *GameState
		from  Location
		to    Location
		delta int
	}{
		{
			name:  "tableau move",
			rules: drawRules(),
			st:    &GameState{Tableau: table(7, "9C* 8D*", "9S*"), Score: 40},
			from:  At(Tableau, 0),
			to:    At(Tableau, 1),
			delta: 5,
		},
		{
			name:  "foundation move",
			rules: cellRules(),
			st:    &GameState{Tableau: table(8, "KH* AC*"), Score: 40},
			from:  At(Tableau, 0),
			to:    At(Foundation, 2),
			delta: 10,
		},
		{
			name:  "free cell move",
			rules: cellRules(),
			st:    &GameState{Tableau: table(8, "KH* 7C*"), Score: 40},
			from:  At(Tableau, 0),
			to:    At(FreeCell, 1),
			delta: 0,
		},
		{
			name:  "group move",
			rules: cellRules(),
			st:    &GameState{Tableau: table(8, "KH* 8H* 7C*", "9S*"), Score: 40},
			from:  TableauAt(0, 1),
			to:    At(Tableau, 1),
			delta: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := resume(tt.rules, tt.st)
			before := s.Snapshot()

			if err := s.Move(tt.from, tt.to); err != nil {
				t.Fatalf("Move() failed: %v", err)
			}
			if got := s.Snapshot().Score; got != before.Score+tt.delta {
				t.Fatalf("score after move = %d, want %d", got, before.Score+tt.delta)
			}
			if err := s.Undo(); err != nil {
				t.Fatalf("Undo() failed: %v", err)
			}

			after := s.Snapshot()
			if !samePiles(before.Tableau, after.Tableau) ||
				!samePiles(before.Foundations, after.Foundations) ||
				!samePiles(before.FreeCells, after.FreeCells) {
				t.Errorf("undo did not restore piles:\nbefore %v\nafter  %v", before.Tableau, after.Tableau)
			}
			if after.Moves != before.Moves+2 {
				t.Errorf("moves = %d, want %d", after.Moves, before.Moves+2)
			}
			if after.Score-before.Score != tt.delta-UndoPenalty {
				t.Errorf("score delta = %d, want %d", after.Score-before.Score, tt.delta-UndoPenalty)
			}
		})
	}
}

func TestUndoKeepsFlippedCardFaceUp(t *testing.T) {
	s := resume(drawRules(), &GameState{Tableau: table(7, "3C 9C* 8D*", "9S*")})

	if err := s.Move(TableauAt(0, 2), At(Tableau, 1)); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}
	if err := s.Move(At(Tableau, 0), At(Foundation, 0)); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("9C to empty foundation should fail, got %v", err)
	}
	if err := s.Undo(); err != nil {
		t.Fatalf("Undo() failed: %v", err)
	}

	got := s.Snapshot().Tableau[0]
	if len(got) != 3 || !got[2].Same(card("8D")) {
		t.Fatalf("tableau 0 = %v", got)
	}
	if !got[1].FaceUp {
		t.Error("9C was face-up before the move and should stay so")
	}
}

func TestUndoDoesNotRehideExposedCard(t *testing.T) {
	s := resume(drawRules(), &GameState{Tableau: table(7, "3C 8D*", "9S*")})

	if err := s.Move(At(Tableau, 0), At(Tableau, 1)); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}
	if err := s.Undo(); err != nil {
		t.Fatalf("Undo() failed: %v", err)
	}

	got := s.Snapshot().Tableau[0]
	if !got[0].FaceUp {
		t.Error("3C was flipped by the move; undo leaves it face-up")
	}
	if len(got) != 2 || !got[1].Same(card("8D")) {
		t.Errorf("tableau 0 = %v, want 3C 8D", got)
	}
}

func TestUndoScoreFloorsAtZero(t *testing.T) {
	s := resume(cellRules(), &GameState{Tableau: table(8, "KH* 7C*")})

	if err := s.Move(At(Tableau, 0), At(FreeCell, 0)); err != nil {
		t.Fatal(err)
	}
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot().Score; got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
	if err := s.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestRedo(t *testing.T) {
	s := resume(cellRules(), &GameState{Tableau: table(8, "KH* AC*"), Score: 30})

	if err := s.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Fatalf("expected ErrNothingToRedo, got %v", err)
	}

	if err := s.Move(At(Tableau, 0), At(Foundation, 0)); err != nil {
		t.Fatal(err)
	}
	moved := s.Snapshot()

	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if !s.CanRedo() {
		t.Fatal("CanRedo should be true after undo")
	}
	if err := s.Redo(); err != nil {
		t.Fatalf("Redo() failed: %v", err)
	}

	snap := s.Snapshot()
	if !samePiles(moved.Tableau, snap.Tableau) || !samePiles(moved.Foundations, snap.Foundations) {
		t.Error("redo did not re-apply the move")
	}
	// 30 +10 (move) -10 (undo) +10 (redo)
	if snap.Score != 40 {
		t.Errorf("score = %d, want 40", snap.Score)
	}
	if snap.Moves != 3 {
		t.Errorf("moves = %d, want 3", snap.Moves)
	}
	if s.CanRedo() {
		t.Error("nothing left to redo")
	}
}

func TestRedoUnsupported(t *testing.T) {
	s := resume(drawRules(), &GameState{Tableau: table(7, "9C* 8D*", "9S*")})
	if err := s.Move(At(Tableau, 0), At(Tableau, 1)); err != nil {
		t.Fatal(err)
	}
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if s.CanRedo() {
		t.Error("CanRedo should be false when the variant has no redo")
	}
	if err := s.Redo(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestRecordingAfterUndoDropsRedo(t *testing.T) {
	s := resume(cellRules(), &GameState{Tableau: table(8, "KH* 7C*")})

	if err := s.Move(At(Tableau, 0), At(FreeCell, 0)); err != nil {
		t.Fatal(err)
	}
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if err := s.Move(At(Tableau, 0), At(FreeCell, 3)); err != nil {
		t.Fatal(err)
	}
	if err := s.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestDrawAndRecycle(t *testing.T) {
	s := resume(drawRules(), &GameState{
		Tableau: table(7),
		Stock:   pile("2C 3C 4C"),
		Mode:    "draw-1",
		Score:   150,
	})

	if err := s.Draw(); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	if top, _ := snap.Waste.Top(); !top.Same(card("4C")) || !top.FaceUp {
		t.Fatalf("waste top = %v, want face-up 4C", top)
	}
	if len(snap.Stock) != 2 || snap.Moves != 1 {
		t.Fatalf("stock=%d moves=%d", len(snap.Stock), snap.Moves)
	}

	if err := s.Draw(); err != nil {
		t.Fatal(err)
	}
	if err := s.Draw(); err != nil {
		t.Fatal(err)
	}
	snap = s.Snapshot()
	if len(snap.Stock) != 0 || len(snap.Waste) != 3 {
		t.Fatalf("stock=%d waste=%d", len(snap.Stock), len(snap.Waste))
	}

	// Recycle: waste reversed into a face-down stock, -100.
	if err := s.Draw(); err != nil {
		t.Fatal(err)
	}
	snap = s.Snapshot()
	if len(snap.Waste) != 0 || len(snap.Stock) != 3 {
		t.Fatalf("after recycle stock=%d waste=%d", len(snap.Stock), len(snap.Waste))
	}
	for _, c := range snap.Stock {
		if c.FaceUp {
			t.Errorf("recycled %v should be face-down", c)
		}
	}
	if !samePiles([]Pile{snap.Stock}, []Pile{pile("2C 3C 4C")}) {
		t.Errorf("recycle should restore the original stock order, got %v", snap.Stock)
	}
	if snap.Score != 50 || snap.Moves != 4 {
		t.Errorf("score/moves = %d/%d, want 50/4", snap.Score, snap.Moves)
	}

	// Undo the recycle restores the waste.
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	snap = s.Snapshot()
	if len(snap.Stock) != 0 || len(snap.Waste) != 3 {
		t.Fatalf("after undo stock=%d waste=%d", len(snap.Stock), len(snap.Waste))
	}
	if top, _ := snap.Waste.Top(); !top.Same(card("2C")) {
		t.Errorf("waste top after undo = %v, want 2C", top)
	}
}

func TestDrawThreeCapsAtStockSize(t *testing.T) {
	s := resume(drawRules(), &GameState{Tableau: table(7), Stock: pile("2C 3C"), Mode: "draw-3"})
	if err := s.Draw(); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	if len(snap.Waste) != 2 || len(snap.Stock) != 0 {
		t.Fatalf("stock=%d waste=%d", len(snap.Stock), len(snap.Waste))
	}
	if top, _ := snap.Waste.Top(); !top.Same(card("3C")) {
		t.Errorf("last stock card should top the waste, got %v", top)
	}

	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	snap = s.Snapshot()
	if !samePiles([]Pile{snap.Stock}, []Pile{pile("2C 3C")}) {
		t.Errorf("undo draw should restore stock order and orientation, got %v", snap.Stock)
	}
}

func TestDrawEmpty(t *testing.T) {
	s := resume(drawRules(), &GameState{Tableau: table(7)})
	if err := s.Draw(); !errors.Is(err, ErrStockEmpty) {
		t.Errorf("expected ErrStockEmpty, got %v", err)
	}

	c := resume(cellRules(), &GameState{Tableau: table(8)})
	if err := c.Draw(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
	if err := c.DealFromStock(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestSpiderRunBanking(t *testing.T) {
	run := spiderRun(cards.Spades)
	src := append(pile("5H"), run[:12]...)
	st := &GameState{Tableau: make([]Pile, 10), Score: 20}
	st.Tableau[0] = src
	st.Tableau[1] = Pile{run[12]}

	s := resume(runRules(), st)
	if err := s.Move(At(Tableau, 1), At(Tableau, 0)); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Foundations) != 1 || !IsValidSpiderRun(snap.Foundations[0]) {
		t.Fatalf("expected one banked run, got %v", snap.Foundations)
	}
	if len(snap.Tableau[0]) != 1 || !snap.Tableau[0][0].FaceUp {
		t.Fatalf("tableau 0 = %v, want face-up 5H", snap.Tableau[0])
	}
	if snap.Score != 120 {
		t.Errorf("score = %d, want 120 (+100, not +5)", snap.Score)
	}

	if err := s.Undo(); err != nil {
		t.Fatalf("Undo() failed: %v", err)
	}
	snap = s.Snapshot()
	if len(snap.Foundations) != 0 {
		t.Errorf("undo should un-bank the run, foundations = %d", len(snap.Foundations))
	}
	if len(snap.Tableau[0]) != 13 || len(snap.Tableau[1]) != 1 {
		t.Errorf("piles = %d/%d, want 13/1", len(snap.Tableau[0]), len(snap.Tableau[1]))
	}
	if snap.Score != 110 {
		t.Errorf("score = %d, want 110", snap.Score)
	}

	if err := s.Redo(); err != nil {
		t.Fatalf("Redo() failed: %v", err)
	}
	if got := len(s.Snapshot().Foundations); got != 1 {
		t.Errorf("redo should bank the run again, foundations = %d", got)
	}
}

func TestSpiderFoundationIsNotATarget(t *testing.T) {
	st := &GameState{Tableau: table(10, "AS*")}
	s := resume(runRules(), st)
	if err := s.Move(At(Tableau, 0), At(Foundation, 0)); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("expected ErrInvalidMove, got %v", err)
	}
}

func TestDealFromStock(t *testing.T) {
	st := &GameState{
		Tableau:     table(10, "9H*", "9H*", "9H*", "9H*", "9H*", "9H*", "9H*", "9H*", "9H*", "9H*"),
		StockGroups: []Pile{pile("2S 2S 2S 2S 2S 2S 2S 2S 2S 2S"), pile("3S 3S 3S 3S 3S 3S 3S 3S 3S 4S")},
	}
	s := resume(runRules(), st)

	if err := s.DealFromStock(); err != nil {
		t.Fatalf("DealFromStock() failed: %v", err)
	}
	snap := s.Snapshot()
	if len(snap.StockGroups) != 1 {
		t.Fatalf("stock groups = %d, want 1", len(snap.StockGroups))
	}
	for i, p := range snap.Tableau {
		top, _ := p.Top()
		if len(p) != 2 || !top.FaceUp {
			t.Errorf("pile %d = %v", i, p)
		}
	}
	if top, _ := snap.Tableau[9].Top(); !top.Same(card("4S")) {
		t.Errorf("last group card should land on pile 9, got %v", top)
	}
	if snap.Moves != 1 {
		t.Errorf("moves = %d, want 1", snap.Moves)
	}

	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	snap = s.Snapshot()
	if len(snap.StockGroups) != 2 || !samePiles(snap.StockGroups, st.StockGroups) {
		t.Errorf("undo deal should restore the face-down group, got %v", snap.StockGroups)
	}

	if err := s.DealFromStock(); err != nil {
		t.Fatal(err)
	}
	if err := s.DealFromStock(); err != nil {
		t.Fatal(err)
	}
	if err := s.DealFromStock(); !errors.Is(err, ErrStockEmpty) {
		t.Errorf("expected ErrStockEmpty, got %v", err)
	}
}

func TestDealFromStockWithEmptyColumns(t *testing.T) {
	st := &GameState{
		Tableau:     table(10, "", "9H*", "", "9H*", "9H*", "9H*", "9H*", "9H*", "9H*", "9H*"),
		StockGroups: []Pile{pile("2S 2S 2S 2S 2S 2S 2S 2S 2S 2S")},
	}
	s := resume(runRules(), st)

	if err := s.DealFromStock(); err != nil {
		t.Fatalf("deal with empty columns rejected: %v", err)
	}
	snap := s.Snapshot()
	for _, i := range []int{0, 2} {
		if len(snap.Tableau[i]) != 1 || !snap.Tableau[i][0].FaceUp {
			t.Errorf("empty pile %d after deal = %v", i, snap.Tableau[i])
		}
	}
}

func TestDealBanksCompletedRuns(t *testing.T) {
	run := spiderRun(cards.Hearts)
	st := &GameState{Tableau: make([]Pile, 10)}
	st.Tableau[3] = append(Pile(nil), run[:12]...)
	group := pile("KC KC KC AH KC KC KC KC KC KC")
	st.StockGroups = []Pile{group}

	s := resume(runRules(), st)
	if err := s.DealFromStock(); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	if len(snap.Foundations) != 1 {
		t.Fatalf("expected the dealt ace to complete a run, foundations = %d", len(snap.Foundations))
	}
	if len(snap.Tableau[3]) != 0 {
		t.Errorf("pile 3 should be empty, got %v", snap.Tableau[3])
	}
	if snap.Score != RunPoints {
		t.Errorf("score = %d, want %d", snap.Score, RunPoints)
	}
}

func TestWinIsTerminalAndFiresOnce(t *testing.T) {
	kv := stats.NewMemoryKV()
	var results []Result

	st := &GameState{
		Tableau:     table(7, "KC*"),
		Foundations: []Pile{fullSuit(cards.Spades), fullSuit(cards.Hearts), fullSuit(cards.Diamonds), fullSuit(cards.Clubs)[:12]},
		Difficulty:  "medium",
	}
	s := resume(drawRules(), st, WithKV(kv), WithOnWin(func(r Result) { results = append(results, r) }))

	if err := s.Move(At(Tableau, 0), At(Foundation, 3)); err != nil {
		t.Fatalf("winning move failed: %v", err)
	}

	snap := s.Snapshot()
	if !snap.Complete || !s.Complete() {
		t.Fatal("game should be complete")
	}
	// (10 + 700s bonus) * 1.5 with no time elapsed.
	if snap.Score != 1065 {
		t.Errorf("final score = %d, want 1065", snap.Score)
	}
	if snap.Stats.GamesWon != 1 || snap.Stats.GamesPlayed != 1 || snap.Stats.Best("medium") != 1065 {
		t.Errorf("stats = %+v", snap.Stats)
	}
	if len(results) != 1 || results[0].Score != 1065 || results[0].Variant != "test" {
		t.Fatalf("OnWin results = %+v", results)
	}

	if err := s.Move(At(Foundation, 3), At(Tableau, 0)); !errors.Is(err, ErrGameComplete) {
		t.Errorf("Move after win: %v", err)
	}
	if err := s.Undo(); !errors.Is(err, ErrGameComplete) {
		t.Errorf("Undo after win: %v", err)
	}
	if err := s.Draw(); !errors.Is(err, ErrGameComplete) {
		t.Errorf("Draw after win: %v", err)
	}
	if _, err := s.Hint(); !errors.Is(err, ErrGameComplete) {
		t.Errorf("Hint after win: %v", err)
	}
	if s.CanUndo() {
		t.Error("CanUndo should be false after win")
	}
	if len(results) != 1 {
		t.Errorf("OnWin fired %d times", len(results))
	}

	rec := stats.Load(kv, "test-stats", stats.Record{}, log.New(io.Discard))
	if rec.GamesWon != 1 || rec.BestScores["medium"] != 1065 {
		t.Errorf("persisted stats = %+v", rec)
	}
}

func TestElapsedFreezesOnWin(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	st := &GameState{
		Tableau:     table(7, "KC*"),
		Foundations: []Pile{fullSuit(cards.Spades), fullSuit(cards.Hearts), fullSuit(cards.Diamonds), fullSuit(cards.Clubs)[:12]},
		StartTime:   now.Add(-100 * time.Second),
		Difficulty:  "easy",
	}
	s := resume(drawRules(), st, WithClock(clock))

	if err := s.Move(At(Tableau, 0), At(Foundation, 3)); err != nil {
		t.Fatal(err)
	}
	// (10 + 600) * 1
	if got := s.Snapshot().Score; got != 610 {
		t.Errorf("final score = %d, want 610", got)
	}

	now = now.Add(time.Hour)
	if got := s.Elapsed(); got != 100*time.Second {
		t.Errorf("Elapsed() = %v, want 100s", got)
	}
}

func TestFindValidMovesOrderAndHint(t *testing.T) {
	s := resume(drawRules(), &GameState{Tableau: table(7, "9S*", "8H*", "AD*")})

	moves := s.ValidMoves()
	if len(moves) == 0 {
		t.Fatal("expected moves")
	}
	first := moves[0]
	if first.From != TableauAt(1, 0) || first.To != At(Tableau, 0) {
		t.Errorf("first move = %v -> %v, want tableau[1]@0 -> tableau[0]", first.From, first.To)
	}
	for _, m := range moves {
		if m.From.Index == 0 && m.To.Kind == Tableau {
			t.Errorf("9S alone should not be offered onto an empty pile: %v", m)
		}
	}

	hint, err := s.Hint()
	if err != nil {
		t.Fatal(err)
	}
	if hint.From != TableauAt(2, 0) || hint.To != At(Foundation, 0) {
		t.Errorf("hint = %v -> %v, want foundation move first", hint.From, hint.To)
	}

	played, err := s.MagicMove()
	if err != nil {
		t.Fatal(err)
	}
	if played != hint {
		t.Errorf("magic move %v should match hint %v", played, hint)
	}
	if snap := s.Snapshot(); snap.Score != 10 || len(snap.Foundations[0]) != 1 {
		t.Errorf("magic move should score like a manual move: score=%d", snap.Score)
	}

	if _, err := s.MagicMove(); !errors.Is(err, ErrNoMove) {
		t.Errorf("expected ErrNoMove, got %v", err)
	}
}

func TestHintWithoutMoves(t *testing.T) {
	s := resume(drawRules(), &GameState{Tableau: table(7, "KS*")})
	if _, err := s.Hint(); !errors.Is(err, ErrNoMove) {
		t.Errorf("expected ErrNoMove, got %v", err)
	}
}

func TestFindValidMovesScansWasteAndFreeCells(t *testing.T) {
	st := &GameState{Tableau: table(7, "10S*"), Waste: pile("9H*")}
	moves := FindValidMoves(st, drawRules())
	if len(moves) != 1 || moves[0].From.Kind != Waste || moves[0].To != At(Tableau, 0) {
		t.Errorf("moves = %+v", moves)
	}

	cst := &GameState{Tableau: table(8, "10S*", "2D*"), FreeCells: []Pile{pile("9H*"), nil, nil, nil}, Foundations: make([]Pile, 4)}
	var fromCell []ValidMove
	for _, m := range FindValidMoves(cst, cellRules()) {
		if m.From.Kind == FreeCell {
			fromCell = append(fromCell, m)
		}
	}
	if len(fromCell) == 0 {
		t.Fatal("expected moves out of the free cell")
	}
	if fromCell[0].To != At(Tableau, 0) {
		t.Errorf("first free-cell move = %v", fromCell[0].To)
	}
}

func TestNewGameKeepsStatsAndCountsAbandoned(t *testing.T) {
	kv := stats.NewMemoryKV()
	st := &GameState{
		Tableau:    table(7, "9C* 8D*", "9S*"),
		Difficulty: "hard",
		Mode:       "draw-3",
		Stats:      stats.Stats{BestScores: map[string]int{"hard": 900}, GamesPlayed: 4, GamesWon: 2},
	}
	if err := stats.Save(kv, "test-stats", stats.Record{Difficulty: "hard", Mode: "draw-3", Stats: st.Stats.Clone()}); err != nil {
		t.Fatal(err)
	}
	s := resume(drawRules(), st, WithKV(kv), WithSeed(7))

	if err := s.Move(At(Tableau, 0), At(Tableau, 1)); err != nil {
		t.Fatal(err)
	}
	s.NewGame()

	snap := s.Snapshot()
	if snap.Difficulty != "hard" || snap.Mode != "draw-3" {
		t.Errorf("settings lost: %s/%s", snap.Difficulty, snap.Mode)
	}
	if snap.Stats.GamesPlayed != 5 || snap.Stats.GamesWon != 2 || snap.Stats.Best("hard") != 900 {
		t.Errorf("stats = %+v", snap.Stats)
	}
	if snap.Score != 0 || snap.Moves != 0 || snap.Complete {
		t.Errorf("per-game fields not reset: %+v", snap)
	}
	if s.CanUndo() {
		t.Error("history must not survive a new game")
	}
	if err := CheckInvariants(snap, s.Rules()); err != nil {
		t.Errorf("fresh deal violates invariants: %v", err)
	}

	// A fresh game with no moves is not counted again.
	s.NewGame()
	if got := s.Snapshot().Stats.GamesPlayed; got != 5 {
		t.Errorf("GamesPlayed = %d, want 5", got)
	}
}

func TestNewSessionLoadsStoredSettings(t *testing.T) {
	kv := stats.NewMemoryKV()
	if err := stats.Save(kv, "test-stats", stats.Record{Difficulty: "easy", Mode: "draw-3", Stats: stats.Stats{GamesPlayed: 9}}); err != nil {
		t.Fatal(err)
	}

	s := NewSession(drawRules(), WithKV(kv), WithSeed(1), quiet())
	snap := s.Snapshot()
	if snap.Difficulty != "easy" || snap.Mode != "draw-3" || snap.Stats.GamesPlayed != 9 {
		t.Errorf("loaded %s/%s/%d", snap.Difficulty, snap.Mode, snap.Stats.GamesPlayed)
	}

	if err := kv.Save("test-stats", []byte(`{"difficulty":"impossible","mode":"draw-9"}`)); err != nil {
		t.Fatal(err)
	}
	s = NewSession(drawRules(), WithKV(kv), WithSeed(1), WithDefaults("hard", ""), quiet())
	snap = s.Snapshot()
	if snap.Difficulty != "hard" || snap.Mode != "draw-1" {
		t.Errorf("unknown stored labels should fall back to defaults, got %s/%s", snap.Difficulty, snap.Mode)
	}
}

func TestSeededDealsAreDeterministic(t *testing.T) {
	a := NewSession(drawRules(), WithSeed(42), quiet()).Snapshot()
	b := NewSession(drawRules(), WithSeed(42), quiet()).Snapshot()
	if !samePiles(a.Tableau, b.Tableau) || !samePiles([]Pile{a.Stock}, []Pile{b.Stock}) {
		t.Error("same seed should deal the same table")
	}
}

func TestSetDifficultyAndMode(t *testing.T) {
	kv := stats.NewMemoryKV()
	s := NewSession(drawRules(), WithKV(kv), WithSeed(3), quiet())

	if err := s.SetDifficulty("expert"); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("expected ErrUnknownOption, got %v", err)
	}
	if err := s.SetDifficulty("hard"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetMode("draw-3"); err != nil {
		t.Fatal(err)
	}

	rec := stats.Load(kv, "test-stats", stats.Record{}, log.New(io.Discard))
	if rec.Difficulty != "hard" || rec.Mode != "draw-3" {
		t.Errorf("settings not persisted: %+v", rec)
	}

	c := NewSession(cellRules(), WithSeed(3), quiet())
	if err := c.SetMode("draw-3"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := resume(drawRules(), &GameState{Tableau: table(7, "9C* 8D*", "9S*")})
	snap := s.Snapshot()
	snap.Tableau[0] = nil
	snap.Stats.BestScores["x"] = 1

	again := s.Snapshot()
	if len(again.Tableau[0]) != 2 {
		t.Error("snapshot mutation leaked into session")
	}
	if _, ok := again.Stats.BestScores["x"]; ok {
		t.Error("stats map shared with snapshot")
	}
}
