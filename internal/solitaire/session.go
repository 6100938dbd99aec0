package solitaire

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-solitaire/internal/cards"
	"github.com/vovakirdan/tui-solitaire/internal/stats"
)

// Result describes a won game. It is passed to the OnWin hook.
type Result struct {
	Variant    string
	Difficulty string
	Mode       string
	Score      int
	Moves      int
	Elapsed    time.Duration
}

// Option configures a Session.
type Option func(*Session)

// WithKV sets the store used to load and save stats. Without it stats live in memory only.
func WithKV(kv stats.KV) Option {
	return func(s *Session) { s.kv = kv }
}

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSeed makes deals deterministic. Seed 0 uses the current time.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		if seed != 0 {
			s.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithOnWin registers a hook called once when a game is won.
func WithOnWin(fn func(Result)) Option {
	return func(s *Session) { s.onWin = fn }
}

// WithDefaults sets the difficulty and mode used when nothing is stored yet.
// Unknown labels are ignored.
func WithDefaults(difficulty, mode string) Option {
	return func(s *Session) {
		if difficulty != "" {
			s.defaults.Difficulty = difficulty
		}
		if mode != "" {
			s.defaults.Mode = mode
		}
	}
}

// Session is the state machine for one player's game of one variant.
// It is not safe for concurrent use; hosts serialize calls per session.
type Session struct {
	rules   Rules
	layout  Layout
	state   *GameState
	history *History

	rng      *rand.Rand
	kv       stats.KV
	logger   *log.Logger
	now      func() time.Time
	onWin    func(Result)
	defaults stats.Record

	won        bool
	finishedAt time.Time
}

func newSession(rules Rules, opts []Option) *Session {
	s := &Session{
		rules:   rules,
		layout:  rules.Layout(),
		history: NewHistory(),
		logger:  log.Default(),
		now:     time.Now,
		defaults: stats.Record{
			Difficulty: DefaultDifficulty,
			Mode:       defaultMode(rules),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(s.now().UnixNano()))
	}
	if !hasLabel(rules.Difficulties(), s.defaults.Difficulty) {
		s.defaults.Difficulty = DefaultDifficulty
	}
	if !hasLabel(rules.Modes(), s.defaults.Mode) {
		s.defaults.Mode = defaultMode(rules)
	}
	return s
}

// NewSession loads stored settings and stats for the variant and deals the first game.
func NewSession(rules Rules, opts ...Option) *Session {
	s := newSession(rules, opts)

	def := s.defaults
	def.BestScores = make(map[string]int)
	rec := stats.Load(s.kv, stats.Key(rules.ID()), def, s.logger)
	if !hasLabel(rules.Difficulties(), rec.Difficulty) {
		rec.Difficulty = def.Difficulty
	}
	if !hasLabel(rules.Modes(), rec.Mode) {
		rec.Mode = def.Mode
	}

	s.state = &GameState{
		Difficulty: rec.Difficulty,
		Mode:       rec.Mode,
		Stats:      rec.Stats,
	}
	s.deal()
	return s
}

// NewSessionFromState resumes play on an existing table with an empty history.
// The state is copied; the caller keeps ownership of st.
func NewSessionFromState(rules Rules, st *GameState, opts ...Option) *Session {
	s := newSession(rules, opts)
	s.state = st.Clone()
	if s.state.StartTime.IsZero() {
		s.state.StartTime = s.now()
	}
	if s.state.Stats.BestScores == nil {
		s.state.Stats.BestScores = make(map[string]int)
	}
	s.won = s.state.Complete
	return s
}

// Rules returns the variant rules driving this session.
func (s *Session) Rules() Rules { return s.rules }

// Snapshot returns a deep copy of the current state.
func (s *Session) Snapshot() *GameState { return s.state.Clone() }

// Complete reports whether the current game has been won.
func (s *Session) Complete() bool { return s.state.Complete }

// CanUndo reports whether Undo would succeed.
func (s *Session) CanUndo() bool { return !s.state.Complete && s.history.CanUndo() }

// CanRedo reports whether Redo would succeed.
func (s *Session) CanRedo() bool {
	return !s.state.Complete && s.rules.SupportsRedo() && s.history.CanRedo()
}

// Elapsed returns the time since the deal, frozen once the game is won.
func (s *Session) Elapsed() time.Duration {
	if s.state.Complete && !s.finishedAt.IsZero() {
		return s.finishedAt.Sub(s.state.StartTime)
	}
	return s.now().Sub(s.state.StartTime)
}

// NewGame abandons the current game and deals a fresh one. An abandoned game
// with at least one move counts as played and lost.
func (s *Session) NewGame() {
	if !s.state.Complete && s.state.Moves > 0 {
		difficulty := s.state.Difficulty
		s.updateStats(func(r *stats.Record) { r.Update(false, 0, difficulty) })
	}
	s.deal()
}

func (s *Session) deal() {
	d := s.rules.Deal(s.rng, s.state.Mode)

	st := s.state
	st.Tableau = d.Tableau
	if s.layout.BankRuns {
		st.Foundations = make([]Pile, 0, s.layout.Foundations)
	} else {
		st.Foundations = make([]Pile, s.layout.Foundations)
	}
	st.FreeCells = make([]Pile, s.layout.FreeCells)
	st.Stock = d.Stock
	st.Waste = nil
	st.StockGroups = d.StockGroups
	st.Score = 0
	st.Moves = 0
	st.StartTime = s.now()
	st.Complete = false

	s.history = NewHistory()
	s.won = false
	s.finishedAt = time.Time{}
	s.assertInvariants("deal")
}

// SetDifficulty changes the difficulty and persists it. It applies to the
// current game's final score.
func (s *Session) SetDifficulty(difficulty string) error {
	if !hasLabel(s.rules.Difficulties(), difficulty) {
		return fmt.Errorf("%w: difficulty %q", ErrUnknownOption, difficulty)
	}
	s.state.Difficulty = difficulty
	s.updateStats(func(r *stats.Record) { r.Difficulty = difficulty })
	return nil
}

// SetMode changes the variant mode and persists it. It takes effect at the next deal.
func (s *Session) SetMode(mode string) error {
	if len(s.rules.Modes()) == 0 {
		return ErrUnsupported
	}
	if !hasLabel(s.rules.Modes(), mode) {
		return fmt.Errorf("%w: mode %q", ErrUnknownOption, mode)
	}
	s.state.Mode = mode
	s.updateStats(func(r *stats.Record) { r.Mode = mode })
	return nil
}

// Draw flips cards from the stock onto the waste, or recycles the waste
// back into the stock when the stock is empty.
func (s *Session) Draw() error {
	if s.state.Complete {
		return ErrGameComplete
	}
	drawer, ok := s.rules.(Drawer)
	if !ok || s.layout.Stock != StockDraw {
		return ErrUnsupported
	}

	switch {
	case len(s.state.Stock) > 0:
		act := s.applyDraw(drawer.DrawCount(s.state.Mode))
		s.commit(act, 0)
	case len(s.state.Waste) > 0:
		act := s.applyRecycle()
		s.state.Score = floorZero(s.state.Score - drawer.RecyclePenalty())
		s.commit(act, 0)
	default:
		return ErrStockEmpty
	}
	return nil
}

// DealFromStock deals the next stock group, one face-up card per tableau pile.
func (s *Session) DealFromStock() error {
	if s.state.Complete {
		return ErrGameComplete
	}
	if s.layout.Stock != StockDeal {
		return ErrUnsupported
	}
	if len(s.state.StockGroups) == 0 {
		return ErrStockEmpty
	}

	act := s.applyDeal()
	s.commit(act, s.rules.ScoreDelta(RunCompleted)*len(act.Runs))
	s.checkWin()
	return nil
}

// Move transfers cards between piles. For tableau sources, from.CardIndex
// selects the lowest card of the group; -1 means the top card.
func (s *Session) Move(from, to Location) error {
	if s.state.Complete {
		return ErrGameComplete
	}
	moving, ok := validateMove(s.state, s.rules, from, to)
	if !ok {
		return ErrInvalidMove
	}

	act := s.applyMove(from, to, len(moving))
	s.commit(act, s.moveDelta(act))
	s.checkWin()
	return nil
}

func (s *Session) moveDelta(act Action) int {
	switch act.To.Kind {
	case Foundation:
		return s.rules.ScoreDelta(MoveToFoundation)
	case FreeCell:
		return s.rules.ScoreDelta(MoveToFreeCell)
	}
	if len(act.Runs) > 0 {
		return s.rules.ScoreDelta(RunCompleted) * len(act.Runs)
	}
	return s.rules.ScoreDelta(MoveToTableau)
}

// Undo inverts the last applied action. Cards flipped face-up by the
// original action stay face-up. Costs UndoPenalty points, floored at zero.
func (s *Session) Undo() error {
	if s.state.Complete {
		return ErrGameComplete
	}
	act, ok := s.history.Current()
	if !ok {
		return ErrNothingToUndo
	}

	s.revert(act)
	s.history.back()
	s.state.Moves++
	s.state.Score = floorZero(s.state.Score - UndoPenalty)
	s.assertInvariants("undo")
	return nil
}

// Redo re-applies the most recently undone action for RedoCredit points.
func (s *Session) Redo() error {
	if s.state.Complete {
		return ErrGameComplete
	}
	if !s.rules.SupportsRedo() {
		return ErrUnsupported
	}
	act, ok := s.history.Next()
	if !ok {
		return ErrNothingToRedo
	}

	s.replay(act)
	s.history.forward()
	s.state.Moves++
	s.state.Score += RedoCredit
	s.assertInvariants("redo")
	s.checkWin()
	return nil
}

// Hint returns the move a player should consider next.
func (s *Session) Hint() (ValidMove, error) {
	if s.state.Complete {
		return ValidMove{}, ErrGameComplete
	}
	m, ok := PickHint(FindValidMoves(s.state, s.rules))
	if !ok {
		return ValidMove{}, ErrNoMove
	}
	return m, nil
}

// MagicMove plays the first available foundation move and returns it.
func (s *Session) MagicMove() (ValidMove, error) {
	if s.state.Complete {
		return ValidMove{}, ErrGameComplete
	}
	m, ok := FirstFoundationMove(FindValidMoves(s.state, s.rules))
	if !ok {
		return ValidMove{}, ErrNoMove
	}
	if err := s.Move(m.From, m.To); err != nil {
		return ValidMove{}, err
	}
	return m, nil
}

// ValidMoves lists every legal move in scan order.
func (s *Session) ValidMoves() []ValidMove {
	if s.state.Complete {
		return nil
	}
	return FindValidMoves(s.state, s.rules)
}

func (s *Session) commit(act Action, delta int) {
	s.state.Score += delta
	s.state.Moves++
	s.history.Record(act)
	s.assertInvariants(act.Kind.String())
}

func (s *Session) checkWin() {
	if s.won || !s.rules.CheckWin(s.state) {
		return
	}
	s.won = true
	s.finishedAt = s.now()

	st := s.state
	elapsed := s.finishedAt.Sub(st.StartTime)
	final := CalculateScore(st.Score, elapsed, s.rules.TimeBonusCap(), s.rules.Multiplier(st.Difficulty))
	st.Score = final
	st.Complete = true
	difficulty := st.Difficulty
	s.updateStats(func(r *stats.Record) { r.Update(true, final, difficulty) })

	s.logger.Info("game won", "variant", s.rules.ID(), "score", final, "moves", st.Moves, "elapsed", elapsed.Round(time.Second))

	if s.onWin != nil {
		s.onWin(Result{
			Variant:    s.rules.ID(),
			Difficulty: st.Difficulty,
			Mode:       st.Mode,
			Score:      final,
			Moves:      st.Moves,
			Elapsed:    elapsed,
		})
	}
}

// updateStats applies fn to the stored record and refreshes the session's
// copy of the aggregates from the merged result. Other sessions of the same
// variant may have written the record since this one loaded it.
func (s *Session) updateStats(fn func(*stats.Record)) {
	if s.kv == nil {
		rec := stats.Record{Difficulty: s.state.Difficulty, Mode: s.state.Mode, Stats: s.state.Stats.Clone()}
		fn(&rec)
		s.state.Stats = rec.Stats
		return
	}

	def := s.defaults
	def.BestScores = make(map[string]int)
	rec, err := stats.Apply(s.kv, stats.Key(s.rules.ID()), def, s.logger, fn)
	if err != nil {
		s.logger.Warn("cannot save stats", "variant", s.rules.ID(), "err", err)
	}
	s.state.Stats = rec.Stats
}

// applyDraw moves up to n cards from the stock top to the waste, face-up.
func (s *Session) applyDraw(n int) Action {
	st := s.state
	if n < 1 {
		n = 1
	}
	if n > len(st.Stock) {
		n = len(st.Stock)
	}
	drawn := faceUp(st.Stock[len(st.Stock)-n:])
	st.Stock = st.Stock[:len(st.Stock)-n]
	st.Waste = append(st.Waste, drawn...)

	return Action{
		Kind:  ActionDraw,
		From:  At(Stock, 0),
		To:    At(Waste, 0),
		Cards: append([]cards.Card(nil), drawn...),
	}
}

// applyRecycle turns the waste over into a face-down stock.
func (s *Session) applyRecycle() Action {
	st := s.state
	prev := append([]cards.Card(nil), st.Waste...)

	stock := make(Pile, len(st.Waste))
	for i, c := range st.Waste {
		stock[len(st.Waste)-1-i] = c.Down()
	}
	st.Stock = stock
	st.Waste = nil

	return Action{
		Kind:  ActionRecycle,
		From:  At(Waste, 0),
		To:    At(Stock, 0),
		Cards: prev,
	}
}

// applyDeal pops the last stock group and deals it across the tableau,
// banking any runs it completes.
func (s *Session) applyDeal() Action {
	st := s.state
	last := len(st.StockGroups) - 1
	group := faceUp(st.StockGroups[last])
	st.StockGroups = st.StockGroups[:last]

	n := len(group)
	if n > len(st.Tableau) {
		n = len(st.Tableau)
	}
	for k := 0; k < n; k++ {
		st.Tableau[k] = append(st.Tableau[k], group[k])
	}

	act := Action{
		Kind:  ActionDeal,
		From:  At(Stock, 0),
		To:    At(Tableau, 0),
		Cards: group[:n],
	}
	if s.layout.BankRuns {
		for i := range st.Tableau {
			if run, ok := s.bankRun(i); ok {
				act.Runs = append(act.Runs, run)
			}
		}
	}
	return act
}

// applyMove lifts the top n cards of from onto to. It assumes validation passed.
func (s *Session) applyMove(from, to Location, n int) Action {
	src := s.state.pile(from)
	dst := s.state.pile(to)

	start := len(*src) - n
	moved := append([]cards.Card(nil), (*src)[start:]...)
	*src = (*src)[:start]

	flipped := false
	if from.Kind == Tableau {
		flipped = flipTop(src)
	}
	*dst = append(*dst, moved...)

	from.CardIndex = start
	to.CardIndex = -1
	act := Action{
		Kind:    ActionMove,
		From:    from,
		To:      to,
		Cards:   moved,
		Flipped: flipped,
	}
	if s.layout.BankRuns && to.Kind == Tableau {
		if run, ok := s.bankRun(to.Index); ok {
			act.Runs = append(act.Runs, run)
		}
	}
	return act
}

// bankRun lifts a completed King-to-Ace run off the top of a tableau pile
// into a new foundation and flips the exposed card.
func (s *Session) bankRun(i int) (BankedRun, bool) {
	p := &s.state.Tableau[i]
	if len(*p) < cards.RanksPerSuit {
		return BankedRun{}, false
	}
	start := len(*p) - cards.RanksPerSuit
	tail := (*p)[start:]
	for _, c := range tail {
		if !c.FaceUp {
			return BankedRun{}, false
		}
	}
	if !IsValidSpiderRun(tail) {
		return BankedRun{}, false
	}

	run := append(Pile(nil), tail...)
	*p = (*p)[:start]
	flipTop(p)
	s.state.Foundations = append(s.state.Foundations, run)
	return BankedRun{Pile: i, Cards: append([]cards.Card(nil), run...)}, true
}

// unbank returns banked runs to their tableau piles, newest first.
func (s *Session) unbank(runs []BankedRun) {
	st := s.state
	for i := len(runs) - 1; i >= 0; i-- {
		r := runs[i]
		last := len(st.Foundations) - 1
		st.Foundations = st.Foundations[:last]
		st.Tableau[r.Pile] = append(st.Tableau[r.Pile], r.Cards...)
	}
}

func (s *Session) revert(act Action) {
	st := s.state
	switch act.Kind {
	case ActionMove:
		s.unbank(act.Runs)
		dst := st.pile(act.To)
		*dst = (*dst)[:len(*dst)-len(act.Cards)]
		src := st.pile(act.From)
		*src = append(*src, act.Cards...)
	case ActionDraw:
		st.Waste = st.Waste[:len(st.Waste)-len(act.Cards)]
		st.Stock = append(st.Stock, faceDown(act.Cards)...)
	case ActionRecycle:
		st.Waste = append(Pile(nil), act.Cards...)
		st.Stock = nil
	case ActionDeal:
		s.unbank(act.Runs)
		for k := range act.Cards {
			st.Tableau[k] = st.Tableau[k][:len(st.Tableau[k])-1]
		}
		st.StockGroups = append(st.StockGroups, faceDown(act.Cards))
	}
}

func (s *Session) replay(act Action) {
	switch act.Kind {
	case ActionMove:
		s.applyMove(act.From, act.To, len(act.Cards))
	case ActionDraw:
		s.applyDraw(len(act.Cards))
	case ActionRecycle:
		s.applyRecycle()
	case ActionDeal:
		s.applyDeal()
	}
}

// validateMove derives the moving cards for from and checks them against to.
func validateMove(st *GameState, rules Rules, from, to Location) ([]cards.Card, bool) {
	if from.samePile(to) {
		return nil, false
	}
	moving, ok := pickUp(st, rules, from)
	if !ok {
		return nil, false
	}

	layout := rules.Layout()
	target := st.pile(to)
	if target == nil {
		return nil, false
	}

	switch to.Kind {
	case Foundation:
		if layout.BankRuns || len(moving) != 1 {
			return nil, false
		}
		return moving, rules.ValidateFoundationMove(moving, *target)
	case Tableau:
		return moving, rules.ValidateTableauMove(st, moving, *target)
	case FreeCell:
		return moving, len(moving) == 1 && len(*target) == 0
	default:
		return nil, false
	}
}

// pickUp returns a copy of the cards a move from l would lift.
func pickUp(st *GameState, rules Rules, l Location) ([]cards.Card, bool) {
	p := st.pile(l)
	if p == nil || len(*p) == 0 {
		return nil, false
	}
	top := len(*p) - 1

	switch l.Kind {
	case Tableau:
		idx := l.CardIndex
		if idx < 0 {
			idx = top
		}
		if idx > top || !rules.CanPickUp(*p, idx) {
			return nil, false
		}
		return append([]cards.Card(nil), (*p)[idx:]...), true
	case Foundation:
		if rules.Layout().BankRuns {
			return nil, false
		}
	case Waste, FreeCell:
	default:
		return nil, false
	}
	if l.CardIndex >= 0 && l.CardIndex != top {
		return nil, false
	}
	return []cards.Card{(*p)[top]}, true
}
