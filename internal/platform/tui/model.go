package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-solitaire/internal/core"
	"github.com/vovakirdan/tui-solitaire/internal/credits"
	"github.com/vovakirdan/tui-solitaire/internal/registry"
	"github.com/vovakirdan/tui-solitaire/internal/sessions"
	"github.com/vovakirdan/tui-solitaire/internal/solitaire"
	"github.com/vovakirdan/tui-solitaire/internal/stats"
)

// Selection is what the menu hands to the table: a variant and the
// settings to play it with. Empty settings keep the stored ones.
type Selection struct {
	Variant    string
	Mode       string
	Difficulty string
}

// tableView is the part of a session the view needs, copied out under the
// session lock.
type tableView struct {
	state   *solitaire.GameState
	elapsed time.Duration
	canUndo bool
	canRedo bool
	hints   int
	undos   int
	magic   int
	pending credits.Kind
	ad      bool
}

// GameModel is the Bubble Tea model for one solitaire table.
type GameModel struct {
	mgr    *sessions.Manager
	token  sessions.Token
	info   registry.VariantInfo
	table  Table
	screen *core.Screen
	theme  Theme
	keys   KeyMap
	help   help.Model

	cursor   Cursor
	selected *solitaire.Location
	hint     *solitaire.ValidMove
	view     tableView
	message  string

	quitting   bool
	backToMenu bool
}

// NewGameModel opens a session for sel on mgr and returns its table.
func NewGameModel(mgr *sessions.Manager, sel Selection, look stats.Customization, cfg core.RuntimeConfig, opts ...solitaire.Option) (GameModel, error) {
	info, ok := registry.Info(sel.Variant)
	if !ok {
		return GameModel{}, fmt.Errorf("tui: unknown variant %q", sel.Variant)
	}
	if cfg.Seed != 0 {
		opts = append(opts, solitaire.WithSeed(cfg.Seed))
	}
	token, err := mgr.Open(sel.Variant, opts...)
	if err != nil {
		return GameModel{}, err
	}

	var layout solitaire.Layout
	err = mgr.Do(token, func(e *sessions.Entry) error {
		layout = e.Session.Rules().Layout()
		if sel.Difficulty != "" {
			if err := e.Session.SetDifficulty(sel.Difficulty); err != nil {
				return err
			}
		}
		if sel.Mode != "" && sel.Mode != e.Session.Snapshot().Mode {
			if err := e.Session.SetMode(sel.Mode); err != nil {
				return err
			}
			e.Session.NewGame()
		}
		return nil
	})
	if err != nil {
		mgr.Close(token)
		return GameModel{}, err
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := GameModel{
		mgr:    mgr,
		token:  token,
		info:   info,
		table:  NewTable(layout),
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		theme:  NewTheme(look),
		keys:   DefaultKeyMap(),
		help:   h,
	}
	m.refresh()
	m.cursor = TopOf(m.view.state, 0)
	return m, nil
}

// Init starts the clock.
func (m GameModel) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		m.refresh()
		return m, tickCmd()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := m.keys.MapKey(msg)
	if a == core.ActionQuit {
		m.quitting = true
		m.close()
		return m, tea.Quit
	}
	m.apply(a)
	if m.backToMenu {
		m.close()
	}
	return m, nil
}

func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	c, ok := m.table.HitTest(m.view.state, msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	m.cursor = c
	m.apply(core.ActionSelect)
	return m, nil
}

// apply runs one action against the session and refreshes the view.
func (m *GameModel) apply(a core.Action) {
	if m.view.ad {
		m.applyAdPrompt(a)
		return
	}

	m.message = ""
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown:
		m.cursor = m.table.Move(m.view.state, m.cursor, a)
		return
	case core.ActionCancel:
		m.selected = nil
		m.hint = nil
		return
	case core.ActionBack:
		m.backToMenu = true
		return
	}

	var err error
	switch a {
	case core.ActionSelect:
		err = m.selectAtCursor()
	case core.ActionDraw:
		err = m.do(drawOrDeal)
	case core.ActionUndo:
		err = m.do(func(e *sessions.Entry) error {
			if !e.Session.CanUndo() {
				return solitaire.ErrNothingToUndo
			}
			return e.Wallet.Undos.Spend(e.Session.Undo)
		})
	case core.ActionRedo:
		err = m.do(func(e *sessions.Entry) error { return e.Session.Redo() })
	case core.ActionHint:
		err = m.do(func(e *sessions.Entry) error {
			return e.Wallet.Hints.Spend(func() error {
				h, err := e.Session.Hint()
				if err == nil {
					m.hint = &h
				}
				return err
			})
		})
	case core.ActionMagic:
		err = m.do(func(e *sessions.Entry) error {
			return e.Wallet.MagicMoves.Spend(func() error {
				_, err := e.Session.MagicMove()
				return err
			})
		})
	case core.ActionAuto:
		err = m.autoToFoundation()
	case core.ActionNewGame:
		err = m.do(func(e *sessions.Entry) error {
			e.NewGame()
			return nil
		})
		m.selected = nil
	}

	if a != core.ActionHint {
		m.hint = nil
	}
	m.refresh()
	m.fixCursor()
	if err != nil {
		m.message = describe(err)
	}
}

// applyAdPrompt handles keys while the watch-an-ad prompt is showing.
func (m *GameModel) applyAdPrompt(a core.Action) {
	switch a {
	case core.ActionWatchAd, core.ActionSelect:
		m.do(func(e *sessions.Entry) error {
			if k, ok := e.Wallet.Pending(); ok {
				e.Wallet.Counter(k).Grant()
			}
			return nil
		})
		m.message = fmt.Sprintf("+1 %s", m.view.pending)
	case core.ActionCancel, core.ActionBack:
		m.do(func(e *sessions.Entry) error {
			if k, ok := e.Wallet.Pending(); ok {
				e.Wallet.Counter(k).Dismiss()
			}
			return nil
		})
	default:
		return
	}
	m.refresh()
}

func drawOrDeal(e *sessions.Entry) error {
	if e.Session.Rules().Layout().Stock == solitaire.StockDeal {
		return e.Session.DealFromStock()
	}
	return e.Session.Draw()
}

// selectAtCursor draws from the stock, picks up the focused cards, or drops
// the held cards onto the focused pile.
func (m *GameModel) selectAtCursor() error {
	loc := m.table.Location(m.cursor)

	if loc.Kind == solitaire.Stock {
		m.selected = nil
		return m.do(drawOrDeal)
	}

	if m.selected == nil {
		if !m.holdsCards(loc) {
			return nil
		}
		m.selected = &loc
		return nil
	}

	from := *m.selected
	m.selected = nil
	to := solitaire.At(loc.Kind, loc.Index)
	if from.Kind == to.Kind && from.Index == to.Index {
		return nil
	}
	return m.do(func(e *sessions.Entry) error { return e.Session.Move(from, to) })
}

func (m *GameModel) holdsCards(l solitaire.Location) bool {
	st := m.view.state
	switch l.Kind {
	case solitaire.Tableau:
		return l.CardIndex >= 0 && l.CardIndex < len(st.Tableau[l.Index]) && st.Tableau[l.Index][l.CardIndex].FaceUp
	case solitaire.Waste:
		return len(st.Waste) > 0
	case solitaire.FreeCell:
		return len(st.FreeCells[l.Index]) > 0
	case solitaire.Foundation:
		return l.Index < len(st.Foundations) && len(st.Foundations[l.Index]) > 0
	}
	return false
}

// autoToFoundation sends the focused top card to any foundation that takes it.
func (m *GameModel) autoToFoundation() error {
	loc := m.table.Location(m.cursor)
	return m.do(func(e *sessions.Entry) error {
		for _, mv := range e.Session.ValidMoves() {
			if mv.ToFoundation() && mv.From.Kind == loc.Kind && mv.From.Index == loc.Index && mv.Count == 1 {
				return e.Session.Move(mv.From, mv.To)
			}
		}
		return solitaire.ErrNoMove
	})
}

func (m *GameModel) do(fn func(*sessions.Entry) error) error {
	return m.mgr.Do(m.token, fn)
}

// refresh copies the session into the view.
func (m *GameModel) refresh() {
	//nolint:errcheck // an unknown token leaves the last view in place
	m.mgr.Do(m.token, func(e *sessions.Entry) error {
		k, ad := e.Wallet.Pending()
		m.view = tableView{
			state:   e.Session.Snapshot(),
			elapsed: e.Session.Elapsed(),
			canUndo: e.Session.CanUndo(),
			canRedo: e.Session.CanRedo(),
			hints:   e.Wallet.Hints.Remaining(),
			undos:   e.Wallet.Undos.Remaining(),
			magic:   e.Wallet.MagicMoves.Remaining(),
			pending: k,
			ad:      ad,
		}
		return nil
	})
}

// fixCursor keeps the cursor on a real card after the table changed.
func (m *GameModel) fixCursor() {
	if m.cursor.Row != rowTableau {
		return
	}
	pile := m.view.state.Tableau[m.cursor.Col]
	first := pile.FaceUpFrom()
	if m.cursor.Card >= len(pile) || m.cursor.Card < first {
		m.cursor.Card = len(pile) - 1
	}
}

func (m *GameModel) close() {
	m.mgr.Close(m.token)
}

func describe(err error) string {
	switch {
	case errors.Is(err, credits.ErrNoCredits):
		return "No credits left"
	case errors.Is(err, solitaire.ErrInvalidMove):
		return "Can't move there"
	case errors.Is(err, solitaire.ErrStockEmpty):
		return "Stock is empty"
	case errors.Is(err, solitaire.ErrNothingToUndo):
		return "Nothing to undo"
	case errors.Is(err, solitaire.ErrNothingToRedo):
		return "Nothing to redo"
	case errors.Is(err, solitaire.ErrUnsupported):
		return "Not available in this game"
	case errors.Is(err, solitaire.ErrNoMove):
		return "No move found"
	case errors.Is(err, solitaire.ErrGameComplete):
		return "Game over - press n for a new game"
	default:
		return err.Error()
	}
}

// View renders the table.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	st := m.view.state
	s := m.screen
	s.Clear()

	elapsed := m.view.elapsed.Round(time.Second)
	status := fmt.Sprintf(" %s  %s  Score %d  Moves %d  %s", m.info.Title, st.Difficulty, st.Score, st.Moves, elapsed)
	if st.Mode != "" {
		status += "  " + st.Mode
	}
	s.DrawTextColor(0, statusY, status, core.ColorTitle)

	m.table.Draw(s, st, highlights{cursor: m.cursor, selected: m.selected, hint: m.hint})

	y := s.Height() - 3
	creditLine := fmt.Sprintf(" Hints %d  Undos %d  Magic %d", m.view.hints, m.view.undos, m.view.magic)
	if m.view.canRedo {
		creditLine += "  redo available"
	}
	s.DrawTextColor(0, y, padRight(creditLine, s.Width()), core.ColorStatus)
	if m.message != "" {
		s.DrawTextColor(0, y+1, " "+m.message, core.ColorDim)
	}

	switch {
	case st.Complete:
		m.drawBanner(s, "YOU WIN!", fmt.Sprintf("Final score %d in %d moves", st.Score, st.Moves), core.ColorWin)
	case m.view.ad:
		m.drawBanner(s, fmt.Sprintf("Out of %ss", m.view.pending),
			"Press a to watch an ad for one more, esc to skip", core.ColorTitle)
	}

	return RenderScreen(s, m.theme) + "\n" + m.help.View(m.keys)
}

func (m GameModel) drawBanner(s *core.Screen, title, body string, c core.Color) {
	w := max(len([]rune(body)), len([]rune(title))) + 4
	x := max((s.Width()-w)/2, 0)
	y := max(s.Height()/2-2, 0)
	r := core.NewRect(x, y, w, 4)
	for row := r.Y + 1; row < r.Bottom()-1; row++ {
		s.DrawText(r.X+1, row, padRight("", w-2))
	}
	s.DrawBox(r, c)
	s.DrawTextCentered(y+1, title, c)
	s.DrawTextCentered(y+2, body, core.ColorStatus)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one table in the local terminal until the player quits or goes
// back. It reports whether the player asked for the menu.
func Run(mgr *sessions.Manager, sel Selection, look stats.Customization, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model, err := NewGameModel(mgr, sel, look, cfg)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		model.close()
		return false, err
	}
	if gm, ok := final.(GameModel); ok {
		return gm.BackToMenu(), nil
	}
	return false, nil
}
