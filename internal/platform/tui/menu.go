package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-solitaire/internal/core"
	"github.com/vovakirdan/tui-solitaire/internal/registry"
	"github.com/vovakirdan/tui-solitaire/internal/stats"
)

// menuStep is a stage of the picker.
type menuStep int

const (
	stepVariant menuStep = iota
	stepMode
	stepDifficulty
)

// MenuModel is the Bubble Tea model for the variant picker. It walks from
// variant to mode to difficulty and edits the shared customization.
type MenuModel struct {
	variants []registry.VariantInfo
	records  map[string]stats.Record
	kv       stats.KV
	logger   *log.Logger
	look     stats.Customization

	step   menuStep
	cursor int
	choice Selection

	width, height int
	config        core.RuntimeConfig

	quitting       bool
	done           bool
	openScoreboard bool
}

// NewMenuModel creates a new menu model. kv may be nil.
func NewMenuModel(kv stats.KV, cfg core.RuntimeConfig, logger *log.Logger) MenuModel {
	if logger == nil {
		logger = log.Default()
	}
	variants := registry.List()
	records := make(map[string]stats.Record, len(variants))
	for _, v := range variants {
		records[v.ID] = stats.Load(kv, stats.Key(v.ID), stats.Record{}, logger)
	}

	return MenuModel{
		variants: variants,
		records:  records,
		kv:       kv,
		logger:   logger,
		look:     stats.LoadCustomization(kv, logger),
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
		config:   cfg,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// options returns the labels shown at the current step.
func (m MenuModel) options() []string {
	switch m.step {
	case stepMode:
		return m.current().Modes
	case stepDifficulty:
		return m.current().Difficulties
	default:
		out := make([]string, len(m.variants))
		for i, v := range m.variants {
			out[i] = v.Title
		}
		return out
	}
}

func (m MenuModel) current() registry.VariantInfo {
	for _, v := range m.variants {
		if v.ID == m.choice.Variant {
			return v
		}
	}
	return registry.VariantInfo{}
}

// cursorOn places the cursor on label, or the first option.
func (m *MenuModel) cursorOn(label string) {
	m.cursor = 0
	for i, o := range m.options() {
		if o == label {
			m.cursor = i
		}
	}
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.options())-1 {
			m.cursor++
		}

	case MenuActionSelect:
		return m.advance()

	case MenuActionBack:
		switch m.step {
		case stepDifficulty:
			if len(m.current().Modes) > 0 {
				m.step = stepMode
				m.cursorOn(m.choice.Mode)
			} else {
				m.step = stepVariant
				m.cursorOn(m.current().Title)
			}
		case stepMode:
			m.step = stepVariant
			m.cursorOn(m.current().Title)
		}

	case MenuActionScoreboard:
		if m.step == stepVariant {
			m.openScoreboard = true
			return m, tea.Quit
		}

	case MenuActionCardBack:
		m.look.CardBack = stats.Cycle(stats.CardBacks, m.look.CardBack)
		m.saveLook()
	case MenuActionTable:
		m.look.Table = stats.Cycle(stats.Tables, m.look.Table)
		m.saveLook()
	case MenuActionCardStyle:
		m.look.CardStyle = stats.Cycle(stats.CardStyles, m.look.CardStyle)
		m.saveLook()
	}

	return m, nil
}

// advance commits the highlighted option and moves to the next step.
func (m MenuModel) advance() (tea.Model, tea.Cmd) {
	opts := m.options()
	if len(opts) == 0 {
		return m, nil
	}

	switch m.step {
	case stepVariant:
		v := m.variants[m.cursor]
		rec := m.records[v.ID]
		m.choice = Selection{Variant: v.ID, Mode: rec.Mode, Difficulty: rec.Difficulty}
		if len(v.Modes) > 0 {
			m.step = stepMode
			m.cursorOn(m.choice.Mode)
			return m, nil
		}
		m.step = stepDifficulty
		m.cursorOn(m.choice.Difficulty)

	case stepMode:
		m.choice.Mode = opts[m.cursor]
		m.step = stepDifficulty
		m.cursorOn(m.choice.Difficulty)

	case stepDifficulty:
		m.choice.Difficulty = opts[m.cursor]
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *MenuModel) saveLook() {
	if m.kv == nil {
		return
	}
	if err := stats.SaveCustomization(m.kv, m.look); err != nil {
		m.logger.Warn("cannot save customization", "err", err)
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  S O L I T A I R E  ", m.width)))
	b.WriteString("\n\n")

	subtitle := "Select a game"
	switch m.step {
	case stepMode:
		subtitle = m.current().Title + " - mode"
	case stepDifficulty:
		subtitle = m.current().Title + " - difficulty"
	}
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	for i, label := range m.options() {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := cursor + label
		if m.step == stepVariant {
			line += m.bestLine(m.variants[i].ID)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	look := fmt.Sprintf("Back: %s (c)  Table: %s (t)  Cards: %s (y)", m.look.CardBack, m.look.Table, m.look.CardStyle)
	b.WriteString(dimStyle.Render(centerText(look, m.width)))
	b.WriteString("\n\n")

	controls := "Up/Down: Navigate  |  Enter: Select  |  Esc: Back  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// bestLine summarizes a variant's stored stats for the picker.
func (m MenuModel) bestLine(variant string) string {
	rec := m.records[variant]
	if rec.GamesPlayed == 0 {
		return ""
	}
	best := 0
	for _, s := range rec.BestScores {
		best = max(best, s)
	}
	return fmt.Sprintf("   best %d, won %d/%d", best, rec.GamesWon, rec.GamesPlayed)
}

// Selected returns the finished selection, or nil if none was made.
func (m MenuModel) Selected() *Selection {
	if !m.done {
		return nil
	}
	sel := m.choice
	return &sel
}

// Customization returns the look as edited in the menu.
func (m MenuModel) Customization() stats.Customization {
	return m.look
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Selection       Selection
	Customization   stats.Customization
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(kv stats.KV, cfg core.RuntimeConfig, logger *log.Logger) (MenuResult, error) {
	model := NewMenuModel(kv, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config:        m.Config(),
		Customization: m.Customization(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.Selection = *m.Selected()
	default:
		result.Quit = true
	}
	return result, nil
}
