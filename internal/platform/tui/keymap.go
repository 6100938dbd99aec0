package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-solitaire/internal/core"
)

// KeyMap holds the table key bindings. It doubles as the help.KeyMap for
// the status bar.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Cancel  key.Binding
	Draw    key.Binding
	Undo    key.Binding
	Redo    key.Binding
	Hint    key.Binding
	Magic   key.Binding
	Auto    key.Binding
	NewGame key.Binding
	WatchAd key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default table bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "pick/drop")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Draw:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "draw/deal")),
		Undo:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Redo:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "redo")),
		Hint:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "hint")),
		Magic:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "magic")),
		Auto:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "to foundation")),
		NewGame: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new game")),
		WatchAd: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "watch ad")),
		Back:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "menu")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Draw, k.Undo, k.Hint, k.Magic, k.NewGame, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Select, k.Cancel, k.Draw, k.Auto},
		{k.Undo, k.Redo, k.Hint, k.Magic},
		{k.NewGame, k.WatchAd, k.Back, k.Quit},
	}
}

// MapKey translates a key message to a table action.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	bindings := []struct {
		b key.Binding
		a core.Action
	}{
		{k.Quit, core.ActionQuit},
		{k.Left, core.ActionLeft},
		{k.Right, core.ActionRight},
		{k.Up, core.ActionUp},
		{k.Down, core.ActionDown},
		{k.Select, core.ActionSelect},
		{k.Cancel, core.ActionCancel},
		{k.Draw, core.ActionDraw},
		{k.Undo, core.ActionUndo},
		{k.Redo, core.ActionRedo},
		{k.Hint, core.ActionHint},
		{k.Magic, core.ActionMagic},
		{k.Auto, core.ActionAuto},
		{k.NewGame, core.ActionNewGame},
		{k.WatchAd, core.ActionWatchAd},
		{k.Back, core.ActionBack},
	}
	for _, kb := range bindings {
		if key.Matches(msg, kb.b) {
			return kb.a
		}
	}
	return core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionCardBack
	MenuActionTable
	MenuActionCardStyle
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "left", "h":
		return MenuActionLeft
	case "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "c":
		return MenuActionCardBack
	case "t":
		return MenuActionTable
	case "y":
		return MenuActionCardStyle
	}
	return MenuActionNone
}
