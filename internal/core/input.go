package core

// Action is a semantic table action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left, h
	ActionRight          // Right, l
	ActionUp             // Up, k - top row, or a deeper card in a column
	ActionDown           // Down, j
	ActionSelect         // Enter, Space - pick up or drop
	ActionCancel         // Esc - drop the selection
	ActionDraw           // d - draw from the stock or deal a row
	ActionUndo           // u
	ActionRedo           // r
	ActionHint           // ?
	ActionMagic          // m - auto-play a foundation move
	ActionAuto           // f - send the focused card home
	ActionNewGame        // n
	ActionWatchAd        // a - accept an ad for one more credit
	ActionBack           // b - back to the menu
	ActionQuit           // q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionSelect:
		return "Select"
	case ActionCancel:
		return "Cancel"
	case ActionDraw:
		return "Draw"
	case ActionUndo:
		return "Undo"
	case ActionRedo:
		return "Redo"
	case ActionHint:
		return "Hint"
	case ActionMagic:
		return "Magic"
	case ActionAuto:
		return "Auto"
	case ActionNewGame:
		return "NewGame"
	case ActionWatchAd:
		return "WatchAd"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
