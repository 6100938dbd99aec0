package core

// Color is a semantic foreground role for a screen cell.
// The platform maps roles to terminal colors through a theme.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRedSuit
	ColorBlackSuit
	ColorCardBack
	ColorEmptySlot
	ColorCursor
	ColorSelected
	ColorHint
	ColorTitle
	ColorStatus
	ColorDim
	ColorWin
)
