package solitaire

import "errors"

// Rejections returned by Session. None of them leave a partial mutation behind.
var (
	ErrInvalidMove   = errors.New("solitaire: invalid move")
	ErrGameComplete  = errors.New("solitaire: game is complete")
	ErrStockEmpty    = errors.New("solitaire: stock is empty")
	ErrNothingToUndo = errors.New("solitaire: nothing to undo")
	ErrNothingToRedo = errors.New("solitaire: nothing to redo")
	ErrUnsupported   = errors.New("solitaire: not supported by this variant")
	ErrNoMove        = errors.New("solitaire: no valid move")
	ErrUnknownOption = errors.New("solitaire: unknown option")
)
