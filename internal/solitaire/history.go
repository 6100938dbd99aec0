package solitaire

import "github.com/vovakirdan/tui-solitaire/internal/cards"

// ActionKind identifies what an Action did.
type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionDraw
	ActionRecycle
	ActionDeal
)

func (k ActionKind) String() string {
	switch k {
	case ActionMove:
		return "move"
	case ActionDraw:
		return "draw"
	case ActionRecycle:
		return "recycle"
	case ActionDeal:
		return "deal"
	default:
		return "unknown"
	}
}

// BankedRun records a completed run lifted from a tableau pile into the foundations.
type BankedRun struct {
	Pile  int
	Cards []cards.Card
}

// Action is one history entry. It carries enough to replay the transition
// in either direction without consulting Rules.
type Action struct {
	Kind  ActionKind
	From  Location
	To    Location
	Cards []cards.Card

	// Flipped is set when the move exposed and turned a face-down card on the source pile.
	Flipped bool
	// Runs lists Spider runs banked as a consequence of this action, in order.
	Runs []BankedRun
}

func (a Action) clone() Action {
	out := a
	out.Cards = append([]cards.Card(nil), a.Cards...)
	if a.Runs != nil {
		out.Runs = make([]BankedRun, len(a.Runs))
		for i, r := range a.Runs {
			out.Runs[i] = BankedRun{Pile: r.Pile, Cards: append([]cards.Card(nil), r.Cards...)}
		}
	}
	return out
}

// History is a linear undo log with a cursor at the last applied action.
type History struct {
	actions []Action
	index   int
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{index: -1}
}

// Record truncates any redo tail, appends a, and advances the cursor.
func (h *History) Record(a Action) {
	h.actions = append(h.actions[:h.index+1], a)
	h.index++
}

// CanUndo reports whether there is an applied action to invert.
func (h *History) CanUndo() bool {
	return h.index >= 0
}

// CanRedo reports whether an undone action is waiting to be re-applied.
func (h *History) CanRedo() bool {
	return h.index+1 < len(h.actions)
}

// Current returns the action under the cursor.
func (h *History) Current() (Action, bool) {
	if !h.CanUndo() {
		return Action{}, false
	}
	return h.actions[h.index], true
}

// Next returns the action a redo would re-apply.
func (h *History) Next() (Action, bool) {
	if !h.CanRedo() {
		return Action{}, false
	}
	return h.actions[h.index+1], true
}

func (h *History) back()    { h.index-- }
func (h *History) forward() { h.index++ }

// Len returns the number of recorded actions, including undone ones.
func (h *History) Len() int {
	return len(h.actions)
}

// Index returns the cursor position, -1 when nothing is applied.
func (h *History) Index() int {
	return h.index
}
