package solitaire

// ValidMove is a legal move found by FindValidMoves.
type ValidMove struct {
	From  Location
	To    Location
	Count int
}

// ToFoundation reports whether the move lands on a foundation.
func (m ValidMove) ToFoundation() bool {
	return m.To.Kind == Foundation
}

// FindValidMoves enumerates legal moves in a fixed scan order:
// each tableau pile in turn (top card to foundations, then every liftable
// group top-first to the other tableau piles, then the top card to empty
// free cells), then the waste top, then the free cells. Moving a whole pile
// onto an empty pile is skipped as a no-op.
func FindValidMoves(st *GameState, rules Rules) []ValidMove {
	var out []ValidMove
	add := func(from, to Location) {
		if moving, ok := validateMove(st, rules, from, to); ok {
			out = append(out, ValidMove{From: from, To: to, Count: len(moving)})
		}
	}

	for i, p := range st.Tableau {
		if len(p) == 0 {
			continue
		}
		top := TableauAt(i, len(p)-1)

		for j := range st.Foundations {
			add(top, At(Foundation, j))
		}

		for idx := len(p) - 1; idx >= 0; idx-- {
			if !rules.CanPickUp(p, idx) {
				break
			}
			for j, q := range st.Tableau {
				if j == i || (idx == 0 && len(q) == 0) {
					continue
				}
				add(TableauAt(i, idx), At(Tableau, j))
			}
		}

		for j, c := range st.FreeCells {
			if len(c) == 0 {
				add(top, At(FreeCell, j))
			}
		}
	}

	if len(st.Waste) > 0 {
		waste := At(Waste, 0)
		for j := range st.Foundations {
			add(waste, At(Foundation, j))
		}
		for j := range st.Tableau {
			add(waste, At(Tableau, j))
		}
	}

	for i, c := range st.FreeCells {
		if len(c) == 0 {
			continue
		}
		cell := At(FreeCell, i)
		for j := range st.Foundations {
			add(cell, At(Foundation, j))
		}
		for j := range st.Tableau {
			add(cell, At(Tableau, j))
		}
	}

	return out
}

// FirstFoundationMove returns the first move that lands on a foundation.
func FirstFoundationMove(moves []ValidMove) (ValidMove, bool) {
	for _, m := range moves {
		if m.ToFoundation() {
			return m, true
		}
	}
	return ValidMove{}, false
}

// PickHint prefers foundation moves, otherwise the first move found.
func PickHint(moves []ValidMove) (ValidMove, bool) {
	if m, ok := FirstFoundationMove(moves); ok {
		return m, true
	}
	if len(moves) == 0 {
		return ValidMove{}, false
	}
	return moves[0], true
}
