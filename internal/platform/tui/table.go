package tui

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-solitaire/internal/cards"
	"github.com/vovakirdan/tui-solitaire/internal/core"
	"github.com/vovakirdan/tui-solitaire/internal/solitaire"
)

// Table layout constants
const (
	cardW    = 5 // "[10♠]"
	colW     = cardW + 1
	marginX  = 2
	statusY  = 0
	topY     = 2
	tableauY = 4
)

// Slot is a pile's position on screen.
type Slot struct {
	Loc  solitaire.Location
	Rect core.Rect
}

// Table is the screen layout for one variant: a top row of stock, waste,
// free cells and foundations above the tableau columns.
type Table struct {
	Top     []Slot
	Columns []Slot
}

func colX(i int) int { return marginX + i*colW }

// NewTable lays out the piles described by layout.
func NewTable(layout solitaire.Layout) Table {
	var t Table
	slot := func(kind solitaire.PileKind, idx, col, y int) Slot {
		return Slot{Loc: solitaire.At(kind, idx), Rect: core.NewRect(colX(col), y, cardW, 1)}
	}

	switch layout.Stock {
	case solitaire.StockDraw:
		t.Top = append(t.Top, slot(solitaire.Stock, 0, 0, topY), slot(solitaire.Waste, 0, 1, topY))
	case solitaire.StockDeal:
		t.Top = append(t.Top, slot(solitaire.Stock, 0, 0, topY))
	}
	for i := 0; i < layout.FreeCells; i++ {
		t.Top = append(t.Top, slot(solitaire.FreeCell, i, i, topY))
	}
	start := max(layout.Tableau-layout.Foundations, 0)
	for i := 0; i < layout.Foundations; i++ {
		t.Top = append(t.Top, slot(solitaire.Foundation, i, start+i, topY))
	}

	for i := 0; i < layout.Tableau; i++ {
		t.Columns = append(t.Columns, slot(solitaire.Tableau, i, i, tableauY))
	}
	return t
}

// Width returns the screen columns the table occupies.
func (t Table) Width() int {
	return colX(len(t.Columns)) + marginX
}

// Cursor is the focused position: a top-row slot or a card in a column.
type Cursor struct {
	Row  int // 0 top row, 1 tableau
	Col  int
	Card int // card index within the column; -1 on an empty column
}

const (
	rowTop     = 0
	rowTableau = 1
)

// Location returns the engine location under the cursor.
func (t Table) Location(c Cursor) solitaire.Location {
	if c.Row == rowTop {
		if c.Col < 0 || c.Col >= len(t.Top) {
			return solitaire.At(solitaire.Stock, -1)
		}
		return t.Top[c.Col].Loc
	}
	return solitaire.TableauAt(c.Col, c.Card)
}

// TopOf returns a cursor on the top card of column col.
func TopOf(st *solitaire.GameState, col int) Cursor {
	return Cursor{Row: rowTableau, Col: col, Card: len(st.Tableau[col]) - 1}
}

// Move applies a navigation action and returns the new cursor.
func (t Table) Move(st *solitaire.GameState, c Cursor, a core.Action) Cursor {
	switch a {
	case core.ActionLeft, core.ActionRight:
		step := 1
		if a == core.ActionLeft {
			step = -1
		}
		if c.Row == rowTop {
			if len(t.Top) > 0 {
				c.Col = (c.Col + step + len(t.Top)) % len(t.Top)
			}
			return c
		}
		col := (c.Col + step + len(t.Columns)) % len(t.Columns)
		return TopOf(st, col)

	case core.ActionUp:
		if c.Row == rowTableau {
			first := st.Tableau[c.Col].FaceUpFrom()
			if c.Card > first {
				c.Card--
				return c
			}
			if len(t.Top) == 0 {
				return c
			}
			return Cursor{Row: rowTop, Col: t.nearestTop(colX(c.Col))}
		}
		return c

	case core.ActionDown:
		if c.Row == rowTop {
			if len(t.Top) == 0 {
				return c
			}
			return TopOf(st, t.nearestColumn(t.Top[c.Col].Rect.X))
		}
		if c.Card < len(st.Tableau[c.Col])-1 {
			c.Card++
		}
		return c
	}
	return c
}

func (t Table) nearestTop(x int) int {
	best, dist := 0, -1
	for i, s := range t.Top {
		d := s.Rect.X - x
		if d < 0 {
			d = -d
		}
		if dist < 0 || d < dist {
			best, dist = i, d
		}
	}
	return best
}

func (t Table) nearestColumn(x int) int {
	return core.Clamp((x-marginX)/colW, 0, len(t.Columns)-1)
}

// HitTest maps a screen position to a cursor. Clicks below a column's last
// card select its top card.
func (t Table) HitTest(st *solitaire.GameState, x, y int) (Cursor, bool) {
	if y == topY {
		for i, s := range t.Top {
			if s.Rect.Contains(x, y) {
				return Cursor{Row: rowTop, Col: i}, true
			}
		}
		return Cursor{}, false
	}
	if y < tableauY {
		return Cursor{}, false
	}
	for i, s := range t.Columns {
		if x < s.Rect.X || x >= s.Rect.Right() {
			continue
		}
		c := TopOf(st, i)
		if idx := y - tableauY; idx < len(st.Tableau[i]) {
			c.Card = idx
		}
		return c, true
	}
	return Cursor{}, false
}

// cardLabel renders a card in exactly cardW runes.
func cardLabel(c cards.Card) string {
	if !c.FaceUp {
		return "[░░░]"
	}
	return fmt.Sprintf("[%-3s]", c.String())
}

func cardColor(c cards.Card) core.Color {
	switch {
	case !c.FaceUp:
		return core.ColorCardBack
	case c.Color() == cards.Red:
		return core.ColorRedSuit
	default:
		return core.ColorBlackSuit
	}
}

// highlights marks piles and cards to emphasize when drawing.
type highlights struct {
	cursor   Cursor
	selected *solitaire.Location
	hint     *solitaire.ValidMove
}

// Draw renders the state onto s.
func (t Table) Draw(s *core.Screen, st *solitaire.GameState, h highlights) {
	for i, slot := range t.Top {
		t.drawTopSlot(s, st, slot)
		if h.cursor.Row == rowTop && h.cursor.Col == i {
			s.Recolor(slot.Rect, core.ColorCursor)
		}
	}

	for i, col := range t.Columns {
		pile := st.Tableau[i]
		if len(pile) == 0 {
			s.DrawTextColor(col.Rect.X, tableauY, "[   ]", core.ColorEmptySlot)
		}
		for j, c := range pile {
			s.DrawTextColor(col.Rect.X, tableauY+j, cardLabel(c), cardColor(c))
		}
	}

	if h.hint != nil {
		t.mark(s, st, h.hint.From, core.ColorHint)
		t.mark(s, st, h.hint.To, core.ColorHint)
	}
	if h.selected != nil {
		t.mark(s, st, *h.selected, core.ColorSelected)
	}
	if h.cursor.Row == rowTableau {
		y := tableauY + max(h.cursor.Card, 0)
		s.Recolor(core.NewRect(colX(h.cursor.Col), y, cardW, 1), core.ColorCursor)
	}
}

func (t Table) drawTopSlot(s *core.Screen, st *solitaire.GameState, slot Slot) {
	x, y := slot.Rect.X, slot.Rect.Y
	empty := func(label string) {
		s.DrawTextColor(x, y, label, core.ColorEmptySlot)
	}

	switch slot.Loc.Kind {
	case solitaire.Stock:
		switch {
		case len(st.StockGroups) > 0:
			s.DrawTextColor(x, y, fmt.Sprintf("[ %d ]", len(st.StockGroups)), core.ColorCardBack)
		case len(st.Stock) > 0:
			s.DrawTextColor(x, y, fmt.Sprintf("[%3d]", len(st.Stock)), core.ColorCardBack)
		case len(st.Waste) > 0:
			empty("[ ↺ ]")
		default:
			empty("[   ]")
		}
	case solitaire.Waste:
		if c, ok := st.Waste.Top(); ok {
			s.DrawTextColor(x, y, cardLabel(c), cardColor(c))
		} else {
			empty("[   ]")
		}
	case solitaire.FreeCell:
		if c, ok := st.FreeCells[slot.Loc.Index].Top(); ok {
			s.DrawTextColor(x, y, cardLabel(c), cardColor(c))
		} else {
			empty("[ ▫ ]")
		}
	case solitaire.Foundation:
		if slot.Loc.Index < len(st.Foundations) {
			if c, ok := st.Foundations[slot.Loc.Index].Top(); ok {
				s.DrawTextColor(x, y, cardLabel(c), cardColor(c))
				return
			}
		}
		empty("[ ◇ ]")
	}
}

// mark recolors the cards a location covers: the lifted group for tableau
// sources, or the whole slot otherwise.
func (t Table) mark(s *core.Screen, st *solitaire.GameState, l solitaire.Location, c core.Color) {
	if l.Kind != solitaire.Tableau {
		for _, slot := range t.Top {
			if slot.Loc.Kind == l.Kind && slot.Loc.Index == l.Index {
				s.Recolor(slot.Rect, c)
			}
		}
		return
	}
	if l.Index < 0 || l.Index >= len(st.Tableau) {
		return
	}
	n := len(st.Tableau[l.Index])
	from := l.CardIndex
	if from < 0 {
		from = n - 1
	}
	from = max(from, 0)
	rows := max(n-from, 1)
	s.Recolor(core.NewRect(colX(l.Index), tableauY+from, cardW, rows), c)
}

// padRight pads text to width runes.
func padRight(text string, width int) string {
	n := utf8.RuneCountInString(text)
	if n >= width {
		return text
	}
	return text + fmt.Sprintf("%*s", width-n, "")
}
