package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-solitaire/internal/core"
	"github.com/vovakirdan/tui-solitaire/internal/stats"
)

// Theme maps core.Color roles to lipgloss styles for one customization.
type Theme struct {
	styles map[core.Color]lipgloss.Style
}

var (
	feltColors = map[string]lipgloss.Color{
		stats.TableEmeraldFelt: lipgloss.Color("22"),
		stats.TableNavyFelt:    lipgloss.Color("17"),
		stats.TableWalnut:      lipgloss.Color("52"),
	}
	backColors = map[string]lipgloss.Color{
		stats.BackClassicRed:  lipgloss.Color("160"),
		stats.BackClassicBlue: lipgloss.Color("33"),
		stats.BackMidnight:    lipgloss.Color("93"),
	}
)

// NewTheme builds the styles for a customization. Unknown options fall back
// to the defaults.
func NewTheme(c stats.Customization) Theme {
	felt, ok := feltColors[c.Table]
	if !ok {
		felt = feltColors[stats.TableEmeraldFelt]
	}
	back, ok := backColors[c.CardBack]
	if !ok {
		back = backColors[stats.BackClassicRed]
	}

	red, black := lipgloss.Color("9"), lipgloss.Color("15")
	if c.CardStyle == stats.StyleColorful {
		red, black = lipgloss.Color("205"), lipgloss.Color("51")
	}

	base := lipgloss.NewStyle().Background(felt)
	return Theme{styles: map[core.Color]lipgloss.Style{
		core.ColorDefault:   base.Foreground(lipgloss.Color("7")),
		core.ColorRedSuit:   base.Foreground(red),
		core.ColorBlackSuit: base.Foreground(black),
		core.ColorCardBack:  base.Foreground(back),
		core.ColorEmptySlot: base.Foreground(lipgloss.Color("245")),
		core.ColorCursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")),
		core.ColorSelected:  lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("14")),
		core.ColorHint:      lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")),
		core.ColorTitle:     base.Foreground(lipgloss.Color("229")).Bold(true),
		core.ColorStatus:    base.Foreground(lipgloss.Color("252")),
		core.ColorDim:       base.Foreground(lipgloss.Color("241")),
		core.ColorWin:       base.Foreground(lipgloss.Color("11")).Bold(true),
	}}
}

// Style returns the style for a color role.
func (t Theme) Style(c core.Color) lipgloss.Style {
	if s, ok := t.styles[c]; ok {
		return s
	}
	return t.styles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, theme Theme) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(theme.Style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
