package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-life/internal/life"
)

// Glyphs used on screen. The engine's own Render output uses life.AliveRune
// and life.DeadRune; the watch view swaps them for denser block glyphs.
const (
	aliveGlyph = '█'
	deadGlyph  = '·'
)

var (
	aliveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	deadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	statusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("24")).Padding(0, 1)
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
)

// RenderBoard draws the grid with styled glyphs.
// Adjacent cells of the same state share one style run.
func RenderBoard(g *life.Grid) string {
	board := g.Render()

	var sb strings.Builder
	sb.Grow(len(board) * 2)

	for y, line := range strings.Split(board, "\n") {
		if y > 0 {
			sb.WriteRune('\n')
		}

		runes := []rune(line)
		x := 0
		for x < len(runes) {
			start := runes[x]

			var run strings.Builder
			for x < len(runes) && runes[x] == start {
				if start == life.AliveRune {
					run.WriteRune(aliveGlyph)
				} else {
					run.WriteRune(deadGlyph)
				}
				x++
			}

			if start == life.AliveRune {
				sb.WriteString(aliveStyle.Render(run.String()))
			} else {
				sb.WriteString(deadStyle.Render(run.String()))
			}
		}
	}
	return sb.String()
}
