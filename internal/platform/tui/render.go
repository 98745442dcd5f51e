package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// colorStyles holds the foreground of each colored cell. Default cells
// are written unstyled.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorBlack:        lipgloss.NewStyle().Foreground(lipgloss.Color("0")),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderFrame draws the playfield rows of s followed by the status line.
// Every status line is cut to the screen width so the frame never wraps.
// An empty status adds no line.
func RenderFrame(s *core.Screen, status string) string {
	var sb strings.Builder
	sb.Grow(s.Width()*(s.Height()+1)*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		writeRow(&sb, s, y)
	}

	if status != "" {
		sb.WriteByte('\n')
		sb.WriteString(lipgloss.NewStyle().MaxWidth(s.Width()).Render(status))
	}
	return sb.String()
}

// writeRow writes row y as runs of equally colored cells, one style per run.
func writeRow(sb *strings.Builder, s *core.Screen, y int) {
	var run strings.Builder
	for x := 0; x < s.Width(); {
		color := s.GetCell(x, y).Color
		run.Reset()
		for ; x < s.Width(); x++ {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				break
			}
			run.WriteRune(cell.Rune)
		}

		if style, ok := colorStyles[color]; ok {
			sb.WriteString(style.Render(run.String()))
		} else {
			sb.WriteString(run.String())
		}
	}
}

// centerText pads text so it appears centered in width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
