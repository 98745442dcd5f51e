package main

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// newTable returns a bordered table with a bold header row.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// gamesTable lists registered games by ID.
func gamesTable(games []registry.GameInfo) string {
	t := newTable("ID", "Title")
	for _, g := range games {
		t.Row(g.ID, g.Title)
	}
	return t.String()
}

// runsTable lists recorded runs in the order given.
func runsTable(runs []storage.Run) string {
	t := newTable("ID", "Score", "Level", "Ticks", "Mode", "Date")
	for _, r := range runs {
		mode := r.Difficulty
		if mode == "" {
			mode = "normal"
		}
		t.Row(
			strconv.FormatInt(r.ID, 10),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Level),
			strconv.FormatInt(r.Ticks, 10),
			mode,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	return t.String()
}
