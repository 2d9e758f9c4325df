package view

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// MonthStyles colors the month grid.
type MonthStyles struct {
	Header       lipgloss.Style
	Day          lipgloss.Style
	DayOut       lipgloss.Style
	DayToday     lipgloss.Style
	DaySelected  lipgloss.Style
	Confirmed    lipgloss.Style
	ConfirmedAlt lipgloss.Style
	Tentative    lipgloss.Style
	TentativeAlt lipgloss.Style
	Muted        lipgloss.Style
	Overflow     lipgloss.Style
	Cell         lipgloss.Style
	Border       lipgloss.Style
}

// RenderMonth draws the grid as a bordered lipgloss table with one
// multi-line row per week.
func RenderMonth(grid MonthGrid, styles MonthStyles) string {
	rows := make([][]string, 0, len(grid.Weeks))
	for _, week := range grid.Weeks {
		row := make([]string, len(week.Cells))
		for col, cell := range week.Cells {
			row[col] = renderMonthCell(cell, week.Overflow, grid.ColW, styles)
		}
		rows = append(rows, row)
	}

	t := table.New().
		Headers(grid.Weekdays...).
		Border(lipgloss.RoundedBorder()).
		BorderHeader(true).
		BorderColumn(true).
		BorderRow(true).
		BorderStyle(styles.Border).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header.Width(grid.ColW).Align(lipgloss.Center)
			}
			return styles.Cell.Width(grid.ColW)
		})

	return t.Render()
}

func renderMonthCell(cell MonthCell, overflow bool, colW int, styles MonthStyles) string {
	lines := make([]string, 0, len(cell.Bars)+2)

	dayStyle := styles.Day
	switch {
	case cell.Selected:
		dayStyle = styles.DaySelected
	case cell.Today:
		dayStyle = styles.DayToday
	case !cell.InMonth:
		dayStyle = styles.DayOut
	}
	lines = append(lines, dayStyle.Render(Fit(cell.Label, colW)))

	for _, bar := range cell.Bars {
		if bar.Empty {
			lines = append(lines, strings.Repeat(" ", colW))
			continue
		}
		lines = append(lines, barStyle(bar, cell.InMonth, styles).Render(Fit(bar.Text, colW)))
	}

	if overflow {
		more := ""
		if cell.Hidden > 0 {
			more = "+" + strconv.Itoa(cell.Hidden)
		}
		lines = append(lines, styles.Overflow.Render(Fit(more, colW)))
	}
	return strings.Join(lines, "\n")
}

func barStyle(bar BarSegment, inMonth bool, styles MonthStyles) lipgloss.Style {
	if !inMonth {
		return styles.Muted
	}
	switch {
	case bar.Tentative && bar.Alt:
		return styles.TentativeAlt
	case bar.Tentative:
		return styles.Tentative
	case bar.Alt:
		return styles.ConfirmedAlt
	default:
		return styles.Confirmed
	}
}
