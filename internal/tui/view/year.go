package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/twdsco/hackertracker/internal/calendar"
)

// MiniMonthW is the content width of one mini month: seven two-cell
// columns separated by spaces.
const MiniMonthW = 7*2 + 6

const miniMonthRows = 6

// YearStyles colors the year view.
type YearStyles struct {
	Title        lipgloss.Style
	TitleActive  lipgloss.Style
	Weekday      lipgloss.Style
	Day          lipgloss.Style
	DayConfirmed lipgloss.Style
	DayTentative lipgloss.Style
	DayToday     lipgloss.Style
	DaySelected  lipgloss.Style
	Box          lipgloss.Style
	BoxSelected  lipgloss.Style
}

// YearInput decorates a year view for rendering.
type YearInput struct {
	View     calendar.YearView
	Today    time.Time
	Selected time.Time
	// Cols is the number of mini months per row.
	Cols int
}

// YearColumns returns how many boxed mini months fit in width.
func YearColumns(width int, styles YearStyles) int {
	frameW, _ := styles.Box.GetFrameSize()
	cols := width / (MiniMonthW + frameW)
	return max(1, min(cols, 6))
}

// RenderYear lays the twelve mini months out in rows of Cols.
func RenderYear(in YearInput, styles YearStyles) string {
	cols := max(1, in.Cols)
	boxes := make([]string, 0, len(in.View.Months))
	for _, mm := range in.View.Months {
		boxes = append(boxes, renderMiniMonth(mm, in, styles))
	}

	var rows []string
	for i := 0; i < len(boxes); i += cols {
		end := min(i+cols, len(boxes))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderMiniMonth(mm calendar.MiniMonth, in YearInput, styles YearStyles) string {
	selected := in.Selected.Year() == in.View.Year && in.Selected.Month() == mm.Month

	titleStyle := styles.Title
	if mm.Highlight {
		titleStyle = styles.TitleActive
	}
	lines := []string{
		titleStyle.Width(MiniMonthW).Align(lipgloss.Center).Render(mm.Title),
		styles.Weekday.Render(strings.Join(in.View.Weekdays, " ")),
	}

	cells := make([]string, 0, mm.Lead+len(mm.Days))
	for i := 0; i < mm.Lead; i++ {
		cells = append(cells, "  ")
	}
	for _, d := range mm.Days {
		cells = append(cells, miniDayStyle(d, in, styles).Render(fmt.Sprintf("%2d", d.Day)))
	}
	for len(cells) < 7*miniMonthRows {
		cells = append(cells, "  ")
	}
	for r := 0; r < miniMonthRows; r++ {
		lines = append(lines, strings.Join(cells[r*7:r*7+7], " "))
	}

	box := styles.Box
	if selected {
		box = styles.BoxSelected
	}
	return box.Render(strings.Join(lines, "\n"))
}

func miniDayStyle(d calendar.MiniDay, in YearInput, styles YearStyles) lipgloss.Style {
	switch {
	case d.Date.Equal(in.Selected):
		return styles.DaySelected
	case d.State == calendar.DayConfirmed:
		return styles.DayConfirmed
	case d.State == calendar.DayTentative:
		return styles.DayTentative
	case d.Date.Equal(in.Today):
		return styles.DayToday
	default:
		return styles.Day
	}
}
