package view

import (
	"strconv"
	"time"

	"github.com/twdsco/hackertracker/internal/calendar"
	"github.com/twdsco/hackertracker/internal/layout"
)

// BarSegment is the part of an event bar drawn in one day cell.
type BarSegment struct {
	Text      string
	Tentative bool
	// Alt alternates shades between neighbouring slots.
	Alt   bool
	Empty bool
}

// MonthCell is one rendered day of the month grid.
type MonthCell struct {
	Date     time.Time
	Label    string
	InMonth  bool
	Today    bool
	Selected bool
	Bars     []BarSegment
	// Hidden counts the events covering the day that did not fit.
	Hidden int
}

// MonthWeek is one row of the month grid.
type MonthWeek struct {
	Cells [layout.Days]MonthCell
	// Overflow is set when any cell of the week has hidden events.
	Overflow bool
}

// MonthGrid is a month view sized for the terminal.
type MonthGrid struct {
	Title    string
	Weekdays []string
	Weeks    []MonthWeek
	ColW     int
}

// MonthGridInput sizes and decorates a month view.
type MonthGridInput struct {
	View     calendar.MonthView
	MaxSlots int
	ColW     int
	Today    time.Time
	Selected time.Time
}

// BuildMonthGrid cuts each week's bars into per-day segments. At most
// MaxSlots bar lines are shown per week; the rest are counted per day.
// Titles run across the columns a bar spans.
func BuildMonthGrid(in MonthGridInput) MonthGrid {
	maxSlots := in.MaxSlots
	if maxSlots < 1 {
		maxSlots = 1
	}
	grid := MonthGrid{
		Title:    in.View.Title,
		Weekdays: in.View.Weekdays,
		ColW:     in.ColW,
	}
	for _, row := range in.View.Weeks {
		shown := min(row.Slots, maxSlots)
		var week MonthWeek
		for col, day := range row.Days {
			cell := MonthCell{
				Date:     day.Date,
				Label:    strconv.Itoa(day.Day),
				InMonth:  day.InMonth,
				Today:    day.Date.Equal(in.Today),
				Selected: day.Date.Equal(in.Selected),
				Bars:     make([]BarSegment, shown),
			}
			for i := range cell.Bars {
				cell.Bars[i] = BarSegment{Empty: true, Alt: i%2 == 1}
			}
			for _, p := range row.Placements {
				if !p.Covers(col) {
					continue
				}
				if p.Slot >= shown {
					cell.Hidden++
					continue
				}
				cell.Bars[p.Slot] = BarSegment{
					Text:      barText(p, col, in.ColW),
					Tentative: p.Event.IsTentative(),
					Alt:       p.Slot%2 == 1,
				}
			}
			if cell.Hidden > 0 {
				week.Overflow = true
			}
			week.Cells[col] = cell
		}
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid
}

func barText(p layout.Placement, col, colW int) string {
	title := p.Event.Title
	if p.ContinuesLeft {
		title = "◂" + title
	}
	return Slice(title, (col-p.StartCol)*colW, colW)
}
