package calendar

import (
	"time"

	"github.com/twdsco/hackertracker/internal/dateutil"
	"github.com/twdsco/hackertracker/internal/event"
	"github.com/twdsco/hackertracker/internal/layout"
	"github.com/twdsco/hackertracker/internal/tagfilter"
)

// DayCell is one background cell of the month grid.
type DayCell struct {
	Date    time.Time
	Day     int
	InMonth bool
}

// WeekRow is one row of the month grid with its packed event bars.
type WeekRow struct {
	Days       [layout.Days]DayCell
	Placements []layout.Placement
	Slots      int
}

// MonthView is the month grid for one (year, month).
type MonthView struct {
	Year     int
	Month    time.Month
	Title    string
	Weekdays []string
	Weeks    []WeekRow
}

// Cells returns the number of day cells in the grid.
func (m MonthView) Cells() int {
	return len(m.Weeks) * layout.Days
}

// BuildMonth lays out the filtered events over the month's full weeks,
// including leading and trailing days of the adjacent months.
func BuildMonth(events []event.Event, filter *tagfilter.Filter, cursor Cursor, weekStart time.Weekday) MonthView {
	visible := applyFilter(filter, events)

	view := MonthView{
		Year:     cursor.Year,
		Month:    cursor.Month,
		Title:    MonthTitle(cursor.Year, cursor.Month),
		Weekdays: WeekdayLabels(weekStart),
	}

	for _, dates := range dateutil.MonthWeeks(cursor.Year, cursor.Month, weekStart) {
		var row WeekRow
		for i, d := range dates {
			row.Days[i] = DayCell{
				Date:    d,
				Day:     d.Day(),
				InMonth: d.Month() == cursor.Month,
			}
		}
		row.Placements = layout.Pack(dates, visible)
		row.Slots = layout.SlotCount(row.Placements)
		view.Weeks = append(view.Weeks, row)
	}

	return view
}
