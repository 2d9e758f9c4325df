package calendar

import (
	"time"

	"github.com/twdsco/hackertracker/internal/dateutil"
	"github.com/twdsco/hackertracker/internal/event"
	"github.com/twdsco/hackertracker/internal/tagfilter"
)

// DayState marks how a mini-calendar day is drawn.
type DayState int

const (
	DayEmpty DayState = iota
	// DayTentative means every covering event is tentative.
	DayTentative
	// DayConfirmed means at least one covering event is confirmed.
	DayConfirmed
)

// MiniDay is one day of a mini month grid.
type MiniDay struct {
	Date  time.Time
	Day   int
	State DayState
	Count int
}

// HasEvent reports whether any filtered event covers the day.
func (d MiniDay) HasEvent() bool {
	return d.Count > 0
}

// MiniMonth is one month of the year view.
type MiniMonth struct {
	Month     time.Month
	Title     string
	Highlight bool
	// Lead is the number of empty cells before day 1.
	Lead int
	Days []MiniDay
}

// YearView is the 12-month overview of one year.
type YearView struct {
	Year     int
	Title    string
	Weekdays []string
	Months   [12]MiniMonth
}

// BuildYear marks each day covered by a filtered event, using date-only
// comparison, and highlights months that any filtered event overlaps.
func BuildYear(events []event.Event, filter *tagfilter.Filter, year int, weekStart time.Weekday) YearView {
	visible := applyFilter(filter, events)

	view := YearView{
		Year:     year,
		Title:    YearTitle(year),
		Weekdays: WeekdayLabels(weekStart),
	}

	for i := range view.Months {
		month := time.Month(i + 1)
		first := dateutil.FirstOfMonth(year, month)
		last := dateutil.LastOfMonth(year, month)

		mm := MiniMonth{
			Month: month,
			Title: MonthLabel(month),
			Lead:  (int(first.Weekday()) - int(weekStart) + 7) % 7,
			Days:  make([]MiniDay, 0, last.Day()),
		}
		for _, ev := range visible {
			if ev.Overlaps(first, last) {
				mm.Highlight = true
				break
			}
		}

		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			mm.Days = append(mm.Days, miniDay(visible, d))
		}
		view.Months[i] = mm
	}

	return view
}

func miniDay(events []event.Event, day time.Time) MiniDay {
	md := MiniDay{Date: day, Day: day.Day()}
	for _, ev := range events {
		if !ev.Covers(day) {
			continue
		}
		md.Count++
		if ev.IsConfirmed() {
			md.State = DayConfirmed
		} else if md.State == DayEmpty {
			md.State = DayTentative
		}
	}
	return md
}

// DayEvents returns the filtered events covering day, in load order.
func DayEvents(events []event.Event, filter *tagfilter.Filter, day time.Time) []event.Event {
	var out []event.Event
	for _, ev := range applyFilter(filter, events) {
		if ev.Covers(day) {
			out = append(out, ev)
		}
	}
	return out
}

// SelectionKind is the outcome of choosing a day.
type SelectionKind int

const (
	// SelectNone means the day has no events.
	SelectNone SelectionKind = iota
	// SelectDetail means exactly one event, shown directly.
	SelectDetail
	// SelectPicklist means several events to choose from.
	SelectPicklist
)

// PickItem is one entry of the per-day picklist.
type PickItem struct {
	ID        int
	Title     string
	Tentative bool
}

// DaySelection describes what opens when a day is chosen.
type DaySelection struct {
	Kind  SelectionKind
	Day   time.Time
	Title string
	// EventID is set for SelectDetail.
	EventID int
	// Items is set for SelectPicklist.
	Items []PickItem
}

// SelectDay resolves a click on day: a single event opens its detail,
// several open a picklist, none does nothing.
func SelectDay(events []event.Event, filter *tagfilter.Filter, day time.Time) DaySelection {
	covering := DayEvents(events, filter, day)
	sel := DaySelection{Day: day, Title: PicklistTitle(day)}

	switch len(covering) {
	case 0:
		sel.Kind = SelectNone
	case 1:
		sel.Kind = SelectDetail
		sel.EventID = covering[0].ID
	default:
		sel.Kind = SelectPicklist
		for _, ev := range covering {
			sel.Items = append(sel.Items, PickItem{
				ID:        ev.ID,
				Title:     ev.Title,
				Tentative: !ev.IsConfirmed(),
			})
		}
	}
	return sel
}
