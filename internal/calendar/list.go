package calendar

import (
	"time"

	"github.com/twdsco/hackertracker/internal/event"
	"github.com/twdsco/hackertracker/internal/tagfilter"
)

// ListGroup is one month of the chronological list.
type ListGroup struct {
	Year  int
	Month time.Month
	Title string
	Cards []EventCard
}

// ListView is the chronological list of filtered events.
type ListView struct {
	Groups []ListGroup
	Total  int
}

// BuildList filters events, sorts them by start and groups them by the
// (year, month) of their start date, in order of first appearance.
// Events without a readable start date are collected in a trailing group.
func BuildList(events []event.Event, filter *tagfilter.Filter) ListView {
	visible := event.SortByStart(applyFilter(filter, events))

	view := ListView{Total: len(visible)}
	index := make(map[[2]int]int)
	var undated []EventCard

	for _, ev := range visible {
		day, ok := ev.StartDay()
		if !ok {
			undated = append(undated, CardFor(ev))
			continue
		}

		key := [2]int{day.Year(), int(day.Month())}
		i, seen := index[key]
		if !seen {
			i = len(view.Groups)
			index[key] = i
			view.Groups = append(view.Groups, ListGroup{
				Year:  day.Year(),
				Month: day.Month(),
				Title: MonthTitle(day.Year(), day.Month()),
			})
		}
		view.Groups[i].Cards = append(view.Groups[i].Cards, CardFor(ev))
	}

	if len(undated) > 0 {
		view.Groups = append(view.Groups, ListGroup{Title: LabelUndated, Cards: undated})
	}
	return view
}

func applyFilter(filter *tagfilter.Filter, events []event.Event) []event.Event {
	if filter == nil {
		return events
	}
	return filter.Apply(events)
}
