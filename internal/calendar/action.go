package calendar

import (
	"time"

	"github.com/twdsco/hackertracker/internal/dateutil"
	"github.com/twdsco/hackertracker/internal/event"
)

// Action is a state transition. It returns the views it invalidated.
type Action func(s *State) Change

// ToggleTag flips one tag of the filter.
func ToggleTag(tag string) Action {
	return func(s *State) Change {
		if !s.filter.Vocabulary().Contains(tag) {
			return ChangeNone
		}
		s.filter.Toggle(tag)
		return ChangeAll | ChangeFilter
	}
}

// SetTags replaces the active tags.
func SetTags(tags []string) Action {
	return func(s *State) Change {
		before := s.filter.Query()
		s.filter.Set(tags)
		if s.filter.Query() == before {
			return ChangeNone
		}
		return ChangeAll | ChangeFilter
	}
}

// ClearTags shows every event again.
func ClearTags() Action {
	return func(s *State) Change {
		if s.filter.Empty() {
			return ChangeNone
		}
		s.filter.Clear()
		return ChangeAll | ChangeFilter
	}
}

// ShiftMonth moves the month cursor by delta months.
func ShiftMonth(delta int) Action {
	return func(s *State) Change {
		if delta == 0 {
			return ChangeNone
		}
		s.month.Year, s.month.Month = dateutil.AddMonths(s.month.Year, s.month.Month, delta)
		return ChangeMonth
	}
}

// SetMonth moves the month cursor to (year, month).
func SetMonth(year int, month time.Month) Action {
	return func(s *State) Change {
		if month < time.January || month > time.December {
			return ChangeNone
		}
		next := Cursor{Year: year, Month: month}
		if next == s.month {
			return ChangeNone
		}
		s.month = next
		return ChangeMonth
	}
}

// ShiftYear moves the year cursor by delta years.
func ShiftYear(delta int) Action {
	return func(s *State) Change {
		if delta == 0 {
			return ChangeNone
		}
		s.year += delta
		return ChangeYear
	}
}

// SetYear moves the year cursor.
func SetYear(year int) Action {
	return func(s *State) Change {
		if year == s.year {
			return ChangeNone
		}
		s.year = year
		return ChangeYear
	}
}

// Show makes v the current view.
func Show(v View) Action {
	return func(s *State) Change {
		if v == s.view {
			return ChangeNone
		}
		s.view = v
		return ChangeView
	}
}

// OpenMonth jumps from the year view to (year, month) in the month view.
func OpenMonth(year int, month time.Month) Action {
	return func(s *State) Change {
		c := SetMonth(year, month)(s)
		return c | Show(ViewMonth)(s)
	}
}

// ReplaceEvents swaps in a freshly loaded collection, keeping the cursors.
func ReplaceEvents(events *event.Collection) Action {
	return func(s *State) Change {
		if events == nil {
			events = event.Empty()
		}
		s.events = events
		return ChangeAll
	}
}
