// Package calendar holds the viewer's application state and the pure view
// models derived from it.
//
// State is changed only through Dispatch. Each dispatched Action reports
// which views it invalidated, and subscribed observers are told so they can
// rebuild exactly those views from List, Month, Year and Detail.
package calendar

import (
	"time"

	"github.com/twdsco/hackertracker/internal/dateutil"
	"github.com/twdsco/hackertracker/internal/event"
	"github.com/twdsco/hackertracker/internal/tagfilter"
)

// View identifies one of the three calendar views.
type View int

const (
	ViewList View = iota
	ViewMonth
	ViewYear
)

var viewNames = [...]string{"list", "month", "year"}

// String returns the view name.
func (v View) String() string {
	if int(v) < len(viewNames) {
		return viewNames[v]
	}
	return "unknown"
}

// Cursor is the (year, month) shown by the month view.
type Cursor struct {
	Year  int
	Month time.Month
}

// Change is a set of invalidated views.
type Change uint8

const (
	ChangeList Change = 1 << iota
	ChangeMonth
	ChangeYear
	// ChangeFilter means the active tags, and so the share query, changed.
	ChangeFilter
	// ChangeView means a different view became current.
	ChangeView

	ChangeNone Change = 0
	ChangeAll         = ChangeList | ChangeMonth | ChangeYear
)

// Has reports whether c includes all of other.
func (c Change) Has(other Change) bool {
	return c&other == other
}

// Observer is notified after an action changed the state.
type Observer func(s *State, c Change)

// State is the viewer's application state.
type State struct {
	events    *event.Collection
	filter    *tagfilter.Filter
	view      View
	month     Cursor
	year      int
	weekStart time.Weekday
	observers []Observer
}

// Option configures a State.
type Option func(*stateOptions)

type stateOptions struct {
	now       func() time.Time
	weekStart time.Weekday
	view      View
}

// WithClock sets the clock used when there are no events.
func WithClock(now func() time.Time) Option {
	return func(o *stateOptions) { o.now = now }
}

// WithWeekStart sets the first column of month and year grids.
func WithWeekStart(day time.Weekday) Option {
	return func(o *stateOptions) { o.weekStart = day }
}

// WithView sets the initially current view.
func WithView(v View) Option {
	return func(o *stateOptions) { o.view = v }
}

// NewState creates the state with cursors on the earliest event, or on
// today when there are no events.
func NewState(events *event.Collection, filter *tagfilter.Filter, opts ...Option) *State {
	o := stateOptions{now: time.Now, weekStart: time.Sunday}
	for _, opt := range opts {
		opt(&o)
	}
	if events == nil {
		events = event.Empty()
	}
	if filter == nil {
		filter = tagfilter.New(event.DefaultVocabulary(), nil)
	}

	s := &State{
		events:    events,
		filter:    filter,
		view:      o.view,
		weekStart: o.weekStart,
	}
	s.month, s.year = defaultCursors(events, o.now)
	return s
}

func defaultCursors(events *event.Collection, now func() time.Time) (Cursor, int) {
	day := dateutil.Day(now())
	if first, ok := events.Earliest(); ok {
		if d, ok := first.StartDay(); ok {
			day = d
		}
	}
	return Cursor{Year: day.Year(), Month: day.Month()}, day.Year()
}

// Subscribe registers an observer for future changes.
func (s *State) Subscribe(fn Observer) {
	s.observers = append(s.observers, fn)
}

// Dispatch applies a and notifies observers when anything changed.
func (s *State) Dispatch(a Action) Change {
	c := a(s)
	if c != ChangeNone {
		for _, fn := range s.observers {
			fn(s, c)
		}
	}
	return c
}

// Events returns the loaded collection.
func (s *State) Events() *event.Collection { return s.events }

// Filter returns the tag filter.
func (s *State) Filter() *tagfilter.Filter { return s.filter }

// View returns the current view.
func (s *State) View() View { return s.view }

// MonthCursor returns the month view's (year, month).
func (s *State) MonthCursor() Cursor { return s.month }

// YearCursor returns the year view's year.
func (s *State) YearCursor() int { return s.year }

// WeekStart returns the first weekday of the grids.
func (s *State) WeekStart() time.Weekday { return s.weekStart }

// Query returns the share query string for the active tags.
func (s *State) Query() string {
	return s.filter.Query()
}

// List builds the list view.
func (s *State) List() ListView {
	return BuildList(s.events.All(), s.filter)
}

// Month builds the month view at the month cursor.
func (s *State) Month() MonthView {
	return BuildMonth(s.events.All(), s.filter, s.month, s.weekStart)
}

// Year builds the year view at the year cursor.
func (s *State) Year() YearView {
	return BuildYear(s.events.All(), s.filter, s.year, s.weekStart)
}

// Detail builds the detail model of id.
func (s *State) Detail(id int) (EventCard, bool) {
	return BuildDetail(s.events, id)
}

// SelectDay resolves choosing day in the month or year view.
func (s *State) SelectDay(day time.Time) DaySelection {
	return SelectDay(s.events.All(), s.filter, day)
}
