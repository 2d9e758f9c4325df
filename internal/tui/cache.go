package tui

import "github.com/twdsco/hackertracker/internal/calendar"

// viewCache holds the calendar view models between dispatches. It is
// shared by every copy of the Model.
type viewCache struct {
	list  calendar.ListView
	month calendar.MonthView
	year  calendar.YearView
	query string

	// builds counts rebuilds per view
	builds [3]int
}

func newViewCache(s *calendar.State) *viewCache {
	c := &viewCache{}
	c.rebuild(s, calendar.ChangeAll|calendar.ChangeFilter)
	return c
}

// rebuild refreshes the views named by change.
func (c *viewCache) rebuild(s *calendar.State, change calendar.Change) {
	if change.Has(calendar.ChangeList) {
		c.list = s.List()
		c.builds[calendar.ViewList]++
	}
	if change.Has(calendar.ChangeMonth) {
		c.month = s.Month()
		c.builds[calendar.ViewMonth]++
	}
	if change.Has(calendar.ChangeYear) {
		c.year = s.Year()
		c.builds[calendar.ViewYear]++
	}
	if change.Has(calendar.ChangeFilter) {
		c.query = s.Query()
	}
}
