package event

import (
	"sort"
	"time"
)

// Collection is the immutable set of events loaded at startup.
type Collection struct {
	events []Event
	byID   map[int]int
}

// NewCollection wraps events, indexing them by id.
func NewCollection(events []Event) *Collection {
	c := &Collection{
		events: events,
		byID:   make(map[int]int, len(events)),
	}
	for i, ev := range events {
		c.byID[ev.ID] = i
	}
	return c
}

// Empty returns a collection with no events.
func Empty() *Collection {
	return NewCollection(nil)
}

// Parse decodes and normalizes a JSON array of records.
func Parse(data []byte, vocab Vocabulary, loc *time.Location) (*Collection, error) {
	raws, err := DecodeRecords(data)
	if err != nil {
		return nil, err
	}
	return NewCollection(NormalizeAll(raws, vocab, loc)), nil
}

// All returns the events in load order.
func (c *Collection) All() []Event {
	if c == nil {
		return nil
	}
	return c.events
}

// Len returns the number of events.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.events)
}

// Lookup returns the event with the given id.
func (c *Collection) Lookup(id int) (Event, bool) {
	if c == nil {
		return Event{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Event{}, false
	}
	return c.events[i], true
}

// Earliest returns the event with the earliest start instant.
func (c *Collection) Earliest() (Event, bool) {
	var (
		best  Event
		found bool
	)
	for _, ev := range c.All() {
		if ev.StartTime.IsZero() {
			continue
		}
		if !found || ev.StartTime.Before(best.StartTime) {
			best = ev
			found = true
		}
	}
	return best, found
}

// SortByStart returns a copy of events ordered by start instant.
// Events with unparsable starts keep their relative order at the end.
func SortByStart(events []Event) []Event {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].StartTime, sorted[j].StartTime
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.Before(b)
	})
	return sorted
}
