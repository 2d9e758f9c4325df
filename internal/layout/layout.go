// Package layout stacks multi-day events inside a calendar week.
//
// Each event is clipped to the week's seven columns and given the lowest
// vertical slot that sits above everything already placed in the columns it
// spans. Longer events are placed first.
package layout

import (
	"sort"
	"time"

	"github.com/twdsco/hackertracker/internal/event"
)

// Days is the number of columns in a week.
const Days = 7

// Placement is an event's position within one week.
type Placement struct {
	Event    event.Event
	StartCol int
	EndCol   int
	Slot     int

	// ContinuesLeft is set when the event started before the week.
	ContinuesLeft bool
	// ContinuesRight is set when the event ends after the week.
	ContinuesRight bool
}

// Span returns the number of columns the placement covers.
func (p Placement) Span() int {
	return p.EndCol - p.StartCol + 1
}

// Covers reports whether the placement occupies column col.
func (p Placement) Covers(col int) bool {
	return col >= p.StartCol && col <= p.EndCol
}

// Pack lays out the events overlapping week. Events that do not overlap the
// week, or whose dates cannot be read, are ignored. The result is in
// placement order.
func Pack(week [Days]time.Time, events []event.Event) []Placement {
	first, last := week[0], week[Days-1]

	type candidate struct {
		ev       event.Event
		start    time.Time
		end      time.Time
		duration time.Duration
	}

	candidates := make([]candidate, 0, len(events))
	for _, ev := range events {
		span, ok := ev.Span()
		if !ok || !span.Overlaps(first, last) {
			continue
		}
		candidates = append(candidates, candidate{
			ev:       ev,
			start:    span.Start,
			end:      span.End,
			duration: duration(ev, span.End.Sub(span.Start)),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.duration != b.duration {
			return a.duration > b.duration
		}
		return startInstant(a.ev, a.start).Before(startInstant(b.ev, b.start))
	})

	var occupied [Days]int
	placements := make([]Placement, 0, len(candidates))
	for _, c := range candidates {
		startCol, endCol := 0, Days-1
		for i, d := range week {
			if d.Equal(c.start) {
				startCol = i
			}
			if d.Equal(c.end) {
				endCol = i
			}
		}

		slot := 0
		for i := startCol; i <= endCol; i++ {
			if occupied[i] > slot {
				slot = occupied[i]
			}
		}
		for i := startCol; i <= endCol; i++ {
			occupied[i] = slot + 1
		}

		placements = append(placements, Placement{
			Event:          c.ev,
			StartCol:       startCol,
			EndCol:         endCol,
			Slot:           slot,
			ContinuesLeft:  c.start.Before(first),
			ContinuesRight: c.end.After(last),
		})
	}

	return placements
}

// SlotCount returns the number of slots used by placements.
func SlotCount(placements []Placement) int {
	count := 0
	for _, p := range placements {
		if p.Slot+1 > count {
			count = p.Slot + 1
		}
	}
	return count
}

// InColumn returns the placements covering col, ordered by slot.
func InColumn(placements []Placement, col int) []Placement {
	var out []Placement
	for _, p := range placements {
		if p.Covers(col) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}

// duration prefers the exact instant difference and falls back to the day span.
func duration(ev event.Event, days time.Duration) time.Duration {
	if d := ev.Duration(); d > 0 {
		return d
	}
	return days
}

func startInstant(ev event.Event, day time.Time) time.Time {
	if !ev.StartTime.IsZero() {
		return ev.StartTime
	}
	return day
}
