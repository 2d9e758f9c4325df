// Package event defines the calendar event model for hackertracker.
package event

import (
	"errors"
	"strings"
	"time"

	"github.com/twdsco/hackertracker/internal/dateutil"
)

// Domain errors.
var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidTime   = errors.New("timestamp must be an ISO 8601 date or datetime")
)

// Status represents the confirmation state of an event.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusTentative Status = "tentative"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusTentative:
		return true
	default:
		return false
	}
}

// Event is a normalized calendar event.
//
// Start and End keep the timestamp strings exactly as published so that the
// wall-clock date and time shown to users never shifts between zones.
// StartTime and EndTime are the parsed instants, zero when unparsable.
type Event struct {
	ID        int
	Title     string
	Start     string
	End       string
	Location  string
	Organizer string
	Contact   string
	URL       string
	Status    Status
	Tags      []string

	StartTime time.Time
	EndTime   time.Time
}

// IsTentative returns true if the schedule is not confirmed yet.
func (e *Event) IsTentative() bool {
	return e.Status == StatusTentative
}

// IsConfirmed returns true if the event has confirmed status.
func (e *Event) IsConfirmed() bool {
	return e.Status == StatusConfirmed
}

// Duration returns End - Start, or zero when either bound is unparsable.
func (e *Event) Duration() time.Duration {
	if e.StartTime.IsZero() || e.EndTime.IsZero() {
		return 0
	}
	return e.EndTime.Sub(e.StartTime)
}

// StartDay returns the calendar day written in the start timestamp.
func (e *Event) StartDay() (time.Time, bool) {
	d, err := dateutil.ParseDay(e.Start)
	return d, err == nil
}

// EndDay returns the calendar day written in the end timestamp.
func (e *Event) EndDay() (time.Time, bool) {
	d, err := dateutil.ParseDay(e.End)
	return d, err == nil
}

// Span returns the inclusive range of calendar days the event covers.
// Events whose end day precedes the start day have no span.
func (e *Event) Span() (dateutil.DateRange, bool) {
	start, ok := e.StartDay()
	if !ok {
		return dateutil.DateRange{}, false
	}
	end, ok := e.EndDay()
	if !ok {
		return dateutil.DateRange{}, false
	}
	if end.Before(start) {
		return dateutil.DateRange{}, false
	}
	return dateutil.DateRange{Start: start, End: end}, true
}

// Covers reports whether the event's day range includes day.
func (e *Event) Covers(day time.Time) bool {
	span, ok := e.Span()
	return ok && span.Contains(day)
}

// Overlaps reports whether the event shares at least one day with [from, to].
func (e *Event) Overlaps(from, to time.Time) bool {
	span, ok := e.Span()
	return ok && span.Overlaps(from, to)
}

// HasTag reports whether the event carries tag.
func (e *Event) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SplitTimestamp splits an ISO timestamp into its date and time halves.
// The time half is empty for date-only values.
func SplitTimestamp(s string) (date, clock string) {
	date, clock, _ = strings.Cut(s, "T")
	return date, clock
}

// timestampLayouts are tried in order; offset-less values use the default zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	dateutil.DayLayout,
}

// ParseTimestamp parses an ISO 8601 date or datetime. Values without an
// explicit offset are interpreted in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidTime
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTime
}
