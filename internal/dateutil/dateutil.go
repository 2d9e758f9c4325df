// Package dateutil provides civil date parsing and calendar grid helpers.
//
// Calendar days are represented as time.Time values at midnight UTC so they
// compare and step without daylight-saving surprises. The wall-clock date of
// an event is taken from its timestamp string, never converted between zones.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayLayout is the layout of a calendar day string.
const DayLayout = "2006-01-02"

// Validation errors.
var (
	ErrInvalidDateFormat   = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidMonthFormat  = errors.New("month must be in YYYY-MM format")
	ErrInvalidOffset       = errors.New("timezone offset must be in ±HH:MM format")
	ErrEndDateBeforeStart  = errors.New("end date must be on or after start date")
	ErrInvalidWeekStartDay = errors.New("week start must be sunday or monday")
)

// weekdayMap maps weekday names accepted as a week start.
var weekdayMap = map[string]time.Weekday{
	"sunday": time.Sunday,
	"monday": time.Monday,
}

// DateRange represents a validated, inclusive range of days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a new DateRange with validation.
// startDate can be empty (defaults to today) or in YYYY-MM-DD format.
// endDate can be empty (defaults to startDate) or in YYYY-MM-DD format.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != "" {
		end, err = ParseDate(endDate)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	return &DateRange{Start: start, End: end}, nil
}

// Contains reports whether day falls inside the range.
func (r DateRange) Contains(day time.Time) bool {
	return !day.Before(r.Start) && !day.After(r.End)
}

// Overlaps reports whether [start, end] shares at least one day with the range.
func (r DateRange) Overlaps(start, end time.Time) bool {
	return !start.After(r.End) && !end.Before(r.Start)
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return Today(), nil
	}
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// ParseDay extracts the calendar day of an ISO 8601 date or datetime string.
// Only the part before "T" is considered.
func ParseDay(s string) (time.Time, error) {
	date, _, _ := strings.Cut(strings.TrimSpace(s), "T")
	t, err := time.Parse(DayLayout, date)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// FormatDay formats a calendar day as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// Today returns the current local calendar day.
func Today() time.Time {
	return Day(time.Now())
}

// Day returns the calendar day of t in t's own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstOfMonth returns the first day of the given month.
func FirstOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// LastOfMonth returns the last day of the given month.
func LastOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the first day of the week containing day.
func WeekStart(day time.Time, first time.Weekday) time.Time {
	offset := (int(day.Weekday()) - int(first) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// MonthWeeks returns the weeks needed to show the whole month, each one
// complete with leading and trailing days from the adjacent months.
func MonthWeeks(year int, month time.Month, first time.Weekday) [][7]time.Time {
	last := LastOfMonth(year, month)
	current := WeekStart(FirstOfMonth(year, month), first)

	var weeks [][7]time.Time
	for !current.After(last) {
		var week [7]time.Time
		for i := range week {
			week[i] = current.AddDate(0, 0, i)
		}
		weeks = append(weeks, week)
		current = current.AddDate(0, 0, 7)
	}
	return weeks
}

// AddMonths shifts a (year, month) pair by delta months.
func AddMonths(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// ParseYearMonth parses a YYYY-MM string.
func ParseYearMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, ErrInvalidMonthFormat
	}
	return t.Year(), t.Month(), nil
}

// ParseWeekStart maps a weekday name to the first column of the calendar grid.
func ParseWeekStart(name string) (time.Weekday, error) {
	day, ok := weekdayMap[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return time.Sunday, ErrInvalidWeekStartDay
	}
	return day, nil
}

// ParseOffset returns a fixed zone for an offset such as "+08:00".
func ParseOffset(offset string) (*time.Location, error) {
	offset = strings.TrimSpace(offset)
	if offset == "Z" {
		return time.UTC, nil
	}
	if len(offset) != 6 || (offset[0] != '+' && offset[0] != '-') || offset[3] != ':' {
		return nil, ErrInvalidOffset
	}
	hours, err := strconv.Atoi(offset[1:3])
	if err != nil || hours > 14 {
		return nil, ErrInvalidOffset
	}
	minutes, err := strconv.Atoi(offset[4:6])
	if err != nil || minutes > 59 {
		return nil, ErrInvalidOffset
	}
	seconds := hours*3600 + minutes*60
	if offset[0] == '-' {
		seconds = -seconds
	}
	return time.FixedZone(fmt.Sprintf("UTC%s", offset), seconds), nil
}
