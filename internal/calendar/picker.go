package calendar

import (
	"strconv"
	"time"
)

// YearsPerPage is the number of years shown by the year picker.
const YearsPerPage = 12

// PickerOption is one button of a picker grid.
type PickerOption struct {
	Label   string
	Value   int
	Current bool
}

// MonthPicker browses years without moving the month cursor until a month
// is chosen.
type MonthPicker struct {
	Year    int
	current Cursor
}

// NewMonthPicker opens the picker on the cursor's year.
func NewMonthPicker(current Cursor) MonthPicker {
	return MonthPicker{Year: current.Year, current: current}
}

// Shift moves the browsed year by delta.
func (p MonthPicker) Shift(delta int) MonthPicker {
	p.Year += delta
	return p
}

// Title returns the picker heading.
func (p MonthPicker) Title() string {
	return YearTitle(p.Year)
}

// Options returns the 12 months, marking the cursor's month.
func (p MonthPicker) Options() []PickerOption {
	opts := make([]PickerOption, 12)
	for i := range opts {
		m := time.Month(i + 1)
		opts[i] = PickerOption{
			Label:   MonthLabel(m),
			Value:   int(m),
			Current: p.Year == p.current.Year && m == p.current.Month,
		}
	}
	return opts
}

// Select returns the cursor for month in the browsed year.
func (p MonthPicker) Select(month time.Month) Cursor {
	return Cursor{Year: p.Year, Month: month}
}

// YearPicker shows a page of YearsPerPage years.
type YearPicker struct {
	Start   int
	current int
}

// NewYearPicker opens the page containing year.
func NewYearPicker(year int) YearPicker {
	return YearPicker{Start: pageStart(year), current: year}
}

func pageStart(year int) int {
	start := year / YearsPerPage * YearsPerPage
	if year < 0 && year%YearsPerPage != 0 {
		start -= YearsPerPage
	}
	return start
}

// Shift moves by delta pages.
func (p YearPicker) Shift(delta int) YearPicker {
	p.Start += delta * YearsPerPage
	return p
}

// Title returns the range heading, e.g. "2016 - 2027".
func (p YearPicker) Title() string {
	return strconv.Itoa(p.Start) + " - " + strconv.Itoa(p.Start+YearsPerPage-1)
}

// Options returns the years of the page, marking the current one.
func (p YearPicker) Options() []PickerOption {
	opts := make([]PickerOption, YearsPerPage)
	for i := range opts {
		y := p.Start + i
		opts[i] = PickerOption{Label: strconv.Itoa(y), Value: y, Current: y == p.current}
	}
	return opts
}
