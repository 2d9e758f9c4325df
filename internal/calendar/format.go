package calendar

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/twdsco/hackertracker/internal/event"
)

// Display labels.
const (
	BadgeTentative = "⚠️ 暫定"
	LabelWhen      = "日期/時間"
	LabelLocation  = "地點"
	LabelOrganizer = "主辦單位"
	LabelContact   = "聯絡資訊"
	LabelURL       = "活動網址"
	LabelUndated   = "日期未定"
	LabelEmptyList = "目前沒有符合條件的活動"
)

var weekdayLabels = [7]string{"日", "一", "二", "三", "四", "五", "六"}

// MonthTitle formats a month heading, e.g. "2026年 6月".
func MonthTitle(year int, month time.Month) string {
	return fmt.Sprintf("%d年 %d月", year, int(month))
}

// YearTitle formats a year heading, e.g. "2026年".
func YearTitle(year int) string {
	return fmt.Sprintf("%d年", year)
}

// MonthLabel formats a short month name, e.g. "6月".
func MonthLabel(month time.Month) string {
	return fmt.Sprintf("%d月", int(month))
}

// WeekdayLabels returns the weekday headers starting at first.
func WeekdayLabels(first time.Weekday) []string {
	labels := make([]string, 7)
	for i := range labels {
		labels[i] = weekdayLabels[(int(first)+i)%7]
	}
	return labels
}

// PicklistTitle formats the heading of the per-day event list.
func PicklistTitle(day time.Time) string {
	return day.Format("2006-01-02") + " 活動列表"
}

// FormatWhen renders the combined start~end display. Same-day events show
// the date once with both times; multi-day events show both dates.
func FormatWhen(start, end string) string {
	startDate, startClock := event.SplitTimestamp(start)
	endDate, endClock := event.SplitTimestamp(end)
	startClock = clockOf(startClock)
	endClock = clockOf(endClock)

	if startDate == endDate {
		switch {
		case startClock == "" && endClock == "":
			return startDate
		default:
			return fmt.Sprintf("%s %s ~ %s", startDate, startClock, endClock)
		}
	}
	return fmt.Sprintf("%s ~ %s", joinNonEmpty(startDate, startClock), joinNonEmpty(endDate, endClock))
}

// clockOf trims a time-of-day down to HH:MM, dropping seconds and offset.
func clockOf(s string) string {
	if len(s) >= 5 && s[2] == ':' {
		return s[:5]
	}
	return s
}

func joinNonEmpty(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// SafeURL returns the link only when it is an absolute http or https URL.
func SafeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	return u.String()
}
