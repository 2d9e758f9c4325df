package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twdsco/hackertracker/internal/event"
	"github.com/twdsco/hackertracker/internal/tagfilter"
)

var taipei = time.FixedZone("UTC+08:00", 8*3600)

func loadCollection(t *testing.T, data string) *event.Collection {
	t.Helper()
	c, err := event.Parse([]byte(data), event.DefaultVocabulary(), taipei)
	require.NoError(t, err)
	return c
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const sampleEvents = `[
	{"title": "HITCON", "start": "2026-08-20T09:00:00+08:00", "end": "2026-08-21T17:00:00+08:00",
	 "location": "台北", "organizer": "HITCON", "url": "https://hitcon.org/2026", "status": "confirmed", "tags": ["實體", "Conf", "資安"]},
	{"title": "Online CTF", "start": "2026-06-12T10:00+08:00", "end": "2026-06-14T10:00+08:00",
	 "url": "javascript:alert(1)", "status": "tentative", "tags": ["線上", "CTF"]},
	{"title": "Meetup", "start": "2026-06-10T19:00+08:00", "end": "2026-06-10T21:00+08:00",
	 "contact": "meetup@example.org", "status": "confirmed", "tags": ["實體", "資訊"]}
]`

func TestBuildMonth_SinglePill(t *testing.T) {
	events := loadCollection(t, `[{"title": "x", "start": "2026-06-10T09:00+08:00", "end": "2026-06-10T17:00+08:00", "tags": ["實體"]}]`)
	state := NewState(events, nil)

	require.Equal(t, Cursor{Year: 2026, Month: time.June}, state.MonthCursor())
	view := state.Month()

	assert.Equal(t, "2026年 6月", view.Title)
	assert.Equal(t, []string{"日", "一", "二", "三", "四", "五", "六"}, view.Weekdays)

	pills := 0
	for _, week := range view.Weeks {
		for _, p := range week.Placements {
			pills++
			assert.Equal(t, day(2026, time.June, 10), week.Days[p.StartCol].Date)
			assert.Equal(t, p.StartCol, p.EndCol)
			assert.Equal(t, 0, p.Slot)
		}
	}
	assert.Equal(t, 1, pills)
}

func TestBuildMonth_OverlappingEventsStack(t *testing.T) {
	events := loadCollection(t, `[
		{"title": "a", "start": "2026-06-10", "end": "2026-06-12"},
		{"title": "b", "start": "2026-06-10", "end": "2026-06-12"}
	]`)

	view := BuildMonth(events.All(), nil, Cursor{Year: 2026, Month: time.June}, time.Sunday)

	w := weekOf(view, day(2026, time.June, 10))
	require.GreaterOrEqual(t, w, 0)
	placements := view.Weeks[w].Placements
	require.Len(t, placements, 2)
	assert.Equal(t, 0, placements[0].Slot)
	assert.Equal(t, 1, placements[1].Slot)
	assert.Equal(t, 2, view.Weeks[w].Slots)
}

func TestBuildMonth_GridShape(t *testing.T) {
	for year := 2024; year <= 2027; year++ {
		for m := time.January; m <= time.December; m++ {
			for _, ws := range []time.Weekday{time.Sunday, time.Monday} {
				view := BuildMonth(nil, nil, Cursor{Year: year, Month: m}, ws)
				days := time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()

				assert.Equal(t, 7*len(view.Weeks), view.Cells())
				assert.GreaterOrEqual(t, view.Cells(), days)
				assert.Equal(t, ws, view.Weeks[0].Days[0].Date.Weekday())

				inMonth := 0
				for _, week := range view.Weeks {
					for _, cell := range week.Days {
						if cell.InMonth {
							inMonth++
						}
					}
				}
				assert.Equal(t, days, inMonth, "%d-%02d", year, m)
			}
		}
	}
}

func TestBuildMonth_FilterApplies(t *testing.T) {
	events := loadCollection(t, sampleEvents)
	filter := tagfilter.New(event.DefaultVocabulary(), []string{"CTF"})

	view := BuildMonth(events.All(), filter, Cursor{Year: 2026, Month: time.June}, time.Sunday)

	var titles []string
	for _, week := range view.Weeks {
		for _, p := range week.Placements {
			titles = append(titles, p.Event.Title)
		}
	}
	assert.Equal(t, []string{"Online CTF"}, titles)
}

func TestBuildYear(t *testing.T) {
	events := loadCollection(t, sampleEvents)

	view := BuildYear(events.All(), nil, 2026, time.Sunday)

	assert.Equal(t, "2026年", view.Title)
	june := view.Months[time.June-1]
	assert.Equal(t, "6月", june.Title)
	assert.True(t, june.Highlight)
	assert.Equal(t, 1, june.Lead, "june 2026 starts on a monday")
	assert.False(t, view.Months[time.July-1].Highlight)
	assert.True(t, view.Months[time.August-1].Highlight)

	byDay := func(mm MiniMonth, d int) MiniDay { return mm.Days[d-1] }
	assert.Equal(t, DayConfirmed, byDay(june, 10).State)
	assert.Equal(t, DayTentative, byDay(june, 12).State)
	assert.Equal(t, DayTentative, byDay(june, 14).State)
	assert.Equal(t, DayEmpty, byDay(june, 15).State)
	assert.False(t, byDay(june, 11).HasEvent())
	assert.Equal(t, 2, view.Months[time.August-1].Days[20].Count+view.Months[time.August-1].Days[19].Count)
}

func TestBuildYear_HasEventIffCovered(t *testing.T) {
	events := loadCollection(t, sampleEvents)
	all := events.All()

	view := BuildYear(all, nil, 2026, time.Sunday)

	for _, mm := range view.Months {
		for _, md := range mm.Days {
			covered := false
			for _, ev := range all {
				if ev.Covers(md.Date) {
					covered = true
				}
			}
			assert.Equal(t, covered, md.HasEvent(), md.Date.Format("2006-01-02"))
		}
	}
}

func TestBuildYear_ConfirmedWins(t *testing.T) {
	events := loadCollection(t, `[
		{"title": "t", "start": "2026-03-01", "end": "2026-03-03", "status": "tentative"},
		{"title": "c", "start": "2026-03-02", "end": "2026-03-02", "status": "confirmed"}
	]`)

	march := BuildYear(events.All(), nil, 2026, time.Sunday).Months[time.March-1]

	assert.Equal(t, DayTentative, march.Days[0].State)
	assert.Equal(t, DayConfirmed, march.Days[1].State)
	assert.Equal(t, 2, march.Days[1].Count)
}

func TestSelectDay(t *testing.T) {
	events := loadCollection(t, `[
		{"title": "one", "start": "2026-06-10", "end": "2026-06-11", "status": "confirmed"},
		{"title": "two", "start": "2026-06-11", "end": "2026-06-11", "status": "tentative"}
	]`)

	none := SelectDay(events.All(), nil, day(2026, time.June, 9))
	assert.Equal(t, SelectNone, none.Kind)

	single := SelectDay(events.All(), nil, day(2026, time.June, 10))
	assert.Equal(t, SelectDetail, single.Kind)
	assert.Equal(t, 1, single.EventID)

	multi := SelectDay(events.All(), nil, day(2026, time.June, 11))
	require.Equal(t, SelectPicklist, multi.Kind)
	assert.Equal(t, "2026-06-11 活動列表", multi.Title)
	assert.Equal(t, []PickItem{
		{ID: 1, Title: "one"},
		{ID: 2, Title: "two", Tentative: true},
	}, multi.Items)
}

func TestBuildList(t *testing.T) {
	events := loadCollection(t, sampleEvents)

	view := BuildList(events.All(), nil)

	require.Equal(t, 3, view.Total)
	require.Len(t, view.Groups, 2)
	assert.Equal(t, "2026年 6月", view.Groups[0].Title)
	assert.Equal(t, "2026年 8月", view.Groups[1].Title)

	june := view.Groups[0].Cards
	require.Len(t, june, 2)
	assert.Equal(t, "Meetup", june[0].Title)
	assert.Equal(t, "Online CTF", june[1].Title)
	assert.True(t, june[1].Tentative)
	assert.Empty(t, june[1].URL, "javascript links are dropped")
	assert.Equal(t, "meetup@example.org", june[0].Contact)
}

func TestBuildList_Filtered(t *testing.T) {
	events := loadCollection(t, sampleEvents)
	filter := tagfilter.New(event.DefaultVocabulary(), []string{"資安"})

	view := BuildList(events.All(), filter)

	require.Len(t, view.Groups, 1)
	assert.Equal(t, "HITCON", view.Groups[0].Cards[0].Title)
}

func TestBuildList_Undated(t *testing.T) {
	events := loadCollection(t, `[{"title": "someday"}, {"title": "dated", "start": "2026-01-05", "end": "2026-01-05"}]`)

	view := BuildList(events.All(), nil)

	require.Len(t, view.Groups, 2)
	assert.Equal(t, "2026年 1月", view.Groups[0].Title)
	assert.Equal(t, LabelUndated, view.Groups[1].Title)
}

func TestBuildDetail(t *testing.T) {
	events := loadCollection(t, sampleEvents)

	card, ok := BuildDetail(events, 1)
	require.True(t, ok)
	assert.Equal(t, "HITCON", card.Title)
	assert.Equal(t, "2026-08-20 09:00 ~ 2026-08-21 17:00", card.When)
	assert.Equal(t, "https://hitcon.org/2026", card.URL)
	assert.False(t, card.Tentative)

	labels := []string{}
	for _, f := range card.Fields() {
		labels = append(labels, f.Label)
	}
	assert.Equal(t, []string{LabelWhen, LabelLocation, LabelOrganizer, LabelURL}, labels)

	_, ok = BuildDetail(events, 42)
	assert.False(t, ok)
}

func TestFormatWhen(t *testing.T) {
	tests := []struct {
		start, end string
		want       string
	}{
		{"2026-06-10T09:00+08:00", "2026-06-10T17:00+08:00", "2026-06-10 09:00 ~ 17:00"},
		{"2026-06-10T09:00:00+08:00", "2026-06-12T17:30:00+08:00", "2026-06-10 09:00 ~ 2026-06-12 17:30"},
		{"2026-06-10", "2026-06-10", "2026-06-10"},
		{"2026-06-10", "2026-06-12", "2026-06-10 ~ 2026-06-12"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatWhen(tt.start, tt.end))
	}
}

func TestSafeURL(t *testing.T) {
	tests := map[string]string{
		"https://example.org/a?b=c": "https://example.org/a?b=c",
		"HTTP://example.org":        "http://example.org",
		"javascript:alert(1)":       "",
		"ftp://example.org":         "",
		"/relative/path":            "",
		"":                          "",
		"https://":                  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, SafeURL(in), in)
	}
}

// weekOf returns the index of the week row showing d, or -1.
func weekOf(view MonthView, d time.Time) int {
	for w, row := range view.Weeks {
		for _, cell := range row.Days {
			if cell.Date.Equal(d) {
				return w
			}
		}
	}
	return -1
}
