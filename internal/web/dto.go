package web

import (
	"github.com/twdsco/hackertracker/internal/calendar"
	"github.com/twdsco/hackertracker/internal/compose"
	"github.com/twdsco/hackertracker/internal/dateutil"
	"github.com/twdsco/hackertracker/internal/event"
)

type eventJSON struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Start     string   `json:"start"`
	End       string   `json:"end"`
	Location  string   `json:"location,omitempty"`
	Organizer string   `json:"organizer,omitempty"`
	Contact   string   `json:"contact,omitempty"`
	URL       string   `json:"url,omitempty"`
	Status    string   `json:"status"`
	Tags      []string `json:"tags"`
}

func toEventJSON(ev event.Event) eventJSON {
	tags := ev.Tags
	if tags == nil {
		tags = []string{}
	}
	return eventJSON{
		ID:        ev.ID,
		Title:     ev.Title,
		Start:     ev.Start,
		End:       ev.End,
		Location:  ev.Location,
		Organizer: ev.Organizer,
		Contact:   ev.Contact,
		URL:       calendar.SafeURL(ev.URL),
		Status:    string(ev.Status),
		Tags:      tags,
	}
}

type fieldJSON struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type cardJSON struct {
	ID        int         `json:"id"`
	Title     string      `json:"title"`
	Badge     string      `json:"badge,omitempty"`
	Tags      []string    `json:"tags"`
	Fields    []fieldJSON `json:"fields"`
	Tentative bool        `json:"tentative"`
}

func toCardJSON(card calendar.EventCard) cardJSON {
	out := cardJSON{
		ID:        card.ID,
		Title:     card.Title,
		Tags:      card.Tags,
		Tentative: card.Tentative,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if card.Tentative {
		out.Badge = calendar.BadgeTentative
	}
	for _, f := range card.Fields() {
		out.Fields = append(out.Fields, fieldJSON{Label: f.Label, Value: f.Value})
	}
	return out
}

type dayJSON struct {
	Date    string `json:"date"`
	Day     int    `json:"day"`
	InMonth bool   `json:"in_month"`
}

type barJSON struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Tentative      bool   `json:"tentative"`
	StartCol       int    `json:"start_col"`
	EndCol         int    `json:"end_col"`
	Slot           int    `json:"slot"`
	ContinuesLeft  bool   `json:"continues_left"`
	ContinuesRight bool   `json:"continues_right"`
}

type weekJSON struct {
	Days  []dayJSON `json:"days"`
	Slots int       `json:"slots"`
	Bars  []barJSON `json:"bars"`
}

type monthJSON struct {
	Year     int        `json:"year"`
	Month    int        `json:"month"`
	Title    string     `json:"title"`
	Weekdays []string   `json:"weekdays"`
	Weeks    []weekJSON `json:"weeks"`
}

func toMonthJSON(view calendar.MonthView) monthJSON {
	out := monthJSON{
		Year:     view.Year,
		Month:    int(view.Month),
		Title:    view.Title,
		Weekdays: view.Weekdays,
		Weeks:    make([]weekJSON, 0, len(view.Weeks)),
	}
	for _, row := range view.Weeks {
		week := weekJSON{Slots: row.Slots, Bars: make([]barJSON, 0, len(row.Placements))}
		for _, cell := range row.Days {
			week.Days = append(week.Days, dayJSON{
				Date:    dateutil.FormatDay(cell.Date),
				Day:     cell.Day,
				InMonth: cell.InMonth,
			})
		}
		for _, p := range row.Placements {
			week.Bars = append(week.Bars, barJSON{
				ID:             p.Event.ID,
				Title:          p.Event.Title,
				Tentative:      p.Event.IsTentative(),
				StartCol:       p.StartCol,
				EndCol:         p.EndCol,
				Slot:           p.Slot,
				ContinuesLeft:  p.ContinuesLeft,
				ContinuesRight: p.ContinuesRight,
			})
		}
		out.Weeks = append(out.Weeks, week)
	}
	return out
}

type miniDayJSON struct {
	Date  string `json:"date"`
	Day   int    `json:"day"`
	State string `json:"state"`
	Count int    `json:"count"`
}

type miniMonthJSON struct {
	Month     int           `json:"month"`
	Title     string        `json:"title"`
	Highlight bool          `json:"highlight"`
	Lead      int           `json:"lead"`
	Days      []miniDayJSON `json:"days"`
}

type yearJSON struct {
	Year     int             `json:"year"`
	Title    string          `json:"title"`
	Weekdays []string        `json:"weekdays"`
	Months   []miniMonthJSON `json:"months"`
}

func toYearJSON(view calendar.YearView) yearJSON {
	out := yearJSON{
		Year:     view.Year,
		Title:    view.Title,
		Weekdays: view.Weekdays,
		Months:   make([]miniMonthJSON, 0, len(view.Months)),
	}
	for _, m := range view.Months {
		month := miniMonthJSON{
			Month:     int(m.Month),
			Title:     m.Title,
			Highlight: m.Highlight,
			Lead:      m.Lead,
			Days:      make([]miniDayJSON, 0, len(m.Days)),
		}
		for _, d := range m.Days {
			month.Days = append(month.Days, miniDayJSON{
				Date:  dateutil.FormatDay(d.Date),
				Day:   d.Day,
				State: dayStateName(d.State),
				Count: d.Count,
			})
		}
		out.Months = append(out.Months, month)
	}
	return out
}

func dayStateName(s calendar.DayState) string {
	switch s {
	case calendar.DayConfirmed:
		return "confirmed"
	case calendar.DayTentative:
		return "tentative"
	default:
		return "empty"
	}
}

type pickJSON struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Tentative bool   `json:"tentative"`
}

type selectionJSON struct {
	Date    string     `json:"date"`
	Kind    string     `json:"kind"`
	Title   string     `json:"title,omitempty"`
	EventID int        `json:"event_id,omitempty"`
	Items   []pickJSON `json:"items,omitempty"`
}

func toSelectionJSON(sel calendar.DaySelection) selectionJSON {
	out := selectionJSON{
		Date:    dateutil.FormatDay(sel.Day),
		Title:   sel.Title,
		EventID: sel.EventID,
	}
	switch sel.Kind {
	case calendar.SelectDetail:
		out.Kind = "detail"
	case calendar.SelectPicklist:
		out.Kind = "picklist"
	default:
		out.Kind = "none"
	}
	for _, item := range sel.Items {
		out.Items = append(out.Items, pickJSON{ID: item.ID, Title: item.Title, Tentative: item.Tentative})
	}
	return out
}

type composeRequest struct {
	Title     string   `json:"title"`
	StartDate string   `json:"start_date"`
	StartTime string   `json:"start_time"`
	EndDate   string   `json:"end_date"`
	EndTime   string   `json:"end_time"`
	Location  string   `json:"location"`
	Organizer string   `json:"organizer"`
	Contact   string   `json:"contact"`
	URL       string   `json:"url"`
	Status    string   `json:"status"`
	Tags      []string `json:"tags"`
	Online    bool     `json:"online"`
}

func (r composeRequest) draft() compose.Draft {
	return compose.Draft{
		Title:     r.Title,
		StartDate: r.StartDate,
		StartTime: r.StartTime,
		EndDate:   r.EndDate,
		EndTime:   r.EndTime,
		Location:  r.Location,
		Organizer: r.Organizer,
		Contact:   r.Contact,
		URL:       r.URL,
		Status:    r.Status,
		Tags:      r.Tags,
		Online:    r.Online,
	}
}
