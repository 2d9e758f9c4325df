package calendar

import (
	"github.com/twdsco/hackertracker/internal/event"
)

// EventCard is the display model of one event, used by list cards and the
// detail modal. Optional fields are empty when absent.
type EventCard struct {
	ID        int
	Title     string
	Tags      []string
	When      string
	Location  string
	Organizer string
	Contact   string
	URL       string
	Tentative bool
	Confirmed bool
}

// Field is a labelled optional line of a card.
type Field struct {
	Label string
	Value string
}

// CardFor builds the display model of ev.
func CardFor(ev event.Event) EventCard {
	return EventCard{
		ID:        ev.ID,
		Title:     ev.Title,
		Tags:      ev.Tags,
		When:      FormatWhen(ev.Start, ev.End),
		Location:  ev.Location,
		Organizer: ev.Organizer,
		Contact:   ev.Contact,
		URL:       SafeURL(ev.URL),
		Tentative: ev.IsTentative(),
		Confirmed: ev.IsConfirmed(),
	}
}

// Fields returns the card's present lines in display order. The date line
// is always present.
func (c EventCard) Fields() []Field {
	fields := []Field{{Label: LabelWhen, Value: c.When}}
	for _, f := range []Field{
		{Label: LabelLocation, Value: c.Location},
		{Label: LabelOrganizer, Value: c.Organizer},
		{Label: LabelContact, Value: c.Contact},
		{Label: LabelURL, Value: c.URL},
	} {
		if f.Value != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// BuildDetail returns the detail model for id. The second result is false
// when no event has that id.
func BuildDetail(events *event.Collection, id int) (EventCard, bool) {
	ev, ok := events.Lookup(id)
	if !ok {
		return EventCard{}, false
	}
	return CardFor(ev), true
}
