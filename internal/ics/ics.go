// Package ics publishes events as iCalendar feeds.
package ics

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/twdsco/hackertracker/internal/calendar"
	"github.com/twdsco/hackertracker/internal/event"
	"github.com/twdsco/hackertracker/internal/log"
)

// ProductID identifies the generator in every calendar.
const ProductID = "-//hacker-tracker.tw//events//TW"

// DefaultDomain suffixes event UIDs.
const DefaultDomain = "hacker-tracker.tw"

// Feed selects which events a calendar carries.
type Feed string

const (
	FeedAll       Feed = "all"
	FeedConfirmed Feed = "confirmed"
	FeedTentative Feed = "tentative"
)

// Feeds returns every feed in publication order.
func Feeds() []Feed {
	return []Feed{FeedAll, FeedConfirmed, FeedTentative}
}

// ParseFeed maps a feed name to a Feed.
func ParseFeed(s string) (Feed, error) {
	switch f := Feed(strings.ToLower(strings.TrimSpace(s))); f {
	case FeedAll, FeedConfirmed, FeedTentative:
		return f, nil
	case "":
		return FeedAll, nil
	default:
		return "", fmt.Errorf("unknown feed %q", s)
	}
}

// FileName returns the file the feed is published as.
func (f Feed) FileName() string {
	if f == FeedAll {
		return "allevents.ics"
	}
	return string(f) + ".ics"
}

// Includes reports whether ev belongs to the feed.
func (f Feed) Includes(ev event.Event) bool {
	switch f {
	case FeedConfirmed:
		return ev.Status == event.StatusConfirmed
	case FeedTentative:
		return ev.Status == event.StatusTentative
	default:
		return true
	}
}

// Encoder renders events as iCalendar text.
type Encoder struct {
	domain    string
	namespace uuid.UUID
	now       func() time.Time
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithClock sets the clock used for DTSTAMP.
func WithClock(now func() time.Time) Option {
	return func(e *Encoder) { e.now = now }
}

// NewEncoder creates an encoder whose UIDs end in @domain.
func NewEncoder(domain string, opts ...Option) *Encoder {
	if domain == "" {
		domain = DefaultDomain
	}
	e := &Encoder{
		domain:    domain,
		namespace: uuid.NewSHA1(uuid.NameSpaceDNS, []byte(domain)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// UID returns the stable identifier of ev, derived from its title and times.
func (e *Encoder) UID(ev event.Event) string {
	name := strings.Join([]string{ev.Title, ev.Start, ev.End}, "\x00")
	return uuid.NewSHA1(e.namespace, []byte(name)).String() + "@" + e.domain
}

// Calendar builds the feed's calendar. It returns the number of events
// written; events without a title or with unusable times are skipped.
func (e *Encoder) Calendar(feed Feed, events []event.Event) (*ical.Calendar, int) {
	cal := ical.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ical.MethodPublish)

	stamp := e.now().UTC()
	n := 0
	for _, ev := range events {
		if !feed.Includes(ev) {
			continue
		}
		if !exportable(ev) {
			log.Debug("skipping event in calendar", "id", ev.ID, "title", ev.Title)
			continue
		}
		e.addEvent(cal, ev, stamp)
		n++
	}
	return cal, n
}

// Encode renders the feed as iCalendar text.
func (e *Encoder) Encode(feed Feed, events []event.Event) (string, int) {
	cal, n := e.Calendar(feed, events)
	return cal.Serialize(), n
}

// WriteFeeds writes feeds, or every feed when none is given, into dir and
// returns the event count per feed.
func (e *Encoder) WriteFeeds(dir string, events []event.Event, feeds ...Feed) (map[Feed]int, error) {
	if len(feeds) == 0 {
		feeds = Feeds()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	counts := make(map[Feed]int, len(feeds))
	for _, feed := range feeds {
		body, n := e.Encode(feed, events)
		path := filepath.Join(dir, feed.FileName())
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", feed.FileName(), err)
		}
		log.Info("wrote calendar", "path", path, "events", n)
		counts[feed] = n
	}
	return counts, nil
}

func (e *Encoder) addEvent(cal *ical.Calendar, ev event.Event, stamp time.Time) {
	ve := cal.AddEvent(e.UID(ev))
	ve.SetDtStampTime(stamp)
	ve.SetSummary(ev.Title)

	if allDay(ev) {
		ve.SetAllDayStartAt(ev.StartTime)
		// DTEND of an all-day event is exclusive.
		ve.SetAllDayEndAt(ev.EndTime.AddDate(0, 0, 1))
	} else {
		ve.SetStartAt(ev.StartTime)
		ve.SetEndAt(ev.EndTime)
	}

	if ev.Location != "" {
		ve.SetLocation(ev.Location)
	}
	if desc := description(ev); desc != "" {
		ve.SetDescription(desc)
	}
	if link := calendar.SafeURL(ev.URL); link != "" {
		ve.SetURL(link)
	}
	switch ev.Status {
	case event.StatusConfirmed:
		ve.SetStatus(ical.ObjectStatusConfirmed)
	case event.StatusTentative:
		ve.SetStatus(ical.ObjectStatusTentative)
	}
	for _, tag := range ev.Tags {
		ve.AddProperty(ical.ComponentPropertyCategories, tag)
	}
}

func exportable(ev event.Event) bool {
	if ev.Title == "" || ev.Start == "" || ev.End == "" {
		return false
	}
	if ev.StartTime.IsZero() || ev.EndTime.IsZero() {
		return false
	}
	return !ev.EndTime.Before(ev.StartTime)
}

func allDay(ev event.Event) bool {
	return !strings.Contains(ev.Start, "T") && !strings.Contains(ev.End, "T")
}

func description(ev event.Event) string {
	var parts []string
	if ev.Organizer != "" {
		parts = append(parts, "Organizer: "+ev.Organizer)
	}
	if ev.Contact != "" {
		parts = append(parts, "Contact: "+ev.Contact)
	}
	if link := calendar.SafeURL(ev.URL); link != "" {
		parts = append(parts, "URL: "+link)
	}
	return strings.Join(parts, "\n")
}
