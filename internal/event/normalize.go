package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotArray is returned when the event source is not a JSON array.
var ErrNotArray = errors.New("event data must be a JSON array")

// DefaultTags is the supported tag vocabulary.
var DefaultTags = []string{"實體", "線上", "資安", "資訊", "Conf", "CTF"}

// Audience tags. Every published event carries at least one of them.
const (
	TagInPerson = "實體"
	TagOnline   = "線上"
)

// Raw is an event record as published in the data files.
// Field order matches the canonical file layout.
type Raw struct {
	Title     string   `json:"title"`
	Start     string   `json:"start"`
	End       string   `json:"end"`
	Location  string   `json:"location"`
	Organizer string   `json:"organizer"`
	URL       string   `json:"url"`
	Contact   string   `json:"contact"`
	Status    string   `json:"status"`
	Tags      []string `json:"tags"`
}

// Vocabulary is the fixed, ordered set of supported tags.
type Vocabulary struct {
	tags []string
	set  map[string]struct{}
}

// NewVocabulary builds a vocabulary from tags, trimming and de-duplicating
// them. Tags containing a comma are dropped: the share query separates tags
// with commas.
func NewVocabulary(tags []string) Vocabulary {
	v := Vocabulary{set: make(map[string]struct{}, len(tags))}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || strings.Contains(tag, ",") {
			continue
		}
		if _, ok := v.set[tag]; ok {
			continue
		}
		v.set[tag] = struct{}{}
		v.tags = append(v.tags, tag)
	}
	return v
}

// DefaultVocabulary returns the vocabulary built from DefaultTags.
func DefaultVocabulary() Vocabulary {
	return NewVocabulary(DefaultTags)
}

// Tags returns the vocabulary in its configured order.
func (v Vocabulary) Tags() []string {
	out := make([]string, len(v.tags))
	copy(out, v.tags)
	return out
}

// Contains reports whether tag belongs to the vocabulary.
func (v Vocabulary) Contains(tag string) bool {
	_, ok := v.set[tag]
	return ok
}

// Len returns the number of supported tags.
func (v Vocabulary) Len() int {
	return len(v.tags)
}

// Sanitize trims each entry, drops empties and duplicates (keeping the first
// occurrence), and drops anything outside the vocabulary.
func (v Vocabulary) Sanitize(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		if v.Contains(tag) {
			out = append(out, tag)
		}
	}
	return out
}

// Normalize converts a raw record into an Event with the given id.
// It never fails: unparsable timestamps leave StartTime/EndTime zero.
func Normalize(id int, raw Raw, vocab Vocabulary, loc *time.Location) Event {
	ev := Event{
		ID:        id,
		Title:     raw.Title,
		Start:     raw.Start,
		End:       raw.End,
		Location:  raw.Location,
		Organizer: raw.Organizer,
		Contact:   raw.Contact,
		URL:       raw.URL,
		Status:    Status(raw.Status),
		Tags:      vocab.Sanitize(raw.Tags),
	}
	if t, err := ParseTimestamp(raw.Start, loc); err == nil {
		ev.StartTime = t
	}
	if t, err := ParseTimestamp(raw.End, loc); err == nil {
		ev.EndTime = t
	}
	return ev
}

// NormalizeAll normalizes records in order, assigning ids starting at 1.
func NormalizeAll(raws []Raw, vocab Vocabulary, loc *time.Location) []Event {
	events := make([]Event, 0, len(raws))
	for i, raw := range raws {
		events = append(events, Normalize(i+1, raw, vocab, loc))
	}
	return events
}

// DecodeRecords decodes a JSON array of event records.
// Elements that are not objects are skipped; fields of the wrong type are
// treated as absent.
func DecodeRecords(data []byte) ([]Raw, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrNotArray
		}
		return nil, fmt.Errorf("decoding events: %w", err)
	}
	if items == nil {
		return nil, ErrNotArray
	}

	raws := make([]Raw, 0, len(items))
	for _, item := range items {
		var fields map[string]any
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			continue
		}
		raws = append(raws, RawFromMap(fields))
	}
	return raws, nil
}

// RawFromMap extracts a Raw record from a decoded JSON object.
func RawFromMap(fields map[string]any) Raw {
	return Raw{
		Title:     stringField(fields, "title"),
		Start:     stringField(fields, "start"),
		End:       stringField(fields, "end"),
		Location:  stringField(fields, "location"),
		Organizer: stringField(fields, "organizer"),
		URL:       stringField(fields, "url"),
		Contact:   stringField(fields, "contact"),
		Status:    stringField(fields, "status"),
		Tags:      stringList(fields, "tags"),
	}
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

func stringList(fields map[string]any, key string) []string {
	items, ok := fields[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ToRaw converts an event back into its published record shape.
func (e *Event) ToRaw() Raw {
	tags := make([]string, len(e.Tags))
	copy(tags, e.Tags)
	return Raw{
		Title:     e.Title,
		Start:     e.Start,
		End:       e.End,
		Location:  e.Location,
		Organizer: e.Organizer,
		URL:       e.URL,
		Contact:   e.Contact,
		Status:    string(e.Status),
		Tags:      tags,
	}
}
