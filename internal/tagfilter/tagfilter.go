// Package tagfilter holds the active tag filter and its query-string form.
package tagfilter

import (
	"net/url"
	"strings"

	"github.com/twdsco/hackertracker/internal/event"
)

// Param is the query parameter carrying the active tags.
const Param = "tags"

// Filter is an ordered set of active tags. An empty filter matches everything.
type Filter struct {
	vocab  event.Vocabulary
	active []string
}

// New creates a filter restricted to vocab, seeded with initial tags.
func New(vocab event.Vocabulary, initial []string) *Filter {
	return &Filter{vocab: vocab, active: vocab.Sanitize(initial)}
}

// Vocabulary returns the tags the filter accepts.
func (f *Filter) Vocabulary() event.Vocabulary {
	return f.vocab
}

// Toggle flips tag and reports whether it is now active.
// Tags outside the vocabulary are ignored.
func (f *Filter) Toggle(tag string) bool {
	tag = strings.TrimSpace(tag)
	if !f.vocab.Contains(tag) {
		return false
	}
	for i, t := range f.active {
		if t == tag {
			f.active = append(f.active[:i:i], f.active[i+1:]...)
			return false
		}
	}
	f.active = append(f.active, tag)
	return true
}

// Set replaces the active tags.
func (f *Filter) Set(tags []string) {
	f.active = f.vocab.Sanitize(tags)
}

// Clear deactivates every tag.
func (f *Filter) Clear() {
	f.active = nil
}

// Active returns a copy of the active tags in activation order.
func (f *Filter) Active() []string {
	out := make([]string, len(f.active))
	copy(out, f.active)
	return out
}

// IsActive reports whether tag is in the filter.
func (f *Filter) IsActive(tag string) bool {
	for _, t := range f.active {
		if t == tag {
			return true
		}
	}
	return false
}

// Empty reports whether the filter shows everything.
func (f *Filter) Empty() bool {
	return len(f.active) == 0
}

// Matches reports whether ev passes the filter.
func (f *Filter) Matches(ev event.Event) bool {
	if len(f.active) == 0 {
		return true
	}
	for _, tag := range ev.Tags {
		if f.IsActive(tag) {
			return true
		}
	}
	return false
}

// Apply returns the events that pass the filter, preserving order.
func (f *Filter) Apply(events []event.Event) []event.Event {
	if len(f.active) == 0 {
		return events
	}
	out := make([]event.Event, 0, len(events))
	for _, ev := range events {
		if f.Matches(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// Query returns the query string for the active tags.
func (f *Filter) Query() string {
	return Serialize(f.active)
}

// Serialize encodes tags as "tags=a,b,c", escaping each tag but keeping the
// separators readable. An empty set yields "".
func Serialize(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = url.QueryEscape(tag)
	}
	return Param + "=" + strings.Join(parts, ",")
}

// Parse extracts the tags parameter from a query string and sanitizes it
// against vocab. A leading "?" is allowed.
func Parse(query string, vocab event.Vocabulary) []string {
	values, err := url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(query), "?"))
	if err != nil {
		return vocab.Sanitize(nil)
	}
	return ParseValue(values.Get(Param), vocab)
}

// ParseValue sanitizes a raw comma-separated tag list.
func ParseValue(value string, vocab event.Vocabulary) []string {
	if value == "" {
		return vocab.Sanitize(nil)
	}
	return vocab.Sanitize(strings.Split(value, ","))
}
