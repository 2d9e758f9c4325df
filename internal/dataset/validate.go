package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/twdsco/hackertracker/internal/dateutil"
	"github.com/twdsco/hackertracker/internal/event"
)

// ErrInvalidEvent wraps every validation failure.
var ErrInvalidEvent = errors.New("invalid event")

// requiredFields lists the fields every event file must carry, with the
// JSON kind each must have.
var requiredFields = []struct {
	name string
	kind string
}{
	{"title", "string"},
	{"start", "string"},
	{"end", "string"},
	{"status", "string"},
	{"organizer", "string"},
	{"tags", "list"},
}

// ValidateFile checks a single event file. audience lists the tags of which
// at least one is required; nil means 實體 or 線上.
func ValidateFile(path string, audience []string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("file not found: %s", path)
		}
		return fmt.Errorf("reading event file: %w", err)
	}
	return Validate(data, audience)
}

// Validate checks the contents of an event file.
func Validate(data []byte, audience []string) error {
	if audience == nil {
		audience = []string{event.TagInPerson, event.TagOnline}
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return invalid("invalid JSON: %v", err)
	}
	fields, ok := v.(map[string]any)
	if !ok {
		return invalid("event file must contain a single JSON object")
	}

	for _, f := range requiredFields {
		value, present := fields[f.name]
		if !present {
			return invalid("missing required field: %s", f.name)
		}
		if !hasKind(value, f.kind) {
			return invalid("field '%s' must be of type %s", f.name, f.kind)
		}
	}

	if !event.Status(fields["status"].(string)).Valid() {
		return invalid("status must be one of: confirmed, tentative")
	}

	for _, name := range []string{"location", "contact"} {
		if value, present := fields[name]; present && value != nil && !hasKind(value, "string") {
			return invalid("field '%s' must be a string if provided", name)
		}
	}

	if value, present := fields["url"]; present && value != nil && value != "" {
		s, ok := value.(string)
		if !ok {
			return invalid("field 'url' must be a string if provided")
		}
		u, err := url.Parse(s)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return invalid("field 'url' must be a valid http or https URL")
		}
	}

	for _, name := range []string{"start", "end"} {
		value := fields[name].(string)
		if strings.Contains(value, "T") {
			if _, err := event.ParseTimestamp(value, time.UTC); err != nil {
				return invalid("field '%s' must be a valid ISO datetime with timezone", name)
			}
			continue
		}
		if _, err := time.Parse(dateutil.DayLayout, value); err != nil {
			return invalid("field '%s' must be YYYY-MM-DD or ISO datetime with timezone", name)
		}
	}

	if !hasAnyTag(fields["tags"].([]any), audience) {
		return invalid("tags must include at least one of: %s", strings.Join(audience, ", "))
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidEvent, fmt.Sprintf(format, args...))
}

func hasKind(value any, kind string) bool {
	switch kind {
	case "string":
		_, ok := value.(string)
		return ok
	case "list":
		_, ok := value.([]any)
		return ok
	}
	return false
}

func hasAnyTag(tags []any, audience []string) bool {
	for _, t := range tags {
		s, ok := t.(string)
		if !ok {
			continue
		}
		for _, a := range audience {
			if s == a {
				return true
			}
		}
	}
	return false
}
