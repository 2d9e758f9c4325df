package event

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestVocabularySanitize(t *testing.T) {
	vocab := DefaultVocabulary()

	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"trims entries", []string{" 實體 ", "資安\t"}, []string{"實體", "資安"}},
		{"drops empties", []string{"", "  ", "CTF"}, []string{"CTF"}},
		{"dedupes keeping first seen order", []string{"CTF", "實體", "CTF", " 實體"}, []string{"CTF", "實體"}},
		{"drops unsupported tags", []string{"Meetup", "線上", "ctf"}, []string{"線上"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := vocab.Sanitize(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestVocabularySanitize_Properties(t *testing.T) {
	vocab := NewVocabulary([]string{"a", "b", "c"})
	inputs := [][]string{
		{"a", "a", "a"},
		{"z", "b", "y", "a", "b"},
		{" c", "c ", "", "d"},
		{"b", "c", "a", "c", "b", "a"},
	}

	for _, raw := range inputs {
		got := vocab.Sanitize(raw)
		seen := map[string]bool{}
		for _, tag := range got {
			if !vocab.Contains(tag) {
				t.Errorf("Sanitize(%q) produced unsupported tag %q", raw, tag)
			}
			if seen[tag] {
				t.Errorf("Sanitize(%q) produced duplicate %q", raw, tag)
			}
			seen[tag] = true
		}
		if again := vocab.Sanitize(got); !reflect.DeepEqual(again, got) {
			t.Errorf("Sanitize is not idempotent: %q then %q", got, again)
		}
	}
}

func TestNewVocabulary(t *testing.T) {
	vocab := NewVocabulary([]string{" CTF", "", "CTF", "a,b", "資安"})
	if got := vocab.Tags(); !reflect.DeepEqual(got, []string{"CTF", "資安"}) {
		t.Errorf("Tags() = %q", got)
	}
	if vocab.Len() != 2 {
		t.Errorf("Len() = %d, want 2", vocab.Len())
	}
}

func TestNormalize(t *testing.T) {
	raw := Raw{
		Title:     "HITCON",
		Start:     "2026-08-20T09:00:00+08:00",
		End:       "2026-08-21T17:00:00+08:00",
		Location:  "台北",
		Organizer: "HITCON",
		URL:       "https://hitcon.org",
		Status:    "confirmed",
		Tags:      []string{"Conf", "實體", "Conf", "unknown"},
	}

	ev := Normalize(7, raw, DefaultVocabulary(), time.UTC)

	if ev.ID != 7 {
		t.Errorf("ID = %d, want 7", ev.ID)
	}
	if ev.Title != "HITCON" || ev.Location != "台北" || ev.URL != "https://hitcon.org" {
		t.Errorf("fields not copied verbatim: %+v", ev)
	}
	if ev.Start != raw.Start || ev.End != raw.End {
		t.Errorf("timestamps should be kept verbatim, got %q %q", ev.Start, ev.End)
	}
	if !reflect.DeepEqual(ev.Tags, []string{"Conf", "實體"}) {
		t.Errorf("Tags = %q", ev.Tags)
	}
	if ev.Status != StatusConfirmed {
		t.Errorf("Status = %q", ev.Status)
	}
	if want := 32 * time.Hour; ev.Duration() != want {
		t.Errorf("Duration = %v, want %v", ev.Duration(), want)
	}
}

func TestNormalize_MissingFields(t *testing.T) {
	ev := Normalize(1, Raw{Title: "bare"}, DefaultVocabulary(), time.UTC)
	if !ev.StartTime.IsZero() || !ev.EndTime.IsZero() {
		t.Error("expected zero instants for missing timestamps")
	}
	if ev.Duration() != 0 {
		t.Errorf("Duration = %v, want 0", ev.Duration())
	}
	if len(ev.Tags) != 0 {
		t.Errorf("Tags = %q, want empty", ev.Tags)
	}
	if _, ok := ev.Span(); ok {
		t.Error("event without dates should have no span")
	}
}

func TestDecodeRecords(t *testing.T) {
	data := []byte(`[
		{"title": "A", "start": "2026-06-10", "end": "2026-06-10", "tags": ["實體", 3, "CTF"]},
		"not an object",
		{"title": 42, "start": "2026-06-11", "status": "tentative", "tags": "實體"}
	]`)

	raws, err := DecodeRecords(data)
	if err != nil {
		t.Fatalf("DecodeRecords failed: %v", err)
	}
	if len(raws) != 2 {
		t.Fatalf("expected 2 records, got %d", len(raws))
	}
	if !reflect.DeepEqual(raws[0].Tags, []string{"實體", "CTF"}) {
		t.Errorf("tags = %q", raws[0].Tags)
	}
	if raws[1].Title != "" {
		t.Errorf("non-string title should be absent, got %q", raws[1].Title)
	}
	if raws[1].Tags != nil {
		t.Errorf("non-array tags should be absent, got %q", raws[1].Tags)
	}
}

func TestDecodeRecords_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"object", `{"title": "x"}`, ErrNotArray},
		{"null", `null`, ErrNotArray},
		{"string", `"events"`, ErrNotArray},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecords([]byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := DecodeRecords([]byte(`[{`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestParseTimestamp(t *testing.T) {
	taipei := time.FixedZone("UTC+08:00", 8*3600)

	tests := []struct {
		input string
		want  time.Time
	}{
		{"2026-06-10T09:00+08:00", time.Date(2026, 6, 10, 1, 0, 0, 0, time.UTC)},
		{"2026-06-10T09:00:00+08:00", time.Date(2026, 6, 10, 1, 0, 0, 0, time.UTC)},
		{"2026-06-10T09:00:00Z", time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)},
		{"2026-06-10T09:00", time.Date(2026, 6, 10, 9, 0, 0, 0, taipei)},
		{"2026-06-10", time.Date(2026, 6, 10, 0, 0, 0, 0, taipei)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input, taipei)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := ParseTimestamp("tomorrow", taipei); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("expected ErrInvalidTime, got %v", err)
	}
}
