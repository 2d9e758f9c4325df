package tagfilter

import (
	"reflect"
	"testing"

	"github.com/twdsco/hackertracker/internal/event"
)

func TestFilterToggle(t *testing.T) {
	f := New(event.DefaultVocabulary(), nil)

	if !f.Toggle("CTF") {
		t.Fatal("expected CTF to become active")
	}
	if !f.Toggle("實體") {
		t.Fatal("expected 實體 to become active")
	}
	if got := f.Active(); !reflect.DeepEqual(got, []string{"CTF", "實體"}) {
		t.Errorf("Active() = %q", got)
	}

	if f.Toggle("CTF") {
		t.Fatal("expected CTF to become inactive")
	}
	if got := f.Active(); !reflect.DeepEqual(got, []string{"實體"}) {
		t.Errorf("Active() = %q", got)
	}

	if f.Toggle("Meetup") {
		t.Error("unsupported tag must not be activated")
	}
	if len(f.Active()) != 1 {
		t.Errorf("unsupported toggle changed the filter: %q", f.Active())
	}
}

func TestFilterActiveIsCopy(t *testing.T) {
	f := New(event.DefaultVocabulary(), []string{"CTF"})
	active := f.Active()
	active[0] = "mutated"
	if !f.IsActive("CTF") {
		t.Error("mutating Active() result changed the filter")
	}
}

func TestFilterMatches(t *testing.T) {
	ctf := event.Event{ID: 1, Tags: []string{"CTF", "線上"}}
	conf := event.Event{ID: 2, Tags: []string{"Conf", "實體"}}
	untagged := event.Event{ID: 3}

	tests := []struct {
		name   string
		active []string
		want   []int
	}{
		{"empty filter shows all", nil, []int{1, 2, 3}},
		{"single tag", []string{"CTF"}, []int{1}},
		{"union of tags", []string{"CTF", "實體"}, []int{1, 2}},
		{"no intersection", []string{"資訊"}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(event.DefaultVocabulary(), tt.active)
			got := []int{}
			for _, ev := range f.Apply([]event.Event{ctf, conf, untagged}) {
				got = append(got, ev.ID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterClear(t *testing.T) {
	f := New(event.DefaultVocabulary(), []string{"CTF", "資安"})
	f.Clear()
	if !f.Empty() {
		t.Errorf("expected empty filter, got %q", f.Active())
	}
	if f.Query() != "" {
		t.Errorf("Query() = %q, want empty", f.Query())
	}
}

func TestSerialize(t *testing.T) {
	if got := Serialize(nil); got != "" {
		t.Errorf("Serialize(nil) = %q, want empty", got)
	}
	if got := Serialize([]string{"CTF", "Conf"}); got != "tags=CTF,Conf" {
		t.Errorf("Serialize = %q", got)
	}
}

func TestParse(t *testing.T) {
	vocab := event.DefaultVocabulary()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"missing parameter", "view=month", []string{}},
		{"empty string", "", []string{}},
		{"leading question mark", "?tags=CTF", []string{"CTF"}},
		{"unknown tags dropped", "tags=CTF,Meetup,資安", []string{"CTF", "資安"}},
		{"escaped values", "tags=%E5%AF%A6%E9%AB%94%2CCTF", []string{"實體", "CTF"}},
		{"spaces and empties", "tags=+CTF+,,Conf", []string{"CTF", "Conf"}},
		{"other parameters kept apart", "a=1&tags=線上&b=2", []string{"線上"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.query, vocab)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestParseSerializeRoundTrip(t *testing.T) {
	vocab := event.DefaultVocabulary()
	sets := [][]string{
		nil,
		{},
		{"CTF"},
		{"實體", "線上", "資安", "資訊", "Conf", "CTF"},
		{"Conf", "Conf", " CTF "},
		{"unknown", "資安", ""},
		{"", ""},
		{"a b", "線上"},
	}

	for _, tags := range sets {
		got := Parse(Serialize(tags), vocab)
		want := vocab.Sanitize(tags)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Parse(Serialize(%q)) = %q, want %q", tags, got, want)
		}
	}
}

func TestParseSerializeRoundTrip_ConfiguredTags(t *testing.T) {
	vocab := event.NewVocabulary([]string{"a,b", "c d", "x+y", "資安"})
	sets := [][]string{
		{"a,b"},
		{"c d", "x+y"},
		{"資安", "a,b", "x+y"},
		{"a", "b"},
	}

	for _, tags := range sets {
		got := Parse(Serialize(tags), vocab)
		want := vocab.Sanitize(tags)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Parse(Serialize(%q)) = %q, want %q", tags, got, want)
		}
	}
}
