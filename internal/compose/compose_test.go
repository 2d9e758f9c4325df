package compose

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/twdsco/hackertracker/internal/event"
)

func newComposer(t *testing.T) *Composer {
	t.Helper()
	c, err := New(event.DefaultVocabulary(), "+08:00")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func validDraft() Draft {
	return Draft{
		Title:     "Taipei Security Meetup #12",
		StartDate: "2026-06-10",
		StartTime: "09:00",
		EndDate:   "2026-06-10",
		EndTime:   "17:00",
		Organizer: "TWDSCO",
		Status:    "confirmed",
		Tags:      []string{"線上"},
	}
}

func TestBuild_Accepts(t *testing.T) {
	out, err := newComposer(t).Build(validDraft())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if out.Record.Start != "2026-06-10T09:00:00+08:00" {
		t.Errorf("start = %q", out.Record.Start)
	}
	if out.Record.End != "2026-06-10T17:00:00+08:00" {
		t.Errorf("end = %q", out.Record.End)
	}
	if out.FileName != "taipei-security-meetup-12.json" {
		t.Errorf("file name = %q", out.FileName)
	}

	want := `{
    "title": "Taipei Security Meetup #12",
    "start": "2026-06-10T09:00:00+08:00",
    "end": "2026-06-10T17:00:00+08:00",
    "location": "",
    "organizer": "TWDSCO",
    "url": "",
    "contact": "",
    "status": "confirmed",
    "tags": [
        "線上"
    ]
}`
	if out.JSON != want {
		t.Errorf("JSON mismatch:\ngot:\n%s\nwant:\n%s", out.JSON, want)
	}
	if strings.Contains(out.JSON, `"id"`) {
		t.Error("output must not carry an id")
	}
}

func TestBuild_AllDay(t *testing.T) {
	d := validDraft()
	d.StartTime, d.EndTime = "", ""
	d.EndDate = "2026-06-12"

	out, err := newComposer(t).Build(d)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if out.Record.Start != "2026-06-10" || out.Record.End != "2026-06-12" {
		t.Errorf("got %q ~ %q", out.Record.Start, out.Record.End)
	}
}

func TestBuild_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Draft)
		wantErr error
	}{
		{"end before start", func(d *Draft) { d.EndTime = "08:59" }, ErrEndBeforeStart},
		{"end date before start date", func(d *Draft) {
			d.StartTime, d.EndTime = "", ""
			d.EndDate = "2026-06-09"
		}, ErrEndBeforeStart},
		{"only start time", func(d *Draft) { d.EndTime = "" }, ErrTimePairing},
		{"only end time", func(d *Draft) { d.StartTime = "" }, ErrTimePairing},
		{"no audience tag", func(d *Draft) { d.Tags = []string{"CTF", "資安"} }, ErrMissingAudienceTag},
		{"unsupported audience spelling", func(d *Draft) { d.Tags = []string{"online"} }, ErrMissingAudienceTag},
		{"empty title", func(d *Draft) { d.Title = "   " }, ErrMissingTitle},
		{"missing end date", func(d *Draft) { d.EndDate = "" }, ErrMissingDate},
		{"bad time", func(d *Draft) { d.StartTime = "9am" }, ErrInvalidDate},
		{"bad date", func(d *Draft) { d.StartDate = "2026/06/10" }, ErrInvalidDate},
		{"bad status", func(d *Draft) { d.Status = "maybe" }, ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)

			out, err := newComposer(t).Build(d)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got error %v, want %v", err, tt.wantErr)
			}
			if out.JSON != "" || out.FileName != "" {
				t.Error("rejected draft must not produce output")
			}
			if Message(err) == "" {
				t.Error("expected a user-facing message")
			}
		})
	}
}

func TestBuild_OnlineAndTags(t *testing.T) {
	d := validDraft()
	d.Online = true
	d.Location = "somewhere"
	d.Tags = []string{"CTF", "線上", "CTF", "unknown"}
	d.Status = ""

	out, err := newComposer(t).Build(d)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if out.Record.Location != DefaultOnlineLocation {
		t.Errorf("location = %q", out.Record.Location)
	}
	if strings.Join(out.Record.Tags, ",") != "CTF,線上" {
		t.Errorf("tags = %q", out.Record.Tags)
	}
	if out.Record.Status != "confirmed" {
		t.Errorf("status = %q", out.Record.Status)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out.JSON), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
}

func TestBuild_OutputLoadsAsEvent(t *testing.T) {
	out, err := newComposer(t).Build(validDraft())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	c, err := event.Parse([]byte("["+out.JSON+"]"), event.DefaultVocabulary(), nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	ev, ok := c.Lookup(1)
	if !ok {
		t.Fatal("expected composed event to load")
	}
	if ev.Title != "Taipei Security Meetup #12" || ev.Duration().Hours() != 8 {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"HITCON 2026", "hitcon-2026"},
		{"  --Hello,   World!--  ", "hello-world"},
		{"台灣資安大會 CYBERSEC", "台灣資安大會-cybersec"},
		{"!!!", ""},
		{"Ünïcode Café", "n-code-caf"},
		{strings.Repeat("ab", 30), strings.Repeat("ab", 20)},
	}

	for _, tt := range tests {
		if got := Slug(tt.title); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("!!!"); got != "event.json" {
		t.Errorf("FileName fallback = %q", got)
	}
	if got := FileName("CTF Night"); got != "ctf-night.json" {
		t.Errorf("FileName = %q", got)
	}
}

func TestCombineDateTime(t *testing.T) {
	tests := []struct {
		date, clock, want string
	}{
		{"", "09:00", ""},
		{"2026-06-10", "", "2026-06-10"},
		{"2026-06-10", "09:00", "2026-06-10T09:00:00+08:00"},
		{"2026-06-10", "09:00:30", "2026-06-10T09:00:30+08:00"},
	}
	for _, tt := range tests {
		if got := CombineDateTime(tt.date, tt.clock, "+08:00"); got != tt.want {
			t.Errorf("CombineDateTime(%q, %q) = %q, want %q", tt.date, tt.clock, got, tt.want)
		}
	}
}

func TestMessage(t *testing.T) {
	if got := Message(ErrNoOutput); got != "尚未產生 JSON，請先送出表單。" {
		t.Errorf("Message = %q", got)
	}
	if got := Message(errors.New("other")); got != "other" {
		t.Errorf("Message passthrough = %q", got)
	}
	if Message(nil) != "" {
		t.Error("Message(nil) should be empty")
	}
}

func TestNew_InvalidOffset(t *testing.T) {
	if _, err := New(event.DefaultVocabulary(), "8"); err == nil {
		t.Error("expected error for invalid offset")
	}
}
