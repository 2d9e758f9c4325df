package integration

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/twdsco/hackertracker/internal/calendar"
	"github.com/twdsco/hackertracker/internal/compose"
	"github.com/twdsco/hackertracker/internal/db"
	"github.com/twdsco/hackertracker/internal/event"
	"github.com/twdsco/hackertracker/internal/ics"
	"github.com/twdsco/hackertracker/internal/log"
	"github.com/twdsco/hackertracker/internal/source"
	"github.com/twdsco/hackertracker/internal/tagfilter"
	"github.com/twdsco/hackertracker/internal/web"
)

func TestMain(m *testing.M) {
	log.Discard()
	os.Exit(m.Run())
}

const allJSON = `[
	{"title": "HITCON", "start": "2026-08-20T09:00:00+08:00", "end": "2026-08-21T17:00:00+08:00",
	 "location": "台北", "organizer": "HITCON", "url": "https://hitcon.org/2026", "status": "confirmed", "tags": ["實體", "Conf"]},
	{"title": "Online CTF", "start": "2026-06-12T10:00+08:00", "end": "2026-06-14T10:00+08:00",
	 "status": "tentative", "tags": ["線上", "CTF", "unknown"]},
	"not an event",
	{"title": "Meetup", "start": "2026-06-10T19:00+08:00", "end": "2026-06-10T21:00+08:00",
	 "status": "confirmed", "tags": ["實體", "資訊"]},
	{"title": "TBD", "start": "someday", "end": "", "status": "tentative", "tags": ["實體"]}
]`

var taipei = time.FixedZone("+08:00", 8*60*60)

// writeSource writes the sample all.json and returns a loader for it.
func writeSource(t *testing.T) *source.Loader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "all.json")
	if err := os.WriteFile(path, []byte(allJSON), 0o644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}
	return source.New(path, event.DefaultVocabulary(),
		source.WithCacheBusting(false),
		source.WithLocation(taipei),
	)
}

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := db.New(dbPath, db.WithLocation(taipei))
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// importSource loads the sample source into a fresh snapshot.
func importSource(t *testing.T) (*event.Collection, *db.SQLite) {
	t.Helper()
	ctx := context.Background()
	loader := writeSource(t)

	loaded, err := loader.Load(ctx)
	if err != nil {
		t.Fatalf("failed to load source: %v", err)
	}
	repo := openRepo(t)
	if err := repo.ReplaceEvents(ctx, loaded.All(), loader.Path()); err != nil {
		t.Fatalf("failed to store events: %v", err)
	}
	return loaded, repo
}

func titles(events []event.Event) []string {
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.Title
	}
	return out
}

func TestImportRoundTrip(t *testing.T) {
	loaded, repo := importSource(t)
	ctx := context.Background()

	stored, err := repo.Collection(ctx)
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	if stored.Len() != loaded.Len() {
		t.Fatalf("stored %d events, loaded %d", stored.Len(), loaded.Len())
	}

	for _, want := range loaded.All() {
		got, ok := stored.Lookup(want.ID)
		if !ok {
			t.Fatalf("event %d missing from snapshot", want.ID)
		}
		if got.Title != want.Title || got.Start != want.Start || got.End != want.End {
			t.Errorf("event %d: got %q %s..%s, want %q %s..%s",
				want.ID, got.Title, got.Start, got.End, want.Title, want.Start, want.End)
		}
		if got.Status != want.Status {
			t.Errorf("event %d status: got %q, want %q", want.ID, got.Status, want.Status)
		}
		if strings.Join(got.Tags, ",") != strings.Join(want.Tags, ",") {
			t.Errorf("event %d tags: got %v, want %v", want.ID, got.Tags, want.Tags)
		}
		if !got.StartTime.Equal(want.StartTime) {
			t.Errorf("event %d start time: got %v, want %v", want.ID, got.StartTime, want.StartTime)
		}
	}

	snap, err := repo.Snapshot(ctx)
	if err != nil {
		t.Fatalf("failed to read snapshot meta: %v", err)
	}
	if snap.Count != loaded.Len() {
		t.Errorf("snapshot count: got %d, want %d", snap.Count, loaded.Len())
	}
	if !strings.HasSuffix(snap.Source, "all.json") {
		t.Errorf("snapshot source: got %q", snap.Source)
	}
}

func TestImport_UnknownTagsDropped(t *testing.T) {
	_, repo := importSource(t)

	events, err := repo.ListEvents(context.Background())
	if err != nil {
		t.Fatalf("failed to list events: %v", err)
	}
	for _, ev := range events {
		if ev.HasTag("unknown") {
			t.Errorf("event %q kept a tag outside the vocabulary: %v", ev.Title, ev.Tags)
		}
	}
}

func TestImport_ReplaceKeepsOnlyLatest(t *testing.T) {
	_, repo := importSource(t)
	ctx := context.Background()

	only := []event.Event{{ID: 1, Title: "Solo", Start: "2026-01-01", End: "2026-01-01", Status: event.StatusConfirmed}}
	if err := repo.ReplaceEvents(ctx, only, "manual"); err != nil {
		t.Fatalf("failed to replace events: %v", err)
	}

	events, err := repo.ListEvents(ctx)
	if err != nil {
		t.Fatalf("failed to list events: %v", err)
	}
	if got := titles(events); len(got) != 1 || got[0] != "Solo" {
		t.Fatalf("events after replace: %v", got)
	}
	if _, err := repo.GetEvent(ctx, 4); !errors.Is(err, event.ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound for a replaced event, got %v", err)
	}
}

func TestSnapshotDateRange(t *testing.T) {
	_, repo := importSource(t)
	ctx := context.Background()

	from := time.Date(2026, time.June, 11, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)
	events, err := repo.ListEventsByDateRange(ctx, from, to)
	if err != nil {
		t.Fatalf("failed to list events: %v", err)
	}
	if got := titles(events); len(got) != 1 || got[0] != "Online CTF" {
		t.Fatalf("events in range: %v", got)
	}
}

func TestSnapshotMonthView(t *testing.T) {
	_, repo := importSource(t)

	stored, err := repo.Collection(context.Background())
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}

	mv := calendar.BuildMonth(stored.All(), nil, calendar.Cursor{Year: 2026, Month: time.June}, time.Sunday)
	if mv.Title != "2026年 6月" {
		t.Errorf("title: got %q", mv.Title)
	}

	// June 12 2026 is a Friday: the CTF spans Fri-Sat of one week and
	// Sunday of the next.
	var spans []string
	for _, week := range mv.Weeks {
		for _, p := range week.Placements {
			if p.Event.Title != "Online CTF" {
				continue
			}
			spans = append(spans, week.Days[p.StartCol].Date.Format("01-02")+".."+week.Days[p.EndCol].Date.Format("01-02"))
		}
	}
	if strings.Join(spans, " ") != "06-12..06-13 06-14..06-14" {
		t.Errorf("CTF placements: got %v", spans)
	}
}

func TestSnapshotFilteredYear(t *testing.T) {
	_, repo := importSource(t)

	stored, err := repo.Collection(context.Background())
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}

	vocab := event.DefaultVocabulary()
	filter := tagfilter.New(vocab, tagfilter.Parse("?tags=實體", vocab))
	yv := calendar.BuildYear(stored.All(), filter, 2026, time.Sunday)

	june := yv.Months[time.June-1]
	if !june.Highlight {
		t.Fatalf("June should be highlighted")
	}
	for _, d := range june.Days {
		want := calendar.DayEmpty
		if d.Day == 10 {
			want = calendar.DayConfirmed
		}
		if d.State != want {
			t.Errorf("June %d: got state %v, want %v", d.Day, d.State, want)
		}
	}
	if !yv.Months[time.August-1].Highlight {
		t.Errorf("August should be highlighted")
	}
}

// The day an event lands on follows the date written in its timestamp,
// never the conversion into the viewer's zone.
func TestWallClockDates(t *testing.T) {
	late := []byte(`[{"title": "Late night", "start": "2026-06-10T23:30:00+08:00", "end": "2026-06-11T01:00:00+08:00",
		"status": "confirmed", "tags": ["線上"]}]`)

	for _, loc := range []*time.Location{time.UTC, taipei, time.FixedZone("-10:00", -10*60*60)} {
		t.Run(loc.String(), func(t *testing.T) {
			events, err := event.Parse(late, event.DefaultVocabulary(), loc)
			if err != nil {
				t.Fatalf("failed to parse: %v", err)
			}

			repo, err := db.New(filepath.Join(t.TempDir(), "tz.db"), db.WithLocation(loc))
			if err != nil {
				t.Fatalf("failed to open repo: %v", err)
			}
			defer func() { _ = repo.Close() }()
			if err := repo.ReplaceEvents(context.Background(), events.All(), "tz"); err != nil {
				t.Fatalf("failed to store: %v", err)
			}
			stored, err := repo.Collection(context.Background())
			if err != nil {
				t.Fatalf("failed to read: %v", err)
			}

			for day, want := range map[int]int{9: 0, 10: 1, 11: 1, 12: 0} {
				got := calendar.DayEvents(stored.All(), nil, time.Date(2026, time.June, day, 0, 0, 0, 0, time.UTC))
				if len(got) != want {
					t.Errorf("June %d: got %d events, want %d", day, len(got), want)
				}
			}
		})
	}
}

func TestServeFromSnapshot(t *testing.T) {
	_, repo := importSource(t)

	composer, err := compose.New(event.DefaultVocabulary(), compose.DefaultOffset)
	if err != nil {
		t.Fatalf("failed to create composer: %v", err)
	}
	srv, err := web.New(web.Config{
		Mode:         gin.TestMode,
		ICSCacheSize: 4,
		ICSCacheTTL:  time.Minute,
		WeekStart:    time.Sunday,
		Vocabulary:   event.DefaultVocabulary(),
		Composer:     composer,
		Encoder:      ics.NewEncoder("example.org"),
		Load:         repo.Collection,
	})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	if err := srv.Reload(context.Background()); err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events?tags=CTF", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Count  int `json:"count"`
		Events []struct {
			Title string `json:"title"`
		} `json:"events"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if body.Count != 1 || body.Events[0].Title != "Online CTF" {
		t.Errorf("filtered events: %+v", body)
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/confirmed.ics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("feed status: got %d", rec.Code)
	}
	feed := rec.Body.String()
	if !strings.Contains(feed, "SUMMARY:HITCON") || strings.Contains(feed, "SUMMARY:Online CTF") {
		t.Errorf("confirmed feed:\n%s", feed)
	}
}
