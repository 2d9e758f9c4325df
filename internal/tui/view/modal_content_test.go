package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/twdsco/hackertracker/internal/calendar"
)

func TestRenderDetailBody_OmitsAbsentFields(t *testing.T) {
	card := calendar.EventCard{
		Title:     "Meetup",
		Tags:      []string{"實體"},
		When:      "2026-06-10 19:00 ~ 21:00",
		Contact:   "meetup@example.org",
		Tentative: true,
	}

	body := RenderDetailBody(card, DetailStyles{})
	for _, want := range []string{"實體", calendar.BadgeTentative, calendar.LabelWhen, card.When, calendar.LabelContact} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
	for _, absent := range []string{calendar.LabelLocation, calendar.LabelOrganizer, calendar.LabelURL} {
		if strings.Contains(body, absent) {
			t.Errorf("body should omit %q:\n%s", absent, body)
		}
	}
}

func TestRenderDetailBody_UsesBodyStyleForValues(t *testing.T) {
	styles := DetailStyles{BodyStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("6"))}
	card := calendar.EventCard{When: "2026-06-10"}

	body := RenderDetailBody(card, styles)
	if !strings.Contains(body, styles.BodyStyle.Render("  2026-06-10")) {
		t.Fatalf("expected value to use body style")
	}
}

func TestRenderPicklistBody(t *testing.T) {
	items := []calendar.PickItem{
		{ID: 1, Title: "HITCON"},
		{ID: 2, Title: "CTF Night", Tentative: true},
	}
	body := RenderPicklistBody(items, 1, ChoiceStyles{})
	lines := strings.Split(body, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[1], "▸ CTF Night") || !strings.Contains(lines[1], calendar.BadgeTentative) {
		t.Errorf("selected line = %q", lines[1])
	}
	if strings.Contains(lines[0], calendar.BadgeTentative) {
		t.Errorf("confirmed line should have no badge: %q", lines[0])
	}
}

func TestRenderFilterBody(t *testing.T) {
	items := []FilterItem{{Tag: "實體"}, {Tag: "CTF", Active: true}}

	body := RenderFilterBody(items, 0, "tags=CTF", ChoiceStyles{})
	if !strings.Contains(body, "▸ [ ] 實體") || !strings.Contains(body, "[x] CTF") {
		t.Errorf("unexpected checklist:\n%s", body)
	}
	if !strings.Contains(body, "?tags=CTF") {
		t.Errorf("missing share query:\n%s", body)
	}

	if body := RenderFilterBody(items, 0, "", ChoiceStyles{}); !strings.Contains(body, "全部活動") {
		t.Errorf("empty query should say all events:\n%s", body)
	}
}

func TestRenderPickerBody_Grid(t *testing.T) {
	picker := calendar.NewYearPicker(2026)
	body := RenderPickerBody(picker.Options(), 0, 4, ChoiceStyles{})
	lines := strings.Split(body, "\n")
	if len(lines) != 3 {
		t.Fatalf("rows = %d, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "2016") || !strings.Contains(lines[2], "2027") {
		t.Errorf("unexpected grid:\n%s", body)
	}
}

func TestRenderHelpBody_AlignsKeys(t *testing.T) {
	body := RenderHelpBody([]HelpEntry{{Keys: "q", Desc: "quit"}, {Keys: "tab", Desc: "next"}}, ChoiceStyles{})
	lines := strings.Split(body, "\n")
	if lines[0] != "q    quit" || lines[1] != "tab  next" {
		t.Errorf("help lines = %q", lines)
	}
}
