package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRenderHeader_ShowsViewTitle(t *testing.T) {
	m := loadedModel(t)

	if got := m.renderHeader(100); !strings.Contains(got, "活動列表") || !strings.Contains(got, "4 / 4 筆活動") {
		t.Fatalf("list header = %q", got)
	}

	m = press(m, "2")
	if got := m.renderHeader(100); !strings.Contains(got, "2026年 6月") {
		t.Fatalf("month header = %q", got)
	}

	m = press(m, "3")
	if got := m.renderHeader(100); !strings.Contains(got, "2026年") {
		t.Fatalf("year header = %q", got)
	}
}

func TestRenderHeader_Loading(t *testing.T) {
	m := newTestModel(t)
	if got := m.renderHeader(100); !strings.Contains(got, "載入中...") {
		t.Fatalf("header = %q", got)
	}
}

func TestRenderFooter_FilterLine(t *testing.T) {
	m := loadedModel(t)
	if got := m.renderFooter(100); !strings.Contains(got, "篩選：全部活動") {
		t.Fatalf("footer = %q", got)
	}

	m = press(m, "f", " ", "esc")
	if got := m.renderFooter(100); !strings.Contains(got, "篩選：實體") {
		t.Fatalf("footer = %q", got)
	}
}

func TestListView_ShowsEvents(t *testing.T) {
	m := loadedModel(t)
	body := m.list.View()

	for _, title := range []string{"Meetup", "Online CTF"} {
		if !strings.Contains(body, title) {
			t.Errorf("list does not show %q", title)
		}
	}
}

func TestDetailModal_ShowsEvent(t *testing.T) {
	m := loadedModel(t)
	m = press(m, "G", "enter")

	got := m.renderModal()
	if !strings.Contains(got, "HITCON") {
		t.Fatalf("detail modal = %q", got)
	}
}

func TestView_TooSmall(t *testing.T) {
	m := loadedModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 10, Height: 4})
	m = updated.(Model)

	if got := m.View(); !strings.Contains(got, "終端機視窗太小") {
		t.Fatalf("view = %q", got)
	}
}

func TestMonthSlots(t *testing.T) {
	tests := []struct {
		height, weeks, want int
	}{
		{40, 5, 4},
		{10, 6, 2},
		{30, 0, 2},
	}
	for _, tt := range tests {
		if got := monthSlots(tt.height, tt.weeks); got != tt.want {
			t.Errorf("monthSlots(%d, %d) = %d, want %d", tt.height, tt.weeks, got, tt.want)
		}
	}
}
