package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestFit(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{in: "abc", width: 5, want: "abc  "},
		{in: "abcdef", width: 4, want: "abc…"},
		{in: "活動", width: 6, want: "活動  "},
		{in: "x", width: 0, want: ""},
	}
	for _, tt := range tests {
		if got := Fit(tt.in, tt.width); got != tt.want {
			t.Errorf("Fit(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestSlice(t *testing.T) {
	if got := Slice("HITCON 2026", 4, 4); got != "ON 2" {
		t.Errorf("Slice = %q, want %q", got, "ON 2")
	}
	if got := Slice("abc", 6, 3); got != "   " {
		t.Errorf("Slice past end = %q, want blanks", got)
	}
}

func TestPadLinesWithBackground(t *testing.T) {
	out := PadLinesWithBackground("a\nbb", 4, 3, lipgloss.Color(""))
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	for _, line := range lines {
		if w := lipgloss.Width(line); w != 4 {
			t.Errorf("width = %d, want 4: %q", w, line)
		}
	}
}

func TestRenderScreen_StacksSections(t *testing.T) {
	out := RenderScreen(ScreenState{
		InnerW: 10, HeaderH: 2, BodyH: 3, FooterH: 1,
		Header: "head", Body: "body", Footer: "foot",
	})
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("lines = %d, want 6", len(lines))
	}
	if !strings.HasPrefix(lines[0], "head") || !strings.HasPrefix(lines[2], "body") || !strings.HasPrefix(lines[5], "foot") {
		t.Errorf("unexpected layout: %q", lines)
	}
}
